package collection

import (
	"context"
	"errors"
	"sync"

	"github.com/inovacc/gameshelf/internal/model"
)

var errBoom = errors.New("connection refused")

type call struct {
	Op   Op
	ID   model.RecordID
	Body model.Draft
}

// fakeBackend answers from canned values and records every call.
type fakeBackend struct {
	mu sync.Mutex

	listResult []model.GameRecord
	nextRecord model.GameRecord
	updateEcho bool
	err        error

	calls []call
}

func (f *fakeBackend) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, c)
}

func (f *fakeBackend) List(_ context.Context) ([]model.GameRecord, error) {
	f.record(call{Op: OpList})

	if f.err != nil {
		return nil, f.err
	}

	return f.listResult, nil
}

func (f *fakeBackend) Create(_ context.Context, draft model.Draft) (model.GameRecord, error) {
	f.record(call{Op: OpCreate, Body: draft})

	if f.err != nil {
		return model.GameRecord{}, f.err
	}

	return f.nextRecord, nil
}

func (f *fakeBackend) Update(_ context.Context, id model.RecordID, draft model.Draft) (model.GameRecord, error) {
	f.record(call{Op: OpUpdate, ID: id, Body: draft})

	if f.err != nil {
		return model.GameRecord{}, f.err
	}

	if f.updateEcho {
		return draft.Record(id), nil
	}

	return f.nextRecord, nil
}

func (f *fakeBackend) Delete(_ context.Context, id model.RecordID) error {
	f.record(call{Op: OpDelete, ID: id})

	return f.err
}

func (f *fakeBackend) lastCall() call {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.calls) == 0 {
		return call{Op: -1}
	}

	return f.calls[len(f.calls)-1]
}

var (
	chrono = model.GameRecord{ID: model.ParseID("1"), Title: "Chrono Trigger", Platform: "SNES", Developer: "Square", Publisher: "Square"}
	doom   = model.GameRecord{ID: model.ParseID("2"), Title: "Doom", Platform: "PC", Developer: "id Software", Publisher: "GT Interactive"}
	zelda  = model.GameRecord{ID: model.ParseID("3"), Title: "Ocarina of Time", Platform: "N64", Developer: "Nintendo EAD", Publisher: "Nintendo"}
)

// loaded returns a ready CRUD state holding records.
func loaded(records ...model.GameRecord) State {
	next, req, err := NewState(model.CapabilityCRUD).PrepareLoad()
	if err != nil {
		panic(err)
	}

	return Result{Request: req, Records: records}.Apply(next)
}
