// Package collection keeps a client-side snapshot of the video game
// collection in sync with the remote API.
//
// [State] holds the snapshot, the draft and the status flags and is
// transformed by pure methods. Network operations are split in three steps
// so an event loop can run the I/O elsewhere:
//
//	next, req, err := state.PrepareSubmit()  // guard, mark in flight
//	res := controller.Execute(ctx, req)      // one HTTP call
//	state = res.Apply(next)                  // reconcile
//
// [Controller.LoadAll], [Controller.SubmitDraft] and [Controller.DeleteRecord]
// chain the three steps synchronously.
package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inovacc/gameshelf/internal/model"
)

// Backend is the remote collection resource.
type Backend interface {
	List(ctx context.Context) ([]model.GameRecord, error)
	Create(ctx context.Context, draft model.Draft) (model.GameRecord, error)
	Update(ctx context.Context, id model.RecordID, draft model.Draft) (model.GameRecord, error)
	Delete(ctx context.Context, id model.RecordID) error
}

// Options configures a Controller.
type Options struct {
	Logger *slog.Logger
}

// Controller executes prepared requests against a Backend.
type Controller struct {
	backend Backend
	logger  *slog.Logger
}

// NewController creates a controller for backend.
func NewController(backend Backend, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{backend: backend, logger: logger}
}

// Execute performs the network call for req. It never panics or returns an
// error directly; failures are carried in Result.Err as *RequestFailedError.
func (c *Controller) Execute(ctx context.Context, req Request) Result {
	res := Result{Request: req}

	var err error

	switch req.Op {
	case OpList:
		res.Records, err = c.backend.List(ctx)
	case OpCreate:
		res.Record, err = c.backend.Create(ctx, req.Body)
		if err == nil && res.Record.ID.IsZero() {
			err = errors.New("created record has no id")
		}
	case OpUpdate:
		res.Record, err = c.backend.Update(ctx, req.ID, req.Body)
		if err == nil && !res.Record.ID.Equal(req.ID) {
			err = fmt.Errorf("updated record has id %q, want %q", res.Record.ID, req.ID)
		}
	case OpDelete:
		err = c.backend.Delete(ctx, req.ID)
	default:
		err = fmt.Errorf("unknown operation %s", req.Op)
	}

	if err != nil {
		c.logger.Warn("collection request failed",
			slog.String("op", req.Op.String()),
			slog.String("id", req.ID.String()),
			slog.Any("error", err),
		)

		res.Records = nil
		res.Record = model.GameRecord{}
		res.Err = requestFailed(req.Op, err)

		return res
	}

	c.logger.Debug("collection request succeeded",
		slog.String("op", req.Op.String()),
		slog.String("id", req.ID.String()),
	)

	return res
}

// LoadAll fetches the whole collection and replaces the snapshot.
// The returned error is only ever a guard error (ErrInFlight); request
// failures are recorded in the returned State.
func (c *Controller) LoadAll(ctx context.Context, s State) (State, error) {
	next, req, err := s.PrepareLoad()
	if err != nil {
		return s, err
	}

	return c.Execute(ctx, req).Apply(next), nil
}

// SubmitDraft creates or updates a record from the draft.
func (c *Controller) SubmitDraft(ctx context.Context, s State) (State, error) {
	next, req, err := s.PrepareSubmit()
	if err != nil {
		return s, err
	}

	return c.Execute(ctx, req).Apply(next), nil
}

// DeleteRecord deletes record id and removes it from the snapshot.
func (c *Controller) DeleteRecord(ctx context.Context, s State, id model.RecordID) (State, error) {
	next, req, err := s.PrepareDelete(id)
	if err != nil {
		return s, err
	}

	return c.Execute(ctx, req).Apply(next), nil
}
