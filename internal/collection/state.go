package collection

import (
	"slices"

	"github.com/inovacc/gameshelf/internal/model"
)

// Mode is what the draft currently represents.
type Mode int

const (
	// ModeReady means no edit is in progress; a submit creates a record
	ModeReady Mode = iota

	// ModeCreating means the draft is a new record
	ModeCreating

	// ModeEditing means the draft is bound to an existing record's id
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeCreating:
		return "creating"
	case ModeEditing:
		return "editing"
	default:
		return "ready"
	}
}

// State is the client's view of the collection: the snapshot, the draft,
// the editing pointer and the status flags.
//
// State is a value. Every transition returns a new State and leaves the
// receiver untouched, including its snapshot slice.
type State struct {
	capability model.Capability
	records    []model.GameRecord
	draft      model.Draft
	editing    model.RecordID
	mode       Mode
	loading    bool
	loadFailed bool
	err        *RequestFailedError
	inFlight   [numOps]bool
}

// NewState returns the initial state: loading, with an empty snapshot.
func NewState(capability model.Capability) State {
	return State{
		capability: capability,
		records:    []model.GameRecord{},
		loading:    true,
	}
}

// Capability returns what the deployment permits.
func (s State) Capability() model.Capability {
	return s.capability
}

// Records returns a copy of the snapshot in server order.
func (s State) Records() []model.GameRecord {
	return slices.Clone(s.records)
}

// Len returns the number of records in the snapshot.
func (s State) Len() int {
	return len(s.records)
}

// At returns the record at index i of the snapshot.
func (s State) At(i int) (model.GameRecord, bool) {
	if i < 0 || i >= len(s.records) {
		return model.GameRecord{}, false
	}

	return s.records[i], true
}

// Lookup finds a record by id in the snapshot.
func (s State) Lookup(id model.RecordID) (model.GameRecord, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.GameRecord{}, false
	}

	return s.records[i], true
}

// Draft returns the in-progress form fields.
func (s State) Draft() model.Draft {
	return s.draft
}

// EditingID returns the id the draft is bound to, if any.
func (s State) EditingID() (model.RecordID, bool) {
	return s.editing, !s.editing.IsZero()
}

// Mode returns the current edit mode.
func (s State) Mode() Mode {
	return s.mode
}

// Loading reports whether the initial fetch has not resolved yet.
func (s State) Loading() bool {
	return s.loading
}

// LoadFailed reports whether the last list request failed. The snapshot is
// still readable (and empty after a failed first load).
func (s State) LoadFailed() bool {
	return s.loadFailed
}

// Err returns the last request failure, or nil.
func (s State) Err() *RequestFailedError {
	return s.err
}

// ErrMessage returns the user-facing message of the last failure, or "".
func (s State) ErrMessage() string {
	if s.err == nil {
		return ""
	}

	return s.err.Message
}

// InFlight reports whether an operation of kind op is awaiting its result.
func (s State) InFlight(op Op) bool {
	return op >= 0 && op < numOps && s.inFlight[op]
}

// Busy reports whether any operation is awaiting its result.
func (s State) Busy() bool {
	for _, v := range s.inFlight {
		if v {
			return true
		}
	}

	return false
}

// BeginCreate clears the draft and enters ModeCreating.
func (s State) BeginCreate() (State, error) {
	if !s.capability.CanWrite() {
		return s, ErrReadOnly
	}

	return s.withForm(model.Draft{}, model.NoID, ModeCreating), nil
}

// BeginEdit copies the fields of r into the draft and binds the draft to
// r's id. The record must be in the local snapshot; its remote existence is
// not checked.
func (s State) BeginEdit(r model.GameRecord) (State, error) {
	if !s.capability.CanWrite() {
		return s, ErrReadOnly
	}

	if r.ID.IsZero() || s.indexOf(r.ID) < 0 {
		return s, ErrNotFound
	}

	return s.withForm(r.Draft(), r.ID, ModeEditing), nil
}

// SetField changes one draft field. It has no network effect.
func (s State) SetField(f model.Field, value string) (State, error) {
	draft, err := s.draft.With(f, value)
	if err != nil {
		return s, err
	}

	s.draft = draft

	return s, nil
}

// CancelEdit clears the draft and the editing pointer, whatever the mode.
func (s State) CancelEdit() State {
	return s.withForm(model.Draft{}, model.NoID, ModeReady)
}

// PrepareLoad marks the list request in flight and returns it.
func (s State) PrepareLoad() (State, Request, error) {
	if s.inFlight[OpList] {
		return s, Request{}, ErrInFlight
	}

	s.inFlight[OpList] = true
	s.loading = true

	return s, Request{Op: OpList}, nil
}

// PrepareSubmit builds a create request when no record is bound to the
// draft, an update request for the bound id otherwise.
func (s State) PrepareSubmit() (State, Request, error) {
	if !s.capability.CanWrite() {
		return s, Request{}, ErrReadOnly
	}

	req := Request{Op: OpCreate, Body: s.draft}
	if !s.editing.IsZero() {
		req = Request{Op: OpUpdate, ID: s.editing, Body: s.draft}
	}

	if s.inFlight[req.Op] {
		return s, Request{}, ErrInFlight
	}

	s.inFlight[req.Op] = true

	return s, req, nil
}

// PrepareDelete builds a delete request for id.
func (s State) PrepareDelete(id model.RecordID) (State, Request, error) {
	if !s.capability.CanWrite() {
		return s, Request{}, ErrReadOnly
	}

	if id.IsZero() {
		return s, Request{}, ErrNotFound
	}

	if s.inFlight[OpDelete] {
		return s, Request{}, ErrInFlight
	}

	s.inFlight[OpDelete] = true

	return s, Request{Op: OpDelete, ID: id}, nil
}

func (s State) indexOf(id model.RecordID) int {
	if id.IsZero() {
		return -1
	}

	return slices.IndexFunc(s.records, func(r model.GameRecord) bool { return r.ID.Equal(id) })
}

func (s State) withForm(draft model.Draft, editing model.RecordID, mode Mode) State {
	s.draft = draft
	s.editing = editing
	s.mode = mode

	return s
}

// finishSubmit resets the form after a successful submit, but only if the
// form still holds what was sent. Edits typed while the request was in
// flight survive.
func (s State) finishSubmit(req Request) State {
	if !s.editing.Equal(req.ID) || s.draft != req.Body {
		return s
	}

	if req.Op == OpCreate && s.mode == ModeEditing {
		return s
	}

	return s.CancelEdit()
}

func (s State) failed(req Request, rf *RequestFailedError) State {
	s.inFlight[req.Op] = false
	s.err = rf

	if req.Op == OpList {
		s.loading = false
		s.loadFailed = true
	}

	return s
}

func (s State) listed(records []model.GameRecord) State {
	s.inFlight[OpList] = false
	s.err = nil
	s.loading = false
	s.loadFailed = false

	s.records = slices.Clone(records)
	if s.records == nil {
		s.records = []model.GameRecord{}
	}

	if !s.editing.IsZero() && s.indexOf(s.editing) < 0 {
		s = s.CancelEdit()
	}

	return s
}

func (s State) created(rec model.GameRecord, req Request) State {
	s.inFlight[OpCreate] = false
	s.err = nil

	// Ids are unique in the snapshot; a server echoing a known id replaces
	// the stale copy instead of duplicating it.
	if i := s.indexOf(rec.ID); i >= 0 {
		s.records = slices.Clone(s.records)
		s.records[i] = rec
	} else {
		s.records = append(slices.Clip(s.records), rec)
	}

	return s.finishSubmit(req)
}

func (s State) updated(id model.RecordID, rec model.GameRecord, req Request) State {
	s.inFlight[OpUpdate] = false
	s.err = nil

	if i := s.indexOf(id); i >= 0 {
		s.records = slices.Clone(s.records)
		s.records[i] = rec
	}

	return s.finishSubmit(req)
}

func (s State) deleted(id model.RecordID) State {
	s.inFlight[OpDelete] = false
	s.err = nil

	if i := s.indexOf(id); i >= 0 {
		s.records = slices.Delete(slices.Clone(s.records), i, i+1)
	}

	if !id.IsZero() && s.editing.Equal(id) {
		s = s.CancelEdit()
	}

	return s
}
