package collection

import (
	"fmt"

	"github.com/inovacc/gameshelf/internal/model"
)

// Op is the kind of network operation. Each kind has its own in-flight flag.
type Op int

const (
	OpList Op = iota
	OpCreate
	OpUpdate
	OpDelete

	numOps
)

func (o Op) String() string {
	switch o {
	case OpList:
		return "list"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// FailureMessage is the user-facing text stored when the operation fails.
func (o Op) FailureMessage() string {
	switch o {
	case OpList:
		return "Failed to fetch data"
	case OpCreate:
		return "Failed to add new game"
	case OpUpdate:
		return "Failed to edit game"
	case OpDelete:
		return "Failed to delete game"
	default:
		return "Request failed"
	}
}

// Request is one network call prepared by a State transition.
type Request struct {
	Op Op

	// ID is the target record for update and delete
	ID model.RecordID

	// Body is the outgoing fields for create and update
	Body model.Draft
}

// Result is the outcome of executing a Request.
type Result struct {
	Request Request

	// Records is the list payload (OpList)
	Records []model.GameRecord

	// Record is the server's copy of the created or updated record
	Record model.GameRecord

	// Err is nil on success, a *RequestFailedError otherwise
	Err error
}

// Apply folds the result into s and returns the new state.
func (r Result) Apply(s State) State {
	if r.Err != nil {
		return s.failed(r.Request, requestFailed(r.Request.Op, r.Err))
	}

	switch r.Request.Op {
	case OpList:
		return s.listed(r.Records)
	case OpCreate:
		return s.created(r.Record, r.Request)
	case OpUpdate:
		return s.updated(r.Request.ID, r.Record, r.Request)
	case OpDelete:
		return s.deleted(r.Request.ID)
	}

	return s
}
