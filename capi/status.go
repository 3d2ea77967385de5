package capi

import (
	"errors"
	"strconv"

	"github.com/reoring/vistoml"
)

// Status is the return code of every entry point. Negative values are
// failures of the call itself; positive values mean the call worked and
// the document did not match what was asked.
type Status int32

const (
	StatusOK              Status = 0
	StatusSchemaError     Status = 1  // path errors were written instead of results
	StatusQueryError      Status = 2  // a query error was written instead of a value
	StatusFailed          Status = -1 // internal failure, contained
	StatusInvalidHandle   Status = -2
	StatusInvalidArgument Status = -3
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSchemaError:
		return "schema error"
	case StatusQueryError:
		return "query error"
	case StatusFailed:
		return "failed"
	case StatusInvalidHandle:
		return "invalid handle"
	case StatusInvalidArgument:
		return "invalid argument"
	default:
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
}

// statusOf maps errors that are not schema or query results.
func statusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, vistoml.ErrEmptyPath):
		// precondition violation of the query itself
		return StatusFailed
	case errors.Is(err, ErrNilArgument):
		return StatusInvalidArgument
	case errors.Is(err, ErrReleased), errors.Is(err, ErrInvalidHandle), errors.Is(err, ErrNotOwned):
		return StatusInvalidHandle
	default:
		return StatusFailed
	}
}
