package vistoml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/vistoml/i18n"
)

var (
	// ErrInternal marks violated invariants, as opposed to schema
	// violations. Boundary callers see it as an operation failure.
	ErrInternal = errors.New("vistoml: internal error")

	// ErrEmptyPath is returned by lookups given no keys.
	ErrEmptyPath = errors.New("vistoml: empty lookup path")
)

// QueryReason distinguishes the two ways a lookup can fail.
type QueryReason int

const (
	// Vacant: the key at Depth does not exist.
	Vacant QueryReason = iota
	// Conflict: the node at Depth exists but has the wrong kind.
	Conflict
)

// QueryError reports where a dotted-path lookup stopped. Depth is the
// zero-based index of the offending path segment.
type QueryError struct {
	Reason QueryReason
	Depth  int
	Found  string // kind name of the node found; Conflict only
}

func vacant(depth int) *QueryError { return &QueryError{Reason: Vacant, Depth: depth} }

func conflict(depth int, found string) *QueryError {
	return &QueryError{Reason: Conflict, Depth: depth, Found: found}
}

func (e *QueryError) Error() string {
	data := map[string]string{"depth": strconv.Itoa(e.Depth), "kind": e.Found}
	if e.Reason == Vacant {
		return i18n.T(i18n.CodeVacant, data)
	}
	return i18n.T(i18n.CodeConflict, data)
}

// PathError is a schema violation found by an extractor: the value at Path
// is of kind Got where Expected was required.
type PathError struct {
	Path     string // dotted, e.g. target.x86_64.dependencies.foo
	Expected string
	Got      string
}

func (e PathError) Error() string {
	return e.Path + ": " + i18n.T(i18n.CodeInvalidType, map[string]string{"expected": e.Expected, "got": e.Got})
}

// PathErrors collects every violation of one extraction pass.
type PathErrors []PathError

// Error summarizes the first few violations.
func (pe PathErrors) Error() string {
	if len(pe) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(pe)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(pe[i].Error())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsPathErrors extracts PathErrors from an error using errors.As internally.
func AsPathErrors(err error) (PathErrors, bool) {
	if err == nil {
		return nil, false
	}
	var pe PathErrors
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// InvariantError describes a state the traversal assumed impossible, such
// as a nil node inside a table. It unwraps to ErrInternal.
type InvariantError struct {
	Op     string
	Path   string
	Detail string
}

func newInvariant(op, path, detail string) *InvariantError {
	return &InvariantError{Op: op, Path: path, Detail: detail}
}

func (e *InvariantError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("vistoml: %s: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("vistoml: %s at %s: %s", e.Op, e.Path, e.Detail)
}

func (e *InvariantError) Unwrap() error { return ErrInternal }
