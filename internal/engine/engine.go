package engine

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reoring/vistoml/tree"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// BuildOptions controls document construction.
type BuildOptions struct {
	// MaxDepth limits container nesting; zero means unlimited.
	MaxDepth int
}

var (
	ErrNotTable      = errors.New("engine: document root is not an object")
	ErrNull          = errors.New("engine: null has no document representation")
	ErrMaxDepth      = errors.New("engine: max depth exceeded")
	ErrUnexpectedTok = errors.New("engine: unexpected token")
)

// BuildError locates a construction failure.
type BuildError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *BuildError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "<root>"
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("%s (offset %d): %v", loc, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s: %v", loc, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

type builder struct {
	src  TokenSource
	opt  BuildOptions
	path []string
}

// BuildDocument consumes one value from src, which must be an object, and
// returns it as a document. Object key order is preserved.
func BuildDocument(src TokenSource, opt BuildOptions) (*tree.Document, error) {
	b := &builder{src: src, opt: opt}
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	if tok.Kind != KindBeginObject {
		return nil, b.fail(tok.Offset, ErrNotTable)
	}
	root, err := b.table(1)
	if err != nil {
		return nil, err
	}
	return tree.NewDocument(root), nil
}

func (b *builder) fail(offset int64, err error) error {
	return &BuildError{Path: strings.Join(b.path, "."), Offset: offset, Err: err}
}

func (b *builder) value(tok Token, depth int) (tree.Node, error) {
	switch tok.Kind {
	case KindBeginObject:
		return b.table(depth + 1)
	case KindBeginArray:
		return b.array(depth + 1)
	case KindString:
		return tree.Str(tok.String), nil
	case KindNumber:
		return number(tok.Number)
	case KindBool:
		return tree.Bool(tok.Bool), nil
	case KindNull:
		return nil, b.fail(tok.Offset, ErrNull)
	default:
		return nil, b.fail(tok.Offset, ErrUnexpectedTok)
	}
}

func (b *builder) table(depth int) (*tree.Table, error) {
	if b.opt.MaxDepth > 0 && depth > b.opt.MaxDepth {
		return nil, b.fail(b.src.Location(), ErrMaxDepth)
	}
	t := tree.NewTable()
	for {
		tok, err := b.src.NextToken()
		if err != nil {
			return nil, eof(err)
		}
		if tok.Kind == KindEndObject {
			return t, nil
		}
		if tok.Kind != KindKey {
			return nil, b.fail(tok.Offset, ErrUnexpectedTok)
		}
		b.path = append(b.path, tok.String)
		vt, err := b.src.NextToken()
		if err != nil {
			return nil, eof(err)
		}
		v, err := b.value(vt, depth)
		if err != nil {
			return nil, err
		}
		if err := t.Set(tok.String, v); err != nil {
			return nil, b.fail(tok.Offset, err)
		}
		b.path = b.path[:len(b.path)-1]
	}
}

func (b *builder) array(depth int) (*tree.Array, error) {
	if b.opt.MaxDepth > 0 && depth > b.opt.MaxDepth {
		return nil, b.fail(b.src.Location(), ErrMaxDepth)
	}
	arr := tree.NewArray()
	for i := 0; ; i++ {
		tok, err := b.src.NextToken()
		if err != nil {
			return nil, eof(err)
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		b.path = append(b.path, "["+strconv.Itoa(i)+"]")
		v, err := b.value(tok, depth)
		if err != nil {
			return nil, err
		}
		arr.Append(v)
		b.path = b.path[:len(b.path)-1]
	}
}

// number keeps integral literals as integers and everything else as floats.
func number(s string) (tree.Node, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return tree.Int(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("engine: bad number %q: %w", s, err)
	}
	return tree.Flt(f), nil
}

func eof(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
