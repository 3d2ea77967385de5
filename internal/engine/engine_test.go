package engine

import (
	"errors"
	"io"
	"testing"

	"github.com/reoring/vistoml/tree"
)

type sliceSource struct {
	toks []Token
	i    int
}

func (s *sliceSource) NextToken() (Token, error) {
	if s.i >= len(s.toks) {
		return Token{}, io.EOF
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func (s *sliceSource) Location() int64 { return int64(s.i) }

func key(k string) Token { return Token{Kind: KindKey, String: k} }

func TestBuildDocument_FromTokens(t *testing.T) {
	src := &sliceSource{toks: []Token{
		{Kind: KindBeginObject},
		key("name"), {Kind: KindString, String: "demo"},
		key("n"), {Kind: KindNumber, Number: "42"},
		key("f"), {Kind: KindNumber, Number: "1e3"},
		key("xs"), {Kind: KindBeginArray}, {Kind: KindBool, Bool: true}, {Kind: KindEndArray},
		{Kind: KindEndObject},
	}}
	doc, err := BuildDocument(src, BuildOptions{})
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}
	n, _ := doc.Get("n")
	if v, ok := n.(*tree.Integer); !ok || v.Value != 42 {
		t.Fatalf("n = %#v", n)
	}
	f, _ := doc.Get("f")
	if v, ok := f.(*tree.Float); !ok || v.Value != 1000 {
		t.Fatalf("f = %#v", f)
	}
	xs, _ := doc.Get("xs")
	if xs.(*tree.Array).Len() != 1 {
		t.Fatalf("xs = %#v", xs)
	}
}

func TestBuildDocument_TruncatedInput(t *testing.T) {
	src := &sliceSource{toks: []Token{{Kind: KindBeginObject}, key("a")}}
	_, err := BuildDocument(src, BuildOptions{})
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected EOF, got %v", err)
	}
}

func TestBuildDocument_ArrayPathInError(t *testing.T) {
	src := &sliceSource{toks: []Token{
		{Kind: KindBeginObject},
		key("xs"), {Kind: KindBeginArray}, {Kind: KindString, String: "ok"}, {Kind: KindNull},
	}}
	_, err := BuildDocument(src, BuildOptions{})
	var be *BuildError
	if !errors.As(err, &be) || be.Path != "xs.[1]" {
		t.Fatalf("expected BuildError at xs.[1], got %v", err)
	}
}
