// Package json builds manifest documents from JSON using goccy/go-json's
// token decoder. Object key order is preserved; null is rejected.
package json

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/vistoml/internal/engine"
	"github.com/reoring/vistoml/tree"
)

// Options controls decoding.
type Options struct {
	// MaxDepth limits container nesting; zero means unlimited.
	MaxDepth int
}

// Decode builds a document from a JSON object.
func Decode(b []byte, opts ...Options) (*tree.Document, error) {
	return DecodeReader(bytes.NewReader(b), opts...)
}

// DecodeReader builds a document from the first JSON value read from r.
func DecodeReader(r io.Reader, opts ...Options) (*tree.Document, error) {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}
	return eng.BuildDocument(newSource(r), eng.BuildOptions{MaxDepth: opt.MaxDepth})
}

// frame is one open container. Objects alternate between expecting a key
// and expecting its value.
type frame struct {
	object  bool
	wantKey bool
}

type source struct {
	dec   *j.Decoder
	stack []frame
	off   int64
}

func newSource(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

func (s *source) top() *frame {
	if n := len(s.stack); n > 0 {
		return &s.stack[n-1]
	}
	return nil
}

// valueDone flips the enclosing object back to expecting a key.
func (s *source) valueDone() {
	if f := s.top(); f != nil && f.object {
		f.wantKey = true
	}
}

func (s *source) NextToken() (eng.Token, error) {
	off := s.dec.InputOffset()
	raw, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.off = off
	tok := eng.Token{Offset: off}
	switch v := raw.(type) {
	case j.Delim:
		s.delim(v, &tok)
		return tok, nil
	case string:
		if f := s.top(); f != nil && f.object && f.wantKey {
			f.wantKey = false
			tok.Kind, tok.String = eng.KindKey, v
			return tok, nil
		}
		tok.Kind, tok.String = eng.KindString, v
	case bool:
		tok.Kind, tok.Bool = eng.KindBool, v
	case j.Number:
		tok.Kind, tok.Number = eng.KindNumber, string(v)
	case float64:
		tok.Kind, tok.Number = eng.KindNumber, strconv.FormatFloat(v, 'g', -1, 64)
	case nil:
		tok.Kind = eng.KindNull
	default:
		return eng.Token{}, fmt.Errorf("json: unexpected token %T at offset %d", raw, off)
	}
	s.valueDone()
	return tok, nil
}

func (s *source) delim(d j.Delim, tok *eng.Token) {
	switch d {
	case '{':
		tok.Kind = eng.KindBeginObject
		s.stack = append(s.stack, frame{object: true, wantKey: true})
	case '[':
		tok.Kind = eng.KindBeginArray
		s.stack = append(s.stack, frame{})
	default:
		tok.Kind = eng.KindEndArray
		if d == '}' {
			tok.Kind = eng.KindEndObject
		}
		if n := len(s.stack); n > 0 {
			s.stack = s.stack[:n-1]
		}
		s.valueDone()
	}
}

// Location is the input offset of the last token read.
func (s *source) Location() int64 { return s.off }
