package tree

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestTable_InsertionOrderAndLookup(t *testing.T) {
	tbl := Tbl(KV("b", Int(1)), KV("a", Str("x")), KV("c", Bool(true)))
	want := []string{"b", "a", "c"}
	var got []string
	for k := range tbl.All() {
		got = append(got, k)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, tbl.Keys()); diff != "" {
		t.Fatalf("Keys() mismatch (-want +got):\n%s", diff)
	}
	n, ok := tbl.Get("a")
	if !ok || n.(*String).Value != "x" {
		t.Fatalf("Get(a) = %v, %v", n, ok)
	}
	if _, ok := tbl.Get("zzz"); ok {
		t.Fatalf("unexpected hit for missing key")
	}
}

func TestTable_SetRejectsDuplicates(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Set("k", Int(1)); err != nil {
		t.Fatalf("first set: %v", err)
	}
	err := tbl.Set("k", Int(2))
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if n, _ := tbl.Get("k"); n.(*Integer).Value != 1 {
		t.Fatalf("duplicate overwrote value")
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		n    Node
		want string
	}{
		{Str("s"), "string"},
		{Int(1), "integer"},
		{Flt(1.5), "float"},
		{Bool(false), "boolean"},
		{Date(time.Unix(0, 0)), "datetime"},
		{Arr(), "array"},
		{NewTable(), "table"},
		{nil, "invalid"},
		{(*String)(nil), "invalid"},
		{(*Table)(nil), "invalid"},
	}
	for _, c := range cases {
		if got := KindOf(c.n).String(); got != c.want {
			t.Fatalf("KindOf(%#v) = %s, want %s", c.n, got, c.want)
		}
	}
}

func TestFromValue_SortsMapKeys(t *testing.T) {
	n, err := FromValue(map[string]any{
		"z": "last",
		"a": []any{int64(1), 2.5},
		"m": map[string]any{"flag": true},
	})
	if err != nil {
		t.Fatalf("FromValue: %v", err)
	}
	tbl := n.(*Table)
	if diff := cmp.Diff([]string{"a", "m", "z"}, tbl.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	arr, _ := tbl.Get("a")
	if KindOf(arr.(*Array).At(1)) != KindFloat {
		t.Fatalf("expected float element")
	}
}

func TestFromValue_RejectsNull(t *testing.T) {
	if _, err := FromValue(map[string]any{"x": nil}); err == nil {
		t.Fatalf("expected error for null")
	}
}

func TestDocument_NilRoot(t *testing.T) {
	d := NewDocument(nil)
	if d.Root().Len() != 0 {
		t.Fatalf("expected empty root")
	}
	if _, ok := d.Get("anything"); ok {
		t.Fatalf("unexpected hit")
	}
}
