package functions

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultRegistry_Names(t *testing.T) {
	t.Parallel()

	want := []string{NameHTMLDate, NameHTMLDateOrEmpty, NameIsMinor, NameObjectValues, NameSubtractYears}
	if diff := cmp.Diff(want, NewDefaultRegistry().Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_RegisterRejectsDuplicates(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if err := reg.Register("f", HTMLDate); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("f", HTMLDate); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(" ", HTMLDate); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := reg.Register("g", nil); err == nil {
		t.Fatalf("expected nil function error")
	}
}

func TestRegistry_CallPropagatesErrors(t *testing.T) {
	t.Parallel()

	reg := NewDefaultRegistry()
	if _, err := reg.Call(NameIsMinor, []any{"bad-date", "2020-01-01"}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := reg.Call("nope", nil); !errors.Is(err, ErrUnknownFunction) {
		t.Fatalf("expected ErrUnknownFunction, got %v", err)
	}
	got, err := reg.Call(NameHTMLDate, []any{"2020-01-05"})
	if err != nil || got != "2020-01-05" {
		t.Fatalf("unexpected call result %#v (err=%v)", got, err)
	}
}
