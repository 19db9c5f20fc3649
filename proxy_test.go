package gotrap_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mickamy/gotrap"
)

func TestWrap_InvokesTrapsOncePerAccess(t *testing.T) {
	t.Parallel()

	type call struct {
		field string
		value any
		old   any
	}
	var gets, sets []call
	rec := newPerson()
	p := gotrap.Wrap(rec, gotrap.Traps{
		Get: func(_ context.Context, r *gotrap.Record, field string) any {
			v, _ := r.Lookup(field)
			gets = append(gets, call{field: field, value: v})
			return nil
		},
		Set: func(_ context.Context, r *gotrap.Record, field string, value any) bool {
			old, _ := r.Lookup(field)
			sets = append(sets, call{field: field, value: value, old: old})
			return r.Put(field, value) == nil
		},
	})

	p.Get("name")
	p.Get("age")
	if !p.Set("age", 40) {
		t.Fatalf("Set(age, 40) = false, want true")
	}

	if len(gets) != 2 || gets[0] != (call{field: "name", value: "Ali"}) || gets[1] != (call{field: "age", value: 35}) {
		t.Fatalf("get calls = %+v", gets)
	}
	if len(sets) != 1 || sets[0] != (call{field: "age", value: 40, old: 35}) {
		t.Fatalf("set calls = %+v", sets)
	}
	if v, _ := rec.Lookup("age"); v != 40 {
		t.Fatalf("age = %v, want 40", v)
	}
}

func TestWrap_NilTrapsForward(t *testing.T) {
	t.Parallel()

	rec := newPerson()
	p := gotrap.Wrap(rec, gotrap.Traps{})

	if got := p.Get("name"); got != "Ali" {
		t.Fatalf("Get(name) = %v, want Ali", got)
	}
	if !p.Set("age", 40) {
		t.Fatalf("Set(age) = false, want true")
	}
	if p.Set("email", "x") {
		t.Fatalf("Set(email) = true, want false")
	}
	if p.Target() != rec {
		t.Fatalf("Target() is not the wrapped record")
	}
}

func TestWrap_RejectingTrap(t *testing.T) {
	t.Parallel()

	rec := newPerson()
	p := gotrap.Wrap(rec, gotrap.Traps{
		Set: func(context.Context, *gotrap.Record, string, any) bool { return false },
	})

	if p.Set("age", 99) {
		t.Fatalf("Set = true, want false")
	}
	if v, _ := rec.Lookup("age"); v != 35 {
		t.Fatalf("age = %v, want 35", v)
	}
}

func TestWrap_NilRecordPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, gotrap.ErrNilRecord) {
			t.Fatalf("recover() = %v, want ErrNilRecord", r)
		}
	}()
	gotrap.Wrap(nil, gotrap.Traps{})
}
