package query_test

import (
	"testing"

	"github.com/mickamy/gotrap/internal/query"
)

func TestParseAccess(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name   string
		in     string
		want   query.Access
		wantOK bool
	}{
		{
			name:   "bare field read",
			in:     "name",
			want:   query.Access{Op: "get", Field: "name"},
			wantOK: true,
		},
		{
			name:   "qualified read with semicolon",
			in:     "personProxy.age;",
			want:   query.Access{Op: "get", Record: "personProxy", Field: "age"},
			wantOK: true,
		},
		{
			name:   "get keyword",
			in:     "GET person.age",
			want:   query.Access{Op: "get", Record: "person", Field: "age"},
			wantOK: true,
		},
		{
			name:   "qualified write",
			in:     "personProxy.age = 40;",
			want:   query.Access{Op: "set", Record: "personProxy", Field: "age", Value: "40"},
			wantOK: true,
		},
		{
			name:   "set keyword with quoted string",
			in:     `set name = "Ali Veli"`,
			want:   query.Access{Op: "set", Field: "name", Value: "Ali Veli", Quoted: true},
			wantOK: true,
		},
		{
			name:   "single quoted string",
			in:     `write person.name='Ali'`,
			want:   query.Access{Op: "set", Record: "person", Field: "name", Value: "Ali", Quoted: true},
			wantOK: true,
		},
		{
			name:   "equals inside quoted value",
			in:     `note = "a=b"`,
			want:   query.Access{Op: "set", Field: "note", Value: "a=b", Quoted: true},
			wantOK: true,
		},
		{
			name:   "quoted field with dot",
			in:     `person."address.city" = Istanbul`,
			want:   query.Access{Op: "set", Record: "person", Field: "address.city", Value: "Istanbul"},
			wantOK: true,
		},
		{
			name:   "comment",
			in:     "# read the name",
			wantOK: false,
		},
		{
			name:   "empty",
			in:     "  ;  ",
			wantOK: false,
		},
		{
			name:   "missing value",
			in:     "set age =",
			wantOK: false,
		},
		{
			name:   "get with assignment",
			in:     "get age = 3",
			wantOK: false,
		},
		{
			name:   "too many parts",
			in:     "a.b.c",
			wantOK: false,
		},
		{
			name:   "unquoted spaces",
			in:     "first name",
			wantOK: false,
		},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := query.ParseAccess(tc.in)
			if ok != tc.wantOK {
				t.Fatalf("ParseAccess(%q) ok = %t, want %t", tc.in, ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if got != tc.want {
				t.Fatalf("ParseAccess(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestTrimStatement(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "age", want: "age"},
		{name: "semicolons", in: "  age = 40;; ", want: "age = 40"},
		{name: "hash comment", in: "# note", want: ""},
		{name: "slash comment", in: "// note", want: ""},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := query.TrimStatement(tc.in); got != tc.want {
				t.Fatalf("TrimStatement(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
