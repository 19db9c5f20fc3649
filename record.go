package gotrap

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/mickamy/gotrap/internal/ident"
)

var (
	// ErrUnknownField is returned when a field outside the record's declared set is written.
	ErrUnknownField = errors.New("gotrap: unknown field")
	// ErrNilRecord is the panic value of Wrap when given a nil record.
	ErrNilRecord = errors.New("gotrap: nil record")
)

// Field is a single named value used to declare a record.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// Record is a mutable mapping from a fixed, ordered set of field names to values.
// Its methods are the direct, non-intercepted access path.
type Record struct {
	name   string
	fields []string
	values map[string]any
}

// NewRecord declares a record. A repeated field name keeps its first position and its last value.
func NewRecord(name string, fields ...Field) *Record {
	r := &Record{
		name:   name,
		fields: make([]string, 0, len(fields)),
		values: make(map[string]any, len(fields)),
	}
	for _, f := range fields {
		if _, ok := r.values[f.Name]; !ok {
			r.fields = append(r.fields, f.Name)
		}
		r.values[f.Name] = f.Value
	}
	return r
}

// Name returns the record kind, e.g. "person".
func (r *Record) Name() string {
	return r.name
}

// Fields returns the declared field names in declaration order.
func (r *Record) Fields() []string {
	return slices.Clone(r.fields)
}

// Has reports whether field is declared.
func (r *Record) Has(field string) bool {
	_, ok := r.values[field]
	return ok
}

// Lookup reads field without interception.
func (r *Record) Lookup(field string) (any, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Put writes field without interception. The record's shape never changes:
// writing an undeclared field fails with ErrUnknownField.
func (r *Record) Put(field string, value any) error {
	if _, ok := r.values[field]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, ident.Qualify(r.name, field))
	}
	r.values[field] = value
	return nil
}

// Snapshot returns a copy of the current values.
func (r *Record) Snapshot() map[string]any {
	return maps.Clone(r.values)
}

// String renders the record as {name:Ali age:35} in declaration order.
func (r *Record) String() string {
	b := []byte{'{'}
	for i, f := range r.fields {
		if i > 0 {
			b = append(b, ' ')
		}
		b = fmt.Appendf(b, "%s:%s", f, FormatValue(r.values[f], true))
	}
	return string(append(b, '}'))
}
