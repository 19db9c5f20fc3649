package gotrap

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/mickamy/gotrap/internal/ident"
)

// ErrUnsupportedTarget is returned by FromStruct for values that are not structs.
var ErrUnsupportedTarget = errors.New("gotrap: unsupported record target")

// Namer provides a custom record name for a model.
type Namer interface {
	RecordName() string
}

// FromStruct declares a record from the exported fields of a struct (or pointer to one).
// Field names are snake_cased unless a `trap:"name"` tag renames them; `trap:"-"` skips a field.
// The record name comes from Namer, else the singular snake_cased type name (People -> person).
func FromStruct(v any) (*Record, error) {
	if v == nil {
		return nil, ErrNilRecord
	}
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil, fmt.Errorf("%w: nil pointer %T", ErrNilRecord, v)
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedTarget, v)
	}

	name, err := resolveRecordName(v, val)
	if err != nil {
		return nil, err
	}

	typ := val.Type()
	fields := make([]Field, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		fieldName := ident.SnakeCase(sf.Name)
		if tag, ok := sf.Tag.Lookup("trap"); ok {
			tag = strings.TrimSpace(strings.Split(tag, ",")[0])
			if tag == "-" {
				continue
			}
			if tag != "" {
				fieldName = tag
			}
		}
		fields = append(fields, Field{Name: fieldName, Value: val.Field(i).Interface()})
	}
	return NewRecord(name, fields...), nil
}

func resolveRecordName(v any, val reflect.Value) (string, error) {
	if namer, ok := v.(Namer); ok {
		return checkName(namer.RecordName(), v)
	}
	if val.CanAddr() {
		if namer, ok := val.Addr().Interface().(Namer); ok {
			return checkName(namer.RecordName(), v)
		}
	} else if reflect.PointerTo(val.Type()).Implements(namerType) {
		inst := reflect.New(val.Type())
		inst.Elem().Set(val)
		if namer, ok := inst.Interface().(Namer); ok {
			return checkName(namer.RecordName(), v)
		}
	}
	typ := val.Type()
	if typ.Name() == "" {
		return "", fmt.Errorf("gotrap: cannot derive record name for anonymous struct of type %v", typ)
	}
	return inflection.Singular(ident.SnakeCase(typ.Name())), nil
}

var namerType = reflect.TypeOf((*Namer)(nil)).Elem()

func checkName(name string, v any) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("gotrap: RecordName returned empty string. %T", v)
	}
	return name, nil
}
