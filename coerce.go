package gotrap

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Coerce converts a textual value to the type of the field's current value,
// so "40" written to an int field stays an int. Numbers are read in base 10.
// Text that does not fit the field's type without loss (40.5 into an int) is
// read as a YAML scalar instead. Quoted input is always a string.
func Coerce(current any, raw string, quoted bool) (any, error) {
	if quoted {
		return raw, nil
	}
	var (
		v   any
		err error
	)
	switch current.(type) {
	case string:
		return raw, nil
	case int, int64, int32:
		n, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil {
			return scalar(raw), nil
		}
		switch current.(type) {
		case int:
			v, err = cast.ToIntE(n)
		case int64:
			v = n
		case int32:
			v, err = cast.ToInt32E(n)
		}
	case uint, uint64:
		n, perr := strconv.ParseUint(raw, 10, 64)
		if perr != nil {
			return scalar(raw), nil
		}
		if _, ok := current.(uint); ok {
			v, err = cast.ToUintE(n)
		} else {
			v = n
		}
	case float64, float32:
		f, perr := strconv.ParseFloat(raw, 64)
		if perr != nil {
			return scalar(raw), nil
		}
		if _, ok := current.(float32); ok {
			v, err = cast.ToFloat32E(f)
		} else {
			v = f
		}
	case bool:
		v, err = cast.ToBoolE(raw)
	case time.Duration:
		v, err = cast.ToDurationE(raw)
	case time.Time:
		v, err = cast.ToTimeE(raw)
	default:
		return scalar(raw), nil
	}
	if err != nil {
		return nil, fmt.Errorf("gotrap: cannot convert %q to %T: %w", raw, current, err)
	}
	return v, nil
}

// scalar reads raw as a YAML scalar, keeping the text when it is not one.
func scalar(raw string) any {
	var out any
	if err := yaml.Unmarshal([]byte(raw), &out); err != nil {
		return raw
	}
	switch out.(type) {
	case map[string]any, []any:
		return raw
	}
	return out
}
