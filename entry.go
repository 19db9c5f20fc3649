package gotrap

import (
	"fmt"
	"time"
)

// Op identifies the kind of intercepted access.
type Op string

const (
	OpGet Op = "get"
	OpSet Op = "set"
)

// Event represents a single intercepted field read or write.
type Event struct {
	Op       Op        `json:"op" yaml:"op"`
	Record   string    `json:"record" yaml:"record"`
	Field    string    `json:"field" yaml:"field"`
	ID       any       `json:"id,omitempty" yaml:"id,omitempty"`
	Value    any       `json:"value,omitempty" yaml:"value,omitempty"` // get
	Old      any       `json:"old,omitempty" yaml:"old,omitempty"`     // set
	New      any       `json:"new,omitempty" yaml:"new,omitempty"`     // set
	Found    bool      `json:"found" yaml:"found"`
	Accepted bool      `json:"accepted" yaml:"accepted"`
	At       time.Time `json:"at" yaml:"at"`
	Operator string    `json:"operator,omitempty" yaml:"operator,omitempty"`
	TraceID  string    `json:"trace_id,omitempty" yaml:"trace_id,omitempty"`
	Reason   string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// String renders the console line for the event:
//
//	The value of age is 35
//	changed age from 35 to  40
func (e Event) String() string {
	switch e.Op {
	case OpGet:
		return fmt.Sprintf("The value of %s is %s", e.Field, FormatValue(e.Value, e.Found))
	case OpSet:
		return fmt.Sprintf("changed %s from %s to  %s", e.Field, FormatValue(e.Old, e.Found), FormatValue(e.New, true))
	default:
		return fmt.Sprintf("%s %s", e.Op, e.Field)
	}
}

// FormatValue renders a field value for log lines. Absent fields render as
// "undefined" and nil values as "null".
func FormatValue(v any, found bool) string {
	if !found {
		return "undefined"
	}
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}
