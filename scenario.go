package gotrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mickamy/gotrap/internal/ident"
	"github.com/mickamy/gotrap/internal/query"
)

// ErrUnknownRecord is returned when a step qualifies a field with a name that is
// neither the record name nor the scenario alias.
var ErrUnknownRecord = errors.New("gotrap: unknown record")

// Scenario is a replayable sequence of accesses against a single record.
type Scenario struct {
	Record ScenarioRecord `yaml:"record"`
	Alias  string         `yaml:"alias,omitempty"` // accepted as a step qualifier, e.g. personProxy
	Steps  []string       `yaml:"steps"`
}

// ScenarioRecord declares the record a scenario starts from.
type ScenarioRecord struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

// StepResult is the observable outcome of one step.
type StepResult struct {
	Step     int
	Access   query.Access
	Value    any  // what a read returned
	Accepted bool // whether a write was accepted
}

// DemoScenario reads name and age, writes age = 40, then reads age again.
func DemoScenario() Scenario {
	return Scenario{
		Record: ScenarioRecord{
			Name: "person",
			Fields: []Field{
				{Name: "name", Value: "Ali"},
				{Name: "age", Value: 35},
			},
		},
		Alias: "personProxy",
		Steps: []string{
			"personProxy.name",
			"personProxy.age",
			"personProxy.age = 40",
			"personProxy.age",
		},
	}
}

// LoadScenario decodes a YAML scenario.
func LoadScenario(r io.Reader) (Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Scenario{}, fmt.Errorf("gotrap: failed to decode scenario: %w", err)
	}
	if len(s.Record.Fields) == 0 {
		return Scenario{}, errors.New("gotrap: scenario declares no fields")
	}
	return s, nil
}

// NewRecord builds the scenario's starting record.
func (s Scenario) NewRecord() *Record {
	return NewRecord(s.Record.Name, s.Record.Fields...)
}

// Run replays every step through p. Blank and comment steps are skipped.
// A rejected write is reported in its StepResult, not as an error.
func (s Scenario) Run(ctx context.Context, p *Proxy) ([]StepResult, error) {
	results := make([]StepResult, 0, len(s.Steps))
	for i, step := range s.Steps {
		if query.TrimStatement(step) == "" {
			continue
		}
		a, ok := query.ParseAccess(step)
		if !ok {
			return results, fmt.Errorf("gotrap: step %d: unrecognized access %q", i+1, step)
		}
		if a.Record != "" && a.Record != s.Record.Name && a.Record != s.Alias {
			return results, fmt.Errorf("%w: step %d: %s", ErrUnknownRecord, i+1, ident.Qualify(a.Record, a.Field))
		}

		res := StepResult{Step: i + 1, Access: a}
		switch a.Op {
		case "get":
			res.Value = p.GetContext(ctx, a.Field)
		case "set":
			current, _ := p.Target().Lookup(a.Field)
			v, err := Coerce(current, a.Value, a.Quoted)
			if err != nil {
				return results, fmt.Errorf("gotrap: step %d: %w", i+1, err)
			}
			res.Accepted = p.SetContext(ctx, a.Field, v)
		}
		results = append(results, res)
	}
	return results, nil
}
