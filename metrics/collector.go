// Package metrics counts intercepted accesses as Prometheus counters.
package metrics

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mickamy/gotrap"
)

// Collector is a gotrap.Logger that counts reads and writes per record and field.
// It is also a prometheus.Collector, so it can be registered directly.
type Collector struct {
	reads  *prometheus.CounterVec
	writes *prometheus.CounterVec
}

var _ gotrap.Logger = (*Collector)(nil)
var _ prometheus.Collector = (*Collector)(nil)

func NewCollector() *Collector {
	return &Collector{
		reads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotrap_reads_total",
				Help: "Intercepted field reads",
			},
			[]string{"record", "field"},
		),
		writes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotrap_writes_total",
				Help: "Intercepted field writes",
			},
			[]string{"record", "field", "accepted"},
		),
	}
}

// Log implements gotrap.Logger.
func (c *Collector) Log(_ context.Context, e gotrap.Event) {
	switch e.Op {
	case gotrap.OpGet:
		c.reads.WithLabelValues(e.Record, e.Field).Inc()
	case gotrap.OpSet:
		c.writes.WithLabelValues(e.Record, e.Field, strconv.FormatBool(e.Accepted)).Inc()
	}
}

// Reads returns the read counter for record and field.
func (c *Collector) Reads(record, field string) prometheus.Counter {
	return c.reads.WithLabelValues(record, field)
}

// Writes returns the write counter for record, field and outcome.
func (c *Collector) Writes(record, field string, accepted bool) prometheus.Counter {
	return c.writes.WithLabelValues(record, field, strconv.FormatBool(accepted))
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.reads.Describe(ch)
	c.writes.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.reads.Collect(ch)
	c.writes.Collect(ch)
}

// Render writes every gathered counter as a table row: metric, labels, value.
func Render(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Labels", "Value")
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			sort.Strings(labels)
			value := m.GetCounter().GetValue()
			if gauge := m.GetGauge(); gauge != nil {
				value = gauge.GetValue()
			}
			if err := table.Append([]string{
				mf.GetName(),
				strings.Join(labels, ","),
				strconv.FormatFloat(value, 'f', -1, 64),
			}); err != nil {
				return err
			}
		}
	}
	return table.Render()
}
