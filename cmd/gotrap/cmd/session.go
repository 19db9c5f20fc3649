package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"

	"github.com/mickamy/gotrap"
	"github.com/mickamy/gotrap/metrics"
)

// options is the resolved flag/env/config view for a single run.
type options struct {
	ForwardReads bool
	Redact       []string
	LogFormat    string
	History      string
	Metrics      bool
	Operator     string
	Reason       string
}

func loadOptions(v *viper.Viper) options {
	return options{
		ForwardReads: v.GetBool("forward_reads"),
		Redact:       splitList(v.GetStringSlice("redact")),
		LogFormat:    v.GetString("log_format"),
		History:      v.GetString("history"),
		Metrics:      v.GetBool("metrics"),
		Operator:     v.GetString("operator"),
		Reason:       v.GetString("reason"),
	}
}

// splitList flattens comma-separated entries, as given by GOTRAP_REDACT=name,age.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// session wires a handler, its loggers and optional metrics for one scenario run.
type session struct {
	handler  *gotrap.Handler
	registry *prometheus.Registry
	history  gotrap.Format
	ctx      context.Context
	out      io.Writer
}

func newSession(ctx context.Context, opts options, out, errOut io.Writer) (*session, error) {
	var loggers []gotrap.Logger
	switch opts.LogFormat {
	case "", "text":
		loggers = append(loggers, gotrap.NewWriterLogger(out))
	case "slog":
		loggers = append(loggers, gotrap.NewSlogLogger(slog.New(slog.NewTextHandler(errOut, nil))))
	case "json":
		loggers = append(loggers, gotrap.NewSlogLogger(slog.New(slog.NewJSONHandler(errOut, nil))))
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.LogFormat)
	}

	s := &session{out: out}
	if opts.Metrics {
		c := metrics.NewCollector()
		s.registry = prometheus.NewRegistry()
		if err := s.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		loggers = append(loggers, c)
	}

	if opts.History != "" && opts.History != "none" {
		f, err := gotrap.ParseFormat(opts.History)
		if err != nil {
			return nil, err
		}
		s.history = f
	}

	redact := make(gotrap.RedactMap, len(opts.Redact))
	for _, field := range opts.Redact {
		redact[field] = gotrap.Mask
	}

	historyLimit := -1
	if s.history != "" {
		historyLimit = gotrap.DefaultHistoryLimit
	}
	s.handler = gotrap.New(gotrap.Config{
		Redact:       redact,
		ForwardReads: opts.ForwardReads,
		HistoryLimit: historyLimit,
		Loggers:      loggers,
	})

	ctx = gotrap.WithTraceID(ctx, uuid.NewString())
	if opts.Operator != "" {
		ctx = gotrap.WithOperator(ctx, opts.Operator)
	}
	if opts.Reason != "" {
		ctx = gotrap.WithReason(ctx, opts.Reason)
	}
	s.ctx = ctx
	return s, nil
}

// run replays sc against a fresh record, then prints history and metrics if requested.
func (s *session) run(sc gotrap.Scenario) error {
	if _, err := sc.Run(s.ctx, s.handler.Wrap(sc.NewRecord())); err != nil {
		return err
	}
	if s.history != "" {
		if err := s.handler.Export(s.out, s.history); err != nil {
			return fmt.Errorf("failed to write history: %w", err)
		}
	}
	if s.registry != nil {
		if err := metrics.Render(s.out, s.registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
