package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/mickamy/gotrap"
)

type Person struct {
	ID       string
	Name     string
	Age      int
	Password string
}

func main() {
	rec, err := gotrap.FromStruct(Person{
		ID:       uuid.NewString(),
		Name:     "Ali",
		Age:      35,
		Password: "hunter2",
	})
	if err != nil {
		log.Fatalf("record: %v", err)
	}

	// Log every access twice: console lines on stdout, structured records on stderr.
	h := gotrap.New(gotrap.Config{
		Redact:       gotrap.RedactMap{"password": gotrap.Mask},
		ForwardReads: true,
		Loggers: []gotrap.Logger{
			gotrap.NewWriterLogger(os.Stdout),
			gotrap.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil))),
		},
	})
	p := h.Wrap(rec)

	// Metadata
	ctx := gotrap.WithOperator(context.Background(), "demo-user")
	ctx = gotrap.WithTraceID(ctx, "trace-demo-001")
	ctx = gotrap.WithReason(ctx, "demo run")

	fmt.Printf("hello, %v\n", p.GetContext(ctx, "name"))

	if !p.SetContext(ctx, "age", p.GetContext(ctx, "age").(int)+1) {
		log.Fatal("age write rejected")
	}
	if !p.SetContext(ctx, "password", "s3cret") {
		log.Fatal("password write rejected")
	}
	if p.SetContext(ctx, "email", "ali@example.com") {
		log.Fatal("write to undeclared field accepted")
	}

	// Show results
	age, _ := rec.Lookup("age")
	fmt.Printf("%s age = %v\n", rec.Name(), age)
	if err := h.Export(os.Stdout, gotrap.FormatTable); err != nil {
		log.Fatalf("history: %v", err)
	}
}
