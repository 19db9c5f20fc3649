package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mickamy/gotrap/cmd/gotrap/cmd"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := cmd.NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDemo(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "demo", "--config", writeFile(t, "config.yaml", "{}\n"))
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	want := "The value of name is Ali\n" +
		"The value of age is 35\n" +
		"changed age from 35 to  40\n" +
		"The value of age is 40\n"
	if out != want {
		t.Fatalf("output =\n%s\nwant\n%s", out, want)
	}
}

func TestDemo_ConfigFile(t *testing.T) {
	t.Parallel()

	cfg := writeFile(t, "config.yaml", `
redact: [age]
history: json
operator: tester
`)
	out, _, err := execute(t, "", "demo", "--config", cfg)
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	if !strings.Contains(out, "changed age from [REDACTED] to  [REDACTED]") {
		t.Fatalf("redacted line missing:\n%s", out)
	}
	if !strings.Contains(out, `"operator":"tester"`) || !strings.Contains(out, `"trace_id":"`) {
		t.Fatalf("json history missing metadata:\n%s", out)
	}
}

// Not parallel: t.Setenv.
func TestDemo_RedactFromEnv(t *testing.T) {
	tcs := []struct {
		name string
		env  string
	}{
		{name: "comma separated", env: "name,age"},
		{name: "spaces around commas", env: " name , age ,"},
		{name: "space separated", env: "name age"},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("GOTRAP_REDACT", tc.env)
			out, _, err := execute(t, "", "demo", "--config", writeFile(t, "config.yaml", "{}\n"))
			if err != nil {
				t.Fatalf("demo: %v", err)
			}
			want := "The value of name is [REDACTED]\n" +
				"The value of age is [REDACTED]\n" +
				"changed age from [REDACTED] to  [REDACTED]\n" +
				"The value of age is [REDACTED]\n"
			if out != want {
				t.Fatalf("output =\n%s\nwant\n%s", out, want)
			}
		})
	}
}

func TestDemo_SlogAndMetrics(t *testing.T) {
	t.Parallel()

	out, errOut, err := execute(t, "", "demo",
		"--config", writeFile(t, "config.yaml", "{}\n"),
		"--log-format", "json",
		"--metrics",
	)
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	if strings.Count(errOut, `"msg":`) != 4 {
		t.Fatalf("want 4 json log records, got:\n%s", errOut)
	}
	if !strings.Contains(errOut, `"msg":"changed age from 35 to  40"`) {
		t.Fatalf("json log missing write:\n%s", errOut)
	}
	if !strings.Contains(out, "gotrap_reads_total") || !strings.Contains(out, "gotrap_writes_total") {
		t.Fatalf("metrics table missing counters:\n%s", out)
	}
}

func TestRun_Stdin(t *testing.T) {
	t.Parallel()

	scenario := `
record:
  name: person
  fields:
    - {name: name, value: Ali}
    - {name: age, value: 35}
steps:
  - person.age = 36
  - person.age
`
	out, _, err := execute(t, scenario, "run", "-", "--config", writeFile(t, "config.yaml", "{}\n"), "--forward-reads")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "changed age from 35 to  36\nThe value of age is 36\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	cfg := writeFile(t, "config.yaml", "{}\n")
	tcs := []struct {
		name string
		args []string
	}{
		{name: "missing file", args: []string{"run", filepath.Join(t.TempDir(), "nope.yaml"), "--config", cfg}},
		{name: "bad log format", args: []string{"demo", "--config", cfg, "--log-format", "xml"}},
		{name: "bad history format", args: []string{"demo", "--config", cfg, "--history", "xml"}},
		{name: "missing config", args: []string{"demo", "--config", filepath.Join(t.TempDir(), "absent.yaml")}},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, _, err := execute(t, "", tc.args...); err == nil {
				t.Fatalf("Execute(%v) err = nil, want error", tc.args)
			}
		})
	}
}
