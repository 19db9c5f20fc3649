package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mickamy/gotrap"
)

func newRunCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.yaml|->",
		Short: "Replay a scenario file",
		Long: `Reads a YAML scenario declaring a record and a list of steps, e.g.

  record:
    name: person
    fields:
      - {name: name, value: Ali}
      - {name: age, value: 35}
  steps:
    - person.name
    - person.age = 40

Use - to read the scenario from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open scenario: %w", err)
				}
				defer func(f *os.File) {
					_ = f.Close()
				}(f)
				r = f
			}
			sc, err := gotrap.LoadScenario(r)
			if err != nil {
				return err
			}
			s, err := newSession(cmd.Context(), loadOptions(v), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return s.run(sc)
		},
	}
}
