package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mickamy/gotrap"
)

func newDemoCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Replay the person record illustration",
		Long: `Wraps {name: Ali, age: 35}, reads name and age, writes age = 40,
and reads age again. Each access prints one line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), loadOptions(v), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return s.run(gotrap.DemoScenario())
		},
	}
}
