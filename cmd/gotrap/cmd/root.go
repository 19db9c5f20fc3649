package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute builds the command tree and runs it against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns the gotrap command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "gotrap",
		Short: "Replay intercepted field reads and writes on an in-memory record",
		Long: `gotrap wraps a record so every field read and write goes through a trap.
The traps log each access, apply writes, and keep a bounded history.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gotrap/config.yaml)")
	pf.Bool("forward-reads", false, "reads return the stored value instead of nothing")
	pf.StringSlice("redact", nil, "fields whose values are masked in logs and history")
	pf.String("log-format", "text", "access log format: text, slog or json")
	pf.String("history", "none", "print history after the run: none, text, table, json or yaml")
	pf.Bool("metrics", false, "print access counters after the run")
	pf.String("operator", "", "operator recorded with every access")
	pf.String("reason", "", "reason recorded with every access")

	for key, flag := range map[string]string{
		"forward_reads": "forward-reads",
		"redact":        "redact",
		"log_format":    "log-format",
		"history":       "history",
		"metrics":       "metrics",
		"operator":      "operator",
		"reason":        "reason",
	} {
		_ = v.BindPFlag(key, pf.Lookup(flag))
	}

	rootCmd.AddCommand(newDemoCmd(v), newRunCmd(v))
	return rootCmd
}

// initConfig reads in config file and ENV variables if set
func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".gotrap"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("GOTRAP")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}
