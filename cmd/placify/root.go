package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nocap-placify/placify/internal/config"
	"github.com/nocap-placify/placify/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "placify",
	Short: "Placify runs the guided registration and mentor session wizards",
	Long: `Placify collects student registrations and mentor session notes through
step-by-step wizards that validate each step before moving on, and submits
the result to the placement backend.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the config file (default: ./"+config.ProjectConfigFile+" when present)")
	rootCmd.PersistentFlags().String("log-level", "", "Override the log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("definitions", "", "Directory of YAML wizard definitions (default: built-in wizards)")
}

// loadConfig resolves the configuration and the logger every command shares.
// Logs always go to stderr so stdout stays clean for command output.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.NewLoader(logging.NewNop()).Load(path)
	if err != nil {
		return nil, nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if dir, _ := cmd.Flags().GetString("definitions"); dir != "" {
		cfg.Definitions = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.NewFormat(os.Stderr, cfg.Log.Format, level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
