package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fabsim/calculator"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "fabsim",
	Short:         "Semiconductor process simulator",
	Long:          `fabsim simulates oxidation, etching and deposition and plots film thickness or etch depth over time.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", calculator.DefaultConfigPath, "ini file with server, log and model settings")
	rootCmd.PersistentFlags().String("log-level", "", "log level (overrides the config file)")
}

// loadConfig reads --config and applies the log level.
func loadConfig(cmd *cobra.Command) (calculator.Config, string, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := calculator.LoadConfig(path)
	if err != nil {
		return cfg, path, err
	}
	level := cfg.LogLevel
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		level = l
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return cfg, path, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(lvl)
	return cfg, path, nil
}
