// Package cmd implements the snake-rl command line interface
package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

// RootCommand returns the snake-rl command with all subcommands
func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snake-rl",
		Short: "Train a deep Q-learning agent to play snake",

		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a JSON configuration file")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log at debug level")

	cmd.AddCommand(
		TrainCommand(),
		InitCommand(),
		ScoresCommand(),
		ConfigCommand(),
	)

	return cmd
}

// newLogger returns a console logger writing to stderr
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}).Level(level).With().Timestamp().Logger()
}
