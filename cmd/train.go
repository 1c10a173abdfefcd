package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	modelPath     string
	highScorePath string
	episodes      int
	seed          uint64
	gamma         float64
	stepSize      float64
	noLive        bool
)

// TrainCommand trains the agent until interrupted
func TrainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the agent until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig()
			if err != nil {
				return err
			}

			// Flags override the configuration file
			flags := cmd.Flags()
			if flags.Changed("model") {
				c.Agent.ModelPath = modelPath
			}
			if flags.Changed("high-score") {
				c.HighScorePath = highScorePath
			}
			if flags.Changed("episodes") {
				c.MaxEpisodes = episodes
			}
			if flags.Changed("seed") {
				c.Agent.Seed = seed
				c.Board.Seed = seed
			}
			if flags.Changed("gamma") {
				c.Network.Gamma = gamma
			}
			if flags.Changed("lr") {
				if err := setStepSize(&c, stepSize); err != nil {
					return err
				}
			}

			logger := newLogger()
			live := cmd.OutOrStdout()
			if noLive {
				live = nil
			}

			session, err := c.CreateSession(logger, live)
			if err != nil {
				return err
			}
			logger.Info().Str("session", session.ID()).
				Str("model", c.Agent.ModelPath).
				Str("high_score", c.HighScorePath).
				Msg("starting training")

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt) // channel for interrupts from os
			defer signal.Stop(sigCh)

			doneCh := make(chan struct{})
			defer close(doneCh)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go func() {
				select {
				case <-sigCh:
				case <-doneCh:
				}
				cancel()
			}()

			runErr := session.Run(ctx)
			if errors.Is(runErr, context.Canceled) {
				logger.Info().Int("record", session.Record()).
					Msg("training interrupted")
				runErr = nil
			}

			if err := session.Save(); err != nil {
				logger.Error().Err(err).Msg("could not save tracked data")
			}
			return runErr
		},
	}

	defaults := cmd.Flags()
	defaults.StringVar(&modelPath, "model", "./model/model.gob",
		"Path of the model checkpoint")
	defaults.StringVar(&highScorePath, "high-score", "./model/high.txt",
		"Path of the all-time high score file")
	defaults.IntVar(&episodes, "episodes", 0,
		"Number of games to play, or 0 to play until interrupted")
	defaults.Uint64Var(&seed, "seed", 1, "Seed for the game and agent")
	defaults.Float64Var(&gamma, "gamma", 0.9, "Discount factor")
	defaults.Float64Var(&stepSize, "lr", 0.001, "Learning rate")
	defaults.BoolVar(&noLive, "no-live", false,
		"Disable the live game summary")

	return cmd
}
