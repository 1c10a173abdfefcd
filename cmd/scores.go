package cmd

import (
	"fmt"

	"github.com/rayaq-siddiqui/snake-rl/experiment/tracker"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

var last int

// ScoresCommand prints the scores saved by a training session
func ScoresCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores [file]",
		Short: "Print the scores saved by a training session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig()
			if err != nil {
				return err
			}
			path := c.ScoresPath
			if len(args) == 1 {
				path = args[0]
			}

			scores, means, err := tracker.LoadScores(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(scores) == 0 {
				fmt.Fprintln(out, "no games played")
				return nil
			}

			start := 0
			if last > 0 && len(scores) > last {
				start = len(scores) - last
			}
			for i := start; i < len(scores); i++ {
				fmt.Fprintf(out, "Game %d Score %v Mean %.2f\n", i+1,
					scores[i], means[i])
			}
			fmt.Fprintf(out, "Games %d Record %v Mean %.2f\n", len(scores),
				floats.Max(scores), means[len(means)-1])
			return nil
		},
	}
	cmd.Flags().IntVar(&last, "last", 10,
		"Number of most recent games to print, or 0 for all")

	return cmd
}
