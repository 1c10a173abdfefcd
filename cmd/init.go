package cmd

import (
	"fmt"

	"github.com/rayaq-siddiqui/snake-rl/highscore"
	"github.com/spf13/cobra"
)

var resetHighScore bool

// InitCommand creates the all-time high score file needed for training
func InitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the all-time high score file",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig()
			if err != nil {
				return err
			}

			written, err := highscore.Init(c.HighScorePath, resetHighScore)
			if err != nil {
				return err
			}

			if written {
				fmt.Fprintf(cmd.OutOrStdout(), "high score at %v set to 0\n",
					c.HighScorePath)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "high score at %v already "+
					"exists, use --reset to overwrite it\n", c.HighScorePath)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&resetHighScore, "reset", false,
		"Overwrite an existing high score with 0")

	return cmd
}
