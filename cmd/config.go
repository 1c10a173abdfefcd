package cmd

import (
	"github.com/rayaq-siddiqui/snake-rl/experiment"
	"github.com/spf13/cobra"
)

// loadConfig returns the configuration file given by --config, or the
// default configuration if none is given
func loadConfig() (experiment.FileConfig, error) {
	if configPath == "" {
		return experiment.DefaultFileConfig(), nil
	}
	return experiment.LoadFileConfig(configPath)
}

// ConfigCommand prints the configuration that would be used, which can
// be edited and passed back with --config
func ConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the configuration as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig()
			if err != nil {
				return err
			}
			return c.Write(cmd.OutOrStdout())
		},
	}
}
