package experiment

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rayaq-siddiqui/snake-rl/agent"
	"github.com/rayaq-siddiqui/snake-rl/deepq"
	"github.com/rayaq-siddiqui/snake-rl/environment"
	"github.com/rayaq-siddiqui/snake-rl/environment/snake"
	"github.com/rayaq-siddiqui/snake-rl/experiment/checkpointer"
	"github.com/rayaq-siddiqui/snake-rl/experiment/tracker"
	"github.com/rayaq-siddiqui/snake-rl/features"
	"github.com/rayaq-siddiqui/snake-rl/highscore"
	"github.com/rs/zerolog"
)

// FileConfig is the JSON configuration of a training session
type FileConfig struct {
	Board   snake.Config
	Agent   agent.Config
	Network deepq.Config

	HighScorePath string
	MaxEpisodes   int

	// CheckpointEvery, if positive, saves an enumerated checkpoint next
	// to the model every CheckpointEvery games
	CheckpointEvery int

	// Tracker outputs, each disabled when empty
	ScoresPath string
	PlotPath   string
	ChartPath  string

	// PlotEvery re-renders the plot every PlotEvery games
	PlotEvery int
}

// DefaultFileConfig returns the reference configuration
func DefaultFileConfig() FileConfig {
	return FileConfig{
		Board:         snake.DefaultConfig(),
		Agent:         agent.DefaultConfig(),
		Network:       deepq.DefaultConfig(),
		HighScorePath: "./model/high.txt",
		ScoresPath:    "./data/scores.bin",
		PlotPath:      "./data/training.png",
		PlotEvery:     10,
	}
}

// LoadFileConfig reads a FileConfig from a JSON file. Fields missing
// from the file keep their default values.
func LoadFileConfig(path string) (FileConfig, error) {
	c := DefaultFileConfig()

	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("loadfileconfig: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&c); err != nil {
		return c, fmt.Errorf("loadfileconfig: could not decode %v: %v",
			path, err)
	}
	return c, c.Validate()
}

// Write writes the configuration as indented JSON
func (c FileConfig) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// Validate checks a FileConfig to ensure it is a valid configuration
func (c FileConfig) Validate() error {
	if err := c.Board.Validate(); err != nil {
		return fmt.Errorf("validate: board: %v", err)
	}
	if err := c.Agent.Validate(); err != nil {
		return fmt.Errorf("validate: agent: %v", err)
	}
	if err := c.Network.Validate(); err != nil {
		return fmt.Errorf("validate: network: %v", err)
	}
	if c.HighScorePath == "" {
		return fmt.Errorf("validate: no high score file specified")
	}
	if c.Agent.ModelPath == "" {
		return fmt.Errorf("validate: no model path specified")
	}
	return nil
}

// CreateSession creates the game, estimator, agent, and trackers
// described by the configuration and returns a Session running them.
// If live is non-nil, a live summary of each game is written to it.
func (c FileConfig) CreateSession(logger zerolog.Logger,
	live io.Writer) (*Session, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createsession: %v", err)
	}

	game, err := snake.New(c.Board)
	if err != nil {
		return nil, fmt.Errorf("createsession: could not create game: %v",
			err)
	}

	q, err := deepq.New(features.Size, environment.NumActions, c.Network)
	if err != nil {
		return nil, fmt.Errorf("createsession: could not create network: %v",
			err)
	}

	a, err := agent.New(c.Agent, q, logger)
	if err != nil {
		return nil, fmt.Errorf("createsession: could not create agent: %v",
			err)
	}

	var trackers []tracker.Tracker
	if live != nil {
		trackers = append(trackers, tracker.NewLive(live, true))
	}
	if c.ScoresPath != "" {
		trackers = append(trackers, tracker.NewScores(c.ScoresPath))
	}
	if c.PlotPath != "" {
		trackers = append(trackers, tracker.NewPlot(c.PlotPath, c.PlotEvery))
	}
	if c.ChartPath != "" {
		trackers = append(trackers, tracker.NewChart(c.ChartPath))
	}

	s := NewSession(
		Config{ModelPath: c.Agent.ModelPath, MaxEpisodes: c.MaxEpisodes},
		game,
		a,
		highscore.File{Path: c.HighScorePath},
		logger,
		trackers...,
	)

	if c.CheckpointEvery > 0 {
		ext := filepath.Ext(c.Agent.ModelPath)
		name := c.Agent.ModelPath[:len(c.Agent.ModelPath)-len(ext)] + "-"
		check, err := checkpointer.NewNGames(
			c.CheckpointEvery,
			checkpointer.SaverFunc(a.SaveModel),
			checkpointer.FilenameEnumerator(0, name, ext),
		)
		if err != nil {
			return nil, fmt.Errorf("createsession: %v", err)
		}
		s.RegisterCheckpointer(check)
	}

	return s, nil
}
