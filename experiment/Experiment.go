// Package experiment implements functionality for running an agent on
// a snake environment until it is stopped
package experiment

import (
	"context"

	"github.com/rayaq-siddiqui/snake-rl/experiment/tracker"
)

// Experiment outlines types that can run experiments. The Run() method
// runs episodes until the context is done or some other ending
// condition is reached. The RunEpisode() method runs a single
// episode.
//
// In order to save data, Experiments use Trackers. Experiments send
// the score of each finished game and the running mean score to each
// Tracker using the Tracker's Track() method. The Save() method then
// saves or renders all tracked data.
type Experiment interface {
	Run(ctx context.Context) error
	RunEpisode(ctx context.Context) (StepResult, error)

	// Save all tracked data
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment
	Register(t tracker.Tracker)
}

// HighScoreStore persists the all-time high score across sessions
type HighScoreStore interface {
	Read() (int, error)
	Write(score int) error
}
