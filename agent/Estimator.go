// Package agent implements a deep Q-learning agent that learns to play
// snake from online transitions and replayed batches of past
// transitions.
package agent

import (
	"github.com/rayaq-siddiqui/snake-rl/policy"
	ts "github.com/rayaq-siddiqui/snake-rl/timestep"
)

// Estimator is a value function estimator. It predicts the value of
// each action in a state and learns from batches of transitions. All
// temporal difference targets, discounting, and weight updates are the
// Estimator's responsibility.
type Estimator interface {
	policy.Predictor

	// TrainStep takes one learning step on a batch of transitions
	TrainStep(ts.Batch) error

	// Save and Load write and read checkpoints of the learned weights
	Save(path string) error
	Load(path string) error
}
