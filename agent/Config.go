package agent

import (
	"fmt"

	"github.com/rayaq-siddiqui/snake-rl/policy"
)

// Config implements a configuration of an Agent
type Config struct {
	MaxMemory int // Capacity of the replay memory
	BatchSize int // Transitions per replayed batch

	// ε = EpsilonStart - games, compared against an integer drawn
	// uniformly from [0, EpsilonRange]
	EpsilonStart float64
	EpsilonRange int

	// ModelPath is the checkpoint loaded on creation, if non-empty
	ModelPath string

	Seed uint64
}

// DefaultConfig returns the reference agent configuration
func DefaultConfig() Config {
	return Config{
		MaxMemory:    100_000,
		BatchSize:    1000,
		EpsilonStart: policy.DefaultEpsilonStart,
		EpsilonRange: policy.DefaultEpsilonRange,
		ModelPath:    "./model/model.gob",
		Seed:         1,
	}
}

// Validate checks a Config to ensure it is a valid configuration
func (c Config) Validate() error {
	if c.MaxMemory < 1 {
		return fmt.Errorf("validate: memory capacity must be positive "+
			"\n\twant(>0) \n\thave(%v)", c.MaxMemory)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("validate: batch size must be positive "+
			"\n\twant(>0) \n\thave(%v)", c.BatchSize)
	}
	if c.EpsilonRange < 0 {
		return fmt.Errorf("validate: epsilon range must be non-negative "+
			"\n\twant(>=0) \n\thave(%v)", c.EpsilonRange)
	}
	return nil
}
