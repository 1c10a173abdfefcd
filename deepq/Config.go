package deepq

import (
	"fmt"
	"math"

	"github.com/rayaq-siddiqui/snake-rl/initwfn"
	"github.com/rayaq-siddiqui/snake-rl/network"
	"github.com/rayaq-siddiqui/snake-rl/solver"
)

// Config implements a configuration of a QNet
type Config struct {
	Layers      []int                 // Hidden layer sizes in neural net
	Biases      []bool                // Whether each layer should have a bias
	Activations []*network.Activation // Activation of each layer
	Solver      *solver.Solver        // Solver for learning weights

	// Initialization algorithm for weights
	InitWFn *initwfn.InitWFn

	Gamma float64 // Discount factor
}

// DefaultConfig returns a QNet configuration with two hidden layers of
// 256 ReLU units, learned with Adam at a step size of 0.001 and a
// discount of 0.9.
func DefaultConfig() Config {
	adam, err := solver.NewDefaultAdam(0.001, 1)
	if err != nil {
		panic(fmt.Sprintf("defaultconfig: could not create solver: %v", err))
	}

	return Config{
		Layers:      []int{256, 256},
		Biases:      []bool{true, true},
		Activations: []*network.Activation{network.ReLU(), network.ReLU()},
		Solver:      adam,
		InitWFn:     initwfn.NewHeU(math.Sqrt2),
		Gamma:       0.9,
	}
}

// Validate checks a Config to ensure it is a valid configuration
func (c Config) Validate() error {
	if len(c.Layers) != len(c.Biases) {
		return fmt.Errorf("validate: invalid number of biases\n\twant(%v)"+
			"\n\thave(%v)", len(c.Layers), len(c.Biases))
	}

	if len(c.Layers) != len(c.Activations) {
		return fmt.Errorf("validate: invalid number of activations"+
			"\n\twant(%v)\n\thave(%v)", len(c.Layers), len(c.Activations))
	}

	for i, act := range c.Activations {
		if act == nil {
			return fmt.Errorf("validate: activation %v is nil", i)
		}
	}

	if c.Solver == nil {
		return fmt.Errorf("validate: no solver specified")
	}

	if c.InitWFn == nil {
		return fmt.Errorf("validate: no weight initializer specified")
	}

	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("validate: discount out of range\n\twant(0 ≤ "+
			"γ ≤ 1)\n\thave(%v)", c.Gamma)
	}
	return nil
}
