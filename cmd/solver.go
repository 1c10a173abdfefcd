package cmd

import (
	"fmt"

	"github.com/rayaq-siddiqui/snake-rl/experiment"
	"github.com/rayaq-siddiqui/snake-rl/solver"
)

// setStepSize replaces the configured solver with one of the same type
// using a new step size
func setStepSize(c *experiment.FileConfig, stepSize float64) error {
	var s *solver.Solver
	var err error

	switch config := c.Network.Solver.Config.(type) {
	case *solver.AdamConfig:
		s, err = solver.NewAdam(stepSize, config.Epsilon, config.Beta1,
			config.Beta2, config.Batch, config.Clip)
	case *solver.VanillaConfig:
		s, err = solver.NewVanilla(stepSize, config.Batch, config.Clip)
	case *solver.RMSPropConfig:
		s, err = solver.NewRMSProp(stepSize, config.Epsilon, config.Rho,
			config.Batch, config.Clip)
	default:
		return fmt.Errorf("setstepsize: unknown solver configuration %T",
			config)
	}
	if err != nil {
		return fmt.Errorf("setstepsize: %v", err)
	}

	c.Network.Solver = s
	return nil
}
