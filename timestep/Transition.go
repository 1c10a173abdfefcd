// Package timestep implements the transitions recorded from the
// agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Transition packages together a single (s, a, r, s', done) tuple
// observed on one tick of the environment.
//
// A Transition owns copies of its vectors, so the vectors that were
// used to construct it may be reused by the caller afterwards.
type Transition struct {
	State     mat.Vector
	Action    mat.Vector
	Reward    float64
	NextState mat.Vector
	Done      bool
}

// NewTransition creates and returns a new Transition
func NewTransition(state, action mat.Vector, reward float64,
	nextState mat.Vector, done bool) Transition {
	return Transition{
		State:     mat.VecDenseCopyOf(state),
		Action:    mat.VecDenseCopyOf(action),
		Reward:    reward,
		NextState: mat.VecDenseCopyOf(nextState),
		Done:      done,
	}
}

// String implements the fmt.Stringer interface
func (t Transition) String() string {
	str := "Transition | State: %v | Action: %v | Reward: %.2f | " +
		"Next State: %v | Done: %v"

	return fmt.Sprintf(str, mat.Formatted(t.State.T(), mat.Squeeze()),
		mat.Formatted(t.Action.T(), mat.Squeeze()), t.Reward,
		mat.Formatted(t.NextState.T(), mat.Squeeze()), t.Done)
}
