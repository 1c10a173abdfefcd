// Package policy implements ε-greedy action selection over the action
// values predicted by a value function estimator
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Reference exploration parameters
const (
	DefaultEpsilonStart = 20
	DefaultEpsilonRange = 250
)

// Predictor predicts the value of each action in a state
type Predictor interface {
	Predict(state mat.Vector) ([]float64, error)
}

// EGreedy implements an ε-greedy policy whose ε decays with the number
// of games played.
//
// On each action selection, an integer is drawn uniformly from
// [0, Range]. If it is smaller than ε, a uniformly random action is
// taken. Otherwise, the action of maximum predicted value is taken,
// ties broken in favour of the lowest action index.
type EGreedy struct {
	schedule   Schedule
	drawRange  int
	numActions int
	rng        *rand.Rand
}

// NewEGreedy returns a new EGreedy policy over numActions actions
func NewEGreedy(schedule Schedule, drawRange, numActions int,
	seed uint64) (*EGreedy, error) {
	if drawRange < 0 {
		return nil, fmt.Errorf("newegreedy: draw range must be "+
			"non-negative \n\twant(>=0) \n\thave(%v)", drawRange)
	}
	if numActions < 1 {
		return nil, fmt.Errorf("newegreedy: must have at least one action "+
			"\n\twant(>0) \n\thave(%v)", numActions)
	}

	return &EGreedy{
		schedule:   schedule,
		drawRange:  drawRange,
		numActions: numActions,
		rng:        rand.New(rand.NewSource(seed)),
	}, nil
}

// Epsilon returns the value of ε after games games
func (e *EGreedy) Epsilon(games int) float64 {
	return e.schedule.Epsilon(games)
}

// SelectAction selects an action in state as a one-hot vector, given
// that games games have been played so far. The Predictor is only
// queried when the greedy action is taken.
func (e *EGreedy) SelectAction(p Predictor, state mat.Vector,
	games int) (*mat.VecDense, error) {
	epsilon := e.Epsilon(games)

	if draw := e.rng.Intn(e.drawRange + 1); float64(draw) < epsilon {
		return OneHot(e.rng.Intn(e.numActions), e.numActions), nil
	}

	actionValues, err := p.Predict(state)
	if err != nil {
		return nil, fmt.Errorf("selectaction: could not predict action "+
			"values: %v", err)
	}
	if len(actionValues) != e.numActions {
		return nil, fmt.Errorf("selectaction: invalid number of action "+
			"values \n\twant(%v) \n\thave(%v)", e.numActions,
			len(actionValues))
	}

	// floats.MaxIdx returns the first index of the maximum
	return OneHot(floats.MaxIdx(actionValues), e.numActions), nil
}

// OneHot returns a vector of size n with a 1 at index i
func OneHot(i, n int) *mat.VecDense {
	v := mat.NewVecDense(n, nil)
	v.SetVec(i, 1.0)
	return v
}
