package timestep

import (
	"gonum.org/v1/gonum/mat"
)

// Batch is a batch of transitions unzipped into five parallel
// sequences. For any index i, States[i], Actions[i], Rewards[i],
// NextStates[i], and Dones[i] originate from the same Transition.
type Batch struct {
	States     []mat.Vector
	Actions    []mat.Vector
	Rewards    []float64
	NextStates []mat.Vector
	Dones      []bool
}

// NewBatch unzips transitions into a Batch
func NewBatch(transitions ...Transition) Batch {
	n := len(transitions)
	b := Batch{
		States:     make([]mat.Vector, n),
		Actions:    make([]mat.Vector, n),
		Rewards:    make([]float64, n),
		NextStates: make([]mat.Vector, n),
		Dones:      make([]bool, n),
	}

	for i, t := range transitions {
		b.States[i] = t.State
		b.Actions[i] = t.Action
		b.Rewards[i] = t.Reward
		b.NextStates[i] = t.NextState
		b.Dones[i] = t.Done
	}
	return b
}

// Len returns the number of transitions in the batch
func (b Batch) Len() int {
	return len(b.States)
}

// At zips the batch back together at index i
func (b Batch) At(i int) Transition {
	return Transition{
		State:     b.States[i],
		Action:    b.Actions[i],
		Reward:    b.Rewards[i],
		NextState: b.NextStates[i],
		Done:      b.Dones[i],
	}
}

// FlatStates returns the states of the batch as a row-major slice
// of shape (Len(), features)
func (b Batch) FlatStates() []float64 {
	return flatten(b.States)
}

// FlatNextStates returns the next states of the batch as a row-major
// slice of shape (Len(), features)
func (b Batch) FlatNextStates() []float64 {
	return flatten(b.NextStates)
}

// FlatActions returns the actions of the batch as a row-major slice
// of shape (Len(), actions)
func (b Batch) FlatActions() []float64 {
	return flatten(b.Actions)
}

// flatten concatenates vectors into a single row-major slice
func flatten(vecs []mat.Vector) []float64 {
	if len(vecs) == 0 {
		return nil
	}

	cols := vecs[0].Len()
	data := make([]float64, 0, len(vecs)*cols)
	for _, v := range vecs {
		for j := 0; j < v.Len(); j++ {
			data = append(data, v.AtVec(j))
		}
	}
	return data
}
