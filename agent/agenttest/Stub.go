// Package agenttest provides a deterministic Estimator for testing
// code that drives an agent
package agenttest

import (
	"fmt"
	"io/fs"
	"os"

	ts "github.com/rayaq-siddiqui/snake-rl/timestep"
	"gonum.org/v1/gonum/mat"
)

// Stub is an Estimator that always predicts the same action values and
// records every call made to it
type Stub struct {
	Values []float64 // Predicted action values

	Batches     []ts.Batch // Every batch passed to TrainStep
	Predictions int        // Number of calls to Predict
	Saved       []string   // Paths passed to Save
	Loaded      []string   // Paths passed to Load

	// Checkpoints that Load can find. Loading any other path fails
	// with fs.ErrNotExist.
	Checkpoints map[string]bool

	// Err, if set, is returned from every call
	Err error
}

// NewStub returns a Stub predicting values
func NewStub(values ...float64) *Stub {
	return &Stub{
		Values:      values,
		Checkpoints: make(map[string]bool),
	}
}

// Predict returns a copy of the stub's action values
func (s *Stub) Predict(mat.Vector) ([]float64, error) {
	s.Predictions++
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]float64{}, s.Values...), nil
}

// TrainStep records b
func (s *Stub) TrainStep(b ts.Batch) error {
	s.Batches = append(s.Batches, b)
	return s.Err
}

// Save records path and makes it loadable
func (s *Stub) Save(path string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Saved = append(s.Saved, path)
	if s.Checkpoints == nil {
		s.Checkpoints = make(map[string]bool)
	}
	s.Checkpoints[path] = true
	return nil
}

// Load records path, failing if it was never saved
func (s *Stub) Load(path string) error {
	s.Loaded = append(s.Loaded, path)
	if s.Err != nil {
		return s.Err
	}
	if !s.Checkpoints[path] {
		return fmt.Errorf("load: %w", &fs.PathError{Op: "open", Path: path,
			Err: os.ErrNotExist})
	}
	return nil
}

// BatchSizes returns the size of each batch passed to TrainStep
func (s *Stub) BatchSizes() []int {
	sizes := make([]int, len(s.Batches))
	for i, b := range s.Batches {
		sizes[i] = b.Len()
	}
	return sizes
}
