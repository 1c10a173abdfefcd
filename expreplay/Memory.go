// Package expreplay implements a bounded experience replay buffer
package expreplay

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/rayaq-siddiqui/snake-rl/timestep"
)

// Memory implements a first-in-first-out experience replay buffer
// with a fixed maximum capacity. Once the buffer is full, each added
// transition overwrites the oldest transition in the buffer.
//
// Memory is a ring buffer: transitions are stored in a slice allocated
// once at construction and a cursor tracks where the next transition
// will be written, so sustained adds never reallocate.
//
// Memory is not safe for concurrent use.
type Memory struct {
	cache []timestep.Transition

	// currentInUsePos is the index the next transition is written to.
	// When the buffer is full, it is also the index of the oldest
	// transition.
	currentInUsePos int
	isFull          bool

	src rand.Source
}

// New returns a new Memory that holds at most capacity transitions.
// The seed parameter seeds the RNG used for sampling.
func New(capacity int, seed uint64) (*Memory, error) {
	if capacity < 1 {
		return nil, &ExpReplayError{Op: "new", Err: errInvalidCapacity}
	}

	return &Memory{
		cache: make([]timestep.Transition, capacity),
		src:   rand.NewSource(seed),
	}, nil
}

// Capacity returns the maximum number of transitions in the buffer
func (m *Memory) Capacity() int {
	return len(m.cache)
}

// Len returns the current number of transitions in the buffer
func (m *Memory) Len() int {
	if m.isFull {
		return m.Capacity()
	}
	return m.currentInUsePos
}

// Add adds a transition to the tail of the buffer. If the buffer is
// at capacity, the oldest transition is evicted.
func (m *Memory) Add(t timestep.Transition) {
	m.cache[m.currentInUsePos] = t

	m.currentInUsePos = (m.currentInUsePos + 1) % m.Capacity()
	if m.currentInUsePos == 0 {
		m.isFull = true
	}
}

// at returns the i-th oldest transition in the buffer
func (m *Memory) at(i int) timestep.Transition {
	if !m.isFull {
		return m.cache[i]
	}
	return m.cache[(m.currentInUsePos+i)%m.Capacity()]
}

// Contents returns all transitions in the buffer, oldest first
func (m *Memory) Contents() []timestep.Transition {
	out := make([]timestep.Transition, m.Len())
	for i := range out {
		out[i] = m.at(i)
	}
	return out
}

// Sample returns a batch of transitions from the buffer. If the buffer
// holds more than batchSize transitions, batchSize distinct
// transitions are drawn uniformly at random. Otherwise, all
// transitions in the buffer are returned, oldest first.
//
// Sample never modifies the buffer.
func (m *Memory) Sample(batchSize int) []timestep.Transition {
	if batchSize <= 0 {
		return []timestep.Transition{}
	}

	size := m.Len()
	if size <= batchSize {
		return m.Contents()
	}

	indices := make([]int, batchSize)
	sampleuv.WithoutReplacement(indices, size, m.src)

	out := make([]timestep.Transition, batchSize)
	for i, index := range indices {
		out[i] = m.at(index)
	}
	return out
}
