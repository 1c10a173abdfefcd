package agent

import (
	"fmt"

	"github.com/rayaq-siddiqui/snake-rl/expreplay"
	ts "github.com/rayaq-siddiqui/snake-rl/timestep"
)

// Orchestrator forwards transitions to an Estimator for training,
// either one transition at a time or as batches replayed from memory.
type Orchestrator struct {
	estimator Estimator
	memory    *expreplay.Memory
	batchSize int
}

// NewOrchestrator returns a new Orchestrator that trains estimator on
// batches of at most batchSize transitions sampled from memory
func NewOrchestrator(estimator Estimator, memory *expreplay.Memory,
	batchSize int) (*Orchestrator, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("neworchestrator: batch size must be "+
			"positive \n\twant(>0) \n\thave(%v)", batchSize)
	}

	return &Orchestrator{
		estimator: estimator,
		memory:    memory,
		batchSize: batchSize,
	}, nil
}

// TrainStep trains the estimator on a single transition as a batch of
// size 1
func (o *Orchestrator) TrainStep(t ts.Transition) error {
	if err := o.estimator.TrainStep(ts.NewBatch(t)); err != nil {
		return fmt.Errorf("trainstep: %v", err)
	}
	return nil
}

// TrainLongMemory trains the estimator on one batch sampled from
// memory. If memory holds no more than the batch size, the entire
// memory is used. Nothing is trained when memory is empty.
func (o *Orchestrator) TrainLongMemory() error {
	sample := o.memory.Sample(o.batchSize)
	if len(sample) == 0 {
		return nil
	}

	if err := o.estimator.TrainStep(ts.NewBatch(sample...)); err != nil {
		return fmt.Errorf("trainlongmemory: %v", err)
	}
	return nil
}
