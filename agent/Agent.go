package agent

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/rayaq-siddiqui/snake-rl/environment"
	"github.com/rayaq-siddiqui/snake-rl/expreplay"
	"github.com/rayaq-siddiqui/snake-rl/features"
	"github.com/rayaq-siddiqui/snake-rl/policy"
	ts "github.com/rayaq-siddiqui/snake-rl/timestep"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// Agent plays snake with an ε-greedy policy over the action values
// of an Estimator, remembering every transition it observes.
//
// The only mutable state an Agent holds is its episode counter and
// its replay memory.
type Agent struct {
	games int

	memory    *expreplay.Memory
	behaviour *policy.EGreedy
	estimator Estimator
	trainer   *Orchestrator

	logger zerolog.Logger
}

// New creates a new Agent. If c.ModelPath is set, the estimator's
// weights are loaded from the checkpoint there. A missing checkpoint
// is logged and the agent starts from the estimator's current weights;
// any other load error is returned.
func New(c Config, estimator Estimator, logger zerolog.Logger) (*Agent,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	memory, err := expreplay.New(c.MaxMemory, c.Seed)
	if err != nil {
		return nil, fmt.Errorf("new: could not create replay memory: %v",
			err)
	}

	behaviour, err := policy.NewEGreedy(
		policy.Linear{Start: c.EpsilonStart},
		c.EpsilonRange,
		environment.NumActions,
		c.Seed+1,
	)
	if err != nil {
		return nil, fmt.Errorf("new: could not create policy: %v", err)
	}

	trainer, err := NewOrchestrator(estimator, memory, c.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	if c.ModelPath != "" {
		err := estimator.Load(c.ModelPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Warn().Str("path", c.ModelPath).
				Msg("no checkpoint found, starting from scratch")
		case err != nil:
			return nil, fmt.Errorf("new: could not load checkpoint: %v", err)
		default:
			logger.Info().Str("path", c.ModelPath).Msg("loaded checkpoint")
		}
	}

	return &Agent{
		memory:    memory,
		behaviour: behaviour,
		estimator: estimator,
		trainer:   trainer,
		logger:    logger,
	}, nil
}

// Observe encodes the current state of the environment
func (a *Agent) Observe(s environment.Snapshot) *mat.VecDense {
	return features.Encode(s)
}

// ChooseAction returns a one-hot action to take in state
func (a *Agent) ChooseAction(state mat.Vector) (*mat.VecDense, error) {
	action, err := a.behaviour.SelectAction(a.estimator, state, a.games)
	if err != nil {
		return nil, fmt.Errorf("chooseaction: %v", err)
	}
	return action, nil
}

// Remember stores a transition in replay memory
func (a *Agent) Remember(t ts.Transition) {
	a.memory.Add(t)
}

// TrainShort trains the estimator on a single transition
func (a *Agent) TrainShort(t ts.Transition) error {
	return a.trainer.TrainStep(t)
}

// TrainLong trains the estimator on a batch replayed from memory
func (a *Agent) TrainLong() error {
	return a.trainer.TrainLongMemory()
}

// AdvanceEpisode records that an episode has ended
func (a *Agent) AdvanceEpisode() {
	a.games++
	a.logger.Debug().Int("game", a.games).Float64("epsilon", a.Epsilon()).
		Msg("episode ended")
}

// Games returns the number of episodes played
func (a *Agent) Games() int {
	return a.games
}

// Epsilon returns the current exploration threshold. It is not clamped
// and becomes negative once more games have been played than the
// starting value.
func (a *Agent) Epsilon() float64 {
	return a.behaviour.Epsilon(a.games)
}

// Memory returns the agent's replay memory
func (a *Agent) Memory() *expreplay.Memory {
	return a.memory
}

// SaveModel writes a checkpoint of the estimator to path
func (a *Agent) SaveModel(path string) error {
	if err := a.estimator.Save(path); err != nil {
		return fmt.Errorf("savemodel: %v", err)
	}
	return nil
}
