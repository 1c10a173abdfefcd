// Package deepq implements a neural network action-value function
// learned with the mean squared TD error of Q-learning.
package deepq

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rayaq-siddiqui/snake-rl/network"
	ts "github.com/rayaq-siddiqui/snake-rl/timestep"
	"gonum.org/v1/gonum/mat"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// QNet predicts the value of each action in a state and learns from
// batches of transitions. All batch sizes share a single policy
// network whose weights are canonical; training happens on per batch
// size clones whose weights are copied back after each step.
type QNet struct {
	features   int
	numActions int
	gamma      float64
	solver     G.Solver // Adapts the weights of the train networks

	// Network with batch size 1 used for predictions and checkpoints
	policy   network.NeuralNet
	policyVM G.VM

	// Learners for batch size 1 and the most recent larger batch size
	learners map[int]*learner
}

// learner holds the networks needed to take a gradient step on a
// batch of a fixed size
type learner struct {
	// Network whose weights are adapted
	trainNet   network.NeuralNet
	trainNetVM G.VM

	// Network that provides the update target for a batch of inputs
	targetNet   network.NeuralNet
	targetNetVM G.VM

	// Inputs to the graph of trainNet needed to compute the update
	// target r + γ * max[Q(s', a')] and the selected action values
	selectedActions       *G.Node
	nextStateActionValues *G.Node
	rewards               *G.Node
	discounts             *G.Node
}

// New creates and returns a new QNet predicting numActions action
// values from states with features features.
func New(features, numActions int, config Config) (*QNet, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	policy, err := network.NewMLP(
		features,
		1,
		numActions,
		G.NewGraph(),
		config.Layers,
		config.Biases,
		config.InitWFn.InitWFn(),
		config.Activations,
	)
	if err != nil {
		return nil, fmt.Errorf("new: could not create policy network: %v",
			err)
	}

	return &QNet{
		features:   features,
		numActions: numActions,
		gamma:      config.Gamma,
		solver:     config.Solver,
		policy:     policy,
		policyVM:   G.NewTapeMachine(policy.Graph()),
		learners:   make(map[int]*learner),
	}, nil
}

// Predict returns the predicted value of each action in state
func (q *QNet) Predict(state mat.Vector) ([]float64, error) {
	if state.Len() != q.features {
		return nil, fmt.Errorf("predict: invalid state size\n\twant(%v)"+
			"\n\thave(%v)", q.features, state.Len())
	}

	input := make([]float64, q.features)
	for i := range input {
		input[i] = state.AtVec(i)
	}
	if err := q.policy.SetInput(input); err != nil {
		return nil, fmt.Errorf("predict: %v", err)
	}

	defer q.policyVM.Reset()
	if err := q.policyVM.RunAll(); err != nil {
		return nil, fmt.Errorf("predict: could not run policy: %v", err)
	}

	return copyValue(q.policy.Output()), nil
}

// TrainStep takes a single gradient step on the mean squared TD error
// of a batch of transitions. Terminal transitions bootstrap from
// nothing, their update target is the reward alone.
func (q *QNet) TrainStep(b ts.Batch) error {
	n := b.Len()
	if n == 0 {
		return nil
	}

	l, err := q.learner(n)
	if err != nil {
		return fmt.Errorf("trainstep: %v", err)
	}

	// Both networks start from the current policy weights
	if err := l.trainNet.Set(q.policy); err != nil {
		return fmt.Errorf("trainstep: could not set train network: %v", err)
	}
	if err := l.targetNet.Set(q.policy); err != nil {
		return fmt.Errorf("trainstep: could not set target network: %v", err)
	}

	actions := b.FlatActions()
	if len(actions) != n*q.numActions {
		return fmt.Errorf("trainstep: invalid number of action entries"+
			"\n\twant(%v)\n\thave(%v)", n*q.numActions, len(actions))
	}

	// Predict the action values in the next states
	if err := l.targetNet.SetInput(b.FlatNextStates()); err != nil {
		return fmt.Errorf("trainstep: could not set target net input: %v",
			err)
	}
	if err := l.targetNetVM.RunAll(); err != nil {
		l.targetNetVM.Reset()
		return fmt.Errorf("trainstep: could not run target net: %v", err)
	}
	nextValues := copyValue(l.targetNet.Output())
	l.targetNetVM.Reset()

	lets := []struct {
		node  *G.Node
		value tensor.Tensor
	}{
		{l.selectedActions, tensor.New(
			tensor.WithShape(n, q.numActions),
			tensor.WithBacking(actions),
		)},
		{l.nextStateActionValues, tensor.New(
			tensor.WithShape(n, q.numActions),
			tensor.WithBacking(nextValues),
		)},
		{l.rewards, tensor.New(
			tensor.WithShape(n),
			tensor.WithBacking(append([]float64{}, b.Rewards...)),
		)},
		{l.discounts, tensor.New(
			tensor.WithShape(n),
			tensor.WithBacking(discounts(b.Dones, q.gamma)),
		)},
	}
	for _, let := range lets {
		if err := G.Let(let.node, let.value); err != nil {
			return fmt.Errorf("trainstep: could not set %v: %v",
				let.node.Name(), err)
		}
	}

	// Predict the action values in the current states
	if err := l.trainNet.SetInput(b.FlatStates()); err != nil {
		return fmt.Errorf("trainstep: could not set train net input: %v",
			err)
	}

	// Run the learning step
	defer l.trainNetVM.Reset()
	if err := l.trainNetVM.RunAll(); err != nil {
		return fmt.Errorf("trainstep: could not run train net: %v", err)
	}
	if err := q.solver.Step(l.trainNet.Model()); err != nil {
		return fmt.Errorf("trainstep: could not step solver: %v", err)
	}

	return q.policy.Set(l.trainNet)
}

// learner returns the learner for batches of size n, creating it if
// needed. Only learners for size 1 and the latest other size are kept.
func (q *QNet) learner(n int) (*learner, error) {
	if l, ok := q.learners[n]; ok {
		return l, nil
	}

	l, err := newLearner(q.policy, n, q.numActions)
	if err != nil {
		return nil, err
	}

	if n != 1 {
		for size, old := range q.learners {
			if size != 1 {
				old.close()
				delete(q.learners, size)
			}
		}
	}
	q.learners[n] = l
	return l, nil
}

// newLearner creates the train and target networks for batches of
// size n and adds the Q-learning loss to the train network's graph
func newLearner(policy network.NeuralNet, n,
	numActions int) (*learner, error) {
	targetNet, err := policy.CloneWithBatch(n)
	if err != nil {
		return nil, fmt.Errorf("could not create target network: %v", err)
	}

	trainNet, err := policy.CloneWithBatch(n)
	if err != nil {
		return nil, fmt.Errorf("could not create train network: %v", err)
	}
	gTrain := trainNet.Graph()

	// Create nodes to compute the update target: r + γ * max[Q(s', a')]
	nextStateActionValues := G.NewMatrix(gTrain, tensor.Float64,
		G.WithShape(n, numActions), G.WithName("targetActionVals"),
		G.WithInit(G.Zeroes()))
	rewards := G.NewVector(gTrain, tensor.Float64, G.WithShape(n),
		G.WithName("reward"), G.WithInit(G.Zeroes()))
	discounts := G.NewVector(gTrain, tensor.Float64, G.WithShape(n),
		G.WithName("discount"), G.WithInit(G.Zeroes()))

	updateTarget := G.Must(G.Max(nextStateActionValues, 1))
	updateTarget = G.Must(G.HadamardProd(updateTarget, discounts))
	updateTarget = G.Must(G.Add(updateTarget, rewards))

	// One-hot actions taken in the previous states, used to pick out
	// the predicted value of the selected action
	selectedActions := G.NewMatrix(gTrain, tensor.Float64,
		G.WithShape(n, numActions), G.WithName("actionSelected"),
		G.WithInit(G.Zeroes()))
	selectedActionsValue := G.Must(G.HadamardProd(trainNet.Prediction(),
		selectedActions))
	selectedActionsValue = G.Must(G.Sum(selectedActionsValue, 1))

	// Mean squared TD error
	losses := G.Must(G.Sub(updateTarget, selectedActionsValue))
	losses = G.Must(G.Square(losses))
	cost := G.Must(G.Mean(losses))

	if _, err := G.Grad(cost, trainNet.Learnables()...); err != nil {
		return nil, fmt.Errorf("could not compute gradient: %v", err)
	}

	return &learner{
		trainNet: trainNet,
		trainNetVM: G.NewTapeMachine(gTrain,
			G.BindDualValues(trainNet.Learnables()...)),
		targetNet:             targetNet,
		targetNetVM:           G.NewTapeMachine(targetNet.Graph()),
		selectedActions:       selectedActions,
		nextStateActionValues: nextStateActionValues,
		rewards:               rewards,
		discounts:             discounts,
	}, nil
}

// close releases the VMs of the learner
func (l *learner) close() {
	l.trainNetVM.Close()
	l.targetNetVM.Close()
}

// discounts returns γ for each non-terminal transition and 0 for each
// terminal transition
func discounts(dones []bool, gamma float64) []float64 {
	d := make([]float64, len(dones))
	for i, done := range dones {
		if !done {
			d[i] = gamma
		}
	}
	return d
}

// copyValue returns a copy of the data of a Gorgonia Value
func copyValue(v G.Value) []float64 {
	switch data := v.Data().(type) {
	case []float64:
		return append([]float64{}, data...)
	case float64:
		return []float64{data}
	default:
		panic(fmt.Sprintf("copyvalue: unexpected data type %T", data))
	}
}

// Save writes the policy network to a checkpoint file at path,
// creating its parent directories if needed
func (q *QNet) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save: could not create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}

	if err := network.Encode(f, q.policy); err != nil {
		f.Close()
		return fmt.Errorf("save: %v", err)
	}
	return f.Close()
}

// Load sets the weights of the policy network to those stored in the
// checkpoint file at path. The checkpoint must have the same
// architecture as the QNet. A missing file results in an error
// wrapping fs.ErrNotExist.
func (q *QNet) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	defer f.Close()

	loaded, err := network.Decode(f)
	if err != nil {
		return fmt.Errorf("load: %v", err)
	}

	if err := network.SameArchitecture(q.policy, loaded); err != nil {
		return fmt.Errorf("load: checkpoint architecture mismatch: %v", err)
	}
	return q.policy.Set(loaded)
}

// Close releases the VMs held by the QNet
func (q *QNet) Close() {
	q.policyVM.Close()
	for _, l := range q.learners {
		l.close()
	}
}
