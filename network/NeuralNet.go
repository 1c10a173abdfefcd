// Package network implements feed forward neural networks on Gorgonia
// computational graphs
package network

import (
	G "gorgonia.org/gorgonia"
)

// NeuralNet is a neural network that populates a computational graph.
// A NeuralNet does not own a VM. An external VM should be run on the
// network's Graph() after calling SetInput() and before reading
// Output().
type NeuralNet interface {
	Graph() *G.ExprGraph

	// CloneWithBatch clones the network, including its weights, to a
	// new graph whose input has a new batch size
	CloneWithBatch(int) (NeuralNet, error)

	BatchSize() int
	Features() int
	Outputs() int

	// SetInput sets the row-major input of the network, of size
	// BatchSize() * Features()
	SetInput([]float64) error

	// Set sets the weights of the network to those of another network
	// with the same architecture
	Set(NeuralNet) error

	Learnables() G.Nodes
	Model() []G.ValueGrad

	// Output returns the value of the prediction after the VM is run
	Output() G.Value
	Prediction() *G.Node

	Weights() [][]float64
	SetWeights([][]float64) error
}
