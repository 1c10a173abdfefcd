package network

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"

	G "gorgonia.org/gorgonia"
)

// mlpCheckpoint is the serialized form of an mlp
type mlpCheckpoint struct {
	Features    int
	Outputs     int
	Layers      []int
	Biases      []bool
	Activations []*Activation
	Weights     [][]float64
}

// GobEncode implements the gob.GobEncoder interface. Only the
// architecture and weights are encoded, not the batch size.
func (e *mlp) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(mlpCheckpoint{
		Features:    e.numInputs,
		Outputs:     e.numOutputs,
		Layers:      e.hiddenSizes,
		Biases:      e.biases,
		Activations: e.activations,
		Weights:     e.Weights(),
	})
	if err != nil {
		return nil, fmt.Errorf("gobencode: %v", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface. The decoded mlp
// has a batch size of 1 and lives on a new graph.
func (e *mlp) GobDecode(in []byte) error {
	var c mlpCheckpoint
	if err := gob.NewDecoder(bytes.NewReader(in)).Decode(&c); err != nil {
		return fmt.Errorf("gobdecode: %v", err)
	}

	if err := e.build(c.Features, 1, c.Outputs, G.NewGraph(), c.Layers,
		c.Biases, G.Zeroes(), c.Activations); err != nil {
		return fmt.Errorf("gobdecode: %v", err)
	}
	if err := e.SetWeights(c.Weights); err != nil {
		return fmt.Errorf("gobdecode: %v", err)
	}
	return nil
}

// Encode writes the architecture and weights of net to w
func Encode(w io.Writer, net NeuralNet) error {
	m, ok := net.(*mlp)
	if !ok {
		return fmt.Errorf("encode: cannot encode network of type %T", net)
	}
	return gob.NewEncoder(w).Encode(m)
}

// Decode reads a network written by Encode from r. The returned
// network has a batch size of 1.
func Decode(r io.Reader) (NeuralNet, error) {
	m := &mlp{}
	if err := gob.NewDecoder(r).Decode(m); err != nil {
		return nil, fmt.Errorf("decode: %v", err)
	}
	return m, nil
}

// SameArchitecture returns an error describing the first difference in
// architecture between a and b, or nil if they have the same shape.
func SameArchitecture(a, b NeuralNet) error {
	if a.Features() != b.Features() {
		return fmt.Errorf("features differ\n\twant(%v)\n\thave(%v)",
			a.Features(), b.Features())
	}
	if a.Outputs() != b.Outputs() {
		return fmt.Errorf("outputs differ\n\twant(%v)\n\thave(%v)",
			a.Outputs(), b.Outputs())
	}

	am, aok := a.(*mlp)
	bm, bok := b.(*mlp)
	if aok && bok {
		if len(am.activations) != len(bm.activations) {
			return fmt.Errorf("hidden layers differ\n\twant(%v)\n\thave(%v)",
				len(am.activations), len(bm.activations))
		}
		for i := range am.activations {
			if am.activations[i].String() != bm.activations[i].String() {
				return fmt.Errorf("activation %v differs\n\twant(%v)"+
					"\n\thave(%v)", i, am.activations[i], bm.activations[i])
			}
		}
	}

	aw, bw := a.Weights(), b.Weights()
	if len(aw) != len(bw) {
		return fmt.Errorf("learnables differ\n\twant(%v)\n\thave(%v)",
			len(aw), len(bw))
	}
	for i := range aw {
		if len(aw[i]) != len(bw[i]) {
			return fmt.Errorf("learnable %v size differs\n\twant(%v)"+
				"\n\thave(%v)", i, len(aw[i]), len(bw[i]))
		}
	}
	return nil
}
