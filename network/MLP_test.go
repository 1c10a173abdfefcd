package network

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	G "gorgonia.org/gorgonia"
)

// values returns the data of a Gorgonia Value as a slice
func values(v G.Value) []float64 {
	switch data := v.Data().(type) {
	case []float64:
		return data
	case float64:
		return []float64{data}
	default:
		return nil
	}
}

// run runs the forward pass of net on input
func run(t *testing.T, net NeuralNet, input []float64) []float64 {
	t.Helper()

	if err := net.SetInput(input); err != nil {
		t.Fatalf("setinput: %v", err)
	}
	vm := G.NewTapeMachine(net.Graph())
	defer vm.Close()
	if err := vm.RunAll(); err != nil {
		t.Fatalf("runall: %v", err)
	}
	return append([]float64{}, values(net.Output())...)
}

func equal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestNewMLPInvalid(t *testing.T) {
	tests := []struct {
		name        string
		features    int
		hidden      []int
		biases      []bool
		activations []*Activation
	}{
		{"activations", 2, []int{4}, []bool{true}, nil},
		{"biases", 2, []int{4}, []bool{}, []*Activation{ReLU()}},
		{"features", 0, []int{4}, []bool{true}, []*Activation{ReLU()}},
		{"hidden", 2, []int{0}, []bool{true}, []*Activation{ReLU()}},
	}

	for _, test := range tests {
		_, err := NewMLP(test.features, 1, 3, G.NewGraph(), test.hidden,
			test.biases, G.Zeroes(), test.activations)
		if err == nil {
			t.Errorf("%v: expected error", test.name)
		}
	}
}

func TestLinearForward(t *testing.T) {
	net, err := NewMLP(2, 2, 2, G.NewGraph(), nil, nil, G.Zeroes(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := net.SetWeights([][]float64{{1, 2, 3, 4}, {0.5, -0.5}}); err != nil {
		t.Fatal(err)
	}

	want := []float64{1.5, 1.5, 3.5, 3.5}
	if have := run(t, net, []float64{1, 0, 0, 1}); !equal(want, have) {
		t.Errorf("\n\twant(%v) \n\thave(%v)", want, have)
	}
}

func TestReLUForward(t *testing.T) {
	net, err := NewMLP(2, 1, 1, G.NewGraph(), []int{2}, []bool{false},
		G.Zeroes(), []*Activation{ReLU()})
	if err != nil {
		t.Fatal(err)
	}

	if n := len(net.Learnables()); n != 3 {
		t.Fatalf("\n\twant(%v) \n\thave(%v)", 3, n)
	}
	if err := net.SetWeights([][]float64{{1, 0, 0, -1}, {1, 1}, {0}}); err != nil {
		t.Fatal(err)
	}

	want := []float64{2}
	if have := run(t, net, []float64{2, 3}); !equal(want, have) {
		t.Errorf("\n\twant(%v) \n\thave(%v)", want, have)
	}
}

func TestSetInputInvalid(t *testing.T) {
	net, err := NewMLP(3, 2, 1, G.NewGraph(), nil, nil, G.Zeroes(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := net.SetInput([]float64{1, 2, 3}); err == nil {
		t.Error("expected error for input of a single sample")
	}
}

func TestSetWeightsInvalid(t *testing.T) {
	net, err := NewMLP(2, 1, 2, G.NewGraph(), nil, nil, G.Zeroes(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := net.SetWeights([][]float64{{1, 2, 3, 4}}); err == nil {
		t.Error("expected error for missing learnable")
	}
	if err := net.SetWeights([][]float64{{1, 2, 3}, {0, 0}}); err == nil {
		t.Error("expected error for wrong learnable size")
	}
}

func TestCloneWithBatch(t *testing.T) {
	net, err := NewMLP(2, 1, 2, G.NewGraph(), []int{3}, []bool{true},
		G.GlorotU(1.0), []*Activation{TanH()})
	if err != nil {
		t.Fatal(err)
	}

	clone, err := net.CloneWithBatch(4)
	if err != nil {
		t.Fatal(err)
	}
	if clone.BatchSize() != 4 {
		t.Errorf("\n\twant(%v) \n\thave(%v)", 4, clone.BatchSize())
	}
	if clone.Graph() == net.Graph() {
		t.Error("clone shares the graph of its source")
	}

	single := run(t, net, []float64{0.3, -0.7})
	batch := run(t, clone, []float64{0.3, -0.7, 0.3, -0.7, 0.3, -0.7, 0.3,
		-0.7})
	for i := 0; i < 4; i++ {
		if have := batch[2*i : 2*i+2]; !equal(single, have) {
			t.Errorf("sample %d\n\twant(%v) \n\thave(%v)", i, single, have)
		}
	}
}

func TestSetCopiesInPlace(t *testing.T) {
	src, err := NewMLP(2, 1, 2, G.NewGraph(), nil, nil, G.GlorotU(1.0), nil)
	if err != nil {
		t.Fatal(err)
	}
	dst, err := NewMLP(2, 1, 2, G.NewGraph(), nil, nil, G.Zeroes(), nil)
	if err != nil {
		t.Fatal(err)
	}

	before := dst.Learnables()[0].Value()
	if err := dst.Set(src); err != nil {
		t.Fatal(err)
	}
	if dst.Learnables()[0].Value() != before {
		t.Error("set rebound the learnable value")
	}

	want, have := src.Weights(), dst.Weights()
	for i := range want {
		if !equal(want[i], have[i]) {
			t.Errorf("learnable %d\n\twant(%v) \n\thave(%v)", i, want[i],
				have[i])
		}
	}

	// Mutating the copy must not affect the source
	have[0][0] = 100
	if src.Weights()[0][0] == 100 {
		t.Error("weights share memory with the network")
	}
}

func TestEncodeDecode(t *testing.T) {
	net, err := NewMLP(3, 5, 2, G.NewGraph(), []int{4, 4},
		[]bool{true, false}, G.GlorotN(1.0), []*Activation{ReLU(), TanH()})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, net); err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if decoded.BatchSize() != 1 {
		t.Errorf("\n\twant(%v) \n\thave(%v)", 1, decoded.BatchSize())
	}
	if err := SameArchitecture(net, decoded); err != nil {
		t.Fatal(err)
	}

	want, have := net.Weights(), decoded.Weights()
	for i := range want {
		if !equal(want[i], have[i]) {
			t.Errorf("learnable %d\n\twant(%v) \n\thave(%v)", i, want[i],
				have[i])
		}
	}

	// The decoded network must read its own predictions
	if err := decoded.SetInput([]float64{1, 1, 1}); err != nil {
		t.Fatal(err)
	}
	vm := G.NewTapeMachine(decoded.Graph())
	err = vm.RunAll()
	vm.Close()
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Output() == nil {
		t.Fatal("decoded network has no output after running its graph")
	}

	// Same input must give the same output for the first sample
	input := []float64{0.1, 0.2, 0.3}
	batched := make([]float64, 0, 15)
	for i := 0; i < 5; i++ {
		batched = append(batched, input...)
	}
	if w, h := run(t, net, batched)[:2], run(t, decoded, input); !equal(w, h) {
		t.Errorf("\n\twant(%v) \n\thave(%v)", w, h)
	}
}

func TestSameArchitecture(t *testing.T) {
	a, _ := NewMLP(3, 1, 2, G.NewGraph(), []int{4}, []bool{true},
		G.Zeroes(), []*Activation{ReLU()})
	b, _ := NewMLP(3, 1, 2, G.NewGraph(), []int{5}, []bool{true},
		G.Zeroes(), []*Activation{ReLU()})
	c, _ := NewMLP(3, 1, 3, G.NewGraph(), []int{4}, []bool{true},
		G.Zeroes(), []*Activation{ReLU()})
	d, _ := NewMLP(3, 1, 2, G.NewGraph(), []int{4}, []bool{true},
		G.Zeroes(), []*Activation{TanH()})

	if err := SameArchitecture(a, b); err == nil {
		t.Error("expected hidden sizes to differ")
	}
	if err := SameArchitecture(a, c); err == nil {
		t.Error("expected outputs to differ")
	}
	if err := SameArchitecture(a, d); err == nil {
		t.Error("expected activations to differ")
	}
	if err := SameArchitecture(a, a); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestActivationJSON(t *testing.T) {
	in := []*Activation{ReLU(), TanH(), Identity(), Sigmoid()}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	var out []*Activation
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	for i := range in {
		if in[i].String() != out[i].String() {
			t.Errorf("\n\twant(%v) \n\thave(%v)", in[i], out[i])
		}
	}

	var bad Activation
	if err := json.Unmarshal([]byte(`"softmax"`), &bad); err == nil {
		t.Error("expected error for unknown activation")
	}
}

func BenchmarkForward(b *testing.B) {
	net, err := NewMLP(15, 1, 3, G.NewGraph(), []int{256, 256},
		[]bool{true, true}, G.HeU(1.0), []*Activation{ReLU(), ReLU()})
	if err != nil {
		b.Fatal(err)
	}
	vm := G.NewTapeMachine(net.Graph())
	defer vm.Close()
	input := make([]float64, 15)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		net.SetInput(input)
		vm.RunAll()
		vm.Reset()
	}
}
