package initwfn

import G "gorgonia.org/gorgonia"

// HeUConfig configures the He Uniform initialization algorithm, the
// default for networks with ReLU hidden layers.
type HeUConfig struct {
	Gain float64
}

// NewHeU returns a new He Uniform weight initializer
func NewHeU(gain float64) *InitWFn {
	return newInitWFn(&HeUConfig{Gain: gain})
}

func (h *HeUConfig) Type() Type {
	return HeU
}

func (h *HeUConfig) Create() G.InitWFn {
	return G.HeU(h.Gain)
}

// HeNConfig configures the He Normal initialization algorithm
type HeNConfig struct {
	Gain float64
}

// NewHeN returns a new He Normal weight initializer
func NewHeN(gain float64) *InitWFn {
	return newInitWFn(&HeNConfig{Gain: gain})
}

func (h *HeNConfig) Type() Type {
	return HeN
}

func (h *HeNConfig) Create() G.InitWFn {
	return G.HeN(h.Gain)
}
