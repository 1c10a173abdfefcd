// Package solver wraps Gorgonia Solvers so that they can be described
// in JSON configuration files.
package solver

import (
	"encoding/json"
	"fmt"

	G "gorgonia.org/gorgonia"
)

// Type describes different types of solvers that are available
type Type string

// Available solver types
const (
	Adam    Type = "Adam"
	Vanilla Type = "Vanilla"
	RMSProp Type = "RMSProp"
)

// configs maps each solver type to a constructor of its zero-valued
// configuration, used when unmarshalling
var configs = map[Type]func() Config{
	Adam:    func() Config { return &AdamConfig{} },
	Vanilla: func() Config { return &VanillaConfig{} },
	RMSProp: func() Config { return &RMSPropConfig{} },
}

// Solver wraps Gorgonia Solvers so that they can be JSON marshalled and
// unmarshalled. The wrapped Gorgonia Solver caches per-learnable
// statistics by position, so a single Solver may be stepped on any
// network with the same architecture.
type Solver struct {
	G.Solver `json:"-"`
	Type     Type
	Config   Config
}

// newSolver returns a new solver with the given type and configuration.
func newSolver(t Type, c Config) (*Solver, error) {
	if !c.ValidType(t) {
		return nil, fmt.Errorf("newsolver: invalid solver type %v for "+
			"configuration %T", t, c)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newsolver: %v", err)
	}

	return &Solver{Solver: c.Create(), Type: t, Config: c}, nil
}

// String implements the fmt.Stringer interface
func (s *Solver) String() string {
	return fmt.Sprintf("{%v Solver: %+v}", s.Type, s.Config)
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (s *Solver) UnmarshalJSON(data []byte) error {
	var encoded struct {
		Type   Type
		Config json.RawMessage
	}
	if err := json.Unmarshal(data, &encoded); err != nil {
		return fmt.Errorf("unmarshaljson: %v", err)
	}

	create, ok := configs[encoded.Type]
	if !ok {
		return fmt.Errorf("unmarshaljson: unknown solver type %q",
			encoded.Type)
	}

	config := create()
	if len(encoded.Config) > 0 {
		if err := json.Unmarshal(encoded.Config, config); err != nil {
			return fmt.Errorf("unmarshaljson: could not decode %v "+
				"config: %v", encoded.Type, err)
		}
	}

	solver, err := newSolver(encoded.Type, config)
	if err != nil {
		return fmt.Errorf("unmarshaljson: %v", err)
	}
	*s = *solver

	return nil
}

// Config implements a Gorgonia Solver configuration and can be used to
// create Gorgonia Solvers they describe.
type Config interface {
	Create() G.Solver

	// ValidType returns whether a specific Solver type can be created
	// with the Config
	ValidType(Type) bool

	// Validate returns an error if the hyperparameters are unusable
	Validate() error
}

// validateStep checks the hyperparameters common to all solvers
func validateStep(stepSize float64, batch int) error {
	if stepSize <= 0 {
		return fmt.Errorf("step size must be positive\n\twant(>0)"+
			"\n\thave(%v)", stepSize)
	}
	if batch < 1 {
		return fmt.Errorf("batch size must be positive\n\twant(>0)"+
			"\n\thave(%v)", batch)
	}
	return nil
}
