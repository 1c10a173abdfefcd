// Package initwfn wraps Gorgonia InitWFn so that weight initialization
// schemes can be described in JSON configuration files.
package initwfn

import (
	"encoding/json"
	"fmt"

	G "gorgonia.org/gorgonia"
)

// Type describes different types of InitWFn that are available.
type Type string

// Available InitWFn types
const (
	GlorotU Type = "GlorotU"
	GlorotN Type = "GlorotN"
	HeU     Type = "HeU"
	HeN     Type = "HeN"
	Zeroes  Type = "Zeroes"
)

// configs maps each InitWFn type to a constructor of its zero-valued
// configuration, used when unmarshalling
var configs = map[Type]func() Config{
	GlorotU: func() Config { return &GlorotUConfig{} },
	GlorotN: func() Config { return &GlorotNConfig{} },
	HeU:     func() Config { return &HeUConfig{} },
	HeN:     func() Config { return &HeNConfig{} },
	Zeroes:  func() Config { return &ZeroesConfig{} },
}

// InitWFn wraps Gorgonia InitWFn so that they can be JSON marshalled and
// unmarshalled.
type InitWFn struct {
	initWFn G.InitWFn
	Type    Type
	Config  Config
}

// newInitWFn returns a new InitWFn
func newInitWFn(c Config) *InitWFn {
	return &InitWFn{initWFn: c.Create(), Type: c.Type(), Config: c}
}

// InitWFn returns the wrapped Gorgonia InitWFn
func (i *InitWFn) InitWFn() G.InitWFn {
	return i.initWFn
}

// String implements the fmt.Stringer interface
func (i *InitWFn) String() string {
	return fmt.Sprintf("{%v InitWFn: %+v}", i.Type, i.Config)
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (i *InitWFn) UnmarshalJSON(data []byte) error {
	var encoded struct {
		Type   Type
		Config json.RawMessage
	}
	if err := json.Unmarshal(data, &encoded); err != nil {
		return fmt.Errorf("unmarshaljson: %v", err)
	}

	create, ok := configs[encoded.Type]
	if !ok {
		return fmt.Errorf("unmarshaljson: unknown initwfn type %q",
			encoded.Type)
	}

	config := create()
	if len(encoded.Config) > 0 {
		if err := json.Unmarshal(encoded.Config, config); err != nil {
			return fmt.Errorf("unmarshaljson: could not decode %v "+
				"config: %v", encoded.Type, err)
		}
	}

	*i = *newInitWFn(config)
	return nil
}

// Config implements a Gorgonia InitWFn configuration and can be used to
// create the described Gorgonia InitWFn's.
type Config interface {
	// Create returns the Gorgonia InitWFn that the Config describes
	Create() G.InitWFn

	// Type returns the type of Gorgonia InitWFn that is returned
	Type() Type
}
