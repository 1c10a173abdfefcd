package initwfn

import (
	"encoding/json"
	"testing"

	"gorgonia.org/tensor"
)

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		data string
		want Type
	}{
		{`{"Type": "GlorotU", "Config": {"Gain": 1.0}}`, GlorotU},
		{`{"Type": "GlorotN", "Config": {"Gain": 1.0}}`, GlorotN},
		{`{"Type": "HeU", "Config": {"Gain": 1.4142}}`, HeU},
		{`{"Type": "HeN", "Config": {"Gain": 1.4142}}`, HeN},
		{`{"Type": "Zeroes"}`, Zeroes},
	}

	for _, test := range tests {
		var init InitWFn
		if err := json.Unmarshal([]byte(test.data), &init); err != nil {
			t.Fatalf("unmarshal %v: %v", test.data, err)
		}
		if init.Type != test.want {
			t.Errorf("\n\twant(%v) \n\thave(%v)", test.want, init.Type)
		}
		if init.InitWFn() == nil {
			t.Errorf("%v: initwfn not created", test.want)
		}
	}
}

func TestUnmarshalUnknown(t *testing.T) {
	var init InitWFn
	err := json.Unmarshal([]byte(`{"Type": "Ones"}`), &init)
	if err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestRoundTrip(t *testing.T) {
	in := NewHeU(2.0)
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	var out InitWFn
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	gain := out.Config.(*HeUConfig).Gain
	if gain != 2.0 {
		t.Errorf("\n\twant(%v) \n\thave(%v)", 2.0, gain)
	}
}

func TestZeroes(t *testing.T) {
	weights := NewZeroes().InitWFn()(tensor.Float64, 3, 4).([]float64)
	if len(weights) != 12 {
		t.Fatalf("\n\twant(%v) \n\thave(%v)", 12, len(weights))
	}
	for _, w := range weights {
		if w != 0 {
			t.Errorf("\n\twant(0) \n\thave(%v)", w)
		}
	}
}
