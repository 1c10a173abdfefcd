package agent

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rayaq-siddiqui/snake-rl/agent/agenttest"
	"github.com/rayaq-siddiqui/snake-rl/environment"
	"github.com/rayaq-siddiqui/snake-rl/environment/snake"
	"github.com/rayaq-siddiqui/snake-rl/expreplay"
	"github.com/rayaq-siddiqui/snake-rl/features"
	"github.com/rayaq-siddiqui/snake-rl/policy"
	ts "github.com/rayaq-siddiqui/snake-rl/timestep"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// numbered returns a transition whose fields all encode i, so that
// index-wise pairing can be checked after unzipping
func numbered(i int) ts.Transition {
	return ts.NewTransition(
		mat.NewVecDense(1, []float64{float64(i)}),
		policy.OneHot(i%environment.NumActions, environment.NumActions),
		float64(i),
		mat.NewVecDense(1, []float64{float64(i) + 0.5}),
		i%2 == 0,
	)
}

// checkPairing ensures every index of b originates from one numbered
// transition and returns the numbers seen
func checkPairing(t *testing.T, b ts.Batch) []int {
	t.Helper()

	seen := make([]int, b.Len())
	for j := 0; j < b.Len(); j++ {
		i := int(b.Rewards[j])
		seen[j] = i
		if b.States[j].AtVec(0) != float64(i) {
			t.Errorf("state %d\n\twant(%v) \n\thave(%v)", j, i,
				b.States[j].AtVec(0))
		}
		if b.NextStates[j].AtVec(0) != float64(i)+0.5 {
			t.Errorf("next state %d\n\twant(%v) \n\thave(%v)", j,
				float64(i)+0.5, b.NextStates[j].AtVec(0))
		}
		if b.Dones[j] != (i%2 == 0) {
			t.Errorf("done %d\n\twant(%v) \n\thave(%v)", j, i%2 == 0,
				b.Dones[j])
		}
		if environment.ActionIndex(b.Actions[j]) != i%environment.NumActions {
			t.Errorf("action %d\n\twant(%v) \n\thave(%v)", j,
				i%environment.NumActions, environment.ActionIndex(b.Actions[j]))
		}
	}
	return seen
}

func newOrchestrator(t *testing.T, capacity, batchSize,
	stored int) (*Orchestrator, *agenttest.Stub) {
	t.Helper()

	memory, err := expreplay.New(capacity, 7)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < stored; i++ {
		memory.Add(numbered(i))
	}

	stub := agenttest.NewStub(0, 0, 0)
	o, err := NewOrchestrator(stub, memory, batchSize)
	if err != nil {
		t.Fatal(err)
	}
	return o, stub
}

func TestTrainLongMemory(t *testing.T) {
	tests := []struct {
		name      string
		capacity  int
		batchSize int
		stored    int
		want      int
	}{
		{"empty", 10, 5, 0, 0},
		{"smaller", 10, 5, 3, 3},
		{"equal", 10, 5, 5, 5},
		{"larger", 100, 5, 20, 5},
		{"evicted", 8, 5, 20, 5},
	}

	for _, test := range tests {
		o, stub := newOrchestrator(t, test.capacity, test.batchSize,
			test.stored)
		if err := o.TrainLongMemory(); err != nil {
			t.Fatalf("%v: %v", test.name, err)
		}

		if test.want == 0 {
			if len(stub.Batches) != 0 {
				t.Errorf("%v: trained on empty memory", test.name)
			}
			continue
		}

		if len(stub.Batches) != 1 {
			t.Fatalf("%v: \n\twant(%v) \n\thave(%v)", test.name, 1,
				len(stub.Batches))
		}
		if n := stub.Batches[0].Len(); n != test.want {
			t.Errorf("%v: \n\twant(%v) \n\thave(%v)", test.name, test.want, n)
		}

		seen := checkPairing(t, stub.Batches[0])
		unique := make(map[int]bool)
		for _, i := range seen {
			if i < test.stored-test.capacity {
				t.Errorf("%v: sampled evicted transition %v", test.name, i)
			}
			unique[i] = true
		}
		if len(unique) != len(seen) {
			t.Errorf("%v: sampled with replacement: %v", test.name, seen)
		}
	}
}

func TestTrainLongMemoryWholeInOrder(t *testing.T) {
	o, stub := newOrchestrator(t, 10, 1000, 4)
	if err := o.TrainLongMemory(); err != nil {
		t.Fatal(err)
	}

	seen := checkPairing(t, stub.Batches[0])
	for i := range seen {
		if seen[i] != i {
			t.Errorf("\n\twant(%v) \n\thave(%v)", []int{0, 1, 2, 3}, seen)
			break
		}
	}
}

func TestTrainStepSingle(t *testing.T) {
	o, stub := newOrchestrator(t, 10, 5, 0)
	if err := o.TrainStep(numbered(3)); err != nil {
		t.Fatal(err)
	}

	if sizes := stub.BatchSizes(); len(sizes) != 1 || sizes[0] != 1 {
		t.Fatalf("\n\twant(%v) \n\thave(%v)", []int{1}, sizes)
	}
	checkPairing(t, stub.Batches[0])
}

func TestNewOrchestratorInvalid(t *testing.T) {
	memory, _ := expreplay.New(1, 0)
	if _, err := NewOrchestrator(agenttest.NewStub(), memory, 0); err == nil {
		t.Error("expected error for zero batch size")
	}
}

func testConfig() Config {
	c := DefaultConfig()
	c.MaxMemory = 100
	c.BatchSize = 10
	c.ModelPath = ""
	return c
}

func TestNew(t *testing.T) {
	a, err := New(testConfig(), agenttest.NewStub(0, 0, 0), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	if a.Games() != 0 {
		t.Errorf("\n\twant(%v) \n\thave(%v)", 0, a.Games())
	}
	if a.Memory().Capacity() != 100 || a.Memory().Len() != 0 {
		t.Errorf("\n\twant(%v/%v) \n\thave(%v/%v)", 0, 100, a.Memory().Len(),
			a.Memory().Capacity())
	}
	if a.Epsilon() != policy.DefaultEpsilonStart {
		t.Errorf("\n\twant(%v) \n\thave(%v)", policy.DefaultEpsilonStart,
			a.Epsilon())
	}
}

func TestNewMissingCheckpoint(t *testing.T) {
	var buf bytes.Buffer
	c := testConfig()
	c.ModelPath = "model/model.gob"
	stub := agenttest.NewStub(0, 0, 0)

	if _, err := New(c, stub, zerolog.New(&buf)); err != nil {
		t.Fatal(err)
	}
	if len(stub.Loaded) != 1 || stub.Loaded[0] != c.ModelPath {
		t.Errorf("\n\twant(%v) \n\thave(%v)", []string{c.ModelPath},
			stub.Loaded)
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("missing warning in log: %v", buf.String())
	}
}

func TestNewLoadsCheckpoint(t *testing.T) {
	c := testConfig()
	c.ModelPath = "model/model.gob"
	stub := agenttest.NewStub(0, 0, 0)
	stub.Checkpoints[c.ModelPath] = true

	var buf bytes.Buffer
	if _, err := New(c, stub, zerolog.New(&buf)); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("unexpected warning in log: %v", buf.String())
	}
}

func TestNewLoadError(t *testing.T) {
	c := testConfig()
	c.ModelPath = "model/model.gob"
	stub := agenttest.NewStub(0, 0, 0)
	stub.Err = errors.New("corrupt checkpoint")

	if _, err := New(c, stub, zerolog.Nop()); err == nil {
		t.Error("expected error for corrupt checkpoint")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []func(*Config){
		func(c *Config) { c.MaxMemory = 0 },
		func(c *Config) { c.BatchSize = 0 },
		func(c *Config) { c.EpsilonRange = -1 },
	}

	for i, modify := range tests {
		c := DefaultConfig()
		modify(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("test %d: expected error", i)
		}
	}
}

func TestAdvanceEpisode(t *testing.T) {
	a, err := New(testConfig(), agenttest.NewStub(0, 0, 0), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 25; i++ {
		a.AdvanceEpisode()
		if a.Games() != i {
			t.Fatalf("\n\twant(%v) \n\thave(%v)", i, a.Games())
		}
	}

	// ε is not clamped at zero
	if a.Epsilon() != -5 {
		t.Errorf("\n\twant(%v) \n\thave(%v)", -5, a.Epsilon())
	}
}

func TestChooseActionExploitsWhenEpsilonNegative(t *testing.T) {
	stub := agenttest.NewStub(0.1, 3, 2)
	a, err := New(testConfig(), stub, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 25; i++ {
		a.AdvanceEpisode()
	}

	state := mat.NewVecDense(features.Size, nil)
	for i := 0; i < 1000; i++ {
		action, err := a.ChooseAction(state)
		if err != nil {
			t.Fatal(err)
		}
		if environment.ActionIndex(action) != environment.Straight {
			t.Fatalf("\n\twant(%v) \n\thave(%v)", environment.Straight,
				environment.ActionIndex(action))
		}
	}
	if stub.Predictions != 1000 {
		t.Errorf("\n\twant(%v) \n\thave(%v)", 1000, stub.Predictions)
	}
}

func TestRememberAndTrainShort(t *testing.T) {
	stub := agenttest.NewStub(0, 0, 0)
	a, err := New(testConfig(), stub, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	tr := numbered(4)
	if err := a.TrainShort(tr); err != nil {
		t.Fatal(err)
	}
	a.Remember(tr)

	if a.Memory().Len() != 1 {
		t.Errorf("\n\twant(%v) \n\thave(%v)", 1, a.Memory().Len())
	}
	if sizes := stub.BatchSizes(); len(sizes) != 1 || sizes[0] != 1 {
		t.Errorf("\n\twant(%v) \n\thave(%v)", []int{1}, sizes)
	}

	if err := a.TrainLong(); err != nil {
		t.Fatal(err)
	}
	if sizes := stub.BatchSizes(); len(sizes) != 2 || sizes[1] != 1 {
		t.Errorf("\n\twant(%v) \n\thave(%v)", []int{1, 1}, sizes)
	}
}

func TestObserve(t *testing.T) {
	game, err := snake.New(snake.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	a, err := New(testConfig(), agenttest.NewStub(0, 0, 0), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	state := a.Observe(game)
	if state.Len() != features.Size {
		t.Fatalf("\n\twant(%v) \n\thave(%v)", features.Size, state.Len())
	}
	if !mat.Equal(state, features.Encode(game)) {
		t.Error("observation differs from encoding")
	}
}

func TestSaveModel(t *testing.T) {
	stub := agenttest.NewStub(0, 0, 0)
	a, err := New(testConfig(), stub, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	if err := a.SaveModel("model/model.gob"); err != nil {
		t.Fatal(err)
	}
	if len(stub.Saved) != 1 {
		t.Errorf("\n\twant(%v) \n\thave(%v)", 1, len(stub.Saved))
	}
}
