package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rayaq-siddiqui/snake-rl/experiment"
	"github.com/rayaq-siddiqui/snake-rl/experiment/tracker"
	"github.com/rayaq-siddiqui/snake-rl/highscore"
	"github.com/rayaq-siddiqui/snake-rl/solver"
)

// writeConfig writes a configuration file storing everything in dir
func writeConfig(t *testing.T, dir string) string {
	t.Helper()

	c := experiment.DefaultFileConfig()
	c.HighScorePath = filepath.Join(dir, "high.txt")
	c.ScoresPath = filepath.Join(dir, "scores.bin")
	c.Agent.ModelPath = filepath.Join(dir, "model.gob")

	path := filepath.Join(dir, "config.json")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := c.Write(f); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	root := RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	config := writeConfig(t, dir)
	hs := highscore.File{Path: filepath.Join(dir, "high.txt")}

	if out := execute(t, "init", "--config", config); !strings.Contains(out,
		"set to 0") {
		t.Errorf("unexpected output %q", out)
	}
	if err := hs.Write(9); err != nil {
		t.Fatal(err)
	}

	execute(t, "init", "--config", config)
	if score, _ := hs.Read(); score != 9 {
		t.Errorf("\n\twant(%v) \n\thave(%v)", 9, score)
	}

	execute(t, "init", "--config", config, "--reset")
	if score, _ := hs.Read(); score != 0 {
		t.Errorf("\n\twant(%v) \n\thave(%v)", 0, score)
	}
	resetHighScore = false
}

func TestScoresCommand(t *testing.T) {
	dir := t.TempDir()
	config := writeConfig(t, dir)

	s := tracker.NewScores(filepath.Join(dir, "scores.bin"))
	s.Track(2, 2)
	s.Track(6, 4)
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	out := execute(t, "scores", "--config", config)
	for _, want := range []string{
		"Game 1 Score 2 Mean 2.00",
		"Game 2 Score 6 Mean 4.00",
		"Games 2 Record 6 Mean 4.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestSetStepSize(t *testing.T) {
	c := experiment.DefaultFileConfig()
	if err := setStepSize(&c, 0.05); err != nil {
		t.Fatal(err)
	}

	config, ok := c.Network.Solver.Config.(*solver.AdamConfig)
	if !ok {
		t.Fatalf("\n\twant(*solver.AdamConfig) \n\thave(%T)",
			c.Network.Solver.Config)
	}
	if config.StepSize != 0.05 || config.Beta1 != 0.9 {
		t.Errorf("unexpected configuration %+v", config)
	}

	if err := setStepSize(&c, -1); err == nil {
		t.Error("expected error for negative step size")
	}
}

func TestConfigCommand(t *testing.T) {
	config := writeConfig(t, t.TempDir())
	out := execute(t, "config", "--config", config)

	var c experiment.FileConfig
	if err := json.Unmarshal([]byte(out), &c); err != nil {
		t.Fatal(err)
	}
	if err := c.Validate(); err != nil {
		t.Error(err)
	}
	if !strings.HasSuffix(c.HighScorePath, "high.txt") {
		t.Errorf("unexpected high score path %v", c.HighScorePath)
	}
}
