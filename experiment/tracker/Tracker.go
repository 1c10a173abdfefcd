// Package tracker implements Trackers, which record the score of each
// game played in an experiment and the running mean score
package tracker

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Tracker keeps track of the score of each game and the running mean
// score, and saves or renders them. Track is fire-and-forget.
type Tracker interface {
	Track(score int, mean float64)
	Save() error
}

// history holds the two growing sequences tracked over an experiment
type history struct {
	Scores []float64
	Means  []float64
}

func (h *history) add(score int, mean float64) {
	h.Scores = append(h.Scores, float64(score))
	h.Means = append(h.Means, mean)
}

// Multi fans out tracking to each of a number of Trackers
type Multi []Tracker

// Track calls Track on each Tracker
func (m Multi) Track(score int, mean float64) {
	for _, t := range m {
		t.Track(score, mean)
	}
}

// Save calls Save on each Tracker, returning all errors encountered
func (m Multi) Save() error {
	var errs []error
	for _, t := range m {
		if err := t.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Scores tracks the scores and mean scores and saves them to a gob
// file which can be read back with LoadScores
type Scores struct {
	history
	filename string
}

// NewScores returns a new Scores Tracker that saves to filename
func NewScores(filename string) *Scores {
	return &Scores{filename: filename}
}

// Track implements the Tracker interface
func (s *Scores) Track(score int, mean float64) {
	s.add(score, mean)
}

// Save saves the tracked scores to disk
func (s *Scores) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.filename), 0o755); err != nil {
		return fmt.Errorf("save: could not create directory: %v", err)
	}

	file, err := os.Create(s.filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %v", err)
	}

	if err := gob.NewEncoder(file).Encode(s.history); err != nil {
		file.Close()
		return fmt.Errorf("save: could not encode scores: %v", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("save: could not close save file: %v", err)
	}
	return nil
}

// LoadScores loads and returns the scores and mean scores saved by a
// Scores Tracker
func LoadScores(filename string) (scores, means []float64, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("loadscores: could not open data "+
			"file: %w", err)
	}
	defer file.Close()

	var h history
	if err := gob.NewDecoder(file).Decode(&h); err != nil {
		return nil, nil, fmt.Errorf("loadscores: could not decode data: %v",
			err)
	}
	return h.Scores, h.Means, nil
}
