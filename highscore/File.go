// Package highscore persists the all-time high score of the game as a
// plain-text file holding a single decimal integer
package highscore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a high score file does not hold a
// single decimal integer
var ErrMalformed = errors.New("malformed high score")

// File is a high score stored in the file at Path
type File struct {
	Path string
}

// Read returns the high score stored in the file. Missing or malformed
// files are errors; a missing file wraps fs.ErrNotExist and a
// malformed one wraps ErrMalformed.
func (f File) Read() (int, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}

	text := strings.TrimSpace(string(data))
	score, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("read: %w %q in %v", ErrMalformed, text, f.Path)
	}
	return score, nil
}

// Write overwrites the file with score, creating the file and its
// directory if needed
func (f File) Write(score int) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	if err := os.WriteFile(f.Path, []byte(strconv.Itoa(score)), 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Init creates a high score file at path holding 0. An existing file is
// left untouched unless overwrite is true. Init reports whether the
// file was written.
func Init(path string, overwrite bool) (bool, error) {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}

	if err := (File{Path: path}).Write(0); err != nil {
		return false, fmt.Errorf("init: %v", err)
	}
	return true, nil
}
