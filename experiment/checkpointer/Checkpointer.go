// Package checkpointer periodically saves learned weights during an
// experiment
package checkpointer

// Saver is an object whose state can be saved to a file
type Saver interface {
	Save(path string) error
}

// SaverFunc adapts a function to the Saver interface
type SaverFunc func(path string) error

// Save calls f(path)
func (f SaverFunc) Save(path string) error {
	return f(path)
}

// Checkpointer checkpoints/saves objects based on the number of games
// played
type Checkpointer interface {
	Checkpoint(games int) error
}
