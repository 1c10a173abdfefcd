package checkpointer

import "fmt"

// nGames implements checkpointing every N games
type nGames struct {
	interval int
	object   Saver // Object to save

	// filename returns the filename of the file to save the object in.
	//
	// If each checkpoint should be saved in a separate file with each
	// file having an incremented number as a suffix (e.g. file1.gob,
	// file2.gob, ..., fileK.gob), then use FilenameEnumerator.
	// Otherwise, FileTimer suffixes each file with the time it was
	// saved. For example:
	//
	// n := NewNGames(10, object, FileTimer("model", ".gob"))
	filename func() string
}

// NewNGames returns a checkpointer that checkpoints every n games.
func NewNGames(n int, object Saver,
	filename func() string) (Checkpointer, error) {
	if n < 1 {
		return nil, fmt.Errorf("newngames: interval must be positive"+
			"\n\twant(>0)\n\thave(%v)", n)
	}

	return &nGames{
		interval: n,
		object:   object,
		filename: filename,
	}, nil
}

// Checkpoint saves the tracked object if games is a multiple of the
// checkpointing interval
func (n *nGames) Checkpoint(games int) error {
	if games > 0 && games%n.interval == 0 {
		return n.object.Save(n.filename())
	}
	return nil
}
