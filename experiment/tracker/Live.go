package tracker

import (
	"fmt"
	"io"

	"github.com/gosuri/uilive"
	"github.com/logrusorgru/aurora"
)

// Live redraws a single line summarizing the latest game in a
// terminal. Scores that set a new record are highlighted.
type Live struct {
	writer *uilive.Writer
	colour aurora.Aurora

	games  int
	record int
}

// NewLive returns a Live Tracker writing to out. If colours is false,
// no terminal escape codes are used for highlighting.
func NewLive(out io.Writer, colours bool) *Live {
	writer := uilive.New()
	writer.Out = out

	return &Live{
		writer: writer,
		colour: aurora.NewAurora(colours),
	}
}

// Track implements the Tracker interface
func (l *Live) Track(score int, mean float64) {
	l.games++

	var scoreText interface{} = score
	if l.games == 1 || score > l.record {
		l.record = score
		scoreText = l.colour.Green(score).Bold()
	}

	fmt.Fprintf(l.writer, "Game %d Score %v Mean %.2f Record %d\n", l.games,
		scoreText, mean, l.record)
	l.writer.Flush()
}

// Save flushes any remaining output
func (l *Live) Save() error {
	return l.writer.Flush()
}
