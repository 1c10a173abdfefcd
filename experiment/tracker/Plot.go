package tracker

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plot renders the scores and mean scores as line plots in an image
// file. The image format is determined by the file extension.
type Plot struct {
	history
	filename string

	// Re-render every this many games, never if not positive
	every int
	err   error // Last error from rendering while tracking
}

// NewPlot returns a new Plot Tracker that renders to filename every
// every games and on Save
func NewPlot(filename string, every int) *Plot {
	return &Plot{filename: filename, every: every}
}

// Track implements the Tracker interface
func (p *Plot) Track(score int, mean float64) {
	p.add(score, mean)
	if p.every > 0 && len(p.Scores)%p.every == 0 {
		p.err = p.render()
	}
}

// Err returns the error of the last render done while tracking
func (p *Plot) Err() error {
	return p.err
}

// Save renders the plot
func (p *Plot) Save() error {
	p.err = p.render()
	return p.err
}

func (p *Plot) render() error {
	plt := plot.New()
	plt.Title.Text = "Training..."
	plt.X.Label.Text = "Number of Games"
	plt.Y.Label.Text = "Score"

	lines := []struct {
		name   string
		values []float64
		colour color.Color
	}{
		{"Score", p.Scores, color.RGBA{B: 255, A: 255}},
		{"Mean Score", p.Means, color.RGBA{R: 255, A: 255}},
	}
	for _, l := range lines {
		pts := make(plotter.XYs, len(l.values))
		for i := range l.values {
			pts[i].X = float64(i + 1)
			pts[i].Y = l.values[i]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("save: could not create line plotter: %v", err)
		}
		line.Color = l.colour

		plt.Add(line)
		plt.Legend.Add(l.name, line)
	}
	plt.Legend.Top = true
	plt.Legend.Left = true

	if err := os.MkdirAll(filepath.Dir(p.filename), 0o755); err != nil {
		return fmt.Errorf("save: could not create directory: %v", err)
	}
	if err := plt.Save(8*vg.Inch, 5*vg.Inch, p.filename); err != nil {
		return fmt.Errorf("save: could not save plot: %v", err)
	}
	return nil
}
