package tracker

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Chart renders the scores and mean scores as an interactive HTML
// line chart
type Chart struct {
	history
	filename string
}

// NewChart returns a new Chart Tracker that renders to filename
func NewChart(filename string) *Chart {
	return &Chart{filename: filename}
}

// Track implements the Tracker interface
func (c *Chart) Track(score int, mean float64) {
	c.add(score, mean)
}

// Save renders the chart
func (c *Chart) Save() error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Training...",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	games := make([]string, len(c.Scores))
	for i := range games {
		games[i] = strconv.Itoa(i + 1)
	}
	line = line.SetXAxis(games)

	for _, series := range []struct {
		name   string
		values []float64
	}{
		{"Score", c.Scores},
		{"Mean Score", c.Means},
	} {
		items := make([]opts.LineData, 0, len(series.values))
		for _, v := range series.values {
			items = append(items, opts.LineData{Value: v})
		}
		line.AddSeries(series.name, items)
	}

	page := components.NewPage()
	page.AddCharts(line)

	if err := os.MkdirAll(filepath.Dir(c.filename), 0o755); err != nil {
		return fmt.Errorf("save: could not create directory: %v", err)
	}
	f, err := os.Create(c.filename)
	if err != nil {
		return fmt.Errorf("save: could not create chart file: %v", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("save: could not render chart: %v", err)
	}
	return nil
}
