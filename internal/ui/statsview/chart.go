package statsview

import (
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/mpressed/internal/stats"
	"github.com/llehouerou/mpressed/internal/ui/render"
	"github.com/llehouerou/mpressed/internal/ui/styles"
)

// bars are the eighth-block glyphs, index = filled eighths.
var bars = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// bucket groups consecutive dates into one chart column.
type bucket struct {
	first, last string
	plays       int
}

// fillDays returns one point per calendar day from the first to the last
// date, with zero plays on days missing from points. Points whose dates do
// not parse are returned as is.
func fillDays(points []stats.Row) []stats.Row {
	if len(points) < 2 {
		return points
	}
	first, err := time.Parse(time.DateOnly, points[0].Date)
	if err != nil {
		return points
	}
	last, err := time.Parse(time.DateOnly, points[len(points)-1].Date)
	if err != nil || last.Before(first) {
		return points
	}

	plays := make(map[string]int, len(points))
	for _, p := range points {
		plays[p.Date] += p.Plays
	}
	var out []stats.Row
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		date := d.Format(time.DateOnly)
		out = append(out, stats.Row{Kind: stats.ByDate, Date: date, Plays: plays[date]})
	}
	return out
}

// bucketize fits points into at most cols columns, keeping the busiest day
// of each bucket so the y axis maximum stays exact.
func bucketize(points []stats.Row, cols int) []bucket {
	if cols <= 0 || len(points) == 0 {
		return nil
	}
	per := (len(points) + cols - 1) / cols
	out := make([]bucket, 0, cols)
	for i := 0; i < len(points); i += per {
		end := min(i+per, len(points))
		b := bucket{first: points[i].Date, last: points[end-1].Date}
		for _, p := range points[i:end] {
			b.plays = max(b.plays, p.Plays)
		}
		out = append(out, b)
	}
	return out
}

// RenderChart draws plays per date (ascending) as a bar chart inside a panel.
// The y axis runs from 0 to the busiest day, the x axis from the first to
// the last date, one calendar day per step.
func RenderChart(points []stats.Row, width, height int, focused bool) string {
	s := styles.T().S()
	innerW := max(width-2, 1)
	innerH := max(height-2, 1)

	if len(points) == 0 {
		lines := []string{s.Muted.Render(render.Pad("No plays recorded yet", innerW))}
		for len(lines) < innerH {
			lines = append(lines, render.EmptyLine(innerW))
		}
		return styles.PanelStyle(focused).Render(strings.Join(lines, "\n"))
	}

	maxPlays := 0
	for _, p := range points {
		maxPlays = max(maxPlays, p.Plays)
	}
	yLabel := strconv.Itoa(maxPlays)
	axisW := len(yLabel) + 1
	plotW := max(innerW-axisW, 1)
	plotH := max(innerH-1, 1) // last line holds the x labels

	cols := bucketize(fillDays(points), plotW)

	lines := make([]string, 0, innerH)
	for row := range plotH {
		// row 0 is the top line
		var sb strings.Builder
		floor := (plotH - 1 - row) * 8
		for _, b := range cols {
			eighths := b.plays * plotH * 8 / max(maxPlays, 1)
			level := min(max(eighths-floor, 0), 8)
			sb.WriteRune(bars[level])
		}

		label := ""
		switch row {
		case 0:
			label = yLabel
		case plotH - 1:
			label = "0"
		}
		axis := strings.Repeat(" ", axisW-1-len(label)) + label + "│"
		plot := render.Pad(sb.String(), plotW)
		lines = append(lines, s.Subtle.Render(axis)+s.Accent.Render(plot))
	}

	first, last := points[0].Date, points[len(points)-1].Date
	xAxis := render.Row(first, last, plotW)
	if first == last {
		xAxis = render.Pad(first, plotW)
	}
	lines = append(lines, strings.Repeat(" ", axisW)+s.Muted.Render(render.Truncate(xAxis, plotW)))

	return styles.PanelStyle(focused).Render(strings.Join(lines[:innerH], "\n"))
}
