package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbitsim/internal/experiment"
)

var (
	tableBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("#444466"))
	tableHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff")).Padding(0, 1)
	tableCell   = lipgloss.NewStyle().Padding(0, 1)
	tableBest   = tableCell.Foreground(lipgloss.Color("#00ff88"))
)

func formatDiscrepancy(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	return fmt.Sprintf("%.3e", v)
}

// RenderComparison tabulates the per-body scores of one run against its
// reference.
func RenderComparison(cmp []experiment.BodyComparison) string {
	rows := make([][]string, 0, len(cmp))
	for _, c := range cmp {
		rows = append(rows, []string{
			c.Name,
			formatDiscrepancy(c.Discrepancy),
			fmt.Sprintf("%.6f", c.AbsError),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeader
			}
			return tableCell
		}).
		Headers("Body", "Relative", "Absolute (AU)").
		Rows(rows...)

	return t.Render()
}

// SchemeSummary is one scheme's line in a comparison of schemes.
type SchemeSummary struct {
	Integrator  string
	Evaluations int
	Elapsed     time.Duration
	Comparison  []experiment.BodyComparison
}

// RenderSchemeTable lists the relative discrepancy of every body under each
// scheme, one column per scheme. The best value of every row is
// highlighted.
func RenderSchemeTable(summaries []SchemeSummary) string {
	if len(summaries) == 0 {
		return ""
	}

	headers := []string{"Body"}
	for _, s := range summaries {
		headers = append(headers, s.Integrator)
	}

	var rows [][]string
	var best []int
	for i, c := range summaries[0].Comparison {
		row := []string{c.Name}
		bestCol, bestVal := -1, math.Inf(1)
		for j, s := range summaries {
			if i >= len(s.Comparison) {
				row = append(row, "-")
				continue
			}
			v := s.Comparison[i].Discrepancy
			row = append(row, formatDiscrepancy(v))
			if v < bestVal {
				bestCol, bestVal = j+1, v
			}
		}
		rows = append(rows, row)
		best = append(best, bestCol)
	}

	evals := []string{"evaluations"}
	elapsed := []string{"elapsed"}
	for _, s := range summaries {
		evals = append(evals, fmt.Sprint(s.Evaluations))
		elapsed = append(elapsed, s.Elapsed.Round(time.Microsecond).String())
	}
	rows = append(rows, evals, elapsed)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeader
			case row >= 0 && row < len(best) && col == best[row]:
				return tableBest
			}
			return tableCell
		}).
		Headers(headers...).
		Rows(rows...)

	return t.Render()
}

// PlotSeries draws values as an ASCII line chart, resampled to width
// columns when width is positive.
func PlotSeries(values []float64, caption string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.Plot(values, opts...)
}

// Title renders a report heading.
func Title(text string) string {
	return HeaderStyle.Render(GradientText(strings.ToUpper(text), CurrentTheme.Primary, CurrentTheme.Secondary))
}
