package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/san-kum/orbitsim/internal/analysis"
)

// TracesToSVG draws orbit traces as SVG paths on a shared, equal-aspect
// scale. colors[i] strokes traces[i]; missing colors fall back to green.
func TracesToSVG(w io.Writer, traces []*analysis.Trace, colors []string, width, height int) error {
	var points int
	minX, maxX, minY, maxY := 0.0, 0.0, 0.0, 0.0
	for _, tr := range traces {
		if tr == nil {
			continue
		}
		for _, p := range tr.Points {
			if points == 0 {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
			}
			minX = min(minX, p.X)
			maxX = max(maxX, p.X)
			minY = min(minY, p.Y)
			maxY = max(maxY, p.Y)
			points++
		}
	}
	if points < 2 {
		return fmt.Errorf("export: nothing to draw")
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1

	scale := min(float64(width)/(maxX-minX), float64(height)/(maxY-minY))
	offX := (float64(width) - (maxX-minX)*scale) / 2
	offY := (float64(height) - (maxY-minY)*scale) / 2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, tr := range traces {
		if tr == nil || len(tr.Points) == 0 {
			continue
		}
		color := "#00ff00"
		if i < len(colors) && colors[i] != "" {
			color = colors[i]
		}

		sb.WriteString(fmt.Sprintf(`<path id="%s" fill="none" stroke="%s" stroke-width="1.5" d="M`, html.EscapeString(tr.Body), html.EscapeString(color)))
		for j, p := range tr.Points {
			x := offX + (p.X-minX)*scale
			y := float64(height) - offY - (p.Y-minY)*scale
			if j > 0 {
				sb.WriteString(" L")
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
