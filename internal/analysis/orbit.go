package analysis

import (
	"strings"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Point is one sample of a projected orbit.
type Point struct {
	T, X, Y float64
}

// Trace holds the x-y projection of a body's path.
type Trace struct {
	Body   string
	Points []Point
}

// TraceOrbit steps sys with integ and records the position of body relative
// to center after every step. A negative center records barycentric
// coordinates.
func TraceOrbit(
	sys *dynamo.System,
	integ dynamo.Integrator,
	body, center int,
	dt float64,
	steps int,
) *Trace {
	if body < 0 || body >= sys.Len() || center >= sys.Len() {
		return nil
	}

	trace := &Trace{
		Body:   sys.Body(body).Name,
		Points: make([]Point, 0, steps),
	}

	for i := 0; i < steps; i++ {
		sys = integ.Step(sys, dt)

		p := sys.Position(body)
		if center >= 0 {
			p = p.Sub(sys.Position(center))
		}
		trace.Points = append(trace.Points, Point{T: sys.Time(), X: p.X, Y: p.Y})
	}

	return trace
}

// CrossingPeriod returns the mean interval between successive ascending
// crossings of y=0 on the positive x side. Crossing times are linearly
// interpolated between samples.
func CrossingPeriod(points []Point) (float64, error) {
	if len(points) < 2 {
		return 0, ErrTooFewSamples
	}

	var crossings []float64
	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1], points[i]
		if prev.Y < 0 && curr.Y >= 0 && curr.X > 0 {
			frac := -prev.Y / (curr.Y - prev.Y)
			crossings = append(crossings, prev.T+frac*(curr.T-prev.T))
		}
	}

	if len(crossings) < 2 {
		return 0, ErrNoPeriod
	}
	return (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1), nil
}

// ASCII renders the trace on a width x height grid, with axes drawn where
// they cross the visible area.
func (tr *Trace) ASCII(width, height int) string {
	if tr == nil || len(tr.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := tr.Points[0].X, tr.Points[0].X
	minY, maxY := tr.Points[0].Y, tr.Points[0].Y

	for _, p := range tr.Points {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

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
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range tr.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
