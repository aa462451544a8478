package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/eclipsehunter/internal/dynamo"
	"github.com/san-kum/eclipsehunter/internal/sim"
)

// Summary describes a numeric series.
type Summary struct {
	Min, Max, Mean float64
}

func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	s := Summary{Min: data[0], Max: data[0]}
	for _, v := range data {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		s.Mean += v
	}
	s.Mean /= float64(len(data))
	return s
}

// EventGaps returns the ticks between consecutive events.
func EventGaps(events []sim.Event) []int {
	if len(events) < 2 {
		return nil
	}
	gaps := make([]int, len(events)-1)
	for i := 1; i < len(events); i++ {
		gaps[i-1] = events[i].Tick - events[i-1].Tick
	}
	return gaps
}

// TraceToASCII plots points in screen orientation (y grows downward) on a
// width×height character grid. Points listed in marks are drawn as '✶'.
func TraceToASCII(points []dynamo.Vec2, marks []dynamo.Vec2, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	plot := func(p dynamo.Vec2, r rune) {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := int((p.Y - minY) / rangeY * float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = r
		}
	}
	for _, p := range points {
		plot(p, '•')
	}
	for _, p := range marks {
		plot(p, '✶')
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
