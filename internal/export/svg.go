package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/eclipsehunter/internal/dynamo"
	"github.com/san-kum/eclipsehunter/internal/orrery"
	"github.com/san-kum/eclipsehunter/internal/sim"
)

// TrajectoryToSVG draws the moon trace over the orbits of cat, in world
// coordinates scaled to width×height, with a marker where each event
// happened. Events outside the trace are skipped.
func TrajectoryToSVG(trace []dynamo.Vec2, events []sim.Event, cat orrery.Catalog, width, height int, strokeColor string) string {
	if len(trace) < 2 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, orrery.WorldWidth, orrery.WorldHeight, orrery.Black.Hex())

	c := cat.Center
	for _, p := range cat.Planets {
		fmt.Fprintf(&sb, `<circle class="orbit" cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s"/>
`, c.X, c.Y, p.OrbitRadius, orrery.DarkGray.Hex())
	}
	fmt.Fprintf(&sb, `<circle class="sun" cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, c.X, c.Y, cat.SunRadius, orrery.Yellow.Hex())

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1" d="M`, strokeColor)
	for i, p := range trace {
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", p.X, p.Y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", p.X, p.Y)
		}
	}
	sb.WriteString("\"/>\n")

	for _, e := range events {
		i := e.Tick - 1
		if i < 0 || i >= len(trace) {
			continue
		}
		p := trace[i]
		fmt.Fprintf(&sb, `<circle class="eclipse" cx="%.1f" cy="%.1f" r="6" fill="none" stroke="%s" stroke-width="2"><title>eclipse #%d at tick %d</title></circle>
`, p.X, p.Y, orrery.Red.Hex(), e.Count, e.Tick)
	}

	sb.WriteString("</svg>")
	return sb.String()
}
