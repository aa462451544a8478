package viz

import (
	"fmt"
	"strings"
)

// SVG renders the canvas dots as colored circles, scale pixels per dot.
// Text cells are written as text.
func (c *Canvas) SVG(scale float64) string {
	width := float64(c.SubWidth()) * scale
	height := float64(c.SubHeight()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#000000"/>
`, width, height, width, height)

	dotRadius := scale * 0.4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			fill := string(c.Colors[row][col])
			if fill == "" {
				fill = "#ffffff"
			}
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			if c.text[row][col] {
				fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="%s" font-size="%.1f" font-family="monospace">%s</text>
`, baseX, baseY+scale*3, fill, scale*3, escapeText(string(c.Grid[row][col])))
				continue
			}

			pattern := int(c.Grid[row][col] - blank)
			if pattern == 0 {
				continue
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill)
					}
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func escapeText(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
