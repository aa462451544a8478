package viz

import (
	"strings"
	"testing"
)

func TestCanvasSVG(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetColor(0, 0, "#ff0000")
	c.SetColor(1, 0, "#ff0000")
	c.Set(4, 4)
	c.Label(6, 4, "<", "#00ff00")

	svg := c.SVG(10)
	if !strings.Contains(svg, `width="80" height="80"`) {
		t.Errorf("unexpected size in %q", svg[:120])
	}
	if n := strings.Count(svg, "<circle"); n != 3 {
		t.Errorf("expected 3 dots, got %d", n)
	}
	if strings.Count(svg, `fill="#ff0000"`) != 2 {
		t.Error("colored dots lost their color")
	}
	if !strings.Contains(svg, ">&lt;</text>") {
		t.Error("label not escaped")
	}
}
