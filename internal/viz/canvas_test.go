package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	c.Set(1, 3)
	if c.Grid[0][0] != blank|0x1|0x80 {
		t.Errorf("unexpected cell %U", c.Grid[0][0])
	}

	c.Set(0, 0)
	if c.Grid[0][0] != blank|0x1|0x80 {
		t.Errorf("setting a dot twice changed the cell to %U", c.Grid[0][0])
	}

	// out of range writes are ignored
	c.Set(-1, 0)
	c.Set(8, 0)
	c.Set(0, 8)
}

func TestCanvasColors(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetColor(0, 0, "#ff0000")
	c.SetColor(1, 1, "")
	if c.Colors[0][0] != "#ff0000" {
		t.Errorf("empty color should keep the cell color, got %q", c.Colors[0][0])
	}
	c.SetColor(2, 0, "#00ff00")
	if c.Colors[0][1] != "#00ff00" {
		t.Errorf("expected green second cell, got %q", c.Colors[0][1])
	}

	c.Clear()
	if c.Grid[0][0] != blank || c.Colors[0][0] != "" {
		t.Error("clear left state behind")
	}
}

func TestCanvasCircleSymmetry(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(20, 20, 8, "")

	on := func(x, y int) bool {
		return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
	}
	for _, p := range [][2]int{{28, 20}, {12, 20}, {20, 28}, {20, 12}} {
		if !on(p[0], p[1]) {
			t.Errorf("expected dot at %v", p)
		}
	}
	if on(20, 20) {
		t.Error("outline should leave the center empty")
	}
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(10, 10, 3, "#ffffff")

	count := 0
	for y := 0; y < c.SubHeight(); y++ {
		for x := 0; x < c.SubWidth(); x++ {
			if c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0 {
				count++
			}
		}
	}
	// integer disc of radius 3 holds 29 lattice points
	if count != 29 {
		t.Errorf("expected 29 dots, got %d", count)
	}
}

func TestCanvasLabel(t *testing.T) {
	c := NewCanvas(6, 2)
	c.Label(2, 4, "Mars", "#bc2732")
	if got := string(c.Grid[1][1:5]); got != "Mars" {
		t.Errorf("expected label in row 1, got %q", got)
	}

	// dots never overwrite text
	c.Set(2, 4)
	if c.Grid[1][1] != 'M' {
		t.Errorf("dot overwrote label: %q", c.Grid[1][1])
	}

	// text past the edge is cut
	c.Label(10, 0, "Mercury", "")
	if got := string(c.Grid[0][5:]); got != "M" {
		t.Errorf("expected truncated label, got %q", got)
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Label(0, 0, "abc", lipgloss.Color("#ff0000"))
	out := c.Render()

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "abc") {
		t.Errorf("label missing from %q", lines[0])
	}
	if c.String() != "abc\n"+strings.Repeat(string(blank), 3)+"\n" {
		t.Errorf("unexpected plain render %q", c.String())
	}
}
