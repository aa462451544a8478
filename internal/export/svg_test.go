package export

import (
	"context"
	"strings"
	"testing"

	"github.com/san-kum/eclipsehunter/internal/config"
	"github.com/san-kum/eclipsehunter/internal/dynamo"
	"github.com/san-kum/eclipsehunter/internal/orrery"
	"github.com/san-kum/eclipsehunter/internal/sim"
)

func TestTrajectoryToSVG(t *testing.T) {
	result, err := sim.Run(context.Background(), config.GetPreset("aligned"), 600)
	if err != nil {
		t.Fatal(err)
	}

	svg := TrajectoryToSVG(result.Trace, result.Events, orrery.DefaultCatalog(), 800, 600, "#a9a9a9")
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if !strings.Contains(svg, `viewBox="0 0 1200 900"`) {
		t.Error("expected world viewBox")
	}
	if n := strings.Count(svg, `class="orbit"`); n != 4 {
		t.Errorf("expected 4 orbits, got %d", n)
	}
	if n := strings.Count(svg, `class="eclipse"`); n != len(result.Events) {
		t.Errorf("expected %d markers, got %d", len(result.Events), n)
	}
	if strings.Count(svg, " L") != len(result.Trace)-1 {
		t.Error("path does not cover the trace")
	}
}

func TestTrajectoryToSVGEdgeCases(t *testing.T) {
	cat := orrery.DefaultCatalog()
	if TrajectoryToSVG([]dynamo.Vec2{{X: 1, Y: 1}}, nil, cat, 10, 10, "#fff") != "" {
		t.Error("a single point should give no svg")
	}

	trace := []dynamo.Vec2{{X: 1, Y: 1}, {X: 2, Y: 2}}
	svg := TrajectoryToSVG(trace, []sim.Event{{Tick: 0}, {Tick: 3}, {Tick: 2, Count: 1}}, cat, 10, 10, "#fff")
	if n := strings.Count(svg, `class="eclipse"`); n != 1 {
		t.Errorf("out of range events should be skipped, got %d markers", n)
	}
}
