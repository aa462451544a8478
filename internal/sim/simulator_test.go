package sim

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/san-kum/eclipsehunter/internal/config"
	"github.com/san-kum/eclipsehunter/internal/dynamo"
	"github.com/san-kum/eclipsehunter/internal/orrery"
)

func seeded(seed int64) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func newSim(t *testing.T, cfg *config.Config) *Simulation {
	t.Helper()
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	return s
}

type countingMetric struct{ n int }

func (c *countingMetric) Name() string   { return "count" }
func (c *countingMetric) Observe(Frame)  { c.n++ }
func (c *countingMetric) Value() float64 { return float64(c.n) }
func (c *countingMetric) Reset()         { c.n = 0 }

func TestNewDefaults(t *testing.T) {
	s := newSim(t, seeded(3))

	if s.Speed() != 1 {
		t.Errorf("expected speed 1, got %f", s.Speed())
	}
	if s.Paused() {
		t.Error("expected running loop")
	}
	if !s.ShowInstructions() {
		t.Error("expected instructions shown")
	}
	if s.Selected() != nil {
		t.Error("expected no selection")
	}
	if len(s.Stars()) != config.DefaultStars {
		t.Errorf("expected %d stars, got %d", config.DefaultStars, len(s.Stars()))
	}
	if s.Seed() != 3 {
		t.Errorf("expected seed 3, got %d", s.Seed())
	}
}

func TestNewZeroSeedUsesClock(t *testing.T) {
	s := newSim(t, seeded(0))
	if s.Seed() == 0 {
		t.Error("zero seed was not replaced")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := seeded(1)
	cfg.Speed = 0
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	cfg = seeded(1)
	cfg.StartAngles = map[string]float64{"pluto": 0}
	if _, err := New(cfg); !errors.Is(err, orrery.ErrUnknownBody) {
		t.Errorf("expected ErrUnknownBody, got %v", err)
	}
}

func TestTickAdvancesBySpeed(t *testing.T) {
	s := newSim(t, seeded(11))
	s.SpeedUp()
	s.SpeedUp()

	before := s.System().State()
	s.Tick()
	after := s.System().State()

	speeds := []float64{0.04, 0.03, 0.02, 0.018, 0.08}
	for i, w := range speeds {
		if got := after[i] - before[i]; math.Abs(got-2*w) > 1e-12 {
			t.Errorf("angle %d advanced %f, expected %f", i, got, 2*w)
		}
	}
	if s.Stats().Frames != 1 {
		t.Errorf("expected 1 frame, got %d", s.Stats().Frames)
	}
}

func TestHaltIsLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	s := newSim(t, seeded(3))
	s.speed = math.NaN()
	for i := 0; i < 30; i++ {
		s.Tick()
	}
	s.TogglePause()
	s.Tick()

	var simErr *dynamo.SimulationError
	if !errors.As(s.Err(), &simErr) {
		t.Fatalf("expected a SimulationError, got %v", s.Err())
	}
	if !errors.Is(s.Err(), dynamo.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", s.Err())
	}
	if n := strings.Count(buf.String(), "simulation halted"); n != 1 {
		t.Errorf("halt logged %d times", n)
	}
}

func TestResetStats(t *testing.T) {
	s := newSim(t, config.GetPreset("aligned"))
	m := &countingMetric{}
	s.AddMetric(m)
	for i := 0; i < 5; i++ {
		s.Tick()
	}
	if s.Stats().Count != 1 || !s.BannerActive() {
		t.Fatalf("aligned start should fire once, got %+v", s.Stats())
	}
	moon := s.System().Moon().Pos

	s.ResetStats()
	st := s.Stats()
	if st.Count != 0 || st.Frames != 0 || s.BannerActive() || m.n != 0 {
		t.Errorf("reset left count=%d frames=%d banner=%d metric=%d", st.Count, st.Frames, s.Banner(), m.n)
	}
	if s.System().Moon().Pos != moon {
		t.Error("reset moved the moon")
	}

	// the moon is still sunward, so the next tick counts again
	if !s.Tick() {
		t.Error("first tick after reset should be accepted")
	}
}

func TestRK4TracksEuler(t *testing.T) {
	a := newSim(t, seeded(5))
	cfg := seeded(5)
	cfg.Integrator = "rk4"
	b := newSim(t, cfg)

	for i := 0; i < 300; i++ {
		a.Tick()
		b.Tick()
	}
	pa, pb := a.System().Moon().Pos, b.System().Moon().Pos
	if math.Abs(pa.X-pb.X) > 1e-6 || math.Abs(pa.Y-pb.Y) > 1e-6 {
		t.Errorf("moon diverged: %v vs %v", pa, pb)
	}
	if a.Stats().Count != b.Stats().Count {
		t.Errorf("eclipse counts differ: %d vs %d", a.Stats().Count, b.Stats().Count)
	}
}

func TestSpeedClamp(t *testing.T) {
	s := newSim(t, seeded(1))

	for i := 0; i < 40; i++ {
		s.SpeedUp()
	}
	if s.Speed() != config.MaxSpeed {
		t.Errorf("expected %f, got %f", config.MaxSpeed, s.Speed())
	}

	for i := 0; i < 40; i++ {
		s.SpeedDown()
	}
	if s.Speed() != config.MinSpeed {
		t.Errorf("expected %f, got %f", config.MinSpeed, s.Speed())
	}

	s.SpeedUp()
	if s.Speed() != 1.0 {
		t.Errorf("expected 1.0 after one step up, got %f", s.Speed())
	}
}

func TestPauseFreezes(t *testing.T) {
	s := newSim(t, seeded(5))
	s.Tick()
	s.TogglePause()

	planets := append([]orrery.Body(nil), s.System().Planets()...)
	moon := *s.System().Moon()
	frames := s.Stats().Frames

	for i := 0; i < 250; i++ {
		s.Tick()
	}

	for i, p := range s.System().Planets() {
		if p.Pos != planets[i].Pos || p.Angle != planets[i].Angle {
			t.Errorf("%s moved while paused", p.Name)
		}
	}
	if s.System().Moon().Pos != moon.Pos {
		t.Error("moon moved while paused")
	}
	if s.Stats().Frames != frames {
		t.Errorf("frames advanced while paused: %d -> %d", frames, s.Stats().Frames)
	}

	s.TogglePause()
	s.Tick()
	if s.Stats().Frames != frames+1 {
		t.Error("loop did not resume")
	}
}

func TestAlignedStartFiresImmediately(t *testing.T) {
	s := newSim(t, config.GetPreset("aligned"))

	var events []Event
	s.AddObserver(ObserverFunc(func(e Event) { events = append(events, e) }))

	if !s.Tick() {
		t.Fatal("expected an eclipse on the first tick")
	}
	if len(events) != 1 || events[0].Planet != "Earth" || events[0].Tick != 1 {
		t.Fatalf("unexpected events: %+v", events)
	}
	if math.Abs(events[0].Distance-35) > 1e-9 {
		t.Errorf("expected moon 35px from Earth, got %f", events[0].Distance)
	}
	if s.Banner() != config.DefaultBannerFrames-1 {
		t.Errorf("expected banner %d, got %d", config.DefaultBannerFrames-1, s.Banner())
	}

	// banner keeps counting down while paused
	s.TogglePause()
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	if s.Banner() != config.DefaultBannerFrames-11 {
		t.Errorf("expected banner %d, got %d", config.DefaultBannerFrames-11, s.Banner())
	}
	if !s.BannerActive() {
		t.Error("banner should still show")
	}
}

func TestEventsAreDebounced(t *testing.T) {
	s := newSim(t, config.GetPreset("aligned"))

	var ticks []int
	s.AddObserver(ObserverFunc(func(e Event) { ticks = append(ticks, e.Tick) }))
	for i := 0; i < 1000; i++ {
		s.Tick()
	}

	if len(ticks) < 2 {
		t.Fatalf("expected repeated eclipses, got %v", ticks)
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i]-ticks[i-1] <= config.DefaultDebounce {
			t.Errorf("events %d and %d closer than the window", ticks[i-1], ticks[i])
		}
	}
	if s.Stats().Count != len(ticks) {
		t.Errorf("tracker count %d, observer saw %d", s.Stats().Count, len(ticks))
	}
}

func TestMetricsSkipPausedTicks(t *testing.T) {
	s := newSim(t, seeded(2))
	m := &countingMetric{}
	s.AddMetric(m)

	for i := 0; i < 10; i++ {
		s.Tick()
	}
	s.TogglePause()
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	if m.n != 10 {
		t.Errorf("expected 10 observations, got %d", m.n)
	}
}

func TestSelectAt(t *testing.T) {
	s := newSim(t, config.GetPreset("aligned"))
	earth := s.System().Planet(2).Pos
	mercury := s.System().Planet(0).Pos

	s.SelectAt(earth, 0)
	if sel := s.Selected(); sel == nil || sel.Name != "Earth" {
		t.Fatalf("expected Earth selected, got %+v", sel)
	}
	if !s.System().Planet(2).Selected {
		t.Error("body flag not set")
	}

	s.SelectAt(earth, 0)
	if s.Selected() != nil {
		t.Error("clicking the selected planet should deselect it")
	}

	s.SelectAt(mercury, 0)
	s.SelectAt(earth, 0)
	if sel := s.Selected(); sel == nil || sel.Name != "Earth" {
		t.Errorf("selection should move to Earth, got %+v", sel)
	}
	if s.System().Planet(0).Selected {
		t.Error("Mercury still flagged")
	}

	s.SelectAt(dynamo.Vec2{X: 5, Y: 5}, 0)
	if s.Selected() != nil {
		t.Error("clicking empty space should clear the selection")
	}
}

func TestCycleSelection(t *testing.T) {
	s := newSim(t, seeded(4))
	want := []string{"Mercury", "Venus", "Earth", "Mars", ""}

	for _, name := range want {
		s.CycleSelection()
		sel := s.Selected()
		switch {
		case name == "" && sel != nil:
			t.Errorf("expected no selection, got %s", sel.Name)
		case name != "" && (sel == nil || sel.Name != name):
			t.Errorf("expected %s, got %+v", name, sel)
		}
	}

	s.CycleSelection()
	s.ClearSelection()
	if s.Selected() != nil {
		t.Error("ClearSelection left a selection")
	}
}

func TestBannerPulse(t *testing.T) {
	s := newSim(t, seeded(1))
	if s.BannerPulse() != 1 {
		t.Errorf("expected pulse 1 at rest, got %f", s.BannerPulse())
	}
	if s.BannerRing() != 45 {
		t.Errorf("expected ring 45, got %f", s.BannerRing())
	}
}

func TestRun(t *testing.T) {
	m := &countingMetric{n: 99}
	result, err := Run(context.Background(), config.GetPreset("aligned"), 500, m)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Ticks != 500 || len(result.Separation) != 500 || len(result.Offset) != 500 || len(result.Trace) != 500 {
		t.Errorf("expected 500 samples, got ticks=%d sep=%d offset=%d trace=%d",
			result.Ticks, len(result.Separation), len(result.Offset), len(result.Trace))
	}
	for i, e := range result.Events {
		if off := result.Offset[e.Tick-1]; off >= 0 {
			t.Errorf("event %d at tick %d with the moon sunward offset %f", i, e.Tick, off)
		}
	}
	if result.Stats.Frames != 500 {
		t.Errorf("expected 500 frames, got %d", result.Stats.Frames)
	}
	if len(result.Events) != result.Stats.Count || result.Stats.Count == 0 {
		t.Errorf("events %d, count %d", len(result.Events), result.Stats.Count)
	}
	if result.Metrics["count"] != 500 {
		t.Errorf("metric not reset or not fed: %f", result.Metrics["count"])
	}
	if result.Seed != 1 {
		t.Errorf("expected seed 1, got %d", result.Seed)
	}
}

func TestRunInvalid(t *testing.T) {
	if _, err := Run(context.Background(), seeded(1), 0); err == nil {
		t.Error("expected error for zero ticks")
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, seeded(1), 100)
	if !errors.Is(err, dynamo.ErrContextCanceled) {
		t.Errorf("expected ErrContextCanceled, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
	if result == nil || result.Ticks != 0 {
		t.Errorf("expected empty partial result, got %+v", result)
	}
}

func TestEnsemble(t *testing.T) {
	e := NewEnsemble(config.DefaultConfig(), 4, 10)
	e.Metrics = func() []Metric { return []Metric{&countingMetric{}} }

	results, err := e.Run(context.Background(), 200)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Seed != int64(10+i) {
			t.Errorf("run %d: expected seed %d, got %d", i, 10+i, r.Seed)
		}
		if r.Metrics["count"] != 200 {
			t.Errorf("run %d: metrics shared between runs (%f)", i, r.Metrics["count"])
		}
	}
}

func TestEnsembleDeterministic(t *testing.T) {
	a, err := NewEnsemble(config.DefaultConfig(), 2, 7).Run(context.Background(), 300)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewEnsemble(config.DefaultConfig(), 2, 7).Run(context.Background(), 300)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i].Stats != b[i].Stats {
			t.Errorf("run %d differs: %+v vs %+v", i, a[i].Stats, b[i].Stats)
		}
	}
}
