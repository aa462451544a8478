package sim

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/eclipsehunter/internal/config"
	"github.com/san-kum/eclipsehunter/internal/dynamo"
	"github.com/san-kum/eclipsehunter/internal/eclipse"
	"github.com/san-kum/eclipsehunter/internal/integrators"
	"github.com/san-kum/eclipsehunter/internal/orrery"
)

// Simulation is the interactive loop state: the orrery, the eclipse tracker
// and every toggle a front end can flip. It is not safe for concurrent use.
type Simulation struct {
	sys        *orrery.System
	integrator dynamo.Integrator
	tracker    *eclipse.Tracker
	stars      []orrery.Star
	seed       int64

	threshold    float64
	bannerFrames int
	speed        float64
	paused       bool
	showHelp     bool
	banner       int
	selected     int

	last      Frame
	err       error
	metrics   []Metric
	observers []Observer
}

// New builds a Simulation from cfg. A zero seed is replaced by the clock.
func New(cfg *config.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	sys := orrery.NewSystem(orrery.DefaultCatalog(), rng)
	for name, angle := range cfg.StartAngles {
		if err := sys.SetAngle(name, angle); err != nil {
			return nil, fmt.Errorf("start angle: %w", err)
		}
	}

	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		sys:          sys,
		integrator:   integ,
		tracker:      eclipse.NewTracker(cfg.Debounce),
		stars:        orrery.NewStarfield(cfg.Stars, orrery.WorldWidth, orrery.WorldHeight, rng),
		seed:         seed,
		threshold:    cfg.Threshold,
		bannerFrames: cfg.BannerFrames,
		speed:        cfg.Speed,
		showHelp:     cfg.ShowInstructions,
		selected:     -1,
	}
	s.last = s.observe()
	return s, nil
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Tick advances one frame. While paused nothing moves and the tracker is
// not fed, but the banner still counts down. It reports whether a new
// eclipse was accepted.
func (s *Simulation) Tick() bool {
	event := false
	if !s.paused && s.err == nil {
		event = s.advance()
	}
	if s.banner > 0 {
		s.banner--
	}
	return event
}

func (s *Simulation) advance() bool {
	x := s.integrator.Step(s.sys, s.sys.State(), float64(s.tracker.Frames), s.speed)
	if err := s.sys.Apply(x); err != nil {
		s.err = &dynamo.SimulationError{Tick: s.tracker.Frames, State: x, Wrapped: err}
		s.paused = true
		log.Printf("simulation halted: %v", s.err)
		return false
	}

	f := s.observe()
	f.Event = s.tracker.Observe(f.Detected)
	f.Tick = s.tracker.Frames
	s.last = f

	for _, m := range s.metrics {
		m.Observe(f)
	}
	if !f.Event {
		return false
	}

	s.banner = s.bannerFrames
	e := Event{
		Tick:     f.Tick,
		Planet:   s.sys.MoonParent().Name,
		Count:    s.tracker.Count,
		Distance: f.Distances.MoonPlanet,
	}
	for _, o := range s.observers {
		o.OnEclipse(e)
	}
	return true
}

func (s *Simulation) observe() Frame {
	g := eclipse.Geometry{
		Sun:    s.sys.Sun(),
		Planet: s.sys.MoonParent().Pos,
		Moon:   s.sys.Moon().Pos,
	}
	d := g.Distances()
	return Frame{
		Tick:      s.tracker.Frames,
		Geometry:  g,
		Distances: d,
		Detected:  d.Holds(s.threshold),
	}
}

func (s *Simulation) TogglePause()        { s.paused = !s.paused }
func (s *Simulation) ToggleInstructions() { s.showHelp = !s.showHelp }

func (s *Simulation) SpeedUp() {
	s.speed = math.Min(config.MaxSpeed, s.speed+config.SpeedStep)
}

func (s *Simulation) SpeedDown() {
	s.speed = math.Max(config.MinSpeed, s.speed-config.SpeedStep)
}

// SelectAt handles a click at p. Clicking the selected planet deselects it,
// clicking another planet moves the selection there and clicking empty
// space clears it. slack widens every hit area for coarse pointers.
func (s *Simulation) SelectAt(p dynamo.Vec2, slack float64) {
	i := s.sys.BodyAt(p, slack)
	if i == s.selected {
		i = -1
	}
	s.selectPlanet(i)
}

// CycleSelection moves the selection to the next planet, wrapping through
// "nothing selected".
func (s *Simulation) CycleSelection() {
	next := s.selected + 1
	if next >= s.sys.NumPlanets() {
		next = -1
	}
	s.selectPlanet(next)
}

func (s *Simulation) ClearSelection() { s.selectPlanet(-1) }

// ResetStats zeroes the eclipse tracker, the banner and every metric. The
// bodies keep their positions.
func (s *Simulation) ResetStats() {
	s.tracker.Reset()
	s.banner = 0
	for _, m := range s.metrics {
		m.Reset()
	}
	s.last = s.observe()
}

func (s *Simulation) selectPlanet(i int) {
	s.selected = i
	s.sys.Select(i)
}

// Selected returns the selected planet, or nil.
func (s *Simulation) Selected() *orrery.Body {
	if s.selected < 0 {
		return nil
	}
	return s.sys.Planet(s.selected)
}

// BannerPulse is the banner scale while the eclipse banner is showing.
func (s *Simulation) BannerPulse() float64 {
	return 1 + 0.3*math.Sin(float64(s.banner)*0.3)
}

// BannerRing is the radius of the ring drawn around the eclipsed planet.
func (s *Simulation) BannerRing() float64 { return 45 * s.BannerPulse() }

func (s *Simulation) System() *orrery.System { return s.sys }
func (s *Simulation) Stars() []orrery.Star   { return s.stars }
func (s *Simulation) Stats() eclipse.Stats   { return s.tracker.Stats() }
func (s *Simulation) Last() Frame            { return s.last }
func (s *Simulation) Speed() float64         { return s.speed }
func (s *Simulation) Paused() bool           { return s.paused }
func (s *Simulation) ShowInstructions() bool { return s.showHelp }
func (s *Simulation) Banner() int            { return s.banner }
func (s *Simulation) BannerActive() bool     { return s.banner > 0 }
func (s *Simulation) Seed() int64            { return s.seed }
func (s *Simulation) Err() error             { return s.err }
