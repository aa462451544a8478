package eclipse

// DefaultWindow is the debounce window in frames, one second at 60 fps.
const DefaultWindow = 60

// FramesPerDay converts frames to simulated days: one second of animation
// is one day.
const FramesPerDay = 60

// Tracker counts eclipses, accepting a detection only when more than Window
// frames have passed since the last accepted one.
type Tracker struct {
	Window    int
	Frames    int
	Count     int
	LastFrame int
}

func NewTracker(window int) *Tracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Tracker{Window: window, LastFrame: -1000}
}

// Observe records one frame. It returns true when detected starts a new
// eclipse.
func (t *Tracker) Observe(detected bool) bool {
	t.Frames++
	if detected && t.Frames-t.LastFrame > t.Window {
		t.Count++
		t.LastFrame = t.Frames
		return true
	}
	return false
}

func (t *Tracker) Reset() {
	t.Frames = 0
	t.Count = 0
	t.LastFrame = -1000
}

// Stats is the tracker read out in calendar terms.
type Stats struct {
	Count  int
	Frames int
	Days   int
	Years  int
	Months int
	// AvgDays is the whole number of days per eclipse. Zero when Count is zero.
	AvgDays int
}

func (t *Tracker) Stats() Stats {
	days := t.Frames / FramesPerDay
	s := Stats{
		Count:  t.Count,
		Frames: t.Frames,
		Days:   days,
		Years:  days / 365,
		Months: (days % 365) / 30,
	}
	if t.Count > 0 {
		s.AvgDays = int(float64(days) / float64(t.Count))
	}
	return s
}
