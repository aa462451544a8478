package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/eclipsehunter/internal/config"
	"github.com/san-kum/eclipsehunter/internal/dynamo"
)

// Run drives a fresh Simulation for ticks frames with no front end. The
// result is returned even when ctx is cancelled part way.
func Run(ctx context.Context, cfg *config.Config, ticks int, metrics ...Metric) (*Result, error) {
	if ticks <= 0 {
		return nil, fmt.Errorf("ticks must be positive, got %d", ticks)
	}
	s, err := New(cfg)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Seed:       s.Seed(),
		Separation: make([]float64, 0, ticks),
		Offset:     make([]float64, 0, ticks),
		Trace:      make([]dynamo.Vec2, 0, ticks),
		Metrics:    make(map[string]float64),
	}
	for _, m := range metrics {
		m.Reset()
		s.AddMetric(m)
	}
	s.AddObserver(ObserverFunc(func(e Event) {
		result.Events = append(result.Events, e)
	}))

	defer func() {
		result.Stats = s.Stats()
		for _, m := range metrics {
			result.Metrics[m.Name()] = m.Value()
		}
	}()

	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		s.Tick()
		if err := s.Err(); err != nil {
			return result, err
		}
		last := s.Last()
		result.Separation = append(result.Separation, last.Distances.MoonPlanet)
		result.Offset = append(result.Offset, last.Distances.Offset())
		result.Trace = append(result.Trace, last.Geometry.Moon)
		result.Ticks++
	}
	return result, nil
}
