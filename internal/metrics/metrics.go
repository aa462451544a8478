// Package metrics provides sim.Metric implementations summarising a run.
package metrics

import "github.com/san-kum/eclipsehunter/internal/sim"

// Default returns a fresh instance of every metric.
func Default() []sim.Metric {
	return []sim.Metric{NewClosestApproach(), NewAlignmentRatio(), NewMeanGap()}
}
