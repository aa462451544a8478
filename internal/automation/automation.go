package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/san-kum/eclipsehunter/internal/config"
	"github.com/san-kum/eclipsehunter/internal/metrics"
	"github.com/san-kum/eclipsehunter/internal/orrery"
	"github.com/san-kum/eclipsehunter/internal/sim"
	"github.com/san-kum/eclipsehunter/internal/storage"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario defines a scripted batch of headless runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Omitted keys keep the preset's setting; a
// zero seed does too.
type ScenarioStep struct {
	Name        string             `yaml:"name"`
	Preset      string             `yaml:"preset"`
	Ticks       int                `yaml:"ticks"`
	Seed        int64              `yaml:"seed"`
	Speed       *float64           `yaml:"speed"`
	Threshold   *float64           `yaml:"threshold"`
	StartAngles map[string]float64 `yaml:"start_angles"`
	SaveAs      string             `yaml:"save_as"`
}

// StepResult pairs a finished step with its report id, if it was saved.
type StepResult struct {
	Step   ScenarioStep
	Result *sim.Result
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: %s has no steps", ErrInvalidScenario, path)
	}

	return &scenario, nil
}

// Config builds the run configuration for the step.
func (s ScenarioStep) Config() (*config.Config, error) {
	preset := s.Preset
	if preset == "" {
		preset = "classic"
	}
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("%w: unknown preset %q", ErrInvalidScenario, preset)
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Speed != nil {
		cfg.Speed = *s.Speed
	}
	if s.Threshold != nil {
		cfg.Threshold = *s.Threshold
	}
	if len(s.StartAngles) > 0 {
		if cfg.StartAngles == nil {
			cfg.StartAngles = make(map[string]float64, len(s.StartAngles))
		}
		for k, v := range s.StartAngles {
			cfg.StartAngles[k] = v
		}
	}
	cfg.Sound = false
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order. Steps with save_as are written to
// store when it is non-nil. Progress goes to w.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, w io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		label := step.Name
		if label == "" {
			label = step.Preset
		}
		fmt.Fprintf(w, "Running step %d/%d: %s\n", i+1, len(scenario.Steps), label)

		if step.Ticks <= 0 {
			return results, fmt.Errorf("step %d: %w: ticks must be positive", i+1, ErrInvalidScenario)
		}
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := sim.Run(ctx, cfg, step.Ticks, metrics.Default()...)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		sr := StepResult{Step: step, Result: result}
		if step.SaveAs != "" && store != nil {
			id, err := store.Save(step.SaveAs, cfg, result)
			if err != nil {
				return results, fmt.Errorf("step %d: save: %w", i+1, err)
			}
			sr.RunID = id
			fmt.Fprintf(w, "  saved %s\n", id)
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs one preset across evenly spaced values of speed or
// threshold.
type ParameterSweep struct {
	Preset   string
	Param    string
	ParamMin float64
	ParamMax float64
	NumSteps int
	Ticks    int
	Seed     int64
}

// SweepResult holds the outcome of a single sweep point
type SweepResult struct {
	ParamValue      float64
	Eclipses        int
	ClosestApproach float64
	AlignmentRatio  float64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, w io.Writer) ([]SweepResult, error) {
	if sweep.NumSteps < 2 || sweep.Ticks <= 0 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 steps and positive ticks", ErrInvalidScenario)
	}
	if sweep.Param != "speed" && sweep.Param != "threshold" {
		return nil, fmt.Errorf("%w: cannot sweep %q", ErrInvalidScenario, sweep.Param)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		step := ScenarioStep{Preset: sweep.Preset, Seed: sweep.Seed}
		switch sweep.Param {
		case "speed":
			step.Speed = &paramVal
		case "threshold":
			step.Threshold = &paramVal
		}
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("sweep %s=%.4f: %w", sweep.Param, paramVal, err)
		}

		result, err := sim.Run(ctx, cfg, sweep.Ticks, metrics.Default()...)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{
			ParamValue:      paramVal,
			Eclipses:        result.Stats.Count,
			ClosestApproach: result.Metrics["closest_approach"],
			AlignmentRatio:  result.Metrics["alignment_ratio"],
		})

		fmt.Fprintf(w, "Sweep %d/%d: %s=%.4f\n", i+1, sweep.NumSteps, sweep.Param, paramVal)
	}

	return results, nil
}

// MonteCarloConfig defines Monte Carlo simulation parameters. Each trial
// perturbs every starting angle of the base preset by up to Perturbation
// radians.
type MonteCarloConfig struct {
	Preset       string
	Perturbation float64
	NumTrials    int
	Ticks        int
	Seed         int64
}

// MonteCarloResult holds the outcome of a single trial
type MonteCarloResult struct {
	TrialID     int
	StartAngles map[string]float64
	Eclipses    int
}

// RunMonteCarlo executes multiple trials with random perturbations
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, w io.Writer) ([]MonteCarloResult, error) {
	if cfg.NumTrials <= 0 || cfg.Ticks <= 0 {
		return nil, fmt.Errorf("%w: trials and ticks must be positive", ErrInvalidScenario)
	}

	base := ScenarioStep{Preset: cfg.Preset}
	baseCfg, err := base.Config()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	cat := orrery.DefaultCatalog()
	names := make([]string, 0, len(cat.Planets)+1)
	for _, p := range cat.Planets {
		names = append(names, strings.ToLower(p.Name))
	}
	names = append(names, orrery.MoonKey)

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		trialCfg := baseCfg.Clone()
		trialCfg.Seed = rng.Int63() + 1
		// Angles the preset leaves random start from zero.
		angles := make(map[string]float64, len(names))
		for _, name := range names {
			a := baseCfg.StartAngles[name]
			angles[name] = math.Mod(a+(rng.Float64()-0.5)*2*cfg.Perturbation+2*math.Pi, 2*math.Pi)
		}
		trialCfg.StartAngles = angles

		result, err := sim.Run(ctx, trialCfg, cfg.Ticks)
		if err != nil {
			return results, err
		}

		results = append(results, MonteCarloResult{
			TrialID:     trial,
			StartAngles: angles,
			Eclipses:    result.Stats.Count,
		})

		if (trial+1)%10 == 0 {
			fmt.Fprintf(w, "Monte Carlo: %d/%d trials complete\n", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats summarises eclipse counts across trials
func MonteCarloStats(results []MonteCarloResult) (minCount, maxCount int, mean float64) {
	if len(results) == 0 {
		return 0, 0, 0
	}
	minCount, maxCount = results[0].Eclipses, results[0].Eclipses
	total := 0
	for _, r := range results {
		minCount = min(minCount, r.Eclipses)
		maxCount = max(maxCount, r.Eclipses)
		total += r.Eclipses
	}
	return minCount, maxCount, float64(total) / float64(len(results))
}
