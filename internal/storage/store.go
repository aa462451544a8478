package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/eclipsehunter/internal/config"
	"github.com/san-kum/eclipsehunter/internal/dynamo"
	"github.com/san-kum/eclipsehunter/internal/sim"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
	eventsFile   = "events.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

// Store keeps headless run reports, one directory per run. Reports are for
// analysis only; nothing is ever loaded back into a simulation.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Ticks     int                `json:"ticks"`
	Speed     float64            `json:"speed"`
	Threshold float64            `json:"threshold"`
	Debounce  int                `json:"debounce"`
	Eclipses  int                `json:"eclipses"`
	Days      int                `json:"days"`
	AvgDays   int                `json:"avg_days"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json, series.csv and events.csv for result and
// returns the run id.
func (s *Store) Save(preset string, cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", preset, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Timestamp: now,
		Seed:      result.Seed,
		Ticks:     result.Ticks,
		Speed:     cfg.Speed,
		Threshold: cfg.Threshold,
		Debounce:  cfg.Debounce,
		Eclipses:  result.Stats.Count,
		Days:      result.Stats.Days,
		AvgDays:   result.Stats.AvgDays,
		Metrics:   result.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	series := [][]string{{"tick", "separation", "offset", "moon_x", "moon_y"}}
	for i, d := range result.Separation {
		p := result.Trace[i]
		series = append(series, []string{
			strconv.Itoa(i + 1), formatFloat(d), formatFloat(result.Offset[i]), formatFloat(p.X), formatFloat(p.Y),
		})
	}
	if err := writeCSV(filepath.Join(runDir, seriesFile), series); err != nil {
		return "", err
	}

	events := [][]string{{"tick", "planet", "count", "distance"}}
	for _, e := range result.Events {
		events = append(events, []string{strconv.Itoa(e.Tick), e.Planet, strconv.Itoa(e.Count), formatFloat(e.Distance)})
	}
	if err := writeCSV(filepath.Join(runDir, eventsFile), events); err != nil {
		return "", err
	}

	return runID, nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) open(runID, name string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return f, err
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	f, err := s.open(runID, metadataFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var meta RunMetadata
	if err := json.NewDecoder(f).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) readCSV(runID, name string) ([][]string, error) {
	f, err := s.open(runID, name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s of %s: %w", name, runID, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

// Series is the per-tick data of a run.
type Series struct {
	Separation []float64
	Offset     []float64
	Trace      []dynamo.Vec2
}

// LoadSeries reads series.csv of a run. Malformed rows are skipped.
func (s *Store) LoadSeries(runID string) (*Series, error) {
	records, err := s.readCSV(runID, seriesFile)
	if err != nil {
		return nil, err
	}

	series := &Series{
		Separation: make([]float64, 0, len(records)),
		Offset:     make([]float64, 0, len(records)),
		Trace:      make([]dynamo.Vec2, 0, len(records)),
	}
	for _, r := range records {
		if len(r) < 5 {
			continue
		}
		vals := make([]float64, 4)
		var errs []error
		for i := range vals {
			v, err := strconv.ParseFloat(r[i+1], 64)
			vals[i] = v
			errs = append(errs, err)
		}
		if errors.Join(errs...) != nil {
			continue
		}
		series.Separation = append(series.Separation, vals[0])
		series.Offset = append(series.Offset, vals[1])
		series.Trace = append(series.Trace, dynamo.Vec2{X: vals[2], Y: vals[3]})
	}
	return series, nil
}

func (s *Store) LoadEvents(runID string) ([]sim.Event, error) {
	records, err := s.readCSV(runID, eventsFile)
	if err != nil {
		return nil, err
	}

	events := make([]sim.Event, 0, len(records))
	for _, r := range records {
		if len(r) < 4 {
			continue
		}
		tick, err1 := strconv.Atoi(r[0])
		count, err2 := strconv.Atoi(r[2])
		dist, err3 := strconv.ParseFloat(r[3], 64)
		if err := errors.Join(err1, err2, err3); err != nil {
			continue
		}
		events = append(events, sim.Event{Tick: tick, Planet: r[1], Count: count, Distance: dist})
	}
	return events, nil
}

// CopySeries writes the raw series.csv of a run to w.
func (s *Store) CopySeries(runID string, w io.Writer) error {
	f, err := s.open(runID, seriesFile)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
