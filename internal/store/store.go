// Package store archives finished headless runs: a metadata.json and a
// steps.csv per run directory.
package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/timing"
)

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
	Algorithm string             `json:"algorithm"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Speed     float64            `json:"speed"`
	Size      int                `json:"size"`
	Input     []int              `json:"input,omitempty"`
	Output    []int              `json:"output,omitempty"`
	Counts    engine.Counts      `json:"counts"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	ElapsedMS int64              `json:"elapsed_ms"`
	Message   string             `json:"message"`
}

// StepRecord is one engine step stamped with the clock offset from the
// start of the run.
type StepRecord struct {
	At      time.Duration `json:"at"`
	Kind    string        `json:"kind"`
	I       int           `json:"i"`
	J       int           `json:"j"`
	Value   int           `json:"value"`
	Message string        `json:"message,omitempty"`
}

// StepLog is an engine.Observer that keeps every step.
type StepLog struct {
	mu    sync.Mutex
	clock timing.Clock
	start time.Time
	steps []StepRecord
}

func NewStepLog(clock timing.Clock) *StepLog {
	if clock == nil {
		clock = timing.WallClock()
	}
	return &StepLog{clock: clock, start: clock.Now()}
}

func (l *StepLog) OnStep(s engine.Step) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.steps = append(l.steps, StepRecord{
		At:      l.clock.Now().Sub(l.start),
		Kind:    s.Kind.String(),
		I:       s.I,
		J:       s.J,
		Value:   s.Value,
		Message: s.Message,
	})
}

func (l *StepLog) Steps() []StepRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]StepRecord, len(l.steps))
	copy(out, l.steps)
	return out
}

var stepHeader = []string{"at_ms", "kind", "i", "j", "value", "message"}

// Save writes a new run directory and returns its id.
func (s *Store) Save(meta RunMetadata, steps []StepRecord) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.ID = fmt.Sprintf("%s_%d", meta.Algorithm, meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "steps.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(stepHeader); err != nil {
		return "", err
	}
	for _, st := range steps {
		row := []string{
			strconv.FormatFloat(float64(st.At)/float64(time.Millisecond), 'f', 3, 64),
			st.Kind,
			strconv.Itoa(st.I),
			strconv.Itoa(st.J),
			strconv.Itoa(st.Value),
			st.Message,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns archived runs, oldest first. Unreadable entries are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
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

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSteps(runID string) ([]StepRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "steps.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(stepHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []StepRecord{}, nil
	}

	steps := make([]StepRecord, 0, len(records)-1)
	for _, rec := range records[1:] {
		ms, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parse step time %q: %w", rec[0], err)
		}
		var ints [3]int
		for k := range ints {
			if ints[k], err = strconv.Atoi(rec[2+k]); err != nil {
				return nil, fmt.Errorf("parse step field %q: %w", rec[2+k], err)
			}
		}
		steps = append(steps, StepRecord{
			At:      time.Duration(ms * float64(time.Millisecond)),
			Kind:    rec[1],
			I:       ints[0],
			J:       ints[1],
			Value:   ints[2],
			Message: rec[5],
		})
	}
	return steps, nil
}
