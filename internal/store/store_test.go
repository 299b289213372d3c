package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/model"
	"github.com/san-kum/algoviz/internal/render"
	"github.com/san-kum/algoviz/internal/timing"
)

func sampleSteps() []StepRecord {
	return []StepRecord{
		{At: 0, Kind: "compare", I: 0, J: 1},
		{At: 160 * time.Millisecond, Kind: "swap", I: 0, J: 1},
		{At: 630 * time.Millisecond, Kind: "done", Message: "Bubble Sort complete."},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Algorithm: "bubble",
		Seed:      42,
		Speed:     1,
		Size:      2,
		Input:     []int{2, 1},
		Output:    []int{1, 2},
		Counts:    engine.Counts{Compares: 1, Swaps: 1},
		Metrics:   map[string]float64{"inversions": 0},
	}
	runID, err := st.Save(meta, sampleSteps())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	got, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Algorithm != "bubble" {
		t.Errorf("expected algorithm 'bubble', got '%s'", got.Algorithm)
	}
	if got.Seed != 42 {
		t.Errorf("expected seed 42, got %d", got.Seed)
	}
	if got.Counts.Swaps != 1 {
		t.Errorf("expected 1 swap, got %d", got.Counts.Swaps)
	}
	if _, ok := got.Metrics["inversions"]; !ok {
		t.Error("expected inversions metric")
	}

	steps, err := st.LoadSteps(runID)
	if err != nil {
		t.Fatalf("load steps failed: %v", err)
	}
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(steps))
	}
	if steps[1].At != 160*time.Millisecond || steps[1].Kind != "swap" {
		t.Errorf("unexpected step %+v", steps[1])
	}
	if steps[2].Message != "Bubble Sort complete." {
		t.Errorf("message lost: %+v", steps[2])
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := st.Save(RunMetadata{Algorithm: "merge", Timestamp: base.Add(time.Second)}, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save(RunMetadata{Algorithm: "quick", Timestamp: base}, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Algorithm != "quick" {
		t.Errorf("expected oldest first, got %s", runs[0].Algorithm)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{Algorithm: "bfs"}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "steps.csv")); os.IsNotExist(err) {
		t.Error("steps.csv not created")
	}

	steps, err := st.LoadSteps(runID)
	if err != nil {
		t.Fatalf("load steps failed: %v", err)
	}
	if len(steps) != 0 {
		t.Errorf("expected no steps, got %d", len(steps))
	}
}

func TestStepLogRecordsEngineRun(t *testing.T) {
	clock := timing.NewInstantClock()
	e := engine.New(timing.New(clock), render.Discard)
	log := NewStepLog(clock)
	e.AddObserver(log)

	bars := model.NewBars([]int{2, 1}, model.DefaultLayout())
	if err := e.Run(context.Background(), "bubble", engine.Workspace{Bars: bars}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	steps := log.Steps()
	if len(steps) < 3 {
		t.Fatalf("expected compare, swap and done, got %+v", steps)
	}
	if steps[0].Kind != "compare" || steps[0].At != 0 {
		t.Errorf("first step = %+v", steps[0])
	}
	last := steps[len(steps)-1]
	if last.Kind != "done" || last.At <= steps[0].At {
		t.Errorf("last step = %+v", last)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, RunMetadata{ID: "r1", Algorithm: "dfs"}, nil); err != nil {
		t.Fatal(err)
	}

	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out["algorithm"] != "dfs" || out["id"] != "r1" {
		t.Errorf("unexpected document %v", out)
	}
	if steps, ok := out["steps"].([]any); !ok || len(steps) != 0 {
		t.Errorf("steps should be an empty array, got %v", out["steps"])
	}

	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, RunMetadata{Algorithm: "dfs"}, sampleSteps()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("export file missing")
	}
}
