package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/algoviz/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseValues(t *testing.T) {
	got, err := parseValues([]string{" 5", "3", "", "8 "})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(got) != 3 || got[0] != 5 || got[2] != 8 {
		t.Errorf("unexpected values %v", got)
	}

	if _, err := parseValues([]string{"x"}); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestRunInstantSortsValues(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "run", "bubble",
		"--data", dir,
		"--instant",
		"--values", "5,3,8,1",
		"--record",
		"--svg", filepath.Join(dir, "final.svg"),
	)
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	for _, want := range []string{"Bubble Sort complete.", "compares: 6  swaps: 4", "inversions: 4 -> 0", "run id: bubble_"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "final.svg")); err != nil {
		t.Error("svg not written")
	}

	runs, err := store.New(dir).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Output[0] != 1 {
		t.Fatalf("unexpected archive %+v", runs)
	}

	out, err = execute(t, "list", "--data", dir)
	if err != nil || !strings.Contains(out, runs[0].ID) {
		t.Errorf("list output %q, err %v", out, err)
	}
	out, err = execute(t, "export", runs[0].ID, "--data", dir)
	if err != nil || !strings.Contains(out, `"algorithm": "bubble"`) {
		t.Errorf("export output %q, err %v", out, err)
	}
}

func TestLocalSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrays.json")
	common := []string{"--server", "", "--store", "file", "--store-path", path, "--user", "ada"}

	out, err := execute(t, append([]string{"save", "4", "2", "9"}, common...)...)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.Contains(out, "Array saved! (ada)") {
		t.Errorf("save output %q", out)
	}

	out, err = execute(t, append([]string{"load"}, common...)...)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if strings.TrimSpace(out) != "[4 2 9]" {
		t.Errorf("load output %q", out)
	}

	out, err = execute(t, append([]string{"users"}, common...)...)
	if err != nil || strings.TrimSpace(out) != "ada" {
		t.Errorf("users output %q, err %v", out, err)
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := execute(t, "run", "--instant", "--config", path); err == nil {
		t.Fatal("explicit missing config should fail")
	}
}

func TestInitWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algoviz.yaml")

	if err := os.WriteFile(path, []byte("algorithm: quick\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "init", "--config", path, "--size", "99"); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "algorithm: quick") || !strings.Contains(string(data), "size: 30") {
		t.Errorf("unexpected config:\n%s", data)
	}
}

func TestAlgorithmsAndPresets(t *testing.T) {
	out, err := execute(t, "algorithms")
	if err != nil || !strings.Contains(out, "Depth-First Search") {
		t.Errorf("algorithms output %q, err %v", out, err)
	}
	out, err = execute(t, "presets")
	if err != nil || !strings.Contains(out, "classic") {
		t.Errorf("presets output %q, err %v", out, err)
	}
}
