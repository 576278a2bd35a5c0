package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMatchesDesign(t *testing.T) {
	cfg := Default()

	if cfg.Population.Count != 40 {
		t.Errorf("expected 40 groups, got %d", cfg.Population.Count)
	}
	if cfg.Bubble.DiskCount != 6 {
		t.Errorf("expected 6 disks, got %d", cfg.Bubble.DiskCount)
	}
	if got := cfg.Bubble.Radius - cfg.Bubble.Inset; got < 1.9399 || got > 1.9401 {
		t.Errorf("expected disk distance 1.94, got %v", got)
	}
	if len(cfg.Bubble.Palette) != 5 {
		t.Errorf("expected 5 palette colours, got %d", len(cfg.Bubble.Palette))
	}
	if cfg.Camera.FOV != 75 || cfg.Camera.Position != [3]float32{0, 0, 30} {
		t.Errorf("unexpected camera defaults: %+v", cfg.Camera)
	}
	if cfg.Bloom.Strength != 0.2 || cfg.Bloom.Radius != 0.4 || cfg.Bloom.Threshold != 0.4 {
		t.Errorf("unexpected bloom defaults: %+v", cfg.Bloom)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if cfg.Population.Count != Default().Population.Count {
		t.Errorf("expected defaults, got %+v", cfg.Population)
	}
}

func TestLoadOverlaysPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kusama.json")
	data := `{"seed": 7, "population": {"count": 12}, "bloom": {"strength": 0.5}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 7 {
		t.Errorf("seed: expected 7, got %d", cfg.Seed)
	}
	if cfg.Population.Count != 12 {
		t.Errorf("count: expected 12, got %d", cfg.Population.Count)
	}
	// Sibling fields of an overridden section keep their defaults.
	if cfg.Population.Extent != Default().Population.Extent {
		t.Errorf("extent should keep default, got %v", cfg.Population.Extent)
	}
	if cfg.Bloom.Threshold != 0.4 {
		t.Errorf("threshold should keep default, got %v", cfg.Bloom.Threshold)
	}
}

func TestLoadInvalidFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Error("expected a parse error to be reported")
	}
	if cfg.Bubble.Radius != Default().Bubble.Radius {
		t.Errorf("expected defaults after parse failure, got %+v", cfg.Bubble)
	}
}
