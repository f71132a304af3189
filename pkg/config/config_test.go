package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/stablematch/pkg/errors"
	"github.com/matzehuels/stablematch/pkg/pipeline"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Solver.Algorithm != pipeline.DefaultAlgorithm {
		t.Errorf("Algorithm = %q, want %q", cfg.Solver.Algorithm, pipeline.DefaultAlgorithm)
	}
	if cfg.Solver.Proposing != "a" {
		t.Errorf("Proposing = %q, want a", cfg.Solver.Proposing)
	}
}

func TestLoadExplicit(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), `
[solver]
algorithm = "relaxed"
threshold = 2

[render]
formats = ["dot", "svg"]
detailed = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Solver.Algorithm != "relaxed" || cfg.Solver.Threshold != 2 {
		t.Errorf("Solver = %+v", cfg.Solver)
	}
	if cfg.Solver.Proposing != "a" {
		t.Errorf("Proposing = %q, want default a", cfg.Solver.Proposing)
	}
	if len(cfg.Render.Formats) != 2 || !cfg.Render.Detailed {
		t.Errorf("Render = %+v", cfg.Render)
	}
}

func TestLoadXDG(t *testing.T) {
	isolate(t)
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, dir, "[solver]\nproposing = \"b\"\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Solver.Proposing != "b" {
		t.Errorf("Proposing = %q, want b", cfg.Solver.Proposing)
	}
}

func TestLoadErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join(dir, "none.toml"), errors.ErrCodeFileNotFound},
		{"syntax", writeConfig(t, t.TempDir(), "[solver\n"), errors.ErrCodeInvalidConfig},
		{"unknown key", writeConfig(t, t.TempDir(), "[solver]\nstrategy = 1\n"), errors.ErrCodeInvalidConfig},
		{"bad side", writeConfig(t, t.TempDir(), "[solver]\nproposing = \"c\"\n"), errors.ErrCodeInvalidConfig},
		{"bad format", writeConfig(t, t.TempDir(), "[render]\nformats = [\"gif\"]\n"), errors.ErrCodeInvalidConfig},
		{"bad algorithm", writeConfig(t, t.TempDir(), "[solver]\nalgorithm = \"greedy\"\n"), errors.ErrCodeUnknownAlgorithm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("Load(%s) = %v, want %s", tt.name, err, tt.code)
			}
		})
	}
}

func TestApply(t *testing.T) {
	f := File{
		Solver: Solver{Algorithm: "relaxed", Proposing: "b", Threshold: 3},
		Render: Render{Formats: []string{"svg"}, Detailed: true},
	}

	t.Run("fills unset", func(t *testing.T) {
		var opts pipeline.Options
		f.Apply(&opts)
		if opts.Algorithm != "relaxed" || opts.Proposing != "b" || opts.Threshold != 3 {
			t.Errorf("opts = %+v", opts)
		}
		if len(opts.Formats) != 1 || !opts.Detailed {
			t.Errorf("render opts = %v %v", opts.Formats, opts.Detailed)
		}
	})

	t.Run("flags win", func(t *testing.T) {
		opts := pipeline.Options{Algorithm: "stable", Proposing: "a", Formats: []string{"dot"}}
		f.Apply(&opts)
		if opts.Algorithm != "stable" || opts.Proposing != "a" {
			t.Errorf("opts = %+v", opts)
		}
		if opts.Formats[0] != "dot" {
			t.Errorf("Formats = %v", opts.Formats)
		}
	})
}
