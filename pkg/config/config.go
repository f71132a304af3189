// Package config loads stablematch defaults from a TOML file.
//
// A config file sets solver and render defaults; command-line flags
// override whatever the file sets:
//
//	[solver]
//	algorithm = "critical-rsm"   # stable | relaxed | critical-rsm
//	proposing = "a"              # a | b
//	threshold = 0
//
//	[render]
//	formats = ["dot"]            # dot | svg | png
//	detailed = false
//
// Files are looked up by [Locate]: an explicit path first, then
// $XDG_CONFIG_HOME/stablematch/config.toml, then
// ~/.config/stablematch/config.toml.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stablematch/pkg/errors"
	"github.com/matzehuels/stablematch/pkg/pipeline"
)

const (
	appName  = "stablematch"
	fileName = "config.toml"
)

// File is the decoded config file.
type File struct {
	Solver Solver `toml:"solver"`
	Render Render `toml:"render"`
}

// Solver holds the [solver] table.
type Solver struct {
	Algorithm string `toml:"algorithm"`
	Proposing string `toml:"proposing"`
	Threshold int    `toml:"threshold"`
}

// Render holds the [render] table.
type Render struct {
	Formats  []string `toml:"formats"`
	Detailed bool     `toml:"detailed"`
}

// Default returns the built-in configuration.
func Default() File {
	return File{
		Solver: Solver{
			Algorithm: pipeline.DefaultAlgorithm,
			Proposing: pipeline.DefaultProposing,
		},
	}
}

// Locate returns the config file to load. An explicit path is returned
// as-is; otherwise the first existing file in the XDG search path, or ""
// when there is none.
func Locate(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, dir := range searchDirs() {
		path := filepath.Join(dir, appName, fileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func searchDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, xdg)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config"))
	}
	return dirs
}

// Load reads the config file found by Locate(explicit) over Default().
// With no file found, Default() is returned. An explicit path that does
// not exist is FILE_NOT_FOUND; unknown keys and bad values are
// INVALID_CONFIG.
func Load(explicit string) (File, error) {
	cfg := Default()
	path := Locate(explicit)
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.WithContext(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks the values the file sets.
func (f File) Validate() error {
	opts := pipeline.Options{
		Input:     "-",
		Algorithm: f.Solver.Algorithm,
		Proposing: f.Solver.Proposing,
		Threshold: f.Solver.Threshold,
		Formats:   f.Render.Formats,
	}
	return opts.ValidateAndSetDefaults()
}

// Apply copies file values into opts for every field opts leaves unset.
func (f File) Apply(opts *pipeline.Options) {
	if opts.Algorithm == "" {
		opts.Algorithm = f.Solver.Algorithm
	}
	if opts.Proposing == "" {
		opts.Proposing = f.Solver.Proposing
	}
	if opts.Threshold == 0 {
		opts.Threshold = f.Solver.Threshold
	}
	if len(opts.Formats) == 0 {
		opts.Formats = append([]string(nil), f.Render.Formats...)
	}
	if !opts.Detailed {
		opts.Detailed = f.Render.Detailed
	}
}
