// Package pipeline provides the read -> compute -> render pipeline behind
// the stablematch CLI.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Read: Load and validate an instance file (text or JSON)
//  2. Compute: Run a registered matching algorithm and summarize the result
//  3. Render: Draw the instance and matching as DOT, SVG or PNG
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Input:     "hospitals.txt",
//	    Algorithm: "critical-rsm",
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	g, err := runner.Read(ctx, "hospitals.txt")
//	m, stats, err := runner.Compute(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, g, m, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stablematch/pkg/algorithm"
	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/errors"
	"github.com/matzehuels/stablematch/pkg/matching"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultAlgorithm is the algorithm used when none is configured.
	DefaultAlgorithm = algorithm.DefaultAlgorithm

	// DefaultProposing is the proposing side used when none is configured.
	DefaultProposing = "a"
)

// Format constants for output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Read options
	Input string `json:"input"`

	// Compute options
	Algorithm string `json:"algorithm,omitempty"`
	Proposing string `json:"proposing,omitempty"` // "a" or "b"
	Threshold int    `json:"threshold,omitempty"` // Critical displacement budget ("relaxed" only)

	// Render options
	Formats  []string `json:"formats,omitempty"` // Empty means no rendering
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and reports.
	RunID string

	// InstanceHash is the fingerprint of the instance that was solved.
	InstanceHash string

	// Graph is the validated instance.
	Graph *bipartite.Graph

	// Matching is the computed matching.
	Matching *matching.Matching

	// Summary describes the matching relative to the graph.
	Summary matching.Summary

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing, size and engine counters.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	EdgeCount   int
	ReadTime    time.Duration
	ComputeTime time.Duration
	RenderTime  time.Duration
	Engine      algorithm.Stats
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid format: %q (must be one of: dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAlgorithm checks that name is a registered algorithm.
func ValidateAlgorithm(name string) error {
	if err := errors.ValidateAlgorithmName(name); err != nil {
		return err
	}
	for _, n := range algorithm.Names() {
		if n == name {
			return nil
		}
	}
	return errors.New(errors.ErrCodeUnknownAlgorithm,
		"unknown algorithm %q (available: %s)", name, strings.Join(algorithm.Names(), ", "))
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "input is required")
	}
	if err := o.ValidateForCompute(); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForCompute validates and sets defaults for the compute stage.
func (o *Options) ValidateForCompute() error {
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if o.Proposing == "" {
		o.Proposing = DefaultProposing
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := ValidateAlgorithm(o.Algorithm); err != nil {
		return err
	}
	if _, err := bipartite.ParseSide(o.Proposing); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "proposing side")
	}
	if o.Threshold < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "threshold must be >= 0, got %d", o.Threshold)
	}
	return nil
}

// AlgorithmConfig returns the engine configuration for these options.
// Call ValidateForCompute first.
func (o *Options) AlgorithmConfig() algorithm.Config {
	side, _ := bipartite.ParseSide(o.Proposing)
	return algorithm.Config{
		ProposingSide:        side,
		CriticalityThreshold: o.Threshold,
		Logger:               o.Logger,
	}
}
