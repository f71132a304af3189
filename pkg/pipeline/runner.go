package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stablematch/pkg/algorithm"
	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/errors"
	"github.com/matzehuels/stablematch/pkg/io"
	"github.com/matzehuels/stablematch/pkg/matching"
	"github.com/matzehuels/stablematch/pkg/observability"
)

// Runner executes pipeline stages and reports them to the logger and the
// registered observability hooks.
//
// The Runner holds no per-run state, so one Runner may serve several
// goroutines with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete read -> compute -> render pipeline.
// Cancellation is checked between stages; a running computation is never
// interrupted.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.WithContext(err, "invalid options")
	}

	runID := uuid.NewString()
	logger := r.Logger.With("run", runID)
	result := &Result{
		RunID:     runID,
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Read
	readStart := time.Now()
	g, err := r.Read(ctx, opts.Input)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.InstanceHash = io.Fingerprint(g)
	result.Stats.ReadTime = time.Since(readStart)
	result.Stats.VertexCount = g.Len()
	result.Stats.EdgeCount = g.EdgeCount()

	logger.Info("read instance",
		"vertices", g.Len(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.ReadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Compute
	computeStart := time.Now()
	m, engineStats, err := r.Compute(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Matching = m
	result.Summary = matching.Summarize(g, m)
	result.Stats.ComputeTime = time.Since(computeStart)
	result.Stats.Engine = engineStats

	logger.Info("computed matching",
		"algorithm", opts.Algorithm,
		"pairs", result.Summary.Pairs,
		"critical", result.Summary.CriticalMatched,
		"duration", result.Stats.ComputeTime)

	if len(opts.Formats) == 0 {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, g, m, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Read loads and validates the instance at path.
func (r *Runner) Read(ctx context.Context, path string) (*bipartite.Graph, error) {
	hooks := observability.Solver()
	hooks.OnReadStart(ctx, path)
	start := time.Now()

	g, err := io.ImportInstance(path)
	if err != nil {
		hooks.OnReadComplete(ctx, path, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnReadComplete(ctx, path, g.Len(), g.EdgeCount(), time.Since(start), nil)
	return g, nil
}

// Compute runs the configured algorithm on g.
func (r *Runner) Compute(ctx context.Context, g *bipartite.Graph, opts Options) (*matching.Matching, algorithm.Stats, error) {
	if err := opts.ValidateForCompute(); err != nil {
		return nil, algorithm.Stats{}, err
	}
	hooks := observability.Solver()
	hooks.OnComputeStart(ctx, opts.Algorithm, g.Len())
	start := time.Now()

	m, stats, err := compute(g, opts)
	pairs := 0
	if m != nil {
		pairs = len(m.Pairs(g))
	}
	hooks.OnComputeComplete(ctx, opts.Algorithm, pairs, time.Since(start), err)
	return m, stats, err
}

func compute(g *bipartite.Graph, opts Options) (*matching.Matching, algorithm.Stats, error) {
	alg, err := algorithm.New(opts.Algorithm, g, opts.AlgorithmConfig())
	if err != nil {
		return nil, algorithm.Stats{}, err
	}
	m, err := alg.ComputeMatching()
	if err != nil {
		return nil, algorithm.Stats{}, err
	}
	return m, alg.Stats(), nil
}
