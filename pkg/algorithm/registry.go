package algorithm

import (
	"slices"
	"strings"

	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/errors"
	"github.com/matzehuels/stablematch/pkg/matching"
)

// Registered algorithm names.
const (
	NameStable      = "stable"
	NameRelaxed     = "relaxed"
	NameCriticalRSM = "critical-rsm"
)

// DefaultAlgorithm is used when no name is given.
const DefaultAlgorithm = NameCriticalRSM

// Algorithm computes a matching on the graph it was created for.
type Algorithm interface {
	Name() string
	ComputeMatching() (*matching.Matching, error)
	Stats() Stats
}

var (
	_ Algorithm = (*Engine)(nil)
	_ Algorithm = (*CriticalRSM)(nil)
)

type factory func(g *bipartite.Graph, cfg Config) (Algorithm, error)

var registry = map[string]factory{
	NameStable: func(g *bipartite.Graph, cfg Config) (Algorithm, error) {
		cfg.Criticality = false
		return engine(NewEngine(g, cfg))
	},
	NameRelaxed: func(g *bipartite.Graph, cfg Config) (Algorithm, error) {
		cfg.Criticality = true
		return engine(NewEngine(g, cfg))
	},
	NameCriticalRSM: func(g *bipartite.Graph, cfg Config) (Algorithm, error) {
		a, err := newCriticalRSM(g, cfg)
		if err != nil {
			return nil, err
		}
		return a, nil
	},
}

// engine keeps a failed constructor from yielding a non-nil Algorithm.
func engine(e *Engine, err error) (Algorithm, error) {
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Names returns the registered algorithm names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New creates the named algorithm over g. An empty name selects
// DefaultAlgorithm. cfg.Criticality is set by the algorithm;
// cfg.CriticalityThreshold is honoured by "relaxed" only.
func New(name string, g *bipartite.Graph, cfg Config) (Algorithm, error) {
	if name == "" {
		name = DefaultAlgorithm
	}
	if err := errors.ValidateAlgorithmName(name); err != nil {
		return nil, err
	}
	f, ok := registry[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownAlgorithm,
			"unknown algorithm %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return f(g, cfg)
}
