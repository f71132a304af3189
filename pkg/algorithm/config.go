package algorithm

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/errors"
)

// Config parameterizes the engine.
type Config struct {
	// ProposingSide is the side whose vertices initiate proposals.
	ProposingSide bipartite.Side

	// Criticality enables critical-vertex handling: promotion of critical
	// proposers, protection of critical partners and the exchange pass.
	// When false the engine computes a weakly stable matching.
	Criticality bool

	// CriticalityThreshold is the number of times a matched critical vertex
	// may be displaced. 0 means a matched critical vertex is never
	// displaced. Ignored unless Criticality is set.
	CriticalityThreshold int

	// Logger receives debug-level trace output. Nil discards it.
	Logger *log.Logger
}

// Validate checks the configuration and fills defaults.
func (c *Config) Validate() error {
	if c.ProposingSide != bipartite.SideA && c.ProposingSide != bipartite.SideB {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid proposing side %d", c.ProposingSide)
	}
	if c.CriticalityThreshold < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"criticality threshold must be >= 0, got %d", c.CriticalityThreshold)
	}
	if c.Logger == nil {
		c.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}
