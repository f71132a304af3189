package algorithm

import (
	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/matching"
)

// CriticalRSM computes a critical relaxed-stable matching: for every
// blocking pair (a, b), a's partner or b's partner is critical, and no
// critical vertex matched during the computation ends unmatched.
//
// It is the engine with criticality enabled and a displacement budget of
// zero.
type CriticalRSM struct {
	*Engine
}

// NewCriticalRSM creates the algorithm with proposals from side.
func NewCriticalRSM(g *bipartite.Graph, side bipartite.Side) (*CriticalRSM, error) {
	return newCriticalRSM(g, Config{ProposingSide: side})
}

func newCriticalRSM(g *bipartite.Graph, cfg Config) (*CriticalRSM, error) {
	cfg.Criticality = true
	cfg.CriticalityThreshold = 0
	e, err := NewEngine(g, cfg)
	if err != nil {
		return nil, err
	}
	e.name = NameCriticalRSM
	return &CriticalRSM{Engine: e}, nil
}

// FavouriteNeighbour exposes the tie-break used by the algorithm.
func (*CriticalRSM) FavouriteNeighbour(bk *Bookkeeping, m *matching.Matching) (bipartite.VertexID, bool) {
	return FavouriteNeighbour(bk, m)
}
