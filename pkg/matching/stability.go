package matching

import (
	"github.com/matzehuels/stablematch/pkg/bipartite"
)

// BlockingPair is an edge (A, B) not in the matching where both endpoints
// strictly prefer each other to their current situation.
type BlockingPair struct {
	A bipartite.VertexID
	B bipartite.VertexID
	// Tolerated is set when the pair is excused under relaxed stability:
	// A's partner or B's partner is critical.
	Tolerated bool
}

// Summary describes a matching relative to its graph.
type Summary struct {
	Pairs           int
	CriticalMatched int
	CriticalTotal   int
	BlockingPairs   int
	Tolerated       int // Blocking pairs excused by a critical partner
	Stable          bool
	RelaxedStable   bool
}

// prefersOver reports whether v strictly prefers u to its current partner.
// Unmatched vertices prefer any neighbour.
func prefersOver(g *bipartite.Graph, m *Matching, v, u bipartite.VertexID) bool {
	mate := m.Mate(v)
	if mate == bipartite.NoVertex {
		return true
	}
	p, err := g.PreferenceList(v).Prefers(u, mate)
	return err == nil && p == bipartite.Better
}

// BlockingPairs returns every blocking pair, ordered by A then by A's
// preference order. The graph must be validated.
func BlockingPairs(g *bipartite.Graph, m *Matching) []BlockingPair {
	var out []BlockingPair
	for _, a := range g.Partition(bipartite.SideA) {
		for _, b := range g.PreferenceList(a).Neighbours() {
			if m.Mate(a) == b {
				continue
			}
			if !prefersOver(g, m, a, b) || !prefersOver(g, m, b, a) {
				continue
			}
			out = append(out, BlockingPair{
				A:         a,
				B:         b,
				Tolerated: g.IsCritical(m.Mate(a)) || g.IsCritical(m.Mate(b)),
			})
		}
	}
	return out
}

// IsStable reports whether m has no blocking pair (weak stability when
// lists contain ties).
func IsStable(g *bipartite.Graph, m *Matching) bool {
	return len(BlockingPairs(g, m)) == 0
}

// IsRelaxedStable reports whether every blocking pair (a, b) has a matched
// to a critical partner or b matched to a critical partner.
func IsRelaxedStable(g *bipartite.Graph, m *Matching) bool {
	for _, bp := range BlockingPairs(g, m) {
		if !bp.Tolerated {
			return false
		}
	}
	return true
}

// CriticalMatched counts matched critical vertices on both sides.
func CriticalMatched(g *bipartite.Graph, m *Matching) int {
	n := 0
	for _, v := range m.Vertices() {
		if g.IsCritical(v) {
			n++
		}
	}
	return n
}

// Summarize computes a Summary for m.
func Summarize(g *bipartite.Graph, m *Matching) Summary {
	s := Summary{
		Pairs:           len(m.Pairs(g)),
		CriticalMatched: CriticalMatched(g, m),
		CriticalTotal:   g.CriticalCount(bipartite.SideA) + g.CriticalCount(bipartite.SideB),
	}
	for _, bp := range BlockingPairs(g, m) {
		s.BlockingPairs++
		if bp.Tolerated {
			s.Tolerated++
		}
	}
	s.Stable = s.BlockingPairs == 0
	s.RelaxedStable = s.Tolerated == s.BlockingPairs
	return s
}
