// Package matching holds the assignment table produced by the engine and
// the checks used to verify it.
//
// A [Matching] maps each matched vertex to a [Partner] record naming the
// other endpoint, the rank at which the owner lists that endpoint, and the
// position inside that rank group. Entries are kept symmetric by the
// engine: [Matching.AddPartner] sets only one direction, mirroring how
// both sides of a pair learn of the match separately.
//
// [BlockingPairs], [IsStable], [IsRelaxedStable] and [Summarize] evaluate
// a finished matching against its graph.
package matching

import (
	"maps"
	"slices"

	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/errors"
)

// Partner is one direction of a matched pair.
type Partner struct {
	Vertex   bipartite.VertexID // The other endpoint
	Rank     int                // Rank of Vertex in the owner's preference list
	TieIndex int                // Position of Vertex inside that rank group
}

// Pair is an A-B pair in a matching.
type Pair struct {
	A bipartite.VertexID
	B bipartite.VertexID
}

// Matching is the partner table. A vertex is matched iff it has an entry.
//
// The zero value is not usable - use New.
type Matching struct {
	partners map[bipartite.VertexID]Partner
}

// New creates an empty matching.
func New() *Matching {
	return &Matching{partners: make(map[bipartite.VertexID]Partner)}
}

// AddPartner records p as v's partner with the given tie index,
// replacing any previous entry for v. It does not touch p.Vertex's entry.
func (m *Matching) AddPartner(v bipartite.VertexID, p Partner, tieIndex int) {
	p.TieIndex = tieIndex
	m.partners[v] = p
}

// RemovePartner clears v's entry. Unmatched vertices are ignored.
func (m *Matching) RemovePartner(v bipartite.VertexID) {
	delete(m.partners, v)
}

// PartnerOf returns v's partner record.
func (m *Matching) PartnerOf(v bipartite.VertexID) (Partner, bool) {
	p, ok := m.partners[v]
	return p, ok
}

// Mate returns v's partner handle, or NoVertex when unmatched.
func (m *Matching) Mate(v bipartite.VertexID) bipartite.VertexID {
	if p, ok := m.partners[v]; ok {
		return p.Vertex
	}
	return bipartite.NoVertex
}

// IsMatched reports whether v has a partner.
func (m *Matching) IsMatched(v bipartite.VertexID) bool {
	_, ok := m.partners[v]
	return ok
}

// Len returns the number of entries (twice the number of pairs when
// symmetric).
func (m *Matching) Len() int { return len(m.partners) }

// Vertices returns the matched vertices in handle order.
func (m *Matching) Vertices() []bipartite.VertexID {
	return slices.Sorted(maps.Keys(m.partners))
}

// Pairs returns the matched pairs ordered by their A endpoint.
func (m *Matching) Pairs(g *bipartite.Graph) []Pair {
	var out []Pair
	for _, a := range g.Partition(bipartite.SideA) {
		if p, ok := m.partners[a]; ok {
			out = append(out, Pair{A: a, B: p.Vertex})
		}
	}
	return out
}

// Clone returns an independent copy.
func (m *Matching) Clone() *Matching {
	return &Matching{partners: maps.Clone(m.partners)}
}

// Validate checks that every entry's partner points back to it.
func (m *Matching) Validate() error {
	for _, v := range m.Vertices() {
		p := m.partners[v]
		back, ok := m.partners[p.Vertex]
		if !ok {
			return errors.New(errors.ErrCodeInconsistentMatching,
				"vertex %d is matched to %d, which is unmatched", v, p.Vertex)
		}
		if back.Vertex != v {
			return errors.New(errors.ErrCodeInconsistentMatching,
				"vertex %d is matched to %d, which is matched to %d", v, p.Vertex, back.Vertex)
		}
	}
	return nil
}
