package bipartite

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/stablematch/pkg/errors"
)

// Side identifies one of the two vertex partitions.
type Side uint8

const (
	// SideA is the first partition (residents, students, men...).
	SideA Side = iota
	// SideB is the second partition (hospitals, projects, women...).
	SideB
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// String returns "A" or "B".
func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// ParseSide parses "a"/"A" or "b"/"B".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a":
		return SideA, nil
	case "b":
		return SideB, nil
	}
	return SideA, errors.New(errors.ErrCodeInvalidInput, "invalid side %q (must be 'a' or 'b')", s)
}

// VertexID is a stable handle into a Graph's vertex arena.
type VertexID int

// NoVertex is the sentinel handle for "no vertex".
const NoVertex VertexID = -1

// Vertex is an immutable vertex record.
type Vertex struct {
	ID       VertexID
	Label    string // Unique display name
	Side     Side
	Critical bool // Must be matched whenever possible
}

// Graph is a bipartite preference graph.
//
// The zero value is not usable - use New.
type Graph struct {
	vertices []Vertex
	prefs    []*PreferenceList
	index    map[string]VertexID
	sides    [2][]VertexID
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]VertexID)}
}

// AddVertex appends a vertex and returns its handle.
// Returns INVALID_INPUT for a malformed label and DUPLICATE_VERTEX if the
// label is already in use on either side.
func (g *Graph) AddVertex(label string, side Side, critical bool) (VertexID, error) {
	if err := errors.ValidateVertexLabel(label); err != nil {
		return NoVertex, err
	}
	if side != SideA && side != SideB {
		return NoVertex, errors.New(errors.ErrCodeInvalidInput, "vertex %s: invalid side %d", label, side)
	}
	if _, exists := g.index[label]; exists {
		return NoVertex, errors.New(errors.ErrCodeDuplicateVertex, "duplicate vertex %s", label)
	}
	id := VertexID(len(g.vertices))
	g.vertices = append(g.vertices, Vertex{ID: id, Label: label, Side: side, Critical: critical})
	g.prefs = append(g.prefs, NewPreferenceList())
	g.index[label] = id
	g.sides[side] = append(g.sides[side], id)
	return id, nil
}

// Len returns the number of vertices.
func (g *Graph) Len() int { return len(g.vertices) }

// Has reports whether id is a valid handle.
func (g *Graph) Has(id VertexID) bool { return id >= 0 && int(id) < len(g.vertices) }

// Vertex returns the vertex record for id.
func (g *Graph) Vertex(id VertexID) (Vertex, bool) {
	if !g.Has(id) {
		return Vertex{ID: NoVertex}, false
	}
	return g.vertices[id], true
}

// Vertices returns all vertex records in handle order.
func (g *Graph) Vertices() []Vertex { return slices.Clone(g.vertices) }

// Lookup returns the handle for label.
func (g *Graph) Lookup(label string) (VertexID, bool) {
	id, ok := g.index[label]
	return id, ok
}

// Label returns the label of id, or a placeholder for unknown handles.
func (g *Graph) Label(id VertexID) string {
	if !g.Has(id) {
		return fmt.Sprintf("<%d>", id)
	}
	return g.vertices[id].Label
}

// Side returns the side of id. Unknown handles report SideA.
func (g *Graph) Side(id VertexID) Side {
	if !g.Has(id) {
		return SideA
	}
	return g.vertices[id].Side
}

// IsCritical reports whether id is marked critical.
func (g *Graph) IsCritical(id VertexID) bool {
	return g.Has(id) && g.vertices[id].Critical
}

// Partition returns the handles on side s in insertion order.
// The returned slice is a copy.
func (g *Graph) Partition(s Side) []VertexID { return slices.Clone(g.sides[s]) }

// PreferenceList returns the list owned by id, or nil for unknown handles.
// Readers use it to build lists; once validated the list must be treated
// as read-only.
func (g *Graph) PreferenceList(id VertexID) *PreferenceList {
	if !g.Has(id) {
		return nil
	}
	return g.prefs[id]
}

// CriticalCount returns the number of critical vertices on side s.
func (g *Graph) CriticalCount(s Side) int {
	n := 0
	for _, id := range g.sides[s] {
		if g.vertices[id].Critical {
			n++
		}
	}
	return n
}

// EdgeCount returns the number of A-B edges, counted from side A.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, id := range g.sides[SideA] {
		n += g.prefs[id].Size()
	}
	return n
}

// Adjacent reports whether u lists v.
func (g *Graph) Adjacent(u, v VertexID) bool {
	l := g.PreferenceList(u)
	return l != nil && l.Contains(v)
}

// Validate checks structural consistency of every preference list:
// no empty rank groups, all neighbours known and on the opposite side,
// and every edge listed by both endpoints.
func (g *Graph) Validate() error {
	for _, v := range g.vertices {
		l := g.prefs[v.ID]
		if err := l.Validate(); err != nil {
			return errors.WithContext(err, "preference list of %s", v.Label)
		}
		for rank, group := range l.groups {
			for _, u := range group {
				if !g.Has(u) {
					return errors.New(errors.ErrCodeInconsistentPrefs,
						"preference list of %s: unknown vertex %d at rank %d", v.Label, u, rank)
				}
				if g.vertices[u].Side == v.Side {
					return errors.New(errors.ErrCodeInconsistentPrefs,
						"preference list of %s: %s at rank %d is on the same side", v.Label, g.vertices[u].Label, rank)
				}
				if !g.prefs[u].Contains(v.ID) {
					return errors.New(errors.ErrCodeInconsistentPrefs,
						"preference list of %s: %s at rank %d does not list %s", v.Label, g.vertices[u].Label, rank, v.Label)
				}
			}
		}
	}
	return nil
}
