package bipartite

import (
	"slices"

	"github.com/matzehuels/stablematch/pkg/errors"
)

// Preference is the outcome of comparing two neighbours in one vertex's
// preference list.
type Preference int8

const (
	// Worse means the first neighbour sits in a later rank group.
	Worse Preference = -1
	// Equal means both neighbours share a rank group.
	Equal Preference = 0
	// Better means the first neighbour sits in an earlier rank group.
	Better Preference = 1
)

// String returns "better", "equal" or "worse".
func (p Preference) String() string {
	switch p {
	case Better:
		return "better"
	case Equal:
		return "equal"
	case Worse:
		return "worse"
	}
	return "unknown"
}

// Invert returns the preference seen from the other operand's side.
func (p Preference) Invert() Preference { return -p }

// position locates a neighbour inside a list.
type position struct {
	rank int
	tie  int
}

// PreferenceList is an ordered sequence of rank groups. Each neighbour
// appears exactly once across all groups.
//
// The zero value is an empty, usable list.
type PreferenceList struct {
	groups [][]VertexID
	index  map[VertexID]position
	size   int
}

// NewPreferenceList returns an empty list.
func NewPreferenceList() *PreferenceList {
	return &PreferenceList{index: make(map[VertexID]position)}
}

// Append adds a new trailing rank group containing only v.
// Returns DUPLICATE_NEIGHBOUR if v is already listed.
func (l *PreferenceList) Append(v VertexID) error {
	return l.AddToTie(len(l.groups), v)
}

// AddToTie inserts v into the rank group at rank. A rank equal to Len opens
// a new trailing group; a smaller rank extends an existing tie.
// Returns INVALID_RANK if rank is negative or skips past Len, and
// DUPLICATE_NEIGHBOUR if v is already listed.
func (l *PreferenceList) AddToTie(rank int, v VertexID) error {
	if rank < 0 || rank > len(l.groups) {
		return errors.New(errors.ErrCodeInvalidRank,
			"rank %d is out of range (next available rank is %d)", rank, len(l.groups))
	}
	if l.index == nil {
		l.index = make(map[VertexID]position)
	}
	if p, ok := l.index[v]; ok {
		return errors.New(errors.ErrCodeDuplicateNeighbour,
			"vertex %d already listed at rank %d", v, p.rank)
	}
	if rank == len(l.groups) {
		l.groups = append(l.groups, nil)
	}
	l.index[v] = position{rank: rank, tie: len(l.groups[rank])}
	l.groups[rank] = append(l.groups[rank], v)
	l.size++
	return nil
}

// Prefers compares x and y: Better if x is ranked strictly above y, Equal
// if they are tied, Worse otherwise.
// Returns UNKNOWN_NEIGHBOUR if either vertex is not listed.
func (l *PreferenceList) Prefers(x, y VertexID) (Preference, error) {
	px, ok := l.index[x]
	if !ok {
		return Equal, errors.New(errors.ErrCodeUnknownNeighbour, "vertex %d is not listed", x)
	}
	py, ok := l.index[y]
	if !ok {
		return Equal, errors.New(errors.ErrCodeUnknownNeighbour, "vertex %d is not listed", y)
	}
	switch {
	case px.rank < py.rank:
		return Better, nil
	case px.rank > py.rank:
		return Worse, nil
	}
	return Equal, nil
}

// GroupAt returns the neighbours tied at rank, or nil past the end.
// The returned slice is a read-only view.
func (l *PreferenceList) GroupAt(rank int) []VertexID {
	if rank < 0 || rank >= len(l.groups) {
		return nil
	}
	return l.groups[rank]
}

// Len returns the number of rank groups.
func (l *PreferenceList) Len() int { return len(l.groups) }

// Size returns the number of listed neighbours.
func (l *PreferenceList) Size() int { return l.size }

// Contains reports whether v is listed.
func (l *PreferenceList) Contains(v VertexID) bool {
	_, ok := l.index[v]
	return ok
}

// Rank returns the rank group index of v.
func (l *PreferenceList) Rank(v VertexID) (int, bool) {
	p, ok := l.index[v]
	return p.rank, ok
}

// Position returns the rank of v and its index inside that rank group.
func (l *PreferenceList) Position(v VertexID) (rank, tie int, ok bool) {
	p, ok := l.index[v]
	return p.rank, p.tie, ok
}

// Neighbours returns every listed neighbour in preference order, ties in
// insertion order.
func (l *PreferenceList) Neighbours() []VertexID {
	out := make([]VertexID, 0, l.size)
	for _, g := range l.groups {
		out = append(out, g...)
	}
	return out
}

// Groups returns a deep copy of the rank groups.
func (l *PreferenceList) Groups() [][]VertexID {
	out := make([][]VertexID, len(l.groups))
	for i, g := range l.groups {
		out[i] = slices.Clone(g)
	}
	return out
}

// Validate checks that no rank group is empty.
func (l *PreferenceList) Validate() error {
	for r, g := range l.groups {
		if len(g) == 0 {
			return errors.New(errors.ErrCodeInconsistentPrefs, "rank %d is empty", r)
		}
	}
	return nil
}
