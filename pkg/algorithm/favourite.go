package algorithm

import (
	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/matching"
)

// FavouriteNeighbour selects the neighbour the proposer owning bk should
// propose to next, or reports false when the group being worked has no
// candidate left at the proposer's level.
//
// A group member is eligible unless it was marked at the current level.
// A plain [Bookkeeping.Mark] therefore excludes the neighbour until the
// proposer is promoted; after [Bookkeeping.Promote] the mark is from an
// earlier level and the neighbour becomes eligible again.
// Members are scanned in group order starting at bk.TiePosition, and the
// first hit of the following passes wins:
//
//  1. an eligible unmatched member;
//  2. an eligible matched member marked at an earlier level, which the
//     proposer is returning to after a promotion;
//  3. an unmarked matched member.
//
// Once every member is marked at the current level the result is
// (NoVertex, false) and the caller must promote, advance or give up.
func FavouriteNeighbour(bk *Bookkeeping, m *matching.Matching) (bipartite.VertexID, bool) {
	group := bk.Group()
	n := len(group)
	if n == 0 {
		return bipartite.NoVertex, false
	}
	start := bk.TiePosition
	if start < 0 || start >= n {
		start = 0
	}

	scan := func(accept func(i int, v bipartite.VertexID) bool) (bipartite.VertexID, bool) {
		for k := range n {
			i := (start + k) % n
			if accept(i, group[i]) {
				return group[i], true
			}
		}
		return bipartite.NoVertex, false
	}
	eligible := func(i int) bool {
		level, ok := bk.markAt(i)
		return !ok || level < bk.Level
	}

	if v, ok := scan(func(i int, v bipartite.VertexID) bool {
		return eligible(i) && !m.IsMatched(v)
	}); ok {
		return v, true
	}
	if v, ok := scan(func(i int, v bipartite.VertexID) bool {
		_, marked := bk.markAt(i)
		return marked && eligible(i)
	}); ok {
		return v, true
	}
	return scan(func(i int, v bipartite.VertexID) bool {
		_, marked := bk.markAt(i)
		return !marked
	})
}
