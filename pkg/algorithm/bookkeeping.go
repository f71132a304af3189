package algorithm

import (
	"github.com/matzehuels/stablematch/pkg/bipartite"
)

// NoRank is the CurrentRank of a proposer that has not entered any rank
// group yet.
const NoRank = -1

// Bookkeeping is the mutable proposal state of one proposing vertex.
//
// A proposer works through its preference list one rank group at a time.
// CurrentRank is the group being worked (NoRank before the first group is
// entered) and NextRank the group to enter when the current one is spent,
// so CurrentRank < NextRank once a group has been entered. TiePosition is
// the round-robin cursor inside the group; Level counts promotions inside
// the group.
//
// Marks record which members of the current group the proposer has
// engaged with. They are stored densely by tie position and stamped with
// the level at which they were made.
type Bookkeeping struct {
	CurrentRank int
	NextRank    int
	TiePosition int
	Level       int

	list  *bipartite.PreferenceList
	marks []int // level+1 per tie position, 0 = unmarked
}

// NewBookkeeping returns bookkeeping positioned before the first group of
// list.
func NewBookkeeping(list *bipartite.PreferenceList) *Bookkeeping {
	return &Bookkeeping{CurrentRank: NoRank, list: list}
}

// NewBookkeepingAt returns bookkeeping that has already entered the group
// at rank.
func NewBookkeepingAt(list *bipartite.PreferenceList, rank int) *Bookkeeping {
	bk := &Bookkeeping{CurrentRank: rank, NextRank: rank + 1, list: list}
	bk.marks = make([]int, len(list.GroupAt(rank)))
	return bk
}

// List returns the preference list being worked.
func (bk *Bookkeeping) List() *bipartite.PreferenceList { return bk.list }

// Entered reports whether a rank group has been entered.
func (bk *Bookkeeping) Entered() bool { return bk.CurrentRank != NoRank }

// Group returns the rank group being worked: the current group, or the
// group at NextRank before any group has been entered.
func (bk *Bookkeeping) Group() []bipartite.VertexID {
	if bk.CurrentRank == NoRank {
		return bk.list.GroupAt(bk.NextRank)
	}
	return bk.list.GroupAt(bk.CurrentRank)
}

// tieIndex returns v's position in Group, or -1.
func (bk *Bookkeeping) tieIndex(v bipartite.VertexID) int {
	rank, tie, ok := bk.list.Position(v)
	if !ok {
		return -1
	}
	want := bk.CurrentRank
	if want == NoRank {
		want = bk.NextRank
	}
	if rank != want {
		return -1
	}
	return tie
}

// Mark records engagement with v at the current level. Vertices outside
// the current group are ignored.
func (bk *Bookkeeping) Mark(v bipartite.VertexID) {
	i := bk.tieIndex(v)
	if i < 0 {
		return
	}
	if bk.marks == nil {
		bk.marks = make([]int, len(bk.Group()))
	}
	bk.marks[i] = bk.Level + 1
}

// IsMarked reports whether v was engaged at any level in the current group.
func (bk *Bookkeeping) IsMarked(v bipartite.VertexID) bool {
	_, ok := bk.MarkedAtLevel(v)
	return ok
}

// MarkedAtLevel returns the level at which v was marked.
func (bk *Bookkeeping) MarkedAtLevel(v bipartite.VertexID) (int, bool) {
	return bk.markAt(bk.tieIndex(v))
}

func (bk *Bookkeeping) markAt(i int) (int, bool) {
	if i < 0 || i >= len(bk.marks) || bk.marks[i] == 0 {
		return 0, false
	}
	return bk.marks[i] - 1, true
}

// HasNext reports whether NextRank is within the list.
func (bk *Bookkeeping) HasNext() bool { return bk.NextRank < bk.list.Len() }

// Advance enters the group at NextRank, clearing marks, cursor and level.
func (bk *Bookkeeping) Advance() {
	bk.CurrentRank = bk.NextRank
	bk.NextRank++
	bk.TiePosition = 0
	bk.Level = 0
	bk.marks = make([]int, len(bk.list.GroupAt(bk.CurrentRank)))
}

// Promote raises the level inside the current group. Marks made at lower
// levels stay but no longer block re-engagement.
func (bk *Bookkeeping) Promote() {
	bk.Level++
	bk.TiePosition = 0
}

// Reset moves the proposer back before the first group.
func (bk *Bookkeeping) Reset() {
	bk.CurrentRank = NoRank
	bk.NextRank = 0
	bk.TiePosition = 0
	bk.Level = 0
	bk.marks = nil
}
