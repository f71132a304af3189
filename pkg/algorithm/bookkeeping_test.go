package algorithm

import (
	"testing"

	"github.com/matzehuels/stablematch/pkg/bipartite"
)

const (
	b1 bipartite.VertexID = iota + 1
	b2
	b3
	b4
	dummy bipartite.VertexID = 99
)

// tiedList returns [b1 | b2, b3, b4 tied].
func tiedList(t *testing.T) *bipartite.PreferenceList {
	t.Helper()
	l := bipartite.NewPreferenceList()
	if err := l.Append(b1); err != nil {
		t.Fatal(err)
	}
	for _, v := range []bipartite.VertexID{b2, b3, b4} {
		if err := l.AddToTie(1, v); err != nil {
			t.Fatal(err)
		}
	}
	return l
}

func TestBookkeepingAdvance(t *testing.T) {
	l := tiedList(t)
	bk := NewBookkeeping(l)

	if bk.Entered() {
		t.Fatal("new bookkeeping has entered a group")
	}
	if bk.CurrentRank != NoRank || bk.NextRank != 0 {
		t.Fatalf("ranks = (%d, %d), want (%d, 0)", bk.CurrentRank, bk.NextRank, NoRank)
	}
	if got := bk.Group(); len(got) != 1 || got[0] != b1 {
		t.Errorf("Group() before entering = %v, want [b1]", got)
	}

	bk.Advance()
	bk.Mark(b1)
	if !bk.IsMarked(b1) {
		t.Error("b1 not marked")
	}
	if !bk.HasNext() {
		t.Fatal("HasNext() = false with a second group")
	}

	bk.Advance()
	if bk.CurrentRank != 1 || bk.NextRank != 2 {
		t.Fatalf("ranks = (%d, %d), want (1, 2)", bk.CurrentRank, bk.NextRank)
	}
	if bk.CurrentRank > bk.NextRank {
		t.Error("CurrentRank > NextRank")
	}
	if bk.IsMarked(b1) {
		t.Error("marks survived Advance")
	}
	if got := len(bk.Group()); got != 3 {
		t.Errorf("len(Group()) = %d, want 3", got)
	}
	if bk.HasNext() {
		t.Error("HasNext() = true at the last group")
	}
}

func TestBookkeepingMarkOutsideGroup(t *testing.T) {
	bk := NewBookkeepingAt(tiedList(t), 1)

	bk.Mark(b1)    // rank 0, not in the current group
	bk.Mark(dummy) // not listed at all
	if bk.IsMarked(b1) || bk.IsMarked(dummy) {
		t.Error("vertex outside the current group was marked")
	}
}

func TestBookkeepingLevels(t *testing.T) {
	bk := NewBookkeepingAt(tiedList(t), 1)
	bk.Mark(b3)
	bk.Promote()
	bk.Mark(b4)

	tests := []struct {
		v         bipartite.VertexID
		wantLevel int
		wantOK    bool
	}{
		{b2, 0, false},
		{b3, 0, true},
		{b4, 1, true},
	}
	for _, tt := range tests {
		level, ok := bk.MarkedAtLevel(tt.v)
		if ok != tt.wantOK || level != tt.wantLevel {
			t.Errorf("MarkedAtLevel(%d) = (%d, %v), want (%d, %v)", tt.v, level, ok, tt.wantLevel, tt.wantOK)
		}
	}
	if bk.Level != 1 {
		t.Errorf("Level = %d, want 1", bk.Level)
	}
}

func TestBookkeepingReset(t *testing.T) {
	bk := NewBookkeepingAt(tiedList(t), 1)
	bk.Mark(b2)
	bk.Promote()
	bk.TiePosition = 2

	bk.Reset()
	if bk.Entered() || bk.NextRank != 0 || bk.Level != 0 || bk.TiePosition != 0 {
		t.Errorf("Reset left %+v", bk)
	}
	if bk.IsMarked(b2) {
		t.Error("marks survived Reset")
	}
}

func TestBookkeepingEmptyList(t *testing.T) {
	bk := NewBookkeeping(bipartite.NewPreferenceList())
	if bk.HasNext() {
		t.Error("HasNext() = true on an empty list")
	}
	if bk.Group() != nil {
		t.Error("Group() != nil on an empty list")
	}
}
