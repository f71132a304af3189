package matching

import (
	"testing"

	"github.com/matzehuels/stablematch/pkg/bipartite"
)

// instance builds a graph from label -> rank groups. Labels starting with
// "a" go to side A, others to side B. Labels in critical are critical.
func instance(t *testing.T, prefs map[string][][]string, order []string, critical ...string) *bipartite.Graph {
	t.Helper()
	g := bipartite.New()
	crit := make(map[string]bool)
	for _, c := range critical {
		crit[c] = true
	}
	for _, label := range order {
		side := bipartite.SideB
		if label[0] == 'a' {
			side = bipartite.SideA
		}
		if _, err := g.AddVertex(label, side, crit[label]); err != nil {
			t.Fatalf("AddVertex(%s): %v", label, err)
		}
	}
	for _, label := range order {
		id, _ := g.Lookup(label)
		l := g.PreferenceList(id)
		for rank, group := range prefs[label] {
			for _, n := range group {
				nid, ok := g.Lookup(n)
				if !ok {
					t.Fatalf("unknown neighbour %s", n)
				}
				if err := l.AddToTie(rank, nid); err != nil {
					t.Fatalf("AddToTie: %v", err)
				}
			}
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return g
}

func match(t *testing.T, g *bipartite.Graph, pairs ...[2]string) *Matching {
	t.Helper()
	m := New()
	for _, p := range pairs {
		a, _ := g.Lookup(p[0])
		b, _ := g.Lookup(p[1])
		ra, ta, _ := g.PreferenceList(a).Position(b)
		rb, tb, _ := g.PreferenceList(b).Position(a)
		m.AddPartner(a, Partner{Vertex: b, Rank: ra}, ta)
		m.AddPartner(b, Partner{Vertex: a, Rank: rb}, tb)
	}
	return m
}

func twoByTwo(t *testing.T, critical ...string) *bipartite.Graph {
	return instance(t, map[string][][]string{
		"a1": {{"b1"}, {"b2"}},
		"a2": {{"b1"}, {"b2"}},
		"b1": {{"a1"}, {"a2"}},
		"b2": {{"a1"}, {"a2"}},
	}, []string{"a1", "a2", "b1", "b2"}, critical...)
}

func TestBlockingPairs(t *testing.T) {
	g := twoByTwo(t)

	stable := match(t, g, [2]string{"a1", "b1"}, [2]string{"a2", "b2"})
	if bps := BlockingPairs(g, stable); len(bps) != 0 {
		t.Errorf("BlockingPairs(stable) = %v, want none", bps)
	}
	if !IsStable(g, stable) {
		t.Error("IsStable(stable) = false")
	}

	unstable := match(t, g, [2]string{"a1", "b2"}, [2]string{"a2", "b1"})
	bps := BlockingPairs(g, unstable)
	if len(bps) != 1 {
		t.Fatalf("BlockingPairs(unstable) = %v, want exactly (a1, b1)", bps)
	}
	a1, _ := g.Lookup("a1")
	b1, _ := g.Lookup("b1")
	if bps[0].A != a1 || bps[0].B != b1 || bps[0].Tolerated {
		t.Errorf("blocking pair = %+v, want untolerated (a1, b1)", bps[0])
	}
}

func TestUnmatchedVerticesBlock(t *testing.T) {
	g := twoByTwo(t)
	m := match(t, g, [2]string{"a1", "b1"})

	// a2 and b2 are both unmatched and adjacent.
	if IsStable(g, m) {
		t.Error("IsStable() = true with two unmatched adjacent vertices")
	}
}

func TestTiesDoNotBlock(t *testing.T) {
	g := instance(t, map[string][][]string{
		"a1": {{"b1", "b2"}},
		"a2": {{"b1"}},
		"b1": {{"a1", "a2"}},
		"b2": {{"a1"}},
	}, []string{"a1", "a2", "b1", "b2"})

	// a2 is unmatched and wants b1, b1 is indifferent between a1 and a2.
	m := match(t, g, [2]string{"a1", "b1"})
	for _, bp := range BlockingPairs(g, m) {
		if g.Label(bp.A) == "a2" {
			t.Errorf("tie produced blocking pair %+v", bp)
		}
	}
}

func TestRelaxedStability(t *testing.T) {
	// b2 is critical; a1 is kept with b2 although a1 and b1 prefer each other.
	g := twoByTwo(t, "b2")
	m := match(t, g, [2]string{"a1", "b2"}, [2]string{"a2", "b1"})

	if IsStable(g, m) {
		t.Error("IsStable() = true, want false")
	}
	if !IsRelaxedStable(g, m) {
		t.Error("IsRelaxedStable() = false, want true (a1's partner is critical)")
	}

	s := Summarize(g, m)
	want := Summary{Pairs: 2, CriticalMatched: 1, CriticalTotal: 1, BlockingPairs: 1, Tolerated: 1, Stable: false, RelaxedStable: true}
	if s != want {
		t.Errorf("Summarize() = %+v, want %+v", s, want)
	}
}

func TestCriticalMatched(t *testing.T) {
	g := twoByTwo(t, "a2", "b2")
	m := match(t, g, [2]string{"a2", "b2"})

	if got := CriticalMatched(g, m); got != 2 {
		t.Errorf("CriticalMatched() = %d, want 2", got)
	}
	if got := len(m.Pairs(g)); got != 1 {
		t.Errorf("Pairs() = %d, want 1", got)
	}
}
