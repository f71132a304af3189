package algorithm

import (
	"testing"

	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/matching"
)

// instance is a test fixture: vertex order, rank groups per label and
// critical labels. Labels starting with "a" are on side A.
type instance struct {
	order    []string
	prefs    map[string][][]string
	critical []string
}

func (in instance) build(t *testing.T) *bipartite.Graph {
	t.Helper()
	g := bipartite.New()
	crit := make(map[string]bool)
	for _, c := range in.critical {
		crit[c] = true
	}
	for _, label := range in.order {
		side := bipartite.SideB
		if label[0] == 'a' {
			side = bipartite.SideA
		}
		if _, err := g.AddVertex(label, side, crit[label]); err != nil {
			t.Fatalf("AddVertex(%s): %v", label, err)
		}
	}
	for _, label := range in.order {
		id, _ := g.Lookup(label)
		l := g.PreferenceList(id)
		for rank, group := range in.prefs[label] {
			for _, n := range group {
				nid, ok := g.Lookup(n)
				if !ok {
					t.Fatalf("%s lists unknown vertex %s", label, n)
				}
				if err := l.AddToTie(rank, nid); err != nil {
					t.Fatalf("AddToTie(%s, %d, %s): %v", label, rank, n, err)
				}
			}
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return g
}

// pairs renders the matching as A label -> B label.
func pairs(g *bipartite.Graph, m *matching.Matching) map[string]string {
	out := make(map[string]string)
	for _, p := range m.Pairs(g) {
		out[g.Label(p.A)] = g.Label(p.B)
	}
	return out
}

func equalPairs(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func strict(labels ...string) [][]string {
	out := make([][]string, len(labels))
	for i, l := range labels {
		out[i] = []string{l}
	}
	return out
}

var galeShapley = instance{
	order: []string{"a1", "a2", "a3", "b1", "b2", "b3"},
	prefs: map[string][][]string{
		"a1": strict("b1", "b2", "b3"),
		"a2": strict("b1", "b3", "b2"),
		"a3": strict("b2", "b1", "b3"),
		"b1": strict("a2", "a1", "a3"),
		"b2": strict("a1", "a3", "a2"),
		"b3": strict("a3", "a2", "a1"),
	},
}

// b3 is critical but every proposer prefers the other receivers.
var criticalReceiver = instance{
	order: []string{"a1", "a2", "b1", "b2", "b3"},
	prefs: map[string][][]string{
		"a1": strict("b1", "b2", "b3"),
		"a2": strict("b1", "b2"),
		"b1": strict("a1", "a2"),
		"b2": strict("a1", "a2"),
		"b3": strict("a1"),
	},
	critical: []string{"b3"},
}

// a2 is critical and competes with a1 for b1.
var criticalProposer = instance{
	order: []string{"a1", "a2", "b1"},
	prefs: map[string][][]string{
		"a1": strict("b1"),
		"a2": strict("b1"),
		"b1": strict("a1", "a2"),
	},
	critical: []string{"a2"},
}
