package algorithm

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/errors"
	"github.com/matzehuels/stablematch/pkg/matching"
)

func compute(t *testing.T, g *bipartite.Graph, name string, cfg Config) (*matching.Matching, Stats) {
	t.Helper()
	alg, err := New(name, g, cfg)
	if err != nil {
		t.Fatalf("New(%q): %v", name, err)
	}
	m, err := alg.ComputeMatching()
	if err != nil {
		t.Fatalf("ComputeMatching: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("matching is not symmetric: %v", err)
	}
	return m, alg.Stats()
}

func TestEngineGaleShapley(t *testing.T) {
	g := galeShapley.build(t)
	want := map[string]string{"a1": "b2", "a2": "b1", "a3": "b3"}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			m, stats := compute(t, g, name, Config{})
			if got := pairs(g, m); !equalPairs(got, want) {
				t.Errorf("pairs = %v, want %v", got, want)
			}
			if !matching.IsStable(g, m) {
				t.Error("result is not stable")
			}
			if stats.Proposals != 6 || stats.Rejections != 1 || stats.Displacements != 2 {
				t.Errorf("stats = %+v, want 6 proposals, 1 rejection, 2 displacements", stats)
			}
		})
	}
}

func TestEngineProposingSideB(t *testing.T) {
	g := galeShapley.build(t)
	m, stats := compute(t, g, NameStable, Config{ProposingSide: bipartite.SideB})

	want := map[string]string{"a1": "b2", "a2": "b1", "a3": "b3"}
	if got := pairs(g, m); !equalPairs(got, want) {
		t.Errorf("pairs = %v, want %v", got, want)
	}
	if stats.Proposals != 3 || stats.Rejections != 0 {
		t.Errorf("stats = %+v, want 3 proposals and no rejections", stats)
	}
}

func TestEngineMatchesCriticalReceiver(t *testing.T) {
	g := criticalReceiver.build(t)

	t.Run("stable", func(t *testing.T) {
		m, _ := compute(t, g, NameStable, Config{})
		want := map[string]string{"a1": "b1", "a2": "b2"}
		if got := pairs(g, m); !equalPairs(got, want) {
			t.Errorf("pairs = %v, want %v", got, want)
		}
	})

	t.Run("critical-rsm", func(t *testing.T) {
		m, stats := compute(t, g, NameCriticalRSM, Config{})
		want := map[string]string{"a1": "b3", "a2": "b1"}
		if got := pairs(g, m); !equalPairs(got, want) {
			t.Errorf("pairs = %v, want %v", got, want)
		}
		if stats.Exchanges != 1 {
			t.Errorf("Exchanges = %d, want 1", stats.Exchanges)
		}
		s := matching.Summarize(g, m)
		if s.CriticalMatched != 1 || !s.RelaxedStable || s.Stable {
			t.Errorf("summary = %+v, want critical matched, relaxed-stable, not stable", s)
		}
	})
}

func TestEngineReroutesCriticalPartner(t *testing.T) {
	// a1 can only be matched through b1, which a2 holds unless it moves
	// on to b2. Both orders must cover a1 and a2.
	prefs := map[string][][]string{
		"a1": strict("b1"),
		"a2": strict("b1", "b2"),
		"b1": strict("a2", "a1"),
		"b2": strict("a2"),
	}
	want := map[string]string{"a1": "b1", "a2": "b2"}

	tests := []struct {
		name      string
		order     []string
		exchanges int
	}{
		{"blocked proposer first", []string{"a1", "a2", "b1", "b2"}, 0},
		{"preferred proposer first", []string{"a2", "a1", "b1", "b2"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := instance{order: tt.order, prefs: prefs, critical: []string{"a1", "a2"}}.build(t)
			m, stats := compute(t, g, NameCriticalRSM, Config{})
			if got := pairs(g, m); !equalPairs(got, want) {
				t.Errorf("pairs = %v, want %v", got, want)
			}
			if stats.Exchanges != tt.exchanges {
				t.Errorf("Exchanges = %d, want %d", stats.Exchanges, tt.exchanges)
			}
			s := matching.Summarize(g, m)
			if s.CriticalMatched != 2 || !s.RelaxedStable {
				t.Errorf("summary = %+v, want 2 critical matched and relaxed-stable", s)
			}
		})
	}
}

func TestEnginePromotesCriticalProposer(t *testing.T) {
	g := criticalProposer.build(t)

	m, _ := compute(t, g, NameStable, Config{})
	if got := pairs(g, m); got["a1"] != "b1" {
		t.Errorf("stable pairs = %v, want a1-b1", got)
	}

	m, stats := compute(t, g, NameCriticalRSM, Config{})
	if got := pairs(g, m); !equalPairs(got, map[string]string{"a2": "b1"}) {
		t.Errorf("critical-rsm pairs = %v, want a2-b1", got)
	}
	if stats.Promotions != 1 || stats.Exchanges != 0 {
		t.Errorf("stats = %+v, want 1 promotion and no exchange", stats)
	}
	if !matching.IsRelaxedStable(g, m) {
		t.Error("result is not relaxed-stable")
	}
}

func TestEngineTieFavoursCriticalProposer(t *testing.T) {
	g := instance{
		order: []string{"a1", "a2", "b1"},
		prefs: map[string][][]string{
			"a1": strict("b1"),
			"a2": strict("b1"),
			"b1": {{"a1", "a2"}},
		},
		critical: []string{"a2"},
	}.build(t)

	m, _ := compute(t, g, NameStable, Config{})
	if got := pairs(g, m); got["a1"] != "b1" {
		t.Errorf("stable pairs = %v, want a1-b1 (ties keep the holder)", got)
	}

	m, stats := compute(t, g, NameCriticalRSM, Config{})
	if got := pairs(g, m); got["a2"] != "b1" {
		t.Errorf("critical-rsm pairs = %v, want a2-b1", got)
	}
	if stats.Promotions != 0 {
		t.Errorf("Promotions = %d, want 0", stats.Promotions)
	}
}

func TestEngineCriticalityThreshold(t *testing.T) {
	// Both proposers are critical; b1 prefers a2, who proposes second.
	g := instance{
		order: []string{"a1", "a2", "b1"},
		prefs: map[string][][]string{
			"a1": strict("b1"),
			"a2": strict("b1"),
			"b1": strict("a2", "a1"),
		},
		critical: []string{"a1", "a2"},
	}.build(t)

	tests := []struct {
		name      string
		algorithm string
		threshold int
		want      string
		displaced int
	}{
		{"critical-rsm never displaces", NameCriticalRSM, 5, "a1", 0},
		{"relaxed with zero budget", NameRelaxed, 0, "a1", 0},
		{"relaxed with budget one", NameRelaxed, 1, "a2", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, stats := compute(t, g, tt.algorithm, Config{CriticalityThreshold: tt.threshold})
			b1, _ := g.Lookup("b1")
			if got := g.Label(m.Mate(b1)); got != tt.want {
				t.Errorf("b1 matched to %s, want %s", got, tt.want)
			}
			if stats.CriticalDisplacements != tt.displaced {
				t.Errorf("CriticalDisplacements = %d, want %d", stats.CriticalDisplacements, tt.displaced)
			}
			if !matching.IsRelaxedStable(g, m) {
				t.Error("result is not relaxed-stable")
			}
		})
	}
}

func TestEngineEmptyAndIsolated(t *testing.T) {
	g := instance{
		order: []string{"a1", "a2", "b1"},
		prefs: map[string][][]string{
			"a1": strict("b1"),
			"b1": strict("a1"),
		},
		critical: []string{"a2"},
	}.build(t)

	m, stats := compute(t, g, NameCriticalRSM, Config{})
	if got := pairs(g, m); !equalPairs(got, map[string]string{"a1": "b1"}) {
		t.Errorf("pairs = %v, want a1-b1", got)
	}
	if stats.Exhausted != 1 {
		t.Errorf("Exhausted = %d, want 1 (isolated a2)", stats.Exhausted)
	}

	m, _ = compute(t, bipartite.New(), NameCriticalRSM, Config{})
	if m.Len() != 0 {
		t.Errorf("empty graph produced %d entries", m.Len())
	}
}

func TestEngineRejectsInconsistentPreferences(t *testing.T) {
	g := bipartite.New()
	a1, _ := g.AddVertex("a1", bipartite.SideA, false)
	b1, _ := g.AddVertex("b1", bipartite.SideB, false)
	if err := g.PreferenceList(a1).Append(b1); err != nil {
		t.Fatal(err)
	}

	alg, err := New(NameCriticalRSM, g, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m, err := alg.ComputeMatching()
	if m != nil {
		t.Error("matching returned alongside an error")
	}
	if !errors.Is(err, errors.ErrCodeInconsistentPrefs) {
		t.Fatalf("error = %v, want INCONSISTENT_PREFERENCES", err)
	}
	if msg := err.Error(); !strings.Contains(msg, "b1") {
		t.Errorf("error %q does not name the vertex", msg)
	}
}

func TestEngineIsRepeatable(t *testing.T) {
	g := criticalReceiver.build(t)
	alg, err := NewCriticalRSM(g, bipartite.SideA)
	if err != nil {
		t.Fatal(err)
	}
	first, err := alg.ComputeMatching()
	if err != nil {
		t.Fatal(err)
	}
	second, err := alg.ComputeMatching()
	if err != nil {
		t.Fatal(err)
	}
	if !equalPairs(pairs(g, first), pairs(g, second)) {
		t.Errorf("runs differ: %v vs %v", pairs(g, first), pairs(g, second))
	}
	if first == second {
		t.Error("runs share a matching")
	}
}

func TestEngineDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	g := criticalReceiver.build(t)
	compute(t, g, NameCriticalRSM, Config{Logger: logger})

	out := buf.String()
	for _, want := range []string{"proposal", "exchange", "matching computed"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug log missing %q", want)
		}
	}
}

// randomInstance builds a graph with nA+nB vertices, random edges and
// random ties. Vertex i is critical when critical(i) holds.
func randomInstance(t *testing.T, r *rand.Rand, nA, nB int, critical func(i int) bool) *bipartite.Graph {
	t.Helper()
	g := bipartite.New()
	var as, bs []bipartite.VertexID
	for i := range nA + nB {
		side, label := bipartite.SideA, "a"
		if i >= nA {
			side, label = bipartite.SideB, "b"
		}
		id, err := g.AddVertex(label+string(rune('0'+i)), side, critical(i))
		if err != nil {
			t.Fatal(err)
		}
		if side == bipartite.SideA {
			as = append(as, id)
		} else {
			bs = append(bs, id)
		}
	}

	adj := make(map[bipartite.VertexID][]bipartite.VertexID)
	for _, a := range as {
		for _, b := range bs {
			if r.Float64() < 0.7 {
				adj[a] = append(adj[a], b)
				adj[b] = append(adj[b], a)
			}
		}
	}
	for _, v := range append(as, bs...) {
		ns := adj[v]
		r.Shuffle(len(ns), func(i, j int) { ns[i], ns[j] = ns[j], ns[i] })
		l := g.PreferenceList(v)
		rank := -1
		for i, n := range ns {
			if i == 0 || r.IntN(3) != 0 {
				rank++
			}
			if err := l.AddToTie(rank, n); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
	return g
}

// maxCriticalMatched enumerates every matching of g and returns the largest
// number of critical vertices any of them covers.
func maxCriticalMatched(g *bipartite.Graph) int {
	as := g.Partition(bipartite.SideA)
	used := make(map[bipartite.VertexID]bool)
	best := 0
	var walk func(i, covered int)
	walk = func(i, covered int) {
		if i == len(as) {
			best = max(best, covered)
			return
		}
		walk(i+1, covered)
		a := as[i]
		for _, b := range g.PreferenceList(a).Neighbours() {
			if used[b] {
				continue
			}
			used[b] = true
			n := covered
			if g.IsCritical(a) {
				n++
			}
			if g.IsCritical(b) {
				n++
			}
			walk(i+1, n)
			used[b] = false
		}
	}
	walk(0, 0)
	return best
}

func TestEngineRandomInstances(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := range 200 {
		nA, nB := 1+r.IntN(4), 1+r.IntN(4)
		critical := r.IntN(nA + nB)
		g := randomInstance(t, r, nA, nB, func(j int) bool { return j == critical })

		m, _ := compute(t, g, NameStable, Config{})
		if bps := matching.BlockingPairs(g, m); len(bps) != 0 {
			t.Fatalf("instance %d: stable result has blocking pairs %v", i, bps)
		}

		m, _ = compute(t, g, NameCriticalRSM, Config{})
		if !matching.IsRelaxedStable(g, m) {
			t.Fatalf("instance %d: critical-rsm result is not relaxed-stable", i)
		}
		for _, v := range g.Vertices() {
			if v.Critical && g.PreferenceList(v.ID).Size() > 0 && !m.IsMatched(v.ID) {
				t.Fatalf("instance %d: critical %s with neighbours left unmatched", i, v.Label)
			}
		}
	}
}

func TestEngineRandomCriticalSets(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for i := range 300 {
		nA, nB := 1+r.IntN(4), 1+r.IntN(4)
		g := randomInstance(t, r, nA, nB, func(int) bool { return r.IntN(5) < 2 })
		want := maxCriticalMatched(g)

		for _, side := range []bipartite.Side{bipartite.SideA, bipartite.SideB} {
			m, _ := compute(t, g, NameCriticalRSM, Config{ProposingSide: side})
			if got := matching.CriticalMatched(g, m); got != want {
				t.Fatalf("instance %d, %s proposing: %d critical vertices matched, want %d (pairs %v)",
					i, side, got, want, pairs(g, m))
			}
			if !matching.IsRelaxedStable(g, m) {
				t.Fatalf("instance %d, %s proposing: result is not relaxed-stable (pairs %v)",
					i, side, pairs(g, m))
			}
		}
	}
}
