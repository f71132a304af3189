package algorithm

import (
	"github.com/matzehuels/stablematch/pkg/bipartite"
)

// exchange searches, once per computation for every unmatched critical
// vertex, an alternating path that covers it without uncovering another
// critical vertex. It reports whether any path was applied.
func (e *Engine) exchange() bool {
	progressed := false
	for _, v := range e.g.Vertices() {
		c := v.ID
		if !v.Critical || e.attempted[c] || e.m.IsMatched(c) {
			continue
		}
		e.attempted[c] = true

		path, dropped, ok := e.augmentingPath(c)
		if !ok {
			e.log.Debug("no augmenting path", "critical", e.g.Label(c))
			continue
		}
		e.augment(path, dropped)
		progressed = true
	}
	return progressed
}

// augmentingPath runs a breadth-first search from c over alternating
// paths c, x1, y1, x2, ... where yi is the current mate of xi. Only
// critical mates are walked through. The search stops at the first
// neighbour, in preference order, that is unmatched or held by a
// non-critical vertex, so a single hop is taken whenever one exists.
//
// The returned path lists the vertices on c's side, c first, followed by
// the neighbour each one takes: path[2i] takes path[2i+1]. dropped is the
// non-critical vertex left without a partner, or NoVertex.
func (e *Engine) augmentingPath(c bipartite.VertexID) (path []bipartite.VertexID, dropped bipartite.VertexID, ok bool) {
	parent := make(map[bipartite.VertexID]bipartite.VertexID)
	queue := []bipartite.VertexID{c}
	end := bipartite.NoVertex

search:
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, x := range e.g.PreferenceList(u).Neighbours() {
			if _, seen := parent[x]; seen {
				continue
			}
			parent[x] = u
			y := e.m.Mate(x)
			if y == bipartite.NoVertex || !e.g.IsCritical(y) {
				end, dropped = x, y
				break search
			}
			queue = append(queue, y)
		}
	}
	if end == bipartite.NoVertex {
		return nil, bipartite.NoVertex, false
	}

	for x := end; ; {
		u := parent[x]
		path = append(path, x, u)
		if u == c {
			break
		}
		x = e.m.Mate(u)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, dropped, true
}

// augment flips the path found by augmentingPath. Every vertex on the
// path stays matched; only dropped loses its partner.
func (e *Engine) augment(path []bipartite.VertexID, dropped bipartite.VertexID) {
	for i := 0; i < len(path); i += 2 {
		e.m.RemovePartner(path[i+1])
		e.m.RemovePartner(path[i])
	}
	if dropped != bipartite.NoVertex {
		e.m.RemovePartner(dropped)
	}
	for i := 0; i < len(path); i += 2 {
		e.settle(path[i], path[i+1])
	}
	e.stats.Exchanges++
	e.log.Debug("exchange",
		"critical", e.g.Label(path[0]),
		"partner", e.g.Label(path[1]),
		"hops", len(path)/2,
		"freed", e.g.Label(dropped))

	if dropped != bipartite.NoVertex {
		e.free(dropped)
	}
	for i := 0; i < len(path); i += 2 {
		e.improve(path[i])
	}
}

// improve moves the critical vertex v, while its partner is non-critical,
// to the best neighbour that strictly prefers v to a non-critical partner
// or is unmatched. Both partners left behind are freed. v moves strictly
// up its list, so the loop ends.
func (e *Engine) improve(v bipartite.VertexID) {
	l := e.g.PreferenceList(v)
	for {
		mate := e.m.Mate(v)
		if mate == bipartite.NoVertex || e.g.IsCritical(mate) {
			return
		}
		rank, _ := l.Rank(mate)

		x, held := bipartite.NoVertex, bipartite.NoVertex
	scan:
		for _, group := range l.Groups()[:rank] {
			for _, n := range group {
				h := e.m.Mate(n)
				if h != bipartite.NoVertex {
					if e.g.IsCritical(h) {
						continue
					}
					if pref, err := e.g.PreferenceList(n).Prefers(v, h); err != nil || pref != bipartite.Better {
						continue
					}
				}
				x, held = n, h
				break scan
			}
		}
		if x == bipartite.NoVertex {
			return
		}

		e.m.RemovePartner(mate)
		e.m.RemovePartner(v)
		if held != bipartite.NoVertex {
			e.m.RemovePartner(held)
			e.m.RemovePartner(x)
		}
		e.settle(v, x)
		e.log.Debug("improved", "critical", e.g.Label(v), "partner", e.g.Label(x))
		e.free(mate)
		if held != bipartite.NoVertex {
			e.free(held)
		}
	}
}

// settle pairs u and v outside the proposal loop. The proposer among them
// restarts from the top of its list if it is displaced later.
func (e *Engine) settle(u, v bipartite.VertexID) {
	e.pair(u, v)
	p := u
	if !e.isProposer(p) {
		p = v
	}
	e.books[p].Reset()
	e.states[p] = stateMatched
}

// free handles a vertex that lost its partner outside the proposal loop.
func (e *Engine) free(y bipartite.VertexID) {
	if e.isProposer(y) {
		e.books[y].Reset()
		e.states[y] = statePending
		e.queue = append(e.queue, y)
		return
	}
	e.invite(y)
}

// invite lets the freed receiver r take, in its own preference order, the
// first proposer that is unmatched or strictly prefers r to a non-critical
// partner. The receiver left behind invites in turn. Every step moves a
// proposer strictly up its list, so the cascade ends.
func (e *Engine) invite(r bipartite.VertexID) {
	for r != bipartite.NoVertex {
		next := bipartite.NoVertex
		for _, q := range e.g.PreferenceList(r).Neighbours() {
			old := e.m.Mate(q)
			if old != bipartite.NoVertex {
				if e.g.IsCritical(old) {
					continue
				}
				if pref, err := e.g.PreferenceList(q).Prefers(r, old); err != nil || pref != bipartite.Better {
					continue
				}
				e.m.RemovePartner(old)
				e.m.RemovePartner(q)
			}
			e.settle(q, r)
			e.log.Debug("invited", "receiver", e.g.Label(r), "proposer", e.g.Label(q))
			next = old
			break
		}
		r = next
	}
}
