package algorithm

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/errors"
	"github.com/matzehuels/stablematch/pkg/matching"
)

type proposerState uint8

const (
	statePending proposerState = iota
	stateMatched
	stateExhausted
)

// Stats counts engine events for one computation.
type Stats struct {
	Proposals             int
	Rejections            int
	Promotions            int
	Displacements         int
	CriticalDisplacements int
	Exchanges             int
	Exhausted             int
}

// Engine is the generalized proposing algorithm for preference lists
// with ties and critical vertices.
//
// # Algorithm
//
// Proposers wait in a FIFO queue, initially in handle order. A dequeued
// proposer asks [FavouriteNeighbour] for a candidate in its current rank
// group and proposes. The receiver b, currently holding x, decides:
//
//   - b unmatched: accept.
//   - x critical and the displacement budget is spent: reject.
//   - the proposer's level differs from x's: the higher level wins.
//   - otherwise by b's preference: Better accepts, Worse rejects, and
//     Equal accepts only a critical proposer over a non-critical x.
//
// A rejected proposer marks b and asks again. A displaced x marks b and
// re-enters the queue. A proposer without a candidate is promoted once
// per group when it is critical, otherwise moves to its next group, and
// is exhausted when no group is left.
//
// # Critical Exchange
//
// With criticality enabled, every critical vertex left unmatched when the
// queue drains gets one breadth-first search for an alternating path: it
// takes a neighbour, that neighbour's critical partner moves on to one of
// its own neighbours, and so on until a neighbour is unmatched or held by
// a non-critical partner, who is freed. With a zero displacement budget
// matched critical vertices stay matched, so their number only grows and
// is maximum once every search has run. A moved critical vertex whose new
// partner is non-critical climbs to the best neighbour it would block
// with. Freed proposers re-enter the queue and freed receivers invite
// proposers that strictly prefer them to a non-critical partner. The
// queue then resumes.
//
// # Criticality Off
//
// Without criticality all levels stay 0, ties are never broken in favour
// of the proposer and the result is weakly stable. On strict lists it is
// the proposer-optimal Gale-Shapley matching.
//
// The engine is sequential and not safe for concurrent use. The graph is
// only read.
type Engine struct {
	name  string
	g     *bipartite.Graph
	cfg   Config
	log   *log.Logger
	stats Stats

	m                 *matching.Matching
	books             []*Bookkeeping // indexed by VertexID, nil for receivers
	states            []proposerState
	queue             []bipartite.VertexID
	attempted         []bool
	displacedCritical int
}

// NewEngine creates an engine over g.
func NewEngine(g *bipartite.Graph, cfg Config) (*Engine, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graph is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	name := NameStable
	if cfg.Criticality {
		name = NameRelaxed
	}
	return &Engine{name: name, g: g, cfg: cfg, log: cfg.Logger}, nil
}

// Name returns the registry name of the configuration.
func (e *Engine) Name() string { return e.name }

// Config returns the validated configuration.
func (e *Engine) Config() Config { return e.cfg }

// Stats returns the counters of the last computation.
func (e *Engine) Stats() Stats { return e.stats }

// ComputeMatching runs the engine to completion and returns a fresh
// matching. Malformed preference data fails with INCONSISTENT_PREFERENCES
// and no matching.
func (e *Engine) ComputeMatching() (*matching.Matching, error) {
	if err := e.g.Validate(); err != nil {
		return nil, err
	}
	e.init()

	for {
		if err := e.drain(); err != nil {
			return nil, err
		}
		if !e.cfg.Criticality || !e.exchange() {
			break
		}
	}

	if err := e.m.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "engine produced an invalid matching")
	}
	e.log.Debug("matching computed",
		"algorithm", e.name,
		"entries", e.m.Len(),
		"proposals", e.stats.Proposals,
		"exchanges", e.stats.Exchanges)

	m := e.m
	e.m, e.books, e.states, e.queue, e.attempted = nil, nil, nil, nil, nil
	return m, nil
}

func (e *Engine) init() {
	n := e.g.Len()
	e.stats = Stats{}
	e.m = matching.New()
	e.books = make([]*Bookkeeping, n)
	e.states = make([]proposerState, n)
	e.attempted = make([]bool, n)
	e.displacedCritical = 0
	e.queue = e.queue[:0]

	for _, p := range e.g.Partition(e.cfg.ProposingSide) {
		e.books[p] = NewBookkeeping(e.g.PreferenceList(p))
		e.states[p] = statePending
		e.queue = append(e.queue, p)
	}
}

func (e *Engine) isProposer(v bipartite.VertexID) bool {
	return e.g.Side(v) == e.cfg.ProposingSide
}

// drain runs proposals until no proposer is pending.
func (e *Engine) drain() error {
	for len(e.queue) > 0 {
		p := e.queue[0]
		e.queue = e.queue[1:]
		if e.states[p] != statePending {
			continue
		}
		if err := e.run(p); err != nil {
			return err
		}
	}
	return nil
}

// run lets p propose until it is matched or exhausted.
func (e *Engine) run(p bipartite.VertexID) error {
	bk := e.books[p]
	for {
		if !bk.Entered() {
			if !bk.HasNext() {
				e.exhaust(p)
				return nil
			}
			bk.Advance()
		}

		b, ok := FavouriteNeighbour(bk, e.m)
		if !ok {
			switch {
			case e.cfg.Criticality && e.g.IsCritical(p) && bk.Level == 0:
				bk.Promote()
				e.stats.Promotions++
				e.log.Debug("promoted", "proposer", e.g.Label(p), "rank", bk.CurrentRank)
			case bk.HasNext():
				bk.Advance()
			default:
				e.exhaust(p)
				return nil
			}
			continue
		}

		if _, tie, ok := bk.List().Position(b); ok {
			bk.TiePosition = tie
		}
		e.stats.Proposals++
		accepted, err := e.accepts(b, p)
		if err != nil {
			return err
		}
		e.log.Debug("proposal",
			"proposer", e.g.Label(p),
			"receiver", e.g.Label(b),
			"level", bk.Level,
			"accepted", accepted)
		if accepted {
			e.engage(p, b)
			return nil
		}
		e.stats.Rejections++
		bk.Mark(b)
	}
}

// accepts decides whether receiver b takes proposer p.
func (e *Engine) accepts(b, p bipartite.VertexID) (bool, error) {
	x := e.m.Mate(b)
	if x == bipartite.NoVertex {
		return true, nil
	}
	crit := e.cfg.Criticality
	if crit && e.g.IsCritical(x) && e.displacedCritical >= e.cfg.CriticalityThreshold {
		return false, nil
	}
	if lp, lx := e.books[p].Level, e.books[x].Level; lp != lx {
		return lp > lx, nil
	}
	pref, err := e.g.PreferenceList(b).Prefers(p, x)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInconsistentPrefs, err,
			"preference list of %s", e.g.Label(b))
	}
	switch pref {
	case bipartite.Better:
		return true, nil
	case bipartite.Equal:
		return crit && e.g.IsCritical(p) && !e.g.IsCritical(x), nil
	}
	return false, nil
}

// engage matches p with b, sending b's previous partner back to the queue.
func (e *Engine) engage(p, b bipartite.VertexID) {
	if x := e.m.Mate(b); x != bipartite.NoVertex {
		e.m.RemovePartner(x)
		e.m.RemovePartner(b)
		e.states[x] = statePending
		e.books[x].Mark(b)
		e.queue = append(e.queue, x)
		e.stats.Displacements++
		if e.cfg.Criticality && e.g.IsCritical(x) {
			e.displacedCritical++
			e.stats.CriticalDisplacements++
		}
		e.log.Debug("displaced", "vertex", e.g.Label(x), "receiver", e.g.Label(b))
	}
	e.pair(p, b)
	e.states[p] = stateMatched
}

// pair records the symmetric entries for u and v.
func (e *Engine) pair(u, v bipartite.VertexID) {
	ru, tu, _ := e.g.PreferenceList(u).Position(v)
	rv, tv, _ := e.g.PreferenceList(v).Position(u)
	e.m.AddPartner(u, matching.Partner{Vertex: v, Rank: ru}, tu)
	e.m.AddPartner(v, matching.Partner{Vertex: u, Rank: rv}, tv)
}

func (e *Engine) exhaust(p bipartite.VertexID) {
	e.states[p] = stateExhausted
	e.stats.Exhausted++
	e.log.Debug("exhausted", "proposer", e.g.Label(p))
}
