// Package bipartite provides the bipartite preference graph consumed by the
// matching engine.
//
// # Overview
//
// A [Graph] is a vertex arena split into two sides, [SideA] and [SideB].
// Vertices are addressed by dense [VertexID] handles; preference lists,
// engine bookkeeping and matchings all store handles rather than
// references, so nothing in the system owns another vertex.
//
// Every vertex carries a [PreferenceList]: an ordered sequence of rank
// groups, each group a set of equally preferred neighbours on the other
// side. Group order is strict preference, ties exist only inside a group:
//
//	g := bipartite.New()
//	a1, _ := g.AddVertex("a1", bipartite.SideA, false)
//	b1, _ := g.AddVertex("b1", bipartite.SideB, false)
//	b2, _ := g.AddVertex("b2", bipartite.SideB, true)
//	b3, _ := g.AddVertex("b3", bipartite.SideB, false)
//
//	l := g.PreferenceList(a1)
//	l.Append(b1)       // rank 0: b1
//	l.AddToTie(1, b2)  // rank 1: b2
//	l.AddToTie(1, b3)  // rank 1: b2, b3 tied
//
//	p, _ := l.Prefers(b1, b3) // Better
//
// # Criticality
//
// A vertex may be marked critical at creation. Criticality never changes a
// vertex's own preference order; it only changes which blocking pairs a
// relaxed-stable matching tolerates.
//
// # Validation
//
// Lists are built incrementally by a reader and then frozen. Call
// [Graph.Validate] before handing the graph to the engine: it rejects empty
// rank groups, neighbours on the wrong side, and asymmetric edges, all as
// INCONSISTENT_PREFERENCES errors naming the offending vertex and rank.
//
// # Concurrency
//
// Graph instances are not safe for concurrent mutation. Once validated, a
// graph is read-only and may be shared by concurrent computations.
package bipartite
