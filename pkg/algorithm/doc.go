// Package algorithm implements the proposal engine that computes stable
// and critical relaxed-stable matchings on a [bipartite.Graph].
//
// # Overview
//
// One side proposes, the other receives. Each proposer walks its
// preference list rank group by rank group, tracked by a [Bookkeeping].
// Inside a group, [FavouriteNeighbour] picks who to approach: unmatched
// neighbours first, then neighbours the proposer is returning to after a
// promotion, then the remaining matched ones. The [Engine] applies the
// acceptance rules and keeps the [matching.Matching] symmetric.
//
// # Algorithms
//
// Three configurations are registered (see [New]):
//
//   - "stable": criticality ignored; weakly stable, Gale-Shapley on strict lists.
//   - "relaxed": criticality on with a configurable displacement budget.
//   - "critical-rsm": criticality on, budget 0 ([CriticalRSM]).
//
// Usage:
//
//	alg, err := algorithm.New("critical-rsm", g, algorithm.Config{
//	    ProposingSide: bipartite.SideA,
//	})
//	if err != nil {
//	    return err
//	}
//	m, err := alg.ComputeMatching()
//
// # Errors
//
// Malformed preference data surfaces as INCONSISTENT_PREFERENCES before
// any proposal is made. Rejections and exhausted proposers are ordinary
// control flow and never produce errors.
package algorithm
