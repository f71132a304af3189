// Package pkg provides the core libraries for stablematch.
//
// # Overview
//
// stablematch computes matchings on bipartite preference instances whose
// lists may contain ties and where some vertices are critical: they should
// end up matched whenever the instance allows it. The pkg directory is
// organized into three areas:
//
//  1. Domain: [bipartite], [matching], [algorithm]
//  2. Input and output: [io], [render/nodelink]
//  3. Orchestration: [pipeline], [config], [observability]
//
// # Architecture
//
// The typical data flow:
//
//	instance file (text or JSON)
//	         ↓
//	    [io] package (parse + validate)
//	         ↓
//	    [bipartite] package (vertex arena + preference lists)
//	         ↓
//	    [algorithm] package (proposal engine)
//	         ↓
//	    [matching] package (partner table + stability checks)
//	         ↓
//	    table / DOT / SVG / PNG output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/stablematch/pkg/algorithm"
//	    "github.com/matzehuels/stablematch/pkg/io"
//	    "github.com/matzehuels/stablematch/pkg/matching"
//	)
//
//	g, _ := io.ImportInstance("hospitals.txt")
//	alg, _ := algorithm.New("critical-rsm", g, algorithm.Config{})
//	m, _ := alg.ComputeMatching()
//	s := matching.Summarize(g, m) // s.RelaxedStable == true
//
// # Main Packages
//
// [bipartite] - The preference graph. Vertices live in an arena addressed
// by [bipartite.VertexID]; each owns a [bipartite.PreferenceList] of tied
// rank groups.
//
// [algorithm] - The generalized proposing engine and its registered
// variants: stable, relaxed and critical-rsm.
//
// [matching] - The partner table returned by the engine, plus blocking-pair
// analysis used to verify stability and relaxed stability.
//
// [io] - Text and JSON instance formats and the instance fingerprint.
//
// [render/nodelink] - Two-column Graphviz drawings with matched edges bold
// and critical vertices double-bordered.
//
// [pipeline] - The read -> compute -> render pipeline used by the CLI.
//
// [config] - TOML defaults for the pipeline.
//
// [observability] - Hooks for instrumenting pipeline stages.
//
// # Testing
//
//	go test ./pkg/...                  # All tests
//	go test ./pkg/algorithm/...        # Engine only
//	go test -run RandomInstances ./pkg/algorithm
//
// [bipartite]: https://pkg.go.dev/github.com/matzehuels/stablematch/pkg/bipartite
// [algorithm]: https://pkg.go.dev/github.com/matzehuels/stablematch/pkg/algorithm
// [matching]: https://pkg.go.dev/github.com/matzehuels/stablematch/pkg/matching
// [io]: https://pkg.go.dev/github.com/matzehuels/stablematch/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/stablematch/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stablematch/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/stablematch/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/stablematch/pkg/observability
package pkg
