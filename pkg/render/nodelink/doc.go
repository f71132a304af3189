// Package nodelink draws preference instances and matchings as node-link
// diagrams.
//
// # Overview
//
// Side A forms the left column and side B the right one. Every edge of
// the instance is drawn; edges of the matching are bold. Critical
// vertices have a double border so unmatched critical vertices stand out.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, m, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// With Detailed set, edge ends are labelled with the rank (1-based) at
// which each endpoint lists the other.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process; no external binaries are needed.
package nodelink
