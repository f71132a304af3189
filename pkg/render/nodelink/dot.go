package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/matching"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the critical flag to vertex labels and both endpoints'
	// ranks to edge labels. When false, only vertex labels are shown.
	Detailed bool
}

// ToDOT converts an instance, and optionally a matching over it, to
// Graphviz DOT. Side A is drawn in the left column and side B in the
// right. Matched edges are bold, other edges thin and grey. Critical
// vertices get a double border. m may be nil.
func ToDOT(g *bipartite.Graph, m *matching.Matching, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=grey70];\n")
	buf.WriteString("  ranksep=2.0;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, side := range []bipartite.Side{bipartite.SideA, bipartite.SideB} {
		ids := g.Partition(side)
		if len(ids) == 0 {
			continue
		}
		quoted := make([]string, len(ids))
		for i, id := range ids {
			quoted[i] = strconv.Quote(g.Label(id))
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(quoted, "; "))
	}
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		fmt.Fprintf(&buf, "  %q [%s];\n", v.Label, strings.Join(fmtAttrs(v, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, a := range g.Partition(bipartite.SideA) {
		for _, b := range g.PreferenceList(a).Neighbours() {
			attrs := edgeAttrs(g, m, a, b, opts.Detailed)
			if len(attrs) == 0 {
				fmt.Fprintf(&buf, "  %q -- %q;\n", g.Label(a), g.Label(b))
				continue
			}
			fmt.Fprintf(&buf, "  %q -- %q [%s];\n", g.Label(a), g.Label(b), strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(v bipartite.Vertex, detailed bool) []string {
	label := v.Label
	if detailed && v.Critical {
		label += "\ncritical"
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if v.Critical {
		attrs = append(attrs, "peripheries=2", "fillcolor=lightyellow")
	}
	return attrs
}

func edgeAttrs(g *bipartite.Graph, m *matching.Matching, a, b bipartite.VertexID, detailed bool) []string {
	var attrs []string
	if m != nil && m.Mate(a) == b {
		attrs = append(attrs, "color=black", "penwidth=3")
	}
	if detailed {
		ra, _ := g.PreferenceList(a).Rank(b)
		rb, _ := g.PreferenceList(b).Rank(a)
		attrs = append(attrs, fmt.Sprintf("taillabel=%q", strconv.Itoa(ra+1)), fmt.Sprintf("headlabel=%q", strconv.Itoa(rb+1)))
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG using the embedded Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the drawing scales from its
// viewBox instead of Graphviz's point-based width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
