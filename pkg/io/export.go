package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/errors"
)

// WriteInstance encodes g in the text format. The output can be read back
// with [ReadInstance].
func WriteInstance(g *bipartite.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, side := range []bipartite.Side{bipartite.SideA, bipartite.SideB} {
		fmt.Fprintf(bw, "@Partition%s\n", side)
		decls := make([]string, 0, len(g.Partition(side)))
		for _, id := range g.Partition(side) {
			decl := g.Label(id)
			if g.IsCritical(id) {
				decl += " (1)"
			}
			decls = append(decls, decl)
		}
		if len(decls) > 0 {
			fmt.Fprintf(bw, "%s ;\n", strings.Join(decls, ", "))
		}
		fmt.Fprintf(bw, "%s\n\n", DirectiveEnd)
	}

	for i, side := range []bipartite.Side{bipartite.SideA, bipartite.SideB} {
		fmt.Fprintf(bw, "@PreferenceLists%s\n", side)
		for _, id := range g.Partition(side) {
			l := g.PreferenceList(id)
			if l.Len() == 0 {
				continue
			}
			fmt.Fprintf(bw, "%s : %s ;\n", g.Label(id), formatGroups(g, l.Groups()))
		}
		fmt.Fprintln(bw, DirectiveEnd)
		if i == 0 {
			fmt.Fprintln(bw)
		}
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write instance")
	}
	return nil
}

func formatGroups(g *bipartite.Graph, groups [][]bipartite.VertexID) string {
	parts := make([]string, len(groups))
	for i, group := range groups {
		labels := make([]string, len(group))
		for j, v := range group {
			labels[j] = g.Label(v)
		}
		if len(labels) == 1 {
			parts[i] = labels[0]
		} else {
			parts[i] = "{" + strings.Join(labels, ", ") + "}"
		}
	}
	return strings.Join(parts, ", ")
}

// ExportInstance writes g to path, choosing the format from the extension
// as [ImportInstance] does.
func ExportInstance(g *bipartite.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer f.Close()

	if DetectFormat(path) == FormatJSON {
		return WriteJSON(g, f)
	}
	return WriteInstance(g, f)
}
