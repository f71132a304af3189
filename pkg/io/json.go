package io

import (
	"encoding/json"
	"io"
	"slices"

	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/errors"
)

type instance struct {
	Vertices    []vertex              `json:"vertices"`
	Preferences map[string][][]string `json:"preferences"`
}

type vertex struct {
	ID       string `json:"id"`
	Side     string `json:"side"`
	Critical bool   `json:"critical,omitempty"`
}

// ReadJSON decodes a JSON instance from r and validates it.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*bipartite.Graph, error) {
	var data instance
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}

	g := bipartite.New()
	for _, v := range data.Vertices {
		side, err := bipartite.ParseSide(v.Side)
		if err != nil {
			return nil, errors.WithContext(err, "vertex %s", v.ID)
		}
		if _, err := g.AddVertex(v.ID, side, v.Critical); err != nil {
			return nil, err
		}
	}

	owners := make([]string, 0, len(data.Preferences))
	for label := range data.Preferences {
		owners = append(owners, label)
	}
	slices.Sort(owners)
	for _, label := range owners {
		if _, ok := g.Lookup(label); !ok {
			return nil, errors.New(errors.ErrCodeUnknownVertex, "preferences for undeclared vertex %s", label)
		}
	}

	for _, v := range g.Vertices() {
		groups := data.Preferences[v.Label]
		l := g.PreferenceList(v.ID)
		for rank, group := range groups {
			if len(group) == 0 {
				return nil, errors.New(errors.ErrCodeInconsistentPrefs,
					"preference list of %s: rank %d is empty", v.Label, rank)
			}
			for _, n := range group {
				id, ok := g.Lookup(n)
				if !ok {
					return nil, errors.New(errors.ErrCodeUnknownVertex,
						"preference list of %s: undeclared vertex %s at rank %d", v.Label, n, rank)
				}
				if err := l.AddToTie(rank, id); err != nil {
					return nil, errors.WithContext(err, "preference list of %s: %s", v.Label, n)
				}
			}
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// WriteJSON encodes g as an indented JSON instance.
func WriteJSON(g *bipartite.Graph, w io.Writer) error {
	out := instance{
		Vertices:    make([]vertex, 0, g.Len()),
		Preferences: make(map[string][][]string),
	}
	for _, v := range g.Vertices() {
		out.Vertices = append(out.Vertices, vertex{
			ID:       v.Label,
			Side:     sideName(v.Side),
			Critical: v.Critical,
		})
		groups := g.PreferenceList(v.ID).Groups()
		if len(groups) == 0 {
			continue
		}
		labels := make([][]string, len(groups))
		for i, group := range groups {
			labels[i] = make([]string, len(group))
			for j, n := range group {
				labels[i][j] = g.Label(n)
			}
		}
		out.Preferences[v.Label] = labels
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode")
	}
	return nil
}

func sideName(s bipartite.Side) string {
	if s == bipartite.SideA {
		return "a"
	}
	return "b"
}
