package io

import (
	"io"
	"strconv"

	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/errors"
)

// Section directives of the text format.
const (
	DirectivePartitionA       = "@PartitionA"
	DirectivePartitionB       = "@PartitionB"
	DirectivePreferenceListsA = "@PreferenceListsA"
	DirectivePreferenceListsB = "@PreferenceListsB"
	DirectiveEnd              = "@End"
)

// ReadInstance decodes a text instance from r and validates it.
// ReadInstance does not close r.
func ReadInstance(r io.Reader) (*bipartite.Graph, error) {
	toks, err := lex(r)
	if err != nil {
		return nil, err
	}
	p := &parser{
		toks:   toks,
		g:      bipartite.New(),
		listed: make(map[bipartite.VertexID]bool),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	if err := p.g.Validate(); err != nil {
		return nil, err
	}
	return p.g, nil
}

type parser struct {
	toks   []token
	pos    int
	g      *bipartite.Graph
	listed map[bipartite.VertexID]bool
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidFormat, "line %d: "+format, append([]any{t.line}, args...)...)
}

func (p *parser) expect(punct string) (token, error) {
	t := p.next()
	if t.kind != tokPunct || t.text != punct {
		return t, p.errorf(t, "expected %q, found %s", punct, t)
	}
	return t, nil
}

func (p *parser) ident() (token, error) {
	t := p.next()
	if t.kind != tokIdent {
		return t, p.errorf(t, "expected vertex, found %s", t)
	}
	return t, nil
}

func (p *parser) parse() error {
	for {
		t := p.next()
		switch {
		case t.kind == tokEOF:
			return nil
		case t.kind != tokDirective:
			return p.errorf(t, "expected section directive, found %s", t)
		}

		var err error
		switch t.text {
		case DirectivePartitionA:
			err = p.partition(bipartite.SideA)
		case DirectivePartitionB:
			err = p.partition(bipartite.SideB)
		case DirectivePreferenceListsA:
			err = p.lists(bipartite.SideA)
		case DirectivePreferenceListsB:
			err = p.lists(bipartite.SideB)
		default:
			err = p.errorf(t, "unknown section %s", t)
		}
		if err != nil {
			return err
		}
	}
}

// atEnd consumes @End if it is next.
func (p *parser) atEnd() (bool, error) {
	t := p.peek()
	if t.kind == tokEOF {
		return false, p.errorf(t, "missing %s", DirectiveEnd)
	}
	if t.kind != tokDirective {
		return false, nil
	}
	if t.text != DirectiveEnd {
		return false, p.errorf(t, "expected %s, found %s", DirectiveEnd, t)
	}
	p.next()
	return true, nil
}

// partition parses declarations such as "a1 (1), a2 ;" up to @End.
func (p *parser) partition(side bipartite.Side) error {
	for {
		if done, err := p.atEnd(); done || err != nil {
			return err
		}
		for {
			name, err := p.ident()
			if err != nil {
				return err
			}
			critical, err := p.quota()
			if err != nil {
				return err
			}
			if _, err := p.g.AddVertex(name.text, side, critical); err != nil {
				return errors.WithContext(err, "line %d", name.line)
			}
			sep := p.next()
			if sep.kind == tokPunct && sep.text == ";" {
				break
			}
			if sep.kind != tokPunct || sep.text != "," {
				return p.errorf(sep, "expected \",\" or \";\", found %s", sep)
			}
		}
	}
}

// quota parses an optional "(lower)" or "(lower, upper)" and reports
// whether the vertex is critical.
func (p *parser) quota() (bool, error) {
	if t := p.peek(); t.kind != tokPunct || t.text != "(" {
		return false, nil
	}
	p.next()
	lower, err := p.number()
	if err != nil {
		return false, err
	}
	upper := 1
	if t := p.peek(); t.kind == tokPunct && t.text == "," {
		p.next()
		if upper, err = p.number(); err != nil {
			return false, err
		}
	}
	closing, err := p.expect(")")
	if err != nil {
		return false, err
	}
	if upper != 1 {
		return false, p.errorf(closing, "upper quota %d is not supported (one-to-one matching only)", upper)
	}
	if lower > 1 {
		return false, p.errorf(closing, "lower quota %d exceeds upper quota 1", lower)
	}
	return lower == 1, nil
}

func (p *parser) number() (int, error) {
	t := p.next()
	n, err := strconv.Atoi(t.text)
	if t.kind != tokIdent || err != nil || n < 0 {
		return 0, p.errorf(t, "expected quota, found %s", t)
	}
	return n, nil
}

// lists parses entries such as "a1 : b1, {b2, b3} ;" up to @End.
func (p *parser) lists(side bipartite.Side) error {
	for {
		if done, err := p.atEnd(); done || err != nil {
			return err
		}
		owner, err := p.vertex()
		if err != nil {
			return err
		}
		if p.g.Side(owner) != side {
			return p.errorf(p.toks[p.pos-1], "%s is not in partition %s", p.g.Label(owner), side)
		}
		if p.listed[owner] {
			return p.errorf(p.toks[p.pos-1], "duplicate preference list for %s", p.g.Label(owner))
		}
		p.listed[owner] = true
		if _, err := p.expect(":"); err != nil {
			return err
		}
		if err := p.list(p.g.PreferenceList(owner)); err != nil {
			return errors.WithContext(err, "preference list of %s", p.g.Label(owner))
		}
	}
}

// list parses the rank groups of one entry through the closing ";".
func (p *parser) list(l *bipartite.PreferenceList) error {
	if t := p.peek(); t.kind == tokPunct && t.text == ";" {
		p.next()
		return nil
	}
	for rank := 0; ; rank++ {
		if t := p.peek(); t.kind == tokPunct && t.text == "{" {
			p.next()
			for {
				if err := p.member(l, rank); err != nil {
					return err
				}
				sep := p.next()
				if sep.kind == tokPunct && sep.text == "}" {
					break
				}
				if sep.kind != tokPunct || sep.text != "," {
					return p.errorf(sep, "expected \",\" or \"}\", found %s", sep)
				}
			}
		} else if err := p.member(l, rank); err != nil {
			return err
		}

		sep := p.next()
		if sep.kind == tokPunct && sep.text == ";" {
			return nil
		}
		if sep.kind != tokPunct || sep.text != "," {
			return p.errorf(sep, "expected \",\" or \";\", found %s", sep)
		}
	}
}

// member adds one neighbour to the group at rank.
func (p *parser) member(l *bipartite.PreferenceList, rank int) error {
	v, err := p.vertex()
	if err != nil {
		return err
	}
	if err := l.AddToTie(rank, v); err != nil {
		return errors.WithContext(err, "line %d: %s", p.toks[p.pos-1].line, p.g.Label(v))
	}
	return nil
}

// vertex resolves the next identifier to a declared vertex.
func (p *parser) vertex() (bipartite.VertexID, error) {
	t, err := p.ident()
	if err != nil {
		return bipartite.NoVertex, err
	}
	v, ok := p.g.Lookup(t.text)
	if !ok {
		return bipartite.NoVertex, errors.New(errors.ErrCodeUnknownVertex,
			"line %d: undeclared vertex %s", t.line, t.text)
	}
	return v, nil
}
