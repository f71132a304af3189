package io

import (
	"bufio"
	"io"
	"strings"

	"github.com/matzehuels/stablematch/pkg/errors"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokDirective
	tokIdent
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	line int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return "\"" + t.text + "\""
}

const punctuation = ",;:{}()"

// lex splits r into tokens. "#" comments are dropped.
func lex(r io.Reader) ([]token, error) {
	var toks []token
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for i := 0; i < len(text); {
			c := rune(text[i])
			switch {
			case c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f':
				i++
			case strings.ContainsRune(punctuation, c):
				toks = append(toks, token{kind: tokPunct, text: string(c), line: line})
				i++
			case c == '@':
				j := i + 1
				for j < len(text) && isWordByte(text[j]) {
					j++
				}
				if j == i+1 {
					return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: empty directive", line)
				}
				toks = append(toks, token{kind: tokDirective, text: text[i:j], line: line})
				i = j
			default:
				j := i
				for j < len(text) && isIdentByte(text[j]) {
					j++
				}
				if j == i {
					return nil, errors.New(errors.ErrCodeInvalidFormat,
						"line %d: unexpected character %q", line, text[i])
				}
				toks = append(toks, token{kind: tokIdent, text: text[i:j], line: line})
				i = j
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read instance")
	}
	return append(toks, token{kind: tokEOF, line: line}), nil
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isIdentByte(b byte) bool {
	return b > ' ' && b != 0x7f && !strings.ContainsRune(punctuation+"@#", rune(b))
}
