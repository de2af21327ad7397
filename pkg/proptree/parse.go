// SPDX-License-Identifier: MPL-2.0

package proptree

import (
	"fmt"
	"io"
	"strings"
)

const (
	tokString tokenKind = iota
	tokOpen
	tokClose
	tokEOF
)

type (
	// SyntaxError reports malformed property text.
	SyntaxError struct {
		Filename string
		Line     int
		Message  string
	}

	tokenKind int

	token struct {
		kind tokenKind
		text string
		line int
	}

	lexer struct {
		src  []rune
		pos  int
		line int
	}
)

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Filename, e.Line, e.Message)
}

// Parse reads property text and returns an unnamed root block holding the
// top-level nodes in file order. The filename is only used in error messages.
func Parse(r io.Reader, filename string) (*Property, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return ParseString(string(data), filename)
}

// ParseString is Parse over an in-memory string.
func ParseString(text, filename string) (*Property, error) {
	if filename == "" {
		filename = "<input>"
	}
	lx := &lexer{src: []rune(strings.TrimPrefix(text, "\ufeff")), line: 1}
	root := NewBlock("")
	if err := parseBlock(lx, root, filename, true); err != nil {
		return nil, err
	}
	return root, nil
}

func parseBlock(lx *lexer, parent *Property, filename string, top bool) error {
	for {
		tok, err := lx.next(filename)
		if err != nil {
			return err
		}
		switch tok.kind {
		case tokEOF:
			if !top {
				return &SyntaxError{Filename: filename, Line: tok.line, Message: fmt.Sprintf("unterminated block %q", parent.Name)}
			}
			return nil
		case tokClose:
			if top {
				return &SyntaxError{Filename: filename, Line: tok.line, Message: "unexpected '}'"}
			}
			return nil
		case tokOpen:
			return &SyntaxError{Filename: filename, Line: tok.line, Message: "block without a name"}
		}

		key := tok
		val, err := lx.next(filename)
		if err != nil {
			return err
		}
		switch val.kind {
		case tokString:
			parent.Children = append(parent.Children, NewLeaf(key.text, val.text))
		case tokOpen:
			child := NewBlock(key.text)
			if err := parseBlock(lx, child, filename, false); err != nil {
				return err
			}
			parent.Children = append(parent.Children, child)
		default:
			return &SyntaxError{Filename: filename, Line: key.line, Message: fmt.Sprintf("key %q has no value", key.text)}
		}
	}
}

func (lx *lexer) next(filename string) (token, error) {
	lx.skipSpaceAndComments()
	if lx.pos >= len(lx.src) {
		return token{kind: tokEOF, line: lx.line}, nil
	}

	c := lx.src[lx.pos]
	switch c {
	case '{':
		lx.pos++
		return token{kind: tokOpen, line: lx.line}, nil
	case '}':
		lx.pos++
		return token{kind: tokClose, line: lx.line}, nil
	case '"':
		return lx.quoted(filename)
	}

	start := lx.pos
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if isSpace(c) || c == '{' || c == '}' || c == '"' {
			break
		}
		if c == '/' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '/' {
			break
		}
		lx.pos++
	}
	return token{kind: tokString, text: string(lx.src[start:lx.pos]), line: lx.line}, nil
}

func (lx *lexer) quoted(filename string) (token, error) {
	line := lx.line
	lx.pos++ // opening quote
	var sb strings.Builder
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		lx.pos++
		switch c {
		case '"':
			return token{kind: tokString, text: sb.String(), line: line}, nil
		case '\n':
			lx.line++
			sb.WriteRune(c)
		case '\\':
			if lx.pos >= len(lx.src) {
				sb.WriteRune(c)
				continue
			}
			esc := lx.src[lx.pos]
			lx.pos++
			switch esc {
			case '"', '\\':
				sb.WriteRune(esc)
			default:
				// Any other backslash is literal; values are often Windows paths.
				if esc == '\n' {
					lx.line++
				}
				sb.WriteRune('\\')
				sb.WriteRune(esc)
			}
		default:
			sb.WriteRune(c)
		}
	}
	return token{}, &SyntaxError{Filename: filename, Line: line, Message: "unterminated string"}
}

func (lx *lexer) skipSpaceAndComments() {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == '\n':
			lx.line++
			lx.pos++
		case isSpace(c):
			lx.pos++
		case c == '/' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '/':
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.pos++
			}
		default:
			return
		}
	}
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
