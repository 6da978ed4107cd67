// Package quote implements the quote-normalization core: splitting a
// string literal into prefix, delimiter and body, deciding whether a
// delimiter change is safe, and rebuilding the surrounding source.
package quote

import (
	"fmt"
	"strings"
)

// Delim identifies the delimiter style of a string literal.
type Delim int

const (
	Single Delim = iota
	Double
	TripleSingle
	TripleDouble
)

// String returns the delimiter's source text.
func (d Delim) String() string {
	switch d {
	case Single:
		return "'"
	case Double:
		return `"`
	case TripleSingle:
		return "'''"
	case TripleDouble:
		return `"""`
	default:
		return "?"
	}
}

// Quote returns the quote character the delimiter is built from.
func (d Delim) Quote() byte {
	if d == Single || d == TripleSingle {
		return '\''
	}
	return '"'
}

// Triple reports whether the delimiter is triple-quoted.
func (d Delim) Triple() bool {
	return d == TripleSingle || d == TripleDouble
}

// Literal is one string literal split into its three parts. The prefix
// keeps its original case, and the body is the raw text strictly between
// the delimiters, escapes included.
type Literal struct {
	Prefix string
	Delim  Delim
	Body   string
}

// IsRaw reports whether the prefix marks the literal as raw.
func (l Literal) IsRaw() bool {
	return strings.ContainsAny(l.Prefix, "rR")
}

// Text reassembles the literal's source text.
func (l Literal) Text() string {
	d := l.Delim.String()
	return l.Prefix + d + l.Body + d
}

// MalformedError reports literal text that does not have the shape
// prefix, delimiter, body, matching delimiter. The tokenizer never
// produces such text; the classifier still refuses to guess.
type MalformedError struct {
	Raw string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed string literal %q", e.Raw)
}

// Parse splits the raw source text of one string literal into a Literal.
func Parse(raw string) (Literal, error) {
	i := 0
	for i < len(raw) && isPrefixLetter(raw[i]) {
		i++
	}
	rest := raw[i:]
	if rest == "" || (rest[0] != '\'' && rest[0] != '"') {
		return Literal{}, &MalformedError{Raw: raw}
	}

	var d Delim
	switch {
	case strings.HasPrefix(rest, "'''"):
		d = TripleSingle
	case strings.HasPrefix(rest, `"""`):
		d = TripleDouble
	case rest[0] == '\'':
		d = Single
	default:
		d = Double
	}

	delim := d.String()
	if len(rest) < 2*len(delim) || !strings.HasSuffix(rest, delim) {
		return Literal{}, &MalformedError{Raw: raw}
	}
	return Literal{
		Prefix: raw[:i],
		Delim:  d,
		Body:   rest[len(delim) : len(rest)-len(delim)],
	}, nil
}

func isPrefixLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
