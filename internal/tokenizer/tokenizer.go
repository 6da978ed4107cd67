// Package tokenizer scans Python source into a flat token stream that
// keeps just enough structure to locate string literals and comments.
// Everything between them is returned as opaque Other runs, so the
// concatenated token texts always reproduce the input byte for byte.
package tokenizer

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a scanned token.
type Kind int

const (
	KindOther Kind = iota
	KindComment
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindOther:
		return "Other"
	case KindComment:
		return "Comment"
	case KindString:
		return "String"
	default:
		return "Unknown"
	}
}

// Token is one contiguous span of source text. Start points at the first
// byte of the span and End one past the last, so consecutive tokens cover
// the input without gaps.
type Token struct {
	Kind  Kind
	Text  string
	Start token.Position
	End   token.Position
}

// SyntaxError reports source that cannot be tokenized, such as an
// unterminated string literal. Pos is the start of the offending token.
type SyntaxError struct {
	Pos token.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// validPrefixes holds every legal string-literal prefix, lowercased.
// A prefix attaches to a quote only when the entire preceding identifier
// is in this set: shelf'x' is a name followed by a plain string.
var validPrefixes = map[string]bool{
	"r": true, "u": true, "f": true, "b": true,
	"rb": true, "br": true, "rf": true, "fr": true,
}

// Scanner walks source text token by token.
type Scanner struct {
	name string
	src  string
	off  int
	line int
	col  int
}

// New returns a Scanner over src. name is used in positions and errors.
func New(name, src string) *Scanner {
	return &Scanner{name: name, src: src, line: 1, col: 1}
}

// Tokenize scans src to completion and returns all tokens in order.
func Tokenize(name, src string) ([]Token, error) {
	s := New(name, src)
	var tokens []Token
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return tokens, nil
		}
		tokens = append(tokens, *tok)
	}
}

// Next returns the next token, or (nil, nil) once the input is exhausted.
func (s *Scanner) Next() (*Token, error) {
	if s.off >= len(s.src) {
		return nil, nil
	}
	start := s.position()
	switch c := s.src[s.off]; {
	case c == '#':
		return s.scanComment(start), nil
	case c == '\'' || c == '"':
		return s.scanString(start, s.off)
	default:
		if r, _ := utf8.DecodeRuneInString(s.src[s.off:]); isIdentStart(r) {
			if end := s.identEnd(s.off); s.isPrefixedString(s.off, end) {
				return s.scanString(start, end)
			}
		}
	}
	return s.scanOther(start), nil
}

// scanOther consumes everything up to the next comment or string literal.
// Identifiers are consumed whole so that a trailing letter of a longer
// name is never mistaken for a string prefix.
func (s *Scanner) scanOther(start token.Position) *Token {
	for s.off < len(s.src) {
		c := s.src[s.off]
		if c == '#' || c == '\'' || c == '"' {
			break
		}
		if r, _ := utf8.DecodeRuneInString(s.src[s.off:]); isIdentStart(r) {
			end := s.identEnd(s.off)
			if s.isPrefixedString(s.off, end) {
				break
			}
			s.advance(end - s.off)
			continue
		}
		s.step()
	}
	return s.token(KindOther, start)
}

// scanComment consumes a # comment up to, but not including, the line end.
func (s *Scanner) scanComment(start token.Position) *Token {
	for s.off < len(s.src) && s.src[s.off] != '\n' {
		s.step()
	}
	return s.token(KindComment, start)
}

// scanString scans a string literal whose opening quote sits at delim;
// the bytes between the current offset and delim form the prefix.
func (s *Scanner) scanString(start token.Position, delim int) (*Token, error) {
	s.advance(delim - s.off)
	q := s.src[s.off]
	if s.off+2 < len(s.src) && s.src[s.off+1] == q && s.src[s.off+2] == q {
		return s.scanTriple(start, q)
	}
	s.advance(1)
	for s.off < len(s.src) {
		switch s.src[s.off] {
		case q:
			s.advance(1)
			return s.token(KindString, start), nil
		case '\\':
			if !s.escape() {
				return nil, &SyntaxError{Pos: start, Msg: "unterminated string literal"}
			}
		case '\n':
			return nil, &SyntaxError{Pos: start, Msg: "unterminated string literal"}
		default:
			s.step()
		}
	}
	return nil, &SyntaxError{Pos: start, Msg: "unterminated string literal"}
}

// scanTriple scans the body of a triple-quoted literal after its opening
// delimiter. Newlines are legal inside; the first run of three closing
// quotes terminates the literal.
func (s *Scanner) scanTriple(start token.Position, q byte) (*Token, error) {
	s.advance(3)
	for s.off < len(s.src) {
		switch s.src[s.off] {
		case q:
			if s.off+2 < len(s.src) && s.src[s.off+1] == q && s.src[s.off+2] == q {
				s.advance(3)
				return s.token(KindString, start), nil
			}
			s.advance(1)
		case '\\':
			if !s.escape() {
				return nil, &SyntaxError{Pos: start, Msg: "unterminated triple-quoted string literal"}
			}
		default:
			s.step()
		}
	}
	return nil, &SyntaxError{Pos: start, Msg: "unterminated triple-quoted string literal"}
}

// escape consumes a backslash together with whatever it quotes, including
// an escaped LF or CRLF line continuation. It reports false when the
// backslash is the last byte of the input. Escapes are honored even in
// raw strings: r'\'' is a complete literal, the backslash only loses its
// meaning at evaluation time, not while scanning.
func (s *Scanner) escape() bool {
	if s.off+1 >= len(s.src) {
		return false
	}
	s.advance(1)
	if s.src[s.off] == '\r' && s.off+1 < len(s.src) && s.src[s.off+1] == '\n' {
		s.advance(1)
	}
	s.step()
	return true
}

// isPrefixedString reports whether the identifier spanning [from, to) is
// a legal string prefix immediately followed by a quote.
func (s *Scanner) isPrefixedString(from, to int) bool {
	return to < len(s.src) &&
		(s.src[to] == '\'' || s.src[to] == '"') &&
		validPrefixes[strings.ToLower(s.src[from:to])]
}

func (s *Scanner) identEnd(i int) int {
	for i < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[i:])
		if !isIdentPart(r) {
			break
		}
		i += size
	}
	return i
}

func (s *Scanner) position() token.Position {
	return token.Position{Filename: s.name, Offset: s.off, Line: s.line, Column: s.col}
}

func (s *Scanner) token(kind Kind, start token.Position) *Token {
	return &Token{Kind: kind, Text: s.src[start.Offset:s.off], Start: start, End: s.position()}
}

// step moves past a single byte, tracking line and column.
func (s *Scanner) step() {
	if s.src[s.off] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.off++
}

// advance moves past n bytes known to contain no newline.
func (s *Scanner) advance(n int) {
	s.off += n
	s.col += n
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
