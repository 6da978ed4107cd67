package quote

import "strings"

// Span is the byte range [Start, End) one literal occupies in its source
// text, together with the raw text itself.
type Span struct {
	Start int
	End   int
	Raw   string
}

// Replacement pairs a span with the text that takes its place.
type Replacement struct {
	Span Span
	Text string
}

// Normalize parses the raw text of one literal and applies the preferred
// quote rules, returning the resulting text and whether it changed.
func Normalize(raw string, preferred byte) (string, bool, error) {
	lit, err := Parse(raw)
	if err != nil {
		return "", false, err
	}
	v := Decide(lit, preferred)
	if !v.Rewrite {
		return raw, false, nil
	}
	return Literal{Prefix: lit.Prefix, Delim: v.Delim, Body: v.Body}.Text(), true, nil
}

// Splice rebuilds src left to right, copying the gaps between spans
// verbatim and substituting each replacement's text. Replacements must be
// sorted by offset and non-overlapping; because the original text is
// never mutated, the recorded offsets of later spans stay valid no matter
// how the replacement lengths differ.
func Splice(src string, reps []Replacement) string {
	if len(reps) == 0 {
		return src
	}
	var b strings.Builder
	b.Grow(len(src))
	last := 0
	for _, rep := range reps {
		b.WriteString(src[last:rep.Span.Start])
		b.WriteString(rep.Text)
		last = rep.Span.End
	}
	b.WriteString(src[last:])
	return b.String()
}
