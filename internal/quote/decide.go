package quote

import "strings"

// Verdict is the outcome of deciding one literal. When Rewrite is false,
// Delim and Body are the literal's own.
type Verdict struct {
	Rewrite bool
	Delim   Delim
	Body    string
}

// Decide applies the conversion rules to one literal against the
// preferred quote character.
//
// Raw and triple-quoted literals never change. For the rest, the body
// is walked once per quote character, counting escaped and unescaped
// occurrences of each. The literal flips toward the preferred quote
// when the body does not contain that quote at all, and in either
// direction when the flipped body would carry strictly fewer escaped
// quotes and no more than the flip frees. Ties keep the literal as it
// is, and a rewritten literal never qualifies again: deciding its own
// output is a no-op.
func Decide(lit Literal, preferred byte) Verdict {
	keep := Verdict{Delim: lit.Delim, Body: lit.Body}
	if lit.IsRaw() || lit.Delim.Triple() {
		return keep
	}

	current := lit.Delim.Quote()
	next := opposite(current)
	escapedCur, unescapedCur := countQuotes(lit.Body, current)
	escapedNext, unescapedNext := countQuotes(lit.Body, next)

	// An unescaped occurrence of the delimiter character inside the body
	// means the literal was mis-split; leave it untouched.
	if unescapedCur > 0 {
		return keep
	}

	// carried is the escape count of the flipped body: one per
	// occurrence of the target quote, already escaped or not. The flip
	// must free at least that many, otherwise its own output would
	// qualify for the reverse flip.
	carried := unescapedNext + escapedNext
	toward := current != preferred
	if (toward && carried == 0) || (escapedCur > unescapedNext && escapedCur >= carried) {
		return Verdict{
			Rewrite: true,
			Delim:   delimFor(next),
			Body:    reescape(lit.Body, current, next),
		}
	}
	return keep
}

// countQuotes counts occurrences of q in body, split by escape position.
// A backslash always consumes the byte after it, so only the escapes
// that actually protect q are counted as escaped.
func countQuotes(body string, q byte) (escaped, unescaped int) {
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
			if i < len(body) && body[i] == q {
				escaped++
			}
		case q:
			unescaped++
		}
	}
	return escaped, unescaped
}

// reescape rewrites body for a delimiter change from one quote character
// to the other: escaped occurrences of from lose their backslash,
// unescaped occurrences of to gain one, and every other byte, escape
// sequences included, is copied untouched.
func reescape(body string, from, to byte) string {
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			if body[i+1] == from {
				b.WriteByte(from)
			} else {
				b.WriteByte('\\')
				b.WriteByte(body[i+1])
			}
			i++
		case c == to:
			b.WriteByte('\\')
			b.WriteByte(to)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func opposite(q byte) byte {
	if q == '\'' {
		return '"'
	}
	return '\''
}

func delimFor(q byte) Delim {
	if q == '\'' {
		return Single
	}
	return Double
}
