// Package format rewrites Python source so string literals use a single
// preferred quote character wherever the conversion cannot change the
// literal's meaning. It exposes the pipeline at three levels: Source for
// decoded text, File and Reader for encoded bytes, and ProcessPaths for
// whole argument lists.
package format

import (
	"fmt"

	"github.com/unifylabs/unify/internal/quote"
	"github.com/unifylabs/unify/internal/tokenizer"
	tt "github.com/unifylabs/unify/internal/types"
)

// Result is the outcome of one file's formatting pass.
type Result struct {
	Path      string
	Source    string
	Formatted string
	Changes   []tt.Change
	Encoding  Encoding
	Err       error
}

// Changed reports whether formatting would alter the file.
func (r *Result) Changed() bool {
	return r.Err == nil && r.Formatted != r.Source
}

// Output returns the formatted text re-encoded into the file's original
// encoding, byte order mark included.
func (r *Result) Output() ([]byte, error) {
	return Encode(r.Formatted, r.Encoding)
}

// Source rewrites decoded source text so its string literals use the
// preferred quote wherever that is safe, returning the new text and one
// Change per rewritten literal. When the text cannot be tokenized it is
// returned unmodified together with the error; there is no partial
// output.
func Source(name, src string, cfg Config) (string, []tt.Change, error) {
	preferred := cfg.PreferredQuote()
	sc := tokenizer.New(name, src)

	var (
		reps    []quote.Replacement
		changes []tt.Change
	)
	for {
		tok, err := sc.Next()
		if err != nil {
			return src, nil, err
		}
		if tok == nil {
			break
		}
		if tok.Kind != tokenizer.KindString {
			continue
		}

		text, changed, err := quote.Normalize(tok.Text, preferred)
		if err != nil {
			return src, nil, fmt.Errorf("%s: %w", tok.Start, err)
		}
		if !changed {
			continue
		}
		reps = append(reps, quote.Replacement{
			Span: quote.Span{Start: tok.Start.Offset, End: tok.End.Offset, Raw: tok.Text},
			Text: text,
		})
		changes = append(changes, tt.Change{
			Filename:    name,
			Original:    tok.Text,
			Replacement: text,
			Start:       tok.Start,
			End:         tok.End,
		})
	}
	return quote.Splice(src, reps), changes, nil
}
