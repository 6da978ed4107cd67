package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		raw       string
		preferred byte
		expected  string
		changed   bool
	}{
		{"converts", `"abc"`, '\'', "'abc'", true},
		{"keeps", "'abc'", '\'', "'abc'", false},
		{"keeps raw", `r"abc"`, '\'', `r"abc"`, false},
		{"drops escape", `"don\"t"`, '\'', `'don"t'`, true},
		{"keeps unsafe", `"it's"`, '\'', `"it's"`, false},
		{"double preference", "'abc'", '"', `"abc"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, changed, err := Normalize(tt.raw, tt.preferred)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func TestNormalizeMalformed(t *testing.T) {
	t.Parallel()
	_, _, err := Normalize("'oops", '\'')
	var merr *MalformedError
	require.ErrorAs(t, err, &merr)
}

func TestSplice(t *testing.T) {
	t.Parallel()

	t.Run("no replacements returns the input", func(t *testing.T) {
		t.Parallel()
		src := `x = "a"`
		assert.Equal(t, src, Splice(src, nil))
	})

	t.Run("single replacement", func(t *testing.T) {
		t.Parallel()
		src := `x = "a" + y`
		reps := []Replacement{
			{Span: Span{Start: 4, End: 7, Raw: `"a"`}, Text: "'a'"},
		}
		assert.Equal(t, "x = 'a' + y", Splice(src, reps))
	})

	t.Run("length changes do not shift later spans", func(t *testing.T) {
		t.Parallel()
		src := "a = \"x\\\"y\" + \"z\"\n"
		reps := []Replacement{
			{Span: Span{Start: 4, End: 10, Raw: `"x\"y"`}, Text: `'x"y'`},
			{Span: Span{Start: 13, End: 16, Raw: `"z"`}, Text: "'z'"},
		}
		assert.Equal(t, "a = 'x\"y' + 'z'\n", Splice(src, reps))
	})

	t.Run("replacements at both ends", func(t *testing.T) {
		t.Parallel()
		src := `"a" + "b"`
		reps := []Replacement{
			{Span: Span{Start: 0, End: 3, Raw: `"a"`}, Text: "'a'"},
			{Span: Span{Start: 6, End: 9, Raw: `"b"`}, Text: "'b'"},
		}
		assert.Equal(t, "'a' + 'b'", Splice(src, reps))
	})

	t.Run("adjacent spans", func(t *testing.T) {
		t.Parallel()
		src := `"a""b"`
		reps := []Replacement{
			{Span: Span{Start: 0, End: 3, Raw: `"a"`}, Text: "'a'"},
			{Span: Span{Start: 3, End: 6, Raw: `"b"`}, Text: "'b'"},
		}
		assert.Equal(t, "'a''b'", Splice(src, reps))
	})
}
