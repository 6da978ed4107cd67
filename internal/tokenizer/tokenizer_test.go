package tokenizer

import (
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lite struct {
	Kind Kind
	Text string
}

func flatten(tokens []Token) []lite {
	out := make([]lite, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, lite{tok.Kind, tok.Text})
	}
	return out
}

func TestTokenize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected []lite
	}{
		{
			name:     "no strings",
			input:    "x = 1 + 2\n",
			expected: []lite{{KindOther, "x = 1 + 2\n"}},
		},
		{
			name:     "single quoted",
			input:    "a = 'hi'",
			expected: []lite{{KindOther, "a = "}, {KindString, "'hi'"}},
		},
		{
			name:     "double quoted",
			input:    `a = "hi"`,
			expected: []lite{{KindOther, "a = "}, {KindString, `"hi"`}},
		},
		{
			name:     "adjacent strings",
			input:    "'a' 'b'",
			expected: []lite{{KindString, "'a'"}, {KindOther, " "}, {KindString, "'b'"}},
		},
		{
			name:     "empty literal",
			input:    "''",
			expected: []lite{{KindString, "''"}},
		},
		{
			name:     "raw prefix",
			input:    `r'\d+'`,
			expected: []lite{{KindString, `r'\d+'`}},
		},
		{
			name:  "two letter prefixes keep their case",
			input: `rb'x' + Rf"y"`,
			expected: []lite{
				{KindString, "rb'x'"},
				{KindOther, " + "},
				{KindString, `Rf"y"`},
			},
		},
		{
			name:     "identifier ending in a prefix letter",
			input:    "shelf'x'",
			expected: []lite{{KindOther, "shelf"}, {KindString, "'x'"}},
		},
		{
			name:     "underscore identifier is no prefix",
			input:    "_f'x'",
			expected: []lite{{KindOther, "_f"}, {KindString, "'x'"}},
		},
		{
			name:     "comment",
			input:    "pass  # done",
			expected: []lite{{KindOther, "pass  "}, {KindComment, "# done"}},
		},
		{
			name:     "quote inside comment",
			input:    "# don't\n",
			expected: []lite{{KindComment, "# don't"}, {KindOther, "\n"}},
		},
		{
			name:     "hash inside string",
			input:    "'#tag'",
			expected: []lite{{KindString, "'#tag'"}},
		},
		{
			name:     "triple quoted",
			input:    "'''doc\nstring'''",
			expected: []lite{{KindString, "'''doc\nstring'''"}},
		},
		{
			name:     "triple keeps single quotes inside",
			input:    "'''it's'''",
			expected: []lite{{KindString, "'''it's'''"}},
		},
		{
			name:     "empty triple",
			input:    `""""""`,
			expected: []lite{{KindString, `""""""`}},
		},
		{
			name:     "escaped quote",
			input:    `'don\'t'`,
			expected: []lite{{KindString, `'don\'t'`}},
		},
		{
			name:     "escaped newline inside string",
			input:    "'one\\\ntwo'",
			expected: []lite{{KindString, "'one\\\ntwo'"}},
		},
		{
			name:     "escaped crlf inside string",
			input:    "'one\\\r\ntwo'",
			expected: []lite{{KindString, "'one\\\r\ntwo'"}},
		},
		{
			name:     "double backslash before closing quote",
			input:    `'a\\'`,
			expected: []lite{{KindString, `'a\\'`}},
		},
		{
			name:     "line continuation outside strings",
			input:    "x = 1 + \\\n2",
			expected: []lite{{KindOther, "x = 1 + \\\n2"}},
		},
		{
			name:     "format string with nested quotes",
			input:    `f"{d['k']}"`,
			expected: []lite{{KindString, `f"{d['k']}"`}},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []lite{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Tokenize("t.py", tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, flatten(got))
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	t.Parallel()
	input := "x = 'ab'\ny = \"c\" # t\n"
	pos := func(off, line, col int) token.Position {
		return token.Position{Filename: "t.py", Offset: off, Line: line, Column: col}
	}
	expected := []Token{
		{Kind: KindOther, Text: "x = ", Start: pos(0, 1, 1), End: pos(4, 1, 5)},
		{Kind: KindString, Text: "'ab'", Start: pos(4, 1, 5), End: pos(8, 1, 9)},
		{Kind: KindOther, Text: "\ny = ", Start: pos(8, 1, 9), End: pos(13, 2, 5)},
		{Kind: KindString, Text: `"c"`, Start: pos(13, 2, 5), End: pos(16, 2, 8)},
		{Kind: KindOther, Text: " ", Start: pos(16, 2, 8), End: pos(17, 2, 9)},
		{Kind: KindComment, Text: "# t", Start: pos(17, 2, 9), End: pos(20, 2, 12)},
		{Kind: KindOther, Text: "\n", Start: pos(20, 2, 12), End: pos(21, 3, 1)},
	}

	got, err := Tokenize("t.py", input)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestTokenizeCoversInput(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"",
		"x = 'a' + \"b\"  # mix\n",
		"def f():\n    return rb'\\x00' 'two'\n",
		"s = '''\nmulti \"line\"\n''' # after\n",
		"x = \"a\" \\\n'b'\n",
		"café = 'latte'\n",
	}
	for _, src := range inputs {
		tokens, err := Tokenize("t.py", src)
		require.NoError(t, err)
		var b strings.Builder
		for _, tok := range tokens {
			b.WriteString(tok.Text)
		}
		assert.Equal(t, src, b.String())
	}
}

func TestTokenizeErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		line  int
		col   int
		msg   string
	}{
		{
			name:  "unterminated at eof",
			input: "x = 'abc",
			line:  1,
			col:   5,
			msg:   "unterminated string literal",
		},
		{
			name:  "unterminated at newline",
			input: "s = 'abc\npass",
			line:  1,
			col:   5,
			msg:   "unterminated string literal",
		},
		{
			name:  "trailing backslash",
			input: `'ab\`,
			line:  1,
			col:   1,
			msg:   "unterminated string literal",
		},
		{
			name:  "unterminated triple",
			input: "'''abc\ndef",
			line:  1,
			col:   1,
			msg:   "unterminated triple-quoted string literal",
		},
		{
			name:  "lone triple opener",
			input: `"""`,
			line:  1,
			col:   1,
			msg:   "unterminated triple-quoted string literal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tokens, err := Tokenize("bad.py", tt.input)
			require.Error(t, err)
			assert.Nil(t, tokens)

			var serr *SyntaxError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.line, serr.Pos.Line)
			assert.Equal(t, tt.col, serr.Pos.Column)
			assert.Contains(t, serr.Error(), tt.msg)
			assert.Contains(t, serr.Error(), "bad.py")
		})
	}
}

func TestScannerNext(t *testing.T) {
	t.Parallel()
	s := New("t.py", "a = 'b'")

	tok, err := s.Next()
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.Equal(t, KindOther, tok.Kind)
	assert.Equal(t, "a = ", tok.Text)

	tok, err = s.Next()
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.Equal(t, KindString, tok.Kind)
	assert.Equal(t, "'b'", tok.Text)

	tok, err = s.Next()
	require.NoError(t, err)
	assert.Nil(t, tok)

	// Next stays exhausted.
	tok, err = s.Next()
	require.NoError(t, err)
	assert.Nil(t, tok)
}

func TestKindString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Other", KindOther.String())
	assert.Equal(t, "Comment", KindComment.String())
	assert.Equal(t, "String", KindString.String())
	assert.Equal(t, "Unknown", Kind(42).String())
}

func BenchmarkTokenize(b *testing.B) {
	src := strings.Repeat("x = 'one' + \"two\"  # note\ndef f(s='d'):\n    return '''t'''\n", 200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Tokenize("bench.py", src); err != nil {
			b.Fatal(err)
		}
	}
}
