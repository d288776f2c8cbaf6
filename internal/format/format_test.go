package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aejsx/internal/parse"
)

func TestFormatAccessor(t *testing.T) {
	in := "function get() {\nvar a=1;\nreturn {a};\n}"
	out, err := Format(in, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "function get() {\n  var a = 1;\n  return { a };\n}", out)
}

func TestFormatSpacing(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"commas", "f(a,b,[1,2]);", "f(a, b, [1, 2]);"},
		{"trailing comma", "x = [1,2,];", "x = [1, 2,];"},
		{"binary", "y = a+b*c;", "y = a + b * c;"},
		{"augmented", "y+=1;", "y += 1;"},
		{"collapse", "y   =    1;", "y = 1;"},
		{"empty braces", "o = {};", "o = {};"},
		{"object", "o = {a:1,b};", "o = { a:1, b };"},
		{"string untouched", `s = "a,b+c";`, `s = "a,b+c";`},
		{"comment untouched", "a = 1; /* x,y */", "a = 1; /* x,y */"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Format(tt.in, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFormatForSemicolons(t *testing.T) {
	opts := DefaultOptions()
	opts.InsertSpaceAfterSemicolonInForStatements = true

	out, err := Format("for (let i=0;i<n;i++) {}", opts)
	require.NoError(t, err)
	assert.Equal(t, "for (let i = 0; i < n; i++) {}", out)
}

func TestFormatParenthesisAndBrackets(t *testing.T) {
	opts := DefaultOptions()
	opts.InsertSpaceAfterOpeningAndBeforeClosingNonemptyParenthesis = true
	opts.InsertSpaceAfterOpeningAndBeforeClosingNonemptyBrackets = true

	out, err := Format("f(a,[1]);g();", opts)
	require.NoError(t, err)
	assert.Equal(t, "f( a, [ 1 ] );g();", out)
}

func TestFormatIndent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"callback opens one level",
			"foo(function () {\nbar();\n});",
			"foo(function () {\n  bar();\n});",
		},
		{
			"closer aligns with its opener line",
			"foo(function () {\nreturn 1\n},\n2)",
			"foo(function () {\n  return 1\n},\n  2)",
		},
		{
			"switch",
			"switch (x) {\ncase 1:\nfoo();\nbreak;\ndefault:\nbar();\n}",
			"switch (x) {\n  case 1:\n    foo();\n    break;\n  default:\n    bar();\n}",
		},
		{
			"bare if body",
			"if (a)\nb();\nc();",
			"if (a)\n  b();\nc();",
		},
		{
			"dedent",
			"    x = 1;",
			"x = 1;",
		},
		{
			"blank lines",
			"function f() {\n  a();\n   \n  b();\n}",
			"function f() {\n  a();\n\n  b();\n}",
		},
		{
			"nested objects",
			"x = [\n{\na\n},\n];",
			"x = [\n  {\n    a\n  },\n];",
		},
		{
			"template kept",
			"var t = `a\n    b`;\n",
			"var t = `a\n    b`;\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Format(tt.in, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFormatIndentOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.BaseIndentSize = 4
	out, err := Format("a;\nb;", opts)
	require.NoError(t, err)
	assert.Equal(t, "    a;\n    b;", out)

	opts = DefaultOptions()
	opts.ConvertTabsToSpaces = false
	out, err = Format("if (a) {\nb();\n}", opts)
	require.NoError(t, err)
	assert.Equal(t, "if (a) {\n\tb();\n}", out)

	opts = DefaultOptions()
	opts.IndentStyle = IndentNone
	out, err = Format("if (a) {\nb();\n}", opts)
	require.NoError(t, err)
	assert.Equal(t, "if (a) {\nb();\n}", out)
}

func TestFormatRejectsInvalid(t *testing.T) {
	_, err := Format("var = ;", DefaultOptions())
	require.Error(t, err)

	var se *parse.SyntaxError
	assert.True(t, errors.As(err, &se))
}
