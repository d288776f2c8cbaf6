package repl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"aejsx/internal/model"
	"aejsx/internal/parse"
)

func TestFeedComplete(t *testing.T) {
	s := NewSession(model.DefaultOptions(), nil)
	out, done := s.Feed("export const a = 1;")
	assert.False(t, done)
	assert.Equal(t, "{\n\ta: 1,\n}", out)
	assert.False(t, s.Pending())
}

func TestFeedMultiline(t *testing.T) {
	s := NewSession(model.DefaultOptions(), nil)

	out, _ := s.Feed("export function f() {")
	assert.Empty(t, out)
	assert.True(t, s.Pending())
	assert.Equal(t, promptCont, s.Prompt())

	out, _ = s.Feed("  return 1;")
	assert.Empty(t, out)

	out, _ = s.Feed("}")
	assert.Equal(t, "{\n  f() {\n    return 1;\n  },\n}", out)
	assert.Equal(t, promptMain, s.Prompt())
}

func TestFeedForcesBrokenSnippet(t *testing.T) {
	s := NewSession(model.DefaultOptions(), nil)
	out, _ := s.Feed("const = ;")
	assert.Contains(t, out, "error: ")
	assert.Contains(t, out, "in repl")
	assert.False(t, s.Pending())

	s.Feed("foo(")
	assert.True(t, s.Pending())
	out, _ = s.Feed("")
	assert.Contains(t, out, "error: ")
	assert.False(t, s.Pending())
}

func TestCommands(t *testing.T) {
	s := NewSession(model.DefaultOptions(), nil)

	out, done := s.Feed(":wrap")
	assert.False(t, done)
	assert.Equal(t, "mode: wrapped", out)
	assert.Equal(t, model.Wrapped, s.Mode())

	out, _ = s.Feed("export const a = 1;")
	assert.Contains(t, out, "return { a }")

	out, _ = s.Feed(":format")
	assert.Equal(t, "format: true", out)

	out, _ = s.Feed(":flat")
	assert.Equal(t, "mode: flat", out)

	out, _ = s.Feed(":nope")
	assert.Contains(t, out, "unknown command")

	out, _ = s.Feed(":help")
	assert.Contains(t, out, ":quit")

	_, done = s.Feed(":quit")
	assert.True(t, done)
}

func TestBlankLineIdle(t *testing.T) {
	s := NewSession(model.DefaultOptions(), nil)
	out, done := s.Feed("   ")
	assert.Empty(t, out)
	assert.False(t, done)
}

func TestIncomplete(t *testing.T) {
	for _, src := range []string{"function f() {", "foo(1,", "const s = `abc"} {
		_, err := parse.JavaScript([]byte(src))
		if assert.Error(t, err, src) {
			assert.True(t, Incomplete(src, err), src)
		}
	}
	assert.False(t, Incomplete("x", errors.New("other")))
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, depth("f({a: [1]})"))
	assert.Equal(t, 2, depth("f({"))
	assert.Equal(t, 0, depth(`s = "{(";`))
	assert.Equal(t, 0, depth("// {\nx"))
	assert.Equal(t, 0, depth("/* ( */ x"))
	assert.Equal(t, 1, depth("/* ("))
	assert.Equal(t, 1, depth("'abc"))
}
