package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aejsx/internal/model"
	"aejsx/internal/parse"
	"aejsx/internal/transform"
)

func results(t *testing.T) []model.Result {
	t.Helper()
	opts := model.DefaultOptions()
	opts.KeepGoing = true
	res, err := transform.New(opts, transform.WithLogger(zap.NewNop())).Bundle(context.Background(), []model.Unit{
		{File: "a.js", Code: "function f() {}\nexport { f as g };"},
		{File: "b.js", Code: "let x = 1;\nconst = ;\nlet y = 2;"},
		{File: "c.js", Code: "1;"},
	})
	require.Error(t, err)
	require.Len(t, res, 3)
	return res
}

func TestSummarize(t *testing.T) {
	s := Summarize(results(t))
	assert.Equal(t, Summary{Files: 3, OK: 2, Failed: 1, Exports: 1}, s)
	assert.Equal(t, "files: 3  ok: 2  failed: 1  exports: 1", s.String())
}

func TestGenerate(t *testing.T) {
	out := Generate(results(t), false)

	assert.Contains(t, out, "(flat mode)")
	assert.Contains(t, out, model.IconOK+" a.js")
	assert.Contains(t, out, "exports: g (f)")
	assert.Contains(t, out, model.IconFailed+" b.js")
	assert.Contains(t, out, "in b.js")
	assert.Contains(t, out, "    2 | const = ;")
	assert.Contains(t, out, model.IconEmpty+" c.js")
	assert.Contains(t, out, "exports: (none)")
	assert.NotContains(t, out, "code:")
}

func TestGenerateVerbose(t *testing.T) {
	out := Generate(results(t), true)
	assert.Contains(t, out, "code:\n        {\n        \tg() {},\n        }\n")
}

func TestErrorContext(t *testing.T) {
	res := results(t)

	_, ok := ErrorContext(res[0])
	assert.False(t, ok)

	ctx, ok := ErrorContext(res[1])
	require.True(t, ok)
	assert.Equal(t, 2, ctx.LineNumber)
	assert.Equal(t, "let x = 1;", ctx.Before1)
	assert.Equal(t, "let y = 2;", ctx.After1)
}

func TestErrorContextFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "b.js")
	require.NoError(t, os.WriteFile(path, []byte("let x = 1;\nconst = ;\nlet y = 2;\n"), 0o644))

	perr := &transform.ParseError{File: path, Err: &parse.SyntaxError{Message: "Unexpected token", Line: 2, Column: 6}}
	ctx, ok := ErrorContext(model.Result{File: path, Err: perr, ErrMsg: perr.Error()})
	require.True(t, ok)
	assert.Empty(t, ctx.ErrorMsg)
	assert.Equal(t, "const = ;", ctx.Target)
	assert.Equal(t, "let x = 1;", ctx.Before1)
	assert.Equal(t, 6, ctx.Column)

	gone := &transform.ParseError{File: filepath.Join(t.TempDir(), "gone.js"), Err: perr.Err}
	ctx, ok = ErrorContext(model.Result{Err: gone})
	require.True(t, ok)
	assert.Contains(t, ctx.ErrorMsg, "Could not read file")

	stdin := &transform.ParseError{File: "<stdin>", Err: perr.Err}
	ctx, ok = ErrorContext(model.Result{Err: stdin})
	require.True(t, ok)
	assert.Contains(t, ctx.ErrorMsg, "out of range", "stdin is never read back")
}

func TestExports(t *testing.T) {
	assert.Equal(t, "(none)", Exports(nil))
	assert.Equal(t, "a, c (b)", Exports([]model.Export{{Local: "a", Exported: "a"}, {Local: "b", Exported: "c"}}))
}
