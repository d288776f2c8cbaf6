package transform

import (
	"strings"

	"aejsx/internal/ast"
	"aejsx/internal/edit"
	"aejsx/internal/model"
)

// placeholder stands in for a removed statement whose parent needs one.
const placeholder = "(void 0);"

// rewriter carries the state of one rewrite walk.
type rewriter struct {
	src     string
	ed      *edit.Editor
	exports *model.ExportSet
	opts    model.Options
	removed int
	err     error
}

func newRewriter(src string, exports *model.ExportSet, opts model.Options) *rewriter {
	return &rewriter{
		src:     src,
		ed:      edit.New(src),
		exports: exports,
		opts:    opts,
	}
}

// removeStatement drops n, or replaces it with an inert statement when
// its parent is a control construct that needs a body.
func (r *rewriter) removeStatement(n, parent *ast.Node) error {
	r.removed++
	if ast.IsBlock(parent) {
		return r.ed.Remove(n.Start, n.End)
	}
	return r.ed.Overwrite(n.Start, n.End, placeholder)
}

// flatDisallowed statements never survive in Flat output.
func flatDisallowed(n *ast.Node) bool {
	switch n.Kind {
	case ast.ImportDeclaration, ast.ExportNamedDeclaration, ast.ExportDefaultDeclaration,
		ast.ExportAllDeclaration, ast.DebuggerStatement, ast.ExpressionStatement:
		return true
	}
	return false
}

// flat converts exported top-level declarations into object properties
// and removes everything the object literal cannot hold.
func (r *rewriter) flat(root *ast.Node) error {
	ast.Walk(root, func(n, parent *ast.Node) ast.Action {
		if r.err != nil {
			return ast.Stop
		}
		if n.Kind == ast.Program {
			return ast.Continue
		}
		topLevel := parent != nil && parent.Kind == ast.Program

		switch {
		case n.Kind == ast.FunctionDeclaration || n.Kind == ast.VariableDeclaration:
			if topLevel {
				r.err = r.flatDeclaration(n, n.Start)
			}
			return ast.Skip
		case n.Kind == ast.ExportNamedDeclaration && isDeclaration(n.Declaration):
			r.err = r.flatDeclaration(n.Declaration, n.Start)
			return ast.Skip
		case flatDisallowed(n):
			r.err = r.removeStatement(n, parent)
			return ast.Skip
		case topLevel && n.Type == "empty_statement":
			r.removed++
			r.err = r.ed.Remove(n.Start, n.End)
			return ast.Skip
		}
		return ast.Continue
	})
	return r.err
}

func isDeclaration(n *ast.Node) bool {
	return n != nil && (n.Kind == ast.FunctionDeclaration || n.Kind == ast.VariableDeclaration)
}

// flatDeclaration rewrites decl, whose statement text begins at start
// (before any `export` keyword), into a property or removes it.
func (r *rewriter) flatDeclaration(decl *ast.Node, start int) error {
	name := ast.DeclaredName(decl)
	exp, ok := r.exports.Lookup(name)
	if name == "" || !ok {
		r.removed++
		return r.ed.Remove(start, decl.End)
	}
	if decl.Kind == ast.FunctionDeclaration {
		return r.flatFunction(decl, start, exp)
	}
	return r.flatVariable(decl, start, exp)
}

// flatFunction turns `function name(...) {...}` into `name(...) {...},`.
func (r *rewriter) flatFunction(fn *ast.Node, start int, exp model.Export) error {
	prefix := ""
	if fn.Async {
		prefix = "async "
	}
	if fn.Generator {
		prefix += "*"
	}

	var err error
	switch {
	case exp.Exported != exp.Local:
		err = r.ed.Overwrite(start, fn.ID.End, prefix+exp.Exported)
	case prefix != "":
		err = r.ed.Overwrite(start, fn.ID.Start, prefix)
	default:
		err = r.ed.Delete(start, fn.ID.Start)
	}
	if err != nil {
		return err
	}
	return r.ed.InsertAfter(fn.End, ",")
}

// flatVariable turns `const name = value;` into `name: value,`.
func (r *rewriter) flatVariable(decl *ast.Node, start int, exp model.Export) error {
	d := decl.Declarations[0]
	if d.Init == nil {
		return r.ed.Overwrite(start, decl.End, exp.Exported+": undefined,")
	}

	// keep the whitespace the author put between `=` and the value
	head := r.src[start:d.Init.Start]
	gap := head[len(strings.TrimRight(head, " \t\r\n")):]
	if err := r.ed.Overwrite(start, d.Init.Start, exp.Exported+":"+gap); err != nil {
		return err
	}

	if r.src[decl.End-1] == ';' && d.Init.End < decl.End {
		return r.ed.Overwrite(decl.End-1, decl.End, ",")
	}
	return r.ed.InsertAfter(decl.End, ",")
}
