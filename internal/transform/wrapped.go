package transform

import (
	"strings"

	"aejsx/internal/ast"
)

// wrappedDisallowed statements are stripped in Wrapped mode. Expression
// statements are allowed: they run inside the accessor body.
func wrappedDisallowed(n *ast.Node) bool {
	switch n.Kind {
	case ast.ImportDeclaration, ast.ExportNamedDeclaration, ast.ExportDefaultDeclaration,
		ast.ExportAllDeclaration, ast.DebuggerStatement:
		return true
	}
	return false
}

// wrapped strips module syntax and reserved global declarations, leaving
// the body as ordinary statements for the accessor.
func (r *rewriter) wrapped(root *ast.Node) error {
	ast.Walk(root, func(n, parent *ast.Node) ast.Action {
		if r.err != nil {
			return ast.Stop
		}
		topLevel := parent != nil && parent.Kind == ast.Program

		switch {
		case n.Kind == ast.Program:
			return ast.Continue
		case n.Kind == ast.VariableDeclaration:
			if topLevel && r.opts.IsReserved(ast.DeclaredName(n)) {
				r.removed++
				r.err = r.ed.Remove(n.Start, n.End)
			}
			return ast.Skip
		case n.Kind == ast.ExportNamedDeclaration && isDeclaration(n.Declaration):
			d := n.Declaration
			if d.Kind == ast.VariableDeclaration && r.opts.IsReserved(ast.DeclaredName(d)) {
				r.removed++
				r.err = r.ed.Remove(n.Start, n.End)
				return ast.Skip
			}
			// drop the export keyword, keep the declaration
			r.err = r.ed.Delete(n.Start, d.Start)
			return ast.Continue
		case wrappedDisallowed(n):
			r.err = r.removeStatement(n, parent)
			return ast.Skip
		}
		return ast.Continue
	})
	return r.err
}

// returnStatement builds `return { a, b: c }` from the exports.
func (r *rewriter) returnStatement() string {
	list := r.exports.List()
	if len(list) == 0 {
		return "return {}"
	}
	props := make([]string, len(list))
	for i, e := range list {
		if e.Exported == e.Local {
			props[i] = e.Local
		} else {
			props[i] = e.Exported + ": " + e.Local
		}
	}
	return "return { " + strings.Join(props, ", ") + " }"
}
