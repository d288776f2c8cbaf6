package transform

import (
	"aejsx/internal/ast"
	"aejsx/internal/model"
)

// DiscoverExports collects the local bindings a module exports, in the
// order they appear. Export lists contribute their specifiers; inline
// `export function f` / `export const x` contribute the declared name.
// Re-exports from another module, default and star exports name no local
// binding and are skipped.
func DiscoverExports(root *ast.Node) *model.ExportSet {
	set := &model.ExportSet{}
	ast.Walk(root, func(n, parent *ast.Node) ast.Action {
		if n.Kind != ast.ExportNamedDeclaration {
			return ast.Continue
		}
		if n.Source != "" {
			return ast.Skip
		}
		for _, s := range n.Specifiers {
			set.Add(model.Export{Local: s.Local, Exported: s.Exported})
		}
		if d := n.Declaration; d != nil {
			if name := ast.DeclaredName(d); name != "" {
				set.Add(model.Export{Local: name, Exported: name})
			}
		}
		return ast.Skip
	})
	return set
}
