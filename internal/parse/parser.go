// Package parse turns JavaScript source into the ast.Node tree the
// transformer walks. It is backed by the tree-sitter JavaScript grammar.
package parse

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"aejsx/internal/ast"
)

// Func parses source text into a syntax tree.
type Func func(src []byte) (*ast.Node, error)

// SyntaxError locates the first unparseable token.
type SyntaxError struct {
	Message string
	Offset  int
	Line    int  // 1-based
	Column  int  // 0-based, in bytes
	Missing bool // the grammar expected a token that never came
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (%d:%d)", e.Message, e.Line, e.Column)
}

// Parser converts tree-sitter output into ast nodes.
type Parser struct {
	lang *sitter.Language
}

// NewParser returns a Parser for the JavaScript grammar.
func NewParser() *Parser {
	return &Parser{lang: javascript.GetLanguage()}
}

// JavaScript parses src with a fresh Parser.
func JavaScript(src []byte) (*ast.Node, error) {
	return NewParser().Parse(context.Background(), src)
}

// Tree returns the raw tree-sitter tree for src. The caller closes it.
func (p *Parser) Tree(ctx context.Context, src []byte) (*sitter.Tree, error) {
	sp := sitter.NewParser()
	defer sp.Close()
	sp.SetLanguage(p.lang)

	tree, err := sp.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	return tree, nil
}

// Parse returns the syntax tree of src, or a *SyntaxError when the
// grammar had to recover from an error anywhere in the input.
func (p *Parser) Parse(ctx context.Context, src []byte) (*ast.Node, error) {
	tree, err := p.Tree(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, FirstError(root)
	}
	return convert(root, src), nil
}

// FirstError finds the first ERROR or MISSING node under n in document
// order and describes it.
func FirstError(n *sitter.Node) *SyntaxError {
	if bad := firstError(n); bad != nil {
		pt := bad.StartPoint()
		msg := "Unexpected token"
		if bad.IsMissing() {
			msg = fmt.Sprintf("Expected %q", bad.Type())
		}
		return &SyntaxError{
			Message: msg,
			Offset:  int(bad.StartByte()),
			Line:    int(pt.Row) + 1,
			Column:  int(pt.Column),
			Missing: bad.IsMissing(),
		}
	}
	return &SyntaxError{Message: "Unexpected token", Line: 1}
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || !(c.HasError() || c.IsMissing()) {
			continue
		}
		if bad := firstError(c); bad != nil {
			return bad
		}
	}
	return nil
}

var kinds = map[string]ast.Kind{
	"program":                        ast.Program,
	"import_statement":               ast.ImportDeclaration,
	"export_statement":               ast.ExportNamedDeclaration,
	"function_declaration":           ast.FunctionDeclaration,
	"generator_function_declaration": ast.FunctionDeclaration,
	"lexical_declaration":            ast.VariableDeclaration,
	"variable_declaration":           ast.VariableDeclaration,
	"variable_declarator":            ast.VariableDeclarator,
	"expression_statement":           ast.ExpressionStatement,
	"debugger_statement":             ast.DebuggerStatement,
	"statement_block":                ast.BlockStatement,
	"identifier":                     ast.Identifier,
	"comment":                        ast.Comment,
}

func convert(n *sitter.Node, src []byte) *ast.Node {
	node := &ast.Node{
		Kind:  kinds[n.Type()],
		Type:  n.Type(),
		Start: int(n.StartByte()),
		End:   int(n.EndByte()),
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if !c.IsNamed() {
			switch c.Type() {
			case "async":
				node.Async = true
			case "*":
				if node.Kind == ast.FunctionDeclaration {
					node.Generator = true
				}
			case "default":
				if node.Kind == ast.ExportNamedDeclaration {
					node.Kind = ast.ExportDefaultDeclaration
				}
			}
			continue
		}
		node.Children = append(node.Children, convert(c, src))
	}

	switch node.Kind {
	case ast.Identifier:
		node.Name = n.Content(src)
	case ast.FunctionDeclaration:
		node.ID = childAt(node, n.ChildByFieldName("name"))
	case ast.VariableDeclarator:
		node.ID = childAt(node, n.ChildByFieldName("name"))
		node.Init = childAt(node, n.ChildByFieldName("value"))
	case ast.VariableDeclaration:
		for _, c := range node.Children {
			if c.Kind == ast.VariableDeclarator {
				node.Declarations = append(node.Declarations, c)
			}
		}
	case ast.ExportNamedDeclaration, ast.ExportDefaultDeclaration:
		convertExport(node, n, src)
	}
	return node
}

func convertExport(node *ast.Node, n *sitter.Node, src []byte) {
	if isExportAll(n) {
		node.Kind = ast.ExportAllDeclaration
	}
	if s := n.ChildByFieldName("source"); s != nil {
		node.Source = strings.Trim(s.Content(src), "\"'`")
	}
	if node.Kind == ast.ExportNamedDeclaration {
		node.Declaration = childAt(node, n.ChildByFieldName("declaration"))
	}
	clause := clauseOf(n)
	if clause == nil {
		return
	}
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		spec := clause.NamedChild(i)
		if spec == nil || spec.Type() != "export_specifier" {
			continue
		}
		name := spec.ChildByFieldName("name")
		if name == nil {
			continue
		}
		local := strings.Trim(name.Content(src), "\"'")
		exported := local
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			exported = strings.Trim(alias.Content(src), "\"'")
		}
		node.Specifiers = append(node.Specifiers, ast.Specifier{Local: local, Exported: exported})
	}
}

// isExportAll matches `export * from "m"` and `export * as ns from "m"`.
func isExportAll(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c != nil && (c.Type() == "*" || c.Type() == "namespace_export") {
			return true
		}
	}
	return false
}

func clauseOf(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil && c.Type() == "export_clause" {
			return c
		}
	}
	return nil
}

// childAt maps a tree-sitter field node back to the converted child
// occupying the same range.
func childAt(node *ast.Node, field *sitter.Node) *ast.Node {
	if field == nil {
		return nil
	}
	start, end := int(field.StartByte()), int(field.EndByte())
	for _, c := range node.Children {
		if c.Start == start && c.End == end && c.Type == field.Type() {
			return c
		}
	}
	return nil
}
