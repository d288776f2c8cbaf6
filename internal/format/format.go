// Package format canonicalizes the whitespace of JavaScript text: spacing
// around commas, operators and brackets on a line, and re-indentation of
// line starts. Tokens are never added, removed or reordered.
package format

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"aejsx/internal/edit"
	"aejsx/internal/parse"
)

// token is a leaf of the syntax tree. Strings, templates, comments and
// regexes are single opaque tokens.
type token struct {
	typ        string
	start, end int
	row        int
	endRow     int
	extra      int // structural indent on top of bracket depth
	parent     string
	grand      string
}

// Formatter applies one set of Options.
type Formatter struct {
	opts   Options
	parser *parse.Parser
}

// New returns a Formatter for opts.
func New(opts Options) *Formatter {
	return &Formatter{opts: opts, parser: parse.NewParser()}
}

// Format reformats text with opts.
func Format(text string, opts Options) (string, error) {
	return New(opts).Format(text)
}

// Format returns text with canonical whitespace. Text that does not parse
// is rejected rather than guessed at.
func (f *Formatter) Format(text string) (string, error) {
	src := []byte(text)
	tree, err := f.parser.Tree(context.Background(), src)
	if err != nil {
		return "", err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return "", fmt.Errorf("format: %w", parse.FirstError(root))
	}

	c := &collector{}
	c.walk(root, "", 0)
	sort.Slice(c.tokens, func(i, j int) bool { return c.tokens[i].start < c.tokens[j].start })

	ed := edit.New(text)
	s := &spacer{text: text, ed: ed, done: make(map[int]bool)}
	if err := s.apply(f.opts, c); err != nil {
		return "", err
	}
	if f.opts.IndentStyle != IndentNone {
		if err := f.indent(text, ed, c.tokens); err != nil {
			return "", err
		}
	}
	return ed.String(), nil
}

var opaque = map[string]bool{
	"string":          true,
	"template_string": true,
	"comment":         true,
	"regex":           true,
}

type collector struct {
	tokens    []token
	operators [][3]*sitter.Node // left, operator, right
}

func (c *collector) walk(n *sitter.Node, parent string, extra int) {
	typ := n.Type()
	if n.ChildCount() == 0 || opaque[typ] {
		if n.StartByte() == n.EndByte() {
			return // automatic semicolon
		}
		grand := ""
		if p := n.Parent(); p != nil {
			if g := p.Parent(); g != nil {
				grand = g.Type()
			}
		}
		c.tokens = append(c.tokens, token{
			typ:    typ,
			start:  int(n.StartByte()),
			end:    int(n.EndByte()),
			row:    int(n.StartPoint().Row),
			endRow: int(n.EndPoint().Row),
			extra:  extra,
			parent: parent,
			grand:  grand,
		})
		return
	}

	switch typ {
	case "binary_expression", "assignment_expression", "augmented_assignment_expression", "variable_declarator":
		if ops := operatorOf(n); ops[1] != nil {
			c.operators = append(c.operators, ops)
		}
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		c.walk(child, typ, extra+nested(n, child, i))
	}
}

// nested is the extra indent a child gets from its parent's statement
// structure: bodies of switch cases and single-statement bodies of
// control statements sit one level deeper than their keyword.
func nested(parent, child *sitter.Node, i int) int {
	switch parent.Type() {
	case "switch_case", "switch_default":
		// everything after `case x:` / `default:`
		if child.IsNamed() && parent.ChildByFieldName("value") != nil && sameNode(child, parent.ChildByFieldName("value")) {
			return 0
		}
		if i > 0 && child.IsNamed() {
			return 1
		}
	case "if_statement":
		if c := parent.ChildByFieldName("consequence"); c != nil && sameNode(c, child) && isBareStatement(child) {
			return 1
		}
	case "else_clause", "for_statement", "for_in_statement", "while_statement", "do_statement":
		if child.IsNamed() && isBareStatement(child) && isBody(parent, child) {
			return 1
		}
	}
	return 0
}

func isBody(parent, child *sitter.Node) bool {
	if parent.Type() == "else_clause" {
		return child.Type() != "if_statement"
	}
	b := parent.ChildByFieldName("body")
	return b != nil && sameNode(b, child)
}

func isBareStatement(n *sitter.Node) bool {
	return n.Type() != "statement_block" && strings.HasSuffix(n.Type(), "statement")
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// operatorOf finds the operator token between the operands of n.
func operatorOf(n *sitter.Node) [3]*sitter.Node {
	left := n.ChildByFieldName("left")
	if left == nil {
		left = n.ChildByFieldName("name")
	}
	right := n.ChildByFieldName("right")
	if right == nil {
		right = n.ChildByFieldName("value")
	}
	if left == nil || right == nil {
		return [3]*sitter.Node{}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || c.IsNamed() {
			continue
		}
		if c.StartByte() >= left.EndByte() && c.EndByte() <= right.StartByte() {
			return [3]*sitter.Node{left, c, right}
		}
	}
	return [3]*sitter.Node{}
}
