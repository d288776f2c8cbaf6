package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tree() *Node {
	id := &Node{Kind: Identifier, Name: "f"}
	body := &Node{Kind: BlockStatement, Children: []*Node{{Kind: DebuggerStatement}}}
	fn := &Node{Kind: FunctionDeclaration, ID: id, Children: []*Node{id, body}}
	expr := &Node{Kind: ExpressionStatement}
	return &Node{Kind: Program, Children: []*Node{fn, expr}}
}

func TestWalkPreOrderWithParents(t *testing.T) {
	root := tree()
	var kinds []Kind
	var parents []*Node
	Walk(root, func(n, parent *Node) Action {
		kinds = append(kinds, n.Kind)
		parents = append(parents, parent)
		return Continue
	})

	assert.Equal(t, []Kind{Program, FunctionDeclaration, Identifier, BlockStatement, DebuggerStatement, ExpressionStatement}, kinds)
	assert.Nil(t, parents[0])
	assert.Same(t, root, parents[1])
	assert.Same(t, root.Children[0], parents[2])
	assert.Same(t, root, parents[5])
}

func TestWalkSkip(t *testing.T) {
	var kinds []Kind
	Walk(tree(), func(n, parent *Node) Action {
		kinds = append(kinds, n.Kind)
		if n.Kind == FunctionDeclaration {
			return Skip
		}
		return Continue
	})
	assert.Equal(t, []Kind{Program, FunctionDeclaration, ExpressionStatement}, kinds)
}

func TestWalkStop(t *testing.T) {
	count := 0
	Walk(tree(), func(n, parent *Node) Action {
		count++
		if n.Kind == Identifier {
			return Stop
		}
		return Continue
	})
	assert.Equal(t, 3, count)
}

func TestWalkIsRepeatable(t *testing.T) {
	root := tree()
	count := func() int {
		n := 0
		Walk(root, func(*Node, *Node) Action { n++; return Continue })
		return n
	}
	assert.Equal(t, 6, count())
	assert.Equal(t, 6, count())
}

func TestDeclaredName(t *testing.T) {
	root := tree()
	assert.Equal(t, "f", DeclaredName(root.Children[0]))

	decl := &Node{Kind: VariableDeclaration, Declarations: []*Node{
		{Kind: VariableDeclarator, ID: &Node{Kind: Identifier, Name: "x"}},
		{Kind: VariableDeclarator, ID: &Node{Kind: Identifier, Name: "y"}},
	}}
	assert.Equal(t, "x", DeclaredName(decl))
	assert.Equal(t, "", DeclaredName(&Node{Kind: VariableDeclaration}))
	assert.Equal(t, "", DeclaredName(root.Children[1]))
}

func TestIsBlock(t *testing.T) {
	assert.True(t, IsBlock(&Node{Kind: Program}))
	assert.True(t, IsBlock(&Node{Kind: BlockStatement}))
	assert.False(t, IsBlock(&Node{Kind: Other, Type: "if_statement"}))
	assert.False(t, IsBlock(nil))
}
