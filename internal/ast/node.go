package ast

// Kind tags a Node. Only the kinds the rewriters act on are enumerated;
// everything else is Other and keeps its grammar type in Node.Type.
type Kind int

const (
	Other Kind = iota
	Program
	ExportNamedDeclaration
	ExportDefaultDeclaration
	ExportAllDeclaration
	ImportDeclaration
	FunctionDeclaration
	VariableDeclaration
	VariableDeclarator
	ExpressionStatement
	DebuggerStatement
	BlockStatement
	Identifier
	Comment
)

var kindNames = [...]string{
	Other:                    "Other",
	Program:                  "Program",
	ExportNamedDeclaration:   "ExportNamedDeclaration",
	ExportDefaultDeclaration: "ExportDefaultDeclaration",
	ExportAllDeclaration:     "ExportAllDeclaration",
	ImportDeclaration:        "ImportDeclaration",
	FunctionDeclaration:      "FunctionDeclaration",
	VariableDeclaration:      "VariableDeclaration",
	VariableDeclarator:       "VariableDeclarator",
	ExpressionStatement:      "ExpressionStatement",
	DebuggerStatement:        "DebuggerStatement",
	BlockStatement:           "BlockStatement",
	Identifier:               "Identifier",
	Comment:                  "Comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Specifier is one entry of an export list: `local as exported`.
type Specifier struct {
	Local    string
	Exported string
}

// Node is a syntax tree element addressed by byte offsets into the
// source it was parsed from. Nodes carry no parent pointer.
type Node struct {
	Kind  Kind
	Type  string // grammar type, e.g. "if_statement"
	Start int
	End   int
	Name  string // Identifier text

	Children []*Node

	// FunctionDeclaration / VariableDeclarator
	ID        *Node
	Async     bool
	Generator bool

	// VariableDeclarator value
	Init *Node

	// VariableDeclaration
	Declarations []*Node

	// Export statements
	Declaration *Node
	Specifiers  []Specifier
	Source      string
}

// IsBlock reports whether n holds a statement list, so a child statement
// can be deleted without leaving the grammar incomplete.
func IsBlock(n *Node) bool {
	return n != nil && (n.Kind == BlockStatement || n.Kind == Program)
}

// DeclaredName is the name bound by a function declaration or by the
// first declarator of a variable declaration. Patterns yield "".
func DeclaredName(n *Node) string {
	switch n.Kind {
	case FunctionDeclaration:
		if n.ID != nil {
			return n.ID.Name
		}
	case VariableDeclaration:
		if len(n.Declarations) > 0 && n.Declarations[0].ID != nil {
			return n.Declarations[0].ID.Name
		}
	}
	return ""
}
