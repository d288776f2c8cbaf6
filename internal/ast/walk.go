package ast

// Action is returned by a Visitor to steer the walk.
type Action int

const (
	// Continue descends into the node's children.
	Continue Action = iota
	// Skip leaves the node's children unvisited.
	Skip
	// Stop ends the walk.
	Stop
)

// Visitor is called once per node, parent first. parent is nil at the root.
type Visitor func(node, parent *Node) Action

// Walk visits root and its descendants in document order. The tree is
// not modified; parent linkage lives only on the walk's stack.
func Walk(root *Node, visit Visitor) {
	if root == nil {
		return
	}
	walk(root, nil, visit)
}

func walk(n, parent *Node, visit Visitor) bool {
	switch visit(n, parent) {
	case Stop:
		return false
	case Skip:
		return true
	}
	for _, c := range n.Children {
		if !walk(c, n, visit) {
			return false
		}
	}
	return true
}
