package predictive

import (
	"fmt"

	"github.com/npillmayer/lltab"
	"github.com/npillmayer/lltab/ll"
)

// Node is a node of a concrete parse tree. Inner nodes are non-terminals and
// carry the rule they have been expanded with. Leafs are terminals (with the
// matched token) or epsilon.
type Node struct {
	Symbol   *ll.Symbol
	Rule     *ll.Rule
	Token    lltab.Token
	Span     lltab.Span
	Children []*Node
}

// IsLeaf is true for nodes without children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

func (n *Node) String() string {
	if n.Token != nil {
		return fmt.Sprintf("%s %q", n.Symbol, n.Token.Lexeme())
	}
	return n.Symbol.String()
}

// Walk visits the tree in pre-order, i.e. in the order of a leftmost derivation.
func (n *Node) Walk(f func(node *Node, depth int)) {
	n.walk(f, 0)
}

func (n *Node) walk(f func(*Node, int), depth int) {
	f(n, depth)
	for _, ch := range n.Children {
		ch.walk(f, depth+1)
	}
}

// Leafs returns the terminal leafs of the tree from left to right. The
// yield of the tree for an accepted input is the input itself.
func (n *Node) Leafs() []*Node {
	var leafs []*Node
	n.Walk(func(node *Node, depth int) {
		if node.IsLeaf() && node.Token != nil {
			leafs = append(leafs, node)
		}
	})
	return leafs
}

// expand attaches child nodes for the right hand side of rule r.
func (n *Node) expand(r *ll.Rule) []*Node {
	n.Rule = r
	rhs := r.RHS()
	n.Children = make([]*Node, len(rhs))
	for i, sym := range rhs {
		n.Children[i] = &Node{Symbol: sym}
	}
	return n.Children
}

// spans computes the input spans of inner nodes from their children.
func (n *Node) spans() lltab.Span {
	for _, ch := range n.Children {
		n.Span = n.Span.Extend(ch.spans())
	}
	return n.Span
}
