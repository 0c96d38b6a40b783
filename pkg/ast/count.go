package ast

// Count returns the number of nodes in the subtree rooted at n,
// including n itself. A nil Node counts as zero, so callers never need
// to guard traversal of an absent optional field (e.g. IfExpression's
// Alternative). pkg/program uses this as a program's cache weight.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}

	count := 1
	count += n.Left.Count()
	count += n.Right.Count()
	count += n.Consequence.Count()
	count += n.Alternative.Count()

	for _, s := range n.Statements {
		count += s.Count()
	}
	for _, p := range n.Params {
		count += p.Count()
	}
	for _, e := range n.Elements {
		count += e.Count()
	}
	for _, pair := range n.Pairs {
		count += pair.Key.Count()
		count += pair.Value.Count()
	}

	return count
}
