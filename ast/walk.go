package ast

// Inspect traverses the tree rooted at node in depth-first order. It calls
// f for each node; if f returns true, Inspect visits the node's children.
// Docstrings are visited before the node name they document; comments held
// by a Document are not visited.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Document:
		for _, item := range n.Items {
			Inspect(item, f)
		}
	case *EnumDecl:
		inspectDoc(n.Doc, f)
		for _, v := range n.Variants {
			Inspect(v, f)
		}
	case *EnumVariant:
		inspectDoc(n.Doc, f)
	case *ComponentDecl:
		inspectDoc(n.Doc, f)
		for _, m := range n.Members {
			Inspect(m, f)
		}
	case *PropertyDecl:
		inspectDoc(n.Doc, f)
		if n.Default != nil {
			Inspect(n.Default, f)
		}
	case *ComponentInstance:
		for _, m := range n.Members {
			Inspect(m, f)
		}
	case *PropertyAssignment:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	}
}

func inspectDoc(doc *Docstring, f func(Node) bool) {
	if doc != nil {
		Inspect(doc, f)
	}
}
