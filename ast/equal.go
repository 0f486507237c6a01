package ast

import "slices"

// Equal reports whether two documents have the same structure: the same
// items, names, members, values, and docstring text. Spans and comments
// are ignored.
func Equal(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	return slices.EqualFunc(a.Items, b.Items, equalNode[Item])
}

func equalNode[T Node](a, b T) bool {
	return nodesEqual(a, b)
}

func nodesEqual(a, b Node) bool {
	switch x := a.(type) {
	case *EnumDecl:
		y, ok := b.(*EnumDecl)
		return ok && x.Name.Name == y.Name.Name && docsEqual(x.Doc, y.Doc) &&
			slices.EqualFunc(x.Variants, y.Variants, func(p, q *EnumVariant) bool {
				return p.Name.Name == q.Name.Name && docsEqual(p.Doc, q.Doc)
			})
	case *ComponentDecl:
		y, ok := b.(*ComponentDecl)
		return ok && x.Name.Name == y.Name.Name && docsEqual(x.Doc, y.Doc) &&
			slices.EqualFunc(x.Members, y.Members, equalNode[DeclMember])
	case *PropertyDecl:
		y, ok := b.(*PropertyDecl)
		return ok && x.Name.Name == y.Name.Name && x.Type.Name == y.Type.Name &&
			docsEqual(x.Doc, y.Doc) && valuesEqual(x.Default, y.Default)
	case *ComponentInstance:
		y, ok := b.(*ComponentInstance)
		return ok && x.Name.Name == y.Name.Name && x.HasBody == y.HasBody &&
			slices.EqualFunc(x.Members, y.Members, equalNode[InstanceMember])
	case *PropertyAssignment:
		y, ok := b.(*PropertyAssignment)
		return ok && x.Name.Name == y.Name.Name && valuesEqual(x.Value, y.Value)
	default:
		return false
	}
}

func docsEqual(a, b *Docstring) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return slices.Equal(a.Lines, b.Lines)
}

func valuesEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *BoolValue:
		return x.Value == b.(*BoolValue).Value
	case *StringValue:
		return x.Value == b.(*StringValue).Value
	case *PixelValue:
		return x.Amount == b.(*PixelValue).Amount
	case *FractionValue:
		return x.Amount == b.(*FractionValue).Amount
	case *PercentageValue:
		return x.Amount == b.(*PercentageValue).Amount
	case *IdentValue:
		return x.Name == b.(*IdentValue).Name
	default:
		return false
	}
}
