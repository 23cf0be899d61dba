package lsystem

// DerivationTree is a rooted forest of Symbols produced by successive rule
// applications (spec.md §3): the axiom supplies the initial top-level
// sequence, and each rule action attaches a replacement's symbols as
// Children of the rewritten symbol. Its yield (preorder leaves) is the
// "string" view used for rendering and enumeration.
type DerivationTree struct {
	Roots []*Symbol
}

// NewDerivationTree instantiates a tree from an axiom's symbol templates.
// Unlike symbols produced mid-derivation by a rule action (see
// buildSymbol), an axiom symbol's ParamExpr - when present - supplies its
// final values directly: the grammar author is declaring a concrete
// starting point, not a depth-dependent mean awaiting a later value
// action. So a parameter-bearing axiom symbol (e.g. a bare "F" axiom, as in
// spec.md §8 seed scenario 1) is terminal immediately, while a nonterminal
// axiom symbol (e.g. "X") keeps its resolved parameters but stays pending a
// rule action.
func NewDerivationTree(axiom []SymbolTemplate) *DerivationTree {
	roots := make([]*Symbol, len(axiom))
	for i, t := range axiom {
		s := &Symbol{Name: t.Name, Depth: 0}
		if t.ParamExpr != nil {
			s.Parameters = t.ParamExpr(nil)
		}
		switch {
		case !HasParameterSlot(t.Name):
			s.Terminal = true
			s.ParametersDefined = true
		case IsNonterminal(t.Name):
			s.ParametersDefined = t.ParamExpr != nil
		default:
			if t.ParamExpr != nil {
				s.Terminal = true
				s.ParametersDefined = true
			}
		}
		roots[i] = s
	}
	return &DerivationTree{Roots: roots}
}

// Yield walks the tree in preorder and returns every leaf symbol (a symbol
// with no children) in left-to-right order. Leaves are the rendered
// "string": a symbol with children has been rewritten and contributes its
// children instead of itself.
func (t *DerivationTree) Yield() []*Symbol {
	var out []*Symbol
	var walk func(s *Symbol)
	walk = func(s *Symbol) {
		if len(s.Children) == 0 {
			out = append(out, s)
			return
		}
		for _, c := range s.Children {
			walk(c)
		}
	}
	for _, r := range t.Roots {
		walk(r)
	}
	return out
}

// clone deep-copies the forest.
func (t *DerivationTree) clone() *DerivationTree {
	roots := make([]*Symbol, len(t.Roots))
	for i, r := range t.Roots {
		roots[i] = r.clone()
	}
	return &DerivationTree{Roots: roots}
}
