// Package lsystem implements the parametric L-system grammar and derivation
// model: symbols, derivation trees, pending-nonterminal state, and the
// action enumerator that turns a state into a finite branching factor for
// search.
package lsystem

// Symbol kinds recognized by the built-in grammar and rasterizer. These are
// the only names GrammarSpec.Validate accepts, and X is the only
// nonterminal (see IsNonterminal); each has a fixed meaning throughout the
// package.
const (
	SymX         = "X"  // nonterminal: branch apex awaiting a rule action
	SymF         = "F"  // drawable: extend along the current axis
	SymPush      = "["  // structural: push model-matrix stack
	SymPop       = "]"  // structural: pop model-matrix stack
	SymPlus      = "+"  // angle: rotate positive
	SymMinus     = "-"  // angle: rotate negative
	SymSlash     = "/"  // angle: twist around local axis, positive
	SymBackslash = "\\" // angle: twist around local axis, negative
	SymHash      = "#"  // angle: small arbitrary rotation jitter
)

// Symbol is one element of a derivation. It doubles as a node of the
// DerivationTree: once a symbol has been rewritten by a rule action, its
// Children hold the rule's right-hand side and the symbol itself no longer
// appears in the rendered string.
type Symbol struct {
	Name string

	// Depth records the rule-application depth at which this symbol was
	// introduced. For X symbols this also serves as the branch-recursion
	// level used by the action enumerator's branching cap.
	Depth int

	// Parameters holds 0-5 real numbers, grammar-specific (length, radius,
	// accumulated distance from the root, ...). Order and count are fixed
	// by the symbol's Name within a given grammar.
	Parameters []float64

	// ParametersDefined flips true once every numeric slot this symbol
	// carries has received a concrete value via a value action.
	ParametersDefined bool

	// Terminal is true once this symbol can no longer be the target of any
	// action: a nonterminal becomes terminal when rewritten (Children is
	// populated), a parameter-bearing symbol becomes terminal once
	// ParametersDefined is true.
	Terminal bool

	// Children holds this symbol's replacement, in left-to-right order,
	// once a rule action has rewritten it. A symbol with no children is a
	// leaf of the derivation tree and contributes itself to the yield.
	Children []*Symbol
}

// IsNonterminal reports whether name denotes a rewritable nonterminal
// rather than a structural, angle, or drawable terminal symbol.
func IsNonterminal(name string) bool {
	return name == SymX
}

// HasParameterSlot reports whether symbols named name carry a numeric
// parameter that must be resolved by a value action before the symbol is
// terminal. Structural stack symbols never do.
func HasParameterSlot(name string) bool {
	switch name {
	case SymPush, SymPop:
		return false
	default:
		return true
	}
}

// clone performs a deep copy of the symbol subtree rooted at s.
func (s *Symbol) clone() *Symbol {
	if s == nil {
		return nil
	}
	cp := &Symbol{
		Name:              s.Name,
		Depth:             s.Depth,
		ParametersDefined: s.ParametersDefined,
		Terminal:          s.Terminal,
	}
	if s.Parameters != nil {
		cp.Parameters = append([]float64(nil), s.Parameters...)
	}
	if s.Children != nil {
		cp.Children = make([]*Symbol, len(s.Children))
		for i, c := range s.Children {
			cp.Children[i] = c.clone()
		}
	}
	return cp
}
