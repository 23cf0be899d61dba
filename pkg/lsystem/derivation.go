package lsystem

import (
	"fmt"
	"strings"
)

// Derivation is the rendered "string" view of a State: its tree's yield,
// the sequence consumed by a Rasterizer and displayed in diagnostics.
type Derivation struct {
	Symbols []*Symbol
}

// DerivationOf returns the Derivation for the current contents of state.
// Safe to call on a partial (incomplete) state: unresolved nonterminals and
// parameter slots simply appear with their stub values.
func DerivationOf(state *State) Derivation {
	return Derivation{Symbols: state.Tree.Yield()}
}

// String renders a compact, deterministic textual form of the derivation,
// e.g. "F(1.00,0.10) /(180.00) #(5.00) F(0.70,0.09)", useful for logs and test
// expectations.
func (d Derivation) String() string {
	var b strings.Builder
	for i, s := range d.Symbols {
		if i > 0 {
			b.WriteByte(' ')
		}
		if len(s.Parameters) > 0 {
			fmt.Fprintf(&b, "%s(", s.Name)
			for j, p := range s.Parameters {
				if j > 0 {
					b.WriteByte(',')
				}
				fmt.Fprintf(&b, "%.2f", p)
			}
			b.WriteByte(')')
		} else {
			b.WriteString(s.Name)
		}
	}
	return b.String()
}
