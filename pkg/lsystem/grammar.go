package lsystem

import "fmt"

// SymbolTemplate describes one symbol of a production's right-hand side
// before it is instantiated against a concrete parent symbol. ParamExpr
// computes the new symbol's parameters from the parent's already-resolved
// parameters, following the teacher's preference (see optimize.go's bound
// helpers) for small, explicit, named computations over opaque formulas.
type SymbolTemplate struct {
	Name string

	// ParamExpr computes this symbol's initial Parameters from the parent
	// symbol being rewritten. Nil means "no parameters" (structural
	// symbols). The returned slice may contain already-resolved values
	// (for symbols like X whose length/radius are propagated
	// arithmetically) or be left for a later value action to fill in
	// (conventionally the zero value, with ParametersDefined left false by
	// the caller).
	ParamExpr func(parent *Symbol) []float64
}

// Production is one right-hand side a nonterminal may be rewritten to.
type Production struct {
	Name string // descriptive name, e.g. "stop", "extend", "branch"
	RHS  []SymbolTemplate
}

// Discretization holds the numeric candidate sets the action enumerator
// draws from. Every field is explicit, named policy data rather than
// inline magic numbers, per spec.md §4.1's design rationale that the
// specific discretizations are policy, not essential to the search shape.
type Discretization struct {
	// AngleChoicesDeg enumerates the candidate values (in degrees) offered
	// for "+" and "-" angle symbols.
	AngleChoicesDeg []float64

	// TwistChoicesDeg enumerates the candidate values offered for "/" and
	// "\\" twist symbols.
	TwistChoicesDeg []float64

	// JitterChoicesDeg enumerates the candidate values offered for "#"
	// symbols (small arbitrary rotation).
	JitterChoicesDeg []float64

	// LengthScaleMultiples enumerates the scale factors applied to a
	// depth-dependent mean length/radius when offering a value action for
	// an "F" symbol's parameter slot.
	LengthScaleMultiples []float64

	// MaxAccumulatedDistance culls the X enumerator to "stop" only once the
	// accumulated distance from the root exceeds this value.
	MaxAccumulatedDistance float64

	// BasePartLength culls the X enumerator to "extend" only (no branch,
	// no stop) while the X's own segment length (its first parameter) is
	// below this threshold.
	BasePartLength float64

	// MaxRecursionLevel caps the Depth (branch level) at which "branch" is
	// still offered; beyond it only "stop"/"extend" remain.
	MaxRecursionLevel int
}

// DefaultDiscretization returns the discretization used by DefaultGrammar,
// grounded in the original source's getActions (angle grid of 40-80 by 20,
// twist fixed near 180, jitter of ±5) generalized to spec.md §4.1's wider
// table (5-14 angle choices, 3-5 length multiples).
func DefaultDiscretization() Discretization {
	return Discretization{
		AngleChoicesDeg:        []float64{15, 25, 35, 45, 55, 65, 75},
		TwistChoicesDeg:        []float64{170, 180, 190},
		JitterChoicesDeg:       []float64{-5, 5},
		LengthScaleMultiples:   []float64{0.8, 1.0, 1.2},
		MaxAccumulatedDistance: 12.0,
		BasePartLength:         0.6,
		MaxRecursionLevel:      6,
	}
}

// GrammarSpec is the axiom plus, for each nonterminal, its finite list of
// productions. It is fixed at construction (spec.md §4.1): built
// incrementally via AddProduction, then Validate()'d once, after which
// RandomDerive and the action enumerator treat it as read-only - mirroring the
// teacher's Model, which is "constructed incrementally... immutable during
// solving, enabling safe concurrent access" (model.go).
type GrammarSpec struct {
	Axiom           []SymbolTemplate
	productions     map[string][]Production
	Discretization  Discretization
}

// NewGrammar creates an empty grammar with the given axiom and
// discretization policy. Productions are added with AddProduction.
func NewGrammar(axiom []SymbolTemplate, disc Discretization) *GrammarSpec {
	return &GrammarSpec{
		Axiom:          axiom,
		productions:    make(map[string][]Production),
		Discretization: disc,
	}
}

// AddProduction registers a production for the given nonterminal name.
func (g *GrammarSpec) AddProduction(nonterminal string, p Production) {
	g.productions[nonterminal] = append(g.productions[nonterminal], p)
}

// Productions returns the productions registered for a nonterminal, in
// registration order (stable, deterministic enumeration per spec.md §4.2).
func (g *GrammarSpec) Productions(nonterminal string) []Production {
	return g.productions[nonterminal]
}

// Validate checks the grammar is well-formed: every nonterminal reachable
// from the axiom has at least one production, and the axiom and every
// reachable production reference only the symbol names declared in
// symbol.go.
// Returns ErrInvalidGrammar wrapped with detail on failure.
func (g *GrammarSpec) Validate() error {
	if len(g.Axiom) == 0 {
		return fmt.Errorf("%w: empty axiom", ErrInvalidGrammar)
	}

	checkNames := func(templates []SymbolTemplate) error {
		for _, t := range templates {
			switch t.Name {
			case SymX, SymF, SymPush, SymPop, SymPlus, SymMinus, SymSlash, SymBackslash, SymHash:
			default:
				return fmt.Errorf("%w: unknown symbol %q", ErrInvalidGrammar, t.Name)
			}
		}
		return nil
	}
	if err := checkNames(g.Axiom); err != nil {
		return err
	}

	seen := map[string]bool{}
	var queue []string
	enqueue := func(templates []SymbolTemplate) {
		for _, t := range templates {
			if IsNonterminal(t.Name) && !seen[t.Name] {
				seen[t.Name] = true
				queue = append(queue, t.Name)
			}
		}
	}
	enqueue(g.Axiom)

	for len(queue) > 0 {
		nt := queue[0]
		queue = queue[1:]
		prods := g.productions[nt]
		if len(prods) == 0 {
			return fmt.Errorf("%w: nonterminal %q has no productions", ErrInvalidGrammar, nt)
		}
		for _, p := range prods {
			if len(p.RHS) == 0 {
				return fmt.Errorf("%w: production %q for %q has an empty right-hand side", ErrInvalidGrammar, p.Name, nt)
			}
			if err := checkNames(p.RHS); err != nil {
				return err
			}
			enqueue(p.RHS)
		}
	}
	return nil
}

// DefaultGrammar returns the built-in parametric tree grammar matching
// spec.md §4.1's table: X carries (length, radius, accumulated distance);
// "stop" rewrites to a single F; "extend" rewrites to F, a twist, and a
// continuing X with length scaled by 0.7 and radius tapered; "branch"
// additionally pushes a side branch before continuing the main axis,
// following the original source's MCTS_Parametric/ParametricLSystem.cpp
// getActions rule shapes.
func DefaultGrammar() *GrammarSpec {
	disc := DefaultDiscretization()
	g := NewGrammar([]SymbolTemplate{
		{Name: SymX, ParamExpr: func(*Symbol) []float64 { return []float64{1.0, 0.1, 0.0} }},
	}, disc)

	lengthOf := func(p *Symbol) float64 { return p.Parameters[0] }
	radiusOf := func(p *Symbol) float64 { return p.Parameters[1] }
	distOf := func(p *Symbol) float64 { return p.Parameters[2] }

	g.AddProduction(SymX, Production{
		Name: "stop",
		RHS: []SymbolTemplate{
			{Name: SymF, ParamExpr: func(p *Symbol) []float64 { return []float64{lengthOf(p), radiusOf(p)} }},
		},
	})
	g.AddProduction(SymX, Production{
		Name: "extend",
		RHS: []SymbolTemplate{
			{Name: SymF, ParamExpr: func(p *Symbol) []float64 { return []float64{lengthOf(p), radiusOf(p)} }},
			{Name: SymSlash},
			{Name: SymHash},
			{Name: SymX, ParamExpr: func(p *Symbol) []float64 {
				return []float64{lengthOf(p) * 0.7, radiusOf(p) * 0.85, distOf(p) + lengthOf(p)}
			}},
		},
	})
	g.AddProduction(SymX, Production{
		Name: "branch",
		RHS: []SymbolTemplate{
			{Name: SymF, ParamExpr: func(p *Symbol) []float64 { return []float64{lengthOf(p) * 0.5, radiusOf(p)} }},
			{Name: SymPush},
			{Name: SymPlus},
			{Name: SymX, ParamExpr: func(p *Symbol) []float64 {
				return []float64{lengthOf(p) * 0.7, radiusOf(p) * 0.7, distOf(p) + lengthOf(p)*0.5}
			}},
			{Name: SymPop},
			{Name: SymF, ParamExpr: func(p *Symbol) []float64 { return []float64{lengthOf(p) * 0.5, radiusOf(p)} }},
			{Name: SymSlash},
			{Name: SymHash},
			{Name: SymX, ParamExpr: func(p *Symbol) []float64 {
				return []float64{lengthOf(p) * 0.7, radiusOf(p) * 0.85, distOf(p) + lengthOf(p)}
			}},
		},
	})
	return g
}
