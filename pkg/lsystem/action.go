package lsystem

// ActionKind distinguishes the two action families of spec.md §4.1.
type ActionKind int

const (
	// RuleAction replaces the head pending symbol with a production's
	// right-hand side.
	RuleAction ActionKind = iota
	// ValueAction assigns a numeric value to the head pending symbol's
	// parameter slot.
	ValueAction
)

// Action is one legal next move from a given state, as returned by an
// ActionEnumerator. Index is the action's 0-based position within the
// enumeration of its originating state - stable for that state because
// enumeration is deterministic (spec.md §8 invariant 6), and used by the
// search tree to identify "the same action" again when re-materializing a
// winning rollout (spec.md §4.3).
type Action struct {
	Index int
	Kind  ActionKind

	// Production is set for RuleAction; it names which of the head
	// symbol's productions to apply.
	Production Production

	// Value is set for ValueAction.
	Value float64
}

// ActionEnumerator returns the finite set of legal next actions for a
// state, keyed to its head pending symbol. Enumeration is deterministic:
// two calls for structurally-equal states return equal action lists in the
// same order (spec.md §8 invariant 6).
type ActionEnumerator interface {
	Enumerate(s *State) []Action
}

// GrammarActionEnumerator is the built-in enumerator: rule actions for
// nonterminals (culled by the grammar's Discretization), value actions for
// angle symbols and F's length/radius slot.
type GrammarActionEnumerator struct {
	Grammar *GrammarSpec
}

// NewGrammarActionEnumerator builds the default enumerator for a grammar.
func NewGrammarActionEnumerator(g *GrammarSpec) *GrammarActionEnumerator {
	return &GrammarActionEnumerator{Grammar: g}
}

// Enumerate implements ActionEnumerator.
func (e *GrammarActionEnumerator) Enumerate(s *State) []Action {
	head := s.Head()
	if head == nil {
		return nil
	}

	if IsNonterminal(head.Name) {
		return e.enumerateRules(head)
	}
	return e.enumerateValues(head)
}

// enumerateRules returns the rule actions offered for a nonterminal head,
// applying the culling rules of spec.md §4.1's table: beyond the maximum
// accumulated distance only "stop" is offered; below the base-part
// threshold only "extend" is offered; "branch" requires both a short-enough
// distance and a recursion level under the cap.
func (e *GrammarActionEnumerator) enumerateRules(head *Symbol) []Action {
	disc := e.Grammar.Discretization
	prods := e.Grammar.Productions(head.Name)

	dist := 0.0
	length := 0.0
	if len(head.Parameters) >= 3 {
		length = head.Parameters[0]
		dist = head.Parameters[2]
	}

	var names map[string]bool
	switch {
	case dist > disc.MaxAccumulatedDistance:
		names = map[string]bool{"stop": true}
	case length < disc.BasePartLength:
		names = map[string]bool{"extend": true}
	default:
		names = map[string]bool{"stop": true, "extend": true}
		if head.Depth < disc.MaxRecursionLevel {
			names["branch"] = true
		}
	}

	var actions []Action
	for _, p := range prods {
		if !names[p.Name] {
			continue
		}
		actions = append(actions, Action{
			Index:      len(actions),
			Kind:       RuleAction,
			Production: p,
		})
	}
	return actions
}

// enumerateValues returns the discretized value actions offered for a
// parameter-bearing terminal symbol's slot.
func (e *GrammarActionEnumerator) enumerateValues(head *Symbol) []Action {
	disc := e.Grammar.Discretization

	var choices []float64
	switch head.Name {
	case SymPlus, SymMinus:
		choices = disc.AngleChoicesDeg
	case SymSlash, SymBackslash:
		choices = disc.TwistChoicesDeg
	case SymHash:
		choices = disc.JitterChoicesDeg
	case SymF:
		// The value is a scale factor applied by ApplyAction to the
		// depth-dependent mean length/radius already stashed in
		// head.Parameters when the symbol was created, rather than an
		// absolute length - this keeps the enumerator independent of how
		// the mean itself was derived.
		choices = disc.LengthScaleMultiples
	default:
		return nil
	}

	actions := make([]Action, len(choices))
	for i, v := range choices {
		actions[i] = Action{Index: i, Kind: ValueAction, Value: v}
	}
	return actions
}
