package lsystem

import "math/rand"

// ApplyAction applies action to the head of state's pending queue, mutating
// state in place, and returns the symbol that the head was rewritten or
// resolved into (the rewritten symbol itself, for callers that want to
// inspect its new Children). ApplyAction never fails: action enumeration
// and application are pure (spec.md §7); callers are responsible for only
// ever applying actions returned by an ActionEnumerator for this exact
// state.
func ApplyAction(state *State, action Action) *Symbol {
	head := state.popHead()

	switch action.Kind {
	case RuleAction:
		applyRule(state, head, action.Production)
	case ValueAction:
		applyValue(head, action.Value)
	}
	return head
}

// applyRule rewrites head into action's production, instantiating each
// right-hand-side template against head's resolved parameters and
// enqueuing the new non-terminal children at the tail of the pending queue
// in left-to-right order (spec.md §4.1).
func applyRule(state *State, head *Symbol, p Production) {
	head.Terminal = true
	head.Children = make([]*Symbol, len(p.RHS))
	for i, t := range p.RHS {
		child := buildSymbol(t, head)
		head.Children[i] = child
		if !child.Terminal {
			state.pushTail(child)
		}
	}
}

// applyValue resolves a parameter-bearing symbol's slot. For "F" symbols
// the action's value is a scale factor applied to the depth-dependent mean
// length/radius already present in head.Parameters (see
// GrammarActionEnumerator.enumerateValues); for angle/twist/jitter symbols
// the value is the chosen angle in degrees.
func applyValue(head *Symbol, value float64) {
	switch head.Name {
	case SymF:
		for i := range head.Parameters {
			head.Parameters[i] *= value
		}
	default:
		head.Parameters = []float64{value}
	}
	head.ParametersDefined = true
	head.Terminal = true
}

// buildSymbol instantiates one right-hand-side template against the parent
// symbol being rewritten, applying the Terminal/ParametersDefined rules
// described in symbol.go: structural stack symbols are immediately
// terminal; X is a fresh pending nonterminal; parameter-bearing symbols
// (F and the angle family) start with any arithmetically-propagated stub
// values but remain pending until a value action resolves them.
func buildSymbol(t SymbolTemplate, parent *Symbol) *Symbol {
	s := &Symbol{Name: t.Name, Depth: parent.Depth + 1}
	if t.ParamExpr != nil {
		s.Parameters = t.ParamExpr(parent)
	}

	switch {
	case !HasParameterSlot(t.Name):
		// Structural symbols ("[", "]") carry no parameters and need no
		// action at all.
		s.Terminal = true
		s.ParametersDefined = true
	case IsNonterminal(t.Name):
		// X is rewritten entirely by a rule action; its own parameters
		// (length, radius, accumulated distance) are already resolved by
		// ParamExpr and never revisited by a value action.
		s.ParametersDefined = true
	default:
		// F and the angle/twist/jitter family await a value action.
		s.ParametersDefined = false
	}
	return s
}

// RandomDerive repeatedly pops the head of state's pending queue and
// applies a uniformly-random action from enumerator until either the queue
// empties or maxSteps additional actions have been applied, whichever comes
// first (spec.md §4.1's rollout termination rule). It mutates state in
// place and returns the sequence of chosen action indices, one per applied
// action, in application order - the derivation history needed to
// re-materialize a winning rollout into the search tree (spec.md §4.3).
//
// If the enumerator ever returns no actions for a non-empty queue (should
// not happen for a well-formed grammar, but spec.md §7 requires rollouts
// never to fail), the rollout simply ends and the partial derivation is
// returned for evaluation.
func RandomDerive(state *State, enumerator ActionEnumerator, rng *rand.Rand, maxSteps int) []int {
	history := make([]int, 0, maxSteps)
	for step := 0; step < maxSteps; step++ {
		if state.Complete() {
			break
		}
		actions := enumerator.Enumerate(state)
		if len(actions) == 0 {
			break
		}
		chosen := actions[rng.Intn(len(actions))]
		ApplyAction(state, chosen)
		history = append(history, chosen.Index)
	}
	return history
}
