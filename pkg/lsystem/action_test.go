package lsystem

import "testing"

func TestEnumerateRulesAtRootOffersStopExtendBranch(t *testing.T) {
	g := DefaultGrammar()
	s := NewState(g)
	enum := NewGrammarActionEnumerator(g)

	actions := enum.Enumerate(s)
	names := map[string]bool{}
	for _, a := range actions {
		if a.Kind != RuleAction {
			t.Fatalf("action %+v is not a RuleAction at a fresh X head", a)
		}
		names[a.Production.Name] = true
	}
	for _, want := range []string{"stop", "extend", "branch"} {
		if !names[want] {
			t.Fatalf("missing %q among root actions %v", want, names)
		}
	}
}

func TestEnumerateRulesCullsBeyondMaxAccumulatedDistance(t *testing.T) {
	g := DefaultGrammar()
	enum := NewGrammarActionEnumerator(g)

	over := &Symbol{
		Name:       SymX,
		Parameters: []float64{1.0, 0.1, g.Discretization.MaxAccumulatedDistance + 1},
	}
	s := &State{Tree: &DerivationTree{Roots: []*Symbol{over}}, Pending: []*Symbol{over}}

	actions := enum.Enumerate(s)
	if len(actions) != 1 || actions[0].Production.Name != "stop" {
		t.Fatalf("actions = %v, want only stop beyond max accumulated distance", actions)
	}
}

func TestEnumerateRulesCullsBelowBaseLength(t *testing.T) {
	g := DefaultGrammar()
	enum := NewGrammarActionEnumerator(g)

	short := &Symbol{
		Name:       SymX,
		Parameters: []float64{g.Discretization.BasePartLength / 2, 0.1, 0},
	}
	s := &State{Tree: &DerivationTree{Roots: []*Symbol{short}}, Pending: []*Symbol{short}}

	actions := enum.Enumerate(s)
	if len(actions) != 1 || actions[0].Production.Name != "extend" {
		t.Fatalf("actions = %v, want only extend below base length", actions)
	}
}

func TestEnumerateRulesCullsBranchPastMaxRecursionLevel(t *testing.T) {
	g := DefaultGrammar()
	enum := NewGrammarActionEnumerator(g)

	deep := &Symbol{
		Name:       SymX,
		Depth:      g.Discretization.MaxRecursionLevel,
		Parameters: []float64{1.0, 0.1, 0},
	}
	s := &State{Tree: &DerivationTree{Roots: []*Symbol{deep}}, Pending: []*Symbol{deep}}

	actions := enum.Enumerate(s)
	for _, a := range actions {
		if a.Production.Name == "branch" {
			t.Fatalf("branch offered at depth %d (cap %d)", deep.Depth, g.Discretization.MaxRecursionLevel)
		}
	}
}

func TestEnumerateValuesForAngleSymbol(t *testing.T) {
	g := DefaultGrammar()
	enum := NewGrammarActionEnumerator(g)

	plus := &Symbol{Name: SymPlus}
	s := &State{Tree: &DerivationTree{Roots: []*Symbol{plus}}, Pending: []*Symbol{plus}}

	actions := enum.Enumerate(s)
	if len(actions) != len(g.Discretization.AngleChoicesDeg) {
		t.Fatalf("len(actions) = %d, want %d", len(actions), len(g.Discretization.AngleChoicesDeg))
	}
	for i, a := range actions {
		if a.Kind != ValueAction || a.Value != g.Discretization.AngleChoicesDeg[i] {
			t.Fatalf("actions[%d] = %+v, want ValueAction %v", i, a, g.Discretization.AngleChoicesDeg[i])
		}
	}
}

func TestEnumerateIsDeterministicAndPure(t *testing.T) {
	g := DefaultGrammar()
	s := NewState(g)
	enum := NewGrammarActionEnumerator(g)

	first := enum.Enumerate(s)
	second := enum.Enumerate(s)

	if len(first) != len(second) {
		t.Fatalf("len(first)=%d, len(second)=%d, want equal", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.Index != b.Index || a.Kind != b.Kind || a.Production.Name != b.Production.Name || len(a.Production.RHS) != len(b.Production.RHS) || a.Value != b.Value {
			t.Fatalf("actions[%d] differ between calls: %+v vs %+v", i, first[i], second[i])
		}
	}
	if !s.Complete() && len(s.Pending) != 1 {
		t.Fatal("Enumerate must not mutate the state it inspects")
	}
}

func TestEnumerateReturnsNilOnCompleteState(t *testing.T) {
	g := axiomOnlyGrammar()
	s := NewState(g)
	enum := NewGrammarActionEnumerator(g)

	if actions := enum.Enumerate(s); actions != nil {
		t.Fatalf("Enumerate() = %v, want nil for a complete state", actions)
	}
}
