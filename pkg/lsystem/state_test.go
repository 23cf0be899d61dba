package lsystem

import "testing"

func TestNewStatePendingIsAxiomNonterminals(t *testing.T) {
	g := DefaultGrammar()
	s := NewState(g)
	if len(s.Pending) != 1 || s.Pending[0].Name != SymX {
		t.Fatalf("Pending = %v, want single X", s.Pending)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := DefaultGrammar()
	s := NewState(g)
	enum := NewGrammarActionEnumerator(g)

	clone := s.Clone()

	actions := enum.Enumerate(clone)
	if len(actions) == 0 {
		t.Fatal("expected at least one action for a fresh X head")
	}
	ApplyAction(clone, actions[0])

	if s.Complete() {
		t.Fatal("original state unexpectedly mutated by clone's ApplyAction")
	}
	if len(s.Pending) != 1 || s.Pending[0].Name != SymX {
		t.Fatalf("original Pending = %v, want untouched single X", s.Pending)
	}
	if clone.Pending[0] == s.Pending[0] {
		t.Fatal("clone shares symbol pointers with the original")
	}
}

func TestCloneRebuildsQueueInPreorder(t *testing.T) {
	g := DefaultGrammar()
	s := NewState(g)
	enum := NewGrammarActionEnumerator(g)

	// Apply the "branch" rule action to the root X, which should enqueue
	// every new non-terminal child in left-to-right order: the F, "+" and
	// side-branch X, then the main continuation's F, "/", "#" and X. The
	// structural "[" and "]" are terminal and never pending.
	var branch Action
	found := false
	for _, a := range enum.Enumerate(s) {
		if a.Kind == RuleAction && a.Production.Name == "branch" {
			branch = a
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected a branch action to be offered at the root")
	}
	ApplyAction(s, branch)

	clone := s.Clone()
	want := []string{SymF, SymPlus, SymX, SymF, SymSlash, SymHash, SymX}
	if len(clone.Pending) != len(want) {
		t.Fatalf("len(Pending) = %d, want %d", len(clone.Pending), len(want))
	}
	for i, sym := range clone.Pending {
		if sym.Name != want[i] {
			t.Fatalf("Pending[%d] = %q, want %q", i, sym.Name, want[i])
		}
	}
}

func TestApplyActionPopsHeadAndAppliesRule(t *testing.T) {
	g := DefaultGrammar()
	s := NewState(g)
	enum := NewGrammarActionEnumerator(g)

	actions := enum.Enumerate(s)
	var stop Action
	for _, a := range actions {
		if a.Kind == RuleAction && a.Production.Name == "stop" {
			stop = a
		}
	}
	rewritten := ApplyAction(s, stop)

	if !rewritten.Terminal {
		t.Fatal("rewritten symbol should be terminal after a rule action")
	}
	if len(rewritten.Children) != 1 || rewritten.Children[0].Name != SymF {
		t.Fatalf("Children = %v, want single F", rewritten.Children)
	}
	// The new F child still awaits a value action for its length/radius
	// scale factor, so it replaces X at the head of the pending queue
	// rather than completing the derivation.
	if s.Complete() {
		t.Fatal("state should not be complete: the new F child is pending a value action")
	}
	if len(s.Pending) != 1 || s.Pending[0] != rewritten.Children[0] {
		t.Fatalf("Pending = %v, want the new F child", s.Pending)
	}
}

func TestApplyValueResolvesFByScalingMean(t *testing.T) {
	g := DefaultGrammar()
	s := NewState(g)
	enum := NewGrammarActionEnumerator(g)

	var stop Action
	for _, a := range enum.Enumerate(s) {
		if a.Kind == RuleAction && a.Production.Name == "stop" {
			stop = a
		}
	}
	ApplyAction(s, stop)

	f := s.Head()
	if f == nil || f.Name != SymF {
		t.Fatalf("Head() = %v, want pending F", f)
	}
	before := append([]float64(nil), f.Parameters...)

	actions := enum.Enumerate(s)
	if len(actions) == 0 {
		t.Fatal("expected length-scale value actions for F")
	}
	ApplyAction(s, actions[0])

	if !f.Terminal || !f.ParametersDefined {
		t.Fatal("F should be terminal and resolved after its value action")
	}
	for i, p := range f.Parameters {
		want := before[i] * actions[0].Value
		if p != want {
			t.Fatalf("Parameters[%d] = %v, want %v (mean %v * scale %v)", i, p, want, before[i], actions[0].Value)
		}
	}
	if !s.Complete() {
		t.Fatalf("state should be complete once F resolves; got Pending=%v", s.Pending)
	}
}
