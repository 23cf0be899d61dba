package lsystem

import (
	"errors"
	"testing"
)

func TestLookupDefaultReturnsIndependentGrammars(t *testing.T) {
	g1, err := Lookup("default")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	g2, err := Lookup("default")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if g1 == g2 {
		t.Fatal("Lookup returned the same *GrammarSpec pointer twice")
	}
}

func TestLookupUnknownNameReturnsInvalidGrammar(t *testing.T) {
	_, err := Lookup("no-such-grammar")
	if !errors.Is(err, ErrInvalidGrammar) {
		t.Fatalf("err = %v, want ErrInvalidGrammar", err)
	}
}

func TestNamesIncludesDefault(t *testing.T) {
	names := Names()
	found := false
	for _, n := range names {
		if n == "default" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Names() = %v, want to include \"default\"", names)
	}
}
