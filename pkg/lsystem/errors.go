package lsystem

import "errors"

// ErrInvalidGrammar indicates the grammar contains a nonterminal with no
// productions, or a production references an undefined symbol name.
var ErrInvalidGrammar = errors.New("lsystem: invalid grammar")

// ErrEmptyActionSet indicates an enumerator produced no actions at all for
// a state whose derivation is not yet complete - a malformed grammar (e.g.
// a culling rule selects a production name the grammar never defined) with
// no defined recovery (spec.md §7). pkg/lsysmcts's driver surfaces this
// when a root advancement ends with no untried actions, no children, and
// an incomplete state, ending the current derivation early and returning
// its best-so-far result rather than looping forever with nothing to do.
var ErrEmptyActionSet = errors.New("lsystem: empty action set")
