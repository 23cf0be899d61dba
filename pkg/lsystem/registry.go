package lsystem

import "fmt"

// registry maps a grammar's configuration-facing name to its constructor.
// Exported only through Lookup/Names so new grammars are added by
// registering here rather than by branching on string names elsewhere.
var registry = map[string]func() *GrammarSpec{
	"default": DefaultGrammar,
}

// Lookup returns a fresh GrammarSpec for the given registered name. Each
// call constructs a new spec so callers never share mutable grammar state.
func Lookup(name string) (*GrammarSpec, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown grammar %q", ErrInvalidGrammar, name)
	}
	return ctor(), nil
}

// Names returns the registered grammar names, for CLI listing.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
