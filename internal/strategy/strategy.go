// Package strategy provides the closed set of player decision strategies.
//
// Each strategy implements game.Decider. The set is fixed at compile time;
// adding a strategy means adding a type here and registering it in New.
package strategy

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/cardcount/blackjacksim/internal/game"
)

// Registered strategy names.
const (
	Simplest = "simplest"
	Random   = "random"
	Basic    = "basic"
)

// New constructs the named strategy. The generator is the session's own;
// only the random strategy consumes it.
func New(name string, rng *rand.Rand) (game.Decider, error) {
	switch name {
	case Simplest:
		return NewSimplest(), nil
	case Random:
		return NewRandom(rng), nil
	case Basic:
		return NewBasic(), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", name)
	}
}

// Names returns the registered strategy names, sorted.
func Names() []string {
	names := []string{Simplest, Random, Basic}
	sort.Strings(names)
	return names
}

// IsKnown reports whether name is a registered strategy.
func IsKnown(name string) bool {
	switch name {
	case Simplest, Random, Basic:
		return true
	}
	return false
}
