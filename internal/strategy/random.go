package strategy

import (
	rand "math/rand/v2"

	"github.com/cardcount/blackjacksim/internal/deck"
	"github.com/cardcount/blackjacksim/internal/game"
)

// RandomStrategy samples uniformly among the actions legal for the current
// hand. It draws from the session's generator so seeded sessions replay
// identically.
type RandomStrategy struct {
	rng *rand.Rand
}

// NewRandom creates a random strategy backed by the given generator.
func NewRandom(rng *rand.Rand) *RandomStrategy {
	return &RandomStrategy{rng: rng}
}

func (s *RandomStrategy) Name() string {
	return Random
}

func (s *RandomStrategy) Decide(h *game.Hand, dealerUp deck.Card) game.Action {
	legal := game.LegalActions(h)
	return legal[s.rng.IntN(len(legal))]
}
