package strategy

import (
	"github.com/cardcount/blackjacksim/internal/deck"
	"github.com/cardcount/blackjacksim/internal/game"
)

// SimplestStrategy stands on hard 17 or better and hits everything else.
// It never doubles or splits, so no downgrade can ever apply to it.
type SimplestStrategy struct{}

// NewSimplest creates the simplest strategy.
func NewSimplest() *SimplestStrategy {
	return &SimplestStrategy{}
}

func (s *SimplestStrategy) Name() string {
	return Simplest
}

func (s *SimplestStrategy) Decide(h *game.Hand, dealerUp deck.Card) game.Action {
	value, soft := h.Total()
	if value >= 17 && !soft {
		return game.Stand
	}
	return game.Hit
}
