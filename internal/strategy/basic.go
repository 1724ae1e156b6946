package strategy

import (
	"github.com/cardcount/blackjacksim/internal/deck"
	"github.com/cardcount/blackjacksim/internal/game"
)

// BasicStrategy is a table-driven simplified basic strategy covering pairs,
// soft totals and hard totals. It checks doubling legality itself, so it
// never triggers the engine's downgrade path.
type BasicStrategy struct{}

// NewBasic creates the basic strategy.
func NewBasic() *BasicStrategy {
	return &BasicStrategy{}
}

func (s *BasicStrategy) Name() string {
	return Basic
}

func (s *BasicStrategy) Decide(h *game.Hand, dealerUp deck.Card) game.Action {
	dealer := dealerUp.Value()

	if h.CanSplit() {
		if a, ok := s.pairAction(h, dealer); ok {
			return a
		}
	}

	value, soft := h.Total()
	if soft {
		return s.softAction(h, value, dealer)
	}
	return s.hardAction(h, value, dealer)
}

// pairAction decides split opportunities. Pairs are keyed by card value, so
// any two ten-value cards play as a pair of tens. The second return is
// false when the pair table defers to the total tables.
func (s *BasicStrategy) pairAction(h *game.Hand, dealer int) (game.Action, bool) {
	if h.Cards[0].IsAce() {
		return game.Split, true
	}
	switch h.Cards[0].Value() {
	case 10:
		return game.Stand, true
	case 9:
		if dealer >= 2 && dealer <= 9 && dealer != 7 {
			return game.Split, true
		}
		return game.Stand, true
	case 8:
		return game.Split, true
	case 7:
		if dealer >= 2 && dealer <= 7 {
			return game.Split, true
		}
		return game.Hit, true
	case 6:
		if dealer >= 2 && dealer <= 6 {
			return game.Split, true
		}
		return game.Hit, true
	case 5:
		// A pair of fives plays as a hard 10, never splits.
		if dealer >= 2 && dealer <= 9 && h.CanDouble() {
			return game.Double, true
		}
		return game.Hit, true
	case 4:
		if dealer >= 5 && dealer <= 6 {
			return game.Split, true
		}
		return game.Hit, true
	case 2, 3:
		if dealer >= 2 && dealer <= 7 {
			return game.Split, true
		}
		return game.Hit, true
	}
	return game.Stand, false
}

func (s *BasicStrategy) softAction(h *game.Hand, value, dealer int) game.Action {
	switch value {
	case 20, 21:
		return game.Stand
	case 19:
		if dealer == 6 && h.CanDouble() {
			return game.Double
		}
		return game.Stand
	case 18:
		if dealer >= 2 && dealer <= 6 && h.CanDouble() {
			return game.Double
		}
		if dealer >= 9 {
			return game.Hit
		}
		return game.Stand
	case 17:
		if dealer >= 3 && dealer <= 6 && h.CanDouble() {
			return game.Double
		}
		return game.Hit
	case 15, 16:
		if dealer >= 4 && dealer <= 6 && h.CanDouble() {
			return game.Double
		}
		return game.Hit
	case 13, 14:
		if dealer >= 5 && dealer <= 6 && h.CanDouble() {
			return game.Double
		}
		return game.Hit
	default:
		return game.Hit
	}
}

func (s *BasicStrategy) hardAction(h *game.Hand, value, dealer int) game.Action {
	switch {
	case value >= 17:
		return game.Stand
	case value >= 13:
		if dealer < 7 {
			return game.Stand
		}
		return game.Hit
	case value == 12:
		if dealer >= 4 && dealer <= 6 {
			return game.Stand
		}
		return game.Hit
	case value == 11:
		if h.CanDouble() {
			return game.Double
		}
		return game.Hit
	case value == 10:
		if dealer <= 9 && h.CanDouble() {
			return game.Double
		}
		return game.Hit
	case value == 9:
		if dealer >= 3 && dealer <= 6 && h.CanDouble() {
			return game.Double
		}
		return game.Hit
	default:
		return game.Hit
	}
}
