// Package counting maintains the Hi-Lo running count for a shoe.
//
// Every card revealed during play is observed exactly once, in deal order,
// so strategy and bet-sizing decisions always see a count current as of the
// cards already on the table. The count resets whenever the shoe is
// reshuffled.
package counting

import "github.com/cardcount/blackjacksim/internal/deck"

// HiLoValue returns the Hi-Lo delta for a rank: +1 for 2-6, 0 for 7-9,
// -1 for 10/J/Q/K/A.
func HiLoValue(card deck.Card) int {
	switch {
	case card.Rank >= deck.Two && card.Rank <= deck.Six:
		return 1
	case card.Rank >= deck.Seven && card.Rank <= deck.Nine:
		return 0
	default:
		return -1
	}
}

// Counter accumulates the running Hi-Lo count. A Counter belongs to exactly
// one session and is never shared.
type Counter struct {
	running int
}

// NewCounter returns a zeroed counter.
func NewCounter() *Counter {
	return &Counter{}
}

// Observe updates the running count for one revealed card.
func (c *Counter) Observe(card deck.Card) {
	c.running += HiLoValue(card)
}

// Running returns the current running count.
func (c *Counter) Running() int {
	return c.running
}

// TrueCount normalizes the running count by estimated decks remaining,
// rounded down to whole decks with a floor of 1 to avoid division blow-up
// near the end of the shoe.
func (c *Counter) TrueCount(decksRemaining float64) float64 {
	decks := int(decksRemaining)
	if decks < 1 {
		decks = 1
	}
	return float64(c.running) / float64(decks)
}

// Reset zeroes the running count. Called whenever the shoe reshuffles.
func (c *Counter) Reset() {
	c.running = 0
}
