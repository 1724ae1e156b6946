package game

import "github.com/cardcount/blackjacksim/internal/deck"

// Hand is one player or dealer hand, with its wager and action trail.
// The total is always recomputed from the cards, never cached.
type Hand struct {
	Cards     []deck.Card
	Wager     float64
	Doubled   bool
	SplitHand bool // derived from a split
	Actions   []string
}

// NewHand creates a hand with the given wager and initial cards.
func NewHand(wager float64, cards ...deck.Card) *Hand {
	h := &Hand{Wager: wager}
	h.Cards = append(h.Cards, cards...)
	return h
}

// AddCard appends one card to the hand.
func (h *Hand) AddCard(c deck.Card) {
	h.Cards = append(h.Cards, c)
}

// Total computes the blackjack value of the hand. Aces count as 11, then
// are demoted to 1 one at a time while the hand would bust. soft is true
// iff an Ace is still counted as 11 after normalization.
func (h *Hand) Total() (value int, soft bool) {
	aces := 0
	for _, c := range h.Cards {
		value += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value, aces > 0
}

// Value returns the hand total, ignoring softness.
func (h *Hand) Value() int {
	v, _ := h.Total()
	return v
}

// IsBlackjack reports a natural: exactly two cards totaling 21 on a hand
// that was not derived from a split.
func (h *Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && !h.SplitHand && h.Value() == 21
}

// IsBust reports whether the hand total exceeds 21 after normalization.
func (h *Hand) IsBust() bool {
	return h.Value() > 21
}

// CanDouble reports whether doubling is legal: the first decision on a
// two-card hand that is not split-derived.
func (h *Hand) CanDouble() bool {
	return len(h.Cards) == 2 && !h.Doubled && !h.SplitHand
}

// CanSplit reports whether splitting is legal: a two-card hand whose cards
// have equal rank value (so e.g. K-10 splits like 10-10).
func (h *Hand) CanSplit() bool {
	return len(h.Cards) == 2 && h.Cards[0].Value() == h.Cards[1].Value()
}

// CardStrings returns the hand's card ranks as strings, in deal order.
func (h *Hand) CardStrings() []string {
	out := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		out[i] = c.String()
	}
	return out
}

// recordAction appends an action name to the trail.
func (h *Hand) recordAction(a Action) {
	h.Actions = append(h.Actions, a.String())
}
