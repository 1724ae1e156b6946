package deck

import (
	"errors"
	rand "math/rand/v2"
)

// CardsPerDeck is the number of cards contributed by one deck.
const CardsPerDeck = 52

// copiesPerRank is how many of each rank a single deck holds.
const copiesPerRank = 4

// ErrShoeEmpty is returned by Draw when no cards remain. Callers recover by
// reshuffling; the session layer never surfaces this to its caller.
var ErrShoeEmpty = errors.New("shoe is empty")

// Shoe holds the shuffled cards of one or more decks. Shuffle order comes
// from the injected generator, so a seeded generator yields a reproducible
// card sequence.
type Shoe struct {
	numDecks int
	cards    []Card
	rng      *rand.Rand
}

// NewShoe builds a shoe of numDecks decks, shuffled with rng.
func NewShoe(numDecks int, rng *rand.Rand) *Shoe {
	s := &Shoe{
		numDecks: numDecks,
		cards:    make([]Card, 0, numDecks*CardsPerDeck),
		rng:      rng,
	}
	s.Reshuffle()
	return s
}

// NumDecks returns the full-shoe deck count.
func (s *Shoe) NumDecks() int {
	return s.numDecks
}

// Reshuffle restores the full composition of the shoe and shuffles it.
func (s *Shoe) Reshuffle() {
	s.cards = s.cards[:0]
	for i := 0; i < s.numDecks*copiesPerRank; i++ {
		for _, rank := range Ranks {
			s.cards = append(s.cards, NewCard(rank))
		}
	}
	s.shuffle()
}

// shuffle randomizes the card order using Fisher-Yates.
func (s *Shoe) shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the top card.
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrShoeEmpty
	}
	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return card, nil
}

// Remaining returns the number of undrawn cards.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Capacity returns the number of cards in a freshly shuffled shoe.
func (s *Shoe) Capacity() int {
	return s.numDecks * CardsPerDeck
}

// DecksRemaining estimates how many decks are left in the shoe.
func (s *Shoe) DecksRemaining() float64 {
	return float64(len(s.cards)) / float64(CardsPerDeck)
}

// NeedsReshuffle reports whether the remaining cards have fallen to or below
// the penetration threshold, expressed as a fraction of the full shoe.
func (s *Shoe) NeedsReshuffle(threshold float64) bool {
	return float64(len(s.cards)) <= threshold*float64(s.Capacity())
}
