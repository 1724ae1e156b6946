package deck

import "fmt"

// Rank represents a card rank. Suits are not modeled: the shoe tracks four
// copies of each rank per deck, which preserves draw probabilities exactly.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank once, in ascending order.
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Card is a suitless playing card.
type Card struct {
	Rank Rank
}

// NewCard creates a card of the given rank.
func NewCard(rank Rank) Card {
	return Card{Rank: rank}
}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// String returns the string representation of a card (e.g., "K" or "10")
func (c Card) String() string {
	return c.Rank.String()
}

// Value returns the blackjack value of the card. Aces count as 11 here;
// the hand evaluator demotes them to 1 as needed.
func (c Card) Value() int {
	switch {
	case c.Rank == Ace:
		return 11
	case c.Rank >= Ten:
		return 10
	default:
		return int(c.Rank)
	}
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// ParseCard parses a rank string like "A", "7" or "10" into a Card.
func ParseCard(s string) (Card, error) {
	switch s {
	case "2":
		return NewCard(Two), nil
	case "3":
		return NewCard(Three), nil
	case "4":
		return NewCard(Four), nil
	case "5":
		return NewCard(Five), nil
	case "6":
		return NewCard(Six), nil
	case "7":
		return NewCard(Seven), nil
	case "8":
		return NewCard(Eight), nil
	case "9":
		return NewCard(Nine), nil
	case "10", "T", "t":
		return NewCard(Ten), nil
	case "J", "j":
		return NewCard(Jack), nil
	case "Q", "q":
		return NewCard(Queen), nil
	case "K", "k":
		return NewCard(King), nil
	case "A", "a":
		return NewCard(Ace), nil
	default:
		return Card{}, fmt.Errorf("invalid card rank: %q", s)
	}
}

// MustParseCard parses a rank string and panics on failure. Test helper.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MustParseCards parses a space-separated list of ranks. Test helper.
func MustParseCards(s string) []Card {
	var cards []Card
	start := -1
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ' ' {
			if start >= 0 {
				cards = append(cards, MustParseCard(s[start:i]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return cards
}
