package counting

import (
	"testing"

	"github.com/cardcount/blackjacksim/internal/deck"
)

func TestHiLoValue(t *testing.T) {
	tests := []struct {
		card string
		want int
	}{
		{"2", 1}, {"3", 1}, {"4", 1}, {"5", 1}, {"6", 1},
		{"7", 0}, {"8", 0}, {"9", 0},
		{"10", -1}, {"J", -1}, {"Q", -1}, {"K", -1}, {"A", -1},
	}
	for _, tt := range tests {
		if got := HiLoValue(deck.MustParseCard(tt.card)); got != tt.want {
			t.Errorf("HiLoValue(%s) = %d, want %d", tt.card, got, tt.want)
		}
	}
}

func TestFullDeckIsBalanced(t *testing.T) {
	// Hi-Lo is a balanced count: a complete deck sums to zero.
	c := NewCounter()
	for _, rank := range deck.Ranks {
		for i := 0; i < 4; i++ {
			c.Observe(deck.NewCard(rank))
		}
	}
	if c.Running() != 0 {
		t.Errorf("full deck should sum to 0, got %d", c.Running())
	}
}

func TestObserveAndReset(t *testing.T) {
	c := NewCounter()
	for _, s := range []string{"2", "5", "K"} {
		c.Observe(deck.MustParseCard(s))
	}
	if c.Running() != 1 {
		t.Errorf("expected running count 1, got %d", c.Running())
	}
	c.Reset()
	if c.Running() != 0 {
		t.Errorf("reset should zero the count, got %d", c.Running())
	}
}

func TestTrueCount(t *testing.T) {
	tests := []struct {
		running        int
		decksRemaining float64
		want           float64
	}{
		{6, 2.9, 3},   // floor(2.9) = 2
		{6, 2.0, 3},   //
		{6, 0.4, 6},   // divisor floors at 1
		{6, 0.0, 6},   //
		{-4, 1.7, -4}, // negative counts divide the same way
		{0, 5.5, 0},
		{7, 3.2, 7.0 / 3},
	}
	for _, tt := range tests {
		c := &Counter{running: tt.running}
		if got := c.TrueCount(tt.decksRemaining); got != tt.want {
			t.Errorf("TrueCount(running=%d, decks=%v) = %v, want %v",
				tt.running, tt.decksRemaining, got, tt.want)
		}
	}
}
