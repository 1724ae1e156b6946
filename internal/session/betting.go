package session

import "fmt"

// BetMode selects how the next round's wager is derived.
type BetMode string

const (
	// BetModeFixed wagers the base bet every round.
	BetModeFixed BetMode = "fixed"
	// BetModeHiLo scales the base bet with the prior round's true count.
	BetModeHiLo BetMode = "hi_lo"
)

// ParseBetMode parses a bet mode string. "hi-lo" is accepted as an alias
// for the canonical "hi_lo".
func ParseBetMode(s string) (BetMode, error) {
	switch s {
	case "fixed":
		return BetModeFixed, nil
	case "hi_lo", "hi-lo":
		return BetModeHiLo, nil
	default:
		return "", fmt.Errorf("unknown bet mode: %q", s)
	}
}

// NextBet computes the wager for the next round. In hi_lo mode the bet
// ramps with the prior round's true count: base × (1 + floor(tc)), clamped
// to maxMultiple × base. Non-positive true counts wager the base bet, so
// the result is always positive for a positive base.
//
// The true count used is the one standing after the previous round's
// resolution; it is never updated mid-round.
func NextBet(base float64, mode BetMode, priorTrueCount float64, maxMultiple int) float64 {
	if mode != BetModeHiLo || priorTrueCount <= 0 {
		return base
	}
	mult := 1 + int(priorTrueCount)
	if mult > maxMultiple {
		mult = maxMultiple
	}
	return base * float64(mult)
}
