// Package statistics aggregates hand outcomes into summary statistics.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/cardcount/blackjacksim/internal/session"
)

// Statistics tracks profit-per-hand statistics for a batch of hand records.
type Statistics struct {
	Hands      int
	SumProfit  float64
	SumProfit2 float64   // Sum of squares for variance calculation
	Values     []float64 // All profits, for median/percentile calculation

	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	Busts      int
	Doubles    int
	Splits     int

	TotalWagered float64
}

// Add incorporates one hand record.
func (s *Statistics) Add(rec session.HandRecord) {
	s.Hands++
	s.SumProfit += rec.Profit
	s.SumProfit2 += rec.Profit * rec.Profit
	s.Values = append(s.Values, rec.Profit)
	s.TotalWagered += rec.BetAmount

	switch rec.Result {
	case "win":
		s.Wins++
	case "lose":
		s.Losses++
	case "push":
		s.Pushes++
	}
	if rec.Blackjack {
		s.Blackjacks++
	}
	if rec.Busted {
		s.Busts++
	}
	if rec.Doubled {
		s.Doubles++
	}
	if rec.SplitHand {
		s.Splits++
	}
}

// AddAll incorporates a slice of hand records.
func (s *Statistics) AddAll(recs []session.HandRecord) {
	for _, rec := range recs {
		s.Add(rec)
	}
}

// NetProfit returns the total profit over all hands.
func (s *Statistics) NetProfit() float64 {
	return s.SumProfit
}

// Mean returns the arithmetic mean profit per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumProfit / float64(s.Hands)
}

// Variance returns the sample variance of profit per hand.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumProfit2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of hands won.
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Hands)
}

// Median returns the median profit per hand.
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0).
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks internal consistency of the tallies.
func (s *Statistics) Validate() error {
	if s.Hands < 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if s.Wins+s.Losses+s.Pushes != s.Hands {
		return fmt.Errorf("outcome tallies (%d win + %d lose + %d push) do not sum to hands (%d)",
			s.Wins, s.Losses, s.Pushes, s.Hands)
	}
	if s.Blackjacks > s.Wins+s.Pushes {
		return fmt.Errorf("blackjacks (%d) exceed wins+pushes (%d)", s.Blackjacks, s.Wins+s.Pushes)
	}
	return nil
}
