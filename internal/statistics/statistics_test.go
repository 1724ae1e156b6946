package statistics

import (
	"math"
	"testing"

	"github.com/cardcount/blackjacksim/internal/session"
)

func rec(result string, profit, bet float64) session.HandRecord {
	return session.HandRecord{Result: result, Profit: profit, BetAmount: bet}
}

func TestAddAndTallies(t *testing.T) {
	s := &Statistics{}
	s.AddAll([]session.HandRecord{
		rec("win", 10, 10),
		rec("win", 15, 10),
		rec("lose", -10, 10),
		rec("push", 0, 10),
	})

	if s.Hands != 4 {
		t.Fatalf("expected 4 hands, got %d", s.Hands)
	}
	if s.Wins != 2 || s.Losses != 1 || s.Pushes != 1 {
		t.Errorf("tallies wrong: %d/%d/%d", s.Wins, s.Losses, s.Pushes)
	}
	if s.NetProfit() != 15 {
		t.Errorf("net profit = %v, want 15", s.NetProfit())
	}
	if s.TotalWagered != 40 {
		t.Errorf("total wagered = %v, want 40", s.TotalWagered)
	}
	if got := s.WinRate(); got != 0.5 {
		t.Errorf("win rate = %v, want 0.5", got)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("consistent statistics failed validation: %v", err)
	}
}

func TestFlagCounters(t *testing.T) {
	s := &Statistics{}
	blackjack := rec("win", 15, 10)
	blackjack.Blackjack = true
	bust := rec("lose", -10, 10)
	bust.Busted = true
	doubled := rec("win", 20, 20)
	doubled.Doubled = true
	split := rec("lose", -10, 10)
	split.SplitHand = true
	s.AddAll([]session.HandRecord{blackjack, bust, doubled, split})

	if s.Blackjacks != 1 || s.Busts != 1 || s.Doubles != 1 || s.Splits != 1 {
		t.Errorf("flag counters wrong: bj=%d bust=%d dbl=%d split=%d",
			s.Blackjacks, s.Busts, s.Doubles, s.Splits)
	}
}

func TestMeanVarianceStdError(t *testing.T) {
	s := &Statistics{}
	for _, p := range []float64{10, -10, 10, -10} {
		result := "win"
		if p < 0 {
			result = "lose"
		}
		s.Add(rec(result, p, 10))
	}

	if got := s.Mean(); got != 0 {
		t.Errorf("mean = %v, want 0", got)
	}
	// Sample variance of {10,-10,10,-10} is 400/3.
	if got := s.Variance(); math.Abs(got-400.0/3) > 1e-9 {
		t.Errorf("variance = %v, want %v", got, 400.0/3)
	}
	if got := s.StdError(); math.Abs(got-s.StdDev()/2) > 1e-9 {
		t.Errorf("stderr = %v, want stddev/sqrt(4)", got)
	}

	low, high := s.ConfidenceInterval95()
	if low >= high {
		t.Errorf("CI bounds inverted: [%v, %v]", low, high)
	}
	if math.Abs((high+low)/2-s.Mean()) > 1e-9 {
		t.Errorf("CI should be centered on the mean")
	}
}

func TestMedianAndPercentile(t *testing.T) {
	s := &Statistics{}
	for _, p := range []float64{-10, 0, 10, 20} {
		s.Add(rec("push", p, 10))
	}

	if got := s.Median(); got != 5 {
		t.Errorf("median = %v, want 5", got)
	}
	if got := s.Percentile(0); got != -10 {
		t.Errorf("P0 = %v, want -10", got)
	}
	if got := s.Percentile(1); got != 20 {
		t.Errorf("P100 = %v, want 20", got)
	}
	if got := s.Percentile(0.5); got != 5 {
		t.Errorf("P50 = %v, want 5", got)
	}
}

func TestEmptyStatistics(t *testing.T) {
	s := &Statistics{}
	if s.Mean() != 0 || s.Median() != 0 || s.StdDev() != 0 || s.WinRate() != 0 {
		t.Error("empty statistics should report zeros")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("empty statistics should validate: %v", err)
	}
}

func TestValidateCatchesInconsistency(t *testing.T) {
	s := &Statistics{}
	s.Add(rec("win", 10, 10))
	s.Wins = 0 // corrupt the tally
	if err := s.Validate(); err == nil {
		t.Error("validation should catch outcome tallies not summing to hands")
	}

	s2 := &Statistics{Hands: 2, Wins: 2, Values: []float64{1}}
	if err := s2.Validate(); err == nil {
		t.Error("validation should catch values/hands mismatch")
	}
}
