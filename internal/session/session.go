// Package session drives complete simulation sessions: it owns the shoe,
// the Hi-Lo counter, the per-session generator and the bankroll, and runs
// rounds sequentially through the game engine. Sessions share no mutable
// state, so independent sessions may run in parallel.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/cardcount/blackjacksim/internal/counting"
	"github.com/cardcount/blackjacksim/internal/deck"
	"github.com/cardcount/blackjacksim/internal/game"
	"github.com/cardcount/blackjacksim/internal/matchid"
	"github.com/cardcount/blackjacksim/internal/randutil"
	"github.com/cardcount/blackjacksim/internal/strategy"
)

const (
	// MinDecks and MaxDecks bound the shoe size.
	MinDecks = 1
	MaxDecks = 8

	// DefaultMaxBetMultiple caps the hi_lo bet ramp at 5x the base bet.
	DefaultMaxBetMultiple = 5

	// DefaultReshuffleThreshold reshuffles between rounds once 25% or
	// fewer of the shoe's cards remain.
	DefaultReshuffleThreshold = 0.25
)

// ErrSessionConsumed is returned by Run on a session that already ran.
// Re-running would continue from a depleted shoe and a warm generator,
// silently breaking seed reproducibility, so it fails fast instead.
var ErrSessionConsumed = errors.New("session already run: create a new session to replay a seed")

// ConfigError reports a configuration value rejected before any simulation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Config holds everything needed to run a session.
type Config struct {
	Rounds   int
	NumDecks int
	BaseBet  float64
	Strategy string
	BetMode  BetMode

	// Seed makes the whole session reproducible: shuffle order, random
	// strategy choices and the match id. Nil means a wall-clock seed.
	Seed *int64

	// MaxBetMultiple caps the hi_lo ramp. Zero means DefaultMaxBetMultiple.
	MaxBetMultiple int

	// ReshuffleThreshold is the between-rounds penetration limit as a
	// fraction of the full shoe. Zero means DefaultReshuffleThreshold.
	ReshuffleThreshold float64

	// Rules are the house rules; the zero value means game.DefaultRules.
	Rules game.Rules

	Logger *log.Logger

	// OnRound, if set, is called after each completed round.
	OnRound func(completed int)

	// OnRecord, if set, receives each hand record as it is settled, in
	// order. Used by callers that stream results.
	OnRecord func(rec HandRecord)
}

func (c *Config) validate() error {
	if c.Rounds < 1 {
		return &ConfigError{Field: "rounds", Reason: fmt.Sprintf("must be at least 1, got %d", c.Rounds)}
	}
	if c.NumDecks < MinDecks || c.NumDecks > MaxDecks {
		return &ConfigError{Field: "num_decks", Reason: fmt.Sprintf("must be between %d and %d, got %d", MinDecks, MaxDecks, c.NumDecks)}
	}
	if c.BaseBet <= 0 {
		return &ConfigError{Field: "base_bet", Reason: fmt.Sprintf("must be positive, got %v", c.BaseBet)}
	}
	if !strategy.IsKnown(c.Strategy) {
		return &ConfigError{Field: "strategy", Reason: fmt.Sprintf("unknown strategy %q", c.Strategy)}
	}
	if c.BetMode != BetModeFixed && c.BetMode != BetModeHiLo {
		return &ConfigError{Field: "bet_mode", Reason: fmt.Sprintf("unknown bet mode %q", c.BetMode)}
	}
	return nil
}

// Session owns a shoe, a counter, a generator and a bankroll for one
// sequence of rounds. Rounds run strictly sequentially because each bet
// depends on the count left by the previous round.
type Session struct {
	id       string
	cfg      Config
	seed     int64
	rng      *rand.Rand
	shoe     *deck.Shoe
	counter  *counting.Counter
	strat    game.Decider
	engine   *game.Engine
	prevTrue float64
	bankroll float64
	consumed bool
}

// New validates the configuration and builds a ready-to-run session. All
// configuration errors are reported here; Run itself cannot fail on input.
func New(cfg Config) (*Session, error) {
	if cfg.MaxBetMultiple == 0 {
		cfg.MaxBetMultiple = DefaultMaxBetMultiple
	}
	if cfg.ReshuffleThreshold == 0 {
		cfg.ReshuffleThreshold = DefaultReshuffleThreshold
	}
	if cfg.Rules.BlackjackPayout == 0 {
		cfg.Rules.BlackjackPayout = game.DefaultRules().BlackjackPayout
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.MaxBetMultiple < 1 {
		return nil, &ConfigError{Field: "max_bet_multiple", Reason: fmt.Sprintf("must be at least 1, got %d", cfg.MaxBetMultiple)}
	}

	seed := randutil.TimeSeed()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	rng := randutil.New(seed)

	strat, err := strategy.New(cfg.Strategy, rng)
	if err != nil {
		return nil, &ConfigError{Field: "strategy", Reason: err.Error()}
	}

	counter := counting.NewCounter()
	shoe := deck.NewShoe(cfg.NumDecks, rng)
	source := &countingSource{shoe: shoe, counter: counter, logger: cfg.Logger}

	return &Session{
		id:      matchid.NewGenerator(intnSource{rng}).Generate(),
		cfg:     cfg,
		seed:    seed,
		rng:     rng,
		shoe:    shoe,
		counter: counter,
		strat:   strat,
		engine:  game.NewEngine(source, cfg.Rules, cfg.Logger),
	}, nil
}

// ID returns the match identifier. Deterministic for seeded sessions.
func (s *Session) ID() string {
	return s.id
}

// Seed returns the seed the session runs under, wall-clock derived if none
// was configured, so any session can be replayed.
func (s *Session) Seed() int64 {
	return s.seed
}

// Bankroll returns the cumulative profit of all settled hands so far.
func (s *Session) Bankroll() float64 {
	return s.bankroll
}

// Run simulates the configured number of rounds and returns one record per
// settled player hand. The loop is cancellable: on context cancellation the
// records of all completed rounds are returned alongside ctx.Err(), and
// they are valid partial results.
//
// A session runs at most once; see ErrSessionConsumed.
func (s *Session) Run(ctx context.Context) ([]HandRecord, error) {
	if s.consumed {
		return nil, ErrSessionConsumed
	}
	s.consumed = true

	records := make([]HandRecord, 0, s.cfg.Rounds)
	for round := 1; round <= s.cfg.Rounds; round++ {
		select {
		case <-ctx.Done():
			return records, ctx.Err()
		default:
		}

		if s.shoe.NeedsReshuffle(s.cfg.ReshuffleThreshold) {
			s.shoe.Reshuffle()
			s.counter.Reset()
			s.prevTrue = 0
		}

		wager := NextBet(s.cfg.BaseBet, s.cfg.BetMode, s.prevTrue, s.cfg.MaxBetMultiple)
		result := s.engine.PlayRound(s.strat, wager)

		running := s.counter.Running()
		trueEnd := s.counter.TrueCount(s.shoe.DecksRemaining())
		for i, hr := range result.Hands {
			rec := s.record(round, i+1, result.Dealer, hr, running, trueEnd)
			records = append(records, rec)
			s.bankroll += hr.Profit
			if s.cfg.OnRecord != nil {
				s.cfg.OnRecord(rec)
			}
		}
		s.prevTrue = trueEnd

		if s.cfg.OnRound != nil {
			s.cfg.OnRound(round)
		}
	}
	return records, nil
}

func (s *Session) record(round, handNo int, dealer *game.Hand, hr game.HandResult, running int, trueEnd float64) HandRecord {
	return HandRecord{
		MatchID:         s.id,
		RoundID:         round,
		HandNumber:      handNo,
		PlayerCards:     hr.Hand.CardStrings(),
		DealerCards:     dealer.CardStrings(),
		DealerUpCard:    dealer.Cards[0].String(),
		Actions:         append([]string{}, hr.Hand.Actions...),
		BetAmount:       hr.Hand.Wager,
		Result:          hr.Outcome.String(),
		Profit:          hr.Profit,
		Blackjack:       hr.Blackjack,
		Busted:          hr.Busted,
		Doubled:         hr.Hand.Doubled,
		SplitHand:       hr.Hand.SplitHand,
		Strategy:        s.strat.Name(),
		BetMode:         string(s.cfg.BetMode),
		TrueCountPrev:   s.prevTrue,
		RunningCountEnd: running,
		TrueCountEnd:    trueEnd,
		CardsRemaining:  s.shoe.Remaining(),
		DecksRemaining:  s.shoe.DecksRemaining(),
	}
}

// Simulate runs one fresh session to completion. This is the library entry
// point for the surrounding service.
func Simulate(ctx context.Context, cfg Config) ([]HandRecord, error) {
	s, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx)
}

// ListStrategies returns the registered strategy names.
func ListStrategies() []string {
	return strategy.Names()
}

// countingSource draws from the shoe, observing every card in deal order so
// counts are current before the next decision. An empty shoe mid-round is
// recoverable: reshuffle, reset the count, and keep dealing.
type countingSource struct {
	shoe    *deck.Shoe
	counter *counting.Counter
	logger  *log.Logger
}

func (cs *countingSource) Draw() deck.Card {
	card, err := cs.shoe.Draw()
	if err != nil {
		cs.logger.Debug("shoe exhausted mid-round, reshuffling", "num_decks", cs.shoe.NumDecks())
		cs.shoe.Reshuffle()
		cs.counter.Reset()
		card, _ = cs.shoe.Draw()
	}
	cs.counter.Observe(card)
	return card
}

// intnSource adapts math/rand/v2 to the matchid.RandSource interface.
type intnSource struct {
	rng *rand.Rand
}

func (s intnSource) Intn(n int) int {
	return s.rng.IntN(n)
}
