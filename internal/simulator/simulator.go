// Package simulator runs batches of independent sessions and aggregates
// their outcomes. Sessions never share a shoe, counter or generator, so a
// batch can run them in parallel without any ordering concerns.
package simulator

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cardcount/blackjacksim/internal/randutil"
	"github.com/cardcount/blackjacksim/internal/session"
	"github.com/cardcount/blackjacksim/internal/statistics"
)

// Config holds configuration for running simulations.
type Config struct {
	Sessions       int // independent sessions; values below 1 mean a single session
	Rounds         int
	NumDecks       int
	BaseBet        float64
	Strategy       string
	BetMode        session.BetMode
	Seed           int64 // 0 picks a wall-clock seed
	MaxBetMultiple int
	Logger         *log.Logger

	// OnRound receives progress callbacks. Only invoked for single-session
	// batches, where round order is meaningful.
	OnRound func(completed int)
}

// Simulator runs blackjack session simulations.
type Simulator struct {
	config Config
}

// New creates a simulator with the given configuration.
func New(config Config) *Simulator {
	if config.Sessions < 1 {
		config.Sessions = 1
	}
	return &Simulator{config: config}
}

// Run executes the batch and returns aggregate statistics plus every hand
// record, ordered by session then round.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, []session.HandRecord, error) {
	baseSeed := s.config.Seed
	if baseSeed == 0 {
		baseSeed = randutil.TimeSeed()
		if s.config.Logger != nil {
			s.config.Logger.Info("using wall-clock seed", "seed", baseSeed)
		}
	}

	batches := make([][]session.HandRecord, s.config.Sessions)
	if s.config.Sessions == 1 {
		records, err := session.Simulate(ctx, s.sessionConfig(baseSeed, true))
		if err != nil && ctx.Err() == nil {
			return nil, nil, err
		}
		batches[0] = records
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < s.config.Sessions; i++ {
			g.Go(func() error {
				// Derive an independent seed per session so batches are
				// reproducible from the base seed alone.
				records, err := session.Simulate(gctx, s.sessionConfig(baseSeed+int64(i), false))
				batches[i] = records
				if err != nil && gctx.Err() != nil {
					return nil
				}
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
	}

	stats := &statistics.Statistics{}
	var all []session.HandRecord
	for _, records := range batches {
		stats.AddAll(records)
		all = append(all, records...)
	}
	if err := stats.Validate(); err != nil {
		return nil, nil, err
	}
	return stats, all, nil
}

func (s *Simulator) sessionConfig(seed int64, progress bool) session.Config {
	cfg := session.Config{
		Rounds:         s.config.Rounds,
		NumDecks:       s.config.NumDecks,
		BaseBet:        s.config.BaseBet,
		Strategy:       s.config.Strategy,
		BetMode:        s.config.BetMode,
		Seed:           &seed,
		MaxBetMultiple: s.config.MaxBetMultiple,
		Logger:         s.config.Logger,
	}
	if progress {
		cfg.OnRound = s.config.OnRound
	}
	return cfg
}
