package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cardcount/blackjacksim/cmd/blackjacksim/shared"
	"github.com/cardcount/blackjacksim/internal/session"
	"github.com/cardcount/blackjacksim/internal/simulator"
)

// SimulateCmd runs one or more sessions and prints a summary or raw records.
type SimulateCmd struct {
	Rounds         int     `kong:"default='1000',help='Number of rounds per session'"`
	Decks          int     `kong:"default='6',help='Number of decks in the shoe (1-8)'"`
	BaseBet        float64 `kong:"default='10',help='Base bet per round'"`
	Strategy       string  `kong:"default='basic',help='Playing strategy: simplest, random, basic'"`
	BetMode        string  `kong:"default='fixed',help='Bet sizing: fixed or hi_lo'"`
	Seed           int64   `kong:"default='0',help='RNG seed (0 for random)'"`
	Sessions       int     `kong:"default='1',help='Independent sessions to run'"`
	MaxBetMultiple int     `kong:"default='5',help='Cap on the hi_lo bet ramp'"`
	JSON           bool    `kong:"help='Emit hand records as JSON instead of a summary'"`
	Debug          bool    `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	mode, err := session.ParseBetMode(c.BetMode)
	if err != nil {
		return err
	}

	cfg := simulator.Config{
		Sessions:       c.Sessions,
		Rounds:         c.Rounds,
		NumDecks:       c.Decks,
		BaseBet:        c.BaseBet,
		Strategy:       c.Strategy,
		BetMode:        mode,
		Seed:           c.Seed,
		MaxBetMultiple: c.MaxBetMultiple,
		Logger:         logger,
	}

	// Dot progress only makes sense for a single ordered session, and it
	// would corrupt JSON output.
	if !c.JSON && c.Sessions <= 1 {
		cfg.OnRound = newProgressMonitor(c.Rounds).OnRound
	}

	// No shutdown log line here: the partial-results note below already
	// tells the user what an interrupt did to their run.
	ctx := shared.SetupSignalHandler()

	stats, records, err := simulator.New(cfg).Run(ctx)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	simulator.PrintSummary(os.Stdout, stats, cfg)
	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "interrupted: results above are partial")
	}
	return nil
}
