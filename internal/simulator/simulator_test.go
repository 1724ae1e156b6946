package simulator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardcount/blackjacksim/internal/session"
)

func testConfig() Config {
	return Config{
		Sessions: 4,
		Rounds:   50,
		NumDecks: 6,
		BaseBet:  10,
		Strategy: "basic",
		BetMode:  session.BetModeFixed,
		Seed:     42,
	}
}

func TestBatchDeterministicReplay(t *testing.T) {
	statsA, recordsA, err := New(testConfig()).Run(context.Background())
	require.NoError(t, err)
	statsB, recordsB, err := New(testConfig()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, recordsA, recordsB, "a seeded batch must replay identically")
	assert.Equal(t, statsA, statsB)
}

func TestBatchAggregatesAllSessions(t *testing.T) {
	stats, records, err := New(testConfig()).Run(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(records), 4*50, "at least one hand per round per session")
	assert.Equal(t, len(records), stats.Hands)
	require.NoError(t, stats.Validate())

	// Sessions must be independent: four distinct match ids.
	ids := make(map[string]bool)
	for _, rec := range records {
		ids[rec.MatchID] = true
	}
	assert.Len(t, ids, 4)
}

func TestSingleSessionProgress(t *testing.T) {
	cfg := testConfig()
	cfg.Sessions = 1
	var last int
	cfg.OnRound = func(completed int) { last = completed }

	_, _, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg.Rounds, last)
}

func TestZeroSessionsMeansOne(t *testing.T) {
	cfg := testConfig()
	cfg.Sessions = 0
	stats, _, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.Hands, 50)
}

func TestBatchCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, records, err := New(testConfig()).Run(ctx)
	require.NoError(t, err, "cancellation yields partial results, not an error")
	assert.Empty(t, records)
	assert.Equal(t, 0, stats.Hands)
}
