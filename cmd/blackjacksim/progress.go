package main

import (
	"fmt"
	"sync"
	"time"
)

// progressMonitor prints a clean dot-based progress line while a single
// session runs.
type progressMonitor struct {
	mu          sync.Mutex
	totalRounds int
	dotsPrinted int
	startTime   time.Time
}

func newProgressMonitor(totalRounds int) *progressMonitor {
	m := &progressMonitor{
		totalRounds: totalRounds,
		startTime:   time.Now(),
	}
	fmt.Printf("Rounds: ")
	return m
}

// OnRound is called after each completed round.
func (m *progressMonitor) OnRound(completed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// 40 dots across the run, one per 2.5% progress
	pct := completed * 100 / m.totalRounds
	if pct > 100 {
		pct = 100
	}
	const dotsTotal = 40
	targetDots := (pct * dotsTotal) / 100

	for i := m.dotsPrinted; i < targetDots; i++ {
		fmt.Print(".")
		m.dotsPrinted++
	}

	if completed >= m.totalRounds {
		duration := time.Since(m.startTime)
		roundsPerSec := float64(m.totalRounds) / duration.Seconds()
		fmt.Printf(" done: %d rounds in %.1fs (%.0f/sec)\n", m.totalRounds, duration.Seconds(), roundsPerSec)
	}
}
