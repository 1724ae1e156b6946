package main

import (
	"fmt"

	"github.com/cardcount/blackjacksim/internal/session"
)

// StrategiesCmd lists the registered playing strategies.
type StrategiesCmd struct{}

func (c *StrategiesCmd) Run() error {
	for _, name := range session.ListStrategies() {
		fmt.Println(name)
	}
	return nil
}
