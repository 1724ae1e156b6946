package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/joho/godotenv"

	"github.com/cardcount/blackjacksim/cmd/blackjacksim/shared"
	"github.com/cardcount/blackjacksim/internal/server"
)

// ServeCmd runs the HTTP simulation server.
type ServeCmd struct {
	Config  string `kong:"default='blackjacksim.hcl',help='Path to HCL configuration file'"`
	Addr    string `kong:"help='Listen address, overriding the config file (host:port)'"`
	LogJSON bool   `kong:"name='log-json',help='Emit structured JSON logs instead of console output'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	// Local overrides from .env; absence is fine.
	_ = godotenv.Load()
	if path := os.Getenv("BLACKJACKSIM_CONFIG"); path != "" && c.Config == "blackjacksim.hcl" {
		c.Config = path
	}

	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		host, port, err := net.SplitHostPort(c.Addr)
		if err != nil {
			return fmt.Errorf("invalid --addr %q: %w", c.Addr, err)
		}
		cfg.Server.Address = host
		cfg.Server.Port, err = strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid --addr port %q: %w", port, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := shared.SetupLogger(c.Debug)
	if c.LogJSON {
		logger = shared.SetupStructuredLogger(c.Debug)
	}
	if !c.Debug {
		if level, err := log.ParseLevel(cfg.Server.LogLevel); err == nil {
			logger.SetLevel(level)
		}
	}

	store := server.NewMatchStore(
		quartz.NewReal(),
		time.Duration(cfg.Limits.StoreTTLMinutes)*time.Minute,
		cfg.Limits.MaxStoredMatches,
	)
	srv := server.New(cfg, logger, store)

	logger.Info("starting simulation server",
		"addr", cfg.Addr(),
		"max_rounds", cfg.Limits.MaxRounds,
		"store_ttl_minutes", cfg.Limits.StoreTTLMinutes)

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
