package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Rules  *RulesConfig   `hcl:"rules,block"`
	Limits *LimitsConfig  `hcl:"limits,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// RulesConfig defines the house rules applied to every simulation the
// server runs.
type RulesConfig struct {
	DealerHitsSoft17   bool    `hcl:"dealer_hits_soft_17,optional"`
	BlackjackPayout    float64 `hcl:"blackjack_payout,optional"`
	MaxBetMultiple     int     `hcl:"max_bet_multiple,optional"`
	ReshuffleThreshold float64 `hcl:"reshuffle_threshold,optional"`
}

// LimitsConfig bounds what a single request may ask for and how long
// completed matches are retained.
type LimitsConfig struct {
	MaxRounds        int `hcl:"max_rounds,optional"`
	StoreTTLMinutes  int `hcl:"store_ttl_minutes,optional"`
	MaxStoredMatches int `hcl:"max_stored_matches,optional"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Rules: &RulesConfig{
			DealerHitsSoft17:   false,
			BlackjackPayout:    1.5,
			MaxBetMultiple:     5,
			ReshuffleThreshold: 0.25,
		},
		Limits: &LimitsConfig{
			MaxRounds:        100000,
			StoreTTLMinutes:  60,
			MaxStoredMatches: 1000,
		},
	}
}

// LoadConfig loads server configuration from an HCL file. A missing file
// is not an error: defaults apply.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}

	if config.Rules == nil {
		config.Rules = DefaultConfig().Rules
	}
	if config.Rules.BlackjackPayout == 0 {
		config.Rules.BlackjackPayout = 1.5
	}
	if config.Rules.MaxBetMultiple == 0 {
		config.Rules.MaxBetMultiple = 5
	}
	if config.Rules.ReshuffleThreshold == 0 {
		config.Rules.ReshuffleThreshold = 0.25
	}

	if config.Limits == nil {
		config.Limits = DefaultConfig().Limits
	}
	if config.Limits.MaxRounds == 0 {
		config.Limits.MaxRounds = 100000
	}
	if config.Limits.StoreTTLMinutes == 0 {
		config.Limits.StoreTTLMinutes = 60
	}
	if config.Limits.MaxStoredMatches == 0 {
		config.Limits.MaxStoredMatches = 1000
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Rules.BlackjackPayout < 1 {
		return fmt.Errorf("blackjack payout must be at least 1, got %v", c.Rules.BlackjackPayout)
	}
	if c.Rules.MaxBetMultiple < 1 {
		return fmt.Errorf("max bet multiple must be at least 1, got %d", c.Rules.MaxBetMultiple)
	}
	if c.Rules.ReshuffleThreshold < 0 || c.Rules.ReshuffleThreshold >= 1 {
		return fmt.Errorf("reshuffle threshold must be in [0, 1), got %v", c.Rules.ReshuffleThreshold)
	}
	if c.Limits.MaxRounds < 1 {
		return fmt.Errorf("max rounds must be positive, got %d", c.Limits.MaxRounds)
	}
	if c.Limits.StoreTTLMinutes < 1 {
		return fmt.Errorf("store TTL must be positive, got %d", c.Limits.StoreTTLMinutes)
	}
	return nil
}

// Addr returns the full listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
