package main

import (
	"flag"
	"fmt"
	"runtime"
	"time"
)

type config struct {
	Listen string
	// BudgetMargin is kept free of the engine timeout for serialization and transit.
	BudgetMargin time.Duration
	MinBudget    time.Duration
	// DefaultTimeout stands in for games that do not send a timeout.
	DefaultTimeout time.Duration
	Workers        int
	LogLevel       string
	RecordDir      string
	// GameTimeout is how long a game may run before the session drops it as lost.
	GameTimeout time.Duration
}

// parseConfig reads flags, falling back to PORT and LOG_LEVEL from getenv.
func parseConfig(fs *flag.FlagSet, args []string, getenv func(string) string) (config, error) {
	port := getenv("PORT")
	if len(port) == 0 {
		port = "8080"
	}

	cfg := config{}
	fs.StringVar(&cfg.Listen, "listen", ":"+port, "address to serve the battlesnake API on")
	fs.DurationVar(&cfg.BudgetMargin, "budget-margin", 200*time.Millisecond, "part of the game timeout not spent searching")
	fs.DurationVar(&cfg.MinBudget, "min-budget", 50*time.Millisecond, "smallest search budget")
	fs.DurationVar(&cfg.DefaultTimeout, "default-timeout", 500*time.Millisecond, "game timeout assumed when the engine sends none")
	fs.IntVar(&cfg.Workers, "workers", runtime.GOMAXPROCS(0), "parallel simulations per expansion")
	fs.StringVar(&cfg.LogLevel, "log-level", getenv("LOG_LEVEL"), "debug, info, warn or error")
	fs.StringVar(&cfg.RecordDir, "record-dir", "", "write a parquet row per move into this directory")
	fs.DurationVar(&cfg.GameTimeout, "game-timeout", 10*time.Minute, "drop running games from the stats after this long")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if cfg.BudgetMargin < 0 || cfg.MinBudget < 0 {
		return config{}, fmt.Errorf("budget margin and minimum must not be negative")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}

// budget is the search time for a game timeout: the timeout minus the margin, but never
// below the minimum.
func (c config) budget(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		timeout = c.DefaultTimeout
	}
	b := timeout - c.BudgetMargin
	if b < c.MinBudget {
		b = c.MinBudget
	}
	return b
}
