package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Cameron-Kurotori/pessimist/geom"
	"github.com/Cameron-Kurotori/pessimist/logging"
	"github.com/Cameron-Kurotori/pessimist/recorder"
	"github.com/Cameron-Kurotori/pessimist/sdk"
	"github.com/go-kit/log/level"
)

// HTTP Handlers

func (s *server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	response := s.info()
	_ = level.Debug(s.logger).Log("msg", "index request received", "source_ip", r.RemoteAddr, "forwarded_for", r.Header["X-Forwarded-For"])

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		_ = level.Error(s.logger).Log("msg", "failed to encode info response", "err", err)
	}
}

func (s *server) HandleStart(w http.ResponseWriter, r *http.Request) {
	state := sdk.GameState{}
	err := json.NewDecoder(r.Body).Decode(&state)
	if err != nil {
		_ = level.Error(s.logger).Log("msg", "failed to decode start json", "err", err)
		http.Error(w, "invalid game state", http.StatusBadRequest)
		return
	}

	s.start(state)
}

func (s *server) HandleMove(w http.ResponseWriter, r *http.Request) {
	state := sdk.GameState{}
	response := sdk.BattlesnakeMoveResponse{Move: sdk.MoveOf(geom.DefaultDirection)}
	err := json.NewDecoder(r.Body).Decode(&state)
	if err != nil {
		_ = level.Error(s.logger).Log("msg", "failed to decode move json", "err", err)
	} else {
		response = s.move(r.Context(), state)
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		_ = level.Error(s.logger).Log("msg", "failed to encode move response", "err", err)
		return
	}
}

func (s *server) HandleEnd(w http.ResponseWriter, r *http.Request) {
	state := sdk.GameState{}
	err := json.NewDecoder(r.Body).Decode(&state)
	if err != nil {
		_ = level.Error(s.logger).Log("msg", "failed to decode end json", "err", err)
		http.Error(w, "invalid game state", http.StatusBadRequest)
		return
	}

	s.end(state)

	// Nothing to respond with here
}

func (s *server) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.session.Summary()); err != nil {
		_ = level.Error(s.logger).Log("msg", "failed to encode stats response", "err", err)
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.HandleIndex)
	mux.HandleFunc("/start", s.HandleStart)
	mux.HandleFunc("/move", s.HandleMove)
	mux.HandleFunc("/end", s.HandleEnd)
	mux.HandleFunc("/stats", s.HandleStats)
	return mux
}

// Main Entrypoint

func main() {
	logger := logging.GlobalLogger()
	cfg, err := parseConfig(flag.CommandLine, os.Args[1:], os.Getenv)
	if err != nil {
		_ = level.Error(logger).Log("msg", "invalid configuration", "err", err)
		os.Exit(2)
	}
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		_ = level.Warn(logger).Log("msg", "invalid log level, using info", "err", err)
	}
	logger = logging.NewLogger(os.Stderr, lvl)

	var rec *recorder.Writer
	if cfg.RecordDir != "" {
		rec, err = recorder.New(cfg.RecordDir, recorder.DefaultMaxRows)
		if err != nil {
			_ = level.Error(logger).Log("msg", "failed to open recorder", "dir", cfg.RecordDir, "err", err)
			os.Exit(1)
		}
	}

	s := newServer(logger, cfg, rec)
	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	_ = level.Info(logger).Log("msg", "starting battlesnake server", "addr", cfg.Listen, "workers", cfg.Workers, "budget_margin", cfg.BudgetMargin)
	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		_ = level.Error(logger).Log("msg", "server closed", "err", err)
	}

	if rec != nil {
		if err := rec.Close(); err != nil {
			_ = level.Error(logger).Log("msg", "failed to close recorder", "err", err)
		}
		_ = level.Info(logger).Log("msg", "recorded turns", "files", len(rec.Files()))
	}
	_ = level.Info(logger).Log("msg", "session summary", "stats", s.session.Summary().String())
}
