// Package server exposes the simulator over HTTP: one-shot simulation
// requests, stored match retrieval, and a WebSocket endpoint that streams
// hand records as rounds settle.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/cardcount/blackjacksim/internal/game"
	"github.com/cardcount/blackjacksim/internal/session"
	"github.com/cardcount/blackjacksim/internal/strategy"
)

// Server handles simulation requests
type Server struct {
	config   *Config
	logger   *log.Logger
	store    *MatchStore
	upgrader websocket.Upgrader
}

// New creates a server with the given configuration and match store.
func New(config *Config, logger *log.Logger, store *MatchStore) *Server {
	return &Server{
		config: config,
		logger: logger.WithPrefix("server"),
		store:  store,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Router returns the HTTP handler for all endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/strategies", s.handleStrategies)
	r.Post("/simulate", s.handleSimulate)
	r.Get("/matches/{id}", s.handleGetMatch)
	r.Get("/ws/simulate", s.handleSimulateWS)

	return r
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.Addr(),
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.config.Addr())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// SimulateRequest is the body of POST /simulate.
type SimulateRequest struct {
	Rounds   int     `json:"rounds"`
	NumDecks int     `json:"num_decks"`
	BaseBet  float64 `json:"base_bet"`
	Strategy string  `json:"strategy"`
	BetMode  string  `json:"bet_mode"`
	Seed     *int64  `json:"seed"`
}

func (req *SimulateRequest) applyDefaults() {
	if req.Rounds == 0 {
		req.Rounds = 10
	}
	if req.NumDecks == 0 {
		req.NumDecks = 6
	}
	if req.BaseBet == 0 {
		req.BaseBet = 10
	}
	if req.Strategy == "" {
		req.Strategy = strategy.Basic
	}
	if req.BetMode == "" {
		req.BetMode = string(session.BetModeFixed)
	}
}

// SimulateResponse is the body returned by POST /simulate.
type SimulateResponse struct {
	MatchID string               `json:"match_id"`
	Seed    int64                `json:"seed"`
	Hands   int                  `json:"hands"`
	Profit  float64              `json:"profit"`
	Records []session.HandRecord `json:"records"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"strategies": session.ListStrategies()})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	req.applyDefaults()
	if req.Rounds > s.config.Limits.MaxRounds {
		writeError(w, http.StatusBadRequest,
			"rounds exceeds server limit of "+strconv.Itoa(s.config.Limits.MaxRounds))
		return
	}

	sess, err := session.New(s.sessionConfig(req))
	if err != nil {
		var cfgErr *session.ConfigError
		if errors.As(err, &cfgErr) {
			writeError(w, http.StatusBadRequest, cfgErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	records, err := sess.Run(r.Context())
	if err != nil && r.Context().Err() == nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.store.Put(&StoredMatch{
		ID:        sess.ID(),
		Strategy:  req.Strategy,
		BetMode:   req.BetMode,
		Seed:      sess.Seed(),
		CreatedAt: time.Now(),
		Records:   records,
	})
	s.logger.Info("simulation complete",
		"match_id", sess.ID(), "strategy", req.Strategy, "rounds", req.Rounds, "hands", len(records))

	writeJSON(w, http.StatusOK, SimulateResponse{
		MatchID: sess.ID(),
		Seed:    sess.Seed(),
		Hands:   len(records),
		Profit:  sess.Bankroll(),
		Records: records,
	})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	m, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "match not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// handleSimulateWS runs a simulation and streams each hand record as a
// JSON message, followed by a summary frame. Client disconnect cancels the
// remaining rounds.
func (s *Server) handleSimulateWS(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Rounds > s.config.Limits.MaxRounds {
		writeError(w, http.StatusBadRequest,
			"rounds exceeds server limit of "+strconv.Itoa(s.config.Limits.MaxRounds))
		return
	}

	cfg := s.sessionConfig(req)
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn, upgradeErr := s.upgrader.Upgrade(w, r, nil)
	if upgradeErr != nil {
		s.logger.Error("websocket upgrade failed", "error", upgradeErr)
		return
	}
	defer conn.Close()

	cfg.OnRecord = func(rec session.HandRecord) {
		if err := conn.WriteJSON(map[string]any{"type": "hand", "record": rec}); err != nil {
			cancel()
		}
	}

	sess, err := session.New(cfg)
	if err != nil {
		_ = conn.WriteJSON(map[string]any{"type": "error", "error": err.Error()})
		return
	}

	records, runErr := sess.Run(ctx)
	s.store.Put(&StoredMatch{
		ID:        sess.ID(),
		Strategy:  req.Strategy,
		BetMode:   req.BetMode,
		Seed:      sess.Seed(),
		CreatedAt: time.Now(),
		Records:   records,
	})

	summary := map[string]any{
		"type":     "summary",
		"match_id": sess.ID(),
		"seed":     sess.Seed(),
		"hands":    len(records),
		"profit":   sess.Bankroll(),
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		summary["error"] = runErr.Error()
	}
	_ = conn.WriteJSON(summary)
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Server) sessionConfig(req SimulateRequest) session.Config {
	return session.Config{
		Rounds:             req.Rounds,
		NumDecks:           req.NumDecks,
		BaseBet:            req.BaseBet,
		Strategy:           req.Strategy,
		BetMode:            session.BetMode(req.BetMode),
		Seed:               req.Seed,
		MaxBetMultiple:     s.config.Rules.MaxBetMultiple,
		ReshuffleThreshold: s.config.Rules.ReshuffleThreshold,
		Rules: game.Rules{
			DealerHitsSoft17: s.config.Rules.DealerHitsSoft17,
			BlackjackPayout:  s.config.Rules.BlackjackPayout,
		},
		Logger: s.logger,
	}
}

// requestFromQuery builds a SimulateRequest from websocket query params.
func requestFromQuery(r *http.Request) (SimulateRequest, error) {
	var req SimulateRequest
	q := r.URL.Query()

	intParam := func(name string, dst *int) error {
		v := q.Get(name)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("invalid " + name + ": " + v)
		}
		*dst = n
		return nil
	}

	if err := intParam("rounds", &req.Rounds); err != nil {
		return req, err
	}
	if err := intParam("num_decks", &req.NumDecks); err != nil {
		return req, err
	}
	if v := q.Get("base_bet"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, errors.New("invalid base_bet: " + v)
		}
		req.BaseBet = f
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, errors.New("invalid seed: " + v)
		}
		req.Seed = &n
	}
	req.Strategy = q.Get("strategy")
	req.BetMode = q.Get("bet_mode")
	req.applyDefaults()
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
