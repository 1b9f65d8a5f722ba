package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type decideRequest struct {
	Board    [][][]int `json:"board"`
	Player   int       `json:"player"`
	LastMove []int     `json:"last_move,omitempty"`
}

type decideResponse struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	ElapsedMs float64 `json:"elapsed_ms"`
}

type ttCacheStatusResponse struct {
	Count    int     `json:"count"`
	Capacity int     `json:"capacity"`
	Usage    float64 `json:"usage"`
}

func setupLogging() {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	level := zerolog.InfoLevel
	if raw := os.Getenv("QUBIC_LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)
}

func main() {
	setupLogging()

	dbPath := os.Getenv("QUBIC_DB_PATH")
	if dbPath == "" {
		dbPath = "data/qubic.db"
	}
	if err := InitDB(dbPath); err != nil {
		log.Warn().Err(err).Msg("game archive unavailable, continuing without it")
	}
	defer CloseDB()

	policy := NewDecisionPolicy(GetConfig())
	r := newRouter(policy)

	addr := os.Getenv("QUBIC_LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:    addr,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Info().Str("addr", addr).Msg("qubic decision service listening")
	select {
	case <-sigCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			log.Error().Err(err).Msg("server error")
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn().Err(err).Msg("graceful shutdown failed")
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Warn().Err(closeErr).Msg("forced close failed")
		}
	}
}

func newRouter(policy *DecisionPolicy) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Post("/api/decide", func(w http.ResponseWriter, r *http.Request) {
		var payload decideRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		board, err := BoardFromGrid(payload.Board)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if board.IsFull() {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "board is full, no move exists"})
			return
		}
		var lastMove *Coord
		if len(payload.LastMove) == 3 {
			lastMove = &Coord{X: payload.LastMove[0], Y: payload.LastMove[1], Z: payload.LastMove[2]}
		}
		start := time.Now()
		move := policy.Decide(board, Player(payload.Player), lastMove)
		writeJSON(w, http.StatusOK, decideResponse{
			X:         move.X,
			Y:         move.Y,
			ElapsedMs: time.Since(start).Seconds() * 1000,
		})
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, GetConfig())
	})

	r.Post("/api/config", func(w http.ResponseWriter, r *http.Request) {
		var payload Config
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		configStore.Update(payload)
		writeJSON(w, http.StatusOK, GetConfig())
	})

	r.Get("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		count := policy.CacheSize()
		capacity := policy.CacheCapacity()
		usage := 0.0
		if capacity > 0 {
			usage = float64(count) / float64(capacity)
		}
		writeJSON(w, http.StatusOK, ttCacheStatusResponse{
			Count:    count,
			Capacity: capacity,
			Usage:    usage,
		})
	})

	r.Delete("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		policy.FlushCache()
		writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
	})

	r.Get("/api/games", func(w http.ResponseWriter, r *http.Request) {
		limit := 20
		if raw := r.URL.Query().Get("limit"); raw != "" {
			fmt.Sscanf(raw, "%d", &limit)
		}
		withHistory := r.URL.Query().Get("history") == "true"
		records, err := ListGames(limit, withHistory)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if records == nil {
			records = []GameRecord{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"games": records})
	})

	r.Get("/ws/host", func(w http.ResponseWriter, r *http.Request) {
		serveHostWS(policy, w, r)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("response encode failed")
	}
}
