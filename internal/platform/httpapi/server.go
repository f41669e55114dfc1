// Package httpapi exposes the leaderboards as a read-only JSON API.
//
//	GET /health               liveness
//	GET /boards               registered board presets
//	GET /scores               boards that have stored scores
//	GET /scores/{board}?n=5   top entries for a preset id or "RxC" size
//	GET /scores/{board}/best  the best entry
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-memory/internal/ledger"
	"github.com/vovakirdan/tui-memory/internal/registry"
)

// Server bundles the router and the ledger it reads.
type Server struct {
	r      *chi.Mux
	ledger *ledger.Ledger
	log    *log.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(l *ledger.Ledger, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{r: chi.NewRouter(), ledger: l, log: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(s.logRequests)
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/boards", s.handleBoards)
	s.r.Route("/scores", func(r chi.Router) {
		r.Get("/", s.handleScoredBoards)
		r.Get("/{board}", s.handleTop)
		r.Get("/{board}/best", s.handleBest)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP API", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type boardsRes struct {
	Boards []registry.BoardInfo `json:"boards"`
}

type topRes struct {
	Board   string              `json:"board"`
	Entries []ledger.ScoreEntry `json:"entries"`
}

func (s *Server) handleBoards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, boardsRes{Boards: registry.List()})
}

func (s *Server) handleScoredBoards(w http.ResponseWriter, r *http.Request) {
	boards := s.ledger.Boards(r.Context())
	if boards == nil {
		boards = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"boards": boards})
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	board, ok := s.resolveBoard(w, r)
	if !ok {
		return
	}

	n := s.ledger.Display()
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "invalid_n")
			return
		}
		n = v
	}

	writeJSON(w, http.StatusOK, topRes{
		Board:   board.Key(),
		Entries: s.ledger.TopN(r.Context(), board.Key(), n),
	})
}

func (s *Server) handleBest(w http.ResponseWriter, r *http.Request) {
	board, ok := s.resolveBoard(w, r)
	if !ok {
		return
	}
	best, found := s.ledger.Best(r.Context(), board.Key())
	if !found {
		writeError(w, http.StatusNotFound, "no_scores")
		return
	}
	writeJSON(w, http.StatusOK, best)
}

func (s *Server) resolveBoard(w http.ResponseWriter, r *http.Request) (registry.BoardInfo, bool) {
	board, err := registry.Resolve(chi.URLParam(r, "board"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_board")
		return registry.BoardInfo{}, false
	}
	return board, true
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// logRequests logs one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
