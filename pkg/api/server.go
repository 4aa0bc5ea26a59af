package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"minichess/pkg/engine"
	"minichess/pkg/rules"
	"minichess/pkg/session"
)

// SearchRequest asks for the best move of a position
type SearchRequest struct {
	FEN   string `json:"fen"`
	Depth int    `json:"depth"`
}

// SearchResponse is the outcome of one search
type SearchResponse struct {
	Move    string `json:"move"`
	Score   int32  `json:"score"`
	Visited uint64 `json:"visited"`
	Pruned  uint64 `json:"pruned"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter returns the HTTP handler of the search service. Every request
// searches its own game, so requests never share a position.
func NewRouter(log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/api/search", func(w http.ResponseWriter, r *http.Request) {
		var req SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
			return
		}
		res, err := search(req)
		switch {
		case errors.Is(err, engine.ErrNoLegalMoves):
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		case err != nil:
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		default:
			writeJSON(w, http.StatusOK, res)
		}
	})
	return r
}

func search(req SearchRequest) (SearchResponse, error) {
	if req.Depth == 0 {
		req.Depth = session.DefaultConfig().Depth
	}
	if req.Depth < 1 || req.Depth > session.MaxDepth {
		return SearchResponse{}, fmt.Errorf("%w: %d", session.ErrBadDepth, req.Depth)
	}
	game := rules.NewGame()
	if req.FEN != "" {
		var err error
		if game, err = rules.FromFEN(req.FEN); err != nil {
			return SearchResponse{}, err
		}
	}
	eng := engine.NewEngine(game, engine.NewEvaluator(game.Turn().Other()))
	res, err := eng.Search(req.Depth)
	if err != nil {
		return SearchResponse{}, err
	}
	return SearchResponse{
		Move:    res.Move.String(),
		Score:   int32(res.Score),
		Visited: res.Stats.Visited,
		Pruned:  res.Stats.Pruned,
	}, nil
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("took", time.Since(start)).
				Msg("request")
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
