// internal/httpserver/server.go
//
// HTTP server wiring for the squares backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/sample".
//   - Pool endpoints: POST /pools/parse, POST /pools/render,
//     POST /pools/open, GET /pools/{id}, POST /pools/{id}/check.
//   - Saved-pool + auth endpoints: mounted in routes_saved.go.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - The core stays pure; every handler here is glue around the four
//     core entry points (parse, serialize, check-my-squares,
//     check-full-board).

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/nicolekc/super-bowl-squares/internal/samples"
	"github.com/nicolekc/super-bowl-squares/internal/squares"
	"github.com/nicolekc/super-bowl-squares/internal/store"
)

// Server bundles router, in-memory pool store, and DB handle.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB) *Server {
	s := &Server{r: chi.NewRouter(), store: st, db: db}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"squares-go","endpoints":["/health","/sample","POST /pools/open","POST /pools/{id}/check","/auth/*","/saved/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/sample", s.handleSample)

	// Pool endpoints, no auth needed (sessions are ephemeral)
	s.r.Post("/pools/parse", s.handleParse)
	s.r.Post("/pools/render", s.handleRender)
	s.r.Post("/pools/open", s.handleOpen)
	s.r.Get("/pools/{id}", s.handleGetPool)
	s.r.Post("/pools/{id}/check", s.handleCheck)

	// Saved pools + auth
	s.mountSaved()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// badFormat writes a FormatError as a 422 with its message; other
// errors become a generic 400.
func badFormat(w http.ResponseWriter, err error) {
	var fe *squares.FormatError
	if errors.As(err, &fe) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "bad_format", "message": fe.Msg})
		return
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_request"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ------------------------------ POOLS --------------------------------------

// textReq carries a raw pool text blob.
type textReq struct {
	Text string `json:"text"`
}

// handleSample returns the embedded demo pool text.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	if err := samples.Init(); err != nil {
		log.Error().Err(err).Msg("sample pool unavailable")
		http.Error(w, `{"error":"sample_unavailable"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, textReq{Text: samples.Text()})
}

// handleParse parses text and echoes the structured boards back.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req textReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	boards, err := squares.ParseBoards(req.Text)
	if err != nil {
		badFormat(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"boards": boards})
}

// handleRender is the inverse: structured boards in, canonical text out.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Boards []squares.Board `json:"boards"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	// Decoded JSON can describe boards the parser would never produce
	// (wrong quarter counts, ragged grids); reject those before the
	// serializer indexes into them.
	for i := range req.Boards {
		if err := req.Boards[i].Validate(); err != nil {
			badFormat(w, err)
			return
		}
	}
	text := squares.SerializeBoards(req.Boards)
	// Round the text through the parser so callers can't render a
	// board the grammar cannot represent.
	if _, err := squares.ParseBoards(text); err != nil {
		badFormat(w, err)
		return
	}
	writeJSON(w, http.StatusOK, textReq{Text: text})
}

// openRes is returned by POST /pools/open.
type openRes struct {
	PoolID string `json:"poolId"`
	Boards int    `json:"boards"`
}

// handleOpen parses text and stores the boards as a session.
func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	var req textReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	boards, err := squares.ParseBoards(req.Text)
	if err != nil {
		badFormat(w, err)
		return
	}
	p := store.NewPool(boards, req.Text)
	if err := s.store.Save(r.Context(), p); err != nil {
		log.Error().Err(err).Msg("save pool")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, openRes{PoolID: p.ID, Boards: len(p.Boards)})
}

// handleGetPool returns the boards of an open session.
func (s *Server) handleGetPool(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// boardResult is the per-board payload of a check response. Exactly
// one of Squares/Cells is set, mirroring the board's mode. Cell keys
// are "row,col".
type boardResult struct {
	Name    string                        `json:"name"`
	Mode    string                        `json:"mode"` // "mySquares" | "fullBoard"
	Squares []squares.SquareStatus        `json:"squares,omitempty"`
	Cells   map[string]squares.CellStatus `json:"cells,omitempty"`
}

// handleCheck evaluates every board of a session against a game state.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	var state squares.GameState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if state.Quarter < 0 || state.Quarter > 3 {
		http.Error(w, `{"error":"quarter_out_of_range"}`, http.StatusBadRequest)
		return
	}

	results := make([]boardResult, 0, len(p.Boards))
	for i := range p.Boards {
		b := &p.Boards[i]
		res := boardResult{Name: b.Config.Name}
		if b.IsFullBoard() {
			res.Mode = "fullBoard"
			res.Cells = make(map[string]squares.CellStatus)
			for pos, cell := range squares.FullBoardCellStatuses(b, state) {
				res.Cells[fmt.Sprintf("%d,%d", pos.Row, pos.Col)] = *cell
			}
		} else {
			res.Mode = "mySquares"
			res.Squares = squares.CheckAllMySquares(b, state)
		}
		results = append(results, res)
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
