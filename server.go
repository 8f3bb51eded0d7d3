package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/bodul/wordsearch/wordsearch"
)

const (
	maxUploadSize    = 10 << 20 // 10 MiB
	defaultColorGrid = 10
)

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Server is the main HTTP server.
type Server struct {
	router   *chi.Mux
	store    *Store
	words    WordSource
	tiers    wordsearch.Tiers
	sse      *Broadcaster
	uploadRL *rateLimiter
	selectRL *rateLimiter
	newRand  func() *rand.Rand
}

// NewServer creates a configured HTTP server. words may be nil, in which
// case image analysis is disabled.
func NewServer(store *Store, words WordSource, cfg *Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		store:    store,
		words:    words,
		tiers:    cfg.Tiers,
		sse:      NewBroadcaster(),
		uploadRL: newRateLimiter(5, time.Minute),  // 5 uploads/min per IP
		selectRL: newRateLimiter(30, time.Second), // 30 selections/sec per IP
		newRand:  wordsearch.NewRand,
	}
	s.routes(cfg)
	return s
}

func (s *Server) routes(cfg *Config) {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{cfg.ClientOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordsearch",
			"endpoints": []string{"/health", "/api/words", "/api/colors", "/api/puzzles", "/api/games"},
		})
	})
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		// Image analysis
		r.With(s.uploadRL.limit).Post("/words", s.handleExtractWords)
		r.With(s.uploadRL.limit).Post("/colors", s.handleColors)

		// Puzzle API
		r.Post("/puzzles", s.handleCreatePuzzle)
		r.Get("/puzzles", s.handleListPuzzles)
		r.Get("/puzzles/{id}", s.handleGetPuzzle)

		// Game API
		r.Post("/games", s.handleCreateGame)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Post("/preview", s.handlePreview)
			r.With(s.selectRL.limit).Post("/select", s.handleSelect)
			r.Post("/restart", s.handleRestart)
			r.Post("/reveal", s.handleReveal)
			r.Get("/events", s.handleGameEvents)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		jsonError(w, "not found", http.StatusNotFound)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("uri", r.URL.RequestURI()).
		Str("remote", r.RemoteAddr).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("handled request")
}

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"puzzles": len(s.store.ListPuzzles()),
		"games":   len(s.store.ListGames()),
		"vision":  s.words != nil,
	})
}

// --- Image handlers ---

// POST /api/words: upload a photo, get candidate words back.
func (s *Server) handleExtractWords(w http.ResponseWriter, r *http.Request) {
	if s.words == nil {
		jsonError(w, "image analysis is not configured", http.StatusServiceUnavailable)
		return
	}

	imageData, mimeType, ok := readImage(w, r)
	if !ok {
		return
	}

	words, err := s.words.ExtractWords(r.Context(), imageData, mimeType)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("extract words")
		if errors.Is(err, ErrNoWords) {
			jsonError(w, "could not derive words from this photo, try another one", http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, "failed to analyze the photo, try again", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"words": words})
}

// POST /api/colors: downsample a photo to one colour per grid cell.
func (s *Server) handleColors(w http.ResponseWriter, r *http.Request) {
	imageData, _, ok := readImage(w, r)
	if !ok {
		return
	}

	size := defaultColorGrid
	if tier, ok := s.tiers.Lookup(wordsearch.Easy); ok {
		size = tier.Size
	}
	if v := r.FormValue("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			jsonError(w, "field 'size' must be an integer", http.StatusBadRequest)
			return
		}
		size = n
	}

	colors, err := Colorize(bytes.NewReader(imageData), size)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("colorize")
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"size": size, "colors": colors})
}

// --- Puzzle handlers ---

// POST /api/puzzles: build a puzzle from reviewed words.
func (s *Server) handleCreatePuzzle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Words      []string              `json:"words"`
		Difficulty wordsearch.Difficulty `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	difficulty := wordsearch.Difficulty(strings.ToLower(string(req.Difficulty)))
	if difficulty == "" {
		difficulty = wordsearch.Easy
	}
	tier, ok := s.tiers.Lookup(difficulty)
	if !ok {
		jsonError(w, "unknown difficulty: "+string(req.Difficulty), http.StatusBadRequest)
		return
	}

	words := wordsearch.NormalizeWords(req.Words)
	if err := tier.CheckCount(len(words)); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := wordsearch.Generate(s.newRand(), words, tier.Size, tier.Diagonals)
	if errors.Is(err, wordsearch.ErrUnplaceable) {
		jsonError(w, "could not build a puzzle with these words, try fewer or shorter words", http.StatusUnprocessableEntity)
		return
	}
	if err == nil {
		err = p.Verify()
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("generate puzzle")
		jsonError(w, "failed to build the puzzle", http.StatusInternalServerError)
		return
	}

	rec := s.store.SavePuzzle(p, difficulty)
	hlog.FromRequest(r).Info().
		Str("puzzle", rec.ID).
		Str("difficulty", string(difficulty)).
		Int("placed", len(p.WordList)).
		Strs("dropped", p.Dropped).
		Msg("puzzle generated")

	writeJSON(w, http.StatusCreated, rec)
}

// GET /api/puzzles
func (s *Server) handleListPuzzles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListPuzzles())
}

// GET /api/puzzles/{id}
func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	rec := s.store.GetPuzzle(chi.URLParam(r, "id"))
	if rec == nil {
		jsonError(w, "puzzle not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// --- Game handlers ---

// POST /api/games: start playing a puzzle.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PuzzleID string `json:"puzzle_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PuzzleID == "" {
		jsonError(w, "field 'puzzle_id' is required", http.StatusBadRequest)
		return
	}

	game, err := s.store.CreateGame(req.PuzzleID)
	if err != nil {
		jsonError(w, "puzzle not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

type gameView struct {
	*GameSession
	State  wordsearch.Snapshot `json:"state"`
	Puzzle *PuzzleRecord       `json:"puzzle"`
}

func (s *Server) view(game *GameSession) gameView {
	return gameView{
		GameSession: game,
		State:       game.GetState(),
		Puzzle:      s.store.GetPuzzle(game.PuzzleID),
	}
}

// GET /api/games/{id}
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, ok := s.game(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.view(game))
}

type selection struct {
	Start *wordsearch.Cell `json:"start"`
	End   *wordsearch.Cell `json:"end"`
}

func decodeSelection(w http.ResponseWriter, r *http.Request) (wordsearch.Cell, wordsearch.Cell, bool) {
	var sel selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil || sel.Start == nil || sel.End == nil {
		jsonError(w, "fields 'start' and 'end' are required", http.StatusBadRequest)
		return wordsearch.Cell{}, wordsearch.Cell{}, false
	}
	return *sel.Start, *sel.End, true
}

// POST /api/games/{id}/preview: cells to highlight while dragging. No state change.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	game, ok := s.game(w, r)
	if !ok {
		return
	}
	start, end, ok := decodeSelection(w, r)
	if !ok {
		return
	}

	cells := game.Preview(start, end)
	if cells == nil {
		cells = []wordsearch.Cell{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"cells": cells})
}

// POST /api/games/{id}/select: commit a drag.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	game, ok := s.game(w, r)
	if !ok {
		return
	}
	start, end, ok := decodeSelection(w, r)
	if !ok {
		return
	}

	out := game.Select(start, end)
	if out.Matched() {
		s.sse.Publish(game.ID, Event{Type: "word_found", Data: out.MatchResult})
		hlog.FromRequest(r).Info().Str("game", game.ID).Str("word", out.Word).Msg("word found")
	}
	if out.Completed {
		s.sse.Publish(game.ID, Event{Type: "completed"})
		hlog.FromRequest(r).Info().Str("game", game.ID).Msg("puzzle completed")
	}

	writeJSON(w, http.StatusOK, out)
}

// POST /api/games/{id}/restart: clear progress, keep the grid.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	game, ok := s.game(w, r)
	if !ok {
		return
	}
	game.Restart()
	state := game.GetState()
	s.sse.Publish(game.ID, Event{Type: "restarted", Data: state})
	writeJSON(w, http.StatusOK, state)
}

// POST /api/games/{id}/reveal: show or hide the whole picture.
func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	game, ok := s.game(w, r)
	if !ok {
		return
	}
	var req struct {
		Reveal bool `json:"reveal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "field 'reveal' is required", http.StatusBadRequest)
		return
	}
	game.SetRevealAll(req.Reveal)
	writeJSON(w, http.StatusOK, game.GetState())
}

// GET /api/games/{id}/events: SSE stream.
func (s *Server) handleGameEvents(w http.ResponseWriter, r *http.Request) {
	game, ok := s.game(w, r)
	if !ok {
		return
	}
	s.sse.ServeSSE(w, r, game.ID, &Event{Type: "game_state", Data: game.GetState()})
}

// --- Helpers ---

func (s *Server) game(w http.ResponseWriter, r *http.Request) (*GameSession, bool) {
	game := s.store.GetGame(chi.URLParam(r, "id"))
	if game == nil {
		jsonError(w, "game not found", http.StatusNotFound)
		return nil, false
	}
	return game, true
}

// readImage reads the multipart "image" field. On failure it has already
// written the error response.
func readImage(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, "image too large (max 10 MiB)", http.StatusRequestEntityTooLarge)
		return nil, "", false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		jsonError(w, "field 'image' is required", http.StatusBadRequest)
		return nil, "", false
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !allowedMIME[mimeType] {
		jsonError(w, "accepted formats: JPEG or PNG", http.StatusBadRequest)
		return nil, "", false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, "failed to read the image", http.StatusInternalServerError)
		return nil, "", false
	}
	return data, mimeType, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
