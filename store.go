package main

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bodul/wordsearch/wordsearch"
)

// ErrNotFound is returned for unknown puzzle or game IDs.
var ErrNotFound = errors.New("not found")

// Store holds all puzzles and game sessions in memory.
type Store struct {
	mu      sync.RWMutex
	puzzles map[string]*PuzzleRecord
	games   map[string]*GameSession
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		puzzles: make(map[string]*PuzzleRecord),
		games:   make(map[string]*GameSession),
	}
}

// SavePuzzle stores a generated puzzle and returns its record.
func (s *Store) SavePuzzle(p *wordsearch.Puzzle, d wordsearch.Difficulty) *PuzzleRecord {
	rec := &PuzzleRecord{
		ID:         uuid.NewString(),
		Difficulty: d,
		Size:       p.Size(),
		CreatedAt:  time.Now(),
		Puzzle:     p,
	}

	s.mu.Lock()
	s.puzzles[rec.ID] = rec
	s.mu.Unlock()

	return rec
}

// GetPuzzle returns a puzzle by ID, or nil if not found.
func (s *Store) GetPuzzle(id string) *PuzzleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puzzles[id]
}

// ListPuzzles returns all puzzles, most recent first.
func (s *Store) ListPuzzles() []*PuzzleRecord {
	s.mu.RLock()
	list := make([]*PuzzleRecord, 0, len(s.puzzles))
	for _, p := range s.puzzles {
		list = append(list, p)
	}
	s.mu.RUnlock()

	slices.SortFunc(list, func(a, b *PuzzleRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return list
}

// CreateGame starts a new session on a stored puzzle.
func (s *Store) CreateGame(puzzleID string) (*GameSession, error) {
	s.mu.RLock()
	rec := s.puzzles[puzzleID]
	s.mu.RUnlock()

	if rec == nil {
		return nil, fmt.Errorf("puzzle %s: %w", puzzleID, ErrNotFound)
	}

	game := &GameSession{
		ID:        uuid.NewString(),
		PuzzleID:  puzzleID,
		CreatedAt: time.Now(),
		session:   wordsearch.NewSession(rec.Puzzle),
	}

	s.mu.Lock()
	s.games[game.ID] = game
	s.mu.Unlock()

	return game, nil
}

// GetGame returns a game session by ID, or nil if not found.
func (s *Store) GetGame(id string) *GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.games[id]
}

// ListGames returns all game sessions.
func (s *Store) ListGames() []*GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*GameSession, 0, len(s.games))
	for _, g := range s.games {
		list = append(list, g)
	}
	return list
}
