package wordsearch

import (
	"fmt"
	"slices"
	"sync"

	"github.com/zyedidia/generic/mapset"
)

// DragState is the interaction phase of a session.
type DragState int

const (
	Idle DragState = iota
	Dragging
	Resolving
)

func (s DragState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resolving:
		return "resolving"
	}
	return "unknown"
}

func (s DragState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *DragState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = Idle
	case "dragging":
		*s = Dragging
	case "resolving":
		*s = Resolving
	default:
		return fmt.Errorf("unknown drag state %q", text)
	}
	return nil
}

// Outcome is the result of committing a selection.
// Completed is true only on the selection that found the last word.
type Outcome struct {
	MatchResult
	Completed bool `json:"completed"`
}

// Snapshot is a point-in-time copy of a session's state.
type Snapshot struct {
	Found     []string  `json:"found"`
	Revealed  []Cell    `json:"revealed"`
	Remaining int       `json:"remaining"`
	Completed bool      `json:"completed"`
	RevealAll bool      `json:"reveal_all"`
	State     DragState `json:"state"`
}

// Session is one player's progress on a puzzle. The puzzle is shared and
// read-only; found words and revealed cells are guarded by the session mutex.
type Session struct {
	puzzle *Puzzle

	mu        sync.Mutex
	found     mapset.Set[string]
	revealed  mapset.Set[Cell]
	completed bool
	revealAll bool
	state     DragState
	anchor    Cell
}

// NewSession starts an empty session on p.
func NewSession(p *Puzzle) *Session {
	return &Session{
		puzzle:   p,
		found:    mapset.New[string](),
		revealed: mapset.New[Cell](),
	}
}

// Puzzle returns the puzzle being played.
func (s *Session) Puzzle() *Puzzle { return s.puzzle }

// Begin starts a drag at cell. An uncommitted drag in progress is discarded.
func (s *Session) Begin(cell Cell) bool {
	if !s.puzzle.Grid.Contains(cell) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Dragging
	s.anchor = cell
	return true
}

// Move returns the preview path from the drag anchor to cell. It has no
// effect on found words and returns nil when no drag is active.
func (s *Session) Move(cell Cell) []Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Dragging || !s.puzzle.Grid.Contains(cell) {
		return nil
	}
	return PreviewPath(s.anchor, cell)
}

// Release commits the active drag at cell. Without an active drag it is a no-op.
func (s *Session) Release(cell Cell) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Dragging {
		return Outcome{}
	}
	s.state = Resolving
	defer func() { s.state = Idle }()
	return s.commit(s.anchor, cell)
}

// Cancel drops an uncommitted drag.
func (s *Session) Cancel() {
	s.mu.Lock()
	s.state = Idle
	s.mu.Unlock()
}

// Select commits a selection given both endpoints at once, for callers that
// only learn about a drag when it ends. Any drag in progress is discarded.
func (s *Session) Select(start, end Cell) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Resolving
	defer func() { s.state = Idle }()
	return s.commit(start, end)
}

func (s *Session) commit(start, end Cell) Outcome {
	res := Resolve(s.puzzle.Grid, s.puzzle.WordList, s.found, start, end)
	if !res.Matched() {
		return Outcome{}
	}

	s.found.Put(res.Word)
	for _, c := range res.Cells {
		s.revealed.Put(c)
	}

	out := Outcome{MatchResult: res}
	if !s.completed && s.found.Size() == len(s.puzzle.WordList) {
		s.completed = true
		out.Completed = true
	}
	return out
}

// Restart clears progress without touching the grid.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.found = mapset.New[string]()
	s.revealed = mapset.New[Cell]()
	s.completed = false
	s.revealAll = false
	s.state = Idle
}

// SetRevealAll toggles showing the whole picture. It does not count as finding words.
func (s *Session) SetRevealAll(on bool) {
	s.mu.Lock()
	s.revealAll = on
	s.mu.Unlock()
}

// Found reports whether word has been found.
func (s *Session) Found(word string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.found.Has(word)
}

// Completed reports whether every word has been found.
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// Snapshot returns a copy of the current state. Found follows the puzzle's
// word order and Revealed is sorted row-major.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := make([]string, 0, s.found.Size())
	for _, w := range s.puzzle.WordList {
		if s.found.Has(w) {
			found = append(found, w)
		}
	}

	revealed := make([]Cell, 0, s.revealed.Size())
	s.revealed.Each(func(c Cell) {
		revealed = append(revealed, c)
	})
	slices.SortFunc(revealed, func(a, b Cell) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})

	return Snapshot{
		Found:     found,
		Revealed:  revealed,
		Remaining: len(s.puzzle.WordList) - len(found),
		Completed: s.completed,
		RevealAll: s.revealAll,
		State:     s.state,
	}
}
