package main

import (
	"time"

	"github.com/bodul/wordsearch/wordsearch"
)

// GameSession is one play-through of a stored puzzle.
type GameSession struct {
	ID        string    `json:"id"`
	PuzzleID  string    `json:"puzzle_id"`
	CreatedAt time.Time `json:"created_at"`

	session *wordsearch.Session
}

// Select commits a selection from start to end.
func (g *GameSession) Select(start, end wordsearch.Cell) wordsearch.Outcome {
	return g.session.Select(start, end)
}

// Preview returns the cells highlighted by a drag from start to end.
// Endpoints outside the grid give no preview.
func (g *GameSession) Preview(start, end wordsearch.Cell) []wordsearch.Cell {
	grid := g.session.Puzzle().Grid
	if !grid.Contains(start) || !grid.Contains(end) {
		return nil
	}
	return wordsearch.PreviewPath(start, end)
}

// Restart clears the session's progress.
func (g *GameSession) Restart() { g.session.Restart() }

// SetRevealAll toggles the full-picture reveal.
func (g *GameSession) SetRevealAll(on bool) { g.session.SetRevealAll(on) }

// GetState returns a copy of the session's progress.
func (g *GameSession) GetState() wordsearch.Snapshot {
	return g.session.Snapshot()
}
