package wordsearch

import (
	"slices"
	"strings"
)

// Set is the read side of a found-word set.
type Set interface {
	Has(word string) bool
}

// MatchResult is the outcome of resolving a selection. Word is empty when
// nothing matched, in which case Cells is nil.
type MatchResult struct {
	Word  string `json:"word,omitempty"`
	Cells []Cell `json:"cells,omitempty"`
}

// Matched reports whether the selection spelled an unfound target word.
func (m MatchResult) Matched() bool { return m.Word != "" }

// Line returns the inclusive path from start to end when the two cells lie on
// a horizontal, vertical or 45° diagonal line.
func Line(start, end Cell) ([]Cell, bool) {
	dRow, dCol := end.Row-start.Row, end.Col-start.Col
	if dRow != 0 && dCol != 0 && abs(dRow) != abs(dCol) {
		return nil, false
	}

	dr, dc := sign(dRow), sign(dCol)
	n := max(abs(dRow), abs(dCol)) + 1
	cells := make([]Cell, n)
	for i := range cells {
		cells[i] = Cell{Row: start.Row + i*dr, Col: start.Col + i*dc}
	}
	return cells, true
}

// PreviewPath returns the cells to highlight while dragging from start to end:
// the whole line when the drag is straight, otherwise only the two endpoints.
func PreviewPath(start, end Cell) []Cell {
	if cells, ok := Line(start, end); ok {
		return cells
	}
	return []Cell{start, end}
}

// Resolve reads the letters between start and end and reports the target word
// they spell, forward first then reversed, skipping words already in found.
// It never modifies its arguments.
func Resolve(grid Grid, wordList []string, found Set, start, end Cell) MatchResult {
	if !grid.Contains(start) || !grid.Contains(end) {
		return MatchResult{}
	}
	cells, ok := Line(start, end)
	if !ok {
		return MatchResult{}
	}

	var b strings.Builder
	for _, c := range cells {
		b.WriteString(grid[c.Row][c.Col])
	}
	forward := b.String()
	reversed := reverse(forward)

	for _, candidate := range []string{forward, reversed} {
		if slices.Contains(wordList, candidate) && (found == nil || !found.Has(candidate)) {
			return MatchResult{Word: candidate, Cells: cells}
		}
	}
	return MatchResult{}
}

func reverse(s string) string {
	b := []byte(s)
	slices.Reverse(b)
	return string(b)
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
