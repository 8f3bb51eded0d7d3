package wordsearch

import (
	"fmt"
	"strings"
)

// Cell is a 0-indexed grid coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Direction names the line a placed word runs along.
type Direction string

const (
	Horizontal   Direction = "horizontal"
	Vertical     Direction = "vertical"
	DiagonalDown Direction = "diagonal_down"
	DiagonalUp   Direction = "diagonal_up"
)

// step returns the unit vector of the direction.
func (d Direction) step() (dr, dc int) {
	switch d {
	case Horizontal:
		return 0, 1
	case Vertical:
		return 1, 0
	case DiagonalDown:
		return 1, 1
	case DiagonalUp:
		return -1, 1
	}
	return 0, 0
}

// Grid is a square matrix of single uppercase letters, indexed [row][col].
type Grid [][]string

// Size returns the side length of the grid.
func (g Grid) Size() int { return len(g) }

// Contains reports whether c lies inside the grid.
func (g Grid) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < len(g) && c.Col >= 0 && c.Col < len(g[c.Row])
}

// String renders the grid one row per line, for logs and test failures.
func (g Grid) String() string {
	var b strings.Builder
	for _, row := range g {
		b.WriteString(strings.Join(row, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// WordPlacement records where a word ended up. Start and End are inclusive.
type WordPlacement struct {
	Word      string    `json:"word"`
	Start     Cell      `json:"start"`
	End       Cell      `json:"end"`
	Direction Direction `json:"direction"`
}

// Cells returns the path covered by the placement.
func (p WordPlacement) Cells() []Cell {
	dr, dc := p.Direction.step()
	cells := make([]Cell, len(p.Word))
	for i := range cells {
		cells[i] = Cell{Row: p.Start.Row + i*dr, Col: p.Start.Col + i*dc}
	}
	return cells
}

// Puzzle is the immutable result of a successful Generate call.
// WordList holds only the placed words, in placement order.
type Puzzle struct {
	Grid     Grid            `json:"grid"`
	Words    []WordPlacement `json:"words"`
	WordList []string        `json:"wordList"`
	Dropped  []string        `json:"dropped,omitempty"`
}

// Size returns the grid side length.
func (p *Puzzle) Size() int { return p.Grid.Size() }

// Verify checks that every cell holds a letter A-Z and that every placement
// still reads back its word from the final grid.
func (p *Puzzle) Verify() error {
	size := len(p.Grid)
	for r, row := range p.Grid {
		if len(row) != size {
			return fmt.Errorf("row %d has %d cells, want %d", r, len(row), size)
		}
		for c, s := range row {
			if len(s) != 1 || s[0] < 'A' || s[0] > 'Z' {
				return fmt.Errorf("cell (%d,%d) holds %q", r, c, s)
			}
		}
	}

	for _, wp := range p.Words {
		var b strings.Builder
		for _, c := range wp.Cells() {
			if !p.Grid.Contains(c) {
				return fmt.Errorf("placement of %s leaves the grid at (%d,%d)", wp.Word, c.Row, c.Col)
			}
			b.WriteString(p.Grid[c.Row][c.Col])
		}
		if got := b.String(); got != wp.Word {
			return fmt.Errorf("placement of %s reads %s", wp.Word, got)
		}
	}
	return nil
}
