package wordsearch

import (
	"errors"
	"hash/maphash"
	"math/rand/v2"
	"slices"
)

// MaxAttempts is the number of random positions tried per word before it is dropped.
const MaxAttempts = 100

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	// ErrUnplaceable is returned when a non-empty word list yields no placement at all.
	ErrUnplaceable = errors.New("no word could be placed, try fewer or shorter words")
	// ErrInvalidSize is returned for a grid side length below 1.
	ErrInvalidSize = errors.New("grid size must be at least 1")
)

var (
	straight  = []Direction{Horizontal, Vertical}
	diagonals = []Direction{Horizontal, Vertical, DiagonalDown, DiagonalUp}
)

// NewRand returns a PCG source seeded from the runtime's hash seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// Generate places words into a size×size grid and fills the rest with random letters.
//
// Words are tried longest first; each gets MaxAttempts uniformly random
// (direction, start) draws and is dropped if none lands on empty cells only.
// Words longer than size, words with characters outside A-Z and repeats are
// dropped without an attempt. Dropped words are reported in Puzzle.Dropped.
//
// rng may be nil, in which case a freshly seeded source is used. The input
// slice is never modified.
func Generate(rng *rand.Rand, words []string, size int, allowDiagonals bool) (*Puzzle, error) {
	if size < 1 {
		return nil, ErrInvalidSize
	}
	if rng == nil {
		rng = NewRand()
	}

	dirs := straight
	if allowDiagonals {
		dirs = diagonals
	}

	grid := make([][]byte, size)
	for r := range grid {
		grid[r] = make([]byte, size)
	}

	sorted := slices.Clone(words)
	slices.SortStableFunc(sorted, func(a, b string) int { return len(b) - len(a) })

	p := &Puzzle{
		Words:    []WordPlacement{},
		WordList: []string{},
	}
	seen := make(map[string]bool, len(sorted))

	for _, word := range sorted {
		if !isLetters(word) || seen[word] || len(word) > size {
			p.Dropped = append(p.Dropped, word)
			continue
		}
		seen[word] = true

		wp, ok := place(rng, grid, word, dirs)
		if !ok {
			p.Dropped = append(p.Dropped, word)
			continue
		}
		p.Words = append(p.Words, wp)
		p.WordList = append(p.WordList, word)
	}

	if len(words) > 0 && len(p.WordList) == 0 {
		return nil, ErrUnplaceable
	}

	p.Grid = make(Grid, size)
	for r := range grid {
		p.Grid[r] = make([]string, size)
		for c, b := range grid[r] {
			if b == 0 {
				b = alphabet[rng.IntN(len(alphabet))]
			}
			p.Grid[r][c] = string(b)
		}
	}
	return p, nil
}

// place writes word into grid on success.
func place(rng *rand.Rand, grid [][]byte, word string, dirs []Direction) (WordPlacement, bool) {
	size := len(grid)
	n := len(word)

	for range MaxAttempts {
		dir := dirs[rng.IntN(len(dirs))]
		dr, dc := dir.step()
		row, col := rng.IntN(size), rng.IntN(size)

		endRow := row + (n-1)*dr
		endCol := col + (n-1)*dc
		if endRow < 0 || endRow >= size || endCol < 0 || endCol >= size {
			continue
		}

		free := true
		for i := 0; i < n; i++ {
			if grid[row+i*dr][col+i*dc] != 0 {
				free = false
				break
			}
		}
		if !free {
			continue
		}

		for i := 0; i < n; i++ {
			grid[row+i*dr][col+i*dc] = word[i]
		}
		return WordPlacement{
			Word:      word,
			Start:     Cell{Row: row, Col: col},
			End:       Cell{Row: endRow, Col: endCol},
			Direction: dir,
		}, true
	}
	return WordPlacement{}, false
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
