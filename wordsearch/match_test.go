package wordsearch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"
)

func gridOf(rows ...string) Grid {
	g := make(Grid, len(rows))
	for r, row := range rows {
		g[r] = strings.Split(row, "")
	}
	return g
}

// CAT across the top, DOG down the right edge, OWL on the diagonal.
func testPuzzle() *Puzzle {
	return &Puzzle{
		Grid: gridOf(
			"CATZH",
			"QOEPD",
			"RSWYO",
			"BIRLG",
			"MNUKJ",
		),
		Words: []WordPlacement{
			{Word: "CAT", Start: Cell{0, 0}, End: Cell{0, 2}, Direction: Horizontal},
			{Word: "DOG", Start: Cell{1, 4}, End: Cell{3, 4}, Direction: Vertical},
			{Word: "OWL", Start: Cell{1, 1}, End: Cell{3, 3}, Direction: DiagonalDown},
		},
		WordList: []string{"CAT", "DOG", "OWL"},
	}
}

func TestTestPuzzleIsConsistent(t *testing.T) {
	require.NoError(t, testPuzzle().Verify())
}

func TestLine(t *testing.T) {
	cells, ok := Line(Cell{2, 2}, Cell{2, 2})
	require.True(t, ok)
	assert.Equal(t, []Cell{{2, 2}}, cells)

	cells, ok = Line(Cell{0, 3}, Cell{0, 0})
	require.True(t, ok)
	assert.Equal(t, []Cell{{0, 3}, {0, 2}, {0, 1}, {0, 0}}, cells)

	cells, ok = Line(Cell{3, 0}, Cell{1, 2})
	require.True(t, ok)
	assert.Equal(t, []Cell{{3, 0}, {2, 1}, {1, 2}}, cells)

	_, ok = Line(Cell{0, 0}, Cell{1, 2})
	assert.False(t, ok)
	_, ok = Line(Cell{0, 0}, Cell{2, 5})
	assert.False(t, ok)
}

func TestPreviewPath(t *testing.T) {
	assert.Equal(t, []Cell{{0, 0}, {1, 1}, {2, 2}}, PreviewPath(Cell{0, 0}, Cell{2, 2}))
	assert.Equal(t, []Cell{{0, 0}, {1, 2}}, PreviewPath(Cell{0, 0}, Cell{1, 2}))
}

func TestResolveForwardAndReverse(t *testing.T) {
	p := testPuzzle()
	found := mapset.New[string]()

	cases := []struct {
		name       string
		start, end Cell
		want       string
	}{
		{"horizontal", Cell{0, 0}, Cell{0, 2}, "CAT"},
		{"horizontal reversed", Cell{0, 2}, Cell{0, 0}, "CAT"},
		{"vertical", Cell{1, 4}, Cell{3, 4}, "DOG"},
		{"vertical reversed", Cell{3, 4}, Cell{1, 4}, "DOG"},
		{"diagonal", Cell{1, 1}, Cell{3, 3}, "OWL"},
		{"diagonal reversed", Cell{3, 3}, Cell{1, 1}, "OWL"},
		{"too short", Cell{0, 0}, Cell{0, 1}, ""},
		{"too long", Cell{0, 0}, Cell{0, 3}, ""},
		{"single cell", Cell{2, 2}, Cell{2, 2}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Resolve(p.Grid, p.WordList, found, tc.start, tc.end)
			assert.Equal(t, tc.want, res.Word)
			assert.Equal(t, tc.want != "", res.Matched())
			if res.Matched() {
				assert.Len(t, res.Cells, len(tc.want))
				assert.Equal(t, tc.start, res.Cells[0])
				assert.Equal(t, tc.end, res.Cells[len(res.Cells)-1])
			}
		})
	}
}

func TestResolveRejectsSkewedLine(t *testing.T) {
	p := testPuzzle()
	// (0,0)->(1,2) reads "C?E" on no straight line; even a word list holding
	// every plausible reading must not match.
	words := []string{"CE", "CAE", "COE", "CQE", "CPE"}
	res := Resolve(p.Grid, words, nil, Cell{0, 0}, Cell{1, 2})
	assert.False(t, res.Matched())
	assert.Empty(t, res.Cells)
}

func TestResolveSkipsFoundWords(t *testing.T) {
	p := testPuzzle()
	found := mapset.New[string]()
	found.Put("CAT")

	res := Resolve(p.Grid, p.WordList, found, Cell{0, 0}, Cell{0, 2})
	assert.False(t, res.Matched())
	res = Resolve(p.Grid, p.WordList, found, Cell{0, 2}, Cell{0, 0})
	assert.False(t, res.Matched())
}

func TestResolveOutOfBounds(t *testing.T) {
	p := testPuzzle()
	assert.False(t, Resolve(p.Grid, p.WordList, nil, Cell{0, 0}, Cell{0, 9}).Matched())
	assert.False(t, Resolve(p.Grid, p.WordList, nil, Cell{-1, 0}, Cell{1, 0}).Matched())
	assert.False(t, Resolve(nil, p.WordList, nil, Cell{0, 0}, Cell{0, 0}).Matched())
}

func TestResolveSwapSymmetry(t *testing.T) {
	p, err := Generate(seeded(42), []string{"MOUNTAIN", "RIVER", "FOREST", "CANYON", "VALLEY"}, 12, true)
	require.NoError(t, err)

	size := p.Size()
	for r1 := 0; r1 < size; r1++ {
		for c1 := 0; c1 < size; c1++ {
			for _, wp := range p.Words {
				a, b := Cell{r1, c1}, wp.End
				fwd := Resolve(p.Grid, p.WordList, nil, a, b)
				back := Resolve(p.Grid, p.WordList, nil, b, a)
				assert.Equal(t, fwd.Word, back.Word, "%v <-> %v", a, b)
			}
		}
	}
}

func TestResolveEveryPlacement(t *testing.T) {
	for seed := range uint64(20) {
		p, err := Generate(seeded(seed), []string{"PIXEL", "CAMERA", "LENS", "FOCUS", "ZOOM", "FLASH"}, 10, true)
		require.NoError(t, err)
		for _, wp := range p.Words {
			res := Resolve(p.Grid, p.WordList, nil, wp.Start, wp.End)
			assert.Equal(t, wp.Word, res.Word)
			assert.Equal(t, wp.Cells(), res.Cells)
		}
	}
}
