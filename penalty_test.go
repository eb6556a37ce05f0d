package qrencode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/townmi/qrencode/bitmap"
)

// parseBitmap builds a bitmap from rows of '#' (dark) and '.' (light).
func parseBitmap(t testing.TB, rows ...string) *bitmap.Bitmap {
	t.Helper()

	b := bitmap.New(len(rows[0]), len(rows))
	for y, row := range rows {
		require.Len(t, row, len(rows[0]), "row %d", y)
		for x, c := range row {
			b.Set(x, y, c == '#')
		}
	}

	return b
}

func uniform(t testing.TB, size int, c string) *bitmap.Bitmap {
	rows := make([]string, size)
	for i := range rows {
		rows[i] = strings.Repeat(c, size)
	}

	return parseBitmap(t, rows...)
}

func TestPenaltyUniform(t *testing.T) {
	for _, c := range []string{".", "#"} {
		b := uniform(t, 7, c)

		// 14 runs of 7 score 3+2 each.
		assert.Equal(t, 70, PenaltyAdjacent(b), "colour %q", c)
		// One 7x7 block.
		assert.Equal(t, 3*6*6, PenaltyBlocks(b), "colour %q", c)
		assert.Equal(t, 0, PenaltyFinderLike(b), "colour %q", c)
		// 0% or 100% dark is ten 5% steps from half.
		assert.Equal(t, 100, PenaltyBalance(b), "colour %q", c)

		assert.Equal(t, 70+108+100, Penalty(b), "colour %q", c)
	}
}

func TestPenaltyCheckerboard(t *testing.T) {
	b := parseBitmap(t,
		"#.#.#.#.",
		".#.#.#.#",
		"#.#.#.#.",
		".#.#.#.#",
		"#.#.#.#.",
		".#.#.#.#",
		"#.#.#.#.",
		".#.#.#.#",
	)

	assert.Equal(t, 0, Penalty(b))
}

func TestPenaltyAdjacent(t *testing.T) {
	b := parseBitmap(t,
		"#####.#.#.",
		"######.#.#",
		"#######.#.",
		".#.#.#.#.#",
		"#.#.#.#.#.",
		".#.#.#.#.#",
		"#.#.#.#.#.",
		".#.#.#.#.#",
		"#.#.#.#.#.",
		".#.#.#.#.#",
	)

	// Rows: runs of 5 (nothing), 6 (4) and 7 (5). Columns hold runs of at
	// most 3.
	assert.Equal(t, 9, PenaltyAdjacent(b))
}

func TestPenaltyBlocksGreedy(t *testing.T) {
	b := parseBitmap(t,
		"##..",
		"##..",
		"##..",
		"##..",
	)

	// Two 2x4 blocks.
	assert.Equal(t, 2*3*1*3, PenaltyBlocks(b))

	// The 2x3 block found first claims its modules; the dark column left
	// over is 1 wide and scores nothing.
	b = parseBitmap(t,
		"##.",
		"###",
		"###",
	)
	assert.Equal(t, 3*1*2, PenaltyBlocks(b))
}

func TestPenaltyFinderLike(t *testing.T) {
	b := parseBitmap(t,
		"#.###.#.###",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
	)

	assert.Equal(t, 40, PenaltyFinderLike(b))

	b = parseBitmap(t,
		"#.###.###.#",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
	)

	// Overlapping occurrences at 0 and 4 both count.
	assert.Equal(t, 80, PenaltyFinderLike(b))
}

func TestPenaltyFinderLikeColumns(t *testing.T) {
	rows := []string{"#......", ".......", "#......", "#......", "#......", ".......", "#......"}
	assert.Equal(t, 40, PenaltyFinderLike(parseBitmap(t, rows...)))
}

func TestPenaltyBalance(t *testing.T) {
	tests := []struct {
		dark     int
		expected int
	}{
		{50, 0},
		{47, 10}, // 3% off rounds to one step.
		{52, 0},  // 2% off rounds to none.
		{40, 20}, // 10% off.
		{37, 30}, // 13% off rounds to 3 steps.
		{100, 100},
	}

	for _, test := range tests {
		b := bitmap.New(10, 10)
		for i := 0; i < test.dark; i++ {
			b.Set(i%10, i/10, true)
		}

		assert.Equal(t, test.expected, PenaltyBalance(b), "dark=%d", test.dark)
	}
}
