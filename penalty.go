package qrencode

import (
	"math"
	"math/bits"
)

// Penalty scoring ranks candidate masks; lower is better. The four rules
// cover the whole symbol, function patterns included.
const (
	penaltyWeight1 = 3
	penaltyWeight2 = 3
	penaltyWeight3 = 40
	penaltyWeight4 = 10

	// finderLikePattern is dark, light, dark, dark, dark, light, dark.
	finderLikePattern = 0x5d
)

// module returns the module at x in a raw row.
func module(row []byte, x int) bool {
	return row[x/8]&(0x80>>uint(x%8)) != 0
}

// Penalty returns the total penalty score of a symbol.
func Penalty(b Bitmap) int {
	return PenaltyAdjacent(b) + PenaltyBlocks(b) + PenaltyFinderLike(b) + PenaltyBalance(b)
}

// PenaltyAdjacent scores runs of more than five same coloured modules in a
// row or column. A run of length n scores n-2: the weight plus one for each
// module beyond five.
func PenaltyAdjacent(b Bitmap) int {
	size, _ := b.Dims()
	penalty := 0

	score := func(count int) int {
		if count > 5 {
			return penaltyWeight1 + count - 5
		}
		return 0
	}

	for y := 0; y < size; y++ {
		row := b.Row(y)
		lastValue := module(row, 0)
		count := 1

		for x := 1; x < size; x++ {
			v := module(row, x)
			if v == lastValue {
				count++
				continue
			}
			penalty += score(count)
			count = 1
			lastValue = v
		}
		penalty += score(count)
	}

	for x := 0; x < size; x++ {
		lastValue := module(b.Row(0), x)
		count := 1

		for y := 1; y < size; y++ {
			v := module(b.Row(y), x)
			if v == lastValue {
				count++
				continue
			}
			penalty += score(count)
			count = 1
			lastValue = v
		}
		penalty += score(count)
	}

	return penalty
}

// PenaltyBlocks scores same coloured rectangles of at least 2x2 modules.
//
// Blocks are found greedily in scan order: from each unclaimed module the
// widest same coloured run is tried first, narrowing until the run extends
// at least one row down. The block found is claimed so no module counts
// twice. An m x n block scores 3*(m-1)*(n-1).
func PenaltyBlocks(b Bitmap) int {
	size, _ := b.Dims()
	penalty := 0

	claimed := make([]bool, size*size)
	free := func(x, y int, v bool) bool {
		return !claimed[y*size+x] && module(b.Row(y), x) == v
	}

	for y := 0; y < size-1; y++ {
		for x := 0; x < size-1; x++ {
			v := module(b.Row(y), x)
			if !free(x, y, v) {
				continue
			}

			maxWidth := 1
			for x+maxWidth < size && free(x+maxWidth, y, v) {
				maxWidth++
			}

			for width := maxWidth; width >= 2; width-- {
				height := 1
			rows:
				for y+height < size {
					for i := 0; i < width; i++ {
						if !free(x+i, y+height, v) {
							break rows
						}
					}
					height++
				}

				if height < 2 {
					continue
				}

				for j := 0; j < height; j++ {
					for i := 0; i < width; i++ {
						claimed[(y+j)*size+x+i] = true
					}
				}
				penalty += penaltyWeight2 * (width - 1) * (height - 1)
				break
			}
		}
	}

	return penalty
}

// PenaltyFinderLike scores every occurrence of the 1:1:3:1:1 finder pattern
// sequence in a row or column, overlapping occurrences included.
func PenaltyFinderLike(b Bitmap) int {
	size, _ := b.Dims()
	penalty := 0

	for y := 0; y < size; y++ {
		row := b.Row(y)
		var window uint8

		for x := 0; x < size; x++ {
			window <<= 1
			if module(row, x) {
				window |= 1
			}
			if x >= 6 && window&0x7f == finderLikePattern {
				penalty += penaltyWeight3
			}
		}
	}

	for x := 0; x < size; x++ {
		var window uint8

		for y := 0; y < size; y++ {
			window <<= 1
			if module(b.Row(y), x) {
				window |= 1
			}
			if y >= 6 && window&0x7f == finderLikePattern {
				penalty += penaltyWeight3
			}
		}
	}

	return penalty
}

// PenaltyBalance scores the deviation of the dark module proportion from
// half: 10 points per 5% step, rounded.
func PenaltyBalance(b Bitmap) int {
	size, _ := b.Dims()

	numDarkModules := 0
	for y := 0; y < size; y++ {
		for _, d := range b.Row(y) {
			numDarkModules += bits.OnesCount8(d)
		}
	}

	percentDark := 100 * float64(numDarkModules) / float64(size*size)

	return penaltyWeight4 * int(math.Round(math.Abs(50-percentDark)/5))
}
