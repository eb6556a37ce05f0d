package qrencode

import (
	"fmt"
	"sync"

	"github.com/townmi/qrencode/bitmap"
	"github.com/townmi/qrencode/bitset"
)

// Bitmap is the module storage a symbol is drawn into.
//
// Row exposes the raw bytes of a row: modules packed most significant bit
// first, rows starting on a byte boundary, trailing padding bits zero. The
// masking and penalty passes work on these bytes directly.
type Bitmap interface {
	Get(x, y int) (v, ok bool)
	Set(x, y int, v bool) bool
	Dims() (w, h int)
	Row(y int) []byte
}

var _ Bitmap = (*bitmap.Bitmap)(nil)

// newDefaultBitmap allocates the package's own Bitmap implementation.
func newDefaultBitmap(w, h int) Bitmap {
	return bitmap.New(w, h)
}

// copyBitmap copies src into dst row by row. Both must have equal dimensions.
func copyBitmap(dst, src Bitmap) {
	_, h := src.Dims()
	for y := 0; y < h; y++ {
		copy(dst.Row(y), src.Row(y))
	}
}

// ModuleClass identifies the role of a module in a symbol.
type ModuleClass uint8

const (
	ClassData ModuleClass = iota
	ClassFinder
	ClassTiming
	ClassFormat
	ClassAlignment
	ClassVersion
	ClassFixed
)

func (c ModuleClass) String() string {
	switch c {
	case ClassData:
		return "data"
	case ClassFinder:
		return "finder"
	case ClassTiming:
		return "timing"
	case ClassFormat:
		return "format"
	case ClassAlignment:
		return "alignment"
	case ClassVersion:
		return "version"
	case ClassFixed:
		return "fixed"
	}

	return fmt.Sprintf("ModuleClass(%d)", int(c))
}

var (
	alignmentPatternCenter = [][]int{
		{}, // Version 0 doesn't exist.
		{}, // Version 1 doesn't use alignment patterns.
		{6, 18},
		{6, 22},
		{6, 26},
		{6, 30},
		{6, 34},
		{6, 22, 38},
		{6, 24, 42},
		{6, 26, 46},
		{6, 28, 50},
		{6, 30, 54},
		{6, 32, 58},
		{6, 34, 62},
		{6, 26, 46, 66},
		{6, 26, 48, 70},
		{6, 26, 50, 74},
		{6, 30, 54, 78},
		{6, 30, 56, 82},
		{6, 30, 58, 86},
		{6, 34, 62, 90},
		{6, 28, 50, 72, 94},
		{6, 26, 50, 74, 98},
		{6, 30, 54, 78, 102},
		{6, 28, 54, 80, 106},
		{6, 32, 58, 84, 110},
		{6, 30, 58, 86, 114},
		{6, 34, 62, 90, 118},
		{6, 26, 50, 74, 98, 122},
		{6, 30, 54, 78, 102, 126},
		{6, 26, 52, 78, 104, 130},
		{6, 30, 56, 82, 108, 134},
		{6, 34, 60, 86, 112, 138},
		{6, 30, 58, 86, 114, 142},
		{6, 34, 62, 90, 118, 146},
		{6, 30, 54, 78, 102, 126, 150},
		{6, 24, 50, 76, 102, 128, 154},
		{6, 28, 54, 80, 106, 132, 158},
		{6, 32, 58, 84, 110, 136, 162},
		{6, 26, 54, 82, 110, 138, 166},
		{6, 30, 58, 86, 114, 142, 170},
	}

	finderPattern = [][]bool{
		{b1, b1, b1, b1, b1, b1, b1},
		{b1, b0, b0, b0, b0, b0, b1},
		{b1, b0, b1, b1, b1, b0, b1},
		{b1, b0, b1, b1, b1, b0, b1},
		{b1, b0, b1, b1, b1, b0, b1},
		{b1, b0, b0, b0, b0, b0, b1},
		{b1, b1, b1, b1, b1, b1, b1},
	}

	alignmentPattern = [][]bool{
		{b1, b1, b1, b1, b1},
		{b1, b0, b0, b0, b1},
		{b1, b0, b1, b0, b1},
		{b1, b0, b0, b0, b1},
		{b1, b1, b1, b1, b1},
	}
)

const (
	b0 = false
	b1 = true

	finderPatternSize = 7

	// timingIndex is the row of the horizontal and the column of the
	// vertical timing pattern.
	timingIndex = 6
)

// AlignmentCenters returns the alignment pattern centres of a version as
// points, excluding the three positions covered by finder patterns.
func AlignmentCenters(version int) [][2]int {
	if validVersion(version) != nil {
		return nil
	}

	coords := alignmentPatternCenter[version]
	if len(coords) == 0 {
		return nil
	}

	first, last := coords[0], coords[len(coords)-1]

	var centers [][2]int
	for _, x := range coords {
		for _, y := range coords {
			if (x == first && y == first) || (x == first && y == last) || (x == last && y == first) {
				continue
			}
			centers = append(centers, [2]int{x, y})
		}
	}

	return centers
}

// isAlignment reports whether (x, y) lies in an alignment pattern, that is
// within Chebyshev distance 2 of a centre.
func isAlignment(x, y, version int) bool {
	coords := alignmentPatternCenter[version]
	if len(coords) == 0 {
		return false
	}
	first, last := coords[0], coords[len(coords)-1]

	for _, cx := range coords {
		if x < cx-2 || x > cx+2 {
			continue
		}
		for _, cy := range coords {
			if y < cy-2 || y > cy+2 {
				continue
			}
			if (cx == first && cy == first) || (cx == first && cy == last) || (cx == last && cy == first) {
				continue
			}
			return true
		}
	}

	return false
}

// Classify returns the class of module (x, y) in a symbol of the given
// version. ok is false for coordinates outside the symbol or an invalid
// version.
func Classify(x, y, version int) (class ModuleClass, ok bool) {
	if validVersion(version) != nil {
		return 0, false
	}

	size := SymbolSize(version)
	if x < 0 || y < 0 || x >= size || y >= size {
		return 0, false
	}

	// Finder patterns with their separators.
	fp := finderPatternSize + 1
	if (x < fp && y < fp) || (x >= size-fp && y < fp) || (x < fp && y >= size-fp) {
		return ClassFinder, true
	}

	if x == fp && y == size-fp {
		return ClassFixed, true
	}

	// Format information wraps the top left finder pattern, stepping over
	// the timing patterns, and is repeated beside the other two.
	if (x == fp && ((y <= fp && y != timingIndex) || y > size-fp)) ||
		(y == fp && ((x <= fp && x != timingIndex) || x >= size-fp)) {
		return ClassFormat, true
	}

	if version >= 7 {
		if (x < 6 && y >= size-11 && y < size-8) || (y < 6 && x >= size-11 && x < size-8) {
			return ClassVersion, true
		}
	}

	if isAlignment(x, y, version) {
		return ClassAlignment, true
	}

	if x == timingIndex || y == timingIndex {
		return ClassTiming, true
	}

	return ClassData, true
}

// dataModuleMaps caches, per version, a bitmap with a set bit at every data
// module. Entries are immutable once built.
var dataModuleMaps [MaxVersion + 1]struct {
	once  sync.Once
	m     *bitmap.Bitmap
	count int
}

func dataModuleMap(version int) (*bitmap.Bitmap, int) {
	e := &dataModuleMaps[version]
	e.once.Do(func() {
		size := SymbolSize(version)
		e.m = bitmap.New(size, size)

		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				if c, _ := Classify(x, y, version); c == ClassData {
					e.m.Set(x, y, true)
				}
			}
		}
		e.count = e.m.Count()
	})

	return e.m, e.count
}

// DataModuleCount returns the number of data modules in a symbol of the
// given version: 8 times its total codewords plus its remainder bits.
func DataModuleCount(version int) (int, error) {
	if err := validVersion(version); err != nil {
		return 0, err
	}

	_, n := dataModuleMap(version)
	return n, nil
}

// zigzagNext returns the module after (x, y) on the placement path, data or
// not. The path covers the symbol in two-module wide columns from the right,
// alternately upwards and downwards, skipping the vertical timing pattern.
func zigzagNext(x, y, size int) (int, int, bool) {
	if x == timingIndex {
		return 0, 0, false
	}

	// Column pairs right of the timing pattern have an even right column,
	// those left of it an odd one.
	right := x
	if x > timingIndex {
		right += x % 2
	} else {
		right += 1 - x%2
	}

	pair := (size - 1 - right) / 2
	if right < timingIndex {
		pair = (size - 2 - right) / 2
	}
	upwards := pair%2 == 0

	if x == right {
		return right - 1, y, true
	}

	ny := y + 1
	if upwards {
		ny = y - 1
	}
	if ny >= 0 && ny < size {
		return right, ny, true
	}

	right -= 2
	if right == timingIndex {
		right--
	}
	if right < 1 {
		return 0, 0, false
	}

	return right, y, true
}

// NextDataBit returns the data module following (x, y) in placement order.
// ok is false once the path is exhausted.
func NextDataBit(x, y, version int) (nx, ny int, ok bool) {
	if validVersion(version) != nil {
		return 0, 0, false
	}
	size := SymbolSize(version)

	for {
		x, y, ok = zigzagNext(x, y, size)
		if !ok {
			return 0, 0, false
		}
		if c, _ := Classify(x, y, version); c == ClassData {
			return x, y, true
		}
	}
}

// set2dPattern draws pattern with its top left corner at (x, y).
func set2dPattern(b Bitmap, x, y int, pattern [][]bool) {
	for j, row := range pattern {
		for i, v := range row {
			b.Set(x+i, y+j, v)
		}
	}
}

// allocBitmap returns a size x size bitmap from newBitmap, rejecting nil or
// wrongly sized storage.
func allocBitmap(newBitmap func(w, h int) Bitmap, size int) (Bitmap, error) {
	b := newBitmap(size, size)
	if b == nil {
		return nil, fmt.Errorf("%w: nil for %dx%d", ErrInvalidBitmap, size, size)
	}
	if w, h := b.Dims(); w != size || h != size {
		return nil, fmt.Errorf("%w: %dx%d, want %dx%d", ErrInvalidBitmap, w, h, size, size)
	}

	return b, nil
}

// buildBlankSymbol returns a symbol with every function pattern drawn:
// finder patterns and separators, timing patterns, alignment patterns, the
// dark module and, from version 7, version information. Format information
// is left light; it depends on the mask.
func buildBlankSymbol(version int, newBitmap func(w, h int) Bitmap) (Bitmap, error) {
	size := SymbolSize(version)
	b, err := allocBitmap(newBitmap, size)
	if err != nil {
		return nil, err
	}

	// Finder patterns. Separators are the light modules around them, clear
	// in a new bitmap but drawn anyway.
	for _, p := range [][2]int{{0, 0}, {size - finderPatternSize, 0}, {0, size - finderPatternSize}} {
		for j := -1; j <= finderPatternSize; j++ {
			for i := -1; i <= finderPatternSize; i++ {
				b.Set(p[0]+i, p[1]+j, false)
			}
		}
		set2dPattern(b, p[0], p[1], finderPattern)
	}

	// Timing patterns.
	for i := finderPatternSize + 1; i < size-finderPatternSize-1; i++ {
		b.Set(i, timingIndex, i%2 == 0)
		b.Set(timingIndex, i, i%2 == 0)
	}

	// Alignment patterns.
	for _, c := range AlignmentCenters(version) {
		set2dPattern(b, c[0]-2, c[1]-2, alignmentPattern)
	}

	// Dark module.
	b.Set(finderPatternSize+1, size-finderPatternSize-1, true)

	writeVersionInfo(b, version)

	return b, nil
}

// placeData writes data along the placement path. data must hold exactly one
// bit per data module.
func placeData(b Bitmap, version int, data *bitset.Bitset) error {
	_, numModules := dataModuleMap(version)
	if data.Len() != numModules {
		return fmt.Errorf("%w: %d bits for %d data modules of version %d",
			ErrBlockSizeMismatch, data.Len(), numModules, version)
	}

	size := SymbolSize(version)
	x, y := size-1, size-1

	for i := 0; i < data.Len(); i++ {
		b.Set(x, y, data.At(i))

		var ok bool
		x, y, ok = NextDataBit(x, y, version)
		if !ok && i != data.Len()-1 {
			return fmt.Errorf("%w: placement path ended after %d of %d bits",
				ErrBlockSizeMismatch, i+1, data.Len())
		}
	}

	return nil
}
