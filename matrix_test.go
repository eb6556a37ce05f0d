package qrencode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/townmi/qrencode/bitmap"
	"github.com/townmi/qrencode/bitset"
)

func TestDataModuleCount(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		total, err := TotalCodewords(v)
		require.NoError(t, err)

		n, err := DataModuleCount(v)
		require.NoError(t, err)
		assert.Equal(t, 8*total+versionTable[v].numRemainderBits, n, "version %d", v)
	}

	_, err := DataModuleCount(0)
	assert.ErrorIs(t, err, ErrInvalidVersion)
	_, err = DataModuleCount(41)
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		x, y, version int
		expected      ModuleClass
	}{
		{0, 0, 1, ClassFinder},
		{7, 7, 1, ClassFinder},  // Separator.
		{13, 0, 1, ClassFinder}, // Top right separator.
		{0, 13, 1, ClassFinder},
		{8, 13, 1, ClassFixed},
		{8, 0, 1, ClassFormat},
		{0, 8, 1, ClassFormat},
		{8, 8, 1, ClassFormat},
		{20, 8, 1, ClassFormat},
		{8, 20, 1, ClassFormat},
		{8, 6, 1, ClassTiming},
		{6, 8, 1, ClassTiming},
		{10, 6, 1, ClassTiming},
		{6, 10, 1, ClassTiming},
		{20, 20, 1, ClassData},
		{9, 9, 1, ClassData},
		{18, 18, 2, ClassAlignment},
		{16, 20, 2, ClassAlignment},
		{15, 18, 2, ClassData},
		{0, 34, 7, ClassVersion},
		{5, 36, 7, ClassVersion},
		{34, 0, 7, ClassVersion},
		{6, 34, 7, ClassTiming},
		{22, 6, 7, ClassAlignment}, // Alignment pattern on the timing row.
		{22, 22, 7, ClassAlignment},
	}

	for _, test := range tests {
		class, ok := Classify(test.x, test.y, test.version)
		require.True(t, ok, "(%d, %d) version %d", test.x, test.y, test.version)
		assert.Equal(t, test.expected, class, "(%d, %d) version %d", test.x, test.y, test.version)
	}

	_, ok := Classify(21, 0, 1)
	assert.False(t, ok)
	_, ok = Classify(0, -1, 1)
	assert.False(t, ok)
	_, ok = Classify(0, 0, 41)
	assert.False(t, ok)
}

func TestClassCounts(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		size := SymbolSize(v)
		counts := map[ModuleClass]int{}
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				c, _ := Classify(x, y, v)
				counts[c]++
			}
		}

		assert.Equal(t, 3*64, counts[ClassFinder], "version %d", v)
		assert.Equal(t, 1, counts[ClassFixed], "version %d", v)
		assert.Equal(t, 30, counts[ClassFormat], "version %d", v)
		assert.Equal(t, 25*len(AlignmentCenters(v)), counts[ClassAlignment], "version %d", v)
		if v >= 7 {
			assert.Equal(t, 36, counts[ClassVersion], "version %d", v)
		} else {
			assert.Zero(t, counts[ClassVersion], "version %d", v)
		}
	}
}

func TestAlignmentCenters(t *testing.T) {
	assert.Empty(t, AlignmentCenters(1))
	assert.Equal(t, [][2]int{{18, 18}}, AlignmentCenters(2))
	assert.Len(t, AlignmentCenters(7), 6)
	assert.Len(t, AlignmentCenters(40), 46)
	assert.Nil(t, AlignmentCenters(0))
}

func TestNextDataBitVisitsEveryDataModule(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		size := SymbolSize(v)
		seen := make(map[[2]int]bool)

		x, y, ok := size-1, size-1, true
		for ok {
			c, _ := Classify(x, y, v)
			require.Equal(t, ClassData, c, "(%d, %d) version %d", x, y, v)
			require.False(t, seen[[2]int{x, y}], "(%d, %d) visited twice, version %d", x, y, v)
			seen[[2]int{x, y}] = true

			x, y, ok = NextDataBit(x, y, v)
		}

		n, _ := DataModuleCount(v)
		assert.Len(t, seen, n, "version %d", v)
	}
}

func TestNextDataBitOrder(t *testing.T) {
	expected := [][2]int{
		{20, 20}, {19, 20}, {20, 19}, {19, 19}, {20, 18}, {19, 18},
	}

	x, y := 20, 20
	for i, p := range expected[1:] {
		var ok bool
		x, y, ok = NextDataBit(x, y, 1)
		require.True(t, ok)
		assert.Equal(t, p, [2]int{x, y}, "step %d", i+1)
	}

	// Moving up column pair 19-20 ends at row 9, below the format
	// information, and continues down pair 17-18.
	x, y, ok := NextDataBit(19, 9, 1)
	require.True(t, ok)
	assert.Equal(t, [2]int{18, 9}, [2]int{x, y})
}

func blankSymbol(t *testing.T, version int) Bitmap {
	t.Helper()

	b, err := buildBlankSymbol(version, newDefaultBitmap)
	require.NoError(t, err)

	return b
}

func TestBlankSymbol(t *testing.T) {
	for _, v := range []int{1, 2, 7, 40} {
		b := blankSymbol(t, v)
		size := SymbolSize(v)

		dark, ok := b.Get(8, size-8)
		require.True(t, ok)
		assert.True(t, dark, "version %d dark module", v)

		for _, corner := range [][2]int{{0, 0}, {size - 7, 0}, {0, size - 7}} {
			for j := 0; j < 7; j++ {
				for i := 0; i < 7; i++ {
					got, _ := b.Get(corner[0]+i, corner[1]+j)
					assert.Equal(t, finderPattern[j][i], got, "finder %v (%d, %d)", corner, i, j)
				}
			}
		}

		for i := 8; i < size-8; i++ {
			got, _ := b.Get(i, timingIndex)
			assert.Equal(t, i%2 == 0, got, "timing row %d", i)
			got, _ = b.Get(timingIndex, i)
			assert.Equal(t, i%2 == 0, got, "timing column %d", i)
		}

		// Nothing is drawn on data modules.
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				if c, _ := Classify(x, y, v); c == ClassData {
					dark, _ := b.Get(x, y)
					require.False(t, dark, "data module (%d, %d) version %d", x, y, v)
				}
			}
		}
	}
}

func TestBlankSymbolRejectsBadAllocator(t *testing.T) {
	_, err := buildBlankSymbol(1, func(w, h int) Bitmap { return nil })
	assert.ErrorIs(t, err, ErrInvalidBitmap)

	_, err = buildBlankSymbol(2, func(w, h int) Bitmap { return bitmap.New(w, h-1) })
	assert.ErrorIs(t, err, ErrInvalidBitmap)
	assert.ErrorContains(t, err, "25x24, want 25x25")
}

func TestBlankSymbolVersionInfo(t *testing.T) {
	b := blankSymbol(t, 7)

	version, err := ReadVersionInfo(b)
	require.NoError(t, err)
	assert.Equal(t, 7, version)

	// Both copies agree.
	size := SymbolSize(7)
	for i := 0; i < versionInfoLengthBits; i++ {
		p := VersionInfoCoordinates(i, size)
		a, _ := b.Get(p[0].X, p[0].Y)
		c, _ := b.Get(p[1].X, p[1].Y)
		assert.Equal(t, a, c, "bit %d", i)
	}
}

func TestPlaceData(t *testing.T) {
	n, _ := DataModuleCount(1)

	b := blankSymbol(t, 1)
	data := bitset.New()
	data.AppendNumBools(n, true)
	require.NoError(t, placeData(b, 1, data))

	dataModules, _ := dataModuleMap(1)
	for y := 0; y < 21; y++ {
		for x := 0; x < 21; x++ {
			isData, _ := dataModules.Get(x, y)
			if isData {
				v, _ := b.Get(x, y)
				assert.True(t, v, "(%d, %d)", x, y)
			}
		}
	}

	short := bitset.New(true, false)
	assert.ErrorIs(t, placeData(blankSymbol(t, 1), 1, short), ErrBlockSizeMismatch)
}

func TestPlaceDataFollowsPath(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		version := rapid.IntRange(1, 12).Draw(t, "version")
		n, _ := DataModuleCount(version)
		raw := rapid.SliceOfN(rapid.Byte(), (n+7)/8, (n+7)/8).Draw(t, "raw")

		data := bitset.New()
		data.AppendBytes(raw[:n/8])
		if r := n % 8; r > 0 {
			data.AppendByte(raw[n/8]>>(8-r), r)
		}

		b := bitmap.New(SymbolSize(version), SymbolSize(version))
		if err := placeData(b, version, data); err != nil {
			t.Fatal(err)
		}

		x, y := SymbolSize(version)-1, SymbolSize(version)-1
		for i := 0; i < n; i++ {
			v, _ := b.Get(x, y)
			if v != data.At(i) {
				t.Fatalf("bit %d at (%d, %d): got %v", i, x, y, v)
			}
			x, y, _ = NextDataBit(x, y, version)
		}
	})
}
