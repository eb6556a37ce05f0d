package qrencode

import "fmt"

const (
	MinVersion = 1
	MaxVersion = 40
)

// Size classes group versions sharing character count indicator widths.
const (
	sizeClass1To9 = iota
	sizeClass10To26
	sizeClass27To40

	numSizeClasses
)

// sizeClassOf returns the size class of a valid version.
func sizeClassOf(version int) int {
	switch {
	case version <= 9:
		return sizeClass1To9
	case version <= 26:
		return sizeClass10To26
	default:
		return sizeClass27To40
	}
}

// sizeClassVersions returns the first and last version of a size class.
func sizeClassVersions(class int) (first, last int) {
	switch class {
	case sizeClass1To9:
		return 1, 9
	case sizeClass10To26:
		return 10, 26
	case sizeClass27To40:
		return 27, 40
	}

	bug("unknown size class %d", class)
	return 0, 0
}

// SymbolSize returns the number of modules on each side of a symbol.
func SymbolSize(version int) int {
	return 17 + 4*version
}

func validVersion(version int) error {
	if version < MinVersion || version > MaxVersion {
		return fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}

	return nil
}

// versionTable is the per-version codeword layout from ISO/IEC 18004 table 9.
// For each level it gives the number of error correction blocks and the
// number of error correction codewords in each block. When the data does not
// divide evenly the trailing blocks hold one extra data codeword.
var versionTable = [MaxVersion + 1]struct {
	totalCodewords   int
	numRemainderBits int
	level            [4]struct{ numBlocks, numECCodewords int }
}{
	{},
	{26, 0, [4]struct{ numBlocks, numECCodewords int }{{1, 7}, {1, 10}, {1, 13}, {1, 17}}},
	{44, 7, [4]struct{ numBlocks, numECCodewords int }{{1, 10}, {1, 16}, {1, 22}, {1, 28}}},
	{70, 7, [4]struct{ numBlocks, numECCodewords int }{{1, 15}, {1, 26}, {2, 18}, {2, 22}}},
	{100, 7, [4]struct{ numBlocks, numECCodewords int }{{1, 20}, {2, 18}, {2, 26}, {4, 16}}},
	{134, 7, [4]struct{ numBlocks, numECCodewords int }{{1, 26}, {2, 24}, {4, 18}, {4, 22}}},
	{172, 7, [4]struct{ numBlocks, numECCodewords int }{{2, 18}, {4, 16}, {4, 24}, {4, 28}}},
	{196, 0, [4]struct{ numBlocks, numECCodewords int }{{2, 20}, {4, 18}, {6, 18}, {5, 26}}},
	{242, 0, [4]struct{ numBlocks, numECCodewords int }{{2, 24}, {4, 22}, {6, 22}, {6, 26}}},
	{292, 0, [4]struct{ numBlocks, numECCodewords int }{{2, 30}, {5, 22}, {8, 20}, {8, 24}}},
	{346, 0, [4]struct{ numBlocks, numECCodewords int }{{4, 18}, {5, 26}, {8, 24}, {8, 28}}},
	{404, 0, [4]struct{ numBlocks, numECCodewords int }{{4, 20}, {5, 30}, {8, 28}, {11, 24}}},
	{466, 0, [4]struct{ numBlocks, numECCodewords int }{{4, 24}, {8, 22}, {10, 26}, {11, 28}}},
	{532, 0, [4]struct{ numBlocks, numECCodewords int }{{4, 26}, {9, 22}, {12, 24}, {16, 22}}},
	{581, 3, [4]struct{ numBlocks, numECCodewords int }{{4, 30}, {9, 24}, {16, 20}, {16, 24}}},
	{655, 3, [4]struct{ numBlocks, numECCodewords int }{{6, 22}, {10, 24}, {12, 30}, {18, 24}}},
	{733, 3, [4]struct{ numBlocks, numECCodewords int }{{6, 24}, {10, 28}, {17, 24}, {16, 30}}},
	{815, 3, [4]struct{ numBlocks, numECCodewords int }{{6, 28}, {11, 28}, {16, 28}, {19, 28}}},
	{901, 3, [4]struct{ numBlocks, numECCodewords int }{{6, 30}, {13, 26}, {18, 28}, {21, 28}}},
	{991, 3, [4]struct{ numBlocks, numECCodewords int }{{7, 28}, {14, 26}, {21, 26}, {25, 26}}},
	{1085, 3, [4]struct{ numBlocks, numECCodewords int }{{8, 28}, {16, 26}, {20, 30}, {25, 28}}},
	{1156, 4, [4]struct{ numBlocks, numECCodewords int }{{8, 28}, {17, 26}, {23, 28}, {25, 30}}},
	{1258, 4, [4]struct{ numBlocks, numECCodewords int }{{9, 28}, {17, 28}, {23, 30}, {34, 24}}},
	{1364, 4, [4]struct{ numBlocks, numECCodewords int }{{9, 30}, {18, 28}, {25, 30}, {30, 30}}},
	{1474, 4, [4]struct{ numBlocks, numECCodewords int }{{10, 30}, {20, 28}, {27, 30}, {32, 30}}},
	{1588, 4, [4]struct{ numBlocks, numECCodewords int }{{12, 26}, {21, 28}, {29, 30}, {35, 30}}},
	{1706, 4, [4]struct{ numBlocks, numECCodewords int }{{12, 28}, {23, 28}, {34, 28}, {37, 30}}},
	{1828, 4, [4]struct{ numBlocks, numECCodewords int }{{12, 30}, {25, 28}, {34, 30}, {40, 30}}},
	{1921, 3, [4]struct{ numBlocks, numECCodewords int }{{13, 30}, {26, 28}, {35, 30}, {42, 30}}},
	{2051, 3, [4]struct{ numBlocks, numECCodewords int }{{14, 30}, {28, 28}, {38, 30}, {45, 30}}},
	{2185, 3, [4]struct{ numBlocks, numECCodewords int }{{15, 30}, {29, 28}, {40, 30}, {48, 30}}},
	{2323, 3, [4]struct{ numBlocks, numECCodewords int }{{16, 30}, {31, 28}, {43, 30}, {51, 30}}},
	{2465, 3, [4]struct{ numBlocks, numECCodewords int }{{17, 30}, {33, 28}, {45, 30}, {54, 30}}},
	{2611, 3, [4]struct{ numBlocks, numECCodewords int }{{18, 30}, {35, 28}, {48, 30}, {57, 30}}},
	{2761, 3, [4]struct{ numBlocks, numECCodewords int }{{19, 30}, {37, 28}, {51, 30}, {60, 30}}},
	{2876, 0, [4]struct{ numBlocks, numECCodewords int }{{19, 30}, {38, 28}, {53, 30}, {63, 30}}},
	{3034, 0, [4]struct{ numBlocks, numECCodewords int }{{20, 30}, {40, 28}, {56, 30}, {66, 30}}},
	{3196, 0, [4]struct{ numBlocks, numECCodewords int }{{21, 30}, {43, 28}, {59, 30}, {70, 30}}},
	{3362, 0, [4]struct{ numBlocks, numECCodewords int }{{22, 30}, {45, 28}, {62, 30}, {74, 30}}},
	{3532, 0, [4]struct{ numBlocks, numECCodewords int }{{24, 30}, {47, 28}, {65, 30}, {77, 30}}},
	{3706, 0, [4]struct{ numBlocks, numECCodewords int }{{25, 30}, {49, 28}, {68, 30}, {81, 30}}},
}

// block describes a group of identically sized error correction blocks.
type block struct {
	numBlocks        int
	numCodewords     int
	numDataCodewords int
}

// qrCodeVersion is the error correction block plan of one version and level.
type qrCodeVersion struct {
	version          int
	level            Level
	block            []block
	numRemainderBits int
}

// versions holds the block plans of every version and level. Read-only after
// init.
var versions [MaxVersion + 1][4]qrCodeVersion

func init() {
	for v := MinVersion; v <= MaxVersion; v++ {
		vt := versionTable[v]

		for l := L; l <= H; l++ {
			lt := vt.level[l]

			numDataCodewords := vt.totalCodewords - lt.numBlocks*lt.numECCodewords
			short := numDataCodewords / lt.numBlocks
			numLong := numDataCodewords % lt.numBlocks

			b := []block{{
				numBlocks:        lt.numBlocks - numLong,
				numCodewords:     short + lt.numECCodewords,
				numDataCodewords: short,
			}}
			if numLong > 0 {
				b = append(b, block{
					numBlocks:        numLong,
					numCodewords:     short + 1 + lt.numECCodewords,
					numDataCodewords: short + 1,
				})
			}

			versions[v][l] = qrCodeVersion{
				version:          v,
				level:            l,
				block:            b,
				numRemainderBits: vt.numRemainderBits,
			}
		}
	}
}

// getQRCodeVersion returns the block plan for a validated version and level.
func getQRCodeVersion(level Level, version int) *qrCodeVersion {
	return &versions[version][level]
}

// numDataCodewords returns the number of data codewords across all blocks.
func (v qrCodeVersion) numDataCodewords() int {
	n := 0
	for _, b := range v.block {
		n += b.numBlocks * b.numDataCodewords
	}

	return n
}

// numDataBits returns the data capacity in bits.
func (v qrCodeVersion) numDataBits() int {
	return 8 * v.numDataCodewords()
}

// numTotalCodewords returns the number of data and error correction
// codewords.
func (v qrCodeVersion) numTotalCodewords() int {
	n := 0
	for _, b := range v.block {
		n += b.numBlocks * b.numCodewords
	}

	return n
}

func (v qrCodeVersion) numBlocks() int {
	n := 0
	for _, b := range v.block {
		n += b.numBlocks
	}

	return n
}

// numBitsToPadToCodeword returns the number of zero bits that bring
// numDataBits to a codeword boundary.
func (v qrCodeVersion) numBitsToPadToCodeword(numDataBits int) int {
	if numDataBits == v.numDataBits() {
		return 0
	}

	return (8 - numDataBits%8) % 8
}

func (v qrCodeVersion) symbolSize() int {
	return SymbolSize(v.version)
}

// DataCodewords returns the number of data codewords a symbol of the given
// version and level holds.
func DataCodewords(version int, level Level) (int, error) {
	if err := validVersion(version); err != nil {
		return 0, err
	}
	if !level.valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
	}

	return getQRCodeVersion(level, version).numDataCodewords(), nil
}

// TotalCodewords returns the number of data plus error correction codewords
// of a version.
func TotalCodewords(version int) (int, error) {
	if err := validVersion(version); err != nil {
		return 0, err
	}

	return versionTable[version].totalCodewords, nil
}
