package qrencode

import "fmt"

const numMasks = 8

// maskFuncs are the eight data mask patterns. A module is inverted when its
// pattern function returns true.
var maskFuncs = [numMasks]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (x/3+y/2)%2 == 0 },
	func(x, y int) bool { return (x*y)%2+(x*y)%3 == 0 },
	func(x, y int) bool { return ((x*y)%3+x*y)%2 == 0 },
	func(x, y int) bool { return ((x*y)%3+x+y)%2 == 0 },
}

// MaskFunc returns the pattern function of mask id.
func MaskFunc(id int) (func(x, y int) bool, error) {
	if id < 0 || id >= numMasks {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMask, id)
	}

	return maskFuncs[id], nil
}

// applyMask XORs mask pattern id into the data modules of b, a symbol of the
// given version. Function patterns, format and version information are left
// alone. Applying the same mask twice restores b.
func applyMask(b Bitmap, version, id int) {
	dataModules, _ := dataModuleMap(version)
	pattern := maskFuncs[id]

	size := SymbolSize(version)
	maskRow := make([]byte, dataModules.Stride())

	for y := 0; y < size; y++ {
		for i := range maskRow {
			maskRow[i] = 0
		}
		for x := 0; x < size; x++ {
			if pattern(x, y) {
				maskRow[x/8] |= 0x80 >> uint(x%8)
			}
		}

		row := b.Row(y)
		dataRow := dataModules.Row(y)
		for i := range row {
			row[i] ^= maskRow[i] & dataRow[i]
		}
	}
}
