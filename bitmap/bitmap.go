// Package bitmap implements a packed two dimensional bit grid.
//
// Each row starts on a byte boundary and stores its modules most significant
// bit first. Padding bits at the end of a row are always zero, so whole-row
// byte operations (XOR with a mask row, population counts) need no edge
// handling.
package bitmap

import (
	"fmt"
	"math/bits"
	"strings"
)

// Bitmap is a width x height grid of bits. The zero value is an empty grid.
type Bitmap struct {
	width  int
	height int
	stride int
	data   []byte
}

// New returns a cleared Bitmap of the given dimensions.
func New(width, height int) *Bitmap {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("bitmap: negative dimensions %dx%d", width, height))
	}

	stride := (width + 7) / 8

	return &Bitmap{
		width:  width,
		height: height,
		stride: stride,
		data:   make([]byte, stride*height),
	}
}

// Dims returns the width and height.
func (b *Bitmap) Dims() (int, int) {
	return b.width, b.height
}

// Stride returns the number of bytes per row.
func (b *Bitmap) Stride() int {
	return b.stride
}

func (b *Bitmap) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// Get returns the bit at (x, y). ok is false when the coordinate is outside
// the grid.
func (b *Bitmap) Get(x, y int) (v, ok bool) {
	if !b.inBounds(x, y) {
		return false, false
	}

	return b.data[y*b.stride+x/8]&(0x80>>uint(x%8)) != 0, true
}

// Set sets the bit at (x, y). It returns false, changing nothing, when the
// coordinate is outside the grid.
func (b *Bitmap) Set(x, y int, v bool) bool {
	if !b.inBounds(x, y) {
		return false
	}

	i := y*b.stride + x/8
	m := byte(0x80) >> uint(x%8)
	if v {
		b.data[i] |= m
	} else {
		b.data[i] &^= m
	}

	return true
}

// Row returns the bytes backing row y. The slice aliases the Bitmap.
func (b *Bitmap) Row(y int) []byte {
	return b.data[y*b.stride : (y+1)*b.stride]
}

// Bytes returns the whole backing buffer, rows in order. The slice aliases
// the Bitmap.
func (b *Bitmap) Bytes() []byte {
	return b.data
}

// Count returns the number of set bits.
func (b *Bitmap) Count() int {
	n := 0
	for _, d := range b.data {
		n += bits.OnesCount8(d)
	}

	return n
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	c := *b
	c.data = make([]byte, len(b.data))
	copy(c.data, b.data)

	return &c
}

// CopyFrom overwrites b with the contents of src, which must have the same
// dimensions.
func (b *Bitmap) CopyFrom(src *Bitmap) error {
	if src.width != b.width || src.height != b.height {
		return fmt.Errorf("bitmap: dimension mismatch %dx%d vs %dx%d",
			src.width, src.height, b.width, b.height)
	}

	copy(b.data, src.data)

	return nil
}

// Equal reports whether b and other hold the same bits.
func (b *Bitmap) Equal(other *Bitmap) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}

	for i := range b.data {
		if b.data[i] != other.data[i] {
			return false
		}
	}

	return true
}

// String renders the grid with '#' for set bits and '.' for clear bits, one
// line per row.
func (b *Bitmap) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)

	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if v, _ := b.Get(x, y); v {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
