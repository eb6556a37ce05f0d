// Package bitset implements an append-only bit array.
//
// Bits are stored most significant bit first, so appending the 8 bits of a
// byte and reading them back with Bytes returns the same byte. It is used
// to build the QR data bit stream: segment headers and payloads of arbitrary
// width, padding, and the interleaved codeword sequence.
//
// Example use:
//
//	a := bitset.New(b1, b0, b1)
//	a.AppendUint32(0x2, 4) // a = 1010010
package bitset

import (
	"log"
	"strings"
)

const (
	b0 = false
	b1 = true
)

// Bitset stores an array of bits.
type Bitset struct {
	// The number of bits stored.
	numBits int

	// Storage for individual bits.
	bits []byte
}

// New returns an initialised Bitset with optional initial bits v.
func New(v ...bool) *Bitset {
	b := &Bitset{numBits: 0, bits: make([]byte, 0)}
	b.AppendBools(v...)

	return b
}

// Clone returns a copy.
func Clone(from *Bitset) *Bitset {
	bits := make([]byte, len(from.bits))
	copy(bits, from.bits)

	return &Bitset{numBits: from.numBits, bits: bits}
}

// AppendBytes appends a list of whole bytes.
func (b *Bitset) AppendBytes(data []byte) {
	for _, d := range data {
		b.AppendByte(d, 8)
	}
}

// AppendByte appends the numBits least significant bits from value.
func (b *Bitset) AppendByte(value byte, numBits int) {
	if numBits > 8 {
		log.Panicf("numBits %d out of range 0-8", numBits)
	}

	b.AppendUint32(uint32(value), numBits)
}

// AppendUint32 appends the numBits least significant bits from value.
func (b *Bitset) AppendUint32(value uint32, numBits int) {
	if numBits > 32 {
		log.Panicf("numBits %d out of range 0-32", numBits)
	}

	b.ensureCapacity(numBits)

	for i := numBits - 1; i >= 0; i-- {
		if value&(1<<uint(i)) != 0 {
			b.bits[b.numBits/8] |= 0x80 >> uint(b.numBits%8)
		}

		b.numBits++
	}
}

// ensureCapacity ensures the Bitset can store an additional |numBits|.
//
// The underlying array is expanded if necessary. To prevent frequent
// reallocation, expanding the underlying array at least doubles its capacity.
func (b *Bitset) ensureCapacity(numBits int) {
	numBits += b.numBits

	newNumBytes := numBits / 8
	if numBits%8 != 0 {
		newNumBytes++
	}

	if len(b.bits) >= newNumBytes {
		return
	}

	b.bits = append(b.bits, make([]byte, newNumBytes+2*len(b.bits))...)
}

// AppendBools appends bits to the Bitset.
func (b *Bitset) AppendBools(bits ...bool) {
	b.ensureCapacity(len(bits))

	for _, v := range bits {
		if v {
			b.bits[b.numBits/8] |= 0x80 >> uint(b.numBits%8)
		}
		b.numBits++
	}
}

// AppendNumBools appends num bits of value value.
func (b *Bitset) AppendNumBools(num int, value bool) {
	for i := 0; i < num; i++ {
		b.AppendBools(value)
	}
}

// String returns a human readable representation of the Bitset's contents,
// grouped in bytes.
func (b *Bitset) String() string {
	var sb strings.Builder
	for i := 0; i < b.numBits; i++ {
		if i > 0 && i%8 == 0 {
			sb.WriteByte(' ')
		}

		if b.At(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}

// Len returns the length of the Bitset in bits.
func (b *Bitset) Len() int {
	return b.numBits
}

// Bytes returns the contents packed into bytes. A trailing partial byte is
// padded with zero bits.
func (b *Bitset) Bytes() []byte {
	n := (b.numBits + 7) / 8
	result := make([]byte, n)
	copy(result, b.bits[:n])

	return result
}

// At returns the value of the bit at |index|.
func (b *Bitset) At(index int) bool {
	if index >= b.numBits {
		log.Panicf("Index %d out of range", index)
	}

	return (b.bits[index/8] & (0x80 >> byte(index%8))) != 0
}

