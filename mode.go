package qrencode

import "fmt"

// Data encoding.
//
// The main data portion of a QR Code consists of one or more segments of data.
// A segment consists of:
//
// - The segment Data Mode: numeric, alphanumeric, or byte.
// - The length of segment in characters.
// - Encoded data.
//
// For example, the string "123ZZ#!#!" may be represented as:
//
// [numeric, 3, "123"] [alphanumeric, 2, "ZZ"] [byte, 4, "#!#!"]
//
// Multiple data modes exist to minimise the size of encoded data. For example,
// 8-bit bytes require 8 bits to encode each, but base 10 numeric data can be
// encoded at a higher density of 3 numbers (e.g. 123) per 10 bits.

// Mode is a segment encoding mode.
type Mode uint8

const (
	// Each mode's character set is a subset of the next:
	// ModeNumeric ⊂ ModeAlphanumeric ⊂ ModeByte.
	ModeNumeric Mode = iota
	ModeAlphanumeric
	ModeByte

	// ModeKanji is reserved. Kanji encoding is not implemented and any
	// segment using it is rejected with ErrInvalidMode.
	ModeKanji

	numModes = 3
)

func (m Mode) String() string {
	switch m {
	case ModeNumeric:
		return "numeric"
	case ModeAlphanumeric:
		return "alphanumeric"
	case ModeByte:
		return "byte"
	case ModeKanji:
		return "kanji"
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// Mode indicators, 4 bits each.
const (
	modeIndicatorNumeric      = 0x1
	modeIndicatorAlphanumeric = 0x2
	modeIndicatorByte         = 0x4
	modeIndicatorECI          = 0x7
	modeIndicatorTerminator   = 0x0

	modeIndicatorBits = 4

	// eciUTF8 is the ECI assignment number for UTF-8.
	eciUTF8     = 26
	eciDataBits = 8
)

func (m Mode) indicator() uint32 {
	switch m {
	case ModeNumeric:
		return modeIndicatorNumeric
	case ModeAlphanumeric:
		return modeIndicatorAlphanumeric
	case ModeByte:
		return modeIndicatorByte
	}

	bug("no indicator for mode %s", m)
	return 0
}

// charCountBits returns the width of the character count indicator of mode m
// in the given size class.
func (m Mode) charCountBits(class int) int {
	widths := [numSizeClasses][numModes]int{
		sizeClass1To9:   {10, 9, 8},
		sizeClass10To26: {12, 11, 16},
		sizeClass27To40: {14, 13, 16},
	}

	if m >= numModes {
		bug("no character count width for mode %s", m)
	}

	return widths[class][m]
}

// maxChars returns the largest character count representable in a single
// segment of mode m.
func (m Mode) maxChars(class int) int {
	return 1<<uint(m.charCountBits(class)) - 1
}

// headerBits returns the size of a segment header: mode indicator and
// character count.
func (m Mode) headerBits(class int) int {
	return modeIndicatorBits + m.charCountBits(class)
}

// accepts reports whether byte c can be encoded in mode m.
func (m Mode) accepts(c byte) bool {
	switch m {
	case ModeNumeric:
		return c >= '0' && c <= '9'
	case ModeAlphanumeric:
		return alphanumericValue[c] >= 0
	case ModeByte:
		return true
	}

	return false
}

// alphanumericValue maps QR alphanumeric characters 0-9, A-Z, SP, $%*+-./:
// to their values 0-44, and every other byte to -1.
var alphanumericValue [256]int8

func init() {
	for i := range alphanumericValue {
		alphanumericValue[i] = -1
	}

	const charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
	for i := 0; i < len(charset); i++ {
		alphanumericValue[charset[i]] = int8(i)
	}
}
