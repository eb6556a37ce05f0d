package qrencode

import (
	"fmt"
	"image"

	"github.com/townmi/qrencode/reedsolomon"
)

// Format and version information are protected by BCH codes. The check bits
// are the remainder of a carry-less division of the shifted data by a fixed
// generator.
const (
	formatInfoLengthBits  = 15
	versionInfoLengthBits = 18

	// formatGenerator is x^10 + x^8 + x^5 + x^4 + x^2 + x + 1.
	formatGenerator = 0x537

	// formatMask is XORed with the format codeword so it is never all zero.
	formatMask = 0x5412

	// versionGenerator is x^12 + x^11 + x^10 + x^9 + x^8 + x^5 + x^2 + 1.
	versionGenerator = 0x1f25
)

// EncodeFormatInfo returns the masked 15 bit format information codeword for
// an error correction level and mask pattern.
func EncodeFormatInfo(level Level, mask int) (uint32, error) {
	if !level.valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
	}
	if mask < 0 || mask >= numMasks {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMask, mask)
	}

	data := (level.formatBits()<<3 | uint32(mask)) << 10
	codeword := data | reedsolomon.CarrylessRemainder(data, formatGenerator)

	return codeword ^ formatMask, nil
}

// DecodeFormatInfo checks a masked format information codeword and returns
// its level and mask pattern. No error correction is attempted.
func DecodeFormatInfo(v uint32) (Level, int, error) {
	if v>>formatInfoLengthBits != 0 {
		return 0, 0, fmt.Errorf("%w: %#x wider than %d bits", ErrMalformedFormatInfo, v, formatInfoLengthBits)
	}

	codeword := v ^ formatMask
	if reedsolomon.CarrylessRemainder(codeword, formatGenerator) != 0 {
		return 0, 0, fmt.Errorf("%w: %#04x", ErrMalformedFormatInfo, v)
	}

	data := codeword >> 10

	return levelFromFormatBits(data >> 3), int(data & 0x7), nil
}

// EncodeVersionInfo returns the 18 bit version information codeword. Only
// versions 7 and up carry version information.
func EncodeVersionInfo(version int) (uint32, error) {
	if version < 7 || version > MaxVersion {
		return 0, fmt.Errorf("%w: %d has no version information", ErrInvalidVersion, version)
	}

	data := uint32(version) << 12

	return data | reedsolomon.CarrylessRemainder(data, versionGenerator), nil
}

// DecodeVersionInfo checks a version information codeword and returns the
// version.
func DecodeVersionInfo(v uint32) (int, error) {
	if v>>versionInfoLengthBits != 0 {
		return 0, fmt.Errorf("%w: %#x wider than %d bits", ErrMalformedVersionInfo, v, versionInfoLengthBits)
	}
	if reedsolomon.CarrylessRemainder(v, versionGenerator) != 0 {
		return 0, fmt.Errorf("%w: %#05x", ErrMalformedVersionInfo, v)
	}

	version := int(v >> 12)
	if version < 7 || version > MaxVersion {
		return 0, fmt.Errorf("%w: version %d", ErrMalformedVersionInfo, version)
	}

	return version, nil
}

// FormatInfoCoordinates returns the two module positions of format bit
// |bit|, bit 0 being the least significant. The first copy wraps the top
// left finder pattern, the second is split between the other two.
func FormatInfoCoordinates(bit, size int) [2]image.Point {
	var first, second image.Point

	switch {
	case bit < 6:
		first = image.Pt(8, bit)
	case bit == 6:
		first = image.Pt(8, 7)
	case bit == 7:
		first = image.Pt(8, 8)
	case bit == 8:
		first = image.Pt(7, 8)
	default:
		first = image.Pt(14-bit, 8)
	}

	if bit < 8 {
		second = image.Pt(size-1-bit, 8)
	} else {
		second = image.Pt(8, size-15+bit)
	}

	return [2]image.Point{first, second}
}

// VersionInfoCoordinates returns the two module positions of version bit
// |bit|, bit 0 being the least significant. The first lies in the 3x6 block
// left of the top right finder pattern, the second in its transpose above
// the bottom left finder pattern.
func VersionInfoCoordinates(bit, size int) [2]image.Point {
	a := size - 11 + bit%3
	b := bit / 3

	return [2]image.Point{image.Pt(a, b), image.Pt(b, a)}
}

// writeFormatInfo draws both copies of the format information.
func writeFormatInfo(b Bitmap, level Level, mask int) error {
	f, err := EncodeFormatInfo(level, mask)
	if err != nil {
		return err
	}

	size, _ := b.Dims()
	for i := 0; i < formatInfoLengthBits; i++ {
		v := f&(1<<uint(i)) != 0
		for _, p := range FormatInfoCoordinates(i, size) {
			b.Set(p.X, p.Y, v)
		}
	}

	return nil
}

// writeVersionInfo draws both copies of the version information. Versions
// below 7 have none.
func writeVersionInfo(b Bitmap, version int) {
	v, err := EncodeVersionInfo(version)
	if err != nil {
		return
	}

	size, _ := b.Dims()
	for i := 0; i < versionInfoLengthBits; i++ {
		bit := v&(1<<uint(i)) != 0
		for _, p := range VersionInfoCoordinates(i, size) {
			b.Set(p.X, p.Y, bit)
		}
	}
}

// ReadFormatInfo decodes the format information copy around the top left
// finder pattern of a finished symbol.
func ReadFormatInfo(b Bitmap) (Level, int, error) {
	size, _ := b.Dims()

	var f uint32
	for i := 0; i < formatInfoLengthBits; i++ {
		p := FormatInfoCoordinates(i, size)[0]
		if v, _ := b.Get(p.X, p.Y); v {
			f |= 1 << uint(i)
		}
	}

	return DecodeFormatInfo(f)
}

// ReadVersionInfo decodes the top right version information block of a
// finished symbol.
func ReadVersionInfo(b Bitmap) (int, error) {
	size, _ := b.Dims()

	var f uint32
	for i := 0; i < versionInfoLengthBits; i++ {
		p := VersionInfoCoordinates(i, size)[0]
		if v, _ := b.Get(p.X, p.Y); v {
			f |= 1 << uint(i)
		}
	}

	return DecodeVersionInfo(f)
}
