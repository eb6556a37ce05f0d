package qrencode

import (
	"fmt"

	"github.com/townmi/qrencode/bitset"
	"github.com/townmi/qrencode/reedsolomon"
)

// A dataEncoder turns content into the final interleaved codeword stream for
// one error correction level.
//
// Character count widths depend on the size class of the version, and the
// version depends on the encoded length. The encoder resolves this by
// encoding once per size class, smallest first, and accepting the first
// class whose last version can hold the result.
type dataEncoder struct {
	level Level

	// Exactly one of data and segments is set. data is segmented
	// automatically per size class.
	data     string
	segments []Segment

	eci bool
}

// encoded is the data bit stream of a dataEncoder for one size class.
type encoded struct {
	class    int
	segments []Segment
	bits     *bitset.Bitset
}

func newDataEncoder(level Level, data string) *dataEncoder {
	return &dataEncoder{level: level, data: data, eci: needsECI(data)}
}

func newSegmentsEncoder(level Level, segments []Segment) *dataEncoder {
	return &dataEncoder{level: level, segments: segments, eci: needsECI(segmentsString(segments))}
}

// encode returns the data bit stream, terminator included, using the
// character count widths of class.
func (d *dataEncoder) encode(class int) *encoded {
	segments := d.segments
	if segments == nil {
		segments = optimiseSegments(d.data, class)
	}

	return &encoded{
		class:    class,
		segments: segments,
		bits:     serialize(tokenize(segments, d.eci, class)),
	}
}

// fits reports whether numBits of data can be placed in a symbol holding
// capacityBits of data.
//
// Only an exact fit or a spare of at least a whole codeword is accepted:
// streams leaving 1-7 bits unused move up to a larger version.
func fits(numBits, capacityBits int) bool {
	slack := capacityBits - numBits
	return slack == 0 || slack > 7
}

// chooseVersion returns the smallest version able to hold the data, with the
// data encoded for that version's size class.
func (d *dataEncoder) chooseVersion() (*qrCodeVersion, *encoded, error) {
	for class := sizeClass1To9; class < numSizeClasses; class++ {
		e := d.encode(class)
		first, last := sizeClassVersions(class)

		if !fits(e.bits.Len(), getQRCodeVersion(d.level, last).numDataBits()) {
			continue
		}

		for v := first; v <= last; v++ {
			version := getQRCodeVersion(d.level, v)
			if fits(e.bits.Len(), version.numDataBits()) {
				return version, e, nil
			}
		}
	}

	return nil, nil, &CapacityError{Level: d.level}
}

// forVersion encodes the data for a caller chosen version.
func (d *dataEncoder) forVersion(v int) (*qrCodeVersion, *encoded, error) {
	minimum, _, err := d.chooseVersion()
	if err != nil {
		return nil, nil, &CapacityError{Requested: v, Level: d.level}
	}

	version := getQRCodeVersion(d.level, v)
	e := d.encode(sizeClassOf(v))

	if v < minimum.version {
		return nil, nil, &CapacityError{Requested: v, Minimum: minimum.version, Level: d.level}
	}

	// Larger count fields can still push the stream over, or leave it just
	// short of, the capacity of a version in a later size class.
	if slack := version.numDataBits() - e.bits.Len(); !fits(e.bits.Len(), version.numDataBits()) {
		err := &CapacityError{Requested: v, Minimum: minimum.version, Level: d.level}
		if slack > 0 {
			err.Spare = slack
		}
		return nil, nil, err
	}

	return version, e, nil
}

// addPadding pads data, which must already hold the terminator, to the data
// capacity of v: zero bits to the next codeword boundary, then alternating
// pad codewords 0xEC and 0x11.
func addPadding(data *bitset.Bitset, v *qrCodeVersion) error {
	numDataBits := v.numDataBits()

	if data.Len() > numDataBits {
		return fmt.Errorf("%w: %d data bits exceed capacity %d of %d-%s",
			ErrBlockSizeMismatch, data.Len(), numDataBits, v.version, v.level)
	}

	// Pad to the nearest codeword boundary.
	data.AppendNumBools(v.numBitsToPadToCodeword(data.Len()), false)

	// Pad codewords 0b11101100 and 0b00010001.
	padding := [2]byte{0xec, 0x11}

	// Insert pad codewords alternately.
	i := 0
	for numDataBits-data.Len() >= 8 {
		data.AppendByte(padding[i], 8)

		i = 1 - i // Alternate between 0 and 1.
	}

	if data.Len() != numDataBits {
		return fmt.Errorf("%w: padded to %d bits, expected %d",
			ErrBlockSizeMismatch, data.Len(), numDataBits)
	}

	return nil
}

// encodeBlocks splits padded data into the error correction blocks of v,
// appends Reed-Solomon codewords to each, and interleaves the result. The
// remainder bits of the version are appended last, so the returned length
// equals the number of data modules of the symbol.
func encodeBlocks(data *bitset.Bitset, v *qrCodeVersion) (*bitset.Bitset, error) {
	codewords := data.Bytes()
	if data.Len()%8 != 0 || len(codewords) != v.numDataCodewords() {
		return nil, fmt.Errorf("%w: %d data bits for %d data codewords",
			ErrBlockSizeMismatch, data.Len(), v.numDataCodewords())
	}

	// Split into blocks.
	type dataBlock struct {
		data          []byte
		ecStartOffset int
	}

	block := make([]dataBlock, 0, v.numBlocks())

	start := 0
	for _, b := range v.block {
		for j := 0; j < b.numBlocks; j++ {
			end := start + b.numDataCodewords

			// Apply error correction to each block.
			numErrorCodewords := b.numCodewords - b.numDataCodewords
			d, err := reedsolomon.Encode(codewords[start:end], numErrorCodewords)
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", len(block), err)
			}

			block = append(block, dataBlock{data: d, ecStartOffset: b.numDataCodewords})
			start = end
		}
	}

	// Interleave the blocks.
	out := make([]byte, 0, v.numTotalCodewords())

	// Combine data blocks.
	working := true
	for i := 0; working; i++ {
		working = false

		for _, b := range block {
			if i >= b.ecStartOffset {
				continue
			}

			out = append(out, b.data[i])

			working = true
		}
	}

	// Combine error correction blocks.
	working = true
	for i := 0; working; i++ {
		working = false

		for _, b := range block {
			offset := i + b.ecStartOffset
			if offset >= len(b.data) {
				continue
			}

			out = append(out, b.data[offset])

			working = true
		}
	}

	result := bitset.New()
	result.AppendBytes(out)

	// Append remainder bits.
	result.AppendNumBools(v.numRemainderBits, false)

	return result, nil
}
