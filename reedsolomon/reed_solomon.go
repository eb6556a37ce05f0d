// Package reedsolomon provides error correction encoding for QR Code 2005.
//
// QR Code 2005 uses a Reed-Solomon error correcting code to detect and correct
// errors encountered during decoding.
//
// The generated RS codes are systematic, and consist of the input data with
// error correction bytes appended.
//
// The package also carries the GF(2) carry-less division used by the BCH
// codes protecting format and version information.
package reedsolomon

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyMessage   = errors.New("reedsolomon: empty message")
	ErrInvalidECCount = errors.New("reedsolomon: invalid error correction codeword count")
)

// Encode data for QR Code 2005 using the appropriate Reed-Solomon code.
//
// ecCount is the number of error correction bytes to append, and is
// determined by the target QR Code's version and error correction level.
//
// ISO/IEC 18004 table 9 specifies the ecCount required. e.g. a 1-L code has
// ecCount=7.
func Encode(data []byte, ecCount int) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyMessage
	}
	if ecCount < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidECCount, ecCount)
	}

	remainder, err := Remainder(data, ecCount)
	if err != nil {
		return nil, err
	}

	// The data is copied rather than taken from data*x^n + remainder so any
	// leading zero codewords are preserved.
	result := make([]byte, 0, len(data)+ecCount)
	result = append(result, data...)
	result = append(result, remainder...)

	return result, nil
}

// Remainder returns the ecCount error correction bytes for data, the
// coefficients of data*x^ecCount mod g(x).
func Remainder(data []byte, ecCount int) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyMessage
	}
	if ecCount < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidECCount, ecCount)
	}

	padded := make(Poly, len(data)+ecCount)
	for i, b := range data {
		padded[i] = Element(b)
	}

	remainder, err := padded.Mod(GeneratorPolynomial(ecCount))
	if err != nil {
		return nil, err
	}

	return remainder.Bytes(), nil
}
