package qrencode

import (
	"github.com/townmi/qrencode/bitset"
)

// A token is the smallest unit of the data bit stream: a segment header, a
// group of packed characters, an ECI designator or the terminator. Tokens
// are fixed once produced; serialising them is plain concatenation.
type tokenKind uint8

const (
	tokenHeader tokenKind = iota
	tokenPayload
	tokenECI
	tokenTerminator
)

type token struct {
	kind    tokenKind
	value   uint32
	numBits int
}

// Segment is a run of data encoded in a single mode.
type Segment struct {
	Mode Mode
	Data string
}

// tokenize converts segments into tokens using the character count widths
// of a size class. An ECI token selecting UTF-8 is emitted first when eci is
// set, and a terminator last. Segments longer than the character count
// field allows are split.
func tokenize(segments []Segment, eci bool, class int) []token {
	var tokens []token

	if eci {
		tokens = append(tokens, token{
			kind:    tokenECI,
			value:   modeIndicatorECI<<eciDataBits | eciUTF8,
			numBits: modeIndicatorBits + eciDataBits,
		})
	}

	for _, s := range segments {
		data := s.Data
		limit := s.Mode.maxChars(class)

		for len(data) > 0 {
			n := len(data)
			if n > limit {
				n = limit
			}

			tokens = append(tokens, token{
				kind:    tokenHeader,
				value:   s.Mode.indicator()<<uint(s.Mode.charCountBits(class)) | uint32(n),
				numBits: s.Mode.headerBits(class),
			})
			tokens = appendPayloadTokens(tokens, s.Mode, data[:n])

			data = data[n:]
		}
	}

	tokens = append(tokens, token{
		kind:    tokenTerminator,
		value:   modeIndicatorTerminator,
		numBits: modeIndicatorBits,
	})

	return tokens
}

// appendPayloadTokens packs data, already validated for mode, into groups.
func appendPayloadTokens(tokens []token, mode Mode, data string) []token {
	switch mode {
	case ModeNumeric:
		for i := 0; i < len(data); i += 3 {
			var value uint32
			bitsUsed := 1

			for j := i; j < len(data) && j < i+3; j++ {
				value = value*10 + uint32(data[j]-'0')
				bitsUsed += 3
			}

			tokens = append(tokens, token{kind: tokenPayload, value: value, numBits: bitsUsed})
		}
	case ModeAlphanumeric:
		for i := 0; i < len(data); i += 2 {
			value := uint32(alphanumericValue[data[i]])
			bitsUsed := 6

			if i+1 < len(data) {
				value = value*45 + uint32(alphanumericValue[data[i+1]])
				bitsUsed = 11
			}

			tokens = append(tokens, token{kind: tokenPayload, value: value, numBits: bitsUsed})
		}
	case ModeByte:
		for i := 0; i < len(data); i++ {
			tokens = append(tokens, token{kind: tokenPayload, value: uint32(data[i]), numBits: 8})
		}
	}

	return tokens
}

// serialize concatenates tokens into a bit stream.
func serialize(tokens []token) *bitset.Bitset {
	b := bitset.New()
	for _, t := range tokens {
		b.AppendUint32(t.value, t.numBits)
	}

	return b
}
