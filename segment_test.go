package qrencode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestOptimiseSegments(t *testing.T) {
	tests := []struct {
		data     string
		expected []Segment
		numBits  int
	}{
		{
			"HELLO WORLD",
			[]Segment{{ModeAlphanumeric, "HELLO WORLD"}},
			78,
		},
		{
			"12345",
			[]Segment{{ModeNumeric, "12345"}},
			35,
		},
		{
			"hello",
			[]Segment{{ModeByte, "hello"}},
			56,
		},
		{
			// Too short to be worth switching modes.
			"123ZZ#!#!",
			[]Segment{{ModeByte, "123ZZ#!#!"}},
			88,
		},
		{
			"0123456789ABCDEFabc",
			[]Segment{
				{ModeNumeric, "0123456789"},
				{ModeAlphanumeric, "ABCDEF"},
				{ModeByte, "abc"},
			},
			134,
		},
		{
			"a1234567890123b",
			[]Segment{
				{ModeByte, "a"},
				{ModeNumeric, "1234567890123"},
				{ModeByte, "b"},
			},
			102,
		},
		{
			"http://EXAMPLE.COM/123456789012",
			[]Segment{
				{ModeByte, "http"},
				{ModeAlphanumeric, "://EXAMPLE.COM/"},
				{ModeNumeric, "123456789012"},
			},
			198,
		},
		{
			// Ending in numeric or byte mode costs the same; the narrower
			// mode wins the tie.
			"Ünïcode 123",
			[]Segment{
				{ModeByte, "Ünïcode "},
				{ModeNumeric, "123"},
			},
			132,
		},
	}

	for _, test := range tests {
		segments := optimiseSegments(test.data, sizeClass1To9)
		assert.Equal(t, test.expected, segments, "%q", test.data)

		bits := serialize(tokenize(segments, needsECI(test.data), sizeClass1To9))
		assert.Equal(t, test.numBits, bits.Len(), "%q", test.data)
	}

	assert.Nil(t, optimiseSegments("", sizeClass1To9))
}

func TestTokenizeHelloWorld(t *testing.T) {
	bits := serialize(tokenize([]Segment{{ModeAlphanumeric, "HELLO WORLD"}}, false, sizeClass1To9))

	// 0010 000001011 then 5 pairs and a single, then 0000.
	expected := "001000000101101100001011011110001101000101110010110111000100110101000011010000"

	var sb strings.Builder
	for i := 0; i < bits.Len(); i++ {
		if bits.At(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	assert.Equal(t, expected, sb.String())
}

func TestTokenizeECI(t *testing.T) {
	tokens := tokenize([]Segment{{ModeByte, "é"}}, true, sizeClass1To9)
	require.Len(t, tokens, 5)

	assert.Equal(t, tokenECI, tokens[0].kind)
	assert.Equal(t, uint32(0x71a), tokens[0].value)
	assert.Equal(t, 12, tokens[0].numBits)

	assert.Equal(t, tokenHeader, tokens[1].kind)
	assert.Equal(t, uint32(0x4<<8|2), tokens[1].value)

	assert.Equal(t, uint32(0xc3), tokens[2].value)
	assert.Equal(t, uint32(0xa9), tokens[3].value)
	assert.Equal(t, tokenTerminator, tokens[4].kind)
}

func TestTokenizeSplitsLongSegments(t *testing.T) {
	// A byte mode count field holds at most 255 in size class 1-9.
	data := strings.Repeat("a", 300)
	tokens := tokenize([]Segment{{ModeByte, data}}, false, sizeClass1To9)

	var headers []uint32
	for _, tok := range tokens {
		if tok.kind == tokenHeader {
			headers = append(headers, tok.value&0xff)
		}
	}
	assert.Equal(t, []uint32{255, 45}, headers)

	tokens = tokenize([]Segment{{ModeByte, data}}, false, sizeClass10To26)
	assert.Len(t, tokens, 1+300+1)
}

func TestValidateSegments(t *testing.T) {
	assert.NoError(t, validateSegments([]Segment{{ModeNumeric, "123"}, {ModeAlphanumeric, "AB:"}, {ModeByte, "ü"}}))

	assert.ErrorIs(t, validateSegments([]Segment{{ModeNumeric, "12a"}}), ErrInvalidCharacter)
	assert.ErrorIs(t, validateSegments([]Segment{{ModeAlphanumeric, "ab"}}), ErrInvalidCharacter)
	assert.ErrorIs(t, validateSegments([]Segment{{ModeKanji, "x"}}), ErrInvalidMode)
	assert.ErrorIs(t, validateSegments([]Segment{{Mode(9), "x"}}), ErrInvalidMode)
	assert.ErrorIs(t, validateSegments(nil), ErrEmptyContent)
	assert.ErrorIs(t, validateSegments([]Segment{{ModeByte, ""}}), ErrEmptyContent)
}

func TestOptimiseSegmentsNeverWorseThanSingleMode(t *testing.T) {
	alphabet := []byte("0123456789ABCDEFXYZ $%*+-./:abcxyz#!\xc3\xa9")

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 200).Draw(t, "n")
		class := rapid.IntRange(sizeClass1To9, sizeClass27To40).Draw(t, "class")

		data := make([]byte, n)
		for i := range data {
			data[i] = rapid.SampledFrom(alphabet).Draw(t, "c")
		}
		s := string(data)
		eci := needsECI(s)

		segments := optimiseSegments(s, class)
		if segmentsString(segments) != s {
			t.Fatalf("segments %v do not cover %q", segments, s)
		}

		optimised := serialize(tokenize(segments, eci, class)).Len()

		for m := ModeNumeric; m < numModes; m++ {
			single := []Segment{{m, s}}
			if validateSegments(single) != nil {
				continue
			}

			if l := serialize(tokenize(single, eci, class)).Len(); optimised > l {
				t.Fatalf("%q: optimised %d bits, %s alone %d bits", s, optimised, m, l)
			}
		}
	})
}
