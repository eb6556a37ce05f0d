package qrencode

import (
	"fmt"
	"strings"
)

// Segmentation chooses, for every input byte, the mode it is encoded in so
// that the total bit cost is minimal. Costs are kept in sixths of a bit so
// that numeric (10/3 bits per digit) and alphanumeric (11/2 bits per
// character) rates stay integral.
const (
	costScale = 6
)

// charCost returns the scaled cost of encoding one character in mode m.
func (m Mode) charCost() int {
	switch m {
	case ModeNumeric:
		return 20
	case ModeAlphanumeric:
		return 33
	default:
		return 48
	}
}

// needsECI reports whether data holds bytes outside 7-bit ASCII, which are
// encoded as raw UTF-8 bytes behind a UTF-8 ECI designator.
func needsECI(data string) bool {
	for i := 0; i < len(data); i++ {
		if data[i] >= 0x80 {
			return true
		}
	}

	return false
}

// optimiseSegments partitions data into runs of modes with minimal encoded
// length for the size class, using a forward dynamic programme over byte
// positions.
//
// Each position has a node per mode able to encode its byte. Moving from
// mode p to mode s costs the character in s, plus a segment header when p
// differs from s. Ties keep the current mode; remaining ties, and ties
// between final modes, favour the narrower mode.
func optimiseSegments(data string, class int) []Segment {
	n := len(data)
	if n == 0 {
		return nil
	}

	const unreachable = -1

	cost := make([][numModes]int, n)
	prev := make([][numModes]Mode, n)

	for i := 0; i < n; i++ {
		for s := ModeNumeric; s < numModes; s++ {
			cost[i][s] = unreachable

			if !s.accepts(data[i]) {
				continue
			}

			header := costScale * s.headerBits(class)

			if i == 0 {
				cost[i][s] = header + s.charCost()
				prev[i][s] = s
				continue
			}

			best := unreachable
			var bestPrev Mode

			// Staying in s is considered first so it wins ties.
			if c := cost[i-1][s]; c != unreachable {
				best = c + s.charCost()
				bestPrev = s
			}
			for p := ModeNumeric; p < numModes; p++ {
				if p == s || cost[i-1][p] == unreachable {
					continue
				}

				c := cost[i-1][p] + header + s.charCost()
				if best == unreachable || c < best {
					best = c
					bestPrev = p
				}
			}

			cost[i][s] = best
			prev[i][s] = bestPrev
		}
	}

	// Byte mode accepts every byte, so some final mode is always reachable.
	last, lastCost := ModeByte, unreachable
	for m := ModeNumeric; m < numModes; m++ {
		if c := cost[n-1][m]; c != unreachable && (lastCost == unreachable || c < lastCost) {
			last, lastCost = m, c
		}
	}

	modes := make([]Mode, n)
	for i := n - 1; i >= 0; i-- {
		modes[i] = last
		last = prev[i][last]
	}

	var segments []Segment
	start := 0
	for i := 1; i <= n; i++ {
		if i == n || modes[i] != modes[start] {
			segments = append(segments, Segment{Mode: modes[start], Data: data[start:i]})
			start = i
		}
	}

	return segments
}

// validateSegments checks caller supplied segments.
func validateSegments(segments []Segment) error {
	total := 0

	for i, s := range segments {
		if s.Mode >= numModes {
			return fmt.Errorf("%w: segment %d uses %s", ErrInvalidMode, i, s.Mode)
		}

		for j := 0; j < len(s.Data); j++ {
			if !s.Mode.accepts(s.Data[j]) {
				return fmt.Errorf("%w: segment %d byte %d (%q) in %s mode",
					ErrInvalidCharacter, i, j, s.Data[j], s.Mode)
			}
		}

		total += len(s.Data)
	}

	if total == 0 {
		return ErrEmptyContent
	}

	return nil
}

// segmentsString joins segment data, for logging and QRCode.Content.
func segmentsString(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Data)
	}

	return sb.String()
}

// segmentsSummary describes segments as e.g. "numeric:3 alphanumeric:2".
func segmentsSummary(segments []Segment) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = fmt.Sprintf("%s:%d", s.Mode, len(s.Data))
	}

	return strings.Join(parts, " ")
}
