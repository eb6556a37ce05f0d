package qrencode

import (
	"fmt"
	"strings"
)

// Level is the error correction level, trading capacity for redundancy.
type Level int

const (
	// L recovers about 7% of codewords.
	L Level = iota
	// M recovers about 15% of codewords.
	M
	// Q recovers about 25% of codewords.
	Q
	// H recovers about 30% of codewords.
	H
)

// Aliases matching the recovery level names used by go-qrcode.
const (
	Low     = L
	Medium  = M
	High    = Q
	Highest = H
)

func (l Level) String() string {
	switch l {
	case L:
		return "L"
	case M:
		return "M"
	case Q:
		return "Q"
	case H:
		return "H"
	}

	return fmt.Sprintf("Level(%d)", int(l))
}

func (l Level) valid() bool {
	return l >= L && l <= H
}

// formatBits returns the two bit level indicator used in format information.
// The indicator order differs from the level order.
func (l Level) formatBits() uint32 {
	return [...]uint32{L: 0x1, M: 0x0, Q: 0x3, H: 0x2}[l]
}

func levelFromFormatBits(v uint32) Level {
	return [...]Level{0x0: M, 0x1: L, 0x2: H, 0x3: Q}[v&0x3]
}

// ParseLevel parses "L", "M", "Q" or "H" (case insensitive), also accepting
// the names low, medium, high and highest.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "low":
		return L, nil
	case "m", "medium":
		return M, nil
	case "q", "high":
		return Q, nil
	case "h", "highest":
		return H, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}
