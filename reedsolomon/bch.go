package reedsolomon

import "math/bits"

// CarrylessDivide divides dividend by divisor as polynomials over GF(2),
// where bit i is the coefficient of x^i and subtraction is XOR.
//
// Used for the BCH codes of QR format and version information, not for
// Reed-Solomon codewords. divisor must be non-zero.
func CarrylessDivide(dividend, divisor uint32) (quotient, remainder uint32) {
	if divisor == 0 {
		panic("reedsolomon: carry-less division by zero")
	}

	divisorDegree := bits.Len32(divisor) - 1
	remainder = dividend

	for {
		shift := bits.Len32(remainder) - 1 - divisorDegree
		if shift < 0 {
			break
		}
		quotient |= 1 << uint(shift)
		remainder ^= divisor << uint(shift)
	}

	return quotient, remainder
}

// CarrylessRemainder returns dividend mod divisor over GF(2).
func CarrylessRemainder(dividend, divisor uint32) uint32 {
	_, r := CarrylessDivide(dividend, divisor)
	return r
}
