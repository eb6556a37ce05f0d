package reedsolomon

import "errors"

// Arithmetic over GF(2^8) with the QR Code field polynomial
// x^8 + x^4 + x^3 + x^2 + 1 (0x11D) and generator element 2.

// Primitive is the field generator polynomial.
const Primitive = 0x11d

var (
	ErrDivisionByZero = errors.New("reedsolomon: division by zero")
)

// Element is a member of GF(2^8).
type Element uint8

const (
	gfZero = Element(0)
	gfOne  = Element(1)
)

// gfExpTable holds 2^i. It is doubled so the sum of two logarithms can index
// it without a modulo. gfLogTable holds log2(a); gfLogTable[0] is never read.
//
// Both are built by a variable initializer so they are ready before any init
// function in the package runs.
var gfExpTable, gfLogTable = buildTables()

func buildTables() (exp [510]Element, log [256]int) {
	x := 1
	for i := 0; i < 255; i++ {
		exp[i] = Element(x)
		log[x] = i

		x <<= 1
		if x&0x100 != 0 {
			x ^= Primitive
		}
	}

	for i := 255; i < len(exp); i++ {
		exp[i] = exp[i-255]
	}

	return exp, log
}

// Exp returns 2^i. i is reduced modulo 255 and may be negative.
func Exp(i int) Element {
	i %= 255
	if i < 0 {
		i += 255
	}

	return gfExpTable[i]
}

// Log returns the discrete logarithm of a. Log(0) is undefined and returns
// -1.
func Log(a Element) int {
	if a == gfZero {
		return -1
	}

	return gfLogTable[a]
}

// Add returns a + b, which is also a - b.
func Add(a, b Element) Element {
	return a ^ b
}

// Multiply returns a * b.
func Multiply(a, b Element) Element {
	if a == gfZero || b == gfZero {
		return gfZero
	}

	return gfExpTable[gfLogTable[a]+gfLogTable[b]]
}

// Divide returns a / b.
func Divide(a, b Element) (Element, error) {
	if b == gfZero {
		return gfZero, ErrDivisionByZero
	}
	if a == gfZero {
		return gfZero, nil
	}

	return gfExpTable[gfLogTable[a]+255-gfLogTable[b]], nil
}

// Inverse returns the multiplicative inverse of a.
func Inverse(a Element) (Element, error) {
	return Divide(gfOne, a)
}

// Power returns a^n. 0^0 is 1.
func Power(a Element, n int) Element {
	if n == 0 {
		return gfOne
	}
	if a == gfZero {
		return gfZero
	}

	return Exp(gfLogTable[a] * (n % 255))
}
