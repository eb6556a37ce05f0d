package reedsolomon

import (
	"fmt"
	"strings"
)

// Poly is a polynomial over GF(2^8).
//
// Coefficients are stored highest degree first, so a message of n bytes is
// the polynomial data[0]*x^(n-1) + ... + data[n-1]*x^0. Leading zero
// coefficients are permitted; they keep a polynomial aligned to a codeword
// boundary.
type Poly []Element

// NewPoly returns data as a polynomial, copying it.
func NewPoly(data []byte) Poly {
	p := make(Poly, len(data))
	for i, b := range data {
		p[i] = Element(b)
	}

	return p
}

// Monomial returns term*x^degree.
func Monomial(term Element, degree int) Poly {
	p := make(Poly, degree+1)
	p[0] = term

	return p
}

// Degree returns the degree of p ignoring leading zero terms. The zero
// polynomial has degree -1.
func (p Poly) Degree() int {
	for i, c := range p {
		if c != gfZero {
			return len(p) - 1 - i
		}
	}

	return -1
}

// normalised returns p without leading zero terms.
func (p Poly) normalised() Poly {
	for i, c := range p {
		if c != gfZero {
			return p[i:]
		}
	}

	return Poly{}
}

// Add returns p + q.
func (p Poly) Add(q Poly) Poly {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}

	result := make(Poly, n)
	copy(result[n-len(p):], p)
	for i, c := range q {
		result[n-len(q)+i] ^= c
	}

	return result
}

// Mul returns p * q.
func (p Poly) Mul(q Poly) Poly {
	if len(p) == 0 || len(q) == 0 {
		return Poly{}
	}

	result := make(Poly, len(p)+len(q)-1)
	for i, a := range p {
		if a == gfZero {
			continue
		}
		for j, b := range q {
			result[i+j] ^= Multiply(a, b)
		}
	}

	return result
}

// Mod returns the remainder of p / divisor, using synthetic division. The
// result has exactly divisor.Degree() terms so that leading zero
// coefficients of the remainder survive.
func (p Poly) Mod(divisor Poly) (Poly, error) {
	divisor = divisor.normalised()
	if len(divisor) == 0 {
		return nil, ErrDivisionByZero
	}

	n := len(divisor) - 1
	if len(p) < n {
		result := make(Poly, n)
		copy(result[n-len(p):], p)
		return result, nil
	}

	lead, err := Inverse(divisor[0])
	if err != nil {
		return nil, err
	}

	remainder := make(Poly, len(p))
	copy(remainder, p)

	for i := 0; i+n < len(remainder); i++ {
		coefficient := remainder[i]
		if coefficient == gfZero {
			continue
		}
		coefficient = Multiply(coefficient, lead)

		for j := 0; j <= n; j++ {
			remainder[i+j] ^= Multiply(divisor[j], coefficient)
		}
	}

	return remainder[len(remainder)-n:], nil
}

// Equal reports whether p and q represent the same polynomial, ignoring
// leading zero terms.
func (p Poly) Equal(q Poly) bool {
	p = p.normalised()
	q = q.normalised()

	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}

	return true
}

// Bytes returns the coefficients as bytes.
func (p Poly) Bytes() []byte {
	result := make([]byte, len(p))
	for i, c := range p {
		result[i] = byte(c)
	}

	return result
}

// String returns p in index form, e.g. "a^0x^2 + a^25x^1 + a^1x^0".
func (p Poly) String() string {
	var terms []string
	for i, c := range p {
		if c == gfZero {
			continue
		}
		terms = append(terms, fmt.Sprintf("a^%dx^%d", gfLogTable[c], len(p)-1-i))
	}

	if len(terms) == 0 {
		return "0"
	}

	return strings.Join(terms, " + ")
}
