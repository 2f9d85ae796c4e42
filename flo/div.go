package flo

// quoBits is the number of quotient bits produced by division: 24 for the
// significand plus guard and round.
const quoBits = fracBits + 1 + 2

// Div returns x / y, rounded to nearest even. A zero x gives a zero with the
// combined sign.
//
// Division by zero is not checked for. A zero y is read as if its implied one
// were there, so x / 0 quietly gives some finite number.
func (x F32) Div(y F32) F32 {
	neg := x.neg != y.neg
	if x.IsZero() {
		return F32{neg: neg}
	}

	q, rem := divSignificands(x.mant(), y.mant())

	// Make room for the sticky bit, which is set for an inexact division.
	q <<= 1
	if rem != 0 {
		q |= 1
	}

	// The quotient's binary point is below bit 26, as with Mul.
	exp := intBias - grsBits - fracBits + (int(x.exp) - bias) - (int(y.exp) - bias)
	return normalize(neg, q, exp)
}

// divSignificands divides two 24 bit significands to quoBits bits. The ratio
// of two significands is between 1/2 and 2, so the quotient's first bit has a
// weight of 1 and q is 25 or 26 bits long.
func divSignificands(n, d uint64) (q, rem uint64) {
	return divRestoring(n, d)
}

// divRestoring is binary long division: each step brings down one bit of
// quotient and subtracts the divisor when it fits.
func divRestoring(n, d uint64) (q, rem uint64) {
	for bit := 0; bit < quoBits; bit++ {
		q <<= 1
		if n >= d {
			n -= d
			q |= 1
		}
		n <<= 1
	}
	return q, n
}

// divBig does the same with a hardware divide. The remainder it returns isn't
// scaled the same as divRestoring's, but it is zero in exactly the same cases.
func divBig(n, d uint64) (q, rem uint64) {
	n <<= quoBits - 1
	return n / d, n % d
}
