package flo

// grsBits is the number of extra low bits carried through addition for the
// guard, round and sticky bits.
const grsBits = 3

// Add returns x + y, rounded to nearest even.
//
// If either operand is zero the other is returned unchanged, which means
// (-0) + (+0) is -0 rather than the +0 IEEE 754 asks for.
func (x F32) Add(y F32) F32 {
	if y.IsZero() {
		return x
	}
	if x.IsZero() {
		return y
	}

	// Implied ones plus room for guard, round and sticky.
	sx := x.mant() << grsBits
	sy := y.mant() << grsBits

	// Line up the binary points by shifting the one with the smaller
	// exponent right.
	working := int(x.exp)
	if x.exp < y.exp {
		sx = align(sx, uint(y.exp-x.exp))
		working = int(y.exp)
	} else {
		sy = align(sy, uint(x.exp-y.exp))
	}

	// Every significand is below 1<<27, so the sum of two fits easily.
	a, b := int64(sx), int64(sy)
	if x.neg {
		a = -a
	}
	if y.neg {
		b = -b
	}

	// The sum has its leading one around bit 26 rather than bit 23, hence
	// the -3.
	return normalizeSigned(a+b, working-grsBits)
}

// Sub returns x - y, rounded to nearest even. It is exactly x.Add(y.Neg()).
func (x F32) Sub(y F32) F32 {
	return x.Add(y.Neg())
}

// align shifts s right by d bits, keeping bit 0 as a sticky bit: it ends up set
// if any bit that was shifted out or landed in bit 0 was set.
func align(s uint64, d uint) uint64 {
	return alignLoop(s, d)
}

// alignLoop is the obvious implementation of align, one bit at a time.
func alignLoop(s uint64, d uint) uint64 {
	var sticky uint64
	for i := uint(0); i < d; i++ {
		sticky |= s & 1
		s >>= 1
	}
	return s | sticky
}

// alignMask does the same as alignLoop with a single shift, checking the
// dropped bits with a mask. Go defines shifts of 64 or more to give zero, but
// the mask needs capping so it doesn't wrap to zero as well.
func alignMask(s uint64, d uint) uint64 {
	if d >= 64 {
		if s != 0 {
			return 1
		}
		return 0
	}
	var sticky uint64
	if s&(1<<d-1) != 0 {
		sticky = 1
	}
	return s>>d | sticky
}
