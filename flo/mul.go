package flo

// Mul returns x * y, rounded to nearest even. If either operand is zero the
// result is a zero with the combined sign.
func (x F32) Mul(y F32) F32 {
	neg := x.neg != y.neg
	if x.IsZero() || y.IsZero() {
		return F32{neg: neg}
	}

	// Two 24 bit significands give a product of 47 or 48 bits, with the
	// binary point below bit 46.
	p := mulSignificands(x.mant(), y.mant())

	// Keep 2 bits below the 23 fraction bits for guard and round and fold
	// the 20 below those into a sticky bit. That leaves:
	//	bit 0      sticky
	//	bits 1-2   guard, round
	//	bits 3-25  fraction
	//	bits 26-27 integer part
	var sticky uint64
	if p&(1<<20-1) != 0 {
		sticky = 1
	}
	p = p>>20 | sticky

	// The product's binary point is now below bit 26: take off 3 for
	// guard/round/sticky and 23 for the fraction from the integer bias,
	// then add both unbiased exponents.
	exp := intBias - grsBits - fracBits + (int(x.exp) - bias) + (int(y.exp) - bias)
	return normalize(neg, p, exp)
}

// mulSignificands multiplies two 24 bit significands exactly.
func mulSignificands(a, b uint64) uint64 {
	return mulShiftAdd(a, b)
}

// mulShiftAdd is long multiplication: add a shifted copy of b for every set bit
// of a.
func mulShiftAdd(a, b uint64) uint64 {
	var p uint64
	for bit := 0; bit < fracBits+1; bit++ {
		if a&1 != 0 {
			p += b
		}
		b <<= 1
		a >>= 1
	}
	return p
}

// mulBig lets the hardware do it. 48 bits fit comfortably in a uint64.
func mulBig(a, b uint64) uint64 {
	return a * b
}
