package flo

// round.go holds normalize, the one place where results get rounded. Every
// other way of making an F32 from a computed value goes through it.

// normalize builds an F32 from the magnitude m and sign neg, where exp is the
// provisional biased exponent of m as if its leading one were already at bit
// 23. So normalize(false, 1, 150) is 1 and normalize(false, 1<<23, 127) is 1
// too.
//
// Shifting right to bring m down to 24 bits keeps the last two bits shifted
// out (guard and round) and ORs everything before them into sticky, which is
// enough to round to nearest even. Shifting left can't lose anything.
//
// The resulting exponent is not range checked, it is simply truncated to 8
// bits.
func normalize(neg bool, m uint64, exp int) F32 {
	if m == 0 {
		return F32{}
	}

	var gr, sticky uint64
	for m >= 1<<(fracBits+1) {
		sticky |= gr & 1
		gr = gr>>1 | (m&1)<<1
		m >>= 1
		exp++
	}
	for m < hidden {
		m <<= 1
		exp--
	}

	switch {
	case gr == 0b10 && sticky != 0:
		m++
	case gr == 0b10:
		// exactly halfway, round to the even neighbour.
		m = (m + 1) &^ 1
	case gr == 0b11:
		m++
	}

	// rounding up 0xffffff carries out of the significand.
	if m >= 1<<(fracBits+1) {
		m >>= 1
		exp++
	}

	return F32{
		neg:  neg,
		exp:  uint8(exp),
		frac: uint32(m) & fracMask,
	}
}

// normalizeSigned is normalize for a two's complement m, taking the sign from
// m itself.
func normalizeSigned(m int64, exp int) F32 {
	if m < 0 {
		return normalize(true, uint64(-m), exp)
	}
	return normalize(false, uint64(m), exp)
}
