package conform

// LFSR is a 32 bit Galois linear-feedback shift register, used as a cheap,
// reproducible source of operand bit patterns.
type LFSR struct {
	state uint32
	taps  uint32
}

// defaultTaps gives the maximal period of 2^32-1.
const defaultTaps uint32 = 0x80200003

// NewLFSR returns an LFSR starting from seed. The all-zeros state is stuck
// forever, so a zero seed is replaced with all ones.
func NewLFSR(seed uint32) *LFSR {
	if seed == 0 {
		seed = 0xffffffff
	}
	return &LFSR{
		state: seed,
		taps:  defaultTaps,
	}
}

func (l *LFSR) step() uint32 {
	fb := l.state & 1
	l.state >>= 1
	if fb == 1 {
		l.state ^= l.taps
	}
	return fb
}

// Next returns the next 32 bits of output.
func (l *LFSR) Next() uint32 {
	var out uint32
	for i := 0; i < 32; i++ {
		out = out<<1 | l.step()
	}
	return out
}

// Operand returns bits for a random normalized float32 whose biased exponent
// is in [lo, hi].
func (l *LFSR) Operand(lo, hi uint8) uint32 {
	b := l.Next()
	span := uint32(hi-lo) + 1
	e := uint32(lo) + (b>>23&0xff)%span
	return b&0x807fffff | e<<23
}
