// package flo provides F32, a software implementation of IEEE 754 single
// precision floating point. The sign, biased exponent and significand are kept
// as separate fields and all of the arithmetic is done with integer operations
// on those fields, rounding to nearest even using guard, round and sticky bits.
//
// Subnormals, infinities and NaN are not supported, and nothing checks for
// exponent overflow or underflow: the exponent silently wraps within its 8
// bits. Bit patterns for the unsupported values are accepted by FromBits and
// FromFloat, but arithmetic on them produces meaningless (if deterministic)
// results.
package flo

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

const (
	fracBits = 23
	expBits  = 8
	bias     = 127
	// intBias is the provisional exponent of an integer: the binary point
	// sits just below bit 0 rather than below bit 23.
	intBias = bias + fracBits

	fracMask = 1<<fracBits - 1
	hidden   = 1 << fracBits
	expMask  = 1<<expBits - 1
	signBit  = 1 << 31
)

// F32 is an emulated single precision float. The zero value is +0. F32s are
// immutable and comparable; == compares all three fields, which for values
// produced by this package is bit-for-bit equality.
type F32 struct {
	neg  bool   // sign
	exp  uint8  // biased exponent, 0 means zero
	frac uint32 // low 23 bits of the significand
}

// FromBits interprets b as an IEEE 754 single precision bit pattern: bit 31 is
// the sign, bits 30-23 the exponent and bits 22-0 the significand.
func FromBits(b uint32) F32 {
	return F32{
		neg:  b&signBit != 0,
		exp:  uint8(b >> fracBits & expMask),
		frac: b & fracMask,
	}
}

// Bits returns the IEEE 754 single precision bit pattern of x.
func (x F32) Bits() uint32 {
	b := uint32(x.exp)<<fracBits | x.frac&fracMask
	if x.neg {
		b |= signBit
	}
	return b
}

// FromFloat converts a native float into an F32. For float32 this is exact;
// a float64 is first converted to float32 by the host.
func FromFloat[T constraints.Float](f T) F32 {
	return FromBits(math.Float32bits(float32(f)))
}

// Float converts x into a native float.
func Float[T constraints.Float](x F32) T {
	return T(x.Float32())
}

// Float32 returns the native float32 with the same bits as x.
func (x F32) Float32() float32 {
	return math.Float32frombits(x.Bits())
}

// FromInt converts an integer into an F32, rounding to nearest even if it
// needs more than 24 significant bits.
func FromInt[T constraints.Integer](i T) F32 {
	neg := i < 0
	m := uint64(i)
	if neg {
		m = -m
	}
	return normalize(neg, m, intBias)
}

// Int converts x to an integer by way of float32, truncating towards zero. As
// with any Go float to integer conversion, the result is implementation
// specific if it doesn't fit in T.
func Int[T constraints.Integer](x F32) T {
	return T(x.Float32())
}

// Zero returns +0.
func Zero() F32 { return F32{} }

// One returns 1.
func One() F32 { return F32{exp: bias} }

// IsZero reports whether x is zero of either sign. Any F32 with a zero exponent
// is zero, whatever is stored in its significand.
func (x F32) IsZero() bool { return x.exp == 0 }

// Signbit reports whether x is negative or negative zero.
func (x F32) Signbit() bool { return x.neg }

// Exponent returns the biased exponent of x.
func (x F32) Exponent() uint8 { return x.exp }

// Significand returns the 23 stored significand bits of x, without the
// implied leading one.
func (x F32) Significand() uint32 { return x.frac }

// mant returns the 24 bit significand with its implied leading one. It does
// not check for zero.
func (x F32) mant() uint64 {
	return uint64(x.frac) | hidden
}

// Neg returns x with its sign flipped.
func (x F32) Neg() F32 {
	x.neg = !x.neg
	return x
}

// Abs returns x with its sign cleared.
func (x F32) Abs() F32 {
	x.neg = false
	return x
}

// Sign returns -1, 0 or 1 depending on the sign of x.
func (x F32) Sign() int {
	switch {
	case x.IsZero():
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// Cmp compares x and y, returning -1 if x < y, 0 if x == y and 1 if x > y.
// Both zeros compare equal. Since the encoding is sign-magnitude with the
// exponent above the significand, values of the same sign order the same way
// as their magnitude bits.
func (x F32) Cmp(y F32) int {
	xs, ys := x.Sign(), y.Sign()
	if xs != ys {
		if xs < ys {
			return -1
		}
		return 1
	}
	if xs == 0 {
		return 0
	}
	mx := uint32(x.exp)<<fracBits | x.frac
	my := uint32(y.exp)<<fracBits | y.frac
	c := 0
	switch {
	case mx < my:
		c = -1
	case mx > my:
		c = 1
	}
	return c * xs
}

// Less reports whether x < y.
func (x F32) Less(y F32) bool { return x.Cmp(y) < 0 }

func (x F32) String() string {
	return strconv.FormatFloat(float64(x.Float32()), 'g', -1, 32)
}

// GoString shows the fields, which is mostly useful for debugging rounding.
func (x F32) GoString() string {
	s := 0
	if x.neg {
		s = 1
	}
	return fmt.Sprintf("flo.F32{sign: %d, exp: %d, frac: %#08x}", s, x.exp, x.frac)
}

// Parse parses a decimal or hexadecimal float literal, rounding it to single
// precision with strconv.
func Parse(s string) (F32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return F32{}, err
	}
	return FromFloat(float32(f)), nil
}

// MustParse is like Parse but panics if s is not a valid float.
func MustParse(s string) F32 {
	x, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return x
}
