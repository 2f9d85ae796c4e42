package flo

import (
	"math"
	"math/rand/v2"
	"testing"
)

// normalBits reports whether b is a normalized float32 whose exponent is far
// enough from the edges that rounding can't have involved a subnormal.
func normalBits(b uint32) bool {
	e := b >> 23 & 0xff
	return e > 1 && e < 0xff
}

// randNormal returns a random normalized float32 with a biased exponent in
// [lo, hi].
func randNormal(r *rand.Rand, lo, hi uint32) float32 {
	e := lo + r.Uint32N(hi-lo+1)
	b := r.Uint32()&(1<<31|fracMask) | e<<23
	return math.Float32frombits(b)
}

func TestFromFloatRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for e := uint32(1); e < 0xff; e++ {
		for i := 0; i < 64; i++ {
			b := r.Uint32()&(1<<31|fracMask) | e<<23
			f := math.Float32frombits(b)
			got := FromFloat(f).Float32()
			if math.Float32bits(got) != b {
				t.Errorf("FromFloat(%v).Float32() = %08x, want: %08x", f, math.Float32bits(got), b)
			}
		}
	}
}

func TestFromBits(t *testing.T) {
	for _, c := range []struct {
		bits uint32
		neg  bool
		exp  uint8
		frac uint32
	}{
		{0x00000000, false, 0, 0},
		{0x80000000, true, 0, 0},
		{0x3f800000, false, 127, 0},
		{0xbf800000, true, 127, 0},
		{0x40490fdb, false, 128, 0x490fdb},
		{0x7f7fffff, false, 254, 0x7fffff},
		{0x00000001, false, 0, 1}, // a subnormal, read as zero
	} {
		got := FromBits(c.bits)
		want := F32{neg: c.neg, exp: c.exp, frac: c.frac}
		if got != want {
			t.Errorf("FromBits(%08x) = %#v, want: %#v", c.bits, got, want)
		}
		if b := got.Bits(); b != c.bits {
			t.Errorf("FromBits(%08x).Bits() = %08x", c.bits, b)
		}
	}
	if !FromBits(0x00000001).IsZero() {
		t.Errorf("subnormal bit pattern is not zero")
	}
}

func TestFromInt(t *testing.T) {
	for _, i := range []int64{
		0,
		1,
		-1,
		2,
		10,
		-2,
		1 << 23,
		1<<24 - 1,
		1 << 24,
		1<<24 + 1, // tie, rounds down to even
		1<<24 + 3, // tie, rounds up to even
		1<<25 + 5, // above halfway
		1<<25 + 2, // tie at the wider spacing
		123456789,
		-987654321,
		math.MaxInt32,
		math.MinInt32,
		math.MaxInt64,
		math.MinInt64,
	} {
		got := FromInt(i)
		want := float32(i)
		if got.Float32() != want {
			t.Errorf("FromInt(%d) = %v (%#v), want: %v", i, got, got, want)
		}
	}
	if got, want := FromInt(uint64(math.MaxUint64)).Float32(), float32(uint64(math.MaxUint64)); got != want {
		t.Errorf("FromInt(MaxUint64) = %v, want: %v", got, want)
	}
	if got := FromInt(0); got != Zero() {
		t.Errorf("FromInt(0) = %#v, want +0", got)
	}
}

func TestInt(t *testing.T) {
	for _, c := range []struct {
		in  float32
		out int
	}{
		{0, 0},
		{1, 1},
		{2.7, 2},
		{-2.7, -2},
		{0.5, 0},
		{-0.5, 0},
		{16777216, 16777216},
	} {
		got := Int[int](FromFloat(c.in))
		if got != c.out {
			t.Errorf("Int(%v) = %d, want: %d", c.in, got, c.out)
		}
	}
}

func TestFloat64(t *testing.T) {
	x := FromFloat(0.1) // float64 constant, rounded to float32 first
	if got, want := Float[float64](x), float64(float32(0.1)); got != want {
		t.Errorf("Float[float64](%v) = %v, want: %v", x, got, want)
	}
}

func TestCmp(t *testing.T) {
	f := func(s string) F32 { return MustParse(s) }
	negZero := Zero().Neg()
	for _, c := range []struct {
		a, b F32
		out  int
	}{
		{Zero(), Zero(), 0},
		{Zero(), negZero, 0},
		{f("1"), f("1"), 0},
		{f("1"), f("2"), -1},
		{f("2"), f("1"), 1},
		{f("-1"), f("1"), -1},
		{f("-1"), f("-2"), 1},
		{f("-2"), f("-1"), -1},
		{f("-1"), Zero(), -1},
		{Zero(), f("1e-30"), -1},
		{f("1.5"), f("1.25"), 1},
	} {
		if got := c.a.Cmp(c.b); got != c.out {
			t.Errorf("%v Cmp %v = %d, want: %d", c.a, c.b, got, c.out)
		}
		if got := c.b.Cmp(c.a); got != -c.out {
			t.Errorf("%v Cmp %v = %d, want: %d", c.b, c.a, got, -c.out)
		}
	}
}

func TestParse(t *testing.T) {
	for _, c := range []struct {
		in   string
		bits uint32
	}{
		{"0", 0},
		{"-0", 0x80000000},
		{"1", 0x3f800000},
		{"0.1", 0x3dcccccd},
		{"-2.5", 0xc0200000},
		{"0x1p-126", 0x00800000},
	} {
		got, err := Parse(c.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", c.in, err)
			continue
		}
		if got.Bits() != c.bits {
			t.Errorf("Parse(%q) = %08x, want: %08x", c.in, got.Bits(), c.bits)
		}
	}
	if _, err := Parse("nope"); err == nil {
		t.Errorf("Parse(%q) didn't fail", "nope")
	}
}

func TestString(t *testing.T) {
	for _, c := range []struct {
		in  F32
		out string
	}{
		{Zero(), "0"},
		{One(), "1"},
		{FromInt(-10), "-10"},
		{FromFloat(float32(0.1)), "0.1"},
	} {
		if got := c.in.String(); got != c.out {
			t.Errorf("String(%#v) = %q, want: %q", c.in, got, c.out)
		}
	}
}

func TestNegAbs(t *testing.T) {
	x := FromInt(-3)
	if got := x.Neg(); got != FromInt(3) {
		t.Errorf("%v.Neg() = %v", x, got)
	}
	if got := x.Abs(); got != FromInt(3) {
		t.Errorf("%v.Abs() = %v", x, got)
	}
	if x.Sign() != -1 || Zero().Sign() != 0 || One().Sign() != 1 {
		t.Errorf("Sign: got %d, %d, %d", x.Sign(), Zero().Sign(), One().Sign())
	}
}
