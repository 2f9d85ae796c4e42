// package interp provides interpolation helpers for emulated floats.
package interp

import (
	"github.com/pfcm/emuflo/flo"
)

// L does linear interpolation:
//
//	   L(a, b, c) = (1-c)*a + c*b
//		= a + c*(b-a)
//
// The second form saves a multiplication, but the first one is exact at both
// ends: L(a, b, 0) == a and L(a, b, 1) == b, which the second can miss when
// b-a rounds.
func L(a, b, c flo.F32) flo.F32 {
	return flo.One().Sub(c).Mul(a).Add(c.Mul(b))
}

// Mid returns the midpoint of a and b.
func Mid(a, b flo.F32) flo.F32 {
	return a.Add(b).Div(flo.FromInt(2))
}
