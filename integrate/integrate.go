// package integrate approximates definite integrals with native float32s and
// with emulated flo.F32s. The two versions of each rule do exactly the same
// operations in the same order, so as long as nothing underflows they give
// bit-for-bit identical answers; they mostly exist to compare speed.
package integrate

import (
	"github.com/chewxy/math32"

	"github.com/pfcm/emuflo/flo"
	"github.com/pfcm/emuflo/interp"
)

// Riemann approximates the integral of f(x) = x from start to end with a left
// Riemann sum of the given number of steps.
func Riemann(start, end float32, steps int) float32 {
	delta := (end - start) / float32(steps)
	var integral float32
	for x := start; x < end; x += delta {
		// The explicit conversion stops the compiler fusing this into an
		// FMA, which would round differently to the emulated version.
		integral += float32(x * delta)
	}
	return integral
}

// RiemannF32 is Riemann using flo.F32 for all of the arithmetic and
// comparisons.
func RiemannF32(start, end flo.F32, steps int) flo.F32 {
	delta := end.Sub(start).Div(flo.FromInt(steps))
	integral := flo.Zero()
	for x := start; x.Less(end); x = x.Add(delta) {
		integral = integral.Add(x.Mul(delta))
	}
	return integral
}

// Trapezoid approximates the integral of f from start to end with the
// trapezoid rule.
func Trapezoid(f func(float32) float32, start, end float32, steps int) float32 {
	delta := (end - start) / float32(steps)
	var integral float32
	x, y := start, f(start)
	for i := 0; i < steps; i++ {
		nx := x + delta
		ny := f(nx)
		integral += float32((y + ny) / 2 * delta)
		x, y = nx, ny
	}
	return integral
}

// TrapezoidF32 is Trapezoid using flo.F32.
func TrapezoidF32(f func(flo.F32) flo.F32, start, end flo.F32, steps int) flo.F32 {
	delta := end.Sub(start).Div(flo.FromInt(steps))
	integral := flo.Zero()
	x, y := start, f(start)
	for i := 0; i < steps; i++ {
		nx := x.Add(delta)
		ny := f(nx)
		integral = integral.Add(interp.Mid(y, ny).Mul(delta))
		x, y = nx, ny
	}
	return integral
}

// Identity is the integral of f(x) = x from start to end, worked out in
// float64.
func Identity(start, end float32) float64 {
	s, e := float64(start), float64(end)
	return (e*e - s*s) / 2
}

// RelErr is the error of got relative to want. It is |got| when want is zero.
func RelErr(got, want float32) float32 {
	if want == 0 {
		return math32.Abs(got)
	}
	return math32.Abs((got - want) / want)
}
