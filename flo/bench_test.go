package flo

import (
	"math/rand/v2"
	"testing"
)

var (
	sinkU64 uint64
	sinkF32 F32
	sinkF   float32
)

func benchOperands(n int) ([]F32, []float32) {
	r := rand.New(rand.NewPCG(23, 24))
	xs := make([]F32, n)
	fs := make([]float32, n)
	for i := range xs {
		fs[i] = randNormal(r, 64, 190)
		xs[i] = FromFloat(fs[i])
	}
	return xs, fs
}

func BenchmarkAlign(b *testing.B) {
	for _, impl := range []struct {
		name string
		f    func(uint64, uint) uint64
	}{
		{"loop", alignLoop},
		{"mask", alignMask},
	} {
		b.Run(impl.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				sinkU64 = impl.f(0xffffff<<3, uint(i&31))
			}
		})
	}
}

func BenchmarkMulSignificands(b *testing.B) {
	for _, impl := range []struct {
		name string
		f    func(uint64, uint64) uint64
	}{
		{"shiftadd", mulShiftAdd},
		{"big", mulBig},
	} {
		b.Run(impl.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				sinkU64 = impl.f(uint64(i&0x7fffff)|hidden, 0xabcdef|hidden)
			}
		})
	}
}

func BenchmarkDivSignificands(b *testing.B) {
	for _, impl := range []struct {
		name string
		f    func(uint64, uint64) (uint64, uint64)
	}{
		{"restoring", divRestoring},
		{"big", divBig},
	} {
		b.Run(impl.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				sinkU64, _ = impl.f(uint64(i&0x7fffff)|hidden, 0xabcdef|hidden)
			}
		})
	}
}

func BenchmarkOps(b *testing.B) {
	const n = 1024
	xs, fs := benchOperands(n)
	for _, op := range []struct {
		name   string
		f      func(F32, F32) F32
		native func(float32, float32) float32
	}{
		{"Add", F32.Add, func(a, b float32) float32 { return a + b }},
		{"Sub", F32.Sub, func(a, b float32) float32 { return a - b }},
		{"Mul", F32.Mul, func(a, b float32) float32 { return a * b }},
		{"Div", F32.Div, func(a, b float32) float32 { return a / b }},
	} {
		b.Run(op.name+"/emulated", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				sinkF32 = op.f(xs[i%n], xs[(i+1)%n])
			}
		})
		b.Run(op.name+"/native", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				sinkF = op.native(fs[i%n], fs[(i+1)%n])
			}
		})
	}
}
