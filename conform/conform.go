// package conform checks flo against the hardware: it runs each emulated
// operation and the native float32 operation on the same sampled operands and
// records every result that isn't bit-for-bit identical.
package conform

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/chewxy/math32"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/pfcm/emuflo/flo"
)

// Op is an operation to check.
type Op struct {
	Name     string
	Emulated func(x, y flo.F32) flo.F32
	Native   func(a, b float32) float32
	// MinExp and MaxExp bound the biased exponents of sampled operands, to
	// keep most native results normalized.
	MinExp, MaxExp uint8
}

// Ops are the four arithmetic operations, in the usual order.
var Ops = []Op{{
	Name:     "add",
	Emulated: flo.F32.Add,
	Native:   func(a, b float32) float32 { return a + b },
	MinExp:   2,
	MaxExp:   253,
}, {
	Name:     "sub",
	Emulated: flo.F32.Sub,
	Native:   func(a, b float32) float32 { return a - b },
	MinExp:   2,
	MaxExp:   253,
}, {
	Name:     "mul",
	Emulated: flo.F32.Mul,
	Native:   func(a, b float32) float32 { return a * b },
	MinExp:   64,
	MaxExp:   190,
}, {
	Name:     "div",
	Emulated: flo.F32.Div,
	Native:   func(a, b float32) float32 { return a / b },
	MinExp:   64,
	MaxExp:   190,
}}

// LookupOps returns the Ops with the given names, or all of them if names is
// empty.
func LookupOps(names []string) ([]Op, error) {
	if len(names) == 0 {
		return Ops, nil
	}
	var out []Op
	for _, n := range names {
		found := false
		for _, op := range Ops {
			if op.Name == n {
				out = append(out, op)
				found = true
				break
			}
		}
		if !found {
			return nil, xerrors.Errorf("unknown op %q", n)
		}
	}
	return out, nil
}

// Mismatch is a sample where the emulated and native results differ.
type Mismatch struct {
	Op        string
	A, B      uint32
	Got, Want uint32
}

func (m Mismatch) Error() string {
	return fmt.Sprintf("%08x %s %08x = %08x, want %08x (%v %s %v = %v, want %v)",
		m.A, m.Op, m.B, m.Got, m.Want,
		math.Float32frombits(m.A), m.Op, math.Float32frombits(m.B),
		math.Float32frombits(m.Got), math.Float32frombits(m.Want))
}

// Report summarises the samples of one Op.
type Report struct {
	Op      string
	Checked int
	// Skipped counts samples whose native result was not a normalized
	// number or zero, which flo doesn't try to match.
	Skipped    int
	Mismatches []Mismatch
}

// Err returns all of the mismatches as one error, or nil if there weren't any.
func (r Report) Err() error {
	var err *multierror.Error
	for _, m := range r.Mismatches {
		err = multierror.Append(err, m)
	}
	return err.ErrorOrNil()
}

func (r Report) String() string {
	return fmt.Sprintf("%s: %d checked, %d skipped, %d mismatched", r.Op, r.Checked, r.Skipped, len(r.Mismatches))
}

// Err combines the errors of all reports.
func Err(reports []Report) error {
	var err *multierror.Error
	for _, r := range reports {
		if e := r.Err(); e != nil {
			err = multierror.Append(err, e)
		}
	}
	return err.ErrorOrNil()
}

// Config controls Check.
type Config struct {
	// Samples is the number of operand pairs per op.
	Samples int
	// Seed seeds the LFSRs; the same seed always checks the same operands.
	Seed uint32
	// Workers bounds the number of goroutines. Zero or less means one.
	Workers int
	// MaxMismatches caps the mismatches kept per op, zero means no cap.
	MaxMismatches int
}

// chunkSize is the number of samples handled by one goroutine.
const chunkSize = 1 << 14

// Check samples each op cfg.Samples times and reports how it went. It only
// returns an error for bad config or if ctx is done first; mismatches are in
// the reports.
func Check(ctx context.Context, ops []Op, cfg Config) ([]Report, error) {
	if cfg.Samples < 0 {
		return nil, xerrors.Errorf("negative sample count %d", cfg.Samples)
	}
	workers := max(cfg.Workers, 1)

	chunks := (cfg.Samples + chunkSize - 1) / chunkSize
	partial := make([][]Report, len(ops))
	for i := range partial {
		partial[i] = make([]Report, chunks)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, op := range ops {
		for c := 0; c < chunks; c++ {
			n := min(chunkSize, cfg.Samples-c*chunkSize)
			// Each chunk gets its own seed so results don't depend on
			// scheduling.
			seed := cfg.Seed ^ uint32(i)<<24 ^ uint32(c)*0x9e3779b9
			g.Go(func() error {
				r, err := checkChunk(ctx, op, NewLFSR(seed), n)
				if err != nil {
					return xerrors.Errorf("checking %s: %w", op.Name, err)
				}
				partial[i][c] = r
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	reports := make([]Report, len(ops))
	for i, op := range ops {
		r := Report{Op: op.Name}
		for _, p := range partial[i] {
			r.Checked += p.Checked
			r.Skipped += p.Skipped
			r.Mismatches = append(r.Mismatches, p.Mismatches...)
		}
		if cfg.MaxMismatches > 0 && len(r.Mismatches) > cfg.MaxMismatches {
			r.Mismatches = r.Mismatches[:cfg.MaxMismatches]
		}
		reports[i] = r
	}
	return reports, nil
}

func checkChunk(ctx context.Context, op Op, l *LFSR, n int) (Report, error) {
	r := Report{Op: op.Name}
	for i := 0; i < n; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return r, err
			}
		}
		a := l.Operand(op.MinExp, op.MaxExp)
		b := l.Operand(op.MinExp, op.MaxExp)
		m, ok := CheckPair(op, a, b)
		if !ok {
			r.Skipped++
			continue
		}
		r.Checked++
		if m != nil {
			r.Mismatches = append(r.Mismatches, *m)
		}
	}
	return r, nil
}

// CheckPair runs op on the float32s with bits a and b. ok is false if the
// native result is something flo doesn't handle: NaN, an infinity or a
// number too small to be safely normalized.
func CheckPair(op Op, a, b uint32) (m *Mismatch, ok bool) {
	fa, fb := math.Float32frombits(a), math.Float32frombits(b)
	want := op.Native(fa, fb)
	if math32.IsNaN(want) || math32.IsInf(want, 0) {
		return nil, false
	}
	if want != 0 && math.Float32bits(want)>>23&0xff <= 1 {
		return nil, false
	}
	got := op.Emulated(flo.FromBits(a), flo.FromBits(b))
	if got.Bits() != math.Float32bits(want) {
		return &Mismatch{Op: op.Name, A: a, B: b, Got: got.Bits(), Want: math.Float32bits(want)}, true
	}
	return nil, true
}

// Names returns the names of ops, comma separated.
func Names(ops []Op) string {
	s := make([]string, len(ops))
	for i, op := range ops {
		s[i] = op.Name
	}
	return strings.Join(s, ",")
}
