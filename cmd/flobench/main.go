// flobench times a numeric integral computed with native float32s against the
// same integral computed with emulated flo.F32s.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/xerrors"

	"github.com/pfcm/emuflo/flo"
	"github.com/pfcm/emuflo/integrate"
)

var (
	startFlag    = flag.Float64("start", 0, "start of the integration interval")
	endFlag      = flag.Float64("end", 10, "end of the integration interval")
	stepsFlag    = flag.Int("steps", 10_000_000, "number of steps")
	ruleFlag     = flag.String("rule", "riemann", "integration rule: riemann (f(x) = x) or trapezoid (f(x) = x*x)")
	parallelFlag = flag.Bool("parallel", false, "run the native and emulated integrals at the same time")
	profileFlag  = flag.Bool("profile", false, "whether to write pprof profiles to the current working directory")
)

type result struct {
	name     string
	value    float32
	duration time.Duration
}

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("flobench: ")

	if *stepsFlag <= 0 {
		log.Fatalf("-steps must be positive, got %d", *stepsFlag)
	}

	if *profileFlag {
		finish, err := startProfiles()
		if err != nil {
			log.Fatalf("Starting profiling: %v", err)
		}
		defer func() {
			if err := finish(); err != nil {
				log.Fatalf("Finishing profiles: %v", err)
			}
		}()
	}

	native, emulated, err := rules(*ruleFlag, float32(*startFlag), float32(*endFlag), *stepsFlag)
	if err != nil {
		log.Fatal(err)
	}

	results, err := run(interruptContext(), *parallelFlag, native, emulated)
	if err != nil {
		log.Fatal(err)
	}

	p := message.NewPrinter(language.English)
	for _, r := range results {
		p.Printf("Total execution time %s: %d microseconds\n", r.name, r.duration.Microseconds())
	}
	for _, r := range results {
		p.Printf("%s: %f\n", r.name, r.value)
	}
	if results[0].duration > 0 {
		p.Printf("slowdown: %.1fx\n", float64(results[1].duration)/float64(results[0].duration))
	}
	if *ruleFlag == "riemann" {
		p.Printf("exact: %f\n", integrate.Identity(float32(*startFlag), float32(*endFlag)))
	}
}

// rules returns the native and emulated versions of the named integration
// rule over [start, end].
func rules(name string, start, end float32, steps int) (native, emulated func() float32, err error) {
	switch name {
	case "riemann":
		native = func() float32 {
			return integrate.Riemann(start, end, steps)
		}
		emulated = func() float32 {
			return integrate.RiemannF32(flo.FromFloat(start), flo.FromFloat(end), steps).Float32()
		}
	case "trapezoid":
		native = func() float32 {
			return integrate.Trapezoid(func(x float32) float32 { return x * x }, start, end, steps)
		}
		emulated = func() float32 {
			sq := func(x flo.F32) flo.F32 { return x.Mul(x) }
			return integrate.TrapezoidF32(sq, flo.FromFloat(start), flo.FromFloat(end), steps).Float32()
		}
	default:
		return nil, nil, xerrors.Errorf("unknown rule %q", name)
	}
	return native, emulated, nil
}

// run times native and then emulated, or both at once if parallel is set.
func run(ctx context.Context, parallel bool, native, emulated func() float32) ([]result, error) {
	results := []result{{name: "float"}, {name: "float_emulated"}}
	fns := []func() float32{native, emulated}
	timeOne := func(i int) {
		t0 := time.Now()
		results[i].value = fns[i]()
		results[i].duration = time.Since(t0)
	}

	if !parallel {
		for i := range fns {
			if err := ctx.Err(); err != nil {
				return nil, xerrors.Errorf("interrupted: %w", err)
			}
			timeOne(i)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range fns {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			timeOne(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, xerrors.Errorf("interrupted: %w", err)
	}
	return results, nil
}

func interruptContext() context.Context {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ctx
}

func startProfiles() (func() error, error) {
	cpu, err := os.Create("cpu.pprof")
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(cpu); err != nil {
		return nil, xerrors.Errorf("starting cpu profile: %w", err)
	}

	mem, err := os.Create("mem.pprof")
	if err != nil {
		return nil, err
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := cpu.Close(); err != nil {
			return err
		}
		runtime.GC()
		if err := pprof.WriteHeapProfile(mem); err != nil {
			return err
		}
		return mem.Close()
	}, nil
}
