// flocheck compares emulated flo arithmetic against the hardware on
// pseudo-random operands.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pfcm/emuflo/conform"
)

var (
	samplesFlag = flag.Int("n", 1_000_000, "number of operand pairs per op")
	opsFlag     = flag.String("ops", conform.Names(conform.Ops), "comma separated ops to check")
	workersFlag = flag.Int("workers", runtime.NumCPU(), "maximum number of goroutines")
	seedFlag    = flag.Uint("seed", 0xace1, "seed for the operand generators")
	maxFlag     = flag.Int("max", 10, "maximum number of mismatches to print per op, 0 for all")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("flocheck: ")

	ops, err := conform.LookupOps(strings.Split(*opsFlag, ","))
	if err != nil {
		log.Fatal(err)
	}

	cfg := conform.Config{
		Samples:       *samplesFlag,
		Seed:          uint32(*seedFlag),
		Workers:       *workersFlag,
		MaxMismatches: *maxFlag,
	}
	log.Printf("Checking %s with %d workers", conform.Names(ops), cfg.Workers)

	t0 := time.Now()
	reports, err := conform.Check(interruptContext(), ops, cfg)
	if err != nil {
		log.Fatal(err)
	}

	p := message.NewPrinter(language.English)
	for _, r := range reports {
		p.Printf("%s: %d checked, %d skipped, %d mismatched\n", r.Op, r.Checked, r.Skipped, len(r.Mismatches))
	}
	p.Printf("took %d milliseconds\n", time.Since(t0).Milliseconds())

	if err := conform.Err(reports); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Println("All done")
}

func interruptContext() context.Context {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ctx
}
