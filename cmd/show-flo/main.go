// show-flo shows how numbers are represented by flo.F32, and with two numbers
// the results of the arithmetic operations next to what the hardware gets.
// Mostly for debugging rounding.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/xerrors"

	"github.com/pfcm/emuflo/flo"
)

var (
	opsFlag = flag.String("ops", "", "comma separated list of `operations` to show. Available operations are: "+strings.Join(opKeys, ", ")+". Defaults to all operations")
	intFlag = flag.Bool("int", false, "parse the arguments as integers and convert them with rounding, rather than as floats")
)

type op struct {
	emulated func(x, y flo.F32) flo.F32
	native   func(a, b float32) float32
}

var opKeys = []string{"+", "-", "*", "/"}

var ops = map[string]op{
	"+": {flo.F32.Add, func(a, b float32) float32 { return a + b }},
	"-": {flo.F32.Sub, func(a, b float32) float32 { return a - b }},
	"*": {flo.F32.Mul, func(a, b float32) float32 { return a * b }},
	"/": {flo.F32.Div, func(a, b float32) float32 { return a / b }},
}

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), help)
		fmt.Fprintln(flag.CommandLine.Output(), "\nOptional arguments:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if n := flag.NArg(); n < 1 || n > 2 {
		fail("Need exactly one or two arguments.")
	}

	show, err := parseOps(*opsFlag)
	if err != nil {
		fail(err.Error())
	}

	a, err := parse(flag.Arg(0))
	if err != nil {
		fail(err.Error())
	}
	w := tabwriter.NewWriter(os.Stdout, 11, 1, 1, ' ', 0)

	showFields(w, a)

	if flag.NArg() == 2 {
		b, err := parse(flag.Arg(1))
		if err != nil {
			fail(err.Error())
		}
		fmt.Fprintln(w)
		showFields(w, b)
		fmt.Fprintln(w)
		showOps(w, show, a, b)
	}

	if err := w.Flush(); err != nil {
		fail(err.Error())
	}
}

func parseOps(s string) (map[string]bool, error) {
	all := make(map[string]bool)
	for _, o := range opKeys {
		all[o] = true
	}
	if s == "" {
		return all, nil
	}
	result := make(map[string]bool)
	for _, o := range strings.Split(s, ",") {
		if !all[o] {
			return nil, xerrors.Errorf("unknown op %q", o)
		}
		result[o] = true
	}
	return result, nil
}

func parse(s string) (flo.F32, error) {
	if *intFlag {
		var i int64
		if _, err := fmt.Sscan(s, &i); err != nil {
			return flo.F32{}, xerrors.Errorf("parsing %q as an integer: %w", s, err)
		}
		return flo.FromInt(i), nil
	}
	return flo.Parse(s)
}

func showFields(w io.Writer, x flo.F32) {
	sign := 0
	if x.Signbit() {
		sign = 1
	}
	fmt.Fprintf(w, "value\t%v\n", x)
	fmt.Fprintf(w, "bits\t%08x\t%032b\n", x.Bits(), x.Bits())
	fmt.Fprintf(w, "sign\t%d\n", sign)
	fmt.Fprintf(w, "exponent\t%d\t(2^%d)\n", x.Exponent(), int(x.Exponent())-127)
	fmt.Fprintf(w, "significand\t%06x\t%023b\n", x.Significand(), x.Significand())
	if x.IsZero() {
		fmt.Fprintf(w, "\t(zero)\n")
	}
}

func showOps(w io.Writer, show map[string]bool, a, b flo.F32) {
	fmt.Fprintf(w, "op\temulated\tnative\t\n")
	for _, k := range opKeys {
		if !show[k] {
			continue
		}
		o := ops[k]
		got := o.emulated(a, b)
		want := o.native(a.Float32(), b.Float32())
		mark := "ok"
		if got.Bits() != math.Float32bits(want) {
			mark = "MISMATCH"
		}
		fmt.Fprintf(w, "%v %s %v\t%v (%08x)\t%v (%08x)\t%s\n",
			a, k, b, got, got.Bits(), want, math.Float32bits(want), mark)
	}
}

func fail(reason string) {
	fmt.Fprintln(os.Stderr, reason)
	fmt.Fprintln(os.Stderr, help)
	os.Exit(1)
}

const help = `show-flo shows the sign, exponent and significand of emulated
single precision floats.
Usage:
	show-flo [-ops] [-int] num [num]

Where num is a float literal in Go syntax. If a second number is provided,
also shows the results of the arithmetic operations between them, emulated
and native.
`
