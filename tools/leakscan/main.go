// Command leakscan ranks the meters of an auxiliary reading export by
// estimated leakage rate, without running the full pipeline.
package main

import (
	"flag"
	"fmt"
	"os"

	"campus-waterworks/internal/leakage"
	"campus-waterworks/internal/loader"
	"campus-waterworks/internal/report"
)

type options struct {
	inPath  string
	outPath string
	top     int
}

func main() {
	var opts options
	flag.StringVar(&opts.inPath, "in", "", "auxiliary readings CSV")
	flag.StringVar(&opts.outPath, "out", "", "optional output CSV; stdout table when empty")
	flag.IntVar(&opts.top, "top", 0, "print only the first N rates (0 = all)")
	flag.Parse()

	if opts.inPath == "" {
		exitf("missing -in")
	}

	rows, err := loader.ReadAuxCSV(opts.inPath)
	if err != nil {
		exitf("read %s: %v", opts.inPath, err)
	}

	ranked := leakage.Rank(rows)
	if len(ranked.Skipped) > 0 {
		fmt.Fprintf(os.Stderr, "skipped %d meters with insufficient data\n", len(ranked.Skipped))
	}

	if opts.outPath != "" {
		if err := report.WriteRatesCSV(opts.outPath, ranked.Rates); err != nil {
			exitf("write %s: %v", opts.outPath, err)
		}
		fmt.Printf("wrote %d rates to %s\n", len(ranked.Rates), opts.outPath)
		return
	}

	limit := len(ranked.Rates)
	if opts.top > 0 && opts.top < limit {
		limit = opts.top
	}
	for _, rate := range ranked.Rates[:limit] {
		fmt.Printf("%-24s %8.2f\n", rate.Code, rate.Rate)
	}
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "leakscan: "+format+"\n", args...)
	os.Exit(1)
}
