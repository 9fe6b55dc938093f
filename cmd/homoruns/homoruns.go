// 9 Aug 2023
// Command line wrapper for the homozygosity run scanner.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/tonymugen/analyzeAlignments/pkg/homoruns"
)

const (
	exitSuccess = iota
	exitFailure
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags]")
	long := `Read a fasta alignment and save a diversity table: for every window
position, the number of times each distinct sequence variant occurs.
Windows whose end would run past the alignment are not reported.`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	var flags homoruns.CmdFlag

	flag.StringVar(&flags.InFile, "input-file", "", "input alignment file name (required)")
	flag.IntVar(&flags.Window, "window-size", 0, "window size for similarity estimates (required)")
	flag.IntVar(&flags.Step, "step-size", 0, "step size for similarity estimates (required)")
	flag.BoolVar(&flags.Impute, "impute-missing", false, "replace missing values with the consensus nucleotide")
	flag.StringVar(&flags.OutFile, "out-file", "", "output file name; stdout if not given")
	flag.Usage = usage
	flag.Parse()

	if err := homoruns.Mymain(&flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(exitFailure)
	}
	os.Exit(exitSuccess)
}
