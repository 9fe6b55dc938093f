// 9 Aug 2023
// Command line wrapper for the window extractor.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/tonymugen/analyzeAlignments/pkg/extract"
)

const (
	exitSuccess = iota
	exitFailure
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags]")
	long := `Read a fasta alignment and save the distinct sequence variants in one
window, with their occurrence counts. Give the window as -start-position
and -window-size, or give a query with -query-sequence; its best local
match against the consensus then decides where the window sits and the
position flags are ignored.`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	var flags extract.CmdFlag

	flag.StringVar(&flags.InFile, "input-file", "", "input alignment file name (required)")
	flag.IntVar(&flags.Start, "start-position", 1, "window start position, first nucleotide is 1")
	flag.IntVar(&flags.Window, "window-size", 0, "window size for similarity estimates")
	flag.StringVar(&flags.QueryFile, "query-sequence", "", "fasta file with a query sequence to locate the window")
	flag.BoolVar(&flags.Impute, "impute-missing", false, "replace missing values with the consensus nucleotide")
	flag.StringVar(&flags.OutFormat, "out-format", "tab", "output format, FASTA or TAB")
	flag.BoolVar(&flags.Sorted, "sorted", false, "order variants by descending occurrence count")
	flag.StringVar(&flags.OutFile, "out-file", "", "output file name; stdout if not given")
	flag.Usage = usage
	flag.Parse()

	if err := extract.Mymain(&flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(exitFailure)
	}
	os.Exit(exitSuccess)
}
