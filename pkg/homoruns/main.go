// 9 Aug 2023
// Read a fasta alignment and find regions of low sequence diversity by
// counting distinct variants in windows sliding along the alignment.

package homoruns

import (
	"fmt"
	"io"
	"os"

	"github.com/tonymugen/analyzeAlignments/pkg/align"
	"github.com/tonymugen/analyzeAlignments/pkg/report"
)

// CmdFlag holds the choices from the command line.
type CmdFlag struct {
	InFile  string // input alignment, fasta
	OutFile string // diversity table destination, "-" or empty for stdout
	Window  int    // window size in base pairs
	Step    int    // window movement step in base pairs
	Impute  bool   // replace missing nucleotides with the consensus first
}

// Mymain is the real main for the homoruns program.
func Mymain(flags *CmdFlag) error {
	if flags.InFile == "" {
		return fmt.Errorf("input-file specification is required")
	}
	if flags.Window <= 0 {
		return fmt.Errorf("window size must be > 0, got %d", flags.Window)
	}
	if flags.Step <= 0 { // a zero step would never advance
		return fmt.Errorf("step size must be > 0, got %d", flags.Step)
	}

	aln, err := align.ReadFile(flags.InFile)
	if err != nil {
		return err
	}
	if flags.Impute {
		aln.ImputeMissing()
	}
	diversity := aln.DiversityInWindows(flags.Window, flags.Step)

	var wrt io.WriteCloser
	if flags.OutFile == "" || flags.OutFile == "-" {
		wrt = os.Stdout
	} else {
		if wrt, err = os.Create(flags.OutFile); err != nil {
			return fmt.Errorf("output file %s: %w", flags.OutFile, err)
		}
		defer wrt.Close()
	}
	if err := report.WriteDiversity(wrt, diversity); err != nil {
		return fmt.Errorf("writing diversity table: %w", err)
	}
	return nil
}
