// 9 Aug 2023
// Pull the distinct sequence variants out of one alignment window. The
// window is given either as explicit coordinates or by a query
// sequence, whose best local match against the consensus decides where
// the window sits.

package extract

import (
	"fmt"
	"io"
	"os"

	"github.com/tonymugen/analyzeAlignments/pkg/align"
	"github.com/tonymugen/analyzeAlignments/pkg/gotoh"
	"github.com/tonymugen/analyzeAlignments/pkg/report"
)

// CmdFlag holds the choices from the command line.
type CmdFlag struct {
	InFile    string // input alignment, fasta
	OutFile   string // destination, "-" or empty for stdout
	QueryFile string // fasta file with a query; overrides Start and Window
	OutFormat string // TAB or FASTA, case does not matter
	Start     int    // window start, base 1
	Window    int    // window size in base pairs
	Impute    bool   // replace missing nucleotides with the consensus first
	Sorted    bool   // order variants by descending count
}

// gotohAligner plugs the gotoh package into the align.Aligner
// interface, keeping the core ignorant of which aligner it runs.
type gotohAligner struct {
	al *gotoh.Aligner
}

func (g gotohAligner) Align(query, ref []byte, maskLen int) (align.Boundary, error) {
	res, err := g.al.Align(query, ref, maskLen)
	if err != nil {
		return align.Boundary{}, err
	}
	return align.Boundary{
		RefBegin:   res.RefBegin,
		RefEnd:     res.RefEnd,
		QueryBegin: res.QueryBegin,
		QueryEnd:   res.QueryEnd,
	}, nil
}

// Mymain is the real main for the extractwindow program.
func Mymain(flags *CmdFlag) error {
	if flags.InFile == "" {
		return fmt.Errorf("input-file specification is required")
	}
	aln, err := align.ReadFile(flags.InFile)
	if err != nil {
		return err
	}
	if flags.Impute {
		aln.ImputeMissing()
	}

	var start, size int
	var query *report.Query
	if flags.QueryFile == "" {
		if flags.Window <= 0 {
			return fmt.Errorf("window size must be > 0, got %d", flags.Window)
		}
		if flags.Start <= 0 {
			return fmt.Errorf("start position must be 1 or larger, got %d", flags.Start)
		}
		start = flags.Start - 1 // make position base 0
		size = flags.Window
	} else {
		querySeq, err := align.ReadQuery(flags.QueryFile)
		if err != nil {
			return err
		}
		stats, err := aln.ExtractSequence(querySeq, gotohAligner{al: gotoh.New()})
		if err != nil {
			return err
		}
		start = stats.RefStart
		size = stats.RefLen
		query = &report.Query{
			Seq:   string(querySeq[stats.QueryStart : stats.QueryStart+stats.QueryLen]),
			Stats: stats,
		}
	}

	consensusWindow, err := aln.ConsensusWindow(start, size)
	if err != nil {
		return err
	}

	var wrt io.WriteCloser
	if flags.OutFile == "" || flags.OutFile == "-" {
		wrt = os.Stdout
	} else {
		if wrt, err = os.Create(flags.OutFile); err != nil {
			return fmt.Errorf("output file %s: %w", flags.OutFile, err)
		}
		defer wrt.Close()
	}

	if flags.Sorted {
		uniqueSequences, err := aln.ExtractWindowSorted(start, size)
		if err != nil {
			return err
		}
		return report.WriteUniqueSorted(wrt, uniqueSequences, consensusWindow, query, flags.OutFormat)
	}
	uniqueSequences, err := aln.ExtractWindow(start, size)
	if err != nil {
		return err
	}
	return report.WriteUnique(wrt, uniqueSequences, consensusWindow, query, flags.OutFormat)
}
