// 2 Aug 2023

// Package report writes the analysis results out: the diversity table
// from the window scan and the unique sequence tables from a window
// extraction, in a tab separated or a fasta layout. In the sequence
// tables, positions that agree with the consensus are shown as '.',
// the differing ones as the upper case nucleotide, so the eye goes
// straight to the variation.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tonymugen/analyzeAlignments/pkg/align"
)

// Output layouts. The format names arriving from the command line are
// matched case-insensitively.
const (
	FormatTab   = "tab"
	FormatFasta = "fasta"
)

const cPerLine = 60 // fasta bodies are wrapped at this width

// Query goes with a unique sequence table when the window was found by
// aligning a query sequence. Seq is the matched part of the query,
// Stats says where the match sits.
type Query struct {
	Seq   string
	Stats align.Stats
}

// WriteDiversity writes the diversity table: one line per variant per
// window, the 1-based window start in the first column and the number
// of occurrences in the second.
func WriteDiversity(wrt io.Writer, diversity []align.WindowCounts) error {
	bwrt := bufio.NewWriter(wrt)
	fmt.Fprintln(bwrt, "position\tnSequences")
	for _, window := range diversity {
		for _, count := range window.Counts {
			fmt.Fprintf(bwrt, "%d\t%d\n", window.Start+1, count)
		}
	}
	return bwrt.Flush()
}

// maskSeq renders a window variant against the consensus: '.' where
// they agree, the upper case symbol where they differ. The comparison
// ignores case, the consensus itself is already upper case.
func maskSeq(seq, consensus string) string {
	var bld strings.Builder
	bld.Grow(len(seq))
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		if i < len(consensus) && c == consensus[i] {
			bld.WriteByte('.')
		} else {
			bld.WriteByte(c)
		}
	}
	return bld.String()
}

// wrapSeq writes a sequence in fasta body lines.
func wrapSeq(bwrt *bufio.Writer, s string) {
	for ; len(s) > cPerLine; s = s[cPerLine:] {
		fmt.Fprintln(bwrt, s[:cPerLine])
	}
	fmt.Fprintln(bwrt, s)
}

// checkFormat normalises a format name, or complains.
func checkFormat(format string) (string, error) {
	switch f := strings.ToLower(format); f {
	case FormatTab, FormatFasta:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q; want TAB or FASTA", format)
	}
}

// WriteUnique writes a unique sequence table. The consensus for the
// window comes first, then one entry per variant with its occurrence
// count. If query is not nil, the matched query part is put on top and
// the window position travels with the consensus line. Map order is
// whatever it is; use WriteUniqueSorted for a count-ordered table.
func WriteUnique(wrt io.Writer, uniqueSequences map[string]uint32, consensus string,
	query *Query, format string) error {
	sorted := make([]align.SeqCount, 0, len(uniqueSequences))
	for s, n := range uniqueSequences {
		sorted = append(sorted, align.SeqCount{Seq: s, Count: n})
	}
	return WriteUniqueSorted(wrt, sorted, consensus, query, format)
}

// WriteUniqueSorted is WriteUnique for a table that has already been
// ordered, normally by descending count.
func WriteUniqueSorted(wrt io.Writer, uniqueSequences []align.SeqCount, consensus string,
	query *Query, format string) error {
	format, err := checkFormat(format)
	if err != nil {
		return err
	}
	bwrt := bufio.NewWriter(wrt)
	if format == FormatTab {
		writeUniqueTab(bwrt, uniqueSequences, consensus, query)
	} else {
		writeUniqueFasta(bwrt, uniqueSequences, consensus, query)
	}
	return bwrt.Flush()
}

func writeUniqueTab(bwrt *bufio.Writer, uniqueSequences []align.SeqCount,
	consensus string, query *Query) {
	if query == nil {
		fmt.Fprintf(bwrt, "C\t%s\n", consensus)
	} else {
		fmt.Fprintf(bwrt, "Q\t%s\n", query.Seq)
		fmt.Fprintf(bwrt, "C|%d|%d\t%s\n",
			query.Stats.RefStart+1, query.Stats.RefLen, consensus)
	}
	for _, sc := range uniqueSequences {
		fmt.Fprintf(bwrt, "%s\t%d\n", maskSeq(sc.Seq, consensus), sc.Count)
	}
}

func writeUniqueFasta(bwrt *bufio.Writer, uniqueSequences []align.SeqCount,
	consensus string, query *Query) {
	if query == nil {
		fmt.Fprintln(bwrt, ">consensus")
	} else {
		fmt.Fprintln(bwrt, ">query")
		wrapSeq(bwrt, query.Seq)
		fmt.Fprintf(bwrt, ">consensus; start: %d; length: %d\n",
			query.Stats.RefStart+1, query.Stats.RefLen)
	}
	wrapSeq(bwrt, consensus)
	for i, sc := range uniqueSequences {
		fmt.Fprintf(bwrt, ">seq %d; count: %d\n", i+1, sc.Count)
		wrapSeq(bwrt, maskSeq(sc.Seq, consensus))
	}
}
