// 11 Jul 2023

// Package align reads a DNA multiple sequence alignment in fasta format
// and provides the analysis methods: a per-column consensus, sequence
// diversity in sliding windows, the distinct sequence variants in one
// window and imputation of missing nucleotides.
// The whole alignment is kept in memory, so mind your file sizes.
package align

import (
	"errors"
	"fmt"
)

// Everything this package returns wraps one of these, so a caller can
// take the failure apart with errors.Is.
var (
	ErrMalformedInput     = errors.New("malformed input")
	ErrInconsistentLength = errors.New("inconsistent sequence length")
	ErrOutOfRange         = errors.New("out of range")
	ErrAlignmentFailure   = errors.New("alignment failure")
)

// Record is one fasta record. Cmmt is the header line without the ">"
// and without leading spaces. Seq is the sequence with line breaks
// removed.
type Record struct {
	Cmmt string
	Seq  []byte
}

// Alignment holds the records of one alignment, in file order, and the
// consensus derived from them. The consensus always exists once the
// alignment does.
type Alignment struct {
	records   []Record
	consensus []byte
}

// missingOK says which symbols count as observed data during
// imputation. Note that 'N' is not among them. makeConsensus uses its
// own list, which does include 'N'.
var missingOK = symSet("AaCcTtGg-")

func symSet(s string) (set [256]bool) {
	for i := 0; i < len(s); i++ {
		set[s[i]] = true
	}
	return set
}

var toUpper = func() (up [256]byte) {
	for i := 0; i < 256; i++ {
		up[i] = byte(i)
	}
	for c := byte('a'); c <= 'z'; c++ {
		up[c] = c - ('a' - 'A')
	}
	return up
}()

// New builds an alignment from parsed records. It wants at least two
// records of the same length. The consensus is built here, so the
// alignment is never visible without it.
func New(records []Record) (*Alignment, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: an alignment needs at least two sequence records, got %d",
			ErrMalformedInput, len(records))
	}
	alignLen := len(records[0].Seq)
	for i := 1; i < len(records); i++ {
		if len(records[i].Seq) != alignLen {
			return nil, fmt.Errorf(
				"%w: first sequence is %d long, but sequence %d (%s) is %d",
				ErrInconsistentLength, alignLen, i+1, trimStr(records[i].Cmmt, 40),
				len(records[i].Seq))
		}
	}
	aln := &Alignment{records: records}
	aln.makeConsensus()
	return aln, nil
}

// NSeq returns the number of sequences in the alignment.
func (aln *Alignment) NSeq() int { return len(aln.records) }

// Len returns the alignment length. All sequences have it.
func (aln *Alignment) Len() int { return len(aln.records[0].Seq) }

// Consensus returns the consensus sequence. It is upper case and as
// long as the alignment.
func (aln *Alignment) Consensus() string { return string(aln.consensus) }

// ConsensusWindow returns the consensus for the window starting at
// start (base 0) and size columns wide.
func (aln *Alignment) ConsensusWindow(start, size int) (string, error) {
	if err := aln.checkWindow(start, size); err != nil {
		return "", err
	}
	return string(aln.consensus[start : start+size]), nil
}

func (aln *Alignment) checkWindow(start, size int) error {
	if start < 0 || size < 0 || start+size > aln.Len() {
		return fmt.Errorf("%w: window start %d, size %d on an alignment of length %d",
			ErrOutOfRange, start, size, aln.Len())
	}
	return nil
}

// makeConsensus does a majority vote in every column. Only the symbols
// in AaCcTtGgNn- take part; anything else is ignored. A column where
// nothing votes gets an N. The winner is stored upper case. If two
// symbols tie, which one wins is unspecified (it falls out of map
// iteration); do not rely on it.
func (aln *Alignment) makeConsensus() {
	counted := symSet("AaCcTtGgNn-")
	alignLen := aln.Len()
	consensus := make([]byte, 0, alignLen)
	for iNuc := 0; iNuc < alignLen; iNuc++ {
		nucleotides := make(map[byte]uint32)
		for _, rec := range aln.records {
			if c := rec.Seq[iNuc]; counted[c] {
				nucleotides[c]++
			}
		}
		best := byte('N')
		var bestCount uint32
		for c, n := range nucleotides {
			if n > bestCount {
				best, bestCount = c, n
			}
		}
		consensus = append(consensus, toUpper[best])
	}
	aln.consensus = consensus
}

// ImputeMissing replaces every symbol outside AaCcTtGg- with the
// consensus symbol at that column, in place. Accepted symbols keep
// their case. The consensus is not rebuilt afterwards, so it still
// reflects the majority before imputation. That is deliberate.
func (aln *Alignment) ImputeMissing() {
	for _, rec := range aln.records {
		for i, c := range rec.Seq {
			if !missingOK[c] {
				rec.Seq[i] = aln.consensus[i]
			}
		}
	}
}

// trimStr cuts a string to n bytes if it is longer
func trimStr(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// StrRecords turns some strings into records. Sequences need labels;
// if no prefix is given they are called s0, s1, ... Handy in testing.
func StrRecords(sIn []string, prefix ...string) []Record {
	base := "s"
	if prefix != nil {
		base = prefix[0]
	}
	records := make([]Record, 0, len(sIn))
	for i, s := range sIn {
		records = append(records, Record{Cmmt: fmt.Sprint(base, i), Seq: []byte(s)})
	}
	return records
}
