// Locating the alignment region that matches a query sequence.
// The pairwise alignment itself is somebody else's job; we hand the
// query and the consensus to an Aligner and check what comes back.

package align

import (
	"fmt"
)

// Boundary is what a local aligner reports: the bounds of the best
// scoring local match on the reference and on the query. Whether the
// ends are inclusive is the aligner's own convention; here they only
// have to be non-negative and not before the begins.
type Boundary struct {
	RefBegin, RefEnd     int
	QueryBegin, QueryEnd int
}

// Aligner is the one capability we need from a local pairwise aligner.
// maskLen tells the aligner how far from the best hit a second-best
// hit has to be before it is worth reporting.
type Aligner interface {
	Align(query, ref []byte, maskLen int) (Boundary, error)
}

// Stats describes the alignment window that matches a query: where the
// match sits on the consensus and which part of the query matched.
type Stats struct {
	RefStart   int
	RefLen     int
	QueryStart int
	QueryLen   int
}

const minMaskLen = 15

// ExtractSequence aligns query against the consensus and turns the
// aligner's answer into a window on the alignment. The masking length
// is half the query length, but at least 15; very short queries would
// otherwise mask nothing. Do not change the formula, results have to
// be reproducible. The query must not be empty.
func (aln *Alignment) ExtractSequence(query []byte, aligner Aligner) (Stats, error) {
	maskLen := len(query) / 2
	if maskLen < minMaskLen {
		maskLen = minMaskLen
	}
	bnd, err := aligner.Align(query, aln.consensus, maskLen)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrAlignmentFailure, err)
	}
	if bnd.RefBegin < 0 {
		return Stats{}, fmt.Errorf("%w: matching reference start value cannot be negative, got %d",
			ErrAlignmentFailure, bnd.RefBegin)
	}
	if bnd.RefEnd < bnd.RefBegin {
		return Stats{}, fmt.Errorf("%w: matching reference end %d before start %d",
			ErrAlignmentFailure, bnd.RefEnd, bnd.RefBegin)
	}
	if bnd.QueryBegin < 0 {
		return Stats{}, fmt.Errorf("%w: query start value cannot be negative, got %d",
			ErrAlignmentFailure, bnd.QueryBegin)
	}
	if bnd.QueryEnd < bnd.QueryBegin {
		return Stats{}, fmt.Errorf("%w: query end %d before start %d",
			ErrAlignmentFailure, bnd.QueryEnd, bnd.QueryBegin)
	}
	return Stats{
		RefStart:   bnd.RefBegin,
		RefLen:     bnd.RefEnd - bnd.RefBegin,
		QueryStart: bnd.QueryBegin,
		QueryLen:   bnd.QueryEnd - bnd.QueryBegin,
	}, nil
}
