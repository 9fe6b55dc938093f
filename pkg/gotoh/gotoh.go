// 19 Jul 2023

// Package gotoh does local pairwise alignment with affine gap
// penalties, following Gotoh, J. Mol. Biol. (1982) 162, 705-708.
// It does not build or return the aligned pair list. The callers here
// only want to know where the best match sits, so Align reports the
// begin and end of the match on both sequences, the score and the best
// score found away from the match. An Aligner keeps its scoring and
// direction matrices between calls, so it can be re-used over many
// alignments without reallocating.
package gotoh

import (
	"errors"

	"github.com/andrew-torda/matrix"
)

// Pnlty has the gap opening and widening values. Opening a gap costs
// Open+Wdn, each extension another Wdn.
type Pnlty struct {
	Open float32
	Wdn  float32
}

// MatchScr scores one aligned pair of characters.
type MatchScr struct {
	Match    float32
	Mismatch float32
}

// Directions for the traceback.
const (
	stop byte = iota // alignment ends here
	diag             // diagonal movement
	pway             // along the P direction, vertical, over rows
	qway             // Q direction, horizontal, over columns
)

const bigf float32 = -1e+38

// Result says where the best local match lies. The begin and end
// indices are base 0 and inclusive. Score2 is the best score at least
// maskLen reference positions away from RefEnd, 0 if there is none.
type Result struct {
	RefBegin   int
	RefEnd     int
	QueryBegin int
	QueryEnd   int
	Score      float32
	Score2     float32
}

// Aligner carries the scoring scheme and the reusable matrices.
type Aligner struct {
	pnlty Pnlty
	scr   MatchScr
	h     matrix.FMatrix2d // summed scores, one padding row and column
	dir   matrix.BMatrix2d // traceback directions
}

// Default scoring, in the spirit of the usual short read aligners.
var (
	dfltPnlty = Pnlty{Open: 3, Wdn: 1}
	dfltScr   = MatchScr{Match: 2, Mismatch: -2}
)

// New returns an aligner with the default scoring scheme.
func New() *Aligner { return NewScoring(dfltPnlty, dfltScr) }

// NewScoring returns an aligner with the caller's scoring scheme.
func NewScoring(pnlty Pnlty, scr MatchScr) *Aligner {
	return &Aligner{pnlty: pnlty, scr: scr}
}

// Align finds the best scoring local alignment of query and ref.
// Rows run over the query, columns over the reference. If nothing
// scores above zero there is no match and the boundaries degenerate to
// a single position; the caller can see that from the zero Score.
func (al *Aligner) Align(query, ref []byte, maskLen int) (Result, error) {
	if len(query) == 0 || len(ref) == 0 {
		return Result{}, errors.New("empty sequence given to Align")
	}
	nrow, ncol := len(query)+1, len(ref)+1
	al.h.Resize(nrow, ncol)
	al.dir.Resize(nrow, ncol)
	h := al.h.Mat
	dir := al.dir.Mat

	for j := 0; j < ncol; j++ { // padding row and column. Resize may
		h[0][j] = 0 //             leave stale values behind.
		dir[0][j] = stop
	}
	for i := 0; i < nrow; i++ {
		h[i][0] = 0
		dir[i][0] = stop
	}

	w1 := -(al.pnlty.Open + al.pnlty.Wdn) // cost of opening a gap
	wdn := -al.pnlty.Wdn

	p := make([]float32, ncol) // best score ending in a vertical gap
	for j := range p {
		p[j] = bigf
	}

	var bestScr float32
	bestI, bestJ := 1, 1
	for i := 1; i < nrow; i++ {
		qprev := bigf // best score ending in a horizontal gap
		for j := 1; j < ncol; j++ {
			ms := al.scr.Mismatch
			if query[i-1] == ref[j-1] {
				ms = al.scr.Match
			}
			best := h[i-1][j-1] + ms
			drctn := diag
			if p[j] = max32(h[i-1][j]+w1, p[j]+wdn); p[j] > best {
				best, drctn = p[j], pway
			}
			if qprev = max32(h[i][j-1]+w1, qprev+wdn); qprev > best {
				best, drctn = qprev, qway
			}
			if best <= 0 { // local alignments do not go negative
				best, drctn = 0, stop
			}
			h[i][j] = best
			dir[i][j] = drctn
			if best > bestScr {
				bestScr = best
				bestI, bestJ = i, j
			}
		}
	}

	r := Result{Score: bestScr}
	r.QueryEnd, r.RefEnd = bestI-1, bestJ-1
	r.QueryBegin, r.RefBegin = al.traceback(bestI, bestJ)
	r.Score2 = al.secondBest(r.RefEnd, maskLen)
	return r, nil
}

// traceback walks from the best cell back to where the local match
// starts and returns the query and reference begin indices, base 0.
func (al *Aligner) traceback(bestI, bestJ int) (queryBegin, refBegin int) {
	h := al.h.Mat
	dir := al.dir.Mat
	i, j := bestI, bestJ
	minI, minJ := i, j
	for dir[i][j] != stop && h[i][j] > 0 {
		switch dir[i][j] {
		case diag:
			i--
			j--
		case pway:
			i--
		case qway:
			j--
		}
		if h[i][j] > 0 {
			if i < minI {
				minI = i
			}
			if j < minJ {
				minJ = j
			}
		}
	}
	return minI - 1, minJ - 1
}

// secondBest looks for the best score whose reference position is at
// least maskLen columns away from the end of the best match. This is
// the usual sanity number for deciding whether a hit is unique.
func (al *Aligner) secondBest(refEnd, maskLen int) float32 {
	var second float32
	h := al.h.Mat
	nrow, ncol := al.h.Size()
	for i := 1; i < nrow; i++ {
		for j := 1; j < ncol; j++ {
			d := j - 1 - refEnd
			if d < 0 {
				d = -d
			}
			if d >= maskLen && h[i][j] > second {
				second = h[i][j]
			}
		}
	}
	return second
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
