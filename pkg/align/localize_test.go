package align_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "github.com/tonymugen/analyzeAlignments/pkg/align"
)

// fakeAligner hands back a canned boundary and remembers what it was
// asked, so the glue around the aligner can be tested without one.
type fakeAligner struct {
	bnd      Boundary
	err      error
	gotQuery string
	gotRef   string
	gotMask  int
}

func (f *fakeAligner) Align(query, ref []byte, maskLen int) (Boundary, error) {
	f.gotQuery = string(query)
	f.gotRef = string(ref)
	f.gotMask = maskLen
	return f.bnd, f.err
}

func TestExtractSequence(t *testing.T) {
	aln := mkAln([]string{"ACGTACGTAC", "ACGTACGTAC"}, t)
	fake := &fakeAligner{bnd: Boundary{RefBegin: 2, RefEnd: 7, QueryBegin: 1, QueryEnd: 6}}
	stats, err := aln.ExtractSequence([]byte("CGTACG"), fake)
	if err != nil {
		t.Fatal("localizing query:", err)
	}
	want := Stats{RefStart: 2, RefLen: 5, QueryStart: 1, QueryLen: 5}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
	if fake.gotRef != aln.Consensus() {
		t.Fatal("aligner was not given the consensus as reference")
	}
	if fake.gotQuery != "CGTACG" {
		t.Fatalf("aligner got query %q", fake.gotQuery)
	}
}

func TestExtractSequenceMaskLen(t *testing.T) {
	aln := mkAln([]string{"ACGTACGTAC", "ACGTACGTAC"}, t)
	// half the query length, floored at 15
	for _, c := range []struct{ queryLen, want int }{
		{1, 15}, {10, 15}, {29, 15}, {30, 15}, {31, 15}, {32, 16}, {100, 50},
	} {
		fake := &fakeAligner{bnd: Boundary{}}
		query := make([]byte, c.queryLen)
		for i := range query {
			query[i] = 'A'
		}
		if _, err := aln.ExtractSequence(query, fake); err != nil {
			t.Fatal("localizing query:", err)
		}
		if fake.gotMask != c.want {
			t.Errorf("query length %d: mask length got %d want %d",
				c.queryLen, fake.gotMask, c.want)
		}
	}
}

func TestExtractSequenceFailures(t *testing.T) {
	aln := mkAln([]string{"ACGTACGTAC", "ACGTACGTAC"}, t)
	bad := []Boundary{
		{RefBegin: -1, RefEnd: 5, QueryBegin: 0, QueryEnd: 5},  // negative ref start
		{RefBegin: 6, RefEnd: 5, QueryBegin: 0, QueryEnd: 5},   // ref end before start
		{RefBegin: 0, RefEnd: 5, QueryBegin: -2, QueryEnd: 5},  // negative query start
		{RefBegin: 0, RefEnd: 5, QueryBegin: 4, QueryEnd: 3},   // query end before start
	}
	for i, bnd := range bad {
		fake := &fakeAligner{bnd: bnd}
		if _, err := aln.ExtractSequence([]byte("CGTACG"), fake); !errors.Is(err, ErrAlignmentFailure) {
			t.Errorf("case %d: wanted ErrAlignmentFailure, got %v", i, err)
		}
	}
	// an aligner error is an alignment failure too
	fake := &fakeAligner{err: errors.New("no alignment possible")}
	if _, err := aln.ExtractSequence([]byte("CGTACG"), fake); !errors.Is(err, ErrAlignmentFailure) {
		t.Fatal("wanted ErrAlignmentFailure, got", err)
	}
}

func TestExtractSequenceDegenerate(t *testing.T) {
	// a zero-size match is geometrically valid and must come through
	aln := mkAln([]string{"ACGTACGTAC", "ACGTACGTAC"}, t)
	fake := &fakeAligner{bnd: Boundary{RefBegin: 0, RefEnd: 0, QueryBegin: 0, QueryEnd: 0}}
	stats, err := aln.ExtractSequence([]byte("TTTTTTT"), fake)
	if err != nil {
		t.Fatal("degenerate match:", err)
	}
	if stats.RefLen < 0 || stats.QueryLen < 0 {
		t.Fatalf("negative lengths slipped through: %+v", stats)
	}
}
