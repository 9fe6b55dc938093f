package align_test

import (
	"errors"
	"strings"
	"testing"

	. "github.com/tonymugen/analyzeAlignments/pkg/align"
)

// mkAln builds an alignment from bare sequence strings or dies.
func mkAln(sIn []string, t *testing.T) *Alignment {
	t.Helper()
	aln, err := New(StrRecords(sIn))
	if err != nil {
		t.Fatal("building test alignment:", err)
	}
	return aln
}

func TestConsensus(t *testing.T) {
	// column 0: clear majority. 1: lower case majority, reported upper.
	// 2: majority among accepted symbols. 3: gap majority. 4: nothing
	// countable at all. 5: N is a countable symbol and wins.
	aln := mkAln([]string{
		"AtG-RN",
		"AtC-YN",
		"At--WN",
		"CtA-SA",
		"GgA-KN",
	}, t)
	cons := aln.Consensus()
	if len(cons) != aln.Len() {
		t.Fatalf("consensus length %d, alignment length %d", len(cons), aln.Len())
	}
	if want := "ATA-NN"; cons != want {
		t.Fatalf("consensus: got %q want %q", cons, want)
	}
	if cons != strings.ToUpper(cons) {
		t.Fatal("consensus is not upper case:", cons)
	}
}

func TestConsensusTie(t *testing.T) {
	// Ties may fall either way, but the winner has to be one of the
	// tied symbols.
	aln := mkAln([]string{"A", "C"}, t)
	if c := aln.Consensus()[0]; c != 'A' && c != 'C' {
		t.Fatalf("tied column must pick a tied symbol, got %c", c)
	}
}

func TestConsensusWindow(t *testing.T) {
	aln := mkAln([]string{"ACGTACGTAC", "ACGTACGTAC", "TTTTACGTAC"}, t)
	cons := aln.Consensus()
	for _, w := range []struct{ start, size int }{
		{0, 10}, {0, 0}, {3, 4}, {9, 1}, {10, 0},
	} {
		window, err := aln.ConsensusWindow(w.start, w.size)
		if err != nil {
			t.Fatalf("window [%d, %d): %v", w.start, w.start+w.size, err)
		}
		if window != cons[w.start:w.start+w.size] {
			t.Errorf("window [%d, %d): got %q want %q",
				w.start, w.start+w.size, window, cons[w.start:w.start+w.size])
		}
	}
}

func TestConsensusWindowOutOfRange(t *testing.T) {
	aln := mkAln([]string{"ACGTACGTAC", "ACGTACGTAC"}, t)
	for _, w := range []struct{ start, size int }{
		{2 * 10, 5}, {0, 11}, {8, 3}, {-1, 2}, {3, -1},
	} {
		if _, err := aln.ConsensusWindow(w.start, w.size); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("window start %d size %d: wanted ErrOutOfRange, got %v",
				w.start, w.size, err)
		}
	}
}

func TestImputeMissing(t *testing.T) {
	records := StrRecords([]string{
		"ACgT-",
		"ACgT-",
		"NRgYa",
	})
	aln, err := New(records)
	if err != nil {
		t.Fatal("building test alignment:", err)
	}
	aln.ImputeMissing()
	// the consensus is ACGT-, so N, R and Y get imputed while the
	// lower case g and the trailing a keep their case
	if got := string(records[2].Seq); got != "ACgTa" {
		t.Fatalf("imputed sequence: got %q want %q", got, "ACgTa")
	}
	if got := string(records[0].Seq); got != "ACgT-" {
		t.Fatalf("accepted symbols must not change, got %q", got)
	}
	// running it again changes nothing further
	before := string(records[2].Seq)
	aln.ImputeMissing()
	if string(records[2].Seq) != before {
		t.Fatal("imputation is not idempotent on already-imputed data")
	}
}

func TestConsensusReflectsPreImputation(t *testing.T) {
	records := StrRecords([]string{"NN", "NN", "AC"})
	aln, err := New(records)
	if err != nil {
		t.Fatal("building test alignment:", err)
	}
	// N wins the vote. Imputing replaces N with the consensus N, and
	// the consensus itself is not rebuilt.
	if cons := aln.Consensus(); cons != "NN" {
		t.Fatalf("consensus before imputation: got %q want NN", cons)
	}
	aln.ImputeMissing()
	if got := string(records[0].Seq); got != "NN" {
		t.Fatalf("imputing a consensus N must leave an N, got %q", got)
	}
	if cons := aln.Consensus(); cons != "NN" {
		t.Fatalf("consensus must not be rebuilt after imputation, got %q", cons)
	}
}
