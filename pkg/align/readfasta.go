// Reader for fasta format alignment files.

package align

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
)

const cmmtChar = '>'

// ReadFasta reads fasta records from rdr. Header lines start with ">",
// the label is the rest of the line with leading spaces stripped. Body
// lines are glued together until the next header. Empty lines are
// skipped. nExpected is a hint for preallocation; zero is fine.
// Structural checks happen here, the alignment invariants in New.
func ReadFasta(rdr io.Reader, nExpected int) ([]Record, error) {
	scanner := bufio.NewScanner(rdr)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	var line string
	for scanner.Scan() { // skip any empty lines at the start
		if line = scanner.Text(); len(line) > 0 {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(line) == 0 {
		return nil, fmt.Errorf("%w: all lines are empty", ErrMalformedInput)
	}
	if line[0] != cmmtChar {
		return nil, fmt.Errorf(
			"%w: does not appear to be a fasta file (no %c on the first line)",
			ErrMalformedInput, cmmtChar)
	}
	records := make([]Record, 0, nExpected)
	cmmt, err := headerLabel(line)
	if err != nil {
		return nil, err
	}
	records = append(records, Record{Cmmt: cmmt})
	for scanner.Scan() {
		line = scanner.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == cmmtChar {
			cmmt, err := headerLabel(line)
			if err != nil {
				return nil, err
			}
			records = append(records, Record{Cmmt: cmmt})
			continue
		}
		last := &records[len(records)-1]
		last.Seq = append(last.Seq, line...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// headerLabel strips the ">" and leading spaces off a header line.
func headerLabel(line string) (string, error) {
	label := strings.TrimLeft(line[1:], " ")
	if len(label) == 0 {
		return "", fmt.Errorf("%w: some non-space characters required in a fasta header",
			ErrMalformedInput)
	}
	return label, nil
}

// numRecords counts the ">" bytes in a file through a read-only
// mapping. It is only a preallocation hint, so any trouble with the
// mapping is not an error. Zero length files cannot be mapped.
func numRecords(fp *os.File) int {
	if fi, err := fp.Stat(); err != nil || fi.Size() == 0 {
		return 0
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return 0
	}
	defer mm.Unmap()
	return bytes.Count(mm, []byte{cmmtChar})
}

// ReadFile reads an alignment from a fasta file and builds the
// Alignment, consensus included.
func ReadFile(fname string) (*Alignment, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	records, err := ReadFasta(fp, numRecords(fp))
	if err != nil {
		return nil, fmt.Errorf("alignment file %s: %w", fname, err)
	}
	aln, err := New(records)
	if err != nil {
		return nil, fmt.Errorf("alignment file %s: %w", fname, err)
	}
	return aln, nil
}

// ReadQuery reads a single-record fasta file and returns the sequence
// body. Only the first record counts if there are more.
func ReadQuery(fname string) ([]byte, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	records, err := ReadFasta(fp, 1)
	if err != nil {
		return nil, fmt.Errorf("query file %s: %w", fname, err)
	}
	if len(records[0].Seq) == 0 {
		return nil, fmt.Errorf("query file %s: %w: empty query sequence", fname, ErrMalformedInput)
	}
	return records[0].Seq, nil
}
