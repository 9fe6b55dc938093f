// Sliding window calculations over an alignment.

package align

import (
	"sort"
)

// WindowCounts holds, for one window position, how often each distinct
// sub-sequence occurred. The sub-sequences themselves are not kept.
type WindowCounts struct {
	Start  int // column of the left window edge, base 0
	Counts []uint32
}

// SeqCount is one distinct window variant with its occurrence count.
type SeqCount struct {
	Seq   string
	Count uint32
}

// DiversityInWindows slides a windowSize wide window along the
// alignment in steps of stepSize and reports, per position, the group
// sizes of identical sub-sequences. The scan stops before a window
// whose end would reach the last column: the condition is
// start+windowSize < Len(), strictly, so a final flush window is
// skipped. Keep it that way, output positions feed downstream scripts.
// stepSize must be at least 1; the caller checks that, we would loop
// forever on 0.
func (aln *Alignment) DiversityInWindows(windowSize, stepSize int) []WindowCounts {
	var result []WindowCounts
	for windowStart := 0; windowStart+windowSize < aln.Len(); windowStart += stepSize {
		sequenceTable := make(map[string]uint32, len(aln.records))
		for _, rec := range aln.records {
			sequenceTable[string(rec.Seq[windowStart:windowStart+windowSize])]++
		}
		counts := make([]uint32, 0, len(sequenceTable))
		for _, n := range sequenceTable {
			counts = append(counts, n)
		}
		result = append(result, WindowCounts{Start: windowStart, Counts: counts})
	}
	return result
}

// ExtractWindow groups the per-record sub-sequences in the window
// [start, start+size) and returns each distinct variant with the
// number of times it occurs. The counts add up to NSeq().
func (aln *Alignment) ExtractWindow(start, size int) (map[string]uint32, error) {
	if err := aln.checkWindow(start, size); err != nil {
		return nil, err
	}
	result := make(map[string]uint32, len(aln.records))
	for _, rec := range aln.records {
		result[string(rec.Seq[start:start+size])]++
	}
	return result, nil
}

// ExtractWindowSorted is ExtractWindow with the variants ordered by
// occurrence count, largest first. The order among equal counts is not
// specified, but it is stable within one run.
func (aln *Alignment) ExtractWindowSorted(start, size int) ([]SeqCount, error) {
	table, err := aln.ExtractWindow(start, size)
	if err != nil {
		return nil, err
	}
	sorted := make([]SeqCount, 0, len(table))
	for s, n := range table {
		sorted = append(sorted, SeqCount{Seq: s, Count: n})
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	return sorted, nil
}
