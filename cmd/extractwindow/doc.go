// extractwindow pulls the distinct sequence variants out of one window
// of a DNA sequence alignment. The window is given by coordinates, or
// found by locally aligning a query sequence against the alignment
// consensus. Variants are written against the consensus with matching
// positions shown as '.', in a tab separated or fasta layout.
package main
