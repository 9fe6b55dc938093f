// homoruns slides a window along a DNA sequence alignment and counts
// how many distinct variants occur at each position. Regions where one
// variant dominates show up as runs of low diversity. Output is a two
// column table of 1-based window starts and occurrence counts, one row
// per variant per window.
package main
