// Package batch evaluates lists of (output, target) label graph pairs.
//
// A pair list is a comma-separated text file, one pair per line:
//
//	output.lg, target.lg[, display name]
//
// Lines starting with "#" and blank lines are skipped. GTFirst swaps the
// columns of lists that put the ground truth first.
//
// Runner loads and compares pairs in parallel, then writes the results in
// input order: for every pair a "*M,output,target" header and the metric
// line to the metrics stream, and a "DIFF,output,target" header and the diff
// records to the diff stream. When confusion matrices are attached, the
// erroneous substructures of each pair are counted under its display name.
package batch
