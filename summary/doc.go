// Package summary aggregates the metric records written by a batch run.
//
// ReadMetrics parses ".m" streams ("*M,output,target" header lines, each
// followed by one "name,value,…" metric line). Summarize totals every
// metric, computes population mean and standard deviation per metric with
// gonum/stat, and derives the evaluation tables:
//
//   - primitive label rates for nodes, directed edges and undirected node
//     pairs, with edge errors split into segmentation, class and relation
//     errors;
//   - object recall, precision and F-measure for segments, segments with
//     classes, relation locations and labeled relations;
//   - per-file rates of fully correct objects, relations and structure;
//   - the histogram of files by D_B.
//
// Rates are percentages; a rate over an empty total is 100.
//
// ReadDiff parses ".diff" streams into per-pair blocks, and LabelConfusion
// turns them into node and edge label confusion matrices, with a short edge
// matrix that folds every non-relation label into the merge label.
// Inventory lists the node and edge labels used by a set of label graphs;
// its node labels tell relations apart from merges in the short matrix.
package summary
