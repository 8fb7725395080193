// Package lgeval evaluates label graphs: directed graphs whose nodes are
// primitives (strokes, pixels, tokens) carrying class labels and whose edges
// carry segmentation ("*" merge) and relationship labels.
//
// 🚀 What is lgeval?
//
//	An evaluator that compares an output label graph with its ground truth
//	at three levels and reports where they differ:
//		• Primitives: node and edge label disagreements (D_C, D_L, D_B)
//		• Segmentation: objects recovered as connected merge components
//		• Structure: relations between objects, substructure confusions
//
// Under the hood, everything is organized under these subpackages:
//
//	metric/     - label metrics (default, synonym, filtered, intersect)
//	core/       - LabelGraph type, .lg / object-relation parsing, serialization
//	segment/    - object extraction, spanning-tree filtering, OR output
//	compare/    - pair comparison, metric records and diff records
//	smallgraph/ - small labeled graphs, isomorphism, substructure errors
//	confusion/  - confusion matrices keyed by isomorphic small graphs
//	batch/      - parallel evaluation of pair lists
//	summary/    - aggregate rates, recall/precision, histograms and label confusions
//	config/     - viper settings and zerolog logger
//
// The lgeval command (cmd/lgeval) wires these into the compare, batch,
// confhist, filter, summary, diffsum, labels and lg2or subcommands.
//
// Quick example of a merge:
//
//	N, 1, 1
//	N, 2, 1
//	E, 1, 2, *
//
// describes one object "1" drawn with two strokes.
//
//	go install github.com/katalvlaran/lgeval/cmd/lgeval@latest
package lgeval
