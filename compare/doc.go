// Package compare computes the differences between an output label graph
// and a target (ground-truth) label graph.
//
// Compare works at three levels:
//
//   - primitives: node labels (D_C) and edge labels (D_L), two-sided, with a
//     missing edge treated as the "_" label;
//   - segmentation: per-primitive disagreement on merge neighbours (D_S) and
//     exact object matching by primitive set;
//   - relations: object relations judged correct only when both endpoint
//     objects are correctly segmented and the relation labels agree.
//
// Before comparing, both graphs are reconciled with core.MatchAbsent; the
// placeholders are removed again before Compare returns, so the caller's
// graphs keep their node sets. Metrics come back as an ordered name/value
// list (see the Metric* constants) together with localized diff records.
//
// Derived quantities:
//
//	D_B = D_C + D_L
//	D_R = D_L - D_S
//	D_E = (√(D_S/nEdges) + √(D_L/nEdges) + D_C/nNodes) / 3
//
// with nEdges = nNodes·(nNodes-1) and zero denominators skipped. When the
// output holds a single node after reconciliation and placeholders were
// inserted, the edge ratios are taken as 1 so a wholly missing primitive
// scores total error.
package compare
