// Package explain parses MonetDB MAL explain output into an ir.Graph.
//
// The pipeline runs in four stages, strictly in input order:
//
//  1. SplitLines and Normalize turn raw file content into logical
//     statements: continuation lines are merged, table borders trimmed, and
//     ignorable lines (barriers, block ends, querylog and dataflow calls)
//     dropped.
//  2. The header statement ("function user.s4_1(A0:int):void;") names the
//     enclosing function and declares its variables.
//  3. Classify tags every following statement as a call, a result-set call,
//     a reassignment, a literal binding, or a skip.
//  4. The Parser dispatches each classification: call arguments resolve to
//     existing identifiers, return values are declared fresh, and edges are
//     recorded in the graph.
//
// Identifiers are allocated in discovery order from one sequence, so the
// same trace always yields the same identifiers. Any malformed statement
// aborts the parse with a *FormatError carrying the offending line.
package explain
