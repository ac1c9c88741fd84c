// Package ir provides the intermediate representation for explained2dot:
// identifier handles, the identifier registry, and the call graph built from
// a MAL explain trace.
//
// This package contains the data model only. All other internal packages
// import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Identifiers come from one monotonic sequence shared by arguments,
//     nodes and literal values, assigned in discovery order and never reused
//   - NoID (zero) is the invalid sentinel; valid identifiers start at 1
//   - No locking: a Registry and its Graph belong to a single parse session
//     and are mutated strictly in statement order
package ir
