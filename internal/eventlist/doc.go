// Package eventlist turns a fully-timed IR tree into the flat, ordered
// event sequence consumed by sequencer code generation.
//
// ARCHITECTURE:
//
// Generation is a single-threaded, purely synchronous recursive walk of the
// tree in structural order. Exactly three values thread through the whole
// recursion:
//
//   - the ID source: a monotonic counter allocating event ids in emission
//     order, never reset mid-traversal
//   - the budget: the remaining number of events the call tree may emit,
//     passed by value and returned through list lengths, never ambient state
//   - the loop expansion flag: whether compressed loops are replicated into
//     shadow iterations
//
// Budget exhaustion is not an error. It truncates the output while keeping
// every structural pairing closed: a node always emits its own wrapping
// START/END pair, unvisited children are padded with empty slots, and
// unvisited section children still receive their SUBSECTION wrapper pair.
// Callers that must detect truncation compare emitted counts themselves.
//
// Violated structural preconditions (unresolved lengths, inconsistent
// acquire groups) abort generation immediately; there is no partial output
// for those.
package eventlist
