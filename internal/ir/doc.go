// Package ir defines the fully-timed intermediate representation consumed by
// the event-list generator.
//
// The node set is a closed variant: Root, Section, Loop, LoopIteration,
// Match, Case, EmptyBranch, Pulse, AcquireGroup, OscillatorFrequencyStep,
// PhaseReset, Reserve and PrecompClear. Every node carries interval data
// (a resolved length, ordered children with start offsets relative to the
// parent, participating signals); section-like nodes add a name and optional
// trigger/PRNG configuration.
//
// Trees are produced by an external scheduler and consumed read-only; the
// generator never mutates or reparents a node. The only timing resolved in
// this module's scope is the branch start of a Match section (package
// feedback).
//
// Validate performs the structural checks an upstream scheduler must already
// have satisfied; the generator re-checks the fatal subset during emission.
package ir
