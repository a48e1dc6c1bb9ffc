// Package feedback resolves the earliest legal execution time of real-time
// conditional branches.
//
// A match section bound to an acquisition handle can only execute once the
// acquisition result has completed its round trip from the readout device to
// the generating device. ResolveMatchStart computes that time from three
// collaborators: the acquisition registry (which acquisition feeds the
// handle), the signal table (per-signal device metadata and delays) and a
// latency model (round-trip latency keyed by generator class, readout class
// and feedback path).
//
// Resolution happens before event generation and the result is frozen: every
// case branch of the match shares it. All failures here are compile-time
// fatal; there is no degraded path.
package feedback
