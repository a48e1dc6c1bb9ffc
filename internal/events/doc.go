// Package events defines the flat event records produced by the event-list
// generation stage and consumed by the sequencer code generators.
//
// An event is a timestamped record with a closed type enumeration, a unique
// monotonically increasing id, and a per-type payload. Structurally paired
// events (SECTION_START/SECTION_END, PLAY_START/PLAY_END, ...) are linked by
// a shared chain element id equal to the start event's own id.
//
// The package also provides canonical JSON serialization and content hashing
// for event lists. Canonical serialization is the only form used for golden
// comparisons and store identity; it guarantees byte-identical output for
// semantically identical lists.
package events
