// Package store provides durable storage for generated event lists.
//
// Each generation run is stored with its provenance (program name, budget,
// expansion flag, canonical content hash) and its ordered events, so that
// runs can be listed, dumped and diffed after the fact without regenerating.
// Uses SQLite with WAL mode for concurrent read access.
package store
