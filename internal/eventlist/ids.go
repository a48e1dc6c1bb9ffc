package eventlist

import "sync/atomic"

// IDSource is the monotonic id allocator threaded through one generation
// call. Ids are strictly increasing and never reused within a call; the
// source is owned exclusively by one top-level invocation and never a hidden
// global.
//
// Thread-safety: Next is atomic, but the generator itself is single-threaded;
// callers that parallelize across programs must use one source per program.
type IDSource struct {
	seq atomic.Int64
}

// NewIDSource creates a source whose first Next returns 1.
func NewIDSource() *IDSource {
	return &IDSource{}
}

// NewIDSourceAt creates a source whose first Next returns start + 1.
func NewIDSourceAt(start int64) *IDSource {
	s := &IDSource{}
	s.seq.Store(start)
	return s
}

// Next returns the next id. Each call returns a unique, increasing value.
func (s *IDSource) Next() int64 {
	return s.seq.Add(1)
}

// Current returns the most recently allocated id without allocating.
func (s *IDSource) Current() int64 {
	return s.seq.Load()
}
