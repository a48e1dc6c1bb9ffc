package events

import "fmt"

// List is an ordered sequence of events in emission order.
//
// Emission order is not globally time-sorted: sibling subtrees are
// concatenated in child order, and consumers that need a time ordering must
// sort themselves.
type List []Event

// Flatten concatenates nested per-child event lists into a single list,
// preserving child order. Empty sublists (budget padding) contribute nothing.
func Flatten(nested []List) List {
	n := 0
	for _, l := range nested {
		n += len(l)
	}
	out := make(List, 0, n)
	for _, l := range nested {
		out = append(out, l...)
	}
	return out
}

// CheckPairs verifies the structural pairing invariants of a list:
//
//   - ids are strictly increasing in emission order
//   - every paired START has exactly one matching END with the same chain
//     element id, and the END is not earlier than the START
//   - no END appears without an open START of the matching type and chain
//
// It returns the first violation found, or nil. Pairing is checked per
// chain element id, so interleaved pairs from sibling subtrees are fine.
func (l List) CheckPairs() error {
	type open struct {
		end   Type
		index int
	}
	lastID := int64(0)
	opened := map[int64]open{}
	for i, e := range l {
		if e.ID <= lastID {
			return fmt.Errorf("event %d (%s): id %d not strictly increasing (previous %d)", i, e.Type, e.ID, lastID)
		}
		lastID = e.ID
		switch {
		case IsPairedStart(e.Type):
			if e.ChainElementID != e.ID {
				return fmt.Errorf("event %d (%s): start chain element id %d != own id %d", i, e.Type, e.ChainElementID, e.ID)
			}
			end, _ := PairedEnd(e.Type)
			opened[e.ChainElementID] = open{end: end, index: i}
		case IsPairedEnd(e.Type):
			o, ok := opened[e.ChainElementID]
			if !ok {
				return fmt.Errorf("event %d (%s): end without open start, chain element id %d", i, e.Type, e.ChainElementID)
			}
			if o.end != e.Type {
				return fmt.Errorf("event %d: %s closes a pair opened as %s", i, e.Type, l[o.index].Type)
			}
			if e.Time < l[o.index].Time {
				return fmt.Errorf("event %d (%s): end time %d before start time %d", i, e.Type, e.Time, l[o.index].Time)
			}
			delete(opened, e.ChainElementID)
		}
	}
	if len(opened) > 0 {
		for chain, o := range opened {
			return fmt.Errorf("unmatched %s with chain element id %d", l[o.index].Type, chain)
		}
	}
	return nil
}
