package eventlist

// Budget bounds how many events a generation call and its descendants may
// still emit. It is a plain value: every call receives its own copy, spends
// from it and hands the remainder down, so no mutable counter is shared
// across the recursion.
//
// A budget at or below zero admits no further children; it never signals an
// error. Reservations (Take) are charged up front for wrapper events that
// will be emitted after the children return.
type Budget int

// Take reserves n events and returns the remaining budget.
func (b Budget) Take(n int) Budget {
	return b - Budget(n)
}

// SpendList charges the events of an emitted child list.
func (b Budget) SpendList(n int) Budget {
	return b - Budget(n)
}

// Exhausted reports whether no further events may be emitted.
func (b Budget) Exhausted() bool {
	return b <= 0
}

// Remaining returns the remaining event count, for diagnostics.
func (b Budget) Remaining() int {
	return int(b)
}
