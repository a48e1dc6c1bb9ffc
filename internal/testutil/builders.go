// Package testutil provides IR fixture builders shared by tests.
//
// The builders construct small, fully-resolved trees without the verbosity
// of literal struct assembly: lengths are taken resolved, child starts are
// given inline, and section plumbing (names, signals) is filled in.
package testutil

import (
	"github.com/lumeq/lumeq/internal/ir"
)

// Length returns a resolved length pointer.
func Length(v int64) *int64 { return &v }

// ChildSpan pairs a child with its start offset for the builders.
type ChildSpan struct {
	Start int64
	Node  ir.Node
}

// Interval assembles interval data from a length and child spans.
func Interval(length int64, children ...ChildSpan) ir.IntervalData {
	iv := ir.IntervalData{Length: Length(length)}
	for _, c := range children {
		iv.Children = append(iv.Children, c.Node)
		iv.ChildStarts = append(iv.ChildStarts, c.Start)
	}
	return iv
}

// Root builds a program root.
func Root(length int64, children ...ChildSpan) *ir.Root {
	return &ir.Root{IntervalData: Interval(length, children...)}
}

// Section builds a named section.
func Section(name string, length int64, children ...ChildSpan) *ir.Section {
	return &ir.Section{SectionData: ir.SectionData{
		IntervalData: Interval(length, children...),
		Name:         name,
	}}
}

// Loop builds a loop section.
func Loop(name string, length int64, iterations int, compressed bool, children ...ChildSpan) *ir.Loop {
	return &ir.Loop{
		SectionData: ir.SectionData{
			IntervalData: Interval(length, children...),
			Name:         name,
		},
		Iterations: iterations,
		Compressed: compressed,
	}
}

// Iteration builds one loop iteration.
func Iteration(name string, length int64, iteration, numRepeats int, children ...ChildSpan) *ir.LoopIteration {
	return &ir.LoopIteration{
		SectionData: ir.SectionData{
			IntervalData: Interval(length, children...),
			Name:         name,
		},
		Iteration:  iteration,
		NumRepeats: numRepeats,
	}
}

// Play builds a waveform pulse on a signal.
func Play(section, signal, waveform string, length int64) *ir.Pulse {
	return &ir.Pulse{
		IntervalData: Interval(length),
		SectionName:  section,
		Signal:       signal,
		Def:          &ir.PulseDef{UID: waveform},
	}
}

// Delay builds a waveform-less pulse (pure delay) on a signal.
func Delay(section, signal string, length int64) *ir.Pulse {
	return &ir.Pulse{
		IntervalData: Interval(length),
		SectionName:  section,
		Signal:       signal,
	}
}

// Acquire builds a single acquisition pulse bound to a handle.
func Acquire(section, signal, waveform, handle string, length int64) *ir.Pulse {
	return &ir.Pulse{
		IntervalData: Interval(length),
		SectionName:  section,
		Signal:       signal,
		Def:          &ir.PulseDef{UID: waveform},
		IsAcquire:    true,
		AcquireParams: &ir.AcquireParams{
			Handle:          handle,
			AcquisitionType: "integration",
		},
	}
}

// Match builds a handle-bound match section over case children.
func Match(name string, length int64, handle string, local bool, children ...ChildSpan) *ir.Match {
	return &ir.Match{
		Section: ir.Section{SectionData: ir.SectionData{
			IntervalData: Interval(length, children...),
			Name:         name,
		}},
		Handle: handle,
		Local:  local,
	}
}

// Case builds one match branch with a branch value.
func Case(name string, length int64, state int, children ...ChildSpan) *ir.Case {
	return &ir.Case{
		Section: ir.Section{SectionData: ir.SectionData{
			IntervalData: Interval(length, children...),
			Name:         name,
		}},
		State: state,
	}
}

// EmptyBranch builds a playback-less match branch over the given signals.
func EmptyBranch(name string, length int64, state int, signals ...string) *ir.EmptyBranch {
	b := &ir.EmptyBranch{Case: ir.Case{
		Section: ir.Section{SectionData: ir.SectionData{
			IntervalData: Interval(length),
			Name:         name,
		}},
		State: state,
	}}
	b.Signals = signals
	return b
}
