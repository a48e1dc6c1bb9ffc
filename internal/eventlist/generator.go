package eventlist

import (
	"fmt"

	"github.com/lumeq/lumeq/internal/events"
	"github.com/lumeq/lumeq/internal/ir"
)

// Options configures one top-level generation call.
type Options struct {
	// Start is the absolute start time of the tree, normally 0.
	Start int64

	// MaxEvents bounds the total number of emitted events. Zero means
	// effectively unbounded.
	MaxEvents int

	// ExpandLoops replicates compressed loops into shadow iterations.
	ExpandLoops bool

	// Settings is the compiler configuration, passed through unchanged.
	Settings Settings

	// IDs is the id allocator shared across the whole invocation. A nil
	// value gets a fresh source starting at 1.
	IDs *IDSource
}

// Generate walks the tree once and returns the flat event list.
//
// The tree is borrowed read-only. Budget exhaustion truncates silently;
// structural precondition violations abort with an error and no output.
func Generate(root ir.Node, opts Options) (events.List, error) {
	if opts.IDs == nil {
		opts.IDs = NewIDSource()
	}
	maxEvents := opts.MaxEvents
	if maxEvents <= 0 {
		maxEvents = int(^uint(0) >> 1)
	}
	g := &generator{
		ids:         opts.IDs,
		expandLoops: opts.ExpandLoops,
		settings:    opts.Settings,
	}
	return g.emit(root, opts.Start, Budget(maxEvents))
}

// generator holds the per-invocation state of one tree walk.
type generator struct {
	ids         *IDSource
	expandLoops bool
	settings    Settings
}

// emit dispatches over the closed node variant. Every kind has an emission
// rule; an unknown kind is a programming error.
func (g *generator) emit(n ir.Node, start int64, budget Budget) (events.List, error) {
	switch node := n.(type) {
	case *ir.Root:
		return g.emitRoot(node, start, budget)
	case *ir.Section:
		return g.emitSection(&node.SectionData, start, budget)
	case *ir.Loop:
		return g.emitLoop(node, start, budget)
	case *ir.LoopIteration:
		return g.emitLoopIteration(node, start, budget)
	case *ir.Match:
		return g.emitMatch(node, start, budget)
	case *ir.EmptyBranch:
		return g.emitEmptyBranch(node, start, budget)
	case *ir.Case:
		return g.emitCase(node, start, budget)
	case *ir.Pulse:
		return g.emitPulse(node, start)
	case *ir.AcquireGroup:
		return g.emitAcquireGroup(node, start)
	case *ir.OscillatorFrequencyStep:
		return g.emitOscillatorFrequencyStep(node, start)
	case *ir.PhaseReset:
		return g.emitPhaseReset(node, start)
	case *ir.PrecompClear:
		return g.emitPrecompClear(node, start)
	case *ir.Reserve:
		return g.emitReserve(node)
	default:
		return nil, fmt.Errorf("no emission rule for node kind %T", n)
	}
}

// emitRoot emits only the flattened children; the root has no wrapping
// events of its own.
func (g *generator) emitRoot(root *ir.Root, start int64, budget Budget) (events.List, error) {
	if _, ok := root.ResolvedLength(); !ok {
		return nil, &UnresolvedLengthError{Node: "program root"}
	}
	nested, err := g.childrenEvents(&root.IntervalData, "", false, start, budget)
	if err != nil {
		return nil, err
	}
	return events.Flatten(nested), nil
}

// emitSection emits the bracketing SECTION_START/END pair, trigger SET/CLEAR
// pairs, an optional PRNG setup pair, and the flattened children in between.
// Trigger clears and the PRNG drop land just before SECTION_END.
func (g *generator) emitSection(sec *ir.SectionData, start int64, budget Budget) (events.List, error) {
	length, ok := sec.ResolvedLength()
	if !ok {
		return nil, &UnresolvedLengthError{Node: fmt.Sprintf("section %q", sec.Name)}
	}

	// The section's own pair is always emitted, charged before anything else.
	budget = budget.Take(2)

	var admittedTriggers []ir.TriggerSignal
	for _, trig := range sec.TriggerOutput {
		if budget.Remaining() < 2 {
			break
		}
		budget = budget.Take(2)
		admittedTriggers = append(admittedTriggers, trig)
	}

	withPRNG := sec.PRNG != nil && !budget.Exhausted()
	if withPRNG {
		budget = budget.Take(2)
	}

	startID := g.ids.Next()
	startEvent := events.Event{
		Type:           events.SectionStart,
		Time:           start,
		ID:             startID,
		ChainElementID: startID,
		SectionName:    sec.Name,
	}
	if len(sec.TriggerOutput) > 0 {
		refs := make([]events.TriggerOutputRef, len(sec.TriggerOutput))
		for i, trig := range sec.TriggerOutput {
			refs[i] = events.TriggerOutputRef{SignalID: trig.Signal}
		}
		startEvent.TriggerOutput = refs
	}
	out := events.List{startEvent}

	for _, trig := range admittedTriggers {
		out = append(out, events.Event{
			Type:        events.DigitalSignalStateChange,
			Time:        start,
			ID:          g.ids.Next(),
			SectionName: sec.Name,
			Signal:      trig.Signal,
			Bit:         events.Int(trig.Bit),
			Change:      events.TriggerSet,
		})
	}

	var prngSetupID int64
	if withPRNG {
		prngSetupID = g.ids.Next()
		out = append(out, events.Event{
			Type:           events.PRNGSetup,
			Time:           start,
			ID:             prngSetupID,
			ChainElementID: prngSetupID,
			SectionName:    sec.Name,
			Range:          sec.PRNG.Range,
			Seed:           sec.PRNG.Seed,
		})
	}

	nested, err := g.childrenEvents(&sec.IntervalData, sec.Name, true, start, budget)
	if err != nil {
		return nil, err
	}
	out = append(out, events.Flatten(nested)...)

	if withPRNG {
		out = append(out, events.Event{
			Type:           events.DropPRNGSetup,
			Time:           start + length,
			ID:             g.ids.Next(),
			ChainElementID: prngSetupID,
			SectionName:    sec.Name,
		})
	}

	for _, trig := range admittedTriggers {
		out = append(out, events.Event{
			Type:        events.DigitalSignalStateChange,
			Time:        start + length,
			ID:          g.ids.Next(),
			SectionName: sec.Name,
			Signal:      trig.Signal,
			Bit:         events.Int(trig.Bit),
			Change:      events.TriggerClear,
		})
	}

	endEvent := events.Event{
		Type:           events.SectionEnd,
		Time:           start + length,
		ID:             g.ids.Next(),
		ChainElementID: startID,
		SectionName:    sec.Name,
	}
	endEvent.TriggerOutput = startEvent.TriggerOutput
	out = append(out, endEvent)

	return out, nil
}
