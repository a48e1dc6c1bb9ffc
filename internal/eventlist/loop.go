package eventlist

import (
	"fmt"

	"github.com/lumeq/lumeq/internal/events"
	"github.com/lumeq/lumeq/internal/ir"
)

// emitLoop wraps the iteration events in SECTION_START, LOOP_START, ...,
// LOOP_END, SECTION_END.
//
// An unrolled loop (not compressed) carries all its iterations as explicit
// children and emits them through the ordinary flattening path, without
// subsection wrapping. A compressed loop carries only the prototype
// iteration; with loop expansion enabled it is replicated into shadow
// iterations at increasing starts until the budget runs out.
func (g *generator) emitLoop(loop *ir.Loop, start int64, budget Budget) (events.List, error) {
	length, ok := loop.ResolvedLength()
	if !ok {
		return nil, &UnresolvedLengthError{Node: fmt.Sprintf("loop %q", loop.Name)}
	}

	// Structural wrapper events plus the prototype's step pair, charged
	// before descending.
	budget = budget.Take(6)

	sectionID := g.ids.Next()
	loopID := g.ids.Next()

	var nested []events.List
	if !loop.Compressed {
		var err error
		nested, err = g.childrenEvents(&loop.IntervalData, loop.Name, false, start, budget)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		nested, err = g.expandCompressed(loop, start, budget)
		if err != nil {
			return nil, err
		}
	}

	// Everything below this loop is one nesting level deeper.
	for _, list := range nested {
		for i := range list {
			if list[i].NestingLevel != nil {
				*list[i].NestingLevel++
			}
		}
	}

	out := events.List{{
		Type:           events.SectionStart,
		Time:           start,
		ID:             sectionID,
		ChainElementID: sectionID,
		SectionName:    loop.Name,
		NestingLevel:   events.Int(0),
	}}
	out = append(out, events.Event{
		Type:           events.LoopStart,
		Time:           start,
		ID:             loopID,
		ChainElementID: loopID,
		SectionName:    loop.Name,
		NestingLevel:   events.Int(0),
		Iterations:     loop.Iterations,
		Compressed:     loop.Compressed,
	})
	out = append(out, events.Flatten(nested)...)
	out = append(out, events.Event{
		Type:           events.LoopEnd,
		Time:           start + length,
		ID:             g.ids.Next(),
		ChainElementID: loopID,
		SectionName:    loop.Name,
		NestingLevel:   events.Int(0),
	})
	out = append(out, events.Event{
		Type:           events.SectionEnd,
		Time:           start + length,
		ID:             g.ids.Next(),
		ChainElementID: sectionID,
		SectionName:    loop.Name,
		NestingLevel:   events.Int(0),
	})
	return out, nil
}

// expandCompressed emits the prototype iteration and, when loop expansion is
// on, its shadow replicas. The prototype's trailing iteration marker is
// annotated compressed whether or not shadows follow.
func (g *generator) expandCompressed(loop *ir.Loop, start int64, budget Budget) ([]events.List, error) {
	if len(loop.Children) == 0 {
		return nil, fmt.Errorf("compressed loop %q has no prototype iteration", loop.Name)
	}
	prototype, ok := loop.Children[0].(*ir.LoopIteration)
	if !ok {
		return nil, fmt.Errorf("compressed loop %q: prototype is %T, want loop iteration", loop.Name, loop.Children[0])
	}
	prototypeLength, ok := prototype.ResolvedLength()
	if !ok {
		return nil, &UnresolvedLengthError{Node: fmt.Sprintf("loop iteration of %q", loop.Name)}
	}

	iterationStart := start + loop.ChildStarts[0]
	first, err := g.emitLoopIteration(prototype, iterationStart, budget)
	if err != nil {
		return nil, err
	}
	if len(first) == 0 || first[len(first)-1].Type != events.LoopIterationEnd {
		return nil, fmt.Errorf("compressed loop %q: prototype iteration did not close with its iteration marker", loop.Name)
	}
	first[len(first)-1].Compressed = true
	nested := []events.List{first}

	if !g.expandLoops {
		return nested, nil
	}

	for iteration := 1; iteration < loop.Iterations; iteration++ {
		budget = budget.SpendList(len(nested[len(nested)-1]))
		if budget.Exhausted() {
			break
		}
		iterationStart += prototypeLength
		shadow := prototype.ShadowIteration(iteration)
		list, err := g.emitLoopIteration(shadow, iterationStart, budget)
		if err != nil {
			return nil, err
		}
		nested = append(nested, list)
	}
	return nested, nil
}

// emitLoopIteration brackets the child events in LOOP_STEP_START/END, sets
// the swept parameter values for the iteration, draws and drops the
// iteration's PRNG sample if it owns one, and closes the prototype iteration
// (index 0 only) with the loop's single LOOP_ITERATION_END marker. Shadow
// iterations have every event tagged shadow.
func (g *generator) emitLoopIteration(it *ir.LoopIteration, start int64, budget Budget) (events.List, error) {
	length, ok := it.ResolvedLength()
	if !ok {
		return nil, &UnresolvedLengthError{Node: fmt.Sprintf("loop iteration %d of %q", it.Iteration, it.Name)}
	}
	end := start + length

	budget = budget.Take(len(it.SweepParameters))
	if it.Iteration == 0 {
		budget = budget.Take(1)
	}
	budget = budget.Take(3)

	stepID := g.ids.Next()
	out := events.List{{
		Type:           events.LoopStepStart,
		Time:           start,
		ID:             stepID,
		ChainElementID: stepID,
		SectionName:    it.Name,
		Iteration:      events.Int(it.Iteration),
		NumRepeats:     it.NumRepeats,
		NestingLevel:   events.Int(0),
	}}

	for _, param := range it.SweepParameters {
		if it.Iteration >= len(param.Values) {
			return nil, fmt.Errorf("sweep parameter %q has %d values, iteration %d requested", param.UID, len(param.Values), it.Iteration)
		}
		out = append(out, events.Event{
			Type:        events.ParameterSet,
			Time:        start,
			ID:          g.ids.Next(),
			SectionName: it.Name,
			Parameter:   &events.ParameterRef{ID: param.UID},
			Iteration:   events.Int(it.Iteration),
			Value:       events.Float(param.Values[it.Iteration]),
		})
	}

	if it.PRNGSample != "" {
		out = append(out, events.Event{
			Type:         events.DrawPRNGSample,
			Time:         start,
			ID:           g.ids.Next(),
			SectionName:  it.Name,
			Iteration:    events.Int(it.Iteration),
			NumRepeats:   it.NumRepeats,
			NestingLevel: events.Int(0),
			SampleName:   it.PRNGSample,
		})
	}

	nested, err := g.childrenEvents(&it.IntervalData, it.Name, true, start, budget)
	if err != nil {
		return nil, err
	}
	out = append(out, events.Flatten(nested)...)

	out = append(out, events.Event{
		Type:           events.LoopStepEnd,
		Time:           end,
		ID:             g.ids.Next(),
		ChainElementID: stepID,
		SectionName:    it.Name,
		Iteration:      events.Int(it.Iteration),
		NumRepeats:     it.NumRepeats,
		NestingLevel:   events.Int(0),
	})

	if it.PRNGSample != "" {
		out = append(out, events.Event{
			Type:         events.DropPRNGSample,
			Time:         end,
			ID:           g.ids.Next(),
			SectionName:  it.Name,
			Iteration:    events.Int(it.Iteration),
			NumRepeats:   it.NumRepeats,
			NestingLevel: events.Int(0),
			SampleName:   it.PRNGSample,
		})
	}

	// Only the prototype iteration carries the terminal marker; shadows and
	// unrolled later iterations never do. Downstream consumers rely on
	// exactly one marker per loop.
	if it.Iteration == 0 {
		out = append(out, events.Event{
			Type:         events.LoopIterationEnd,
			Time:         end,
			ID:           g.ids.Next(),
			SectionName:  it.Name,
			Iteration:    events.Int(it.Iteration),
			NumRepeats:   it.NumRepeats,
			NestingLevel: events.Int(0),
		})
	}

	if it.Shadow {
		for i := range out {
			out[i].Shadow = true
		}
	}
	return out, nil
}
