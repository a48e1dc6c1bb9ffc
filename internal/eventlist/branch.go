package eventlist

import (
	"fmt"

	"github.com/lumeq/lumeq/internal/events"
	"github.com/lumeq/lumeq/internal/ir"
)

// emitMatch reuses the section rule and annotates the SECTION_START with the
// branch selector: the acquisition handle and feedback locality, the user
// register, or the PRNG sample name. Branch timing must already be resolved
// and frozen by the feedback resolver before generation.
func (g *generator) emitMatch(m *ir.Match, start int64, budget Budget) (events.List, error) {
	out, err := g.emitSection(&m.SectionData, start, budget)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}
	if out[0].Type != events.SectionStart {
		return nil, fmt.Errorf("match %q: first emitted event is %s, want %s", m.Name, out[0].Type, events.SectionStart)
	}
	if m.Handle != "" {
		out[0].Handle = m.Handle
		out[0].Local = events.Bool(m.Local)
	}
	if m.UserRegister != nil {
		out[0].UserRegister = events.Int(*m.UserRegister)
	}
	if m.PRNGSample != "" {
		out[0].PRNGSample = m.PRNGSample
	}
	return out, nil
}

// emitCase reuses the section rule and stamps every produced event with the
// branch value it belongs to.
func (g *generator) emitCase(c *ir.Case, start int64, budget Budget) (events.List, error) {
	out, err := g.emitSection(&c.SectionData, start, budget)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].State = events.Int(c.State)
	}
	return out, nil
}

// emitEmptyBranch emits the case bracketing and, budget permitting, one
// placeholder DELAY pair per participating signal spanning the full branch
// length, so every signal stays occupied for the same duration whichever
// branch executes.
func (g *generator) emitEmptyBranch(b *ir.EmptyBranch, start int64, budget Budget) (events.List, error) {
	length, ok := b.ResolvedLength()
	if !ok {
		return nil, &UnresolvedLengthError{Node: fmt.Sprintf("empty branch %q", b.Name)}
	}
	if len(b.Children) != 0 {
		return nil, fmt.Errorf("empty branch %q has %d children, want none", b.Name, len(b.Children))
	}

	budget = budget.Take(2)

	startID := g.ids.Next()
	out := events.List{{
		Type:           events.SectionStart,
		Time:           start,
		ID:             startID,
		ChainElementID: startID,
		SectionName:    b.Name,
		State:          events.Int(b.State),
	}}

	for _, signal := range b.Signals {
		if budget.Remaining() < 2 {
			break
		}
		budget = budget.Take(2)
		delayID := g.ids.Next()
		out = append(out, events.Event{
			Type:           events.DelayStart,
			Time:           start,
			ID:             delayID,
			ChainElementID: delayID,
			SectionName:    b.Name,
			Signal:         signal,
			PlayWaveID:     events.EmptyCaseDelayID,
			PlayWaveType:   events.PlayWaveTypeEmptyCase,
			State:          events.Int(b.State),
		})
		out = append(out, events.Event{
			Type:           events.DelayEnd,
			Time:           start + length,
			ID:             g.ids.Next(),
			ChainElementID: delayID,
			SectionName:    b.Name,
			Signal:         signal,
			PlayWaveID:     events.EmptyCaseDelayID,
			PlayWaveType:   events.PlayWaveTypeEmptyCase,
			State:          events.Int(b.State),
		})
	}

	out = append(out, events.Event{
		Type:           events.SectionEnd,
		Time:           start + length,
		ID:             g.ids.Next(),
		ChainElementID: startID,
		SectionName:    b.Name,
		State:          events.Int(b.State),
	})
	return out, nil
}
