package eventlist

import (
	"fmt"

	"github.com/lumeq/lumeq/internal/events"
	"github.com/lumeq/lumeq/internal/ir"
)

// emitPulse emits a PLAY pair, a DELAY pair (no waveform) or an ACQUIRE pair
// (single acquisition). The START event sits at the pulse's intra-node
// offset; the END event at the full node length.
func (g *generator) emitPulse(p *ir.Pulse, start int64) (events.List, error) {
	length, ok := p.ResolvedLength()
	if !ok {
		return nil, &UnresolvedLengthError{Node: fmt.Sprintf("pulse on signal %q in section %q", p.Signal, p.SectionName)}
	}

	playWaveID := "delay"
	if p.Def != nil {
		playWaveID = p.Def.UID
	}

	startID := g.ids.Next()
	startEvent := events.Event{
		Time:             start + p.Offset,
		ID:               startID,
		ChainElementID:   startID,
		SectionName:      p.SectionName,
		Signal:           p.Signal,
		PlayWaveID:       playWaveID,
		ParametrizedWith: [][]string{p.Parametrized.UIDs()},
	}

	startEvent.Amplitude = p.Amplitude
	startEvent.Phase = p.Phase
	startEvent.OscillatorFrequency = p.OscillatorFrequency
	startEvent.IncrementOscillatorPhase = p.IncrementOscillatorPhase
	startEvent.SetOscillatorPhase = p.SetOscillatorPhase
	if p.Parametrized.Amplitude != "" {
		startEvent.AmplitudeParameter = p.Parametrized.Amplitude
	}
	if len(p.Markers) > 0 {
		markers := make([]events.Marker, len(p.Markers))
		for i, m := range p.Markers {
			markers[i] = events.Marker{
				Selector: m.Selector,
				Enable:   m.Enable,
				Start:    m.Start,
				Length:   m.Length,
				PulseID:  m.PulseID,
			}
		}
		startEvent.Markers = markers
	}
	if len(p.PulseParameters) > 0 {
		encoded, err := encodeParameters(p.PulseParameters)
		if err != nil {
			return nil, fmt.Errorf("pulse in section %q: %w", p.SectionName, err)
		}
		startEvent.PulseParameters = encoded
	}
	if len(p.PlayParameters) > 0 {
		encoded, err := encodeParameters(p.PlayParameters)
		if err != nil {
			return nil, fmt.Errorf("pulse in section %q: %w", p.SectionName, err)
		}
		startEvent.PlayParameters = encoded
	}

	endEvent := events.Event{
		Time:             start + length,
		ID:               g.ids.Next(),
		ChainElementID:   startID,
		SectionName:      p.SectionName,
		Signal:           p.Signal,
		PlayWaveID:       playWaveID,
		ParametrizedWith: startEvent.ParametrizedWith,
	}

	switch {
	case p.Def == nil:
		startEvent.Type = events.DelayStart
		startEvent.PlayWaveType = events.PlayWaveTypeDelay
		endEvent.Type = events.DelayEnd
	case p.IsAcquire:
		startEvent.Type = events.AcquireStart
		endEvent.Type = events.AcquireEnd
		if p.AcquireParams != nil {
			startEvent.AcquisitionType = []string{p.AcquireParams.AcquisitionType}
			startEvent.AcquireHandle = p.AcquireParams.Handle
		}
	default:
		startEvent.Type = events.PlayStart
		endEvent.Type = events.PlayEnd
	}

	return events.List{startEvent, endEvent}, nil
}

// emitAcquireGroup emits one ACQUIRE pair for a batch of simultaneous
// acquisitions sharing a handle and acquisition kind. Member payloads are
// carried as parallel arrays. Inconsistent members are fatal.
func (g *generator) emitAcquireGroup(grp *ir.AcquireGroup, start int64) (events.List, error) {
	length, ok := grp.ResolvedLength()
	if !ok {
		return nil, &UnresolvedLengthError{Node: fmt.Sprintf("acquire group in section %q", grp.SectionName)}
	}
	if len(grp.Pulses) == 0 {
		return nil, &AcquireGroupError{Section: grp.SectionName, Reason: "no member pulses"}
	}
	if len(grp.Amplitudes) != len(grp.Pulses) || len(grp.Phases) != len(grp.Pulses) ||
		len(grp.Frequencies) != len(grp.Pulses) ||
		(grp.PulseParameters != nil && len(grp.PulseParameters) != len(grp.Pulses)) ||
		(grp.PlayParameters != nil && len(grp.PlayParameters) != len(grp.Pulses)) {
		return nil, &AcquireGroupError{Section: grp.SectionName, Reason: "per-member slices are not parallel to the pulses"}
	}

	first := grp.Pulses[0]
	if first.AcquireParams == nil {
		return nil, &AcquireGroupError{Section: grp.SectionName, Reason: "members carry no acquire parameters"}
	}
	for _, p := range grp.Pulses {
		if p.Signal != first.Signal {
			return nil, &AcquireGroupError{Section: grp.SectionName, Reason: fmt.Sprintf("members on different signals %q and %q", first.Signal, p.Signal)}
		}
		if p.AcquireParams == nil || p.AcquireParams.Handle != first.AcquireParams.Handle {
			return nil, &AcquireGroupError{Section: grp.SectionName, Reason: "members disagree on the acquire handle"}
		}
		if p.AcquireParams.AcquisitionType != first.AcquireParams.AcquisitionType {
			return nil, &AcquireGroupError{Section: grp.SectionName, Reason: "members disagree on the acquisition type"}
		}
	}

	pulseIDs := make([]string, len(grp.Pulses))
	parametrized := make([][]string, len(grp.Pulses))
	for i, p := range grp.Pulses {
		if p.Def == nil {
			return nil, &AcquireGroupError{Section: grp.SectionName, Reason: fmt.Sprintf("member %d has no pulse definition", i)}
		}
		pulseIDs[i] = p.Def.UID
		parametrized[i] = p.Parametrized.UIDs()
	}

	startID := g.ids.Next()
	common := events.Event{
		SectionName:      grp.SectionName,
		Signal:           first.Signal,
		ChainElementID:   startID,
		PulseIDs:         pulseIDs,
		ParametrizedWith: parametrized,
		Amplitudes:       grp.Amplitudes,
		Phases:           grp.Phases,
		Frequencies:      grp.Frequencies,
		AcquisitionType:  []string{first.AcquireParams.AcquisitionType},
		AcquireHandle:    first.AcquireParams.Handle,
	}
	if grp.PulseParameters != nil {
		encoded, err := encodeParameterList(grp.PulseParameters)
		if err != nil {
			return nil, fmt.Errorf("acquire group in section %q: %w", grp.SectionName, err)
		}
		common.MemberPulseParameters = encoded
	}
	if grp.PlayParameters != nil {
		encoded, err := encodeParameterList(grp.PlayParameters)
		if err != nil {
			return nil, fmt.Errorf("acquire group in section %q: %w", grp.SectionName, err)
		}
		common.MemberPlayParameters = encoded
	}

	startEvent := common
	startEvent.Type = events.AcquireStart
	startEvent.Time = start + grp.Offset
	startEvent.ID = startID

	endEvent := common
	endEvent.Type = events.AcquireEnd
	endEvent.Time = start + length
	endEvent.ID = g.ids.Next()

	return events.List{startEvent, endEvent}, nil
}

// emitOscillatorFrequencyStep emits one SET_OSCILLATOR_FREQUENCY pair per
// (parameter, oscillator, value) triple, carrying the owning device, signal
// and oscillator identifiers. The iteration index travels along for
// provenance.
func (g *generator) emitOscillatorFrequencyStep(step *ir.OscillatorFrequencyStep, start int64) (events.List, error) {
	length, ok := step.ResolvedLength()
	if !ok {
		return nil, &UnresolvedLengthError{Node: fmt.Sprintf("oscillator frequency step in section %q", step.SectionName)}
	}

	out := make(events.List, 0, 2*len(step.Steps))
	for _, s := range step.Steps {
		startID := g.ids.Next()
		out = append(out, events.Event{
			Type:           events.SetOscillatorFrequencyStart,
			Time:           start,
			ID:             startID,
			ChainElementID: startID,
			SectionName:    step.SectionName,
			Parameter:      &events.ParameterRef{ID: s.Parameter},
			Iteration:      events.Int(step.Iteration),
			Value:          events.Float(s.Value),
			DeviceID:       s.Oscillator.Device,
			Signal:         s.Oscillator.Signal,
			OscillatorID:   s.Oscillator.ID,
		})
		out = append(out, events.Event{
			Type:           events.SetOscillatorFrequencyEnd,
			Time:           start + length,
			ID:             g.ids.Next(),
			ChainElementID: startID,
		})
	}
	return out, nil
}

// emitPhaseReset emits one RESET_HW_OSCILLATOR_PHASE per device needing a
// hardware reset and at most one RESET_SW_OSCILLATOR_PHASE.
func (g *generator) emitPhaseReset(reset *ir.PhaseReset, start int64) (events.List, error) {
	if _, ok := reset.ResolvedLength(); !ok {
		return nil, &UnresolvedLengthError{Node: fmt.Sprintf("phase reset in section %q", reset.SectionName)}
	}

	var out events.List
	for _, hw := range reset.HWOscillators {
		out = append(out, events.Event{
			Type:        events.ResetHWOscillatorPhase,
			Time:        start,
			ID:          g.ids.Next(),
			SectionName: reset.SectionName,
			DeviceID:    hw.Device,
			Duration:    events.Float(hw.Duration),
		})
	}
	if reset.ResetSWOscillators {
		out = append(out, events.Event{
			Type:        events.ResetSWOscillatorPhase,
			Time:        start,
			ID:          g.ids.Next(),
			SectionName: reset.SectionName,
		})
	}
	return out, nil
}

// emitPrecompClear emits the single filter reset event.
func (g *generator) emitPrecompClear(clear *ir.PrecompClear, start int64) (events.List, error) {
	if _, ok := clear.ResolvedLength(); !ok {
		return nil, &UnresolvedLengthError{Node: fmt.Sprintf("precompensation clear in section %q", clear.SectionName)}
	}
	return events.List{{
		Type:        events.ResetPrecompensationFilters,
		Time:        start,
		ID:          g.ids.Next(),
		SectionName: clear.SectionName,
		Signal:      clear.Signal,
	}}, nil
}

// emitReserve emits nothing: a reserve occupies its signal's timeline
// without output, but still requires a resolved length.
func (g *generator) emitReserve(r *ir.Reserve) (events.List, error) {
	if _, ok := r.ResolvedLength(); !ok {
		return nil, &UnresolvedLengthError{Node: fmt.Sprintf("reserve on signal %q", r.Signal)}
	}
	return nil, nil
}

// encodeParameters serializes pulse-shaping parameters canonically so that
// identical parameter sets compare equal as strings downstream.
func encodeParameters(params map[string]any) (string, error) {
	raw, err := events.MarshalCanonical(params)
	if err != nil {
		return "", fmt.Errorf("encode pulse parameters: %w", err)
	}
	return string(raw), nil
}

// encodeParameterList encodes per-member parameter sets; empty members stay
// empty strings.
func encodeParameterList(params []map[string]any) ([]string, error) {
	out := make([]string, len(params))
	for i, p := range params {
		if len(p) == 0 {
			continue
		}
		encoded, err := encodeParameters(p)
		if err != nil {
			return nil, err
		}
		out[i] = encoded
	}
	return out, nil
}
