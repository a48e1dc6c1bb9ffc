package feedback

import (
	"fmt"
	"math"
)

// ResolveRequest describes one match section whose start needs resolving.
type ResolveRequest struct {
	// Section is the match section name, used in error messages.
	Section string
	// Handle binds the branch to a prior acquisition.
	Handle string
	// Local selects the internal feedback path instead of the global one.
	Local bool
	// Signals are the signals participating in the branch body.
	Signals []string
	// Grid is the execution granularity of the branch in tinysamples; the
	// resolved start is ceiling-rounded to it.
	Grid int64
	// ProposedStart is the start proposed by the scheduler, a lower bound on
	// the result.
	ProposedStart int64
	// StartMayChange is asserted by the caller when the section sits inside
	// a right-aligned container or an auto-repeated loop. Resolution is
	// impossible under those conditions.
	StartMayChange bool
}

// Resolver computes branch start times against a fixed set of collaborators.
type Resolver struct {
	Acquires   AcquireRegistry
	Signals    SignalTable
	Model      LatencyModel
	TinySample float64 // seconds per tinysample
}

// ResolveMatchStart returns the earliest cycle at which the branch decision
// may execute, in tinysamples:
//
//  1. Find the most recent acquisition bound to the handle.
//  2. Compute the end of its readout integration window in readout device
//     samples, including start delay, signal delay and the total rounded
//     port delay.
//  3. For every participating signal, query the latency model for the
//     round-trip latency of the decision, convert it to the signal's local
//     time base, subtract the signal's own offsets and round up to the grid.
//  4. Take the maximum over all signals, and the maximum of that with the
//     proposed start.
//
// The result is frozen for all case branches of the match.
func (r *Resolver) ResolveMatchStart(req ResolveRequest) (int64, error) {
	if req.StartMayChange {
		return 0, &UnschedulableMatchError{
			Section: req.Section,
			Handle:  req.Handle,
			Reason:  "the section may not be a subsection of a right-aligned section or inside a loop with auto repetition",
		}
	}

	pulses := r.Acquires.Lookup(req.Handle)
	if len(pulses) == 0 {
		return 0, &UnschedulableMatchError{
			Section: req.Section,
			Handle:  req.Handle,
			Reason:  "no acquisition found for the handle",
		}
	}
	acquire := pulses[len(pulses)-1]
	if acquire.AbsoluteStart == nil {
		// Should already be caught as a disallowed context before we get
		// here; kept as a hard stop for safety.
		return 0, &UnschedulableMatchError{
			Section: req.Section,
			Handle:  req.Handle,
			Reason:  "the corresponding acquisition has no resolved start time",
		}
	}
	if acquire.Length == nil {
		return 0, &UnschedulableMatchError{
			Section: req.Section,
			Handle:  req.Handle,
			Reason:  "the corresponding acquisition has no resolved length",
		}
	}

	readout, ok := r.Signals.Lookup(acquire.Signal)
	if !ok {
		return 0, &UnknownSignalError{Section: req.Section, Signal: acquire.Signal}
	}
	readoutClass := readout.EffectiveClass()
	if readoutClass != ClassReadout && readoutClass != ClassCombined {
		return 0, &UnsupportedReadoutError{
			Section: req.Section,
			Signal:  acquire.Signal,
			Class:   readoutClass,
		}
	}

	// End of the readout integration window in readout device samples from
	// the trigger: acquisition start and length, the analyzer's lead time,
	// the signal delay settings, and the total rounded port delay.
	acqStart := float64(*acquire.AbsoluteStart) * r.TinySample
	acqLength := float64(*acquire.Length) * r.TinySample
	readoutEnd := int64(math.Round(
		(acqStart+acqLength+readout.StartDelay+readout.DelaySignal)*readout.SamplingRate,
	)) + TotalRoundedDelaySamples(readout.PortDelays, readout.SamplingRate, readout.SampleMultiple)

	path := PathGlobal
	if req.Local {
		path = PathInternal
	}

	earliest := int64(0)
	for _, signal := range req.Signals {
		generator, ok := r.Signals.Lookup(signal)
		if !ok {
			return 0, &UnknownSignalError{Section: req.Section, Signal: signal}
		}

		arrival, err := r.Model.Latency(generator.EffectiveClass(), readoutClass, path, readoutEnd)
		if err != nil {
			if ue, isUnsupported := err.(*UnsupportedReadoutError); isUnsupported {
				ue.Section = req.Section
				ue.Signal = acquire.Signal
				return 0, ue
			}
			return 0, fmt.Errorf("latency for signal %q in section %q: %w", signal, req.Section, err)
		}

		// Convert the arrival time from sequencer clocks into tinysamples,
		// then shift from trigger time to compiler time by removing the
		// generator's own lead and delay offsets.
		seqPeriod := int64(math.Round(1 / (2 * generator.SequencerRate * r.TinySample)))
		latencyTS := arrival * seqPeriod
		offsetTS := int64(math.Round((generator.StartDelay + generator.DelaySignal) / r.TinySample))

		candidate := CeilToGrid(latencyTS-offsetTS, req.Grid)
		if candidate > earliest {
			earliest = candidate
		}
	}

	if req.ProposedStart > earliest {
		return req.ProposedStart, nil
	}
	return earliest, nil
}

// TotalRoundedDelaySamples sums a set of port delays (seconds), converts
// them to device samples and rounds up to the device granularity. The half
// sample bias before truncation guarantees the true edge is included.
func TotalRoundedDelaySamples(portDelays []float64, samplingRate float64, granularity int) int64 {
	if granularity < 1 {
		granularity = 1
	}
	var delay int64
	for _, d := range portDelays {
		delay += int64(math.Round(d * samplingRate))
	}
	g := int64(granularity)
	return (int64(math.Ceil(float64(delay)/float64(g)+0.5)) - 1) * g
}

// CeilToGrid rounds v up to the next multiple of grid.
func CeilToGrid(v, grid int64) int64 {
	if grid <= 1 {
		return v
	}
	q := v / grid
	if v%grid != 0 && v > 0 {
		q++
	}
	return q * grid
}
