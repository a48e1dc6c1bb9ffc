package feedback

// DeviceClass categorizes an instrument's feedback capability.
type DeviceClass string

const (
	// ClassSignal is a pure signal-generation instrument.
	ClassSignal DeviceClass = "signal"
	// ClassReadout is a pure readout/analyzer instrument.
	ClassReadout DeviceClass = "readout"
	// ClassCombined is an instrument combining generation and readout.
	// Combined instruments support the internal feedback path.
	ClassCombined DeviceClass = "combined"
	// ClassLegacyReadout is a previous-generation analyzer without feedback
	// support. The latency model rejects it.
	ClassLegacyReadout DeviceClass = "legacy-readout"
)

// Path selects how a branch decision travels to the generating device.
type Path string

const (
	// PathInternal routes the decision inside one combined instrument.
	PathInternal Path = "internal"
	// PathGlobal routes the decision through the shared synchronization hub.
	PathGlobal Path = "global"
)

// SignalInfo is the per-signal hardware metadata consumed by the resolver.
// Rates are in Hz; delays in seconds; SampleMultiple is the device timing
// granularity in device samples.
type SignalInfo struct {
	DeviceID       string
	Class          DeviceClass
	IsCombined     bool
	SamplingRate   float64
	SequencerRate  float64
	SampleMultiple int
	StartDelay     float64
	DelaySignal    float64
	PortDelays     []float64
}

// EffectiveClass returns the class used for latency lookups: a signal on a
// combined instrument always counts as combined, whatever its nominal class.
func (s *SignalInfo) EffectiveClass() DeviceClass {
	if s.IsCombined {
		return ClassCombined
	}
	return s.Class
}

// SignalTable maps signal ids to their hardware metadata.
type SignalTable map[string]*SignalInfo

// Lookup returns the metadata for a signal id.
func (t SignalTable) Lookup(signal string) (*SignalInfo, bool) {
	info, ok := t[signal]
	return info, ok
}

// AcquiredPulse is one resolved acquisition feeding a handle.
// AbsoluteStart is in tinysamples from program start and is nil while the
// acquisition sits in a context where its start is not yet fixed.
type AcquiredPulse struct {
	Handle        string
	Signal        string
	AbsoluteStart *int64
	Length        *int64
}

// AcquireRegistry indexes resolved acquisitions by handle, most recent last.
type AcquireRegistry map[string][]*AcquiredPulse

// Record appends an acquisition to its handle's history.
func (r AcquireRegistry) Record(p *AcquiredPulse) {
	r[p.Handle] = append(r[p.Handle], p)
}

// Lookup returns the acquisitions bound to a handle, most recent last.
func (r AcquireRegistry) Lookup(handle string) []*AcquiredPulse {
	return r[handle]
}
