package ir

// Root is the top of a program tree. It has no wrapping events of its own;
// its children carry the program.
type Root struct {
	IntervalData
}

// Section is a named interval of the program, the basic structural unit.
type Section struct {
	SectionData
}

// Loop is a repeated section. If Compressed, only the prototype iteration
// (index 0) is physically present as a child; otherwise all iterations exist
// as explicit children.
type Loop struct {
	SectionData
	Iterations int
	Compressed bool
}

// LoopIteration is one iteration of a loop body. Shadow iterations are
// derived copies of the prototype at shifted start times; they never exist
// in the scheduler-produced tree.
type LoopIteration struct {
	SectionData
	Iteration       int
	NumRepeats      int
	SweepParameters []*SweepParameter
	PRNGSample      string
	Shadow          bool
}

// ShadowIteration derives the shadow copy of a prototype iteration for the
// given iteration index. The prototype is left untouched; the shadow shares
// the prototype's subtree (read-only) and differs only in iteration index
// and shadow tag.
func (it *LoopIteration) ShadowIteration(iteration int) *LoopIteration {
	shadow := *it
	shadow.Iteration = iteration
	shadow.Shadow = true
	return &shadow
}

// Match is a section whose single executed child is selected at runtime by a
// real-time condition: an acquisition result (Handle), a user register value
// or a PRNG sample. Exactly one selector is set.
type Match struct {
	Section
	Handle       string
	Local        bool
	UserRegister *int
	PRNGSample   string

	// Grid is the execution granularity of the branch decision in
	// tinysamples; the resolved branch start is ceiling-rounded to it.
	Grid int64
}

// Case is one branch of a Match, discriminated by the branch value State.
type Case struct {
	Section
	State int
}

// EmptyBranch is a Case with no programmed playback. It still occupies every
// participating signal for the branch length so that all branches of the
// enclosing Match align.
type EmptyBranch struct {
	Case
}

// Pulse is a single play, delay or acquire operation on one signal.
// A nil Def makes it a delay; IsAcquire makes it an acquisition.
type Pulse struct {
	IntervalData
	SectionName string
	Signal      string
	Offset      int64

	Def           *PulseDef
	IsAcquire     bool
	AcquireParams *AcquireParams

	Amplitude           *float64
	Phase               *float64
	OscillatorFrequency *float64

	IncrementOscillatorPhase *float64
	SetOscillatorPhase       *float64

	Markers      []Marker
	Parametrized Parametrized

	// Encoded pulse-shaping parameters, keyed by parameter name.
	PulseParameters map[string]any
	PlayParameters  map[string]any
}

// AcquireGroup is a batch of simultaneous acquisitions on one signal that
// share a handle and acquisition kind. The per-member slices are parallel to
// Pulses.
type AcquireGroup struct {
	IntervalData
	SectionName string
	Offset      int64

	Pulses      []*Pulse
	Amplitudes  []float64
	Phases      []float64
	Frequencies []float64

	PulseParameters []map[string]any
	PlayParameters  []map[string]any
}

// OscillatorFrequencyStep sets oscillator frequencies for one sweep
// iteration, one step per (parameter, oscillator, value) triple.
type OscillatorFrequencyStep struct {
	IntervalData
	SectionName string
	Iteration   int
	Steps       []OscillatorStep
}

// OscillatorStep is one (parameter, oscillator, value) assignment.
type OscillatorStep struct {
	Parameter  string
	Oscillator Oscillator
	Value      float64
}

// PhaseReset requests hardware oscillator phase resets on a set of devices,
// optionally also resetting software oscillators.
type PhaseReset struct {
	IntervalData
	SectionName        string
	HWOscillators      []HWOscillatorReset
	ResetSWOscillators bool
}

// HWOscillatorReset is one device requiring a hardware phase reset of the
// given duration.
type HWOscillatorReset struct {
	Device   string
	Duration float64
}

// Reserve occupies a signal's timeline without emitting anything.
type Reserve struct {
	IntervalData
	Signal string
}

// PrecompClear resets the precompensation filters on a signal.
type PrecompClear struct {
	IntervalData
	SectionName string
	Signal      string
}
