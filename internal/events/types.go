package events

// Type identifies the kind of an emitted event.
//
// The enumeration is closed: sequencer code generators dispatch exhaustively
// over it, and adding a value is a breaking change to every consumer.
type Type string

const (
	// Section bracketing.
	SectionStart Type = "SECTION_START"
	SectionEnd   Type = "SECTION_END"

	// Wrappers around direct child sections of a section.
	SubsectionStart Type = "SUBSECTION_START"
	SubsectionEnd   Type = "SUBSECTION_END"

	// Loop structure.
	LoopStart        Type = "LOOP_START"
	LoopEnd          Type = "LOOP_END"
	LoopStepStart    Type = "LOOP_STEP_START"
	LoopStepEnd      Type = "LOOP_STEP_END"
	LoopIterationEnd Type = "LOOP_ITERATION_END"
	ParameterSet     Type = "PARAMETER_SET"

	// Waveform playback and acquisition.
	PlayStart    Type = "PLAY_START"
	PlayEnd      Type = "PLAY_END"
	DelayStart   Type = "DELAY_START"
	DelayEnd     Type = "DELAY_END"
	AcquireStart Type = "ACQUIRE_START"
	AcquireEnd   Type = "ACQUIRE_END"

	// Digital trigger lines.
	DigitalSignalStateChange Type = "DIGITAL_SIGNAL_STATE_CHANGE"

	// Pseudo-random generator lifecycle.
	PRNGSetup      Type = "PRNG_SETUP"
	DropPRNGSetup  Type = "DROP_PRNG_SETUP"
	DrawPRNGSample Type = "DRAW_PRNG_SAMPLE"
	DropPRNGSample Type = "DROP_PRNG_SAMPLE"

	// Oscillator control.
	SetOscillatorFrequencyStart Type = "SET_OSCILLATOR_FREQUENCY_START"
	SetOscillatorFrequencyEnd   Type = "SET_OSCILLATOR_FREQUENCY_END"
	ResetHWOscillatorPhase      Type = "RESET_HW_OSCILLATOR_PHASE"
	ResetSWOscillatorPhase      Type = "RESET_SW_OSCILLATOR_PHASE"

	// Precompensation filters.
	ResetPrecompensationFilters Type = "RESET_PRECOMPENSATION_FILTERS"
)

// pairedStarts maps every paired start type to its end type.
var pairedStarts = map[Type]Type{
	SectionStart:                SectionEnd,
	SubsectionStart:             SubsectionEnd,
	LoopStart:                   LoopEnd,
	LoopStepStart:               LoopStepEnd,
	PlayStart:                   PlayEnd,
	DelayStart:                  DelayEnd,
	AcquireStart:                AcquireEnd,
	PRNGSetup:                   DropPRNGSetup,
	SetOscillatorFrequencyStart: SetOscillatorFrequencyEnd,
}

// PairedEnd returns the end type matching a paired start type.
// The second return value is false for unpaired types.
func PairedEnd(t Type) (Type, bool) {
	end, ok := pairedStarts[t]
	return end, ok
}

// IsPairedStart reports whether t opens a START/END pair.
func IsPairedStart(t Type) bool {
	_, ok := pairedStarts[t]
	return ok
}

// IsPairedEnd reports whether t closes a START/END pair.
func IsPairedEnd(t Type) bool {
	for _, end := range pairedStarts {
		if end == t {
			return true
		}
	}
	return false
}

// Trigger line change directions for DIGITAL_SIGNAL_STATE_CHANGE events.
const (
	TriggerSet   = "SET"
	TriggerClear = "CLEAR"
)

// Play wave types annotated on DELAY events.
const (
	PlayWaveTypeDelay     = "delay"
	PlayWaveTypeEmptyCase = "empty_case"
)

// EmptyCaseDelayID is the play wave id carried by the placeholder delays
// emitted for an empty match branch.
const EmptyCaseDelayID = "EMPTY_MATCH_CASE_DELAY"
