package events

// Event is a single emitted record. Type, Time and ID are present on every
// event; all remaining fields are per-type payload and serialize only when
// set.
//
// Events are built by per-kind constructors in the generator, never by
// merging maps: the payload surface is the closed set of fields below.
type Event struct {
	// Type tags the event kind.
	Type Type `json:"event_type"`

	// Time is the absolute event time in tinysamples from program start.
	Time int64 `json:"time"`

	// ID is unique within one generation call and strictly increasing in
	// emission order. The first allocated id is 1.
	ID int64 `json:"id"`

	// ChainElementID links a paired START event to its END event. It equals
	// the start event's own ID and is present on both events of a pair.
	ChainElementID int64 `json:"chain_element_id,omitempty"`

	// Section / subsection identity.
	SectionName    string `json:"section_name,omitempty"`
	SubsectionName string `json:"subsection_name,omitempty"`

	// Signal identity for playback, acquisition and trigger events.
	Signal string `json:"signal,omitempty"`

	// Trigger line payload (DIGITAL_SIGNAL_STATE_CHANGE).
	Bit    *int   `json:"bit,omitempty"`
	Change string `json:"change,omitempty"`

	// TriggerOutput lists the trigger signals owned by a section, annotated
	// on its SECTION_START and SECTION_END events.
	TriggerOutput []TriggerOutputRef `json:"trigger_output,omitempty"`

	// Loop payload.
	Iterations   int  `json:"iterations,omitempty"`
	Compressed   bool `json:"compressed,omitempty"`
	NestingLevel *int `json:"nesting_level,omitempty"`
	Iteration    *int `json:"iteration,omitempty"`
	NumRepeats   int  `json:"num_repeats,omitempty"`
	Shadow       bool `json:"shadow,omitempty"`

	// Sweep parameter payload (PARAMETER_SET, SET_OSCILLATOR_FREQUENCY_*).
	Parameter *ParameterRef `json:"parameter,omitempty"`
	Value     *float64      `json:"value,omitempty"`

	// Playback payload.
	PlayWaveID               string   `json:"play_wave_id,omitempty"`
	PlayWaveType             string   `json:"play_wave_type,omitempty"`
	Amplitude                *float64 `json:"amplitude,omitempty"`
	Phase                    *float64 `json:"phase,omitempty"`
	AmplitudeParameter       string   `json:"amplitude_parameter,omitempty"`
	Markers                  []Marker `json:"markers,omitempty"`
	OscillatorFrequency      *float64 `json:"oscillator_frequency,omitempty"`
	IncrementOscillatorPhase *float64 `json:"increment_oscillator_phase,omitempty"`
	SetOscillatorPhase       *float64 `json:"set_oscillator_phase,omitempty"`
	PulseParameters          string   `json:"pulse_pulse_parameters,omitempty"`
	PlayParameters           string   `json:"play_pulse_parameters,omitempty"`

	// ParametrizedWith lists, per pulse member, the member's fields that are
	// driven by a sweep parameter instead of a constant. Single-pulse events
	// carry exactly one member entry.
	ParametrizedWith [][]string `json:"parametrized_with,omitempty"`

	// Acquisition payload. The per-member slices are parallel to the member
	// pulse ids in PulseIDs; single acquisitions use the scalar fields above.
	AcquireHandle         string    `json:"acquire_handle,omitempty"`
	AcquisitionType       []string  `json:"acquisition_type,omitempty"`
	PulseIDs              []string  `json:"play_wave_ids,omitempty"`
	Amplitudes            []float64 `json:"amplitudes,omitempty"`
	Phases                []float64 `json:"phases,omitempty"`
	Frequencies           []float64 `json:"oscillator_frequencies,omitempty"`
	MemberPulseParameters []string  `json:"member_pulse_parameters,omitempty"`
	MemberPlayParameters  []string  `json:"member_play_parameters,omitempty"`

	// Real-time branch payload, annotated on a match section's SECTION_START.
	Handle       string `json:"handle,omitempty"`
	Local        *bool  `json:"local,omitempty"`
	UserRegister *int   `json:"user_register,omitempty"`
	PRNGSample   string `json:"prng_sample,omitempty"`

	// State discriminates which branch value a case section's events belong to.
	State *int `json:"state,omitempty"`

	// PRNG payload (PRNG_SETUP, DRAW_PRNG_SAMPLE).
	Range      int    `json:"range,omitempty"`
	Seed       int    `json:"seed,omitempty"`
	SampleName string `json:"sample_name,omitempty"`

	// Oscillator payload.
	DeviceID     string   `json:"device_id,omitempty"`
	OscillatorID string   `json:"oscillator_id,omitempty"`
	Duration     *float64 `json:"duration,omitempty"`
}

// ParameterRef names a sweep parameter.
type ParameterRef struct {
	ID string `json:"id"`
}

// TriggerOutputRef names a trigger signal owned by a section.
type TriggerOutputRef struct {
	SignalID string `json:"signal_id"`
}

// Marker annotates a playback pulse with a digital marker window.
type Marker struct {
	Selector string   `json:"marker_selector"`
	Enable   bool     `json:"enable"`
	Start    *float64 `json:"start,omitempty"`
	Length   *float64 `json:"length,omitempty"`
	PulseID  string   `json:"pulse_id,omitempty"`
}

// Int returns a pointer to v. Convenience for optional int payload fields.
func Int(v int) *int { return &v }

// Int64 returns a pointer to v. Convenience for optional timestamp fields.
func Int64(v int64) *int64 { return &v }

// Float returns a pointer to v. Convenience for optional float payload fields.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v. Convenience for optional bool payload fields.
func Bool(v bool) *bool { return &v }
