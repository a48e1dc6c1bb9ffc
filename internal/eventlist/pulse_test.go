package eventlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumeq/lumeq/internal/events"
	"github.com/lumeq/lumeq/internal/ir"
	"github.com/lumeq/lumeq/internal/testutil"
)

// TestEmitPulse_Play emits a chained PLAY pair with the waveform id.
func TestEmitPulse_Play(t *testing.T) {
	play := testutil.Play("s", "q0/drive", "w_pi_half", 32)
	play.Amplitude = events.Float(0.75)
	play.Phase = events.Float(1.5707963267948966)
	root := testutil.Root(100, testutil.ChildSpan{Start: 0, Node: testutil.Section("s", 100,
		testutil.ChildSpan{Start: 16, Node: play})})

	list := generate(t, root, Options{})
	require.Len(t, list, 4)

	start, end := list[1], list[2]
	assert.Equal(t, events.PlayStart, start.Type)
	assert.Equal(t, events.PlayEnd, end.Type)
	assert.Equal(t, "w_pi_half", start.PlayWaveID)
	assert.Equal(t, "q0/drive", start.Signal)
	assert.Equal(t, 0.75, *start.Amplitude)
	assert.Equal(t, start.ID, end.ChainElementID)
	assert.Equal(t, [][]string{{}}, start.ParametrizedWith)

	// Start at node start, end after the pulse length.
	assert.Equal(t, int64(16), start.Time)
	assert.Equal(t, int64(48), end.Time)
}

// TestEmitPulse_OffsetShiftsStartOnly verifies the intra-node offset moves
// the START but the END stays at the node's full extent.
func TestEmitPulse_OffsetShiftsStartOnly(t *testing.T) {
	play := testutil.Play("s", "q0/drive", "w0", 32)
	play.Offset = 8
	root := testutil.Root(100, testutil.ChildSpan{Start: 0, Node: testutil.Section("s", 100,
		testutil.ChildSpan{Start: 0, Node: play})})

	list := generate(t, root, Options{})
	assert.Equal(t, int64(8), list[1].Time)
	assert.Equal(t, int64(32), list[2].Time)
}

// TestEmitPulse_Delay emits a DELAY pair with the placeholder wave id for a
// pulse without a waveform.
func TestEmitPulse_Delay(t *testing.T) {
	root := testutil.Root(100, testutil.ChildSpan{Start: 0, Node: testutil.Section("s", 100,
		testutil.ChildSpan{Start: 0, Node: testutil.Delay("s", "q0/drive", 24)})})

	list := generate(t, root, Options{})
	start := list[1]
	assert.Equal(t, events.DelayStart, start.Type)
	assert.Equal(t, "delay", start.PlayWaveID)
	assert.Equal(t, events.PlayWaveTypeDelay, start.PlayWaveType)
	assert.Equal(t, events.DelayEnd, list[2].Type)
}

// TestEmitPulse_Acquire emits an ACQUIRE pair carrying the handle and the
// acquisition kind.
func TestEmitPulse_Acquire(t *testing.T) {
	root := testutil.Root(100, testutil.ChildSpan{Start: 0, Node: testutil.Section("ro", 100,
		testutil.ChildSpan{Start: 0, Node: testutil.Acquire("ro", "q0/acquire", "w_i", "q0/result", 64)})})

	list := generate(t, root, Options{})
	start := list[1]
	assert.Equal(t, events.AcquireStart, start.Type)
	assert.Equal(t, "q0/result", start.AcquireHandle)
	assert.Equal(t, []string{"integration"}, start.AcquisitionType)
	assert.Equal(t, events.AcquireEnd, list[2].Type)
	// The END carries no acquisition payload.
	assert.Empty(t, list[2].AcquireHandle)
}

// TestEmitPulse_ParametrizedWith lists the sweep-driven fields in canonical
// order.
func TestEmitPulse_ParametrizedWith(t *testing.T) {
	play := testutil.Play("s", "q0/drive", "w0", 32)
	play.Parametrized = ir.Parametrized{Amplitude: "amp_p", Length: "len_p"}
	root := testutil.Root(100, testutil.ChildSpan{Start: 0, Node: testutil.Section("s", 100,
		testutil.ChildSpan{Start: 0, Node: play})})

	list := generate(t, root, Options{})
	assert.Equal(t, [][]string{{"len_p", "amp_p"}}, list[1].ParametrizedWith)
	assert.Equal(t, "amp_p", list[1].AmplitudeParameter)
}

// TestEmitPulse_EncodedParameters serializes pulse-shaping parameters
// canonically, with sorted keys.
func TestEmitPulse_EncodedParameters(t *testing.T) {
	play := testutil.Play("s", "q0/drive", "w0", 32)
	play.PulseParameters = map[string]any{"sigma": 0.25, "order": 2}
	root := testutil.Root(100, testutil.ChildSpan{Start: 0, Node: testutil.Section("s", 100,
		testutil.ChildSpan{Start: 0, Node: play})})

	list := generate(t, root, Options{})
	assert.Equal(t, `{"order":2,"sigma":0.25}`, list[1].PulseParameters)
}

// TestEmitAcquireGroup emits one pair for the whole batch with parallel
// member payloads.
func TestEmitAcquireGroup(t *testing.T) {
	member := func(waveform string) *ir.Pulse {
		return testutil.Acquire("ro", "q0/acquire", waveform, "q0/result", 64)
	}
	group := &ir.AcquireGroup{
		IntervalData: ir.IntervalData{Length: testutil.Length(64)},
		SectionName:  "ro",
		Pulses:       []*ir.Pulse{member("w_i"), member("w_q")},
		Amplitudes:   []float64{1.0, 0.5},
		Phases:       []float64{0, 0.25},
		Frequencies:  []float64{5.1e9, 5.2e9},
	}
	root := testutil.Root(100, testutil.ChildSpan{Start: 0, Node: testutil.Section("ro", 100,
		testutil.ChildSpan{Start: 0, Node: group})})

	list := generate(t, root, Options{})
	require.Len(t, list, 4)

	start, end := list[1], list[2]
	assert.Equal(t, events.AcquireStart, start.Type)
	assert.Equal(t, events.AcquireEnd, end.Type)
	assert.Equal(t, []string{"w_i", "w_q"}, start.PulseIDs)
	assert.Equal(t, []float64{1.0, 0.5}, start.Amplitudes)
	assert.Equal(t, []float64{5.1e9, 5.2e9}, start.Frequencies)
	assert.Equal(t, "q0/result", start.AcquireHandle)
	assert.Equal(t, start.PulseIDs, end.PulseIDs, "both events carry the member payload")
	assert.Equal(t, start.ID, end.ChainElementID)
}

// TestEmitAcquireGroup_InconsistentMembersFatal aborts on mixed signals or
// handles instead of emitting.
func TestEmitAcquireGroup_InconsistentMembersFatal(t *testing.T) {
	group := &ir.AcquireGroup{
		IntervalData: ir.IntervalData{Length: testutil.Length(64)},
		SectionName:  "ro",
		Pulses: []*ir.Pulse{
			testutil.Acquire("ro", "q0/acquire", "w_i", "q0/result", 64),
			testutil.Acquire("ro", "q1/acquire", "w_q", "q0/result", 64),
		},
		Amplitudes:  []float64{1, 1},
		Phases:      []float64{0, 0},
		Frequencies: []float64{0, 0},
	}
	root := testutil.Root(100, testutil.ChildSpan{Start: 0, Node: testutil.Section("ro", 100,
		testutil.ChildSpan{Start: 0, Node: group})})

	list, err := Generate(root, Options{})
	require.Error(t, err)
	assert.True(t, IsAcquireGroupError(err))
	assert.Nil(t, list)
}

// TestEmitOscillatorFrequencyStep emits one chained pair per step with the
// oscillator identity.
func TestEmitOscillatorFrequencyStep(t *testing.T) {
	step := &ir.OscillatorFrequencyStep{
		IntervalData: ir.IntervalData{Length: testutil.Length(16)},
		SectionName:  "sweep",
		Iteration:    2,
		Steps: []ir.OscillatorStep{
			{Parameter: "freq_p", Value: 5.0e9, Oscillator: ir.Oscillator{Device: "dev_sg", Signal: "q0/drive", ID: "osc0"}},
			{Parameter: "freq_p2", Value: 6.5e9, Oscillator: ir.Oscillator{Device: "dev_sg", Signal: "q1/drive", ID: "osc1"}},
		},
	}
	root := testutil.Root(100, testutil.ChildSpan{Start: 0, Node: testutil.Section("sweep", 100,
		testutil.ChildSpan{Start: 0, Node: step})})

	list := generate(t, root, Options{})
	require.Len(t, list, 6)

	first := list[1]
	assert.Equal(t, events.SetOscillatorFrequencyStart, first.Type)
	assert.Equal(t, "freq_p", first.Parameter.ID)
	assert.Equal(t, 5.0e9, *first.Value)
	assert.Equal(t, "dev_sg", first.DeviceID)
	assert.Equal(t, "osc0", first.OscillatorID)
	assert.Equal(t, 2, *first.Iteration)
	assert.Equal(t, events.SetOscillatorFrequencyEnd, list[2].Type)
	assert.Equal(t, first.ID, list[2].ChainElementID)
	assert.NoError(t, list.CheckPairs())
}

// TestEmitPhaseReset emits per-device hardware resets plus one optional
// software reset.
func TestEmitPhaseReset(t *testing.T) {
	reset := &ir.PhaseReset{
		IntervalData: ir.IntervalData{Length: testutil.Length(80)},
		SectionName:  "init",
		HWOscillators: []ir.HWOscillatorReset{
			{Device: "dev_a", Duration: 40e-9},
			{Device: "dev_b", Duration: 40e-9},
		},
		ResetSWOscillators: true,
	}
	root := testutil.Root(100, testutil.ChildSpan{Start: 0, Node: testutil.Section("init", 100,
		testutil.ChildSpan{Start: 0, Node: reset})})

	list := generate(t, root, Options{})
	assert.Equal(t, []events.Type{
		events.SectionStart,
		events.ResetHWOscillatorPhase,
		events.ResetHWOscillatorPhase,
		events.ResetSWOscillatorPhase,
		events.SectionEnd,
	}, eventTypes(list))
	assert.Equal(t, "dev_a", list[1].DeviceID)
	assert.Equal(t, 40e-9, *list[1].Duration)
}

// TestEmitPrecompClear emits the single filter reset event.
func TestEmitPrecompClear(t *testing.T) {
	clear := &ir.PrecompClear{
		IntervalData: ir.IntervalData{Length: testutil.Length(16)},
		SectionName:  "init",
		Signal:       "q0/flux",
	}
	root := testutil.Root(100, testutil.ChildSpan{Start: 0, Node: testutil.Section("init", 100,
		testutil.ChildSpan{Start: 0, Node: clear})})

	list := generate(t, root, Options{})
	require.Len(t, list, 3)
	assert.Equal(t, events.ResetPrecompensationFilters, list[1].Type)
	assert.Equal(t, "q0/flux", list[1].Signal)
}
