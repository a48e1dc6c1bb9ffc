package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPairedEnd_KnownPairs verifies the start-to-end mapping for every
// paired type.
func TestPairedEnd_KnownPairs(t *testing.T) {
	pairs := map[Type]Type{
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
	for start, want := range pairs {
		end, ok := PairedEnd(start)
		assert.True(t, ok, "%s should be a paired start", start)
		assert.Equal(t, want, end)
		assert.True(t, IsPairedStart(start))
		assert.True(t, IsPairedEnd(end))
	}
}

// TestPairedEnd_UnpairedTypes verifies point events are not paired.
func TestPairedEnd_UnpairedTypes(t *testing.T) {
	for _, typ := range []Type{
		LoopIterationEnd,
		ParameterSet,
		DigitalSignalStateChange,
		DrawPRNGSample,
		DropPRNGSample,
		ResetHWOscillatorPhase,
		ResetSWOscillatorPhase,
		ResetPrecompensationFilters,
	} {
		_, ok := PairedEnd(typ)
		assert.False(t, ok, "%s should not be a paired start", typ)
		assert.False(t, IsPairedStart(typ), "%s", typ)
	}

	// LOOP_ITERATION_END is a point marker despite the name.
	assert.False(t, IsPairedEnd(LoopIterationEnd))
}
