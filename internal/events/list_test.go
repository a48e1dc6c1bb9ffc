package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFlatten_PreservesChildOrder verifies concatenation order and that
// empty sublists contribute nothing.
func TestFlatten_PreservesChildOrder(t *testing.T) {
	nested := []List{
		{{Type: SectionStart, ID: 1, ChainElementID: 1}},
		nil,
		{{Type: ParameterSet, ID: 2}, {Type: SectionEnd, ID: 3, ChainElementID: 1}},
	}
	flat := Flatten(nested)
	require.Len(t, flat, 3)
	assert.Equal(t, int64(1), flat[0].ID)
	assert.Equal(t, int64(2), flat[1].ID)
	assert.Equal(t, int64(3), flat[2].ID)
}

// TestCheckPairs_Valid accepts a well-formed list with interleaved pairs.
func TestCheckPairs_Valid(t *testing.T) {
	l := List{
		{Type: SectionStart, Time: 0, ID: 1, ChainElementID: 1},
		{Type: PlayStart, Time: 0, ID: 2, ChainElementID: 2},
		{Type: DelayStart, Time: 10, ID: 3, ChainElementID: 3},
		{Type: PlayEnd, Time: 20, ID: 4, ChainElementID: 2},
		{Type: DelayEnd, Time: 30, ID: 5, ChainElementID: 3},
		{Type: SectionEnd, Time: 30, ID: 6, ChainElementID: 1},
	}
	assert.NoError(t, l.CheckPairs())
}

// TestCheckPairs_IDsNotIncreasing rejects duplicate or decreasing ids.
func TestCheckPairs_IDsNotIncreasing(t *testing.T) {
	l := List{
		{Type: ParameterSet, ID: 2},
		{Type: ParameterSet, ID: 2},
	}
	err := l.CheckPairs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strictly increasing")
}

// TestCheckPairs_StartChainMismatch rejects a start whose chain element id
// is not its own id.
func TestCheckPairs_StartChainMismatch(t *testing.T) {
	l := List{
		{Type: SectionStart, ID: 1, ChainElementID: 7},
	}
	err := l.CheckPairs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chain element id")
}

// TestCheckPairs_EndWithoutStart rejects an orphan end event.
func TestCheckPairs_EndWithoutStart(t *testing.T) {
	l := List{
		{Type: SectionEnd, ID: 1, ChainElementID: 99},
	}
	err := l.CheckPairs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end without open start")
}

// TestCheckPairs_UnmatchedStart rejects a start that never closes.
func TestCheckPairs_UnmatchedStart(t *testing.T) {
	l := List{
		{Type: LoopStart, ID: 1, ChainElementID: 1},
	}
	err := l.CheckPairs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmatched")
}

// TestCheckPairs_WrongEndType rejects closing a pair with the wrong type.
func TestCheckPairs_WrongEndType(t *testing.T) {
	l := List{
		{Type: PlayStart, ID: 1, ChainElementID: 1},
		{Type: DelayEnd, ID: 2, ChainElementID: 1},
	}
	err := l.CheckPairs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closes a pair opened as")
}

// TestCheckPairs_EndBeforeStart rejects an end earlier in time than its
// start.
func TestCheckPairs_EndBeforeStart(t *testing.T) {
	l := List{
		{Type: SectionStart, Time: 100, ID: 1, ChainElementID: 1},
		{Type: SectionEnd, Time: 50, ID: 2, ChainElementID: 1},
	}
	err := l.CheckPairs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start time")
}
