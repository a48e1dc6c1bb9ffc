package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumeq/lumeq/internal/ir"
	"github.com/lumeq/lumeq/internal/testutil"
)

// acquireNode builds a resolvable acquisition pulse.
func acquireNode(signal, handle string, length int64) *ir.Pulse {
	return testutil.Acquire("ro", signal, "w_int", handle, length)
}

// TestBuildRegistry_AbsoluteStarts accumulates parent offsets down the tree.
func TestBuildRegistry_AbsoluteStarts(t *testing.T) {
	root := testutil.Root(2000,
		testutil.ChildSpan{Start: 100, Node: testutil.Section("ro", 800,
			testutil.ChildSpan{Start: 50, Node: acquireNode("q0/acquire", "q0/result", 400)},
		)},
	)

	reg := BuildRegistry(root)
	pulses := reg.Lookup("q0/result")
	require.Len(t, pulses, 1)
	require.NotNil(t, pulses[0].AbsoluteStart)
	assert.Equal(t, int64(150), *pulses[0].AbsoluteStart)
	assert.Equal(t, int64(400), *pulses[0].Length)
	assert.Equal(t, "q0/acquire", pulses[0].Signal)
}

// TestBuildRegistry_MostRecentLast keeps structural order per handle.
func TestBuildRegistry_MostRecentLast(t *testing.T) {
	root := testutil.Root(2000,
		testutil.ChildSpan{Start: 0, Node: acquireNode("q0/acquire", "q0/result", 400)},
		testutil.ChildSpan{Start: 1000, Node: acquireNode("q0/acquire", "q0/result", 400)},
	)

	pulses := BuildRegistry(root).Lookup("q0/result")
	require.Len(t, pulses, 2)
	assert.Equal(t, int64(0), *pulses[0].AbsoluteStart)
	assert.Equal(t, int64(1000), *pulses[1].AbsoluteStart)
}

// verifyTree builds a program with one acquisition at t=0 and a match at
// the given start, then verifies it against the test resolver's setup.
// The resolved earliest start for this fixture is 240 tinysamples.
func verifyTree(matchStart int64) error {
	match := testutil.Match("m", 400, "q0/result", false,
		testutil.ChildSpan{Start: 0, Node: testutil.Case("m_0", 400, 0)},
	)
	match.Signals = []string{"q0/drive"}

	root := testutil.Root(4000,
		testutil.ChildSpan{Start: 0, Node: acquireNode("q0/acquire", "q0/result", 400)},
		testutil.ChildSpan{Start: matchStart, Node: match},
	)

	r := testResolver()
	r.Acquires = BuildRegistry(root)
	return r.VerifyTree(root)
}

// TestVerifyTree_AcceptsLateEnough passes a match scheduled at or after the
// resolved earliest start.
func TestVerifyTree_AcceptsLateEnough(t *testing.T) {
	assert.NoError(t, verifyTree(240))
	assert.NoError(t, verifyTree(512))
}

// TestVerifyTree_RejectsTooEarly flags a match scheduled before its
// decision can arrive.
func TestVerifyTree_RejectsTooEarly(t *testing.T) {
	err := verifyTree(100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot execute before 240")
}

// TestVerifyTree_IgnoresRegisterMatches skips matches without a handle;
// register and PRNG branches have no acquisition latency.
func TestVerifyTree_IgnoresRegisterMatches(t *testing.T) {
	match := &ir.Match{
		Section: ir.Section{SectionData: ir.SectionData{
			IntervalData: ir.IntervalData{Length: testutil.Length(400)},
			Name:         "m",
		}},
		UserRegister: func() *int { v := 3; return &v }(),
	}
	root := testutil.Root(1000, testutil.ChildSpan{Start: 0, Node: match})

	r := testResolver()
	assert.NoError(t, r.VerifyTree(root))
}
