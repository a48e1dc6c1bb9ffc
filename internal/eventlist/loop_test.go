package eventlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumeq/lumeq/internal/events"
	"github.com/lumeq/lumeq/internal/ir"
	"github.com/lumeq/lumeq/internal/testutil"
)

// sweepIteration builds a loop iteration carrying one swept parameter.
func sweepIteration(name string, length int64, iteration int, values []float64) *ir.LoopIteration {
	it := testutil.Iteration(name, length, iteration, 1)
	it.SweepParameters = []*ir.SweepParameter{{UID: "amp_sweep", Values: values}}
	return it
}

// TestEmitLoop_Unrolled emits every explicit iteration, with the terminal
// iteration marker after the first iteration only.
func TestEmitLoop_Unrolled(t *testing.T) {
	values := []float64{1.5, 2.5}
	loop := testutil.Loop("sweep", 200, 2, false,
		testutil.ChildSpan{Start: 0, Node: sweepIteration("sweep", 100, 0, values)},
		testutil.ChildSpan{Start: 100, Node: sweepIteration("sweep", 100, 1, values)},
	)
	root := testutil.Root(200, testutil.ChildSpan{Start: 0, Node: loop})

	list := generate(t, root, Options{})
	assert.Equal(t, []events.Type{
		events.SectionStart,
		events.LoopStart,
		events.LoopStepStart, events.ParameterSet, events.LoopStepEnd, events.LoopIterationEnd,
		events.LoopStepStart, events.ParameterSet, events.LoopStepEnd,
		events.LoopEnd,
		events.SectionEnd,
	}, eventTypes(list))

	loopStart := list[1]
	assert.Equal(t, 2, loopStart.Iterations)
	assert.False(t, loopStart.Compressed)

	// Parameter values resolve per iteration index.
	first, second := list[3], list[7]
	require.NotNil(t, first.Parameter)
	assert.Equal(t, "amp_sweep", first.Parameter.ID)
	assert.Equal(t, 1.5, *first.Value)
	assert.Equal(t, 2.5, *second.Value)
	assert.Equal(t, 0, *first.Iteration)
	assert.Equal(t, 1, *second.Iteration)

	// Second iteration starts at its child offset.
	assert.Equal(t, int64(100), list[6].Time)
	assert.NoError(t, list.CheckPairs())
}

// TestEmitLoop_IterationEndOnlyOnce verifies exactly one LOOP_ITERATION_END
// per loop however many iterations run.
func TestEmitLoop_IterationEndOnlyOnce(t *testing.T) {
	values := []float64{1, 2, 3}
	loop := testutil.Loop("sweep", 300, 3, false,
		testutil.ChildSpan{Start: 0, Node: sweepIteration("sweep", 100, 0, values)},
		testutil.ChildSpan{Start: 100, Node: sweepIteration("sweep", 100, 1, values)},
		testutil.ChildSpan{Start: 200, Node: sweepIteration("sweep", 100, 2, values)},
	)
	root := testutil.Root(300, testutil.ChildSpan{Start: 0, Node: loop})

	list := generate(t, root, Options{})
	markers := 0
	for _, e := range list {
		if e.Type == events.LoopIterationEnd {
			markers++
		}
	}
	assert.Equal(t, 1, markers)
}

// TestEmitLoop_CompressedNotExpanded emits only the prototype iteration and
// tags its terminal marker compressed.
func TestEmitLoop_CompressedNotExpanded(t *testing.T) {
	loop := testutil.Loop("shots", 300, 3, true,
		testutil.ChildSpan{Start: 0, Node: sweepIteration("shots", 100, 0, []float64{1, 2, 3})},
	)
	root := testutil.Root(300, testutil.ChildSpan{Start: 0, Node: loop})

	list := generate(t, root, Options{ExpandLoops: false})
	assert.Equal(t, []events.Type{
		events.SectionStart,
		events.LoopStart,
		events.LoopStepStart, events.ParameterSet, events.LoopStepEnd, events.LoopIterationEnd,
		events.LoopEnd,
		events.SectionEnd,
	}, eventTypes(list))

	assert.True(t, list[1].Compressed)
	assert.True(t, list[5].Compressed, "terminal marker records the compression")
	for _, e := range list {
		assert.False(t, e.Shadow)
	}
}

// TestEmitLoop_CompressedExpanded replicates the prototype into shadow
// iterations at increasing starts.
func TestEmitLoop_CompressedExpanded(t *testing.T) {
	loop := testutil.Loop("shots", 300, 3, true,
		testutil.ChildSpan{Start: 0, Node: sweepIteration("shots", 100, 0, []float64{1, 2, 3})},
	)
	root := testutil.Root(300, testutil.ChildSpan{Start: 0, Node: loop})

	list := generate(t, root, Options{ExpandLoops: true})
	assert.Equal(t, []events.Type{
		events.SectionStart,
		events.LoopStart,
		events.LoopStepStart, events.ParameterSet, events.LoopStepEnd, events.LoopIterationEnd,
		events.LoopStepStart, events.ParameterSet, events.LoopStepEnd,
		events.LoopStepStart, events.ParameterSet, events.LoopStepEnd,
		events.LoopEnd,
		events.SectionEnd,
	}, eventTypes(list))

	// Prototype is not a shadow; replicas are.
	for i, e := range list[2:6] {
		assert.False(t, e.Shadow, "prototype event %d", i)
	}
	for i, e := range list[6:12] {
		assert.True(t, e.Shadow, "shadow event %d", i)
	}

	// Shadow starts advance by the prototype length.
	assert.Equal(t, int64(0), list[2].Time)
	assert.Equal(t, int64(100), list[6].Time)
	assert.Equal(t, int64(200), list[9].Time)

	// Shadow iterations resolve their own parameter values.
	assert.Equal(t, 2.0, *list[7].Value)
	assert.Equal(t, 3.0, *list[10].Value)

	assert.NoError(t, list.CheckPairs())
}

// TestEmitLoop_ShadowExpansionTruncates stops replicating once the budget
// runs out, keeping the prototype intact.
func TestEmitLoop_ShadowExpansionTruncates(t *testing.T) {
	loop := testutil.Loop("shots", 400, 4, true,
		testutil.ChildSpan{Start: 0, Node: sweepIteration("shots", 100, 0, []float64{1, 2, 3, 4})},
	)
	root := testutil.Root(400, testutil.ChildSpan{Start: 0, Node: loop})

	// 12 units: 6 structural, 5 for the prototype, leaving room for exactly
	// one shadow before exhaustion.
	list := generate(t, root, Options{ExpandLoops: true, MaxEvents: 12})

	shadows := 0
	for _, e := range list {
		if e.Type == events.LoopStepStart && e.Shadow {
			shadows++
		}
	}
	assert.Equal(t, 1, shadows)
	assert.NoError(t, list.CheckPairs())
}

// TestEmitLoop_NestingLevels increments the nesting level of inner loop
// events once per enclosing loop.
func TestEmitLoop_NestingLevels(t *testing.T) {
	inner := testutil.Loop("inner", 100, 1, false,
		testutil.ChildSpan{Start: 0, Node: testutil.Iteration("inner", 100, 0, 1)},
	)
	outer := testutil.Loop("outer", 100, 1, false,
		testutil.ChildSpan{Start: 0, Node: testutil.Iteration("outer", 100, 0, 1,
			testutil.ChildSpan{Start: 0, Node: inner})},
	)
	root := testutil.Root(100, testutil.ChildSpan{Start: 0, Node: outer})

	list := generate(t, root, Options{})
	levels := map[string]int{}
	for _, e := range list {
		if e.Type == events.LoopStart {
			levels[e.SectionName] = *e.NestingLevel
		}
	}
	assert.Equal(t, 0, levels["outer"])
	assert.Equal(t, 1, levels["inner"])
}

// TestEmitLoopIteration_SweepValueMissing fails when an iteration index
// exceeds the parameter's value list.
func TestEmitLoopIteration_SweepValueMissing(t *testing.T) {
	loop := testutil.Loop("sweep", 200, 2, false,
		testutil.ChildSpan{Start: 0, Node: sweepIteration("sweep", 100, 0, []float64{1})},
		testutil.ChildSpan{Start: 100, Node: sweepIteration("sweep", 100, 1, []float64{1})},
	)
	root := testutil.Root(200, testutil.ChildSpan{Start: 0, Node: loop})

	_, err := Generate(root, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iteration 1 requested")
}

// TestEmitLoop_PRNGSample draws and drops the iteration's sample around its
// children.
func TestEmitLoop_PRNGSample(t *testing.T) {
	it := testutil.Iteration("rng", 100, 0, 1)
	it.PRNGSample = "seed_a"
	loop := testutil.Loop("rng", 100, 1, false, testutil.ChildSpan{Start: 0, Node: it})
	root := testutil.Root(100, testutil.ChildSpan{Start: 0, Node: loop})

	list := generate(t, root, Options{})
	assert.Equal(t, []events.Type{
		events.SectionStart,
		events.LoopStart,
		events.LoopStepStart,
		events.DrawPRNGSample,
		events.LoopStepEnd,
		events.DropPRNGSample,
		events.LoopIterationEnd,
		events.LoopEnd,
		events.SectionEnd,
	}, eventTypes(list))
	assert.Equal(t, "seed_a", list[3].SampleName)
	assert.Equal(t, "seed_a", list[5].SampleName)
}
