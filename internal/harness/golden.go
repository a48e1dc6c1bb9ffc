package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/lumeq/lumeq/internal/events"
)

// RunWithGolden executes a scenario and compares the full canonical event
// list against testdata/{scenario.Name}.golden. Assertion failures from the
// scenario fail the test before the golden comparison.
//
// To regenerate golden files, run the tests with -update.
func RunWithGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("scenario run: %v", err)
	}
	for _, failure := range result.Failures {
		t.Errorf("scenario %s: %s", result.Scenario, failure)
	}

	raw, err := events.MarshalListCanonical(result.List)
	if err != nil {
		t.Fatalf("canonical encoding: %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, scenario.Name, raw)
}
