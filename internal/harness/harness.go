package harness

import (
	"fmt"

	"github.com/lumeq/lumeq/internal/cli"
	"github.com/lumeq/lumeq/internal/eventlist"
	"github.com/lumeq/lumeq/internal/events"
	"github.com/lumeq/lumeq/internal/ir"
)

// Result is the outcome of one scenario run.
type Result struct {
	// Scenario is the executed scenario's name.
	Scenario string

	// List is the emitted event list.
	List events.List

	// Hash is the domain-separated hash of the list.
	Hash string

	// Failures collects assertion failure messages. Empty means the
	// scenario passed.
	Failures []string
}

// Passed reports whether every assertion held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Run loads the scenario's program, validates it, generates the event list
// with the scenario's options and evaluates all assertions.
//
// A structural defect in the program or a generation error fails the run
// itself rather than an assertion; assertions only see a produced list.
func Run(scenario *Scenario) (*Result, error) {
	_, root, err := cli.LoadProgram(scenario.ProgramPath())
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	if errs := ir.Validate(root); len(errs) > 0 {
		return nil, fmt.Errorf("scenario %q: invalid program: %v", scenario.Name, errs[0])
	}

	list, err := eventlist.Generate(root, eventlist.Options{
		Start:       scenario.Options.Start,
		MaxEvents:   scenario.Options.MaxEvents,
		ExpandLoops: scenario.Options.ExpandLoops,
		Settings:    eventlist.DefaultSettings(),
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	hash, err := events.HashList(list)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	result := &Result{Scenario: scenario.Name, List: list, Hash: hash}
	for i, a := range scenario.Assertions {
		if msg := evaluate(&a, list); msg != "" {
			result.Failures = append(result.Failures, fmt.Sprintf("assertion[%d] %s: %s", i, a.Type, msg))
		}
	}
	return result, nil
}
