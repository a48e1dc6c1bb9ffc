package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario: a program, the generation
// options to run it with, and assertions over the emitted event list.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden
	// file when the scenario runs under RunWithGolden.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Program is the path to the program YAML, relative to the scenario
	// file location.
	Program string `yaml:"program"`

	// Options configures the generation run.
	Options ScenarioOptions `yaml:"options,omitempty"`

	// Assertions validate the emitted event list.
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// dir is the scenario file's directory, for resolving Program.
	dir string
}

// ScenarioOptions mirrors the generation options expressible in YAML.
type ScenarioOptions struct {
	Start       int64 `yaml:"start,omitempty"`
	MaxEvents   int   `yaml:"max_events,omitempty"`
	ExpandLoops bool  `yaml:"expand_loops,omitempty"`
}

// Assertion is one check against the emitted event list.
type Assertion struct {
	// Type selects the assertion:
	//   - "event_count": the list has exactly Count events
	//   - "contains": some event matches EventType and the set fields
	//   - "order": the EventTypes appear in this relative order
	//   - "type_count": exactly Count events have EventType
	//   - "paired": ids increase strictly and START/END chains pair up
	Type string `yaml:"type"`

	// EventType is the event type to look for (contains, type_count).
	EventType string `yaml:"event_type,omitempty"`

	// EventTypes is the expected relative order (order).
	EventTypes []string `yaml:"event_types,omitempty"`

	// Count is the expected count (event_count, type_count).
	Count int `yaml:"count,omitempty"`

	// Section restricts contains to events of this section.
	Section string `yaml:"section,omitempty"`

	// Signal restricts contains to events on this signal.
	Signal string `yaml:"signal,omitempty"`

	// Time restricts contains to events at this timestamp. Nil matches
	// any time.
	Time *int64 `yaml:"time,omitempty"`
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s has no name", path)
	}
	if s.Program == "" {
		return nil, fmt.Errorf("scenario %q names no program", s.Name)
	}
	s.dir = filepath.Dir(path)
	return &s, nil
}

// ProgramPath returns the scenario's program path resolved against the
// scenario file's directory.
func (s *Scenario) ProgramPath() string {
	if filepath.IsAbs(s.Program) || s.dir == "" {
		return s.Program
	}
	return filepath.Join(s.dir, s.Program)
}
