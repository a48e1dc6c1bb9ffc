// Package harness provides conformance testing for event-list generation.
//
// The harness loads YAML scenarios that pair a program file with generation
// options and assertions over the resulting event list. Scenarios are the
// executable contract for emission behavior: ordering, pairing, truncation
// and loop expansion are all expressed as assertions rather than ad-hoc
// test code.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	program: path/to/program.yaml
//	options:
//	  start: 0
//	  max_events: 100
//	  expand_loops: true
//	assertions:
//	  - type: event_count
//	    count: 12
//	  - type: contains
//	    event_type: SECTION_START
//	    section: excite
//	  - type: order
//	    event_types: [SECTION_START, PLAY_START, PLAY_END, SECTION_END]
//	  - type: type_count
//	    event_type: LOOP_STEP_START
//	    count: 3
//	  - type: paired
//
// The program path is resolved relative to the scenario file. Golden
// comparison of the full canonical event list is available separately via
// RunWithGolden.
package harness
