package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/lumeq/lumeq/internal/feedback"
	"github.com/lumeq/lumeq/internal/ir"
)

// Program is a fully-timed experiment program loaded from YAML. Lengths and
// child start offsets must already be resolved by an external scheduler; the
// loader performs no timing of its own.
type Program struct {
	Name string   `yaml:"name"`
	Root *NodeDoc `yaml:"root"`
}

// SpanDoc is one child with its start offset relative to the parent.
type SpanDoc struct {
	Start int64    `yaml:"start"`
	Node  *NodeDoc `yaml:"node"`
}

// NodeDoc is the YAML form of one IR node. Kind selects the variant; the
// remaining fields apply per kind.
type NodeDoc struct {
	Kind     string    `yaml:"kind"`
	Name     string    `yaml:"name,omitempty"`
	Length   *int64    `yaml:"length"`
	Signals  []string  `yaml:"signals,omitempty"`
	Children []SpanDoc `yaml:"children,omitempty"`

	// section
	Triggers []TriggerDoc `yaml:"triggers,omitempty"`
	PRNG     *PRNGDoc     `yaml:"prng,omitempty"`

	// loop
	Iterations int  `yaml:"iterations,omitempty"`
	Compressed bool `yaml:"compressed,omitempty"`

	// iteration
	Iteration  int        `yaml:"iteration,omitempty"`
	NumRepeats int        `yaml:"num_repeats,omitempty"`
	Parameters []ParamDoc `yaml:"parameters,omitempty"`
	PRNGSample string     `yaml:"prng_sample,omitempty"`

	// match / case
	Handle       string `yaml:"handle,omitempty"`
	Local        bool   `yaml:"local,omitempty"`
	UserRegister *int   `yaml:"user_register,omitempty"`
	Grid         int64  `yaml:"grid,omitempty"`
	State        int    `yaml:"state,omitempty"`

	// play / delay / acquire
	Signal    string   `yaml:"signal,omitempty"`
	Waveform  string   `yaml:"waveform,omitempty"`
	Offset    int64    `yaml:"offset,omitempty"`
	Amplitude *float64 `yaml:"amplitude,omitempty"`
	Phase     *float64 `yaml:"phase,omitempty"`

	// phase_reset
	HWOscillators []HWOscDoc `yaml:"hw_oscillators,omitempty"`
	ResetSW       bool       `yaml:"reset_sw,omitempty"`
}

// TriggerDoc names a digital trigger line.
type TriggerDoc struct {
	Signal string `yaml:"signal"`
	Bit    int    `yaml:"bit"`
}

// PRNGDoc configures a section PRNG.
type PRNGDoc struct {
	Range int `yaml:"range"`
	Seed  int `yaml:"seed"`
}

// ParamDoc is a swept parameter with per-iteration values.
type ParamDoc struct {
	UID    string    `yaml:"uid"`
	Values []float64 `yaml:"values"`
}

// HWOscDoc is one device requiring a hardware phase reset.
type HWOscDoc struct {
	Device   string  `yaml:"device"`
	Duration float64 `yaml:"duration"`
}

// LoadProgram reads and converts a YAML program file into an IR tree.
func LoadProgram(path string) (string, ir.Node, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read program: %w", err)
	}
	var doc Program
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return "", nil, fmt.Errorf("parse program: %w", err)
	}
	if doc.Root == nil {
		return "", nil, fmt.Errorf("program %q has no root", path)
	}
	root, err := convertNode(doc.Root, "root")
	if err != nil {
		return "", nil, err
	}
	return doc.Name, root, nil
}

func convertChildren(doc *NodeDoc, path string) (ir.IntervalData, error) {
	iv := ir.IntervalData{Length: doc.Length, Signals: doc.Signals}
	for i, span := range doc.Children {
		if span.Node == nil {
			return iv, fmt.Errorf("%s.children[%d]: missing node", path, i)
		}
		child, err := convertNode(span.Node, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return iv, err
		}
		iv.Children = append(iv.Children, child)
		iv.ChildStarts = append(iv.ChildStarts, span.Start)
	}
	return iv, nil
}

func sectionData(doc *NodeDoc, path string) (ir.SectionData, error) {
	iv, err := convertChildren(doc, path)
	if err != nil {
		return ir.SectionData{}, err
	}
	sec := ir.SectionData{IntervalData: iv, Name: doc.Name}
	for _, t := range doc.Triggers {
		sec.TriggerOutput = append(sec.TriggerOutput, ir.TriggerSignal{Signal: t.Signal, Bit: t.Bit})
	}
	if doc.PRNG != nil {
		sec.PRNG = &ir.PRNGSetup{Range: doc.PRNG.Range, Seed: doc.PRNG.Seed}
	}
	return sec, nil
}

func convertNode(doc *NodeDoc, path string) (ir.Node, error) {
	switch doc.Kind {
	case "root":
		iv, err := convertChildren(doc, path)
		if err != nil {
			return nil, err
		}
		return &ir.Root{IntervalData: iv}, nil

	case "section":
		sec, err := sectionData(doc, path)
		if err != nil {
			return nil, err
		}
		return &ir.Section{SectionData: sec}, nil

	case "loop":
		sec, err := sectionData(doc, path)
		if err != nil {
			return nil, err
		}
		return &ir.Loop{SectionData: sec, Iterations: doc.Iterations, Compressed: doc.Compressed}, nil

	case "iteration":
		sec, err := sectionData(doc, path)
		if err != nil {
			return nil, err
		}
		it := &ir.LoopIteration{
			SectionData: sec,
			Iteration:   doc.Iteration,
			NumRepeats:  doc.NumRepeats,
			PRNGSample:  doc.PRNGSample,
		}
		for _, p := range doc.Parameters {
			it.SweepParameters = append(it.SweepParameters, &ir.SweepParameter{UID: p.UID, Values: p.Values})
		}
		return it, nil

	case "match":
		sec, err := sectionData(doc, path)
		if err != nil {
			return nil, err
		}
		return &ir.Match{
			Section:      ir.Section{SectionData: sec},
			Handle:       doc.Handle,
			Local:        doc.Local,
			UserRegister: doc.UserRegister,
			PRNGSample:   doc.PRNGSample,
			Grid:         doc.Grid,
		}, nil

	case "case":
		sec, err := sectionData(doc, path)
		if err != nil {
			return nil, err
		}
		return &ir.Case{Section: ir.Section{SectionData: sec}, State: doc.State}, nil

	case "empty_branch":
		sec, err := sectionData(doc, path)
		if err != nil {
			return nil, err
		}
		return &ir.EmptyBranch{Case: ir.Case{Section: ir.Section{SectionData: sec}, State: doc.State}}, nil

	case "play", "delay", "acquire":
		iv, err := convertChildren(doc, path)
		if err != nil {
			return nil, err
		}
		p := &ir.Pulse{
			IntervalData: iv,
			SectionName:  doc.Name,
			Signal:       doc.Signal,
			Offset:       doc.Offset,
			Amplitude:    doc.Amplitude,
			Phase:        doc.Phase,
		}
		if doc.Kind != "delay" {
			if doc.Waveform == "" {
				return nil, fmt.Errorf("%s: %s requires a waveform", path, doc.Kind)
			}
			p.Def = &ir.PulseDef{UID: doc.Waveform}
		}
		if doc.Kind == "acquire" {
			if doc.Handle == "" {
				return nil, fmt.Errorf("%s: acquire requires a handle", path)
			}
			p.IsAcquire = true
			p.AcquireParams = &ir.AcquireParams{Handle: doc.Handle, AcquisitionType: "integration"}
		}
		return p, nil

	case "phase_reset":
		iv, err := convertChildren(doc, path)
		if err != nil {
			return nil, err
		}
		reset := &ir.PhaseReset{IntervalData: iv, SectionName: doc.Name, ResetSWOscillators: doc.ResetSW}
		for _, hw := range doc.HWOscillators {
			reset.HWOscillators = append(reset.HWOscillators, ir.HWOscillatorReset{Device: hw.Device, Duration: hw.Duration})
		}
		return reset, nil

	case "precomp_clear":
		iv, err := convertChildren(doc, path)
		if err != nil {
			return nil, err
		}
		return &ir.PrecompClear{IntervalData: iv, SectionName: doc.Name, Signal: doc.Signal}, nil

	case "reserve":
		iv, err := convertChildren(doc, path)
		if err != nil {
			return nil, err
		}
		return &ir.Reserve{IntervalData: iv, Signal: doc.Signal}, nil

	default:
		return nil, fmt.Errorf("%s: unknown node kind %q", path, doc.Kind)
	}
}

// setupSchema validates device setup files. Every signal needs its device
// identity, class and rates; delays default to zero.
const setupSchema = `
#Signal: {
	device:          string
	class:           "signal" | "readout" | "combined" | "legacy-readout"
	combined:        *false | bool
	sampling_rate:   number & >0
	sequencer_rate:  number & >0
	sample_multiple: *16 | int & >0
	start_delay:     *0.0 | number
	delay_signal:    *0.0 | number
	port_delays:     *[] | [...number]
}

signals: [string]: #Signal
tinysample: *2.7777777777777776e-10 | number & >0
`

// setupDoc mirrors the validated CUE setup for decoding.
type setupDoc struct {
	Signals map[string]struct {
		Device         string    `json:"device"`
		Class          string    `json:"class"`
		Combined       bool      `json:"combined"`
		SamplingRate   float64   `json:"sampling_rate"`
		SequencerRate  float64   `json:"sequencer_rate"`
		SampleMultiple int       `json:"sample_multiple"`
		StartDelay     float64   `json:"start_delay"`
		DelaySignal    float64   `json:"delay_signal"`
		PortDelays     []float64 `json:"port_delays"`
	} `json:"signals"`
	TinySample float64 `json:"tinysample"`
}

// LoadSetup loads a CUE device-setup file, validates it against the setup
// schema and returns the signal table plus the tinysample duration.
func LoadSetup(path string) (feedback.SignalTable, float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read setup: %w", err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(setupSchema)
	if err := schema.Err(); err != nil {
		return nil, 0, fmt.Errorf("setup schema: %w", err)
	}
	value := ctx.CompileBytes(raw)
	if err := value.Err(); err != nil {
		return nil, 0, fmt.Errorf("parse setup %s: %w", path, err)
	}
	unified := schema.Unify(value)
	if err := unified.Validate(); err != nil {
		return nil, 0, fmt.Errorf("validate setup %s: %w", path, err)
	}

	var doc setupDoc
	if err := unified.Decode(&doc); err != nil {
		return nil, 0, fmt.Errorf("decode setup %s: %w", path, err)
	}

	table := feedback.SignalTable{}
	for id, s := range doc.Signals {
		table[id] = &feedback.SignalInfo{
			DeviceID:       s.Device,
			Class:          feedback.DeviceClass(s.Class),
			IsCombined:     s.Combined,
			SamplingRate:   s.SamplingRate,
			SequencerRate:  s.SequencerRate,
			SampleMultiple: s.SampleMultiple,
			StartDelay:     s.StartDelay,
			DelaySignal:    s.DelaySignal,
			PortDelays:     s.PortDelays,
		}
	}
	return table, doc.TinySample, nil
}
