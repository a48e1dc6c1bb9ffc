package ir

// Node is the closed variant of IR node kinds. The generator dispatches over
// the concrete types with an exhaustive type switch; a kind outside the
// variant is a programming error.
type Node interface {
	// Interval exposes the timing data common to every node kind.
	Interval() *IntervalData
}

// IntervalData holds the fields shared by every node: a resolved length, the
// ordered children with their start offsets relative to this node's start,
// and the participating signals.
//
// Length is in tinysamples and must be resolved (non-nil) before event
// generation; an unresolved length is a fatal upstream defect.
type IntervalData struct {
	Length      *int64
	Children    []Node
	ChildStarts []int64
	Signals     []string
}

// Interval implements Node for every kind embedding IntervalData.
func (d *IntervalData) Interval() *IntervalData { return d }

// ResolvedLength returns the node length, or ok=false when unresolved.
func (d *IntervalData) ResolvedLength() (int64, bool) {
	if d.Length == nil {
		return 0, false
	}
	return *d.Length, true
}

// Span pairs a child node with its start offset.
type Span struct {
	Start int64
	Node  Node
}

// Spans returns the children paired with their start offsets, in order.
func (d *IntervalData) Spans() []Span {
	spans := make([]Span, len(d.Children))
	for i, c := range d.Children {
		spans[i] = Span{Start: d.ChildStarts[i], Node: c}
	}
	return spans
}

// SectionData extends IntervalData with the fields of a named section:
// human-readable name, digital trigger lines and an optional PRNG setup.
type SectionData struct {
	IntervalData
	Name          string
	TriggerOutput []TriggerSignal
	PRNG          *PRNGSetup
}

// TriggerSignal names a digital trigger line owned by a section.
type TriggerSignal struct {
	Signal string
	Bit    int
}

// PRNGSetup configures a section-scoped pseudo-random number generator.
type PRNGSetup struct {
	Range int
	Seed  int
}

// SweepParameter is a swept parameter with one resolved value per loop
// iteration.
type SweepParameter struct {
	UID    string
	Values []float64
}

// PulseDef identifies a waveform definition by uid. A play operation without
// a pulse definition is a pure delay.
type PulseDef struct {
	UID string
}

// AcquireParams binds an acquisition to a result handle and an acquisition
// kind.
type AcquireParams struct {
	Handle          string
	AcquisitionType string
}

// Parametrized records, per timing/amplitude field of a play operation, the
// uid of the sweep parameter driving it. An empty uid means the field is a
// constant.
type Parametrized struct {
	Length    string
	Amplitude string
	Phase     string
	Offset    string
}

// UIDs returns the non-empty parameter uids in canonical field order
// (length, amplitude, phase, offset).
func (p Parametrized) UIDs() []string {
	uids := []string{}
	for _, uid := range []string{p.Length, p.Amplitude, p.Phase, p.Offset} {
		if uid != "" {
			uids = append(uids, uid)
		}
	}
	return uids
}

// Marker annotates a play operation with a digital marker window.
type Marker struct {
	Selector string
	Enable   bool
	Start    *float64
	Length   *float64
	PulseID  string
}

// Oscillator identifies a hardware oscillator on a device.
type Oscillator struct {
	Device string
	Signal string
	ID     string
}
