package feedback

// LatencyModel answers, for a (generator class, readout class, feedback
// path) combination, how long a branch decision takes to arrive at the
// generating device's decision register.
//
// readoutEnd is the end of the readout integration window in readout device
// samples from the trigger; the returned latency is in generator sequencer
// clock periods. Implementations must be monotonic in readoutEnd.
type LatencyModel interface {
	Latency(generator, readout DeviceClass, path Path, readoutEnd int64) (int64, error)
}

// pathKey identifies one latency table entry.
type pathKey struct {
	generator DeviceClass
	readout   DeviceClass
	path      Path
}

// PathLatency parameterizes one feedback route: a fixed pipeline cost plus
// the conversion from readout samples to generator sequencer clocks.
type PathLatency struct {
	// PipelineCycles is the fixed round-trip cost in sequencer clocks.
	PipelineCycles int64
	// SamplesPerCycle converts readout samples to sequencer clocks
	// (ceiling division). Must be >= 1.
	SamplesPerCycle int64
}

// StaticLatencyModel is a table-driven latency model. Routes absent from the
// table are unsupported configurations.
type StaticLatencyModel struct {
	routes map[pathKey]PathLatency
}

// NewStaticLatencyModel creates an empty model. Use Add to register routes.
func NewStaticLatencyModel() *StaticLatencyModel {
	return &StaticLatencyModel{routes: map[pathKey]PathLatency{}}
}

// Add registers the latency parameters for one route.
func (m *StaticLatencyModel) Add(generator, readout DeviceClass, path Path, p PathLatency) *StaticLatencyModel {
	m.routes[pathKey{generator, readout, path}] = p
	return m
}

// Latency implements LatencyModel.
func (m *StaticLatencyModel) Latency(generator, readout DeviceClass, path Path, readoutEnd int64) (int64, error) {
	p, ok := m.routes[pathKey{generator, readout, path}]
	if !ok {
		return 0, &UnsupportedReadoutError{Class: readout}
	}
	spc := p.SamplesPerCycle
	if spc < 1 {
		spc = 1
	}
	arrival := (readoutEnd + spc - 1) / spc
	return p.PipelineCycles + arrival, nil
}

// DefaultLatencyModel returns the model for the standard instrument family:
// global-path feedback between discrete generators and analyzers, and the
// internal path within combined instruments. Legacy analyzers are absent on
// purpose; resolving against them must fail.
func DefaultLatencyModel() *StaticLatencyModel {
	m := NewStaticLatencyModel()
	for _, gen := range []DeviceClass{ClassSignal, ClassCombined} {
		for _, ro := range []DeviceClass{ClassReadout, ClassCombined} {
			m.Add(gen, ro, PathGlobal, PathLatency{PipelineCycles: 96, SamplesPerCycle: 8})
		}
	}
	// Internal feedback never leaves the instrument, so both ends are the
	// combined class and the pipeline is much shorter.
	m.Add(ClassCombined, ClassCombined, PathInternal, PathLatency{PipelineCycles: 25, SamplesPerCycle: 8})
	return m
}
