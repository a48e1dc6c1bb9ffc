package feedback

import (
	"fmt"

	"github.com/lumeq/lumeq/internal/ir"
)

// BuildRegistry walks a fully-timed tree and indexes every acquisition by
// handle, in structural order, with absolute start times. The structural
// order of a timed tree is the schedule order, so the most recent
// acquisition for a handle ends up last.
func BuildRegistry(root ir.Node) AcquireRegistry {
	reg := AcquireRegistry{}
	recordAcquires(root, 0, reg)
	return reg
}

func recordAcquires(n ir.Node, absStart int64, reg AcquireRegistry) {
	switch node := n.(type) {
	case *ir.Pulse:
		if node.IsAcquire && node.AcquireParams != nil {
			start := absStart + node.Offset
			reg.Record(&AcquiredPulse{
				Handle:        node.AcquireParams.Handle,
				Signal:        node.Signal,
				AbsoluteStart: &start,
				Length:        node.Length,
			})
		}
	case *ir.AcquireGroup:
		if len(node.Pulses) > 0 && node.Pulses[0].AcquireParams != nil {
			start := absStart + node.Offset
			reg.Record(&AcquiredPulse{
				Handle:        node.Pulses[0].AcquireParams.Handle,
				Signal:        node.Pulses[0].Signal,
				AbsoluteStart: &start,
				Length:        node.Length,
			})
		}
	}
	for _, span := range n.Interval().Spans() {
		recordAcquires(span.Node, absStart+span.Start, reg)
	}
}

// VerifyTree checks every handle-bound match section of a fully-timed tree
// against the resolver: the scheduled start must be no earlier than the
// resolved earliest execution time. Branch timing is frozen at scheduling
// time, so a violation means the upstream scheduler placed the branch before
// its decision can arrive.
func (r *Resolver) VerifyTree(root ir.Node) error {
	return r.verifyNode(root, 0)
}

func (r *Resolver) verifyNode(n ir.Node, absStart int64) error {
	if m, ok := n.(*ir.Match); ok && m.Handle != "" {
		grid := m.Grid
		if grid < 1 {
			grid = 1
		}
		resolved, err := r.ResolveMatchStart(ResolveRequest{
			Section:       m.Name,
			Handle:        m.Handle,
			Local:         m.Local,
			Signals:       m.Signals,
			Grid:          grid,
			ProposedStart: absStart,
		})
		if err != nil {
			return err
		}
		if resolved > absStart {
			return fmt.Errorf("match section %q with handle %q is scheduled at %d but cannot execute before %d", m.Name, m.Handle, absStart, resolved)
		}
	}
	for _, span := range n.Interval().Spans() {
		if err := r.verifyNode(span.Node, absStart+span.Start); err != nil {
			return err
		}
	}
	return nil
}
