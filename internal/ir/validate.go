package ir

import (
	"fmt"
)

// Validation error codes (E100-E199)
const (
	ErrLengthUnresolved   = "E101" // node length not resolved
	ErrChildStartMismatch = "E102" // children / child starts length mismatch
	ErrAcquireGroupEmpty  = "E103" // acquire group without member pulses
	ErrAcquireGroupMixed  = "E104" // acquire group members disagree on handle/type/signal
	ErrAcquireGroupShape  = "E105" // acquire group per-member slices not parallel
	ErrLoopNoIterations   = "E106" // loop with < 1 iterations
	ErrLoopNoPrototype    = "E107" // compressed loop without a prototype iteration
	ErrMatchNoSelector    = "E108" // match with no handle/user register/PRNG sample
	ErrMatchChildKind     = "E109" // match child is not a case
)

// ValidationError describes one structural defect in a program tree.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Path, e.Message)
}

// Validate checks the structural invariants the generator relies on.
// Returns all defects found (does not fail-fast); an empty slice means the
// tree is fit for event generation.
func Validate(root Node) []ValidationError {
	var errs []ValidationError
	walk(root, "root", &errs)
	return errs
}

func walk(n Node, path string, errs *[]ValidationError) {
	iv := n.Interval()
	if iv.Length == nil {
		*errs = append(*errs, ValidationError{
			Path:    path,
			Message: "length is not resolved",
			Code:    ErrLengthUnresolved,
		})
	}
	if len(iv.Children) != len(iv.ChildStarts) {
		*errs = append(*errs, ValidationError{
			Path:    path,
			Message: fmt.Sprintf("%d children but %d child starts", len(iv.Children), len(iv.ChildStarts)),
			Code:    ErrChildStartMismatch,
		})
	}

	switch node := n.(type) {
	case *Loop:
		if node.Iterations < 1 {
			*errs = append(*errs, ValidationError{
				Path:    path,
				Message: fmt.Sprintf("loop %q has %d iterations", node.Name, node.Iterations),
				Code:    ErrLoopNoIterations,
			})
		}
		if node.Compressed {
			if len(node.Children) == 0 {
				*errs = append(*errs, ValidationError{
					Path:    path,
					Message: fmt.Sprintf("compressed loop %q has no prototype iteration", node.Name),
					Code:    ErrLoopNoPrototype,
				})
			} else if _, ok := node.Children[0].(*LoopIteration); !ok {
				*errs = append(*errs, ValidationError{
					Path:    path,
					Message: fmt.Sprintf("compressed loop %q: first child is %T, want loop iteration", node.Name, node.Children[0]),
					Code:    ErrLoopNoPrototype,
				})
			}
		}
	case *Match:
		if node.Handle == "" && node.UserRegister == nil && node.PRNGSample == "" {
			*errs = append(*errs, ValidationError{
				Path:    path,
				Message: fmt.Sprintf("match %q has no handle, user register or PRNG sample", node.Name),
				Code:    ErrMatchNoSelector,
			})
		}
		for i, c := range node.Children {
			switch c.(type) {
			case *Case, *EmptyBranch:
			default:
				*errs = append(*errs, ValidationError{
					Path:    fmt.Sprintf("%s.children[%d]", path, i),
					Message: fmt.Sprintf("match %q child is %T, want case", node.Name, c),
					Code:    ErrMatchChildKind,
				})
			}
		}
	case *AcquireGroup:
		validateAcquireGroup(node, path, errs)
	}

	for i, c := range iv.Children {
		walk(c, fmt.Sprintf("%s.children[%d]", path, i), errs)
	}
}

func validateAcquireGroup(g *AcquireGroup, path string, errs *[]ValidationError) {
	if len(g.Pulses) == 0 {
		*errs = append(*errs, ValidationError{
			Path:    path,
			Message: fmt.Sprintf("acquire group in section %q has no member pulses", g.SectionName),
			Code:    ErrAcquireGroupEmpty,
		})
		return
	}
	if len(g.Amplitudes) != len(g.Pulses) || len(g.Phases) != len(g.Pulses) ||
		len(g.Frequencies) != len(g.Pulses) ||
		(g.PulseParameters != nil && len(g.PulseParameters) != len(g.Pulses)) ||
		(g.PlayParameters != nil && len(g.PlayParameters) != len(g.Pulses)) {
		*errs = append(*errs, ValidationError{
			Path:    path,
			Message: fmt.Sprintf("acquire group in section %q: per-member slices are not parallel to %d pulses", g.SectionName, len(g.Pulses)),
			Code:    ErrAcquireGroupShape,
		})
	}

	first := g.Pulses[0]
	for i, p := range g.Pulses[1:] {
		if p.Signal != first.Signal {
			*errs = append(*errs, ValidationError{
				Path:    fmt.Sprintf("%s.pulses[%d]", path, i+1),
				Message: fmt.Sprintf("member signal %q differs from %q", p.Signal, first.Signal),
				Code:    ErrAcquireGroupMixed,
			})
		}
		if (p.AcquireParams == nil) != (first.AcquireParams == nil) {
			*errs = append(*errs, ValidationError{
				Path:    fmt.Sprintf("%s.pulses[%d]", path, i+1),
				Message: "member acquire params presence differs",
				Code:    ErrAcquireGroupMixed,
			})
			continue
		}
		if p.AcquireParams != nil {
			if p.AcquireParams.Handle != first.AcquireParams.Handle {
				*errs = append(*errs, ValidationError{
					Path:    fmt.Sprintf("%s.pulses[%d]", path, i+1),
					Message: fmt.Sprintf("member handle %q differs from %q", p.AcquireParams.Handle, first.AcquireParams.Handle),
					Code:    ErrAcquireGroupMixed,
				})
			}
			if p.AcquireParams.AcquisitionType != first.AcquireParams.AcquisitionType {
				*errs = append(*errs, ValidationError{
					Path:    fmt.Sprintf("%s.pulses[%d]", path, i+1),
					Message: fmt.Sprintf("member acquisition type %q differs from %q", p.AcquireParams.AcquisitionType, first.AcquireParams.AcquisitionType),
					Code:    ErrAcquireGroupMixed,
				})
			}
		}
	}
}
