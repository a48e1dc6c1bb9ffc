package eventlist

import (
	"fmt"

	"github.com/lumeq/lumeq/internal/events"
	"github.com/lumeq/lumeq/internal/ir"
)

// childrenEvents visits the children in order, recursing with whatever
// budget remains, and returns one event sublist per child. Visiting stops
// once the budget is exhausted; the result is then padded so that the slot
// count always equals the child count. Downstream structural validation
// expects one slot per child even when truncated.
//
// With wrap set (section and loop-iteration parents), two budget units per
// child are reserved up front and every section-typed child's sublist is
// bracketed by a SUBSECTION_START/END pair carrying the child's name and a
// fresh chain id. Unvisited section children still get their wrapper pair,
// with nothing inside.
func (g *generator) childrenEvents(iv *ir.IntervalData, sectionName string, wrap bool, start int64, budget Budget) ([]events.List, error) {
	if len(iv.Children) != len(iv.ChildStarts) {
		return nil, fmt.Errorf("section %q: %d children but %d child starts", sectionName, len(iv.Children), len(iv.ChildStarts))
	}

	if wrap {
		budget = budget.Take(2 * len(iv.Children))
	}

	nested := make([]events.List, len(iv.Children))
	visited := 0
	for i, span := range iv.Spans() {
		if budget.Exhausted() {
			break
		}
		childStart := start + span.Start

		if sec, isSection := asSection(span.Node); wrap && isSection {
			list, err := g.wrapSubsection(sectionName, sec, span.Node, childStart, budget)
			if err != nil {
				return nil, err
			}
			nested[i] = list
			// The wrapper pair itself was already reserved up front.
			budget = budget.SpendList(len(list) - 2)
		} else {
			list, err := g.emit(span.Node, childStart, budget)
			if err != nil {
				return nil, err
			}
			nested[i] = list
			budget = budget.SpendList(len(list))
		}
		visited = i + 1
	}

	// Unvisited section children keep their wrapper pair so the per-child
	// subsection slot count stays intact under truncation.
	if wrap {
		for i := visited; i < len(iv.Children); i++ {
			if sec, isSection := asSection(iv.Children[i]); isSection {
				list, err := g.emptySubsection(sectionName, sec, start+iv.ChildStarts[i])
				if err != nil {
					return nil, err
				}
				nested[i] = list
			}
		}
	}

	return nested, nil
}

// wrapSubsection emits SUBSECTION_START, the child's events, SUBSECTION_END.
// The start wrapper's id is allocated before descending so ids stay in
// emission order.
func (g *generator) wrapSubsection(parentName string, sec *ir.SectionData, child ir.Node, childStart int64, budget Budget) (events.List, error) {
	childLength, ok := sec.ResolvedLength()
	if !ok {
		return nil, &UnresolvedLengthError{Node: fmt.Sprintf("section %q", sec.Name)}
	}

	wrapID := g.ids.Next()
	list := events.List{{
		Type:           events.SubsectionStart,
		Time:           childStart,
		ID:             wrapID,
		ChainElementID: wrapID,
		SectionName:    parentName,
		SubsectionName: sec.Name,
	}}

	inner, err := g.emit(child, childStart, budget)
	if err != nil {
		return nil, err
	}
	list = append(list, inner...)

	list = append(list, events.Event{
		Type:           events.SubsectionEnd,
		Time:           childStart + childLength,
		ID:             g.ids.Next(),
		ChainElementID: wrapID,
		SectionName:    parentName,
		SubsectionName: sec.Name,
	})
	return list, nil
}

// emptySubsection is the wrapper pair of a child that the budget never
// reached.
func (g *generator) emptySubsection(parentName string, sec *ir.SectionData, childStart int64) (events.List, error) {
	childLength, ok := sec.ResolvedLength()
	if !ok {
		return nil, &UnresolvedLengthError{Node: fmt.Sprintf("section %q", sec.Name)}
	}
	wrapID := g.ids.Next()
	return events.List{
		{
			Type:           events.SubsectionStart,
			Time:           childStart,
			ID:             wrapID,
			ChainElementID: wrapID,
			SectionName:    parentName,
			SubsectionName: sec.Name,
		},
		{
			Type:           events.SubsectionEnd,
			Time:           childStart + childLength,
			ID:             g.ids.Next(),
			ChainElementID: wrapID,
			SectionName:    parentName,
			SubsectionName: sec.Name,
		},
	}, nil
}

// asSection returns the section data of section-like node kinds: sections,
// loops, matches and cases all count as sections for subsection wrapping.
func asSection(n ir.Node) (*ir.SectionData, bool) {
	switch node := n.(type) {
	case *ir.Section:
		return &node.SectionData, true
	case *ir.Loop:
		return &node.SectionData, true
	case *ir.Match:
		return &node.SectionData, true
	case *ir.EmptyBranch:
		return &node.SectionData, true
	case *ir.Case:
		return &node.SectionData, true
	case *ir.LoopIteration:
		return &node.SectionData, true
	default:
		return nil, false
	}
}
