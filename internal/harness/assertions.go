package harness

import (
	"fmt"

	"github.com/lumeq/lumeq/internal/events"
)

// evaluate checks one assertion against the list, returning an empty string
// when the assertion holds and a failure message otherwise.
func evaluate(a *Assertion, list events.List) string {
	switch a.Type {
	case "event_count":
		if len(list) != a.Count {
			return fmt.Sprintf("expected %d events, got %d", a.Count, len(list))
		}
		return ""
	case "contains":
		return evalContains(a, list)
	case "order":
		return evalOrder(a, list)
	case "type_count":
		return evalTypeCount(a, list)
	case "paired":
		if err := list.CheckPairs(); err != nil {
			return err.Error()
		}
		return ""
	default:
		return fmt.Sprintf("unknown assertion type %q", a.Type)
	}
}

// evalContains looks for any event matching every field the assertion sets.
func evalContains(a *Assertion, list events.List) string {
	for _, ev := range list {
		if !matches(a, ev) {
			continue
		}
		return ""
	}
	return fmt.Sprintf("no event matches type=%s section=%q signal=%q", a.EventType, a.Section, a.Signal)
}

func matches(a *Assertion, ev events.Event) bool {
	if a.EventType != "" && string(ev.Type) != a.EventType {
		return false
	}
	if a.Section != "" && ev.SectionName != a.Section {
		return false
	}
	if a.Signal != "" && ev.Signal != a.Signal {
		return false
	}
	if a.Time != nil && ev.Time != *a.Time {
		return false
	}
	return true
}

// evalOrder verifies the event types appear in the given relative order,
// allowing arbitrary events in between.
func evalOrder(a *Assertion, list events.List) string {
	next := 0
	for _, ev := range list {
		if next >= len(a.EventTypes) {
			break
		}
		if string(ev.Type) == a.EventTypes[next] {
			next++
		}
	}
	if next < len(a.EventTypes) {
		return fmt.Sprintf("event type %s not found in expected position %d", a.EventTypes[next], next)
	}
	return ""
}

// evalTypeCount counts events of the given type.
func evalTypeCount(a *Assertion, list events.List) string {
	n := 0
	for _, ev := range list {
		if string(ev.Type) == a.EventType {
			n++
		}
	}
	if n != a.Count {
		return fmt.Sprintf("expected %d %s events, got %d", a.Count, a.EventType, n)
	}
	return ""
}
