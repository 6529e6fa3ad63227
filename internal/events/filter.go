package events

import "strings"

// Filter returns the events whose name, type label or status label contains
// the query, ignoring case. An empty query returns every event. Input order is kept.
func Filter(events []MarineEvent, query string) []MarineEvent {
	needle := strings.ToLower(query)
	filtered := make([]MarineEvent, 0, len(events))
	for _, event := range events {
		if matches(event, needle) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// matches reports whether the event matches an already lower-cased query.
func matches(event MarineEvent, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(event.Name), needle) ||
		strings.Contains(strings.ToLower(event.PinType.Label()), needle) ||
		strings.Contains(strings.ToLower(event.Status.Label()), needle)
}
