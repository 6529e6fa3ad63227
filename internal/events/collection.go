package events

import "fmt"

// Collection is an insertion-ordered set of events keyed by id. It is not
// safe for concurrent use; Service owns one and serializes access.
type Collection struct {
	events []MarineEvent
	index  map[string]int
}

// NewCollection returns a collection holding the given events in order.
func NewCollection(initial ...MarineEvent) (*Collection, error) {
	collection := &Collection{index: make(map[string]int, len(initial))}
	for _, event := range initial {
		if err := collection.Add(event); err != nil {
			return nil, err
		}
	}
	return collection, nil
}

// Len returns the number of events.
func (c *Collection) Len() int {
	return len(c.events)
}

// Add appends an event. The id must not already be present.
func (c *Collection) Add(event MarineEvent) error {
	if _, exists := c.index[event.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, event.ID)
	}
	c.index[event.ID] = len(c.events)
	c.events = append(c.events, event)
	return nil
}

// Get returns the event with the id.
func (c *Collection) Get(id string) (MarineEvent, bool) {
	position, ok := c.index[id]
	if !ok {
		return MarineEvent{}, false
	}
	return c.events[position], true
}

// Replace swaps the stored event with the same id, keeping its position.
func (c *Collection) Replace(event MarineEvent) error {
	position, ok := c.index[event.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEventNotFound, event.ID)
	}
	c.events[position] = event
	return nil
}

// Remove deletes the event with the id and reports whether it was present.
func (c *Collection) Remove(id string) bool {
	position, ok := c.index[id]
	if !ok {
		return false
	}
	c.events = append(c.events[:position], c.events[position+1:]...)
	delete(c.index, id)
	for i := position; i < len(c.events); i++ {
		c.index[c.events[i].ID] = i
	}
	return true
}

// Snapshot returns a copy of the events in insertion order.
func (c *Collection) Snapshot() []MarineEvent {
	snapshot := make([]MarineEvent, len(c.events))
	copy(snapshot, c.events)
	return snapshot
}
