package events

// EventCollector is embedded in aggregates to collect domain events raised
// by state transitions until the application layer drains them.
type EventCollector struct {
	events []DomainEvent
}

// Record appends a domain event.
func (c *EventCollector) Record(event DomainEvent) {
	c.events = append(c.events, event)
}

// Pending returns the number of events not yet drained.
func (c *EventCollector) Pending() int {
	return len(c.events)
}

// OfType returns the pending events with the given event type.
func (c *EventCollector) OfType(eventType string) []DomainEvent {
	var out []DomainEvent
	for _, e := range c.events {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Drain returns the pending events and clears them.
func (c *EventCollector) Drain() []DomainEvent {
	collected := c.events
	c.events = nil
	return collected
}
