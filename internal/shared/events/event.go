package events

import "time"

// Event is the contract every domain event satisfies. Events are immutable
// records of a state change; subscribers key off EventName.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// Publisher is the write side of the bus. Services depend on this interface
// only, so tests can substitute a synchronous in-memory implementation.
type Publisher interface {
	Publish(event Event)
	PublishAll(events []Event)
}

// base carries the fields common to all events.
type base struct {
	at time.Time
}

func newBase() base {
	return base{at: time.Now()}
}

func (b base) OccurredAt() time.Time {
	return b.at
}
