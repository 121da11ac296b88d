package scheduler

// EventType identifies a kind of event. Only one event of each
// type can be scheduled at a time.
type EventType uint8

const (
	// SerialBitTransfer shifts the next bit of an internally
	// clocked serial transfer.
	SerialBitTransfer EventType = iota

	eventTypes
)

func (e EventType) String() string {
	switch e {
	case SerialBitTransfer:
		return "SerialBitTransfer"
	}
	return "Unknown"
}

// Event is a single entry in the scheduler's event list.
type Event struct {
	cycle     uint64
	eventType EventType
	scheduled bool
	next      *Event
}

// Reset clears the event, unlinking it from any list.
func (e *Event) Reset() {
	e.cycle = 0
	e.scheduled = false
	e.next = nil
}
