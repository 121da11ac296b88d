// Package scheduler provides the system scheduler, which advances every
// clocked component of the machine by one machine cycle at a time, in
// a fixed order, and fires events scheduled for a specific cycle.
package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// ErrInvalidTarget is returned when the scheduler is asked to run to
// a cycle it has already passed.
var ErrInvalidTarget = errors.New("scheduler: invalid target cycle")

// Scheduler steps the registered components once per machine cycle.
//
// Components are ticked in registration order; the machine registers
// the timer before the CPU so that an interrupt raised by the timer on
// cycle N is seen by the CPU on cycle N.
//
// Events are kept in a linked list, sorted by the cycle at which they
// should be executed. Due events fire at the start of their cycle,
// before any component is ticked.
type Scheduler struct {
	cycles     uint64
	components []types.Clocked

	root          *Event
	eventHandlers [eventTypes]func()
	events        [eventTypes]*Event // only one event of each type can be scheduled at a time
}

// NewScheduler returns a new Scheduler at cycle 0.
func NewScheduler() *Scheduler {
	s := &Scheduler{}

	// initialize the events up front to avoid allocating
	// a new event every time one is scheduled
	for i := range s.events {
		s.events[i] = &Event{eventType: EventType(i)}
	}

	return s
}

// Register appends components to the tick order.
func (s *Scheduler) Register(components ...types.Clocked) {
	s.components = append(s.components, components...)
}

// Cycle returns the number of cycles completed so far.
func (s *Scheduler) Cycle() uint64 {
	return s.cycles
}

// RunUntil runs the machine until target cycles have been completed.
// It fails without doing any work if target is behind the current
// cycle, and stops at the first error returned by a component; the
// failing cycle is not counted as completed.
func (s *Scheduler) RunUntil(target uint64) error {
	if target < s.cycles {
		return fmt.Errorf("%w: %d is before %d", ErrInvalidTarget, target, s.cycles)
	}

	for s.cycles < target {
		s.fire()
		for _, c := range s.components {
			if err := c.Cycle(s.cycles); err != nil {
				return err
			}
		}
		s.cycles++
	}
	return nil
}

// fire executes every event due on or before the current cycle.
func (s *Scheduler) fire() {
	for s.root != nil && s.root.cycle <= s.cycles {
		event := s.root
		s.root = event.next
		event.Reset()

		if fn := s.eventHandlers[event.eventType]; fn != nil {
			fn()
		}
	}
}

// RegisterEvent registers a function of the EventType to be called when
// the event is executed. Handlers are registered once, so that scheduling
// an event never allocates.
func (s *Scheduler) RegisterEvent(eventType EventType, fn func()) {
	s.eventHandlers[eventType] = fn
}

// ScheduleEvent schedules an event to be executed the given number of
// cycles from now. An event of the same type that is already scheduled
// is moved.
func (s *Scheduler) ScheduleEvent(eventType EventType, cycles uint64) {
	s.DescheduleEvent(eventType)

	this := s.events[eventType]
	this.cycle = s.cycles + cycles
	this.scheduled = true

	// events scheduled for the same cycle fire in the order
	// they were scheduled
	if s.root == nil || this.cycle < s.root.cycle {
		this.next = s.root
		s.root = this
		return
	}
	prev := s.root
	for prev.next != nil && prev.next.cycle <= this.cycle {
		prev = prev.next
	}
	this.next = prev.next
	prev.next = this
}

// DescheduleEvent removes the event from the list, if it is scheduled.
func (s *Scheduler) DescheduleEvent(eventType EventType) {
	this := s.events[eventType]
	if !this.scheduled {
		return
	}

	if s.root == this {
		s.root = this.next
	} else {
		for event := s.root; event != nil; event = event.next {
			if event.next == this {
				event.next = this.next
				break
			}
		}
	}
	this.Reset()
}

// Until returns the number of cycles until the event fires, and
// false if the event is not scheduled.
func (s *Scheduler) Until(eventType EventType) (uint64, bool) {
	this := s.events[eventType]
	if !this.scheduled {
		return 0, false
	}
	return this.cycle - s.cycles, true
}

var _ types.Stater = (*Scheduler)(nil)

// Load restores the cycle counter and the scheduled events. Components
// and event handlers are not part of the state.
func (s *Scheduler) Load(st *types.State) {
	for i := range s.events {
		s.events[i].Reset()
	}
	s.root = nil

	s.cycles = st.Read64()
	for i := range s.events {
		if st.ReadBool() {
			var delay uint64
			if at := st.Read64(); at > s.cycles {
				delay = at - s.cycles
			}
			s.ScheduleEvent(EventType(i), delay)
		}
	}
}

// Save saves the cycle counter and the scheduled events.
func (s *Scheduler) Save(st *types.State) {
	st.Write64(s.cycles)
	for _, e := range s.events {
		st.WriteBool(e.scheduled)
		if e.scheduled {
			st.Write64(e.cycle)
		}
	}
}

func (s *Scheduler) String() string {
	var b strings.Builder
	for event := s.root; event != nil; event = event.next {
		fmt.Fprintf(&b, "%s:%d->", event.eventType, event.cycle)
	}
	return b.String()
}
