package types

// Component is anything that can be attached to the memory bus, such
// as RAM, the cartridge, or a register-mapped peripheral like the
// timer or the joypad.
//
// Read reports whether the component answered the read; a component
// returns false for every address outside of its mapped range, so that
// the bus may ask the next attached component. Write is broadcast to
// every attached component, which must ignore addresses it does not
// map.
type Component interface {
	Read(address uint16) (uint8, bool)
	Write(address uint16, value uint8)
}

// Clocked is anything that advances in lockstep with the system
// clock. Cycle is called exactly once per machine cycle, with the
// index of the cycle being executed.
type Clocked interface {
	Cycle(cycle uint64) error
}

// ClockedFunc adapts a function to the Clocked interface.
type ClockedFunc func(cycle uint64) error

// Cycle calls f(cycle).
func (f ClockedFunc) Cycle(cycle uint64) error {
	return f(cycle)
}

// InRange returns true if address lies within [start, end].
func InRange(address, start, end uint16) bool {
	return address >= start && address <= end
}
