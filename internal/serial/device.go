package serial

// Device is anything on the other end of the link cable. The master
// calls Send and Receive once per bit: Send returns the bit the device
// shifts out, Receive gives it the bit the master shifts out.
//
// A Controller is itself a Device, so that two machines may be linked.
type Device interface {
	Receive(bool)
	Send() bool
}

// nullDevice is the device seen when nothing is plugged in: the
// line floats high, so every incoming byte reads 0xFF.
type nullDevice struct{}

func (nullDevice) Receive(bool) {}

func (nullDevice) Send() bool { return true }
