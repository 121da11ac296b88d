package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware IO are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the P1 hardware register. The P1
	// hardware register is used to select the input keys to
	// be read by the CPU, and to read the state of the joypad.
	P1 HardwareAddress = 0xFF00
	// SB is the address of the SB hardware register. The SB
	// hardware register is used to transfer data between the
	// CPU and the serial port.
	SB HardwareAddress = 0xFF01
	// SC is the address of the SC hardware register. The SC
	// hardware register is used to control the serial port.
	SC HardwareAddress = 0xFF02
	// DIV is the address of the DIV hardware register. Internally
	// it is a 16-bit counter incremented every T-cycle, but only
	// the upper 8 bits may be read. Writing any value resets the
	// whole counter.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the TIMA hardware register. TIMA is
	// incremented on the falling edge of the DIV bit selected by
	// TAC. When TIMA overflows, it is reloaded from TMA and a timer
	// interrupt is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the TMA hardware register. The TMA
	// hardware register is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the TAC hardware register. The TAC
	// hardware register is used to control the timer.
	//
	//  Bit 2: Timer Enable
	//  Bit 1-0: Input Clock Select
	//           00: DIV bit 9 (4096 Hz)
	//           01: DIV bit 3 (262144 Hz)
	//           10: DIV bit 5 (65536 Hz)
	//           11: DIV bit 7 (16384 Hz)
	TAC HardwareAddress = 0xFF07
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts. Writing a 1
	// to a bit in IF requests an interrupt, and writing a 0 clears
	// the request.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// LCDC is the address of the LCDC hardware register. It is
	// owned by the LCD, which is attached to the bus externally.
	LCDC HardwareAddress = 0xFF40
	// STAT is the address of the STAT hardware register.
	STAT HardwareAddress = 0xFF41
	// LY is the address of the LY hardware register.
	LY HardwareAddress = 0xFF44
	// BDIS is the address of the BDIS hardware register. Writing
	// a non-zero value unmaps the boot ROM until the next reset.
	BDIS HardwareAddress = 0xFF50
	// IE is the address of the IE hardware register. The IE
	// hardware register is used to enable interrupts, with the
	// same bit layout as IF.
	IE HardwareAddress = 0xFFFF
)

// The fixed memory map of the Game Boy.
const (
	// BootROMStart - BootROMEnd is overlaid on the cartridge ROM
	// until BDIS is written.
	BootROMStart uint16 = 0x0000
	BootROMEnd   uint16 = 0x00FF
	// ROMStart - ROMEnd is the cartridge ROM window.
	ROMStart uint16 = 0x0000
	ROMEnd   uint16 = 0x7FFF
	// VRAMStart - VRAMEnd is video RAM.
	VRAMStart uint16 = 0x8000
	VRAMEnd   uint16 = 0x9FFF
	// ExternalRAMStart - ExternalRAMEnd is the cartridge RAM window.
	ExternalRAMStart uint16 = 0xA000
	ExternalRAMEnd   uint16 = 0xBFFF
	// WRAMStart - WRAMEnd is work RAM.
	WRAMStart uint16 = 0xC000
	WRAMEnd   uint16 = 0xDFFF
	// EchoStart - EchoEnd mirrors WRAMStart - 0xDDFF.
	EchoStart uint16 = 0xE000
	EchoEnd   uint16 = 0xFDFF
	// OAMStart - OAMEnd is the sprite attribute table.
	OAMStart uint16 = 0xFE00
	OAMEnd   uint16 = 0xFE9F
	// UnusableStart - UnusableEnd reads back as 0x00 on DMG.
	UnusableStart uint16 = 0xFEA0
	UnusableEnd   uint16 = 0xFEFF
	// IOStart - IOEnd is the hardware register block.
	IOStart uint16 = 0xFF00
	IOEnd   uint16 = 0xFF7F
	// HRAMStart - HRAMEnd is high RAM.
	HRAMStart uint16 = 0xFF80
	HRAMEnd   uint16 = 0xFFFE
)
