// Package chip8 implements a CHIP-8 / SuperChip virtual machine: 4K of
// memory, 16 registers, a 16-deep call stack, two 60 Hz countdown timers
// and a 64x32 monochrome framebuffer, driven by a 16-bit instruction set.
//
// The package owns none of the I/O. The frontend samples the keyboard,
// supplies the clock to Tick and presents the framebuffer whenever the
// Dirty flag is set; sound is driven through the Audio interface.
package chip8

import (
	"os"
	"time"
)

const (
	// MemorySize is the amount of addressable memory.
	MemorySize = 0x1000

	// ProgramStart is where program images are loaded and execution begins.
	ProgramStart = 0x200

	// FontStart is where the built-in hex glyphs live.
	FontStart = 0x050

	// StackDepth is the maximum subroutine call depth.
	StackDepth = 16

	// DisplayWidth and DisplayHeight are the framebuffer dimensions.
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Audio is the sink for the sound timer. Play is invoked on every timer
// tick while the sound timer is nonzero, Stop once it reaches zero.
type Audio interface {
	Play()
	Stop()
}

// Status reports whether the VM is executing normally or parked on the
// FX0A key-wait instruction.
type Status int

const (
	Running Status = iota
	AwaitingKey
)

func (s Status) String() string {
	if s == AwaitingKey {
		return "awaiting key"
	}
	return "running"
}

// VM is the CHIP-8 virtual machine. It is created once per program image
// and mutated exclusively by the scheduler/executor; nothing else retains
// a reference to its state.
type VM struct {
	// Memory holds the font sprites, the program image and any data the
	// program writes through I.
	Memory [MemorySize]byte

	// V are the 16 general purpose registers. VF doubles as the
	// flag/carry register and is clobbered by arithmetic, shifts
	// and draws.
	V [16]byte

	// I is the index register used for memory addressing.
	I uint16

	// PC is the program counter, always even.
	PC uint16

	// Stack holds return addresses, SP the number of live entries.
	Stack [StackDepth]uint16
	SP    byte

	// DT and ST are the delay and sound countdown timers.
	DT byte
	ST byte

	// Video is the framebuffer, row-major. Dirty is set whenever it
	// changed since the last presentation; the frontend clears it.
	Video [DisplayWidth * DisplayHeight]bool
	Dirty bool

	quirks Quirks
	rom    []byte

	// scheduler bookkeeping, see tick.go
	interval  time.Duration
	lastCycle time.Time
	lastTimer time.Time
}

// New creates a VM with the program image loaded at ProgramStart and the
// font sprites at FontStart.
func New(program []byte, quirks Quirks) (*VM, error) {
	if len(program) > MemorySize-ProgramStart {
		return nil, &OutOfMemoryError{Size: len(program)}
	}

	vm := &VM{
		quirks:   quirks,
		rom:      append([]byte(nil), program...),
		interval: DefaultInterval,
	}
	vm.Reset()

	return vm, nil
}

// LoadFile reads a raw ROM file and returns a VM for it.
func LoadFile(file string, quirks Quirks) (*VM, error) {
	program, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	return New(program, quirks)
}

// Reset restores the VM to its power-on state with the same program image.
func (vm *VM) Reset() {
	vm.Memory = [MemorySize]byte{}
	copy(vm.Memory[FontStart:], fontSprites[:])
	copy(vm.Memory[ProgramStart:], vm.rom)

	vm.V = [16]byte{}
	vm.Stack = [StackDepth]uint16{}
	vm.I = 0
	vm.PC = ProgramStart
	vm.SP = 0
	vm.DT = 0
	vm.ST = 0

	vm.Video = [DisplayWidth * DisplayHeight]bool{}
	vm.Dirty = true

	vm.lastCycle = time.Time{}
	vm.lastTimer = time.Time{}
}

// SetInterval overrides the minimum time between executed instructions.
func (vm *VM) SetInterval(d time.Duration) {
	vm.interval = d
}

// Pixels returns the framebuffer as a flat row-major slice.
func (vm *VM) Pixels() []bool {
	return vm.Video[:]
}

// fetch reads the big-endian instruction word at PC and advances PC by 2.
func (vm *VM) fetch() (uint16, error) {
	if int(vm.PC)+1 >= MemorySize {
		return 0, &AddressError{Addr: int(vm.PC)}
	}

	inst := uint16(vm.Memory[vm.PC])<<8 | uint16(vm.Memory[vm.PC+1])
	vm.PC += 2

	return inst, nil
}
