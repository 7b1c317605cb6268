package chip8

import "fmt"

// An OutOfMemoryError is returned when a program image does not fit in the
// memory remaining after the program start offset.
type OutOfMemoryError struct {
	Size int
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("program too large: %d bytes (free memory: %d)",
		e.Size, MemorySize-ProgramStart)
}

// An UnknownOpcodeError is returned when an instruction matches no handler.
type UnknownOpcodeError struct {
	Inst uint16
	Addr uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %04X at %04X (primary nibble %X, low byte %02X)",
		e.Inst, e.Addr, e.Inst>>12, e.Inst&0xFF)
}

// A StackUnderflowError is returned by RET when the stack is empty.
type StackUnderflowError struct{}

func (e *StackUnderflowError) Error() string {
	return "return with empty stack"
}

// A StackOverflowError is returned by CALL when the stack is full.
type StackOverflowError struct{}

func (e *StackOverflowError) Error() string {
	return "stack overflow"
}

// An AddressError is returned when an instruction resolves an address
// outside of memory.
type AddressError struct {
	Addr int
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("memory access out of bounds: %04X", e.Addr)
}
