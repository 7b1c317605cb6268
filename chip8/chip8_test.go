package chip8

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/set"
)

// testVM creates a VM with the given program loaded at ProgramStart.
func testVM(t *testing.T, quirks Quirks, program ...byte) *VM {
	t.Helper()

	vm, err := New(program, quirks)
	assert.NoError(t, err)

	return vm
}

// keys builds a pressed-key snapshot.
func keys(pressed ...byte) set.Set[byte] {
	s := set.New[byte]()
	for _, key := range pressed {
		s.Add(key)
	}
	return s
}

// step executes one instruction and fails the test on any error.
func step(t *testing.T, vm *VM, pressed ...byte) Status {
	t.Helper()

	status, err := vm.Step(keys(pressed...))
	assert.NoError(t, err)

	return status
}

func TestNew(t *testing.T) {
	vm := testVM(t, QuirksFor(PlatformChip8), 0x60, 0x0A)

	assert.Equal(t, uint16(ProgramStart), vm.PC)
	assert.Equal(t, byte(0x60), vm.Memory[0x200])
	assert.Equal(t, byte(0x0A), vm.Memory[0x201])
	// font glyph for 0 sits at FontStart
	assert.Equal(t, byte(0xF0), vm.Memory[FontStart])
	assert.True(t, vm.Dirty)
}

func TestNewProgramTooLarge(t *testing.T) {
	_, err := New(make([]byte, MemorySize-ProgramStart+1), QuirksFor(PlatformChip8))

	var oomErr *OutOfMemoryError
	assert.True(t, errors.As(err, &oomErr))
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(file, []byte{0x12, 0x00}, 0o644))

	vm, err := LoadFile(file, QuirksFor(PlatformChip8))
	assert.NoError(t, err)
	assert.Equal(t, byte(0x12), vm.Memory[0x200])
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.ch8"), QuirksFor(PlatformChip8))
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	vm := testVM(t, QuirksFor(PlatformChip8), 0x60, 0x0A)

	vm.V[0] = 0xFF
	vm.I = 0x300
	vm.PC = 0x400
	vm.SP = 3
	vm.DT = 10
	vm.ST = 10
	vm.Video[0] = true
	vm.Memory[0x300] = 0x42

	vm.Reset()

	assert.Equal(t, byte(0), vm.V[0])
	assert.Equal(t, uint16(0), vm.I)
	assert.Equal(t, uint16(ProgramStart), vm.PC)
	assert.Equal(t, byte(0), vm.SP)
	assert.Equal(t, byte(0), vm.DT)
	assert.Equal(t, byte(0), vm.ST)
	assert.False(t, vm.Video[0])
	assert.Equal(t, byte(0), vm.Memory[0x300])
	assert.Equal(t, byte(0x60), vm.Memory[0x200])
}

func TestFetchAdvancesPC(t *testing.T) {
	// every instruction consumes exactly two bytes big-endian
	vm := testVM(t, QuirksFor(PlatformChip8), 0x60, 0x0A, 0x61, 0x0B)

	step(t, vm)
	assert.Equal(t, uint16(0x202), vm.PC)

	step(t, vm)
	assert.Equal(t, uint16(0x204), vm.PC)
	assert.Equal(t, byte(0x0A), vm.V[0])
	assert.Equal(t, byte(0x0B), vm.V[1])
}

func TestFetchOutOfBounds(t *testing.T) {
	vm := testVM(t, QuirksFor(PlatformChip8))
	vm.PC = 0xFFF

	_, err := vm.Step(keys())

	var addrErr *AddressError
	assert.True(t, errors.As(err, &addrErr))
}

// End-to-end byte programs.

func TestProgramSetAndAdd(t *testing.T) {
	vm := testVM(t, QuirksFor(PlatformChip8), 0x60, 0x0A, 0x70, 0x05)

	step(t, vm)
	step(t, vm)

	assert.Equal(t, byte(0x0F), vm.V[0])
}

func TestProgramClearScreen(t *testing.T) {
	vm := testVM(t, QuirksFor(PlatformChip8), 0x00, 0xE0)
	vm.Video[5] = true
	vm.Dirty = false

	step(t, vm)

	for _, lit := range vm.Video {
		assert.False(t, lit)
	}
	assert.True(t, vm.Dirty)
}

func TestProgramJump(t *testing.T) {
	vm := testVM(t, QuirksFor(PlatformChip8), 0x12, 0x04)

	step(t, vm)

	assert.Equal(t, uint16(0x204), vm.PC)
}

func TestProgramCallReturn(t *testing.T) {
	vm := testVM(t, QuirksFor(PlatformChip8), 0x23, 0x00)
	vm.Memory[0x300] = 0x00
	vm.Memory[0x301] = 0xEE

	step(t, vm)
	assert.Equal(t, uint16(0x300), vm.PC)
	assert.Equal(t, byte(1), vm.SP)

	step(t, vm)
	assert.Equal(t, uint16(0x202), vm.PC)
	assert.Equal(t, byte(0), vm.SP)
}

func TestProgramAddWithCarry(t *testing.T) {
	vm := testVM(t, QuirksFor(PlatformChip8), 0x80, 0x14)
	vm.V[0] = 0xFF
	vm.V[1] = 0x01

	step(t, vm)

	assert.Equal(t, byte(0x00), vm.V[0])
	assert.Equal(t, byte(1), vm.V[0xF])
}
