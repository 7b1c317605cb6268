package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// drawVM loads a DXYN instruction and a sprite to draw.
func drawVM(t *testing.T, inst []byte, sprite ...byte) *VM {
	t.Helper()

	vm := testVM(t, QuirksFor(PlatformChip8), inst...)
	vm.I = 0x300
	copy(vm.Memory[0x300:], sprite)

	return vm
}

func TestDrawAndErase(t *testing.T) {
	vm := drawVM(t, []byte{0xD0, 0x11}, 0xFF)
	vm.Dirty = false

	// first draw lights row 0, no collision
	step(t, vm)

	for col := 0; col < 8; col++ {
		assert.True(t, vm.Video[col])
	}
	assert.False(t, vm.Video[8])
	assert.Equal(t, byte(0), vm.V[0xF])
	assert.True(t, vm.Dirty)

	// identical draw XORs every pixel back off and reports collision
	vm.PC = 0x200
	step(t, vm)

	for col := 0; col < 8; col++ {
		assert.False(t, vm.Video[col])
	}
	assert.Equal(t, byte(1), vm.V[0xF])
}

func TestDrawCollisionOnAnyLitPixel(t *testing.T) {
	// collision means a lit cell was touched by a set sprite bit,
	// even when other bits only turn pixels on
	vm := drawVM(t, []byte{0xD0, 0x11}, 0xFF)
	vm.Video[3] = true

	step(t, vm)

	assert.Equal(t, byte(1), vm.V[0xF])
	assert.False(t, vm.Video[3])
	assert.True(t, vm.Video[0])
}

func TestDrawUnsetBitsDoNotCollide(t *testing.T) {
	// a lit cell under a zero sprite bit is left alone and is not
	// a collision
	vm := drawVM(t, []byte{0xD0, 0x11}, 0xF0)
	vm.Video[7] = true

	step(t, vm)

	assert.Equal(t, byte(0), vm.V[0xF])
	assert.True(t, vm.Video[7])
}

func TestDrawMultipleRows(t *testing.T) {
	vm := drawVM(t, []byte{0xD0, 0x12}, 0x80, 0x01)

	step(t, vm)

	assert.True(t, vm.Video[0])                    // row 0, bit 7
	assert.True(t, vm.Video[DisplayWidth+7])       // row 1, bit 0
	assert.False(t, vm.Video[1])
	assert.False(t, vm.Video[DisplayWidth])
}

func TestDrawCoordinatesWrapModulo(t *testing.T) {
	// start coordinates are taken modulo the display size
	vm := drawVM(t, []byte{0xD0, 0x11}, 0x80)
	vm.V[0] = DisplayWidth
	vm.V[1] = DisplayHeight

	step(t, vm)

	assert.True(t, vm.Video[0])
}

func TestDrawClipsRight(t *testing.T) {
	// columns past the right edge are dropped, not wrapped
	vm := drawVM(t, []byte{0xD0, 0x11}, 0xFF)
	vm.V[0] = DisplayWidth - 2

	step(t, vm)

	assert.True(t, vm.Video[DisplayWidth-2])
	assert.True(t, vm.Video[DisplayWidth-1])
	// nothing wrapped onto the next row
	assert.False(t, vm.Video[DisplayWidth])
	assert.False(t, vm.Video[DisplayWidth+5])
}

func TestDrawClipsBottom(t *testing.T) {
	// rows past the bottom edge are dropped, not wrapped
	vm := drawVM(t, []byte{0xD0, 0x13}, 0x80, 0x80, 0x80)
	vm.V[1] = DisplayHeight - 1

	step(t, vm)

	assert.True(t, vm.Video[(DisplayHeight-1)*DisplayWidth])
	assert.False(t, vm.Video[0])
	assert.False(t, vm.Video[DisplayWidth])
}

func TestDrawClipsOnSuperChipToo(t *testing.T) {
	// clipping is not quirk-gated; both platforms drop off-screen rows
	vm := testVM(t, QuirksFor(PlatformSuperChip), 0xD0, 0x12)
	vm.I = 0x300
	vm.Memory[0x300] = 0x80
	vm.Memory[0x301] = 0x80
	vm.V[1] = DisplayHeight - 1

	step(t, vm)

	assert.True(t, vm.Video[(DisplayHeight-1)*DisplayWidth])
	assert.False(t, vm.Video[0])
}

func TestDrawSpriteOutOfBounds(t *testing.T) {
	vm := testVM(t, QuirksFor(PlatformChip8), 0xD0, 0x12)
	vm.I = 0xFFF

	_, err := vm.Step(keys())

	var addrErr *AddressError
	assert.True(t, errors.As(err, &addrErr))
}
