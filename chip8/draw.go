package chip8

// DXYN - draw an 8-pixel-wide sprite of n rows from memory at I, at the
// coordinates in VX/VY taken modulo the display dimensions. Set sprite
// bits XOR-toggle framebuffer cells; VF is 1 if any set bit touched a
// cell that was already lit. Rows and columns falling off the screen are
// clipped, never wrapped, on both platforms.
func (vm *VM) drw(x, y, n byte) error {
	if int(vm.I)+int(n) > MemorySize {
		return &AddressError{Addr: int(vm.I) + int(n) - 1}
	}

	px := int(vm.V[x]) % DisplayWidth
	py := int(vm.V[y]) % DisplayHeight
	vm.V[0xF] = 0

	for row := 0; row < int(n); row++ {
		cy := py + row
		if cy >= DisplayHeight {
			break
		}

		sprite := vm.Memory[int(vm.I)+row]

		for col := 0; col < 8; col++ {
			if sprite&(0x80>>col) == 0 {
				continue
			}

			cx := px + col
			if cx >= DisplayWidth {
				break
			}

			cell := cy*DisplayWidth + cx
			if vm.Video[cell] {
				vm.V[0xF] = 1
			}
			vm.Video[cell] = !vm.Video[cell]
		}
	}

	vm.Dirty = true

	return nil
}
