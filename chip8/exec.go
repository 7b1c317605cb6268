package chip8

import (
	"math/rand"

	"github.com/retroenv/retrogolib/set"
)

// Step fetches, decodes and executes a single instruction. keys is the
// snapshot of currently pressed VM keys for this cycle.
//
// The returned status is AwaitingKey while an FX0A instruction is parked
// waiting for input; the PC has then been rewound so the same instruction
// is refetched on the next step.
func (vm *VM) Step(keys set.Set[byte]) (Status, error) {
	pc := vm.PC

	inst, err := vm.fetch()
	if err != nil {
		return Running, err
	}

	i := decode(inst)

	// two-level dispatch: primary nibble, then the low byte or nibble
	// for the opcode groups with sub-variants
	switch i.op {
	case 0x0:
		switch i.nn {
		case 0xE0:
			vm.cls()
		case 0xEE:
			return Running, vm.ret()
		default:
			return Running, &UnknownOpcodeError{Inst: inst, Addr: pc}
		}
	case 0x1:
		vm.jump(i.nnn)
	case 0x2:
		return Running, vm.call(i.nnn)
	case 0x3:
		vm.skipIf(i.x, i.nn)
	case 0x4:
		vm.skipIfNot(i.x, i.nn)
	case 0x5:
		vm.skipIfXY(i.x, i.y)
	case 0x6:
		vm.loadX(i.x, i.nn)
	case 0x7:
		vm.addX(i.x, i.nn)
	case 0x8:
		switch i.n {
		case 0x0:
			vm.loadXY(i.x, i.y)
		case 0x1:
			vm.or(i.x, i.y)
		case 0x2:
			vm.and(i.x, i.y)
		case 0x3:
			vm.xor(i.x, i.y)
		case 0x4:
			vm.addXY(i.x, i.y)
		case 0x5:
			vm.subXY(i.x, i.y)
		case 0x6:
			vm.shr(i.x, i.y)
		case 0x7:
			vm.subYX(i.x, i.y)
		case 0xE:
			vm.shl(i.x, i.y)
		default:
			return Running, &UnknownOpcodeError{Inst: inst, Addr: pc}
		}
	case 0x9:
		vm.skipIfNotXY(i.x, i.y)
	case 0xA:
		vm.loadI(i.nnn)
	case 0xB:
		vm.jumpOffset(i.x, i.nnn)
	case 0xC:
		vm.rnd(i.x, i.nn)
	case 0xD:
		return Running, vm.drw(i.x, i.y, i.n)
	case 0xE:
		switch i.nn {
		case 0x9E:
			vm.skipIfPressed(i.x, keys)
		case 0xA1:
			vm.skipIfNotPressed(i.x, keys)
		default:
			return Running, &UnknownOpcodeError{Inst: inst, Addr: pc}
		}
	case 0xF:
		switch i.nn {
		case 0x07:
			vm.loadXDT(i.x)
		case 0x0A:
			return vm.loadXK(i.x, keys), nil
		case 0x15:
			vm.loadDTX(i.x)
		case 0x18:
			vm.loadSTX(i.x)
		case 0x1E:
			vm.addIX(i.x)
		case 0x29:
			vm.loadF(i.x)
		case 0x33:
			return Running, vm.loadB(i.x)
		case 0x55:
			return Running, vm.saveRegs(i.x)
		case 0x65:
			return Running, vm.loadRegs(i.x)
		default:
			return Running, &UnknownOpcodeError{Inst: inst, Addr: pc}
		}
	}

	return Running, nil
}

// 00E0 - clear the framebuffer.
func (vm *VM) cls() {
	vm.Video = [DisplayWidth * DisplayHeight]bool{}
	vm.Dirty = true
}

// 00EE - return from subroutine.
func (vm *VM) ret() error {
	if vm.SP == 0 {
		return &StackUnderflowError{}
	}

	vm.SP--
	vm.PC = vm.Stack[vm.SP]

	return nil
}

// 1NNN - jump to address.
func (vm *VM) jump(address uint16) {
	vm.PC = address
}

// 2NNN - call subroutine, pushing the return address.
func (vm *VM) call(address uint16) error {
	if int(vm.SP) == StackDepth {
		return &StackOverflowError{}
	}

	vm.Stack[vm.SP] = vm.PC
	vm.SP++
	vm.PC = address

	return nil
}

// 3XNN - skip next instruction if VX == NN.
func (vm *VM) skipIf(x, nn byte) {
	if vm.V[x] == nn {
		vm.PC += 2
	}
}

// 4XNN - skip next instruction if VX != NN.
func (vm *VM) skipIfNot(x, nn byte) {
	if vm.V[x] != nn {
		vm.PC += 2
	}
}

// 5XY0 - skip next instruction if VX == VY.
func (vm *VM) skipIfXY(x, y byte) {
	if vm.V[x] == vm.V[y] {
		vm.PC += 2
	}
}

// 9XY0 - skip next instruction if VX != VY.
func (vm *VM) skipIfNotXY(x, y byte) {
	if vm.V[x] != vm.V[y] {
		vm.PC += 2
	}
}

// 6XNN - load NN into VX.
func (vm *VM) loadX(x, nn byte) {
	vm.V[x] = nn
}

// 7XNN - add NN to VX, wrapping, no flag.
func (vm *VM) addX(x, nn byte) {
	vm.V[x] += nn
}

// 8XY0 - load VY into VX.
func (vm *VM) loadXY(x, y byte) {
	vm.V[x] = vm.V[y]
}

// 8XY1 - or VY into VX.
func (vm *VM) or(x, y byte) {
	vm.V[x] |= vm.V[y]

	if vm.quirks.ResetFlag {
		vm.V[0xF] = 0
	}
}

// 8XY2 - and VY into VX.
func (vm *VM) and(x, y byte) {
	vm.V[x] &= vm.V[y]

	if vm.quirks.ResetFlag {
		vm.V[0xF] = 0
	}
}

// 8XY3 - xor VY into VX.
func (vm *VM) xor(x, y byte) {
	vm.V[x] ^= vm.V[y]

	if vm.quirks.ResetFlag {
		vm.V[0xF] = 0
	}
}

// 8XY4 - add VY to VX, VF = 1 on overflow.
func (vm *VM) addXY(x, y byte) {
	sum := uint16(vm.V[x]) + uint16(vm.V[y])
	vm.V[x] = byte(sum)

	if sum > 0xFF {
		vm.V[0xF] = 1
	} else {
		vm.V[0xF] = 0
	}
}

// 8XY5 - subtract VY from VX, VF = 1 when no borrow.
func (vm *VM) subXY(x, y byte) {
	borrow := vm.V[x] < vm.V[y]
	vm.V[x] -= vm.V[y]

	if borrow {
		vm.V[0xF] = 0
	} else {
		vm.V[0xF] = 1
	}
}

// 8XY7 - subtract VX from VY into VX, VF = 1 when no borrow.
func (vm *VM) subYX(x, y byte) {
	borrow := vm.V[y] < vm.V[x]
	vm.V[x] = vm.V[y] - vm.V[x]

	if borrow {
		vm.V[0xF] = 0
	} else {
		vm.V[0xF] = 1
	}
}

// 8XY6 - shift right one bit, VF = bit shifted out. Without the
// shift-in-place quirk, VY is copied into VX first.
func (vm *VM) shr(x, y byte) {
	if !vm.quirks.ShiftInPlace {
		vm.V[x] = vm.V[y]
	}

	out := vm.V[x] & 1
	vm.V[x] >>= 1
	vm.V[0xF] = out
}

// 8XYE - shift left one bit, VF = bit shifted out.
func (vm *VM) shl(x, y byte) {
	if !vm.quirks.ShiftInPlace {
		vm.V[x] = vm.V[y]
	}

	out := vm.V[x] >> 7
	vm.V[x] <<= 1
	vm.V[0xF] = out
}

// ANNN - load the index register.
func (vm *VM) loadI(address uint16) {
	vm.I = address
}

// BNNN - jump to address plus V0, or plus VX with the jump quirk.
func (vm *VM) jumpOffset(x byte, address uint16) {
	offset := vm.V[0]
	if vm.quirks.JumpPlusX {
		offset = vm.V[x]
	}

	vm.PC = address + uint16(offset)
}

// CXNN - load a random byte masked with NN into VX.
func (vm *VM) rnd(x, nn byte) {
	vm.V[x] = byte(rand.Intn(256)) & nn
}

// EX9E - skip next instruction if key VX is pressed.
func (vm *VM) skipIfPressed(x byte, keys set.Set[byte]) {
	if keys.Contains(vm.V[x]) {
		vm.PC += 2
	}
}

// EXA1 - skip next instruction if key VX is not pressed.
func (vm *VM) skipIfNotPressed(x byte, keys set.Set[byte]) {
	if !keys.Contains(vm.V[x]) {
		vm.PC += 2
	}
}

// FX07 - load the delay timer into VX.
func (vm *VM) loadXDT(x byte) {
	vm.V[x] = vm.DT
}

// FX15 - load VX into the delay timer.
func (vm *VM) loadDTX(x byte) {
	vm.DT = vm.V[x]
}

// FX18 - load VX into the sound timer.
func (vm *VM) loadSTX(x byte) {
	vm.ST = vm.V[x]
}

// FX0A - wait for a key press and store it in VX. While no key is down
// the PC is rewound so the instruction is refetched next cycle.
func (vm *VM) loadXK(x byte, keys set.Set[byte]) Status {
	for key := byte(0); key < 16; key++ {
		if keys.Contains(key) {
			vm.V[x] = key
			return Running
		}
	}

	vm.PC -= 2

	return AwaitingKey
}

// FX1E - add VX to the index register, no flag.
func (vm *VM) addIX(x byte) {
	vm.I += uint16(vm.V[x])
}

// FX29 - point I at the font sprite for the digit in VX.
func (vm *VM) loadF(x byte) {
	vm.I = FontStart + uint16(vm.V[x])*5
}

// FX33 - store the BCD digits of VX at I, I+1, I+2.
func (vm *VM) loadB(x byte) error {
	if int(vm.I)+2 >= MemorySize {
		return &AddressError{Addr: int(vm.I) + 2}
	}

	value := vm.V[x]
	vm.Memory[vm.I] = value / 100
	vm.Memory[vm.I+1] = value / 10 % 10
	vm.Memory[vm.I+2] = value % 10

	return nil
}

// FX55 - store V0..VX at I. With the increment quirk, I advances once
// per register and ends one past the last byte written.
func (vm *VM) saveRegs(x byte) error {
	for i := byte(0); i <= x; i++ {
		addr := vm.I
		if !vm.quirks.IncrementI {
			addr += uint16(i)
		}

		if int(addr) >= MemorySize {
			return &AddressError{Addr: int(addr)}
		}

		vm.Memory[addr] = vm.V[i]

		if vm.quirks.IncrementI {
			vm.I++
		}
	}

	return nil
}

// FX65 - load V0..VX from I, same index quirk as FX55.
func (vm *VM) loadRegs(x byte) error {
	for i := byte(0); i <= x; i++ {
		addr := vm.I
		if !vm.quirks.IncrementI {
			addr += uint16(i)
		}

		if int(addr) >= MemorySize {
			return &AddressError{Addr: int(addr)}
		}

		vm.V[i] = vm.Memory[addr]

		if vm.quirks.IncrementI {
			vm.I++
		}
	}

	return nil
}
