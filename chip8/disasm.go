package chip8

import "fmt"

// Disassemble renders the instruction at the given address as a
// conventional CHIP-8 mnemonic. Used by the debug trace.
func (vm *VM) Disassemble(addr uint16) string {
	if int(addr)+1 >= MemorySize {
		return fmt.Sprintf("%04X -", addr)
	}

	inst := uint16(vm.Memory[addr])<<8 | uint16(vm.Memory[addr+1])
	i := decode(inst)

	op := func(format string, args ...any) string {
		return fmt.Sprintf("%04X - %s", addr, fmt.Sprintf(format, args...))
	}

	switch i.op {
	case 0x0:
		switch i.nn {
		case 0xE0:
			return op("CLS")
		case 0xEE:
			return op("RET")
		}
	case 0x1:
		return op("JP     #%04X", i.nnn)
	case 0x2:
		return op("CALL   #%04X", i.nnn)
	case 0x3:
		return op("SE     V%X, #%02X", i.x, i.nn)
	case 0x4:
		return op("SNE    V%X, #%02X", i.x, i.nn)
	case 0x5:
		return op("SE     V%X, V%X", i.x, i.y)
	case 0x6:
		return op("LD     V%X, #%02X", i.x, i.nn)
	case 0x7:
		return op("ADD    V%X, #%02X", i.x, i.nn)
	case 0x8:
		switch i.n {
		case 0x0:
			return op("LD     V%X, V%X", i.x, i.y)
		case 0x1:
			return op("OR     V%X, V%X", i.x, i.y)
		case 0x2:
			return op("AND    V%X, V%X", i.x, i.y)
		case 0x3:
			return op("XOR    V%X, V%X", i.x, i.y)
		case 0x4:
			return op("ADD    V%X, V%X", i.x, i.y)
		case 0x5:
			return op("SUB    V%X, V%X", i.x, i.y)
		case 0x6:
			return op("SHR    V%X, V%X", i.x, i.y)
		case 0x7:
			return op("SUBN   V%X, V%X", i.x, i.y)
		case 0xE:
			return op("SHL    V%X, V%X", i.x, i.y)
		}
	case 0x9:
		return op("SNE    V%X, V%X", i.x, i.y)
	case 0xA:
		return op("LD     I, #%04X", i.nnn)
	case 0xB:
		return op("JP     V0, #%04X", i.nnn)
	case 0xC:
		return op("RND    V%X, #%02X", i.x, i.nn)
	case 0xD:
		return op("DRW    V%X, V%X, %d", i.x, i.y, i.n)
	case 0xE:
		switch i.nn {
		case 0x9E:
			return op("SKP    V%X", i.x)
		case 0xA1:
			return op("SKNP   V%X", i.x)
		}
	case 0xF:
		switch i.nn {
		case 0x07:
			return op("LD     V%X, DT", i.x)
		case 0x0A:
			return op("LD     V%X, K", i.x)
		case 0x15:
			return op("LD     DT, V%X", i.x)
		case 0x18:
			return op("LD     ST, V%X", i.x)
		case 0x1E:
			return op("ADD    I, V%X", i.x)
		case 0x29:
			return op("LD     F, V%X", i.x)
		case 0x33:
			return op("LD     B, V%X", i.x)
		case 0x55:
			return op("LD     [I], V%X", i.x)
		case 0x65:
			return op("LD     V%X, [I]", i.x)
		}
	}

	return op("??     #%04X", inst)
}
