package chip8

// instruction is a raw 16-bit instruction split into its operand fields.
// It is derived on every cycle and never stored.
type instruction struct {
	// op is the primary opcode nibble.
	op byte

	// x and y are the V register indices.
	x byte
	y byte

	// n, nn and nnn are the low nibble, low byte and 12-bit address.
	n   byte
	nn  byte
	nnn uint16
}

// decode splits a raw instruction word into its fields.
func decode(inst uint16) instruction {
	return instruction{
		op:  byte(inst >> 12),
		x:   byte(inst >> 8 & 0xF),
		y:   byte(inst >> 4 & 0xF),
		n:   byte(inst & 0xF),
		nn:  byte(inst & 0xFF),
		nnn: inst & 0xFFF,
	}
}
