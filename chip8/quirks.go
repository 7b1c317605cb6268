package chip8

import "fmt"

// Platform selects which historical interpreter to emulate. The instruction
// set is shared, but a handful of opcodes changed meaning between the
// original COSMAC VIP interpreter and the HP-48 SuperChip.
type Platform int

const (
	PlatformChip8 Platform = iota
	PlatformSuperChip
)

// ParsePlatform converts a command line platform name into a Platform.
func ParsePlatform(s string) (Platform, error) {
	switch s {
	case "chip8":
		return PlatformChip8, nil
	case "super":
		return PlatformSuperChip, nil
	default:
		return 0, fmt.Errorf("unknown platform %q (expected chip8 or super)", s)
	}
}

// Quirks holds the platform behavior flags consulted by the executor.
// A profile is selected once at construction and never changes.
type Quirks struct {
	// ResetFlag forces VF to 0 after OR/AND/XOR.
	ResetFlag bool

	// IncrementI advances I once per register copied during the
	// FX55/FX65 block transfers.
	IncrementI bool

	// ShiftInPlace makes 8XY6/8XYE shift VX directly instead of
	// copying VY into VX first.
	ShiftInPlace bool

	// JumpPlusX makes BNNN add VX to the address instead of V0.
	JumpPlusX bool
}

// QuirksFor returns the quirk profile for a platform.
func QuirksFor(p Platform) Quirks {
	if p == PlatformSuperChip {
		return Quirks{
			ResetFlag:    false,
			IncrementI:   false,
			ShiftInPlace: true,
			JumpPlusX:    true,
		}
	}

	return Quirks{
		ResetFlag:    true,
		IncrementI:   true,
		ShiftInPlace: false,
		JumpPlusX:    false,
	}
}
