package main

import (
	"github.com/retroenv/retrogolib/set"
	"github.com/veandco/go-sdl2/sdl"
)

// keyMap maps a modern keyboard onto the 4x4 CHIP-8 keypad:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   <-   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
var keyMap = map[sdl.Scancode]byte{
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_Z: 0xA,
	sdl.SCANCODE_C: 0xB,
	sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_V: 0xF,
}

// events is the input snapshot for one loop iteration: pending control
// signals plus the set of currently pressed VM keys.
type events struct {
	Quit  bool
	Step  bool
	Reset bool
	Keys  set.Set[byte]
}

// pollEvents drains the SDL event queue and samples the keyboard state.
func pollEvents() events {
	ev := events{Keys: set.New[byte]()}

	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch t := e.(type) {
		case *sdl.QuitEvent:
			ev.Quit = true
		case *sdl.KeyboardEvent:
			if t.Type != sdl.KEYDOWN {
				continue
			}

			switch t.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				ev.Quit = true
			case sdl.SCANCODE_RETURN, sdl.SCANCODE_F10:
				ev.Step = true
			case sdl.SCANCODE_BACKSPACE:
				ev.Reset = true
			}
		}
	}

	state := sdl.GetKeyboardState()
	for scancode, key := range keyMap {
		if state[scancode] != 0 {
			ev.Keys.Add(key)
		}
	}

	return ev
}
