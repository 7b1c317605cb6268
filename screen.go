package main

import (
	"ocho/chip8"

	"github.com/veandco/go-sdl2/sdl"
)

// Screen presents the VM framebuffer in an SDL window, one filled square
// per pixel scaled by the configured factor.
type Screen struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	scale    int32
	fg       sdl.Color
	bg       sdl.Color
}

// NewScreen creates the emulator window and renderer.
func NewScreen(scale int32, fg, bg sdl.Color) (*Screen, error) {
	window, renderer, err := sdl.CreateWindowAndRenderer(
		chip8.DisplayWidth*scale, chip8.DisplayHeight*scale, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, err
	}

	window.SetTitle("ocho")

	return &Screen{
		window:   window,
		renderer: renderer,
		scale:    scale,
		fg:       fg,
		bg:       bg,
	}, nil
}

// Render draws the full framebuffer and presents the frame.
func (s *Screen) Render(pixels []bool) {
	s.renderer.SetDrawColor(s.bg.R, s.bg.G, s.bg.B, s.bg.A)
	s.renderer.Clear()

	s.renderer.SetDrawColor(s.fg.R, s.fg.G, s.fg.B, s.fg.A)

	for i, lit := range pixels {
		if !lit {
			continue
		}

		x := int32(i % chip8.DisplayWidth)
		y := int32(i / chip8.DisplayWidth)

		s.renderer.FillRect(&sdl.Rect{
			X: x * s.scale,
			Y: y * s.scale,
			W: s.scale,
			H: s.scale,
		})
	}

	s.renderer.Present()
}

// Close releases the window and renderer.
func (s *Screen) Close() {
	s.renderer.Destroy()
	s.window.Destroy()
}
