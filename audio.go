package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate = 44100
	toneHz     = 440
	amplitude  = 3000
)

// Beep produces the single square-wave tone of the CHIP-8 buzzer. The
// core calls Play while the sound timer is running and Stop once it
// reaches zero.
type Beep struct {
	device sdl.AudioDeviceID
	wave   []byte
}

// NewBeep opens an audio device and prepares one second of square wave.
func NewBeep() (*Beep, error) {
	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  512,
	}

	device, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return nil, err
	}

	// 16-bit mono square wave, little-endian
	wave := make([]byte, sampleRate*2)
	period := sampleRate / toneHz
	for i := 0; i < sampleRate; i++ {
		sample := int16(amplitude)
		if i%period < period/2 {
			sample = -amplitude
		}
		wave[i*2] = byte(sample)
		wave[i*2+1] = byte(sample >> 8)
	}

	return &Beep{device: device, wave: wave}, nil
}

// Play unpauses the device, topping up the queue so the tone is gapless.
func (b *Beep) Play() {
	if sdl.GetQueuedAudioSize(b.device) < uint32(len(b.wave)) {
		sdl.QueueAudio(b.device, b.wave)
	}
	sdl.PauseAudioDevice(b.device, false)
}

// Stop pauses the device and drops any queued samples.
func (b *Beep) Stop() {
	sdl.PauseAudioDevice(b.device, true)
	sdl.ClearQueuedAudio(b.device)
}

// Close releases the audio device.
func (b *Beep) Close() {
	sdl.CloseAudioDevice(b.device)
}
