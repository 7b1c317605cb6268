package chip8

import (
	"time"

	"github.com/retroenv/retrogolib/set"
)

const (
	// DefaultInterval is the default minimum time between instructions,
	// roughly 7000 instructions per second.
	DefaultInterval = 140 * time.Microsecond

	// timerInterval is the fixed 60 Hz cadence of both countdown timers.
	timerInterval = time.Second / 60
)

// Tick advances emulation for one iteration of the driving loop. The
// caller supplies the clock reading so pacing policy stays outside the
// core and the cadence logic is testable with a fake clock.
//
// Both timers decrement together once per 60 Hz interval, with the audio
// sink toggled from the sound timer. At most one instruction executes,
// and only when the configured instruction interval has elapsed.
func (vm *VM) Tick(now time.Time, keys set.Set[byte], audio Audio) (Status, error) {
	vm.TickTimers(now, audio)

	if now.Sub(vm.lastCycle) < vm.interval {
		return Running, nil
	}
	vm.lastCycle = now

	return vm.Step(keys)
}

// TickTimers applies only the 60 Hz timer cadence. Single-step mode uses
// this so timers and sound keep running while execution is held.
func (vm *VM) TickTimers(now time.Time, audio Audio) {
	if now.Sub(vm.lastTimer) < timerInterval {
		return
	}
	vm.lastTimer = now

	if vm.DT > 0 {
		vm.DT--
	}

	if vm.ST > 0 {
		audio.Play()
		vm.ST--
	} else {
		audio.Stop()
	}
}
