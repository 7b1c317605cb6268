// Command ocho emulates the CHIP-8 and SuperChip platforms using SDL2 for
// video, audio and input.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"ocho/chip8"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Distinguished exit codes so launchers can tell a bad ROM from a crash
// of the program being run.
const (
	exitUsage = 1
	exitLoad  = 2
	exitExec  = 3
)

type options struct {
	rom      string
	platform string
	interval int
	scale    int
	debug    bool
	quiet    bool
	fg       string
	bg       string
}

func init() {
	// SDL requires the main thread
	runtime.LockOSThread()
}

func main() {
	rand.Seed(time.Now().UnixNano())

	opts := readArguments()
	logger := newLogger(opts)

	if !opts.quiet {
		logger.Info("ocho - CHIP-8 emulator",
			log.String("version", buildinfo.Version(version, commit, date)))
	}

	if opts.rom == "" {
		rom, err := dialog.File().Filter("CHIP-8 ROMs", "ch8").Title("Open ROM").Load()
		if err != nil {
			logger.Error("No ROM selected", log.Err(err))
			os.Exit(exitLoad)
		}
		opts.rom = rom
	}

	platform, err := chip8.ParsePlatform(opts.platform)
	if err != nil {
		logger.Error("Invalid platform", log.Err(err))
		os.Exit(exitUsage)
	}

	vm, err := chip8.LoadFile(opts.rom, chip8.QuirksFor(platform))
	if err != nil {
		logger.Error("Loading ROM failed", log.String("file", opts.rom), log.Err(err))
		os.Exit(exitLoad)
	}
	vm.SetInterval(time.Duration(opts.interval) * time.Nanosecond)

	logger.Debug("ROM loaded",
		log.String("file", opts.rom),
		log.String("platform", opts.platform))

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		logger.Fatal(err.Error())
	}
	defer sdl.Quit()

	fg, bg, err := parseColors(opts)
	if err != nil {
		logger.Error("Invalid color", log.Err(err))
		os.Exit(exitUsage)
	}

	screen, err := NewScreen(int32(opts.scale), fg, bg)
	if err != nil {
		logger.Fatal(err.Error())
	}
	defer screen.Close()

	beep, err := NewBeep()
	if err != nil {
		logger.Fatal(err.Error())
	}
	defer beep.Close()

	if err := run(logger, vm, screen, beep, opts.debug); err != nil {
		logger.Error("Emulation aborted", log.Err(err))
		os.Exit(exitExec)
	}
}

// run drives the VM until the window is closed, Escape is pressed or a
// fatal instruction error occurs. The loop polls without sleeping; the
// core gates timers and instructions against the supplied clock.
func run(logger *log.Logger, vm *chip8.VM, screen *Screen, beep *Beep, debug bool) error {
	ctx := app.Context()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		in := pollEvents()
		if in.Quit {
			return nil
		}
		if in.Reset {
			vm.Reset()
		}

		if debug {
			// execution is held; timers and sound keep their cadence
			vm.TickTimers(time.Now(), beep)

			if in.Step {
				pc := vm.PC
				status, err := vm.Step(in.Keys)
				if err != nil {
					return err
				}
				trace(logger, vm, pc, status)
			}
		} else {
			if _, err := vm.Tick(time.Now(), in.Keys, beep); err != nil {
				return err
			}
		}

		if vm.Dirty {
			screen.Render(vm.Pixels())
			vm.Dirty = false
		}
	}
}

// trace logs the instruction just executed along with the register state.
func trace(logger *log.Logger, vm *chip8.VM, pc uint16, status chip8.Status) {
	registers := ""
	for i, v := range vm.V {
		registers += fmt.Sprintf("V%X=%02X ", i, v)
	}

	logger.Info(vm.Disassemble(pc),
		log.String("registers", registers),
		log.Uint16("i", vm.I),
		log.Uint16("pc", vm.PC),
		log.Uint8("sp", vm.SP),
		log.Uint8("dt", vm.DT),
		log.Uint8("st", vm.ST),
		log.Stringer("status", status))
}

func readArguments() options {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := options{}

	flags.StringVar(&opts.platform, "platform", "chip8", "platform to emulate: chip8 or super")
	flags.IntVar(&opts.interval, "interval", 140_000, "minimum time between instructions in nanoseconds")
	flags.IntVar(&opts.scale, "scale", 10, "display scale factor")
	flags.BoolVar(&opts.debug, "debug", false, "single-step mode: Return executes one instruction and logs a trace")
	flags.BoolVar(&opts.quiet, "q", false, "perform operations quietly")
	flags.StringVar(&opts.fg, "fg", "FFFFFF", "foreground color as RRGGBB hex")
	flags.StringVar(&opts.bg, "bg", "000000", "background color as RRGGBB hex")

	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Printf("usage: ocho [options] [rom file]\n\n")
		flags.PrintDefaults()
		os.Exit(exitUsage)
	}

	if args := flags.Args(); len(args) > 0 {
		opts.rom = args[0]
	}

	return opts
}

func newLogger(opts options) *log.Logger {
	cfg := log.DefaultConfig()
	if opts.debug {
		cfg.Level = log.DebugLevel
	} else if opts.quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func parseColors(opts options) (fg, bg sdl.Color, err error) {
	if fg, err = parseColor(opts.fg); err != nil {
		return fg, bg, err
	}
	bg, err = parseColor(opts.bg)
	return fg, bg, err
}

func parseColor(s string) (sdl.Color, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return sdl.Color{}, errors.New("color must be RRGGBB hex: " + s)
	}
	return sdl.Color{R: r, G: g, B: b, A: 255}, nil
}
