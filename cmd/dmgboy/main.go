// Command dmgboy is an SDL2 host for the DMG core: it opens a window,
// blits each completed framebuffer, forwards keyboard input to the
// joypad, and optionally mirrors the framebuffer to a debug websocket.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/pixelfault/dmgboy/internal/config"
	"github.com/pixelfault/dmgboy/internal/joypad"
	"github.com/pixelfault/dmgboy/internal/machine"
	"github.com/pixelfault/dmgboy/internal/ppu"
	"github.com/pixelfault/dmgboy/pkg/remote"
	"github.com/pixelfault/dmgboy/pkg/romloader"
)

func main() {
	romPath := flag.String("rom", "", "the rom file to load (.gb, .gz, .zip, .7z)")
	bootPath := flag.String("boot", "", "the boot rom file to load (optional)")
	scale := flag.Int("scale", 4, "integer window scale factor")
	paletteName := flag.String("palette", "green", "greyscale, green, red, or yellow")
	serve := flag.String("serve", "", "address to also stream the framebuffer on over websocket, e.g. :8080")
	trace := flag.Bool("trace", false, "enable debug-level logging")
	flag.Parse()

	cfg := config.Default()
	cfg.ROMPath, cfg.BootPath, cfg.Scale, cfg.Serve, cfg.Trace = *romPath, *bootPath, *scale, *serve, *trace

	log := logrus.StandardLogger()
	if cfg.Trace {
		log.SetLevel(logrus.DebugLevel)
	}

	pal, err := config.ParsePalette(*paletteName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.Palette = pal

	if cfg.ROMPath == "" {
		fmt.Fprintln(os.Stderr, "dmgboy: -rom is required")
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *logrus.Logger) error {
	rom, err := romloader.Load(cfg.ROMPath)
	if err != nil {
		return fmt.Errorf("dmgboy: %w", err)
	}

	var opts []machine.Option
	opts = append(opts, machine.WithLogger(log))
	if cfg.BootPath != "" {
		boot, err := romloader.Load(cfg.BootPath)
		if err != nil {
			return fmt.Errorf("dmgboy: %w", err)
		}
		opts = append(opts, machine.WithBootROM(boot))
	}

	m, err := machine.New(rom, opts...)
	if err != nil {
		return fmt.Errorf("dmgboy: %w", err)
	}
	log.Infof("dmgboy: loaded %q", m.CartridgeTitle())

	var server *remote.Server
	if cfg.Serve != "" {
		server = remote.NewServer(cfg.Palette, log)
		go func() {
			if err := server.ListenAndServe(cfg.Serve); err != nil {
				log.WithError(err).Warn("dmgboy: debug server stopped")
			}
		}()
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("dmgboy: sdl init: %w", err)
	}
	defer sdl.Quit()

	width, height := int32(ppu.ScreenWidth*cfg.Scale), int32(ppu.ScreenHeight*cfg.Scale)
	window, err := sdl.CreateWindow(m.CartridgeTitle(), sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		width, height, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("dmgboy: create window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("dmgboy: create renderer: %w", err)
	}
	defer renderer.Destroy()
	renderer.SetLogicalSize(ppu.ScreenWidth, ppu.ScreenHeight)

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING,
		ppu.ScreenWidth, ppu.ScreenHeight)
	if err != nil {
		return fmt.Errorf("dmgboy: create texture: %w", err)
	}
	defer texture.Destroy()

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				handleKey(m, e)
			}
		}

		frame, err := m.StepFrame()
		if err != nil {
			return fmt.Errorf("dmgboy: %w", err)
		}

		rgb := cfg.Palette.Resolve(frame)
		if err := texture.Update(nil, rgb, ppu.ScreenWidth*3); err != nil {
			return fmt.Errorf("dmgboy: texture update: %w", err)
		}
		renderer.Copy(texture, nil, nil)
		renderer.Present()

		if server != nil {
			server.Publish(frame)
		}
	}
	return nil
}

// handleKey maps the keys a single USB-style gamepad or keyboard would
// use for a DMG: arrow keys for the dpad, Z/X for B/A, Enter/RShift for
// Start/Select.
func handleKey(m *machine.Machine, e *sdl.KeyboardEvent) {
	press := e.Type == sdl.KEYDOWN
	switch e.Keysym.Sym {
	case sdl.K_RIGHT:
		setDpad(m, joypad.ButtonRight, press)
	case sdl.K_LEFT:
		setDpad(m, joypad.ButtonLeft, press)
	case sdl.K_UP:
		setDpad(m, joypad.ButtonUp, press)
	case sdl.K_DOWN:
		setDpad(m, joypad.ButtonDown, press)
	case sdl.K_x:
		setButton(m, joypad.ButtonA, press)
	case sdl.K_z:
		setButton(m, joypad.ButtonB, press)
	case sdl.K_RETURN:
		setButton(m, joypad.ButtonStart, press)
	case sdl.K_RSHIFT:
		setButton(m, joypad.ButtonSelect, press)
	}
}

func setDpad(m *machine.Machine, b joypad.Button, press bool) {
	if press {
		m.Joypad.PressDpad(b)
	} else {
		m.Joypad.ReleaseDpad(b)
	}
}

func setButton(m *machine.Machine, b joypad.Button, press bool) {
	if press {
		m.Joypad.PressButton(b)
	} else {
		m.Joypad.ReleaseButton(b)
	}
}
