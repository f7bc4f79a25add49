// Package config holds the CLI-constructible knobs of the emulator:
// which files to load, which palette to render with, and the optional
// debug-serving/tracing flags. It defines no flags itself — cmd/dmgboy
// owns the flag set — and its only parsing is ParsePalette, which
// resolves a -palette value.
package config

import (
	"fmt"

	"github.com/pixelfault/dmgboy/pkg/palette"
)

// Config is the result of parsing the CLI flags (or, in a test, setting
// the fields directly).
type Config struct {
	ROMPath  string
	BootPath string
	Scale    int
	Palette  palette.Palette
	Serve    string // address to serve the debug websocket on, "" disables it
	Trace    bool
}

// Default returns the configuration cmd/dmgboy falls back to before
// applying flags: 4x integer scaling, the classic DMG green palette, no
// debug server, no tracing.
func Default() Config {
	return Config{
		Scale:   4,
		Palette: palette.Named(palette.Green),
	}
}

// paletteNames maps the -palette flag's accepted values to the built-in
// palette IDs.
var paletteNames = map[string]int{
	"greyscale": palette.Greyscale,
	"green":     palette.Green,
	"red":       palette.Red,
	"yellow":    palette.Yellow,
}

// ParsePalette resolves a -palette flag value to a Palette, returning an
// error for anything not in paletteNames rather than silently falling
// back to a default (a typo'd flag should fail loudly, not render the
// wrong colors).
func ParsePalette(name string) (palette.Palette, error) {
	id, ok := paletteNames[name]
	if !ok {
		return palette.Palette{}, fmt.Errorf("config: unknown palette %q", name)
	}
	return palette.Named(id), nil
}
