package config

import "testing"

func TestParsePaletteKnownNames(t *testing.T) {
	for _, name := range []string{"greyscale", "green", "red", "yellow"} {
		if _, err := ParsePalette(name); err != nil {
			t.Errorf("ParsePalette(%q): %v", name, err)
		}
	}
}

func TestParsePaletteRejectsUnknown(t *testing.T) {
	if _, err := ParsePalette("sepia"); err == nil {
		t.Fatal("expected an error for an unknown palette name")
	}
}

func TestDefaultScaleIsPositive(t *testing.T) {
	if cfg := Default(); cfg.Scale <= 0 {
		t.Fatalf("Scale = %d, want > 0", cfg.Scale)
	}
}
