package boot

import "testing"

func TestLoadRejectsWrongLength(t *testing.T) {
	if _, err := Load(make([]byte, 255)); err == nil {
		t.Error("expected an error for a 255-byte image")
	}
	if _, err := Load(make([]byte, 257)); err == nil {
		t.Error("expected an error for a 257-byte image")
	}
	if _, err := Load(make([]byte, 256)); err != nil {
		t.Errorf("Load(256 bytes): %v", err)
	}
}

func TestReadWrapsAtBankBoundary(t *testing.T) {
	raw := make([]byte, 256)
	raw[0x00] = 0xAA
	raw[0xFF] = 0xBB
	r, err := Load(raw)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Read(0x0000) != 0xAA {
		t.Errorf("Read(0x0000) = %#02x, want 0xAA", r.Read(0x0000))
	}
	if r.Read(0x0100) != 0xAA {
		t.Errorf("Read(0x0100) = %#02x, want 0xAA (address masked to 0xFF)", r.Read(0x0100))
	}
	if r.Read(0x00FF) != 0xBB {
		t.Errorf("Read(0x00FF) = %#02x, want 0xBB", r.Read(0x00FF))
	}
}

func TestModelUnknownForArbitraryImage(t *testing.T) {
	r, err := Load(make([]byte, 256))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Model() != "unknown" {
		t.Errorf("Model() = %q, want %q for an all-zero image", r.Model(), "unknown")
	}
}
