package theme

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedCatalog(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, name := range []string{"classic", "slate", "forest"} {
		if _, err := c.Get(name); err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
	}

	classic := c.Default()
	if classic.Name != DefaultName {
		t.Fatalf("default theme = %q, want %q", classic.Name, DefaultName)
	}
	if got := classic.LightSquareColor(); got != (color.NRGBA{R: 0xe9, G: 0xcf, B: 0xa3, A: 255}) {
		t.Fatalf("classic light square = %+v", got)
	}
	if got := classic.DarkSquareColor(); got != (color.NRGBA{R: 0xbb, G: 0x88, B: 0x60, A: 255}) {
		t.Fatalf("classic dark square = %+v", got)
	}
}

func TestGetUnknown(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Get("no-such-theme"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(unknown) = %v, want ErrNotFound", err)
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	override := `classic:
  light_square: "#ffffff"
  dark_square: "#000000"
  coordinate: "#ff0000"
  marker: "#00ff00"
  background: "#0000ff"
neon:
  light_square: "#ccffcc"
  dark_square: "#116611"
  coordinate: "#ff00ff"
  marker: "#ffff00"
  background: "#101010"
`
	if err := os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	c, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	classic, err := c.Get("classic")
	if err != nil {
		t.Fatalf("Get(classic): %v", err)
	}
	if classic.LightSquare != "#ffffff" {
		t.Fatalf("override not applied: light square = %q", classic.LightSquare)
	}
	if _, err := c.Get("neon"); err != nil {
		t.Fatalf("Get(neon): %v", err)
	}
}

func TestBadColorRejected(t *testing.T) {
	dir := t.TempDir()
	bad := `broken:
  light_square: "white"
  dark_square: "#000000"
  coordinate: "#ff0000"
  marker: "#00ff00"
  background: "#0000ff"
`
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(bad), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	if _, err := New(dir); err == nil {
		t.Fatalf("expected error for non-hex color")
	}
}
