// Package theme maps the layout's symbolic classes (light/dark shade,
// coordinate text, turn marker) to concrete colors. Themes load from an
// embedded default catalog plus an optional override directory; the
// layout core never sees any of this.
package theme

import (
	"embed"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	yaml "gopkg.in/yaml.v3"
)

//go:embed themes.yaml
var defaultFiles embed.FS

// ErrNotFound reports a theme name absent from the catalog.
var ErrNotFound = fmt.Errorf("theme not found")

// DefaultName is the theme used when none is configured.
const DefaultName = "classic"

// Theme is one named color scheme. Color fields hold "#rrggbb" hex.
type Theme struct {
	Name        string `yaml:"-"`
	LightSquare string `yaml:"light_square"`
	DarkSquare  string `yaml:"dark_square"`
	Coordinate  string `yaml:"coordinate"`
	Marker      string `yaml:"marker"`
	Background  string `yaml:"background"`
}

func (t Theme) LightSquareColor() color.NRGBA { return mustHex(t.LightSquare) }
func (t Theme) DarkSquareColor() color.NRGBA  { return mustHex(t.DarkSquare) }
func (t Theme) CoordinateColor() color.NRGBA  { return mustHex(t.Coordinate) }
func (t Theme) MarkerColor() color.NRGBA      { return mustHex(t.Marker) }
func (t Theme) BackgroundColor() color.NRGBA  { return mustHex(t.Background) }

// Catalog holds the named themes loaded at startup.
type Catalog struct {
	mu     sync.RWMutex
	themes map[string]Theme
}

// New loads the embedded default themes and then applies overrides from
// dir if provided. Override files may redefine existing themes or add
// new ones.
func New(overrideDir string) (*Catalog, error) {
	c := &Catalog{themes: make(map[string]Theme)}

	raw, err := fs.ReadFile(defaultFiles, "themes.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded themes: %w", err)
	}
	if err := c.applyYAML(raw); err != nil {
		return nil, fmt.Errorf("embedded themes: %w", err)
	}

	if strings.TrimSpace(overrideDir) != "" {
		if err := c.applyDir(overrideDir); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Get returns the named theme, or ErrNotFound.
func (c *Catalog) Get(name string) (Theme, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return t, nil
}

// Default returns the built-in default theme.
func (c *Catalog) Default() Theme {
	t, _ := c.Get(DefaultName)
	return t
}

// Names lists the loaded theme names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.themes))
	for n := range c.themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) applyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read theme dir: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, e.Name())
		}
	}
	// Sort for deterministic order
	sort.Strings(files)
	for _, name := range files {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := c.applyYAML(b); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
	}
	return nil
}

func (c *Catalog) applyYAML(raw []byte) error {
	var doc map[string]Theme
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, t := range doc {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		t.Name = key
		if err := t.validate(); err != nil {
			return fmt.Errorf("theme %q: %w", key, err)
		}
		c.themes[key] = t
	}
	return nil
}

func (t Theme) validate() error {
	for field, v := range map[string]string{
		"light_square": t.LightSquare,
		"dark_square":  t.DarkSquare,
		"coordinate":   t.Coordinate,
		"marker":       t.Marker,
		"background":   t.Background,
	} {
		if _, err := parseHex(v); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
	}
	return nil
}

func parseHex(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("bad color %q: want #rrggbb", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// mustHex is safe after validate has run at load time.
func mustHex(s string) color.NRGBA {
	c, err := parseHex(s)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return c
}
