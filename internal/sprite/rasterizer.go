// Package sprite resolves symbolic sprite keys ("wK", "bP", "empty") to
// renderable assets: rasterized images for pixel renderers and URLs for
// the HTML widget. The piece set is embedded as SVG and rasterized on
// demand at the requested square size.
package sprite

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/kapu/boardwidget/internal/board"
)

//go:embed assets/pieces/*.svg
var pieceFiles embed.FS

// ErrUnknownKey reports a sprite key outside the piece set.
var ErrUnknownKey = fmt.Errorf("unknown sprite key")

var knownKeys = map[string]struct{}{
	"wK": {}, "wQ": {}, "wR": {}, "wB": {}, "wN": {}, "wP": {},
	"bK": {}, "bQ": {}, "bR": {}, "bB": {}, "bN": {}, "bP": {},
	board.EmptySpriteKey: {},
}

// Keys lists every resolvable sprite key.
func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	return keys
}

// IsKnownKey reports whether key belongs to the piece set (or is the
// empty key).
func IsKnownKey(key string) bool {
	_, ok := knownKeys[key]
	return ok
}

type cacheKey struct {
	key  string
	size int
}

// Rasterizer renders sprite keys to square RGBA tiles, caching per
// (key, size). Safe for concurrent use.
type Rasterizer struct {
	mu    sync.RWMutex
	cache map[cacheKey]image.Image
}

func NewRasterizer() *Rasterizer {
	return &Rasterizer{cache: make(map[cacheKey]image.Image)}
}

// Resolve returns the sprite image at the given square size. The empty
// key yields a fully transparent tile, used for blank decoration cells.
func (r *Rasterizer) Resolve(key string, size int) (image.Image, error) {
	if !IsKnownKey(key) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	size = board.ValidateSquareSize(&size)

	ck := cacheKey{key: key, size: size}
	r.mu.RLock()
	if img, ok := r.cache[ck]; ok {
		r.mu.RUnlock()
		return img, nil
	}
	r.mu.RUnlock()

	img, err := r.rasterize(key, size)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[ck] = img
	r.mu.Unlock()
	return img, nil
}

// EncodePNG resolves the sprite and encodes it as PNG, for asset
// delivery over HTTP.
func (r *Rasterizer) EncodePNG(key string, size int) ([]byte, error) {
	img, err := r.Resolve(key, size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode sprite png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Rasterizer) rasterize(key string, size int) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)
	if key == board.EmptySpriteKey {
		return img, nil
	}

	name := fmt.Sprintf("assets/pieces/%s.svg", key)
	data, err := pieceFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read piece asset %s: %w", name, err)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(sanitizeSVG(data)))
	if err != nil {
		return nil, fmt.Errorf("parse piece svg: %w", err)
	}

	if icon.ViewBox.W <= 0 {
		icon.ViewBox.W = float64(size)
	}
	if icon.ViewBox.H <= 0 {
		icon.ViewBox.H = float64(size)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}
