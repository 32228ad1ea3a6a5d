package sprite

import (
	"fmt"
	"strings"
)

// URLResolver maps sprite keys to asset URLs for DOM renderers. The base
// path is explicit configuration, never discovered from the runtime
// environment.
type URLResolver struct {
	basePath string
}

func NewURLResolver(basePath string) URLResolver {
	base := strings.TrimRight(strings.TrimSpace(basePath), "/")
	if base == "" {
		base = "/sprites"
	}
	return URLResolver{basePath: base}
}

// Resolve returns the URL of the sprite rendered at the given square
// size, e.g. "/sprites/wK-32.png".
func (u URLResolver) Resolve(key string, size int) string {
	return fmt.Sprintf("%s/%s-%d.png", u.basePath, key, size)
}

// ParseAssetName splits an asset file name of the form "<key>-<size>.png"
// back into its sprite key and size. Used by the asset delivery handler.
func ParseAssetName(name string) (key string, size int, err error) {
	base, ok := strings.CutSuffix(name, ".png")
	if !ok {
		return "", 0, fmt.Errorf("sprite asset %q: not a png", name)
	}
	idx := strings.LastIndex(base, "-")
	if idx <= 0 {
		return "", 0, fmt.Errorf("sprite asset %q: missing size", name)
	}
	key = base[:idx]
	if !IsKnownKey(key) {
		return "", 0, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if _, err := fmt.Sscanf(base[idx+1:], "%d", &size); err != nil {
		return "", 0, fmt.Errorf("sprite asset %q: bad size: %w", name, err)
	}
	return key, size, nil
}
