package board

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultSquareSize = 32
	MinSquareSize     = 24
	MaxSquareSize     = 64
	SquareSizeStep    = 4
)

// DisplayOptions is the full option surface the layout recognizes. Value
// type, copied per render call. Purely visual options (square colors and
// the like) live in the presentation layer.
type DisplayOptions struct {
	Flip            bool
	SquareSize      int
	ShowCoordinates bool
}

// DefaultOptions returns the built-in defaults: white at the bottom,
// 32px squares, coordinates shown.
func DefaultOptions() DisplayOptions {
	return DisplayOptions{
		Flip:            false,
		SquareSize:      DefaultSquareSize,
		ShowCoordinates: true,
	}
}

// ValidateSquareSize sanitizes a raw square size. nil means "not set" and
// yields the default. Anything else is clamped into
// [MinSquareSize, MaxSquareSize] and snapped to the nearest multiple of
// SquareSizeStep (half rounds up), then clamped again so snapping can
// never leave the range. Never fails.
func ValidateSquareSize(raw *int) int {
	if raw == nil {
		return DefaultSquareSize
	}
	return snapSquareSize(*raw)
}

// ValidateSquareSizeString sanitizes raw text from option-setting paths
// (query params, stored settings). Empty or non-numeric input yields the
// default.
func ValidateSquareSizeString(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return DefaultSquareSize
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultSquareSize
	}
	return snapSquareSize(int(math.Round(f)))
}

func snapSquareSize(v int) int {
	v = clampSquareSize(v)
	v = (v + SquareSizeStep/2) / SquareSizeStep * SquareSizeStep
	return clampSquareSize(v)
}

func clampSquareSize(v int) int {
	if v < MinSquareSize {
		return MinSquareSize
	}
	if v > MaxSquareSize {
		return MaxSquareSize
	}
	return v
}
