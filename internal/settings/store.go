// Package settings reads and writes the stored default display options
// (flip, square size, coordinate visibility) from the deployment's
// settings store. Defaults are loaded once at startup and handed to the
// rendering core as a plain value; the core itself stays stateless.
package settings

import (
	"context"

	"github.com/kapu/boardwidget/internal/board"
)

// Store persists default display options per scope (a site, a room, a
// tenant — whatever the host application keys its settings by).
//
// A scope with nothing stored is not an error: Defaults returns the
// built-in board.DefaultOptions. Stored square sizes are sanitized on
// both read and write, so a store never yields an out-of-range value.
type Store interface {
	Defaults(ctx context.Context, scope string) (board.DisplayOptions, error)
	SaveDefaults(ctx context.Context, scope string, opts board.DisplayOptions) error
	Close() error
}

func sanitize(opts board.DisplayOptions) board.DisplayOptions {
	opts.SquareSize = board.ValidateSquareSize(&opts.SquareSize)
	return opts
}
