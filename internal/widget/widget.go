// Package widget wraps the layout core in the create / render /
// option-change / destroy lifecycle a host UI expects. Every position or
// option change recomputes the layout from scratch and re-renders; there
// is no incremental diffing to get wrong.
package widget

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/kapu/boardwidget/internal/board"
)

var (
	ErrDestroyed     = errors.New("widget destroyed")
	ErrUnknownOption = errors.New("unknown widget option")
)

// Renderer turns a layout into presentation output, typically HTML.
type Renderer interface {
	Render(layout *board.Layout) ([]byte, error)
}

// Widget is one live board instance. Safe for concurrent use.
type Widget struct {
	id string

	mu        sync.RWMutex
	pos       board.Position
	opts      board.DisplayOptions
	renderer  Renderer
	destroyed bool

	subs    map[int]func([]byte)
	nextSub int
}

// New creates a widget showing pos under opts. The square size in opts
// is sanitized on the way in.
func New(pos board.Position, opts board.DisplayOptions, renderer Renderer) *Widget {
	opts.SquareSize = board.ValidateSquareSize(&opts.SquareSize)
	return &Widget{
		id:       uuid.NewString(),
		pos:      pos,
		opts:     opts,
		renderer: renderer,
		subs:     make(map[int]func([]byte)),
	}
}

func (w *Widget) ID() string { return w.id }

// Options returns a copy of the current display options.
func (w *Widget) Options() board.DisplayOptions {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.opts
}

// Layout recomputes the current layout.
func (w *Widget) Layout() (*board.Layout, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.destroyed {
		return nil, ErrDestroyed
	}
	return board.ComputeLayout(w.pos, w.opts), nil
}

// Render recomputes the layout and renders it.
func (w *Widget) Render() ([]byte, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.destroyed {
		return nil, ErrDestroyed
	}
	return w.renderer.Render(board.ComputeLayout(w.pos, w.opts))
}

// SetPosition swaps the displayed position and re-renders.
func (w *Widget) SetPosition(pos board.Position) error {
	return w.update(func() { w.pos = pos })
}

// SetOption applies a named option from raw text, the way option values
// arrive from query params and stored settings. Recognized names are
// "flip", "squareSize" and "showCoordinates"; values are sanitized, a
// bad squareSize falls back to the default rather than failing.
func (w *Widget) SetOption(name, value string) error {
	switch name {
	case "flip":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("option flip: %w", err)
		}
		return w.update(func() { w.opts.Flip = b })
	case "squareSize":
		size := board.ValidateSquareSizeString(value)
		return w.update(func() { w.opts.SquareSize = size })
	case "showCoordinates":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("option showCoordinates: %w", err)
		}
		return w.update(func() { w.opts.ShowCoordinates = b })
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
}

// Subscribe registers a callback invoked with the re-rendered output
// after every change. The returned cancel func unregisters it.
func (w *Widget) Subscribe(fn func(rendered []byte)) (cancel func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextSub
	w.nextSub++
	w.subs[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs, id)
	}
}

// Destroy detaches all subscribers and makes further use fail with
// ErrDestroyed.
func (w *Widget) Destroy() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.destroyed = true
	w.subs = make(map[int]func([]byte))
}

func (w *Widget) update(apply func()) error {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return ErrDestroyed
	}
	apply()
	rendered, err := w.renderer.Render(board.ComputeLayout(w.pos, w.opts))
	subs := make([]func([]byte), 0, len(w.subs))
	for _, fn := range w.subs {
		subs = append(subs, fn)
	}
	w.mu.Unlock()
	if err != nil {
		return err
	}
	for _, fn := range subs {
		fn(rendered)
	}
	return nil
}
