package settings

import (
	"context"
	"strings"
	"sync"

	"github.com/kapu/boardwidget/internal/board"
)

// memstore is a development-only in-memory store used when neither Redis
// nor a database is configured.
type memstore struct {
	mu       sync.RWMutex
	defaults map[string]board.DisplayOptions
}

func NewMemoryStore() Store {
	return &memstore{defaults: make(map[string]board.DisplayOptions)}
}

func (m *memstore) Defaults(ctx context.Context, scope string) (board.DisplayOptions, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	opts, ok := m.defaults[strings.TrimSpace(scope)]
	if !ok {
		return board.DefaultOptions(), nil
	}
	return opts, nil
}

func (m *memstore) SaveDefaults(ctx context.Context, scope string, opts board.DisplayOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults[strings.TrimSpace(scope)] = sanitize(opts)
	return nil
}

func (m *memstore) Close() error { return nil }
