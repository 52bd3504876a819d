// Package cache holds the read-through cache placed in front of slow storage
// backends. It caches raw stored values only.
package cache

import (
	"log/slog"
	"sync"
	"time"
)

// Pruner is a cache that can drop its stale entries on demand.
type Pruner interface {
	Prune() int
}

// Manager periodically prunes the caches registered with it.
type Manager struct {
	logger *slog.Logger

	mu      sync.Mutex
	caches  []Pruner
	stop    chan struct{}
	stopped chan struct{}
}

// NewManager returns an idle manager; nil logger means slog.Default.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger}
}

func (m *Manager) Register(c Pruner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.caches = append(m.caches, c)
}

// PruneNow prunes every registered cache and returns the total removed.
func (m *Manager) PruneNow() int {
	m.mu.Lock()
	caches := append([]Pruner(nil), m.caches...)
	m.mu.Unlock()

	total := 0
	for _, c := range caches {
		total += c.Prune()
	}
	return total
}

// StartCleanup prunes on every tick of interval until Stop. It does nothing
// when already running or when interval is not positive.
func (m *Manager) StartCleanup(interval time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stop != nil || interval <= 0 {
		return
	}
	m.stop = make(chan struct{})
	m.stopped = make(chan struct{})
	go m.loop(interval, m.stop, m.stopped)
}

func (m *Manager) loop(interval time.Duration, stop <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.PruneNow(); n > 0 {
				m.logger.Debug("Pruned stale cache entries", "count", n)
			}
		case <-stop:
			return
		}
	}
}

// Stop ends the cleanup loop and waits for it. Safe to call more than once.
func (m *Manager) Stop() {
	m.mu.Lock()
	stop, stopped := m.stop, m.stopped
	m.stop, m.stopped = nil, nil
	m.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-stopped
}
