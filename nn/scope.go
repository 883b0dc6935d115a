package nn

import (
	"fmt"
	"log/slog"
	"sync"
)

// Scope carries the services every layer consumes at construction time:
// a name allocator and a logger. One scope per model graph; layers built
// in the same scope get names unique within it.
type Scope struct {
	log *slog.Logger

	mu     sync.Mutex
	counts map[string]int
}

// NewScope creates a scope. A nil logger falls back to slog.Default().
func NewScope(logger *slog.Logger) *Scope {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scope{
		log:    logger,
		counts: make(map[string]int),
	}
}

// Logger returns the scope's logger.
func (s *Scope) Logger() *slog.Logger {
	return s.log
}

// name resolves a layer name: an explicit name is used as-is, an empty
// name becomes "<kind>_<n>" with a per-kind counter starting at 1.
func (s *Scope) name(kind, explicit string) string {
	if explicit != "" {
		return explicit
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[kind]++
	return fmt.Sprintf("%s_%d", kind, s.counts[kind])
}
