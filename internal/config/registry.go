package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/MrWong99/voicelist/pkg/voice"
)

// ErrSourceNotRegistered is returned by [Registry.CreateSource] when no
// factory has been registered under the requested name.
var ErrSourceNotRegistered = errors.New("config: source not registered")

// SourceFactory constructs a voice source from its configuration block.
type SourceFactory func(SourceConfig) (voice.Source, error)

// Registry maps source names to their constructors. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]SourceFactory
}

// NewRegistry returns an empty, ready-to-use [Registry].
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]SourceFactory)}
}

// RegisterSource registers a source factory under name.
// Subsequent calls with the same name overwrite the previous registration.
func (r *Registry) RegisterSource(name string, factory SourceFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[name] = factory
}

// CreateSource instantiates the source named by entry.Name.
// Returns an error wrapping [ErrSourceNotRegistered] for unknown names.
func (r *Registry) CreateSource(entry SourceConfig) (voice.Source, error) {
	r.mu.RLock()
	factory, ok := r.sources[entry.Name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSourceNotRegistered, entry.Name)
	}
	src, err := factory(entry)
	if err != nil {
		return nil, fmt.Errorf("config: create source %q: %w", entry.Name, err)
	}
	return src, nil
}
