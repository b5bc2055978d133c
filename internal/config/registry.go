package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/awaaz-ai/awaaz/pkg/provider/analyze"
	"github.com/awaaz-ai/awaaz/pkg/provider/music"
	"github.com/awaaz-ai/awaaz/pkg/provider/tts"
)

// ErrProviderNotRegistered is returned by Create* methods when no factory has
// been registered under the requested provider name.
var ErrProviderNotRegistered = errors.New("config: provider not registered")

// Registry maps provider names to their constructor functions for each
// provider type. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	analyze map[string]func(ProviderEntry) (analyze.Provider, error)
	tts     map[string]func(ProviderEntry) (tts.Provider, error)
	music   map[string]func(ProviderEntry) (*music.Client, error)
}

// NewRegistry returns an empty, ready-to-use [Registry].
func NewRegistry() *Registry {
	return &Registry{
		analyze: make(map[string]func(ProviderEntry) (analyze.Provider, error)),
		tts:     make(map[string]func(ProviderEntry) (tts.Provider, error)),
		music:   make(map[string]func(ProviderEntry) (*music.Client, error)),
	}
}

// RegisterAnalyze registers an analysis provider factory under name.
// Subsequent calls with the same name overwrite the previous registration.
func (r *Registry) RegisterAnalyze(name string, factory func(ProviderEntry) (analyze.Provider, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyze[name] = factory
}

// RegisterTTS registers a TTS provider factory under name.
func (r *Registry) RegisterTTS(name string, factory func(ProviderEntry) (tts.Provider, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tts[name] = factory
}

// RegisterMusic registers a music client factory under name.
func (r *Registry) RegisterMusic(name string, factory func(ProviderEntry) (*music.Client, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.music[name] = factory
}

// CreateAnalyze instantiates an analysis provider using the factory registered
// under entry.Name. Returns [ErrProviderNotRegistered] if no factory has been
// registered for that name.
func (r *Registry) CreateAnalyze(entry ProviderEntry) (analyze.Provider, error) {
	r.mu.RLock()
	factory, ok := r.analyze[entry.Name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: analyze/%q", ErrProviderNotRegistered, entry.Name)
	}
	return factory(entry)
}

// CreateTTS instantiates a TTS provider using the factory registered under entry.Name.
func (r *Registry) CreateTTS(entry ProviderEntry) (tts.Provider, error) {
	r.mu.RLock()
	factory, ok := r.tts[entry.Name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: tts/%q", ErrProviderNotRegistered, entry.Name)
	}
	return factory(entry)
}

// CreateMusic instantiates a music client using the factory registered under entry.Name.
func (r *Registry) CreateMusic(entry ProviderEntry) (*music.Client, error) {
	r.mu.RLock()
	factory, ok := r.music[entry.Name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: music/%q", ErrProviderNotRegistered, entry.Name)
	}
	return factory(entry)
}
