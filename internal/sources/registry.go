package sources

import (
	"context"
	"fmt"
	"sync"
)

// Registry holds the configured sources. Registration order is aggregation
// priority: the first registered source anchors every merge, and tie-breaks
// (poster choice, episode ownership) follow the same order.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	sources map[string]Source
}

type Descriptor struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

type HealthStatus struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

func (r *Registry) Register(source Source) error {
	if source == nil {
		return fmt.Errorf("source is nil")
	}

	key := source.Key()
	if key == "" {
		return fmt.Errorf("source key is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[key]; exists {
		return fmt.Errorf("source %q already registered", key)
	}

	r.sources[key] = source
	r.order = append(r.order, key)
	return nil
}

func (r *Registry) Get(key string) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	source, ok := r.sources[key]
	return source, ok
}

// Ordered returns every source in priority order.
func (r *Registry) Ordered() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ordered := make([]Source, 0, len(r.order))
	for _, key := range r.order {
		ordered = append(ordered, r.sources[key])
	}
	return ordered
}

func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]Descriptor, 0, len(r.order))
	for index, key := range r.order {
		source := r.sources[key]
		items = append(items, Descriptor{
			Key:      source.Key(),
			Name:     source.Name(),
			Priority: index,
		})
	}
	return items
}

func (r *Registry) Health(ctx context.Context) []HealthStatus {
	ordered := r.Ordered()

	statuses := make([]HealthStatus, 0, len(ordered))
	for _, source := range ordered {
		err := source.HealthCheck(ctx)
		status := HealthStatus{
			Key:     source.Key(),
			Name:    source.Name(),
			Healthy: err == nil,
		}
		if err != nil {
			status.Error = err.Error()
		}
		statuses = append(statuses, status)
	}
	return statuses
}
