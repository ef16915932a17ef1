package sports

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages registered sport configurations.
type Registry struct {
	configs map[string]*Config
	mu      sync.RWMutex
}

// NewRegistry creates an empty sport registry.
func NewRegistry() *Registry {
	return &Registry{
		configs: make(map[string]*Config),
	}
}

// Register adds a sport configuration to the registry.
func (r *Registry) Register(cfg *Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.configs[cfg.Key]; exists {
		return fmt.Errorf("sport %s is already registered", cfg.Key)
	}

	r.configs[cfg.Key] = cfg
	return nil
}

// Get retrieves a sport configuration by key.
func (r *Registry) Get(key string) (*Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, exists := r.configs[key]
	return cfg, exists
}

// All returns every registered sport configuration, ordered by key.
func (r *Registry) All() []*Config {
	r.mu.RLock()
	defer r.mu.RUnlock()

	configs := make([]*Config, 0, len(r.configs))
	for _, cfg := range r.configs {
		configs = append(configs, cfg)
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].Key < configs[j].Key })
	return configs
}

// Count returns the number of registered sports.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.configs)
}

// DefaultRegistry returns a registry with the four supported sports.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, cfg := range []*Config{Soccer(), Tennis(), Cricket(), Formula1()} {
		// Keys are distinct constants; registration cannot collide.
		_ = r.Register(cfg)
	}
	return r
}
