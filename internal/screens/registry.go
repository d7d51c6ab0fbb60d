package screens

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a screen bound to a manager.
type Factory func(m *Manager) (Screen, error)

var (
	factories = make(map[Kind]Factory)
	mu        sync.RWMutex
)

// Register adds a screen factory to the registry.
// Called from init() in each screen's file.
// Panics if the kind is already registered.
func Register(k Kind, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[k]; exists {
		panic(fmt.Sprintf("screens: kind %s already registered", k))
	}
	factories[k] = f
}

// Kinds returns all registered kinds in declaration order.
func Kinds() []Kind {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Kind, 0, len(factories))
	for k := range factories {
		result = append(result, k)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Create builds a new screen of the given kind.
// Returns an error if the kind is not registered.
func Create(k Kind, m *Manager) (Screen, error) {
	mu.RLock()
	f, ok := factories[k]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("screens: unknown kind %s", k)
	}
	return f(m)
}
