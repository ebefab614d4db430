package filter

import (
	"fmt"
	"slices"
	"sync"
)

// Manager holds named, pre-compiled filters such as configuration presets
type Manager struct {
	compiler *Compiler
	filters  map[string]*Expression
	mu       sync.RWMutex
}

// NewManager creates a new filter manager. A nil compiler uses the default one.
func NewManager(compiler *Compiler) *Manager {
	if compiler == nil {
		compiler = defaultCompiler
	}
	return &Manager{
		compiler: compiler,
		filters:  make(map[string]*Expression),
	}
}

// RegisterFilter registers a new filter or updates an existing one
func (m *Manager) RegisterFilter(name, expression string) error {
	compiled, err := m.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter '%s': %w", name, err)
	}

	m.mu.Lock()
	m.filters[name] = compiled
	m.mu.Unlock()
	return nil
}

// GetFilter returns a registered filter
func (m *Manager) GetFilter(name string) (*Expression, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.filters[name]
	return f, ok
}

// Names returns the registered filter names, sorted
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.filters))
	for name := range m.filters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
