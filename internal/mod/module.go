// Package mod provides the module abstraction used by batch workflows: a
// named, self-validating unit of work with a declared I/O surface.
package mod

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Module defines the interface that all modules must implement
type Module interface {
	// Name returns the module's unique identifier
	Name() string

	// GetIO returns the module's input/output specification
	GetIO() ModuleIO

	// Validate checks if the parameters are valid
	Validate(params map[string]interface{}) error

	// Execute runs the module with the given parameters
	Execute(ctx context.Context, params map[string]interface{}) (ModuleResult, error)
}

// ModuleRegistry stores all available modules
type ModuleRegistry struct {
	modules map[string]Module
	sync.RWMutex
}

// NewModuleRegistry creates a new module registry
func NewModuleRegistry() *ModuleRegistry {
	return &ModuleRegistry{
		modules: make(map[string]Module),
	}
}

// Register adds a module to the registry
func (r *ModuleRegistry) Register(m Module) error {
	if m == nil {
		return fmt.Errorf("cannot register nil module")
	}

	name := m.Name()
	if name == "" {
		return fmt.Errorf("module name cannot be empty")
	}

	if err := ValidateIO(m.GetIO()); err != nil {
		return fmt.Errorf("invalid I/O specification for module %s: %w", name, err)
	}

	r.Lock()
	defer r.Unlock()

	if _, exists := r.modules[name]; exists {
		return fmt.Errorf("module %s is already registered", name)
	}

	r.modules[name] = m
	return nil
}

// Get retrieves a module by name
func (r *ModuleRegistry) Get(name string) (Module, error) {
	if name == "" {
		return nil, fmt.Errorf("module name cannot be empty")
	}

	r.RLock()
	defer r.RUnlock()

	module, exists := r.modules[name]
	if !exists {
		return nil, fmt.Errorf("module %s not found", name)
	}
	return module, nil
}

// Names returns the registered module names in sorted order
func (r *ModuleRegistry) Names() []string {
	r.RLock()
	defer r.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseParams converts a generic parameter map into the module's params struct
func ParseParams(params map[string]interface{}, target interface{}) error {
	if params == nil {
		return fmt.Errorf("params cannot be nil")
	}
	if target == nil {
		return fmt.Errorf("target cannot be nil")
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to a struct")
	}

	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("error marshaling params: %w", err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("error unmarshaling params: %w", err)
	}

	return nil
}
