package suite

import (
	"io/fs"
	"maps"
	"slices"

	"paramrun/internal/domain"
	"paramrun/internal/engine"
	"paramrun/internal/source"
)

// Registry holds the named test functions, providers and enumerations that
// declarative suites refer to
type Registry struct {
	tests     map[string]engine.TestFunc
	providers map[string]source.Provider
	enums     map[string]source.Enum
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		tests:     make(map[string]engine.TestFunc),
		providers: make(map[string]source.Provider),
		enums:     make(map[string]source.Enum),
	}
}

// RegisterTest adds or replaces a named test function
func (r *Registry) RegisterTest(name string, fn engine.TestFunc) {
	r.tests[name] = fn
}

// RegisterProvider adds or replaces a named provider for Method sources
func (r *Registry) RegisterProvider(name string, p source.Provider) {
	r.providers[name] = p
}

// RegisterEnum adds or replaces an enumeration under its own name
func (r *Registry) RegisterEnum(e source.Enum) {
	r.enums[e.Name] = e
}

// Test resolves a test function by name
func (r *Registry) Test(name string) (engine.TestFunc, error) {
	fn, ok := r.tests[name]
	if !ok {
		return engine.TestFunc{}, domain.LookupErrorf("test("+name+")", "test function %q is not registered", name)
	}
	return fn, nil
}

// TestNames returns the registered test names, sorted
func (r *Registry) TestNames() []string {
	return slices.Sorted(maps.Keys(r.tests))
}

// Env returns the environment specs are built against
func (r *Registry) Env(resources fs.FS) source.Env {
	return source.Env{
		Resources: resources,
		Providers: maps.Clone(r.providers),
		Enums:     maps.Clone(r.enums),
	}
}
