package source

import (
	"fmt"
	"iter"
	"slices"

	"paramrun/internal/domain"
)

// Method delegates to a named Provider. The name is resolved at build time;
// the provider runs again on every iteration.
type Method struct {
	Name string
}

// Build implements Spec
func (m Method) Build(env Env) (Source, error) {
	desc := fmt.Sprintf("method(%s)", m.Name)
	provider, ok := env.Providers[m.Name]
	if !ok || provider == nil {
		return nil, domain.LookupErrorf(desc, "provider %q is not registered", m.Name)
	}
	return &method{desc: desc, provider: provider}, nil
}

type method struct {
	desc     string
	provider Provider
}

func (m *method) Tuples() iter.Seq[domain.Tuple] {
	return func(yield func(domain.Tuple) bool) {
		for _, t := range m.provider() {
			if !yield(slices.Clone(t)) {
				return
			}
		}
	}
}

func (m *method) Describe() string { return m.desc }
