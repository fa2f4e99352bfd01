package provider

import (
	"fmt"
	"sync"
)

// Registry is a static environment of named data providers.
type Registry struct {
	lock      sync.Mutex
	providers map[string]DataProvider
}

var _ Environment = (*Registry)(nil)

// NewEnvironment provides a static set of data providers.
func NewEnvironment(providers ...DataProvider) *Registry {
	e := &Registry{providers: map[string]DataProvider{}}
	for _, p := range providers {
		e.Add(p)
	}
	return e
}

func (e *Registry) Add(p DataProvider) {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.providers[p.ProviderName()] = p
}

func (e *Registry) Provider(name string) (DataProvider, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	p := e.providers[name]
	if p == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownProvider, name)
	}
	return p, nil
}
