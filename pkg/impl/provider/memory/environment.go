package memory

import (
	"slices"
	"sync"

	"github.com/mandelsoft/datacontainer/pkg/model"
	"github.com/mandelsoft/datacontainer/pkg/provider"
)

// Environment creates in-memory providers on demand.
type Environment struct {
	lock      sync.Mutex
	providers map[string]*Provider
}

var _ provider.Environment = (*Environment)(nil)

func NewEnvironment(providers ...*Provider) *Environment {
	e := &Environment{providers: map[string]*Provider{}}
	for _, p := range providers {
		e.providers[p.ProviderName()] = p
	}
	return e
}

func (e *Environment) Provider(name string) (provider.DataProvider, error) {
	return e.Get(name), nil
}

// Get returns the provider with the given name, it is
// created if it does not exist yet.
func (e *Environment) Get(name string) *Provider {
	e.lock.Lock()
	defer e.lock.Unlock()

	p := e.providers[name]
	if p == nil {
		p = New(name)
		e.providers[name] = p
	}
	return p
}

// Add stores models in their providers.
func (e *Environment) Add(models ...*model.Model) error {
	for _, m := range models {
		if err := e.Get(m.GetProviderName()).Save(m); err != nil {
			return err
		}
	}
	return nil
}

func (e *Environment) ProviderNames() []string {
	e.lock.Lock()
	defer e.lock.Unlock()

	var r []string
	for n := range e.providers {
		r = append(r, n)
	}
	slices.Sort(r)
	return r
}

func (e *Environment) Fetches() int {
	e.lock.Lock()
	defer e.lock.Unlock()

	n := 0
	for _, p := range e.providers {
		n += p.Fetches()
	}
	return n
}

func (e *Environment) ResetFetches() {
	e.lock.Lock()
	defer e.lock.Unlock()

	for _, p := range e.providers {
		p.ResetFetches()
	}
}

type Specification struct {
	Models []*model.Model
}

var _ provider.Specification = (*Specification)(nil)

func NewSpecification(models ...*model.Model) *Specification {
	return &Specification{Models: models}
}

func (s *Specification) Create() (provider.Environment, error) {
	e := NewEnvironment()
	return e, e.Add(s.Models...)
}
