package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mandelsoft/datacontainer/pkg/model"
	"github.com/mandelsoft/datacontainer/pkg/provider"
)

// Provider keeps the models of one provider in memory.
// Fetched models are copies, so modifications must be saved.
type Provider struct {
	lock   sync.Mutex
	name   string
	order  []string
	models map[string]*model.Model

	fetches int
}

var _ provider.DataProvider = (*Provider)(nil)

func New(name string, models ...*model.Model) *Provider {
	p := &Provider{
		name:   name,
		models: map[string]*model.Model{},
	}
	for _, m := range models {
		p.put(m.Clone())
	}
	return p
}

func (p *Provider) ProviderName() string {
	return p.name
}

func (p *Provider) EmptyConfig() provider.Config {
	return provider.Config{}
}

func (p *Provider) GetEmptyModel() *model.Model {
	return model.New(p.name, "")
}

func (p *Provider) Fetch(cfg provider.Config) (*model.Model, error) {
	list := p.fetch(cfg.WithAmount(1))
	if len(list) == 0 {
		return nil, provider.NotFound(p.name, cfg)
	}
	return list[0], nil
}

func (p *Provider) FetchAll(cfg provider.Config) (*model.Collection, error) {
	return model.NewCollection(p.fetch(cfg)...), nil
}

func (p *Provider) fetch(cfg provider.Config) []*model.Model {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.fetches++
	log.Trace("fetch {{provider}}: {{config}}", "provider", p.name, "config", cfg)
	list := make([]*model.Model, 0, len(p.order))
	for _, id := range p.order {
		list = append(list, p.models[id])
	}
	return provider.Select(cfg, list)
}

func (p *Provider) Save(m *model.Model) error {
	if err := provider.CheckProvider(p, m); err != nil {
		return err
	}
	p.lock.Lock()
	defer p.lock.Unlock()

	if m.IsNew() {
		m.SetId(uuid.NewString())
	}
	p.put(m.Clone())
	return nil
}

func (p *Provider) SaveEach(col *model.Collection) error {
	return provider.SaveEach(p, col)
}

func (p *Provider) Delete(m *model.Model) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if _, ok := p.models[m.GetId()]; !ok {
		return provider.NotFound(p.name, provider.Config{}.WithId(m.GetId()))
	}
	delete(p.models, m.GetId())
	for i, id := range p.order {
		if id == m.GetId() {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return nil
}

func (p *Provider) put(m *model.Model) {
	if _, ok := p.models[m.GetId()]; !ok {
		p.order = append(p.order, m.GetId())
	}
	p.models[m.GetId()] = m
}

// Fetches reports the number of fetch requests executed so far.
func (p *Provider) Fetches() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.fetches
}

func (p *Provider) ResetFetches() {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.fetches = 0
}
