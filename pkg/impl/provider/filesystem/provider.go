package filesystem

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/datacontainer/pkg/model"
	"github.com/mandelsoft/datacontainer/pkg/provider"
	"github.com/mandelsoft/datacontainer/pkg/utils"
)

// Store is a file system based environment. Every provider
// is a directory containing one YAML file per model.
type Store struct {
	lock      sync.Mutex
	path      string
	fs        vfs.FileSystem
	providers map[string]*Provider
}

var _ provider.Environment = (*Store)(nil)

func New(path string, fss ...vfs.FileSystem) (*Store, error) {
	fs := utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...)

	err := fs.MkdirAll(path, 0o0700)
	if err != nil && !errors.Is(err, vfs.ErrExist) {
		return nil, err
	}
	return &Store{path: path, fs: fs, providers: map[string]*Provider{}}, nil
}

func (s *Store) Provider(name string) (provider.DataProvider, error) {
	if !CheckName(name) {
		return nil, fmt.Errorf("%w: invalid provider name %q", model.ErrInvalidArgument, name)
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	p := s.providers[name]
	if p == nil {
		p = &Provider{store: s, name: name}
		s.providers[name] = p
	}
	return p, nil
}

// ProviderNames lists the providers found in the store.
func (s *Store) ProviderNames() ([]string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	list, err := vfs.ReadDir(s.fs, s.path)
	if err != nil {
		return nil, err
	}
	var r []string
	for _, e := range list {
		if e.IsDir() && CheckName(e.Name()) {
			r = append(r, e.Name())
		}
	}
	return r, nil
}

func (s *Store) Path(path string) string {
	return filepath.Join(s.path, path)
}

func (s *Store) MPath(id model.IdSource) string {
	return filepath.Join(s.path, Path(id))
}

////////////////////////////////////////////////////////////////////////////////

// Provider is the data provider for a single directory of a Store.
type Provider struct {
	store *Store
	name  string
}

var _ provider.DataProvider = (*Provider)(nil)

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
	list, err := p.fetch(cfg.WithAmount(1))
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, provider.NotFound(p.name, cfg)
	}
	return list[0], nil
}

func (p *Provider) FetchAll(cfg provider.Config) (*model.Collection, error) {
	list, err := p.fetch(cfg)
	if err != nil {
		return nil, err
	}
	return model.NewCollection(list...), nil
}

func (p *Provider) fetch(cfg provider.Config) ([]*model.Model, error) {
	p.store.lock.Lock()
	defer p.store.lock.Unlock()

	log.Trace("fetch {{provider}}: {{config}}", "provider", p.name, "config", cfg)
	if cfg.Id() != "" {
		if !CheckName(cfg.Id()) {
			// no model file can carry such a name
			return nil, nil
		}
		m, err := p.get(cfg.Id())
		if err != nil {
			if errors.Is(err, provider.ErrNotExist) {
				return nil, nil
			}
			return nil, err
		}
		return provider.Select(cfg, []*model.Model{m}), nil
	}
	list, err := p.list()
	if err != nil {
		return nil, err
	}
	return provider.Select(cfg, list), nil
}

func (p *Provider) list() ([]*model.Model, error) {
	var result []*model.Model

	list, err := vfs.ReadDir(p.store.fs, p.store.Path(p.name))
	if err != nil {
		if errors.Is(err, vfs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	for _, e := range list {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		m, err := p.get(strings.TrimSuffix(e.Name(), ".yaml"))
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, nil
}

func (p *Provider) get(id string) (*model.Model, error) {
	r, err := p.read(model.NewModelId(p.name, id))
	if err != nil {
		return nil, err
	}
	return r.Model(), nil
}

func (p *Provider) read(id model.ModelId) (*Record, error) {
	path := p.store.MPath(id)
	data, err := vfs.ReadFile(p.store.fs, path)
	if err != nil {
		if errors.Is(err, vfs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", provider.ErrNotExist, id)
		}
		return nil, err
	}

	var r Record
	err = yaml.Unmarshal(data, &r)
	if err != nil {
		return nil, fmt.Errorf("corrupted store: %s: %w", path, err)
	}
	if r.Id != id.GetId() || r.Provider != id.GetProviderName() {
		return nil, fmt.Errorf("corrupted store: %s does not contain model %s", path, id)
	}
	return &r, nil
}

func (p *Provider) Save(m *model.Model) error {
	if err := provider.CheckProvider(p, m); err != nil {
		return err
	}
	p.store.lock.Lock()
	defer p.store.lock.Unlock()

	if m.IsNew() {
		m.SetId(uuid.NewString())
	}
	if !CheckName(m.GetId()) {
		return fmt.Errorf("%w: model id %q cannot be stored", model.ErrInvalidArgument, m.GetId())
	}

	r := NewRecord(m)
	old, err := p.read(m.ModelId())
	if err == nil && old.Hash() == r.Hash() {
		log.Trace("model {{model}} unchanged", "model", m)
		return nil
	}
	if err != nil && !errors.Is(err, provider.ErrNotExist) {
		return err
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	path := p.store.MPath(m)
	err = p.store.fs.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return err
	}
	log.Debug("writing model {{model}}", "model", m)
	return vfs.WriteFile(p.store.fs, path, data, 0o600)
}

func (p *Provider) SaveEach(col *model.Collection) error {
	return provider.SaveEach(p, col)
}

func (p *Provider) Delete(m *model.Model) error {
	p.store.lock.Lock()
	defer p.store.lock.Unlock()

	if !CheckName(m.GetId()) {
		return fmt.Errorf("%w: %s", provider.ErrNotExist, m)
	}
	err := p.store.fs.Remove(p.store.MPath(m))
	if errors.Is(err, vfs.ErrNotExist) {
		return fmt.Errorf("%w: %s", provider.ErrNotExist, m)
	}
	return err
}

func (s *Store) FileSystem() vfs.FileSystem {
	return s.fs
}

// Check verifies that the store directory is accessible.
func (s *Store) Check() error {
	fi, err := s.fs.Stat(s.path)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("store path %q is no directory", s.path)
	}
	return nil
}
