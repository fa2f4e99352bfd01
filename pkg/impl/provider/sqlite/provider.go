package sqlite

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mandelsoft/datacontainer/pkg/model"
	"github.com/mandelsoft/datacontainer/pkg/provider"
)

// Provider is the data provider for the models of
// one provider name in a Store.
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
	stmt, args, err := buildQuery(p.name, cfg)
	if err != nil {
		return nil, err
	}
	log.Trace("query {{statement}} {{args}}", "statement", stmt, "args", args)

	rows, err := p.store.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch from %q failed: %w", p.name, err)
	}
	defer rows.Close()

	var result []*model.Model
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		props, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("corrupted properties of %s::%s: %w", p.name, id, err)
		}
		result = append(result, model.NewWithProperties(p.name, id, props).Project(cfg.Fields()...))
	}
	return result, rows.Err()
}

func (p *Provider) Save(m *model.Model) error {
	if err := provider.CheckProvider(p, m); err != nil {
		return err
	}
	if m.IsNew() {
		m.SetId(uuid.NewString())
	}
	data, err := json.Marshal(m.Properties())
	if err != nil {
		return fmt.Errorf("cannot encode properties of %s: %w", m, err)
	}
	log.Debug("saving model {{model}}", "model", m)
	_, err = p.store.db.Exec(`INSERT INTO models (provider, id, properties) VALUES (?, ?, ?)
ON CONFLICT (provider, id) DO UPDATE SET properties = excluded.properties`, p.name, m.GetId(), string(data))
	return err
}

func (p *Provider) SaveEach(col *model.Collection) error {
	return provider.SaveEach(p, col)
}

func (p *Provider) Delete(m *model.Model) error {
	r, err := p.store.db.Exec(`DELETE FROM models WHERE provider = ? AND id = ?`, p.name, m.GetId())
	if err != nil {
		return err
	}
	n, err := r.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", provider.ErrNotExist, m)
	}
	return nil
}

// decode unmarshals the property document keeping
// integral numbers as int64.
func decode(data []byte) (map[string]any, error) {
	var props map[string]any

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&props); err != nil {
		return nil, err
	}
	for k, v := range props {
		if n, ok := v.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				props[k] = i
			} else if f, err := n.Float64(); err == nil {
				props[k] = f
			} else {
				props[k] = n.String()
			}
		}
	}
	return props, nil
}
