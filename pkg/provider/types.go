package provider

import (
	"errors"
	"fmt"

	"github.com/mandelsoft/datacontainer/pkg/model"
)

var ErrNotExist = errors.New("model not found")
var ErrUnknownProvider = errors.New("unknown data provider")

// NotFound returns an ErrNotExist error describing the failed lookup.
func NotFound(provider string, cfg Config) error {
	return fmt.Errorf("%w: %s: %s", ErrNotExist, provider, cfg)
}

// DataProvider provides access to the models of one provider,
// typically a table or a collection.
type DataProvider interface {
	ProviderName() string

	// EmptyConfig returns a new fetch configuration without restrictions.
	EmptyConfig() Config
	// GetEmptyModel returns a new model without id for this provider.
	GetEmptyModel() *model.Model

	// Fetch returns the first model matching the configuration.
	// If no model matches, ErrNotExist is returned.
	Fetch(cfg Config) (*model.Model, error)
	FetchAll(cfg Config) (*model.Collection, error)

	// Save stores a model. A model without id gets a new one.
	Save(m *model.Model) error
	SaveEach(col *model.Collection) error
	Delete(m *model.Model) error
}

// Environment provides the data providers by name.
type Environment interface {
	Provider(name string) (DataProvider, error)
}

// Specification describes a concrete provider environment.
type Specification interface {
	Create() (Environment, error)
}

// SaveEach saves all models of a collection one by one
// and stops at the first failure.
func SaveEach(p DataProvider, col *model.Collection) error {
	log.Debug("saving {{count}} models to {{provider}}", "count", col.Len(), "provider", p.ProviderName())
	for _, m := range col.Models() {
		if err := p.Save(m); err != nil {
			return err
		}
	}
	return nil
}

// CheckProvider validates that a model belongs to the given provider.
func CheckProvider(p DataProvider, m *model.Model) error {
	if m.GetProviderName() != p.ProviderName() {
		return fmt.Errorf("%w: model %s does not belong to provider %q", model.ErrInvalidArgument, m, p.ProviderName())
	}
	return nil
}
