package collector

import (
	"errors"
	"fmt"
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mandelsoft/datacontainer/pkg/filter"
	"github.com/mandelsoft/datacontainer/pkg/model"
	"github.com/mandelsoft/datacontainer/pkg/provider"
	"github.com/mandelsoft/datacontainer/pkg/relationship"
)

// Collector resolves relationships of models, which require
// access to the data providers.
type Collector struct {
	env            provider.Environment
	mgr            *relationship.Manager
	rootProvider   string
	parentProvider string
	fields         []string
}

type Option func(c *Collector)

// WithParentProvider sets the provider holding the parents
// of a parented list.
func WithParentProvider(name string) Option {
	return func(c *Collector) {
		c.parentProvider = name
	}
}

// WithFields restricts the properties fetched for a model. The
// properties required by the relationship conditions are always
// fetched. Models fetched this way are projections and must not
// be saved.
func WithFields(fields ...string) Option {
	return func(c *Collector) {
		c.fields = append(c.fields, fields...)
	}
}

func New(env provider.Environment, mgr *relationship.Manager, rootProvider string, opts ...Option) *Collector {
	c := &Collector{
		env:          env,
		mgr:          mgr,
		rootProvider: rootProvider,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Collector) Manager() *relationship.Manager {
	return c.mgr
}

func (c *Collector) RootProvider() string {
	return c.rootProvider
}

func (c *Collector) ParentProvider() string {
	return c.parentProvider
}

func (c *Collector) Environment() provider.Environment {
	return c.env
}

// GetModel fetches a model either by a serialized model id
// or by a plain id and an explicit provider name. A serialized
// id takes precedence. An additionally given provider name must
// then match the serialized one.
func (c *Collector) GetModel(id string, providerName ...string) (*model.Model, error) {
	explicit := ""
	if len(providerName) > 0 {
		explicit = providerName[0]
	}
	if mid, err := model.ParseModelId(id); err == nil {
		if explicit != "" && explicit != mid.ProviderName {
			return nil, model.InvalidArgument("model id %q does not belong to provider %q", id, explicit)
		}
		return c.GetModelById(mid)
	}
	if explicit == "" {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidModelId, id)
	}
	if id == "" {
		return nil, model.InvalidArgument("empty model id for provider %q", explicit)
	}
	return c.GetModelById(model.NewModelId(explicit, id))
}

func (c *Collector) GetModelById(id model.ModelId) (*model.Model, error) {
	p, err := c.env.Provider(id.ProviderName)
	if err != nil {
		return nil, err
	}
	cfg := c.config(p)
	cfg.SetId(id.Id)
	log.Trace("get model {{id}}", "id", id)
	return p.Fetch(cfg)
}

// ParentOf returns the parent of a model according to the
// relationship mode. Root models and models of a flat list
// have no parent.
func (c *Collector) ParentOf(m *model.Model) (*model.Model, error) {
	switch c.mgr.Mode() {
	case relationship.ModeHierarchical:
		root, err := c.mgr.IsRoot(m)
		if err != nil || root {
			return nil, err
		}
		return c.SearchParentOf(m)
	case relationship.ModeParentedList:
		return c.searchListParentOf(m)
	default:
		return nil, nil
	}
}

// SearchParentOf searches the parent of a model of a hierarchy.
// A self referencing condition with inverse filter rules is used
// to fetch the parent directly, otherwise the tree is searched
// starting with the root models. If no parent can be found,
// nil is returned.
func (c *Collector) SearchParentOf(m *model.Model) (*model.Model, error) {
	if !c.mgr.Mode().IsHierarchical() {
		return nil, model.InvalidArgument("parent search requires hierarchical mode, found %s", c.mgr.Mode())
	}
	root, err := c.mgr.IsRoot(m)
	if err != nil {
		return nil, err
	}
	if root {
		return nil, model.InvalidArgument("root model %s has no parent", m)
	}

	cond := c.mgr.Definition().ChildCondition(m.GetProviderName(), m.GetProviderName())
	if cond != nil && len(cond.InverseFilterArray()) > 0 {
		log.Trace("direct parent lookup for {{model}}", "model", m)
		return c.fetchParent(cond, m)
	}

	rc, err := c.mgr.RootCondition()
	if err != nil {
		return nil, err
	}
	roots, err := c.fetchAll(c.rootProvider, rc.FilterArray(), "")
	if err != nil {
		return nil, err
	}
	log.Trace("searching parent of {{model}} in {{count}} root models", "model", m, "count", roots.Len())
	return c.SearchParentOfIn(m, roots)
}

// SearchParentOfIn searches the parent of a model in the
// subtrees of the given candidates, which are included
// as possible parent. If no parent can be found,
// nil is returned.
func (c *Collector) SearchParentOfIn(m *model.Model, candidates *model.Collection) (*model.Model, error) {
	return c.searchParentOfIn(m, candidates, sets.New[string]())
}

func (c *Collector) searchParentOfIn(m *model.Model, candidates *model.Collection, visited sets.Set[string]) (*model.Model, error) {
	for _, candidate := range candidates.Models() {
		key := candidate.ModelId().Serialize()
		if visited.Has(key) {
			log.Debug("skipping already visited model {{model}}", "model", key)
			continue
		}
		visited.Insert(key)

		for _, cond := range c.mgr.Definition().ChildConditions(candidate.GetProviderName()) {
			children, err := c.fetchChildren(cond, candidate, "")
			if err != nil {
				return nil, err
			}
			if children.Contains(m) {
				return candidate, nil
			}
			parent, err := c.searchParentOfIn(m, children, visited)
			if err != nil || parent != nil {
				return parent, err
			}
		}
	}
	return nil, nil
}

// CollectSiblingsOf fetches all models sharing the parent
// of the given model, including the model itself. If a
// sorting property is given, the result is sorted
// ascending by this property.
func (c *Collector) CollectSiblingsOf(m *model.Model, sortingProperty string) (*model.Collection, error) {
	switch c.mgr.Mode() {
	case relationship.ModeHierarchical:
		root, err := c.mgr.IsRoot(m)
		if err != nil {
			return nil, err
		}
		if root {
			return c.CollectRoots(sortingProperty)
		}
		parent, err := c.SearchParentOf(m)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("%w: no parent found for %s", provider.ErrNotExist, m)
		}
		cond, err := c.mgr.ChildCondition(parent.GetProviderName(), m.GetProviderName())
		if err != nil {
			return nil, err
		}
		return c.fetchChildren(cond, parent, sortingProperty)

	case relationship.ModeParentedList:
		parent, err := c.searchListParentOf(m)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("%w: no parent found for %s", provider.ErrNotExist, m)
		}
		cond, err := c.mgr.ChildCondition(parent.GetProviderName(), m.GetProviderName())
		if err != nil {
			return nil, err
		}
		return c.fetchChildren(cond, parent, sortingProperty)

	default:
		return c.fetchAll(m.GetProviderName(), nil, sortingProperty)
	}
}

// CollectRoots fetches the root models of a hierarchy. If a
// sorting property is given, the result is sorted ascending by
// this property.
func (c *Collector) CollectRoots(sortingProperty string) (*model.Collection, error) {
	if !c.mgr.Mode().IsHierarchical() {
		return nil, model.InvalidArgument("root models require hierarchical mode, found %s", c.mgr.Mode())
	}
	rc, err := c.mgr.RootCondition()
	if err != nil {
		return nil, err
	}
	return c.fetchAll(c.rootProvider, rc.FilterArray(), sortingProperty)
}

// AssembleAllChildrenFrom collects the ids of all descendants of
// a model belonging to the target provider. The id of the model
// itself is included if it belongs to the target provider.
func (c *Collector) AssembleAllChildrenFrom(m *model.Model, targetProvider string) ([]string, error) {
	var ids []string
	err := c.assembleAllChildrenFrom(m, targetProvider, sets.New[string](), &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Collector) assembleAllChildrenFrom(m *model.Model, target string, visited sets.Set[string], ids *[]string) error {
	key := m.ModelId().Serialize()
	if visited.Has(key) {
		log.Debug("skipping already visited model {{model}}", "model", key)
		return nil
	}
	visited.Insert(key)

	if m.GetProviderName() == target {
		*ids = append(*ids, m.GetId())
	}
	for _, cond := range c.mgr.Definition().ChildConditions(m.GetProviderName()) {
		children, err := c.fetchChildren(cond, m, "")
		if err != nil {
			return err
		}
		for _, child := range children.Models() {
			if err := c.assembleAllChildrenFrom(child, target, visited, ids); err != nil {
				return err
			}
		}
	}
	return nil
}

// CollectChildrenOf fetches the direct children of a model. If
// provider names are given, only children of these providers
// are considered.
func (c *Collector) CollectChildrenOf(parent *model.Model, providerNames ...string) (*model.Collection, error) {
	result := model.NewCollection()
	for _, cond := range c.mgr.Definition().ChildConditions(parent.GetProviderName()) {
		if len(providerNames) > 0 && !slices.Contains(providerNames, cond.DestinationName()) {
			continue
		}
		children, err := c.fetchChildren(cond, parent, "")
		if err != nil {
			return nil, err
		}
		result.Push(children.Models()...)
	}
	return result, nil
}

// CollectDirectChildrenOf fetches the children of a model
// belonging to the given child provider.
func (c *Collector) CollectDirectChildrenOf(parent *model.Model, childProvider string, sortingProperty string) (*model.Collection, error) {
	cond, err := c.mgr.ChildCondition(parent.GetProviderName(), childProvider)
	if err != nil {
		return nil, err
	}
	return c.fetchChildren(cond, parent, sortingProperty)
}

// AssembleParentsFor returns the chain of ancestors of a model,
// starting with its parent.
func (c *Collector) AssembleParentsFor(m *model.Model) (*model.Collection, error) {
	result := model.NewCollection()
	visited := sets.New[string](m.ModelId().Serialize())
	for cur := m; ; {
		parent, err := c.ParentOf(cur)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return result, nil
		}
		key := parent.ModelId().Serialize()
		if visited.Has(key) {
			return nil, relationship.ConfigurationErrorf([]string{parent.GetProviderName()}, "cyclic parent relation at %s", key)
		}
		visited.Insert(key)
		result.Push(parent)
		cur = parent
	}
}

////////////////////////////////////////////////////////////////////////////////

// searchListParentOf resolves the parent of a model of a
// parented list. It is nil if there is no matching parent.
func (c *Collector) searchListParentOf(m *model.Model) (*model.Model, error) {
	if c.parentProvider == "" {
		return nil, relationship.ConfigurationErrorf([]string{m.GetProviderName()}, "no parent provider configured")
	}
	cond, err := c.mgr.ChildCondition(c.parentProvider, m.GetProviderName())
	if err != nil {
		return nil, err
	}
	if len(cond.InverseFilterArray()) > 0 {
		return c.fetchParent(cond, m)
	}
	parents, err := c.fetchAll(c.parentProvider, nil, "")
	if err != nil {
		return nil, err
	}
	for _, p := range parents.Models() {
		if cond.Matches(p, m) {
			return p, nil
		}
	}
	return nil, nil
}

func (c *Collector) fetchParent(cond *relationship.ParentChildCondition, child *model.Model) (*model.Model, error) {
	p, err := c.env.Provider(cond.SourceName())
	if err != nil {
		return nil, err
	}
	cfg := c.config(p)
	cfg.SetFilter(cond.GetInverseFilter(child)...)
	parent, err := p.Fetch(cfg)
	if errors.Is(err, provider.ErrNotExist) {
		return nil, nil
	}
	return parent, err
}

func (c *Collector) fetchChildren(cond *relationship.ParentChildCondition, parent *model.Model, sortingProperty string) (*model.Collection, error) {
	return c.fetchAll(cond.DestinationName(), cond.GetFilter(parent), sortingProperty)
}

func (c *Collector) fetchAll(providerName string, f filter.List, sortingProperty string) (*model.Collection, error) {
	p, err := c.env.Provider(providerName)
	if err != nil {
		return nil, err
	}
	cfg := c.config(p)
	cfg.SetFilter(f...)
	if sortingProperty != "" {
		cfg.SetSorting(provider.SortBy(sortingProperty))
	}
	return p.FetchAll(cfg)
}

func (c *Collector) config(p provider.DataProvider) provider.Config {
	cfg := p.EmptyConfig()
	if fields := c.fieldsFor(p.ProviderName()); len(fields) > 0 {
		cfg.SetFields(fields...)
	}
	return cfg
}
