package relationship

import (
	"fmt"
	"slices"

	"github.com/mandelsoft/datacontainer/pkg/filter"
	"github.com/mandelsoft/datacontainer/pkg/model"
)

type ConditionKind string

const (
	KindRoot        ConditionKind = "root"
	KindParentChild ConditionKind = "parentchild"
)

// Condition is the closed set of relationship conditions.
// Implementations are *RootCondition and *ParentChildCondition.
type Condition interface {
	Kind() ConditionKind
	Validate() error

	condition()
}

////////////////////////////////////////////////////////////////////////////////

// RootSetter sets a property to a constant value.
type RootSetter struct {
	Property string `json:"property"`
	Value    any    `json:"value"`
}

// RootCondition describes the root models of a hierarchy.
type RootCondition struct {
	provider string
	filter   filter.List
	setters  []RootSetter
}

var _ Condition = (*RootCondition)(nil)

func NewRootCondition(provider string, f filter.List, setters ...RootSetter) *RootCondition {
	return &RootCondition{
		provider: provider,
		filter:   slices.Clone(f),
		setters:  slices.Clone(setters),
	}
}

func (c *RootCondition) condition() {}

func (c *RootCondition) Kind() ConditionKind {
	return KindRoot
}

func (c *RootCondition) ProviderName() string {
	return c.provider
}

func (c *RootCondition) Validate() error {
	if c.provider == "" {
		return ConfigurationErrorf(nil, "root condition without provider")
	}
	if err := c.filter.Validate(); err != nil {
		return ConfigurationErrorf([]string{c.provider}, "invalid root filter: %s", err)
	}
	for _, s := range c.setters {
		if s.Property == "" {
			return ConfigurationErrorf([]string{c.provider}, "root setter without property")
		}
	}
	return nil
}

// FilterArray returns the provider filter selecting all root models.
func (c *RootCondition) FilterArray() filter.List {
	return slices.Clone(c.filter)
}

func (c *RootCondition) Setters() []RootSetter {
	return slices.Clone(c.setters)
}

func (c *RootCondition) Matches(m *model.Model) bool {
	if m.GetProviderName() != c.provider {
		return false
	}
	return filter.Match(m, c.filter...)
}

// ApplyTo modifies a model to match the root condition.
func (c *RootCondition) ApplyTo(m *model.Model) error {
	if len(c.setters) == 0 {
		return ConfigurationErrorf([]string{c.provider}, "no setters defined for root condition")
	}
	if m.GetProviderName() != c.provider {
		return fmt.Errorf("%w: model %s cannot be a root of provider %q", model.ErrInvalidArgument, m, c.provider)
	}
	for _, s := range c.setters {
		m.SetProperty(s.Property, s.Value)
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////

// FilterRule relates a property of a child model (Local) to a
// property of the parent model (Remote) or a constant value
// (RemoteValue).
type FilterRule struct {
	Local       string           `json:"local"`
	Remote      string           `json:"remote,omitempty"`
	RemoteValue any              `json:"remoteValue,omitempty"`
	Operation   filter.Operation `json:"operation,omitempty"`
}

func (r FilterRule) operation() filter.Operation {
	if r.Operation == "" {
		return filter.OpEqual
	}
	return r.Operation
}

// InverseRule relates a property of the parent model (Local) to a
// property of the child model (Remote). It is used to fetch the
// parent of a given child directly.
type InverseRule struct {
	Local     string           `json:"local"`
	Remote    string           `json:"remote"`
	Operation filter.Operation `json:"operation,omitempty"`
}

func (r InverseRule) operation() filter.Operation {
	if r.Operation == "" {
		return filter.OpEqual
	}
	return r.Operation
}

// Setter sets property ToField of a child, either to the value of
// the property FromField of the parent or to a constant value.
type Setter struct {
	ToField   string `json:"toField"`
	FromField string `json:"fromField,omitempty"`
	Value     any    `json:"value,omitempty"`
}

// ParentChildCondition describes how the models of a destination
// provider are attached to the models of a source provider.
type ParentChildCondition struct {
	source      string
	destination string
	filter      []FilterRule
	inverse     []InverseRule
	setters     []Setter
}

var _ Condition = (*ParentChildCondition)(nil)

func NewParentChildCondition(source, destination string, f []FilterRule, inverse []InverseRule, setters ...Setter) *ParentChildCondition {
	return &ParentChildCondition{
		source:      source,
		destination: destination,
		filter:      slices.Clone(f),
		inverse:     slices.Clone(inverse),
		setters:     slices.Clone(setters),
	}
}

func (c *ParentChildCondition) condition() {}

func (c *ParentChildCondition) Kind() ConditionKind {
	return KindParentChild
}

func (c *ParentChildCondition) SourceName() string {
	return c.source
}

func (c *ParentChildCondition) DestinationName() string {
	return c.destination
}

// IsSelfReferencing reports whether parent and child models
// belong to the same provider.
func (c *ParentChildCondition) IsSelfReferencing() bool {
	return c.source == c.destination
}

func (c *ParentChildCondition) Validate() error {
	providers := []string{c.source, c.destination}
	if c.source == "" || c.destination == "" {
		return ConfigurationErrorf(providers, "parent child condition requires source and destination")
	}
	if len(c.filter) == 0 {
		return ConfigurationErrorf(providers, "parent child condition without filter")
	}
	for _, r := range c.filter {
		if r.Local == "" {
			return ConfigurationErrorf(providers, "filter rule without local property")
		}
		if _, err := filter.Compare(r.operation(), r.Local, nil); err != nil {
			return ConfigurationErrorf(providers, "invalid filter rule: %s", err)
		}
	}
	for _, r := range c.inverse {
		if r.Local == "" || r.Remote == "" {
			return ConfigurationErrorf(providers, "inverse filter rule requires local and remote property")
		}
		if _, err := filter.Compare(r.operation(), r.Local, nil); err != nil {
			return ConfigurationErrorf(providers, "invalid inverse filter rule: %s", err)
		}
	}
	for _, s := range c.setters {
		if s.ToField == "" {
			return ConfigurationErrorf(providers, "setter without target field")
		}
	}
	return nil
}

// GetFilter returns the provider filter selecting the children of the given parent.
func (c *ParentChildCondition) GetFilter(parent *model.Model) filter.List {
	var result filter.List
	for _, r := range c.filter {
		v := r.RemoteValue
		if r.Remote != "" {
			v = parent.GetProperty(r.Remote)
		}
		result = append(result, filter.Filter{Operation: r.operation(), Property: r.Local, Value: v})
	}
	return result
}

// FilterArray returns the parent independent filter rules.
func (c *ParentChildCondition) FilterArray() []FilterRule {
	return slices.Clone(c.filter)
}

// InverseFilterArray returns the rules to resolve the parent
// of a child. It is empty if there is no direct way.
func (c *ParentChildCondition) InverseFilterArray() []InverseRule {
	return slices.Clone(c.inverse)
}

// GetInverseFilter returns the provider filter selecting the
// parent of the given child.
func (c *ParentChildCondition) GetInverseFilter(child *model.Model) filter.List {
	var result filter.List
	for _, r := range c.inverse {
		result = append(result, filter.Filter{Operation: r.operation(), Property: r.Local, Value: child.GetProperty(r.Remote)})
	}
	return result
}

func (c *ParentChildCondition) Setters() []Setter {
	return slices.Clone(c.setters)
}

// Matches checks whether child is a child of parent.
func (c *ParentChildCondition) Matches(parent, child *model.Model) bool {
	if parent.GetProviderName() != c.source || child.GetProviderName() != c.destination {
		return false
	}
	return filter.Match(child, c.GetFilter(parent)...)
}

// ApplyTo modifies child to become a child of parent.
func (c *ParentChildCondition) ApplyTo(parent, child *model.Model) error {
	if len(c.setters) == 0 {
		return ConfigurationErrorf([]string{c.source, c.destination}, "no setters defined for parent child condition")
	}
	if parent.GetProviderName() != c.source {
		return fmt.Errorf("%w: parent %s does not belong to provider %q", model.ErrInvalidArgument, parent, c.source)
	}
	if child.GetProviderName() != c.destination {
		return fmt.Errorf("%w: child %s does not belong to provider %q", model.ErrInvalidArgument, child, c.destination)
	}
	for _, s := range c.setters {
		if s.FromField != "" {
			child.SetProperty(s.ToField, parent.GetProperty(s.FromField))
		} else {
			child.SetProperty(s.ToField, s.Value)
		}
	}
	return nil
}

// CopyFrom copies the relationship properties from source to
// destination, both being children of the same parent afterwards.
func (c *ParentChildCondition) CopyFrom(source, destination *model.Model) error {
	if len(c.setters) == 0 {
		return ConfigurationErrorf([]string{c.source, c.destination}, "no setters defined for parent child condition")
	}
	for _, m := range []*model.Model{source, destination} {
		if m.GetProviderName() != c.destination {
			return fmt.Errorf("%w: model %s does not belong to provider %q", model.ErrInvalidArgument, m, c.destination)
		}
	}
	for _, s := range c.setters {
		if s.FromField != "" {
			destination.SetProperty(s.ToField, source.GetProperty(s.ToField))
		} else {
			destination.SetProperty(s.ToField, s.Value)
		}
	}
	return nil
}
