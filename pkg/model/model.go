package model

import (
	"fmt"
	"slices"
	"sort"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// IdProperty is the name of the property mapped to the model id.
const IdProperty = "id"

// Model is a single record of a data provider. It is identified by
// its provider name and id. Properties keep their insertion order.
type Model struct {
	id       string
	provider string
	names    []string
	values   map[string]any
}

var _ IdSource = (*Model)(nil)

func New(provider, id string) *Model {
	return &Model{
		id:       id,
		provider: provider,
		values:   map[string]any{},
	}
}

// NewWithProperties creates a model with the given properties.
// Because maps are unordered, the property names are sorted.
func NewWithProperties(provider, id string, props map[string]any) *Model {
	m := New(provider, id)
	names := make([]string, 0, len(props))
	for n := range props {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		m.SetProperty(n, props[n])
	}
	return m
}

func (m *Model) GetId() string {
	return m.id
}

func (m *Model) SetId(id string) {
	m.id = id
}

func (m *Model) IsNew() bool {
	return m.id == ""
}

func (m *Model) GetProviderName() string {
	return m.provider
}

func (m *Model) ModelId() ModelId {
	return NewModelIdFor(m)
}

// GetProperty returns the value of a property or nil if
// the property is not set. The id property is mapped to
// the model id.
func (m *Model) GetProperty(name string) any {
	if name == IdProperty {
		return m.id
	}
	return m.values[name]
}

func (m *Model) HasProperty(name string) bool {
	if name == IdProperty {
		return true
	}
	_, ok := m.values[name]
	return ok
}

func (m *Model) SetProperty(name string, value any) {
	if name == IdProperty {
		m.id = cast.ToString(value)
		return
	}
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = value
}

func (m *Model) RemoveProperty(name string) {
	if _, ok := m.values[name]; !ok {
		return
	}
	delete(m.values, name)
	m.names = slices.DeleteFunc(m.names, func(n string) bool { return n == name })
}

// GetInt64Property returns a property converted to an integer.
// Unset properties are reported as 0.
func (m *Model) GetInt64Property(name string) (int64, error) {
	v := m.GetProperty(name)
	if v == nil {
		return 0, nil
	}
	i, err := cast.ToInt64E(v)
	if err != nil {
		f, ferr := cast.ToFloat64E(v)
		if ferr != nil {
			return 0, fmt.Errorf("property %q of %s is not numeric: %w", name, m.ModelId(), err)
		}
		i = int64(f)
	}
	return i, nil
}

// PropertyNames returns the property names in insertion order.
func (m *Model) PropertyNames() []string {
	return slices.Clone(m.names)
}

// Properties returns a copy of the property map.
func (m *Model) Properties() map[string]any {
	r := make(map[string]any, len(m.values))
	for k, v := range m.values {
		r[k] = v
	}
	return r
}

// Project reduces the property set to the given names.
// An empty list keeps all properties.
func (m *Model) Project(names ...string) *Model {
	if len(names) == 0 {
		return m.Clone()
	}
	r := New(m.provider, m.id)
	for _, n := range m.names {
		if slices.Contains(names, n) {
			r.SetProperty(n, m.values[n])
		}
	}
	return r
}

func (m *Model) Clone() *Model {
	r := &Model{
		id:       m.id,
		provider: m.provider,
		names:    slices.Clone(m.names),
		values:   make(map[string]any, len(m.values)),
	}
	for k, v := range m.values {
		r.values[k] = v
	}
	return r
}

func (m *Model) String() string {
	return m.ModelId().String()
}

type modelSpec struct {
	Id         string         `json:"id"`
	Provider   string         `json:"provider"`
	Properties map[string]any `json:"properties,omitempty"`
}

func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(&modelSpec{
		Id:         m.id,
		Provider:   m.provider,
		Properties: m.values,
	})
}

func (m *Model) UnmarshalJSON(data []byte) error {
	var spec modelSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return err
	}
	*m = *NewWithProperties(spec.Provider, spec.Id, spec.Properties)
	return nil
}

// Equal compares the identity of two models.
func Equal(a, b *Model) bool {
	if a == nil || b == nil {
		return a == b
	}
	return EqualId(a, b)
}
