package relationship

import (
	"github.com/mandelsoft/datacontainer/pkg/model"
)

// Manager applies the conditions of a relationship
// definition to models.
type Manager struct {
	def  *Definition
	mode Mode
}

func NewManager(def *Definition, mode Mode) *Manager {
	if def == nil {
		def = &Definition{}
	}
	return &Manager{def: def, mode: mode}
}

func (r *Manager) Mode() Mode {
	return r.mode
}

func (r *Manager) Definition() *Definition {
	return r.def
}

// RootCondition returns the root condition. In hierarchical mode
// a missing root condition is a configuration error.
func (r *Manager) RootCondition() (*RootCondition, error) {
	c := r.def.RootCondition()
	if c == nil {
		return nil, ConfigurationErrorf(nil, "no root condition defined")
	}
	return c, nil
}

// ChildCondition returns the parent child condition for a provider pair.
func (r *Manager) ChildCondition(parent, child string) (*ParentChildCondition, error) {
	c := r.def.ChildCondition(parent, child)
	if c == nil {
		return nil, ConfigurationErrorf([]string{parent, child}, "no parent child condition defined")
	}
	return c, nil
}

// IsRoot checks whether a model is a root model. Outside of the
// hierarchical mode there are no root models.
func (r *Manager) IsRoot(m *model.Model) (bool, error) {
	if !r.mode.IsHierarchical() {
		return false, nil
	}
	c, err := r.RootCondition()
	if err != nil {
		return false, err
	}
	return c.Matches(m), nil
}

// SetRoot turns a model into a root model. Outside of the
// hierarchical mode this is a no-op.
func (r *Manager) SetRoot(m *model.Model) error {
	if !r.mode.IsHierarchical() {
		return nil
	}
	c, err := r.RootCondition()
	if err != nil {
		return err
	}
	log.Trace("set root {{model}}", "model", m)
	return c.ApplyTo(m)
}

func (r *Manager) SetAllRoot(col *model.Collection) error {
	for _, m := range col.Models() {
		if err := r.SetRoot(m); err != nil {
			return err
		}
	}
	return nil
}

// SetParent makes child a child of parent.
func (r *Manager) SetParent(child, parent *model.Model) error {
	c, err := r.ChildCondition(parent.GetProviderName(), child.GetProviderName())
	if err != nil {
		return err
	}
	log.Trace("set parent of {{model}} to {{parent}}", "model", child, "parent", parent)
	return c.ApplyTo(parent, child)
}

func (r *Manager) SetParentForAll(col *model.Collection, parent *model.Model) error {
	for _, m := range col.Models() {
		if err := r.SetParent(m, parent); err != nil {
			return err
		}
	}
	return nil
}

// SetSameParent moves receiver to the parent of source, which
// is a model of the provider parentProvider.
func (r *Manager) SetSameParent(receiver, source *model.Model, parentProvider string) error {
	c, err := r.ChildCondition(parentProvider, receiver.GetProviderName())
	if err != nil {
		return err
	}
	log.Trace("set parent of {{model}} to parent of {{source}}", "model", receiver, "source", source)
	return c.CopyFrom(source, receiver)
}

func (r *Manager) SetSameParentForAll(col *model.Collection, source *model.Model, parentProvider string) error {
	for _, m := range col.Models() {
		if err := r.SetSameParent(m, source, parentProvider); err != nil {
			return err
		}
	}
	return nil
}

// IsChildOf checks whether child is a direct child of parent.
func (r *Manager) IsChildOf(parent, child *model.Model) bool {
	c := r.def.ChildCondition(parent.GetProviderName(), child.GetProviderName())
	return c != nil && c.Matches(parent, child)
}
