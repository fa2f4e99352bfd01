package relationship

import (
	"fmt"
	"slices"
)

// Definition holds the conditions of a model relationship:
// at most one root condition and a set of parent child
// conditions, unique per provider pair.
type Definition struct {
	root     *RootCondition
	children []*ParentChildCondition
}

func NewDefinition(conds ...Condition) (*Definition, error) {
	d := &Definition{}
	for _, c := range conds {
		if err := d.Add(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Definition) Add(c Condition) error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch c.Kind() {
	case KindRoot:
		if d.root != nil {
			return ConfigurationErrorf([]string{d.root.ProviderName()}, "root condition already defined")
		}
		d.root = c.(*RootCondition)
	case KindParentChild:
		pc := c.(*ParentChildCondition)
		if d.ChildCondition(pc.SourceName(), pc.DestinationName()) != nil {
			return ConfigurationErrorf([]string{pc.SourceName(), pc.DestinationName()}, "parent child condition already defined")
		}
		d.children = append(d.children, pc)
	default:
		panic(fmt.Sprintf("unknown condition kind %q", c.Kind()))
	}
	return nil
}

// RootCondition returns the root condition or nil.
func (d *Definition) RootCondition() *RootCondition {
	return d.root
}

// ChildConditions returns all conditions with the given
// provider as parent provider.
func (d *Definition) ChildConditions(source string) []*ParentChildCondition {
	var r []*ParentChildCondition
	for _, c := range d.children {
		if c.SourceName() == source {
			r = append(r, c)
		}
	}
	return r
}

// ParentConditions returns all conditions with the given
// provider as child provider.
func (d *Definition) ParentConditions(destination string) []*ParentChildCondition {
	var r []*ParentChildCondition
	for _, c := range d.children {
		if c.DestinationName() == destination {
			r = append(r, c)
		}
	}
	return r
}

// ChildCondition returns the condition for the given provider
// pair or nil.
func (d *Definition) ChildCondition(parent, child string) *ParentChildCondition {
	for _, c := range d.children {
		if c.SourceName() == parent && c.DestinationName() == child {
			return c
		}
	}
	return nil
}

func (d *Definition) Conditions() []Condition {
	var r []Condition
	if d.root != nil {
		r = append(r, d.root)
	}
	for _, c := range d.children {
		r = append(r, c)
	}
	return r
}

// ProviderNames returns all providers involved in the definition.
func (d *Definition) ProviderNames() []string {
	var r []string
	add := func(n string) {
		if !slices.Contains(r, n) {
			r = append(r, n)
		}
	}
	if d.root != nil {
		add(d.root.ProviderName())
	}
	for _, c := range d.children {
		add(c.SourceName())
		add(c.DestinationName())
	}
	return r
}
