package model

import (
	"slices"
)

// Collection is an ordered list of models.
type Collection struct {
	models []*Model
}

func NewCollection(models ...*Model) *Collection {
	return &Collection{models: slices.Clone(models)}
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.models)
}

func (c *Collection) Get(i int) *Model {
	return c.models[i]
}

func (c *Collection) First() *Model {
	if c.Len() == 0 {
		return nil
	}
	return c.models[0]
}

func (c *Collection) Push(models ...*Model) {
	c.models = append(c.models, models...)
}

// Shift removes and returns the first model or nil if
// the collection is empty.
func (c *Collection) Shift() *Model {
	if c.Len() == 0 {
		return nil
	}
	m := c.models[0]
	c.models = c.models[1:]
	return m
}

// Models returns the models as slice. The slice is a copy,
// the models are shared.
func (c *Collection) Models() []*Model {
	if c == nil {
		return nil
	}
	return slices.Clone(c.models)
}

func (c *Collection) Ids() []string {
	r := make([]string, 0, c.Len())
	for _, m := range c.Models() {
		r = append(r, m.GetId())
	}
	return r
}

func (c *Collection) ModelIds() []ModelId {
	r := make([]ModelId, 0, c.Len())
	for _, m := range c.Models() {
		r = append(r, m.ModelId())
	}
	return r
}

func (c *Collection) IndexOf(id IdSource) int {
	for i, m := range c.Models() {
		if EqualId(m, id) {
			return i
		}
	}
	return -1
}

func (c *Collection) Contains(id IdSource) bool {
	return c.IndexOf(id) >= 0
}

// Find returns the model with the given identity or nil.
func (c *Collection) Find(id IdSource) *Model {
	if i := c.IndexOf(id); i >= 0 {
		return c.models[i]
	}
	return nil
}

// Clone creates a deep copy. Modifying models of the
// clone does not affect the original collection.
func (c *Collection) Clone() *Collection {
	r := &Collection{models: make([]*Model, 0, c.Len())}
	for _, m := range c.Models() {
		r.models = append(r.models, m.Clone())
	}
	return r
}
