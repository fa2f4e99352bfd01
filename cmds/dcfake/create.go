package main

import (
	"github.com/goombaio/namegenerator"
	"k8s.io/apimachinery/pkg/util/rand"

	"github.com/mandelsoft/datacontainer/pkg/container"
	"github.com/mandelsoft/datacontainer/pkg/model"
	"github.com/mandelsoft/datacontainer/pkg/relationship"
)

// Generator creates models of the root provider with random
// names at random positions of the hierarchy or list.
type Generator struct {
	dc        *container.Container
	field     string
	names     namegenerator.Generator
	created   []*model.Model
	rootRatio int
}

func NewGenerator(dc *container.Container, field string, seed int64) *Generator {
	return &Generator{
		dc:        dc,
		field:     field,
		names:     namegenerator.NewNameGenerator(seed),
		rootRatio: 30,
	}
}

func (g *Generator) Create() (*model.Model, error) {
	spec := g.dc.Specification()
	mode := g.dc.Manager().Mode()
	if mode == relationship.ModeParentedList {
		return nil, model.InvalidArgument("parented lists are not supported")
	}
	name := g.names.Generate()
	m := model.New(spec.RootProvider, "")
	m.SetProperty(g.field, name)
	col := model.NewCollection(m)

	var saved *model.Collection
	var err error
	switch {
	case len(g.created) == 0:
		if mode == relationship.ModeHierarchical {
			saved, err = g.dc.Paste().IntoRoot(col)
		} else {
			saved, err = g.first(col)
		}
	case mode == relationship.ModeHierarchical && rand.Intn(100) < g.rootRatio:
		saved, err = g.dc.Paste().IntoRoot(col)
	case mode == relationship.ModeHierarchical && rand.Intn(2) == 0:
		saved, err = g.dc.Paste().Into(col, g.random())
	default:
		saved, err = g.dc.Paste().After(col, g.random())
	}
	if err != nil {
		return nil, err
	}
	for _, c := range saved.Models() {
		if c.GetProperty(g.field) == name {
			g.created = append(g.created, c)
			return c, nil
		}
	}
	return nil, model.InvalidArgument("created model %q not found", name)
}

// first stores the initial model of a list.
func (g *Generator) first(col *model.Collection) (*model.Collection, error) {
	m := col.First()
	m.SetProperty(g.dc.Specification().SortingProperty, 128)
	p, err := g.dc.Environment().Provider(m.GetProviderName())
	if err != nil {
		return nil, err
	}
	return col, p.Save(m)
}

func (g *Generator) random() *model.Model {
	return g.created[rand.Intn(len(g.created))]
}
