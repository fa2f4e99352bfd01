// Package paste moves models within a hierarchy or list and
// persists the new relationship and order properties.
package paste

import (
	"slices"

	"github.com/mandelsoft/datacontainer/pkg/collector"
	"github.com/mandelsoft/datacontainer/pkg/model"
	"github.com/mandelsoft/datacontainer/pkg/relationship"
	"github.com/mandelsoft/datacontainer/pkg/sorting"
)

// Controller pastes models into a new position and saves all
// models affected by the move.
type Controller struct {
	collector *collector.Collector
	mgr       *relationship.Manager
	property  string
}

func New(c *collector.Collector, sortingProperty string) *Controller {
	return &Controller{
		collector: c,
		mgr:       c.Manager(),
		property:  sortingProperty,
	}
}

func (c *Controller) SortingProperty() string {
	return c.property
}

// Into moves the models to the front of the children of parent.
// It returns all saved models.
func (c *Controller) Into(models *model.Collection, parent *model.Model) (*model.Collection, error) {
	col, err := c.prepare(models)
	if err != nil {
		return nil, err
	}
	if err := c.checkSubtree(col, parent); err != nil {
		return nil, err
	}
	if err := c.mgr.SetParentForAll(col, parent); err != nil {
		return nil, err
	}
	siblings, err := c.collector.CollectDirectChildrenOf(parent, col.First().GetProviderName(), c.property)
	if err != nil {
		return nil, err
	}
	log.Info("paste {{count}} models into {{parent}}", "count", col.Len(), "parent", parent)
	return c.sortAndSave(siblings, col, nil)
}

// After moves the models behind the anchor model. They get the
// parent of the anchor.
func (c *Controller) After(models *model.Collection, anchor *model.Model) (*model.Collection, error) {
	col, err := c.prepare(models)
	if err != nil {
		return nil, err
	}
	root, err := c.mgr.IsRoot(anchor)
	if err != nil {
		return nil, err
	}
	if root {
		err = c.mgr.SetAllRoot(col)
	} else {
		err = c.setSameParent(col, anchor)
	}
	if err != nil {
		return nil, err
	}
	siblings, err := c.collector.CollectSiblingsOf(anchor, c.property)
	if err != nil {
		return nil, err
	}
	log.Info("paste {{count}} models after {{anchor}}", "count", col.Len(), "anchor", anchor)
	return c.sortAndSave(siblings, col, anchor)
}

// IntoRoot moves the models to the front of the root models.
func (c *Controller) IntoRoot(models *model.Collection) (*model.Collection, error) {
	col, err := c.prepare(models)
	if err != nil {
		return nil, err
	}
	if !c.mgr.Mode().IsHierarchical() {
		return nil, model.InvalidArgument("root models require hierarchical mode, found %s", c.mgr.Mode())
	}
	if err := c.mgr.SetAllRoot(col); err != nil {
		return nil, err
	}
	siblings, err := c.collector.CollectRoots(c.property)
	if err != nil {
		return nil, err
	}
	log.Info("paste {{count}} models into root", "count", col.Len())
	return c.sortAndSave(siblings, col, nil)
}

// RenumberSiblingsOf reassigns evenly spaced order keys to the
// siblings of a model. It returns the changed models.
func (c *Controller) RenumberSiblingsOf(m *model.Model) (*model.Collection, error) {
	siblings, err := c.collector.CollectSiblingsOf(m, c.property)
	if err != nil {
		return nil, err
	}
	changed, err := sorting.Renumber(siblings, c.property, sorting.DefaultStep)
	if err != nil {
		return nil, err
	}
	log.Info("renumber siblings of {{model}}: {{count}} changed", "model", m, "count", changed.Len())
	return changed, c.save(changed)
}

func (c *Controller) setSameParent(col *model.Collection, anchor *model.Model) error {
	switch c.mgr.Mode() {
	case relationship.ModeHierarchical:
		parent, err := c.collector.ParentOf(anchor)
		if err != nil {
			return err
		}
		if parent == nil {
			return model.InvalidArgument("no parent found for anchor %s", anchor)
		}
		if err := c.checkSubtree(col, parent); err != nil {
			return err
		}
		return c.mgr.SetSameParentForAll(col, anchor, parent.GetProviderName())
	case relationship.ModeParentedList:
		return c.mgr.SetSameParentForAll(col, anchor, c.collector.ParentProvider())
	default:
		return nil
	}
}

// checkSubtree rejects a parent which is one of the models
// or one of their descendants.
func (c *Controller) checkSubtree(col *model.Collection, parent *model.Model) error {
	for _, m := range col.Models() {
		ids, err := c.collector.AssembleAllChildrenFrom(m, parent.GetProviderName())
		if err != nil {
			return err
		}
		if slices.Contains(ids, parent.GetId()) {
			return model.InvalidArgument("cannot paste %s into its own subtree (%s)", m, parent)
		}
	}
	return nil
}

func (c *Controller) prepare(models *model.Collection) (*model.Collection, error) {
	if models.Len() == 0 {
		return nil, model.InvalidArgument("no models to paste")
	}
	name := models.First().GetProviderName()
	for _, m := range models.Models() {
		if m.GetProviderName() != name {
			return nil, model.InvalidArgument("models of different providers (%s, %s) cannot be pasted together", name, m.GetProviderName())
		}
	}
	return models.Clone(), nil
}

func (c *Controller) sortAndSave(siblings, models *model.Collection, anchor *model.Model) (*model.Collection, error) {
	results, err := sorting.New(c.property).
		SetSiblings(siblings).
		SetModels(models).
		SetPreviousModel(anchor).
		Results()
	if err != nil {
		return nil, err
	}
	return results, c.save(results)
}

func (c *Controller) save(col *model.Collection) error {
	if col.Len() == 0 {
		return nil
	}
	p, err := c.collector.Environment().Provider(col.First().GetProviderName())
	if err != nil {
		return err
	}
	return p.SaveEach(col)
}
