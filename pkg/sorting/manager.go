// Package sorting calculates order keys for models inserted into
// or moved within a list of sibling models.
//
// Order keys are spaced by DefaultStep. Inserted models get keys
// between the anchor and its successor. If there is not enough
// room, the trailing siblings are renumbered.
package sorting

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mandelsoft/datacontainer/pkg/model"
)

// DefaultStep is the distance between two order keys.
const DefaultStep = 128

var ErrAnchorNotFound = fmt.Errorf("%w: anchor not found among siblings", model.ErrInvalidArgument)

// Manager calculates the order keys for a set of models inserted
// into a sibling list after an optional anchor model. Without
// anchor the models are inserted at the front.
//
// The siblings must be sorted ascending by the sorting property.
// All inputs are cloned, the calculation never modifies models
// held by the caller.
type Manager struct {
	property string
	siblings *model.Collection
	models   *model.Collection
	previous *model.Model

	results *model.Collection
}

func New(property string) *Manager {
	return &Manager{property: property}
}

func (s *Manager) SetSortingProperty(name string) *Manager {
	s.property = name
	s.results = nil
	return s
}

func (s *Manager) SetSiblings(col *model.Collection) *Manager {
	s.siblings = col.Clone()
	s.results = nil
	return s
}

// SetModels sets the models to insert in the given order.
func (s *Manager) SetModels(col *model.Collection) *Manager {
	s.models = col.Clone()
	s.results = nil
	return s
}

// SetPreviousModel sets the anchor. The models are inserted
// after it. nil means insertion at the front.
func (s *Manager) SetPreviousModel(m *model.Model) *Manager {
	if m != nil {
		m = m.Clone()
	}
	s.previous = m
	s.results = nil
	return s
}

func (s *Manager) SortingProperty() string {
	return s.property
}

// Results returns the inserted models followed by all siblings
// which required a new order key. The result is calculated once
// and kept until an input is changed.
func (s *Manager) Results() (*model.Collection, error) {
	if s.results == nil {
		r, err := s.calculate()
		if err != nil {
			return nil, err
		}
		s.results = r
	}
	return s.results.Clone(), nil
}

func (s *Manager) calculate() (*model.Collection, error) {
	if s.property == "" {
		return nil, model.InvalidArgument("no sorting property set")
	}
	if s.models == nil {
		return nil, model.InvalidArgument("no models to sort")
	}

	models := s.models.Clone().Models()
	siblings := s.siblings.Clone().Models()
	results := model.NewCollection()
	if len(models) == 0 {
		return results, nil
	}

	ids := sets.New[string]()
	for _, m := range models {
		ids.Insert(m.ModelId().Serialize())
	}
	inserted := func(m *model.Model) bool {
		return ids.Has(m.ModelId().Serialize())
	}

	var position int64
	idx := 0
	if s.previous == nil {
		for idx < len(siblings) && inserted(siblings[idx]) {
			idx++
		}
	} else {
		found := false
		for ; idx < len(siblings) && !found; idx++ {
			sib := siblings[idx]
			if inserted(sib) {
				continue
			}
			key, err := sib.GetInt64Property(s.property)
			if err != nil {
				return nil, err
			}
			position = key
			found = model.EqualId(sib, s.previous)
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrAnchorNotFound, s.previous.ModelId())
		}
	}

	if idx >= len(siblings) {
		for _, m := range models {
			position += DefaultStep
			m.SetProperty(s.property, position)
			results.Push(m)
		}
		return results, nil
	}

	marker, err := siblings[idx].GetInt64Property(s.property)
	if err != nil {
		return nil, err
	}
	delta := (marker - position) / int64(len(models))
	if delta < 2 {
		log.Debug("no room between {{start}} and {{end}} for {{count}} models", "start", position, "end", marker, "count", len(models))
		delta = DefaultStep
	}
	for _, m := range models {
		position += delta
		m.SetProperty(s.property, position)
		results.Push(m)
	}

	if marker <= position {
		for ; idx < len(siblings); idx++ {
			sib := siblings[idx]
			if inserted(sib) {
				continue
			}
			position += delta
			sib.SetProperty(s.property, position)
			results.Push(sib)
		}
		log.Debug("renumbered {{count}} trailing siblings", "count", results.Len()-len(models))
	}
	return results, nil
}
