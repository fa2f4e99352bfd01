package provider

import (
	"slices"

	"github.com/mandelsoft/datacontainer/pkg/filter"
	"github.com/mandelsoft/datacontainer/pkg/model"
)

// Select applies a fetch configuration to a list of models
// held in memory. The models are copied.
func Select(cfg Config, models []*model.Model) []*model.Model {
	var result []*model.Model

	for _, m := range models {
		if cfg.id != "" && m.GetId() != cfg.id {
			continue
		}
		if len(cfg.ids) > 0 && !slices.Contains(cfg.ids, m.GetId()) {
			continue
		}
		if !filter.Match(m, cfg.filter...) {
			continue
		}
		result = append(result, m)
	}

	if len(cfg.sorting) > 0 {
		slices.SortStableFunc(result, func(a, b *model.Model) int {
			return CompareModels(cfg.sorting, a, b)
		})
	}

	if cfg.start > 0 {
		if cfg.start >= len(result) {
			result = nil
		} else {
			result = result[cfg.start:]
		}
	}
	if cfg.amount > 0 && len(result) > cfg.amount {
		result = result[:cfg.amount]
	}

	r := make([]*model.Model, 0, len(result))
	for _, m := range result {
		r = append(r, m.Project(cfg.fields...))
	}
	return r
}

func CompareModels(s Sorting, a, b *model.Model) int {
	for _, o := range s {
		c := filter.CompareValues(a.GetProperty(o.Property), b.GetProperty(o.Property))
		if o.Direction == DESC {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}
