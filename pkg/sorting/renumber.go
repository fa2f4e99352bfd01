package sorting

import (
	"cmp"
	"slices"

	"github.com/mandelsoft/datacontainer/pkg/model"
)

// Renumber assigns the order keys step, 2*step, ... to a list of
// siblings keeping their current order. Models with equal keys
// keep their order in the collection. Only models whose key
// changed are returned. The given collection is not modified.
func Renumber(siblings *model.Collection, property string, step int64) (*model.Collection, error) {
	if property == "" {
		return nil, model.InvalidArgument("no sorting property set")
	}
	if step <= 0 {
		step = DefaultStep
	}

	type entry struct {
		m   *model.Model
		key int64
	}
	var list []entry
	for _, m := range siblings.Clone().Models() {
		key, err := m.GetInt64Property(property)
		if err != nil {
			return nil, err
		}
		list = append(list, entry{m, key})
	}
	slices.SortStableFunc(list, func(a, b entry) int {
		return cmp.Compare(a.key, b.key)
	})

	result := model.NewCollection()
	for i, e := range list {
		key := step * int64(i+1)
		if e.key == key && e.m.HasProperty(property) {
			continue
		}
		e.m.SetProperty(property, key)
		result.Push(e.m)
	}
	log.Debug("renumbered {{changed}} of {{count}} siblings", "changed", result.Len(), "count", len(list))
	return result, nil
}
