package collector

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mandelsoft/datacontainer/pkg/filter"
)

// fieldsFor returns the properties to fetch for models of a
// provider. Without configured fields all properties are fetched.
func (c *Collector) fieldsFor(providerName string) []string {
	if len(c.fields) == 0 {
		return nil
	}
	var fields []string
	seen := sets.New[string]()
	add := func(names ...string) {
		for _, n := range names {
			if n != "" && !seen.Has(n) {
				seen.Insert(n)
				fields = append(fields, n)
			}
		}
	}
	add(c.fields...)

	def := c.mgr.Definition()
	if rc := def.RootCondition(); rc != nil && rc.ProviderName() == providerName {
		add(filterProperties(rc.FilterArray())...)
		for _, s := range rc.Setters() {
			add(s.Property)
		}
	}
	for _, cond := range def.ParentConditions(providerName) {
		for _, r := range cond.FilterArray() {
			add(r.Local)
		}
		for _, r := range cond.InverseFilterArray() {
			add(r.Remote)
		}
		for _, s := range cond.Setters() {
			add(s.ToField)
		}
	}
	for _, cond := range def.ChildConditions(providerName) {
		for _, r := range cond.FilterArray() {
			add(r.Remote)
		}
		for _, r := range cond.InverseFilterArray() {
			add(r.Local)
		}
		for _, s := range cond.Setters() {
			add(s.FromField)
		}
	}
	return fields
}

func filterProperties(l filter.List) []string {
	var r []string
	for _, f := range l {
		if f.Property != "" {
			r = append(r, f.Property)
		}
		r = append(r, filterProperties(f.Children)...)
	}
	return r
}
