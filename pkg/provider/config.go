package provider

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mandelsoft/datacontainer/pkg/filter"
)

type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

type SortOrder struct {
	Property  string    `json:"property"`
	Direction Direction `json:"direction,omitempty"`
}

type Sorting []SortOrder

func SortBy(prop string, dir ...Direction) Sorting {
	d := ASC
	if len(dir) > 0 {
		d = dir[0]
	}
	return Sorting{{Property: prop, Direction: d}}
}

// Config describes the models to fetch from a provider.
type Config struct {
	id      string
	ids     []string
	filter  filter.List
	fields  []string
	sorting Sorting
	amount  int
	start   int
}

func (c *Config) Id() string {
	return c.id
}

func (c *Config) SetId(id string) *Config {
	c.id = id
	return c
}

func (c *Config) Ids() []string {
	return slices.Clone(c.ids)
}

func (c *Config) SetIds(ids ...string) *Config {
	c.ids = slices.Clone(ids)
	return c
}

func (c *Config) Filter() filter.List {
	return slices.Clone(c.filter)
}

func (c *Config) SetFilter(f ...filter.Filter) *Config {
	c.filter = slices.Clone(f)
	return c
}

// Fields returns the requested property names. An empty
// list means all properties.
func (c *Config) Fields() []string {
	return slices.Clone(c.fields)
}

func (c *Config) SetFields(fields ...string) *Config {
	c.fields = slices.Clone(fields)
	return c
}

func (c *Config) Sorting() Sorting {
	return slices.Clone(c.sorting)
}

func (c *Config) SetSorting(s Sorting) *Config {
	c.sorting = slices.Clone(s)
	return c
}

// Amount is the maximum number of models to fetch, 0 means unlimited.
func (c *Config) Amount() int {
	return c.amount
}

func (c *Config) SetAmount(n int) *Config {
	c.amount = n
	return c
}

func (c *Config) Start() int {
	return c.start
}

func (c *Config) SetStart(n int) *Config {
	c.start = n
	return c
}

func (c Config) WithId(id string) Config {
	c.SetId(id)
	return c
}

func (c Config) WithFilter(f ...filter.Filter) Config {
	c.SetFilter(f...)
	return c
}

func (c Config) WithFields(fields ...string) Config {
	c.SetFields(fields...)
	return c
}

func (c Config) WithSorting(s Sorting) Config {
	c.SetSorting(s)
	return c
}

func (c Config) WithAmount(n int) Config {
	c.SetAmount(n)
	return c
}

func (c Config) String() string {
	var parts []string
	if c.id != "" {
		parts = append(parts, "id="+c.id)
	}
	if len(c.ids) > 0 {
		parts = append(parts, "ids="+strings.Join(c.ids, ","))
	}
	if len(c.filter) > 0 {
		parts = append(parts, "filter="+c.filter.String())
	}
	if len(c.sorting) > 0 {
		parts = append(parts, fmt.Sprintf("sorting=%v", c.sorting))
	}
	if c.amount > 0 {
		parts = append(parts, fmt.Sprintf("amount=%d", c.amount))
	}
	if c.start > 0 {
		parts = append(parts, fmt.Sprintf("start=%d", c.start))
	}
	if len(parts) == 0 {
		return "<all>"
	}
	return strings.Join(parts, " ")
}
