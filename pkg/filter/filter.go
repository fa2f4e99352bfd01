// Package filter provides provider independent filter expressions.
//
// A filter list is interpreted as conjunction. Nested
// conjunctions and disjunctions are expressed by the
// operations AND and OR, which use the Children field.
package filter

import (
	"fmt"
	"strings"
)

type Operation string

const (
	OpEqual        Operation = "="
	OpGreater      Operation = ">"
	OpLess         Operation = "<"
	OpGreaterEqual Operation = ">="
	OpLessEqual    Operation = "<="
	OpIn           Operation = "IN"
	OpLike         Operation = "LIKE"
	OpAnd          Operation = "AND"
	OpOr           Operation = "OR"
)

// Filter is a tagged filter expression. The used fields
// depend on the operation:
//   - comparisons: Property and Value
//   - IN: Property and Values
//   - LIKE: Property and Value (pattern with * and ? wildcards)
//   - AND, OR: Children
type Filter struct {
	Operation Operation `json:"operation"`
	Property  string    `json:"property,omitempty"`
	Value     any       `json:"value,omitempty"`
	Values    []any     `json:"values,omitempty"`
	Children  []Filter  `json:"children,omitempty"`
}

func Equal(prop string, value any) Filter {
	return Filter{Operation: OpEqual, Property: prop, Value: value}
}

func Greater(prop string, value any) Filter {
	return Filter{Operation: OpGreater, Property: prop, Value: value}
}

func Less(prop string, value any) Filter {
	return Filter{Operation: OpLess, Property: prop, Value: value}
}

func In(prop string, values ...any) Filter {
	return Filter{Operation: OpIn, Property: prop, Values: values}
}

func Like(prop string, pattern string) Filter {
	return Filter{Operation: OpLike, Property: prop, Value: pattern}
}

func And(children ...Filter) Filter {
	return Filter{Operation: OpAnd, Children: children}
}

func Or(children ...Filter) Filter {
	return Filter{Operation: OpOr, Children: children}
}

// Compare creates a comparison filter for the given operation.
func Compare(op Operation, prop string, value any) (Filter, error) {
	switch op {
	case OpEqual, OpGreater, OpLess, OpGreaterEqual, OpLessEqual, OpLike:
		return Filter{Operation: op, Property: prop, Value: value}, nil
	default:
		return Filter{}, fmt.Errorf("operation %q is no comparison", op)
	}
}

// Validate checks the structural consistency of a filter.
func (f Filter) Validate() error {
	switch f.Operation {
	case OpEqual, OpGreater, OpLess, OpGreaterEqual, OpLessEqual, OpIn:
		if f.Property == "" {
			return fmt.Errorf("operation %q requires a property", f.Operation)
		}
	case OpLike:
		if f.Property == "" {
			return fmt.Errorf("operation %q requires a property", f.Operation)
		}
		if _, ok := f.Value.(string); !ok {
			return fmt.Errorf("operation %q requires a string pattern", f.Operation)
		}
	case OpAnd, OpOr:
		for _, c := range f.Children {
			if err := c.Validate(); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown filter operation %q", f.Operation)
	}
	return nil
}

func (f Filter) String() string {
	switch f.Operation {
	case OpAnd, OpOr:
		var list []string
		for _, c := range f.Children {
			list = append(list, c.String())
		}
		return "(" + strings.Join(list, " "+string(f.Operation)+" ") + ")"
	case OpIn:
		return fmt.Sprintf("%s IN %v", f.Property, f.Values)
	default:
		return fmt.Sprintf("%s %s %v", f.Property, f.Operation, f.Value)
	}
}

// List is a conjunction of filters.
type List []Filter

func (l List) Validate() error {
	for _, f := range l {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (l List) String() string {
	return And(l...).String()
}
