package sqlite

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/mandelsoft/datacontainer/pkg/filter"
	"github.com/mandelsoft/datacontainer/pkg/model"
	"github.com/mandelsoft/datacontainer/pkg/provider"
)

type query struct {
	where []string
	args  []any
}

func (q *query) add(cond string, args ...any) {
	q.where = append(q.where, cond)
	q.args = append(q.args, args...)
}

// column maps a property to an SQL expression. The
// path of the json_extract call is passed as argument.
func column(prop string) (string, []any) {
	if prop == model.IdProperty {
		return "id", nil
	}
	return "json_extract(properties, ?)", []any{jsonPath(prop)}
}

func jsonPath(prop string) string {
	return `$."` + strings.ReplaceAll(prop, `"`, `\"`) + `"`
}

// compile translates a filter into an SQL condition. Comparisons
// are delegated to the dc_compare function, so that numbers and
// numeric strings match like in-memory filters do.
func compile(f filter.Filter) (string, []any, error) {
	switch f.Operation {
	case filter.OpAnd, filter.OpOr:
		if len(f.Children) == 0 {
			if f.Operation == filter.OpAnd {
				return "1", nil, nil
			}
			return "0", nil, nil
		}
		var conds []string
		var args []any
		for _, c := range f.Children {
			s, a, err := compile(c)
			if err != nil {
				return "", nil, err
			}
			conds = append(conds, "("+s+")")
			args = append(args, a...)
		}
		return strings.Join(conds, " "+string(f.Operation)+" "), args, nil
	}

	col, args := column(f.Property)
	switch f.Operation {
	case filter.OpEqual:
		if f.Value == nil {
			return col + " IS NULL", args, nil
		}
		return fnCompare + "(" + col + ", ?) = 0", append(args, bindable(f.Value)), nil
	case filter.OpGreater, filter.OpLess, filter.OpGreaterEqual, filter.OpLessEqual:
		return fnCompare + "(" + col + ", ?) " + string(f.Operation) + " 0", append(args, bindable(f.Value)), nil
	case filter.OpIn:
		if len(f.Values) == 0 {
			return "0", nil, nil
		}
		var conds []string
		var in []any
		for _, v := range f.Values {
			conds = append(conds, fnCompare+"("+col+", ?) = 0")
			in = append(in, args...)
			in = append(in, bindable(v))
		}
		return strings.Join(conds, " OR "), in, nil
	case filter.OpLike:
		p, ok := f.Value.(string)
		if !ok {
			return "", nil, fmt.Errorf("operation %q requires a string pattern", f.Operation)
		}
		return col + ` GLOB ?`, append(args, p), nil
	}
	return "", nil, fmt.Errorf("unknown filter operation %q", f.Operation)
}

// bindable maps filter values to types accepted as
// statement arguments.
func bindable(v any) any {
	switch v.(type) {
	case nil, string, bool, int, int8, int16, int32, int64, uint8, uint16, uint32, float32, float64:
		return v
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return f
	}
	return cast.ToString(v)
}

func buildQuery(name string, cfg provider.Config) (string, []any, error) {
	q := &query{}
	q.add("provider = ?", name)
	if cfg.Id() != "" {
		q.add("id = ?", cfg.Id())
	}
	if ids := cfg.Ids(); len(ids) > 0 {
		marks := make([]string, len(ids))
		for i, id := range ids {
			marks[i] = "?"
			q.args = append(q.args, id)
		}
		q.where = append(q.where, "id IN ("+strings.Join(marks, ", ")+")")
	}
	for _, f := range cfg.Filter() {
		if err := f.Validate(); err != nil {
			return "", nil, fmt.Errorf("%w: %s", model.ErrInvalidArgument, err)
		}
		s, a, err := compile(f)
		if err != nil {
			return "", nil, err
		}
		q.add("("+s+")", a...)
	}

	stmt := "SELECT id, properties FROM models WHERE " + strings.Join(q.where, " AND ")

	var order []string
	for _, o := range cfg.Sorting() {
		col, a := column(o.Property)
		dir := "ASC"
		if o.Direction == provider.DESC {
			dir = "DESC"
		}
		// missing values first, then numbers by value, anything else by text
		order = append(order,
			col+" IS NOT NULL "+dir,
			fnNumber+"("+col+") IS NULL "+dir,
			fnNumber+"("+col+") "+dir,
			"CAST("+col+" AS TEXT) "+dir,
		)
		for i := 0; i < 4; i++ {
			q.args = append(q.args, a...)
		}
	}
	// keep insertion order for equal keys
	order = append(order, "rowid ASC")
	stmt += " ORDER BY " + strings.Join(order, ", ")

	if cfg.Amount() > 0 || cfg.Start() > 0 {
		limit := cfg.Amount()
		if limit <= 0 {
			limit = -1
		}
		stmt += " LIMIT ? OFFSET ?"
		q.args = append(q.args, limit, cfg.Start())
	}
	return stmt, q.args, nil
}
