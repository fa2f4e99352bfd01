package sqlite

import (
	"database/sql/driver"

	"github.com/spf13/cast"
	"modernc.org/sqlite"

	"github.com/mandelsoft/datacontainer/pkg/filter"
)

const (
	fnCompare = "dc_compare"
	fnNumber  = "dc_number"
)

func init() {
	// dc_compare(a, b) orders two values like filter.CompareValues.
	sqlite.MustRegisterDeterministicScalarFunction(fnCompare, 2,
		func(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			return int64(filter.CompareValues(normalize(args[0]), normalize(args[1]))), nil
		},
	)
	// dc_number(v) yields the numeric value of numbers and
	// numeric strings, NULL otherwise.
	sqlite.MustRegisterDeterministicScalarFunction(fnNumber, 1,
		func(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			v := normalize(args[0])
			if v == nil {
				return nil, nil
			}
			if _, ok := v.(bool); ok {
				return nil, nil
			}
			f, err := cast.ToFloat64E(v)
			if err != nil {
				return nil, nil
			}
			return f, nil
		},
	)
}

func normalize(v driver.Value) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
