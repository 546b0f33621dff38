package service

import (
	"fmt"
	"math"

	"jobly/internal/core/errs"
	"jobly/internal/core/sqlbuild"
)

// coerce converts decoded JSON values to the Go types of their columns.
type coerce func(v any) (any, error)

func normalize(fields []sqlbuild.Field, by map[string]coerce) ([]sqlbuild.Field, error) {
	for i, f := range fields {
		fn, ok := by[f.Column]
		if !ok || f.Value == nil {
			continue
		}
		v, err := fn(f.Value)
		if err != nil {
			return nil, errs.InvalidArgument(fmt.Sprintf("%s: %v", f.Column, err))
		}
		fields[i].Value = v
	}
	return fields, nil
}

// toInt accepts integral values that fit an INTEGER column.
func toInt(v any) (any, error) {
	var f float64
	switch t := v.(type) {
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case float64:
		if t != math.Trunc(t) {
			return nil, fmt.Errorf("expected an integer, got %v", t)
		}
		f = t
	default:
		return nil, fmt.Errorf("expected an integer, got %T", v)
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return nil, fmt.Errorf("%v is out of range", v)
	}
	return int(f), nil
}

func toFloat(v any) (any, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	}
	return nil, fmt.Errorf("expected a number, got %T", v)
}

func toString(v any) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return nil, fmt.Errorf("expected a string, got %T", v)
}
