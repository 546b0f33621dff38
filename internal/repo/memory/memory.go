// Package memory holds map-backed repositories with the same semantics as
// the postgres ones. Used by service and HTTP tests.
package memory

import (
	"fmt"
	"strings"

	"jobly/internal/core/errs"
	"jobly/internal/core/sqlbuild"
)

func allowedSet(fields []sqlbuild.Field, allowed []string) error {
	if len(fields) == 0 {
		return errs.InvalidArgument("no fields to update")
	}
	ok := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		ok[a] = struct{}{}
	}
	for _, f := range fields {
		if _, hit := ok[f.Column]; !hit {
			return errs.InvalidArgument(fmt.Sprintf("field %q cannot be updated", f.Column))
		}
	}
	return nil
}

func ilike(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case *string:
		if t != nil {
			return *t
		}
	}
	return ""
}

func asStringPtr(v any) *string {
	switch t := v.(type) {
	case string:
		return &t
	case *string:
		return t
	}
	return nil
}

func asInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case *int:
		if t != nil {
			return *t
		}
	}
	return 0
}

func asIntPtr(v any) *int {
	if v == nil {
		return nil
	}
	if p, ok := v.(*int); ok {
		return p
	}
	n := asInt(v)
	return &n
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	}
	return 0
}
