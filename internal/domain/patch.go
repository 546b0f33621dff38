package domain

import (
	"fmt"

	"jobly/internal/core/errs"
	"jobly/internal/core/sqlbuild"
)

// Patch is a decoded partial-update body: column -> new value. A present
// key with a nil value sets the column to NULL.
type Patch map[string]any

// Fields orders the patch by allowed and rejects any other key.
func (p Patch) Fields(allowed []string) ([]sqlbuild.Field, error) {
	if len(p) == 0 {
		return nil, errs.InvalidArgument("no fields to update")
	}
	known := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		known[a] = struct{}{}
	}
	for k := range p {
		if _, ok := known[k]; !ok {
			return nil, errs.InvalidArgument(fmt.Sprintf("field %q cannot be updated", k))
		}
	}
	fields := make([]sqlbuild.Field, 0, len(p))
	for _, a := range allowed {
		if v, ok := p[a]; ok {
			fields = append(fields, sqlbuild.Field{Column: a, Value: v})
		}
	}
	return fields, nil
}
