package sqlbuild

import (
	"fmt"
	"strings"

	"jobly/internal/core/errs"
)

// Field is one column assignment of a partial update.
type Field struct {
	Column string
	Value  any
}

// Statement is compiled SQL text plus its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

// PartialUpdate compiles
//
//	UPDATE <table> SET c1=$1, c2=$2 WHERE <idColumn>=$3 RETURNING *
//
// keeping the caller's field order. Args hold the field values followed by
// idValue. When allowed is non-empty every column must appear in it.
func PartialUpdate(table string, fields []Field, idColumn string, idValue any, allowed ...string) (Statement, error) {
	if len(fields) == 0 {
		return Statement{}, errs.InvalidArgument("no fields to update")
	}
	if len(allowed) > 0 {
		ok := make(map[string]struct{}, len(allowed))
		for _, a := range allowed {
			ok[a] = struct{}{}
		}
		for _, f := range fields {
			if _, hit := ok[f.Column]; !hit {
				return Statement{}, errs.InvalidArgument(fmt.Sprintf("field %q cannot be updated", f.Column))
			}
		}
	}

	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for i, f := range fields {
		sets = append(sets, fmt.Sprintf("%s=$%d", f.Column, i+1))
		args = append(args, f.Value)
	}
	args = append(args, idValue)

	q := fmt.Sprintf("UPDATE %s SET %s WHERE %s=$%d RETURNING *",
		table, strings.Join(sets, ", "), idColumn, len(args))
	return Statement{SQL: q, Args: args}, nil
}
