package sqlbuild

import (
	"fmt"
	"strings"
)

// Conditions collects AND-ed predicates with $n placeholders numbered in
// the order they are added.
type Conditions struct {
	preds []string
	args  []any
}

// Add appends a predicate. format must contain a single %s, which is
// replaced by the next placeholder.
func (c *Conditions) Add(format string, value any) {
	c.args = append(c.args, value)
	c.preds = append(c.preds, fmt.Sprintf(format, fmt.Sprintf("$%d", len(c.args))))
}

// Where returns " WHERE p1 AND p2" or "" when nothing was added.
func (c *Conditions) Where() string {
	if len(c.preds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.preds, " AND ")
}

// Args returns the bound values in placeholder order.
func (c *Conditions) Args() []any { return c.args }
