package sqlbuild

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobly/internal/core/errs"
)

func TestPartialUpdate_SingleField(t *testing.T) {
	st, err := PartialUpdate("users", []Field{{"first_name", "Messi"}}, "username", "messi10")
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET first_name=$1 WHERE username=$2 RETURNING *", st.SQL)
	assert.Equal(t, []any{"Messi", "messi10"}, st.Args)
}

func TestPartialUpdate_PlaceholdersMatchArgs(t *testing.T) {
	st, err := PartialUpdate("t", []Field{{"a", 1}, {"b", "x"}}, "id", 7)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE t SET a=$1, b=$2 WHERE id=$3 RETURNING *", st.SQL)
	assert.Equal(t, []any{1, "x", 7}, st.Args)
}

func TestPartialUpdate_KeepsCallerOrder(t *testing.T) {
	st, err := PartialUpdate("t", []Field{{"b", "x"}, {"a", 1}}, "id", 7)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE t SET b=$1, a=$2 WHERE id=$3 RETURNING *", st.SQL)
	assert.Equal(t, []any{"x", 1, 7}, st.Args)
}

func TestPartialUpdate_AnySize(t *testing.T) {
	for n := 1; n <= 12; n++ {
		fields := make([]Field, n)
		for i := range fields {
			fields[i] = Field{Column: fmt.Sprintf("c%d", i), Value: i * 10}
		}
		st, err := PartialUpdate("t", fields, "id", "key")
		require.NoError(t, err)
		require.Len(t, st.Args, n+1)
		for i := 0; i < n; i++ {
			assert.Contains(t, st.SQL, fmt.Sprintf("c%d=$%d", i, i+1))
			assert.Equal(t, i*10, st.Args[i])
		}
		assert.True(t, strings.HasSuffix(st.SQL, fmt.Sprintf("WHERE id=$%d RETURNING *", n+1)))
		assert.Equal(t, "key", st.Args[n])
	}
}

func TestPartialUpdate_Empty(t *testing.T) {
	_, err := PartialUpdate("t", nil, "id", 1)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindInvalidArgument))
}

func TestPartialUpdate_AllowList(t *testing.T) {
	_, err := PartialUpdate("users", []Field{{"is_admin", true}}, "username", "bob", "first_name", "last_name")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindInvalidArgument))

	st, err := PartialUpdate("users", []Field{{"last_name", "B"}}, "username", "bob", "first_name", "last_name")
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET last_name=$1 WHERE username=$2 RETURNING *", st.SQL)
}

func TestPartialUpdate_Deterministic(t *testing.T) {
	fields := []Field{{"a", 1}, {"b", 2}}
	first, err := PartialUpdate("t", fields, "id", 3)
	require.NoError(t, err)
	second, err := PartialUpdate("t", fields, "id", 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestConditions(t *testing.T) {
	var c Conditions
	assert.Equal(t, "", c.Where())
	assert.Empty(t, c.Args())

	c.Add("name ILIKE %s", "%tesla%")
	c.Add("num_employees >= %s", 10)
	c.Add("num_employees <= %s", 500)
	assert.Equal(t, " WHERE name ILIKE $1 AND num_employees >= $2 AND num_employees <= $3", c.Where())
	assert.Equal(t, []any{"%tesla%", 10, 500}, c.Args())
}
