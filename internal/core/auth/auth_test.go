package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobly/internal/core/errs"
)

// ParamMap is a route parameter table for gate tests.
type ParamMap map[string]string

func (m ParamMap) ByName(name string) string { return m[name] }

func newTestJWTer() *JWTer { return NewJWTer("test-secret", "jobly", time.Hour) }

func TestIssueAndVerify(t *testing.T) {
	j := newTestJWTer()
	tok, err := j.Issue("alice", true)
	require.NoError(t, err)

	id, err := j.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, &Identity{Username: "alice", IsAdmin: true}, id)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := newTestJWTer().Issue("alice", false)
	require.NoError(t, err)

	other := NewJWTer("another-secret", "jobly", time.Hour)
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParse_WrongIssuer(t *testing.T) {
	tok, err := NewJWTer("test-secret", "someone-else", time.Hour).Issue("alice", false)
	require.NoError(t, err)
	_, err = newTestJWTer().Parse(tok)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	// 超过 60s leeway
	j := NewJWTer("test-secret", "jobly", -2*time.Minute)
	tok, err := j.Issue("alice", false)
	require.NoError(t, err)
	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParse_RejectsOtherAlg(t *testing.T) {
	claims := Claims{Username: "alice", RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "jobly",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = newTestJWTer().Parse(tok)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, err := newTestJWTer().Parse("not-a-token")
	assert.Error(t, err)
}

func TestAuthenticatedGate(t *testing.T) {
	g := Authenticated()
	assert.NoError(t, g(&Identity{Username: "bob"}, nil))

	err := g(nil, nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindUnauthorized))
	assert.Equal(t, MsgLoginRequired, err.Error())
}

func TestSameUserGate(t *testing.T) {
	g := SameUser("username")
	users := []string{"alice", "bob", "Alice", ""}
	for _, who := range users {
		for _, target := range users {
			err := g(&Identity{Username: who}, ParamMap{"username": target})
			if who == target && who != "" {
				assert.NoError(t, err, "%s -> %s", who, target)
				continue
			}
			if who == target {
				// 空用户名不会出现在有效 token 中
				continue
			}
			require.Error(t, err, "%s -> %s", who, target)
			assert.True(t, errs.Is(err, errs.KindUnauthorized))
			assert.Equal(t, MsgWrongUser, err.Error())
		}
	}

	err := g(nil, ParamMap{"username": "alice"})
	require.Error(t, err)
	assert.Equal(t, MsgLoginRequired, err.Error())
	// admins get no bypass
	assert.Error(t, g(&Identity{Username: "root", IsAdmin: true}, ParamMap{"username": "alice"}))
}

func TestAdminGate(t *testing.T) {
	g := Admin()
	assert.NoError(t, g(&Identity{Username: "root", IsAdmin: true}, nil))

	err := g(&Identity{Username: "bob"}, nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindUnauthorized))
	assert.Equal(t, MsgAdminRequired, err.Error())

	err = g(nil, nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindUnauthorized))
	assert.Equal(t, MsgLoginRequired, err.Error())
}
