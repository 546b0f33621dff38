package auth

import "jobly/internal/core/errs"

const (
	MsgLoginRequired = "You must log in to view this page"
	MsgWrongUser     = "You cannot view another user's page"
	MsgAdminRequired = "You must be an admin to view this page"
)

// Identity is the verified caller decoded from a token.
type Identity struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// Params are the route parameters a gate may inspect.
type Params interface {
	ByName(name string) string
}

// Gate decides whether a verified identity may proceed. id is nil when the
// request carried no valid token. A rejection is always errs.KindUnauthorized.
// Gates do no I/O.
type Gate func(id *Identity, p Params) error

// Authenticated lets through any valid token.
func Authenticated() Gate {
	return func(id *Identity, _ Params) error {
		if id == nil {
			return errs.Unauthorized(MsgLoginRequired)
		}
		return nil
	}
}

// SameUser requires the identity to match the route parameter param.
func SameUser(param string) Gate {
	return func(id *Identity, p Params) error {
		if id == nil {
			return errs.Unauthorized(MsgLoginRequired)
		}
		if p == nil || id.Username != p.ByName(param) {
			return errs.Unauthorized(MsgWrongUser)
		}
		return nil
	}
}

// Admin requires the admin flag.
func Admin() Gate {
	return func(id *Identity, _ Params) error {
		if id == nil {
			return errs.Unauthorized(MsgLoginRequired)
		}
		if !id.IsAdmin {
			return errs.Unauthorized(MsgAdminRequired)
		}
		return nil
	}
}
