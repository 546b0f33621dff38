package domain

import (
	"context"

	"jobly/internal/core/sqlbuild"
)

// User is a row of the users table. Password holds the bcrypt hash.
type User struct {
	Username  string  `gorm:"column:username;primaryKey" json:"username"`
	Password  string  `gorm:"column:password" json:"-"`
	FirstName string  `gorm:"column:first_name" json:"first_name"`
	LastName  string  `gorm:"column:last_name" json:"last_name"`
	Email     string  `gorm:"column:email" json:"email"`
	PhotoURL  *string `gorm:"column:photo_url" json:"photo_url"`
	IsAdmin   bool    `gorm:"column:is_admin" json:"-"`
}

// PublicUser 对外视图：不含密码与管理员标记
type PublicUser struct {
	Username  string  `json:"username"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	PhotoURL  *string `json:"photo_url"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		PhotoURL:  u.PhotoURL,
	}
}

type UserSummary struct {
	Username  string `gorm:"column:username" json:"username"`
	FirstName string `gorm:"column:first_name" json:"first_name"`
	LastName  string `gorm:"column:last_name" json:"last_name"`
	Email     string `gorm:"column:email" json:"email"`
}

type NewUser struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	PhotoURL  *string `json:"photo_url"`
}

// UserUpdatable lists the columns a user may change about themselves.
var UserUpdatable = []string{"password", "first_name", "last_name", "email", "photo_url"}

type UserRepository interface {
	List(ctx context.Context) ([]UserSummary, error)
	// Create fails with errs.KindAlreadyExists when the username is taken.
	Create(ctx context.Context, u *User) (*User, error)
	Get(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, username string, fields []sqlbuild.Field, allowed ...string) (*User, error)
	Delete(ctx context.Context, username string) error
}
