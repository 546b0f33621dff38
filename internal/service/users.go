package service

import (
	"context"

	"jobly/internal/core/errs"
	"jobly/internal/core/sqlbuild"
	"jobly/internal/domain"
	"jobly/pkg/utils"
)

type Users struct {
	repo       domain.UserRepository
	bcryptCost int
}

func NewUsers(repo domain.UserRepository, bcryptCost int) *Users {
	return &Users{repo: repo, bcryptCost: bcryptCost}
}

var userCoerce = map[string]coerce{
	"password":   toString,
	"first_name": toString,
	"last_name":  toString,
	"email":      toString,
	"photo_url":  toString,
}

func (s *Users) List(ctx context.Context) ([]domain.UserSummary, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errs.NotFound("No users found")
	}
	return out, nil
}

// Create hashes the password and stores the user. The returned record
// still carries IsAdmin so the caller can issue a token.
func (s *Users) Create(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, errs.Internal("", err)
	}
	return s.repo.Create(ctx, &domain.User{
		Username:  in.Username,
		Password:  hash,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		PhotoURL:  in.PhotoURL,
	})
}

func (s *Users) Get(ctx context.Context, username string) (*domain.PublicUser, error) {
	u, err := s.repo.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.Public(), nil
}

// Update re-hashes a new password before it reaches the store.
func (s *Users) Update(ctx context.Context, username string, p domain.Patch) (*domain.PublicUser, error) {
	fields, err := p.Fields(domain.UserUpdatable)
	if err != nil {
		return nil, err
	}
	if fields, err = normalize(fields, userCoerce); err != nil {
		return nil, err
	}
	for i, f := range fields {
		if f.Column != "password" {
			continue
		}
		pw, _ := f.Value.(string)
		hash, err := utils.HashPassword(pw, s.bcryptCost)
		if err != nil {
			return nil, errs.Internal("", err)
		}
		fields[i].Value = hash
	}
	u, err := s.repo.Update(ctx, username, fields)
	if err != nil {
		return nil, err
	}
	return u.Public(), nil
}

func (s *Users) Remove(ctx context.Context, username string) error {
	return s.repo.Delete(ctx, username)
}

// SetAdmin grants or revokes the admin flag. Not reachable over HTTP.
func (s *Users) SetAdmin(ctx context.Context, username string, isAdmin bool) (*domain.PublicUser, error) {
	u, err := s.repo.Update(ctx, username, []sqlbuild.Field{{Column: "is_admin", Value: isAdmin}}, "is_admin")
	if err != nil {
		return nil, err
	}
	return u.Public(), nil
}
