package service

import (
	"context"

	"go.uber.org/zap"

	"jobly/internal/core/auth"
	"jobly/internal/core/errs"
	"jobly/internal/domain"
	"jobly/pkg/utils"
)

const MsgBadCredentials = "Invalid username/password"

// Auth registers users and exchanges credentials for tokens.
type Auth struct {
	users *Users
	repo  domain.UserRepository
	jwt   *auth.JWTer
	log   *zap.Logger
}

func NewAuth(users *Users, repo domain.UserRepository, j *auth.JWTer, log *zap.Logger) *Auth {
	return &Auth{users: users, repo: repo, jwt: j, log: log}
}

func (a *Auth) Register(ctx context.Context, in domain.NewUser) (string, error) {
	u, err := a.users.Create(ctx, in)
	if err != nil {
		return "", err
	}
	a.log.Info("user registered", zap.String("username", u.Username))
	return a.issue(u)
}

func (a *Auth) Authenticate(ctx context.Context, username, password string) (string, error) {
	u, err := a.repo.Get(ctx, username)
	if err != nil {
		if errs.Is(err, errs.KindNotFound) {
			return "", errs.Unauthorized(MsgBadCredentials)
		}
		return "", err
	}
	if !utils.CheckPassword(password, u.Password) {
		a.log.Debug("login rejected", zap.String("username", username))
		return "", errs.Unauthorized(MsgBadCredentials)
	}
	return a.issue(u)
}

func (a *Auth) issue(u *domain.User) (string, error) {
	tok, err := a.jwt.Issue(u.Username, u.IsAdmin)
	if err != nil {
		return "", errs.Internal("", err)
	}
	return tok, nil
}
