package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobly/internal/core/auth"
	"jobly/internal/core/validate"
	"jobly/internal/domain"
	"jobly/internal/service"
	"jobly/internal/transport/http/ez"
	resp "jobly/internal/transport/http/response"
)

type Users struct {
	auth  *service.Auth
	users *service.Users
	v     *validate.Validator
	log   *zap.Logger
}

func NewUsers(a *service.Auth, u *service.Users, v *validate.Validator, log *zap.Logger) *Users {
	return &Users{auth: a, users: u, v: v, log: log}
}

func (h *Users) Priority() int { return 20 }

func (h *Users) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.v, h.log)

	// 注册即登录
	ez.RegisterAction(e, ez.Action[domain.NewUser, resp.Token]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: ez.BindJSON,
		Schema: validate.UserNew,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *domain.NewUser) (resp.Token, error) {
			tok, err := h.auth.Register(c.Request.Context(), *in)
			if err != nil {
				return resp.Token{}, err
			}
			return resp.Token{Token: tok}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, usersOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindNone,
		Gate:   auth.Authenticated(),
		Handler: func(c *gin.Context, _ *struct{}) (usersOut, error) {
			list, err := h.users.List(c.Request.Context())
			return usersOut{Users: list}, err
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, userOut]{
		Method: http.MethodGet,
		Path:   "/users/:username",
		Binder: ez.BindNone,
		Gate:   auth.Authenticated(),
		Handler: func(c *gin.Context, _ *struct{}) (userOut, error) {
			u, err := h.users.Get(c.Request.Context(), c.Param("username"))
			return userOut{User: u}, err
		},
	})

	ez.RegisterAction(e, ez.Action[domain.Patch, userOut]{
		Method: http.MethodPatch,
		Path:   "/users/:username",
		Binder: ez.BindPatch,
		Schema: validate.UserUpdate,
		Gate:   auth.SameUser("username"),
		Handler: func(c *gin.Context, in *domain.Patch) (userOut, error) {
			u, err := h.users.Update(c.Request.Context(), c.Param("username"), *in)
			return userOut{User: u}, err
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, resp.Message]{
		Method: http.MethodDelete,
		Path:   "/users/:username",
		Binder: ez.BindNone,
		Gate:   auth.SameUser("username"),
		Handler: func(c *gin.Context, _ *struct{}) (resp.Message, error) {
			if err := h.users.Remove(c.Request.Context(), c.Param("username")); err != nil {
				return resp.Message{}, err
			}
			return resp.Message{Message: "User deleted"}, nil
		},
	})
}
