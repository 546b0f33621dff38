package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobly/internal/core/validate"
	"jobly/internal/service"
	"jobly/internal/transport/http/ez"
	resp "jobly/internal/transport/http/response"
)

// Auth mounts POST /login.
type Auth struct {
	svc *service.Auth
	v   *validate.Validator
	log *zap.Logger
}

func NewAuth(svc *service.Auth, v *validate.Validator, log *zap.Logger) *Auth {
	return &Auth{svc: svc, v: v, log: log}
}

func (h *Auth) Priority() int { return 10 }

type loginIn struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Auth) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.v, h.log)

	ez.RegisterAction(e, ez.Action[loginIn, resp.Token]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Schema: validate.Login,
		Handler: func(c *gin.Context, in *loginIn) (resp.Token, error) {
			tok, err := h.svc.Authenticate(c.Request.Context(), in.Username, in.Password)
			if err != nil {
				return resp.Token{}, err
			}
			return resp.Token{Token: tok}, nil
		},
	})
}
