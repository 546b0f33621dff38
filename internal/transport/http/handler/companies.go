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

type Companies struct {
	svc *service.Companies
	v   *validate.Validator
	log *zap.Logger
}

func NewCompanies(svc *service.Companies, v *validate.Validator, log *zap.Logger) *Companies {
	return &Companies{svc: svc, v: v, log: log}
}

func (h *Companies) Priority() int { return 30 }

// 列表筛选；未出现的参数保持 nil
type companyQuery struct {
	Search       *string `form:"search"`
	MinEmployees *int    `form:"min_employees"`
	MaxEmployees *int    `form:"max_employees"`
}

func (h *Companies) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.v, h.log)

	ez.RegisterAction(e, ez.Action[companyQuery, companiesOut]{
		Method: http.MethodGet,
		Path:   "/companies",
		Binder: ez.BindQuery,
		Gate:   auth.Authenticated(),
		Handler: func(c *gin.Context, q *companyQuery) (companiesOut, error) {
			list, err := h.svc.List(c.Request.Context(), domain.CompanyFilter{
				Search:       q.Search,
				MinEmployees: q.MinEmployees,
				MaxEmployees: q.MaxEmployees,
			})
			return companiesOut{Companies: list}, err
		},
	})

	ez.RegisterAction(e, ez.Action[domain.Company, companyOut]{
		Method: http.MethodPost,
		Path:   "/companies",
		Binder: ez.BindJSON,
		Schema: validate.CompanyNew,
		Gate:   auth.Admin(),
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *domain.Company) (companyOut, error) {
			co, err := h.svc.Create(c.Request.Context(), *in)
			return companyOut{Company: co}, err
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, companyDetailOut]{
		Method: http.MethodGet,
		Path:   "/companies/:handle",
		Binder: ez.BindNone,
		Gate:   auth.Authenticated(),
		Handler: func(c *gin.Context, _ *struct{}) (companyDetailOut, error) {
			co, err := h.svc.Get(c.Request.Context(), c.Param("handle"))
			return companyDetailOut{Company: co}, err
		},
	})

	ez.RegisterAction(e, ez.Action[domain.Patch, companyOut]{
		Method: http.MethodPatch,
		Path:   "/companies/:handle",
		Binder: ez.BindPatch,
		Schema: validate.CompanyUpdate,
		Gate:   auth.Admin(),
		Handler: func(c *gin.Context, in *domain.Patch) (companyOut, error) {
			co, err := h.svc.Update(c.Request.Context(), c.Param("handle"), *in)
			return companyOut{Company: co}, err
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, resp.Message]{
		Method: http.MethodDelete,
		Path:   "/companies/:handle",
		Binder: ez.BindNone,
		Gate:   auth.Admin(),
		Handler: func(c *gin.Context, _ *struct{}) (resp.Message, error) {
			if err := h.svc.Remove(c.Request.Context(), c.Param("handle")); err != nil {
				return resp.Message{}, err
			}
			return resp.Message{Message: "Company deleted"}, nil
		},
	})
}
