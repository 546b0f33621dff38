package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobly/internal/core/auth"
	"jobly/internal/core/errs"
	"jobly/internal/core/validate"
	"jobly/internal/domain"
	"jobly/internal/service"
	"jobly/internal/transport/http/ez"
	resp "jobly/internal/transport/http/response"
)

type Jobs struct {
	svc *service.Jobs
	v   *validate.Validator
	log *zap.Logger
}

func NewJobs(svc *service.Jobs, v *validate.Validator, log *zap.Logger) *Jobs {
	return &Jobs{svc: svc, v: v, log: log}
}

func (h *Jobs) Priority() int { return 40 }

type jobQuery struct {
	Search    *string  `form:"search"`
	MinSalary *int     `form:"min_salary"`
	MinEquity *float64 `form:"min_equity"`
}

func jobID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errs.InvalidArgument("job id must be an integer")
	}
	return id, nil
}

func (h *Jobs) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.v, h.log)

	ez.RegisterAction(e, ez.Action[jobQuery, jobsOut]{
		Method: http.MethodGet,
		Path:   "/jobs",
		Binder: ez.BindQuery,
		Gate:   auth.Authenticated(),
		Handler: func(c *gin.Context, q *jobQuery) (jobsOut, error) {
			list, err := h.svc.List(c.Request.Context(), domain.JobFilter{
				Search:    q.Search,
				MinSalary: q.MinSalary,
				MinEquity: q.MinEquity,
			})
			return jobsOut{Jobs: list}, err
		},
	})

	ez.RegisterAction(e, ez.Action[domain.NewJob, jobOut]{
		Method: http.MethodPost,
		Path:   "/jobs",
		Binder: ez.BindJSON,
		Schema: validate.JobNew,
		Gate:   auth.Admin(),
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *domain.NewJob) (jobOut, error) {
			j, err := h.svc.Create(c.Request.Context(), *in)
			return jobOut{Job: j}, err
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, jobDetailOut]{
		Method: http.MethodGet,
		Path:   "/jobs/:id",
		Binder: ez.BindNone,
		Gate:   auth.Authenticated(),
		Handler: func(c *gin.Context, _ *struct{}) (jobDetailOut, error) {
			id, err := jobID(c)
			if err != nil {
				return jobDetailOut{}, err
			}
			j, err := h.svc.Get(c.Request.Context(), id)
			return jobDetailOut{Job: j}, err
		},
	})

	ez.RegisterAction(e, ez.Action[domain.Patch, jobOut]{
		Method: http.MethodPatch,
		Path:   "/jobs/:id",
		Binder: ez.BindPatch,
		Schema: validate.JobUpdate,
		Gate:   auth.Admin(),
		Handler: func(c *gin.Context, in *domain.Patch) (jobOut, error) {
			id, err := jobID(c)
			if err != nil {
				return jobOut{}, err
			}
			j, err := h.svc.Update(c.Request.Context(), id, *in)
			return jobOut{Job: j}, err
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, resp.Message]{
		Method: http.MethodDelete,
		Path:   "/jobs/:id",
		Binder: ez.BindNone,
		Gate:   auth.Admin(),
		Handler: func(c *gin.Context, _ *struct{}) (resp.Message, error) {
			id, err := jobID(c)
			if err != nil {
				return resp.Message{}, err
			}
			if err := h.svc.Remove(c.Request.Context(), id); err != nil {
				return resp.Message{}, err
			}
			return resp.Message{Message: "Job deleted"}, nil
		},
	})
}
