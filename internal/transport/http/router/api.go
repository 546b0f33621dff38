package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"jobly/internal/core/auth"
	"jobly/internal/core/config"
	"jobly/internal/core/server"
	"jobly/internal/core/validate"
	"jobly/internal/service"
	"jobly/internal/transport/http/handler"
	mdw "jobly/internal/transport/http/middleware"
	resp "jobly/internal/transport/http/response"
)

// Deps 组装路由所需的全部依赖
type Deps struct {
	Log       *zap.Logger
	JWT       *auth.JWTer
	Validator *validate.Validator
	CORS      config.CORS
	Limits    config.Limits

	Auth      *service.Auth
	Users     *service.Users
	Companies *service.Companies
	Jobs      *service.Jobs
}

// 闲置超过该时长的 IP 桶会被回收
const ipBucketIdle = 10 * time.Minute

func NewAPIEngine(d Deps) *gin.Engine {
	r := server.NewRouter(d.CORS)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := mdw.NewHTTPMetrics(reg)

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.Recovery(d.Log),
		mdw.AccessLog(d.Log),
		metrics.Handler(),
	)
	if lim := d.Limits; lim.GlobalRPS > 0 {
		r.Use(mdw.RateLimit(rate.Limit(lim.GlobalRPS), max(lim.GlobalBurst, 1)))
	}
	if lim := d.Limits; lim.RPS > 0 {
		r.Use(mdw.RateLimitPerIP(rate.Limit(lim.RPS), max(lim.Burst, 1), ipBucketIdle))
	}
	if d.Limits.MaxConcurrent > 0 {
		r.Use(mdw.ConcurrencyLimit(d.Limits.MaxConcurrent))
	}
	if d.Limits.MaxBodyBytes > 0 {
		r.Use(mdw.MaxBodyBytes(d.Limits.MaxBodyBytes))
	}
	if d.Limits.RequestTimeoutSec > 0 {
		r.Use(mdw.Timeout(time.Duration(d.Limits.RequestTimeoutSec) * time.Second))
	}
	r.Use(mdw.Identify(d.JWT))

	// 健康检查 / 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Error(http.StatusNotFound, ""))
	})

	var mods Registry
	mods.Register(
		handler.NewAuth(d.Auth, d.Validator, d.Log),
		handler.NewUsers(d.Auth, d.Users, d.Validator, d.Log),
		handler.NewCompanies(d.Companies, d.Validator, d.Log),
		handler.NewJobs(d.Jobs, d.Validator, d.Log),
	)
	mods.MountAll(&r.RouterGroup)

	return r
}
