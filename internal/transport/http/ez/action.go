package ez

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobly/internal/core/auth"
	"jobly/internal/core/errs"
	"jobly/internal/core/validate"
	"jobly/internal/domain"
	mdw "jobly/internal/transport/http/middleware"
	resp "jobly/internal/transport/http/response"
)

/* ================== 轻封装 ================== */

type EZ struct {
	g   *gin.RouterGroup
	v   *validate.Validator
	log *zap.Logger
}

func New(g *gin.RouterGroup, v *validate.Validator, log *zap.Logger) EZ {
	return EZ{g: g, v: v, log: log}
}

/* ================== Action（一行注册） ================== */

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 按 Schema 校验后解码到 I
	BindPatch Binder = "patch" // 按 Schema 校验后解码为 domain.Patch（I 必须是 domain.Patch）
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string    // GET | POST | PATCH | DELETE
	Path    string    // 例："/users/:username"
	Binder  Binder    // 绑定方式
	Schema  string    // BindJSON/BindPatch 使用的 schema $id
	Gate    auth.Gate // nil 表示公开
	Status  int       // 成功状态码，默认 200
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction mounts a on the group. The gate runs before the body is
// read, so an unauthorized caller never gets a validation message. It panics
// at startup when a body binder names a schema the validator lacks.
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	if (a.Binder == BindJSON || a.Binder == BindPatch) && !e.v.HasSchema(a.Schema) {
		panic(fmt.Sprintf("ez: %s %s: unknown schema %q", a.Method, a.Path, a.Schema))
	}
	h := func(c *gin.Context) {
		// 1) 鉴权
		if a.Gate != nil {
			if err := a.Gate(mdw.IdentityFrom(c), c.Params); err != nil {
				e.fail(c, err)
				return
			}
		}

		// 2) 绑定入参
		var in I
		if err := e.bind(c, a.Binder, a.Schema, &in); err != nil {
			e.fail(c, err)
			return
		}

		// 3) 执行
		out, err := a.Handler(c, &in)
		if err != nil {
			e.fail(c, err)
			return
		}

		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, out)
	}

	e.g.Handle(strings.ToUpper(a.Method), a.Path, h)
}

func (e EZ) bind(c *gin.Context, b Binder, schema string, dst any) error {
	switch b {
	case BindJSON:
		body, err := readBody(c)
		if err != nil {
			return err
		}
		return e.v.Decode(body, schema, dst)
	case BindPatch:
		p, ok := dst.(*domain.Patch)
		if !ok {
			return errs.Internal("", fmt.Errorf("BindPatch needs *domain.Patch, got %T", dst))
		}
		body, err := readBody(c)
		if err != nil {
			return err
		}
		m, err := e.v.DecodeMap(body, schema)
		if err != nil {
			return err
		}
		*p = m
	case BindQuery:
		if err := c.ShouldBindQuery(dst); err != nil {
			return errs.InvalidArgument(fmt.Sprintf("invalid query: %v", err))
		}
	default: // BindNone
	}
	return nil
}

func readBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	b, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return b, nil
}

// 统一错误映射
func (e EZ) fail(c *gin.Context, err error) {
	_ = c.Error(err) // 供 AccessLog 记录错误类别
	var (
		tooLarge *http.MaxBytesError
		typed    *errs.Error
	)
	switch {
	case errors.As(err, &tooLarge):
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp.Error(http.StatusRequestEntityTooLarge, ""))
		return
	case errors.As(err, &typed) && typed.Kind != errs.KindInternal:
		c.AbortWithStatusJSON(typed.Status(), resp.Error(typed.Status(), typed.Msg))
		return
	}

	// 5xx 不把内部错误透给客户端
	e.log.Error("request failed",
		zap.String("rid", mdw.RequestIDFrom(c)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, resp.Error(http.StatusInternalServerError, ""))
}
