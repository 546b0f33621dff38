package middleware

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"jobly/internal/core/errs"
)

// 敏感 query key（小写比较）
var sensitiveKeys = map[string]struct{}{
	"password": {}, "token": {}, "_token": {}, "authorization": {}, "secret": {},
}

func maskQuery(q url.Values) map[string][]string {
	out := make(map[string][]string, len(q))
	for k, v := range q {
		if _, ok := sensitiveKeys[strings.ToLower(k)]; ok {
			out[k] = []string{"****"}
			continue
		}
		out[k] = v
	}
	return out
}

// AccessLog writes one line per request after it completes. The caller is
// the username from a verified token ("-" when anonymous). Failed requests
// carry the error kind recorded by the action layer; 4xx lines are logged at
// warn and 5xx at error.
func AccessLog(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		caller := "-"
		if id := IdentityFrom(c); id != nil {
			caller = id.Username
		}
		fields := []zap.Field{
			zap.String("rid", RequestIDFrom(c)),
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("user", caller),
			zap.Int("size", max(c.Writer.Size(), 0)),
		}
		if q := c.Request.URL.Query(); len(q) > 0 {
			fields = append(fields, zap.Any("query", maskQuery(q)))
		}

		lvl := zapcore.InfoLevel
		if status >= http.StatusBadRequest {
			lvl = zapcore.WarnLevel
			if status >= http.StatusInternalServerError {
				lvl = zapcore.ErrorLevel
			}
			if last := c.Errors.Last(); last != nil {
				fields = append(fields,
					zap.String("kind", errs.KindOf(last.Err).String()),
					zap.String("error", last.Error()),
				)
			}
		}
		l.Log(lvl, "HTTP", fields...)
	}
}
