package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type buf struct{ bytes.Buffer }

func (b *buf) Sync() error { return nil }

func TestBuild_JSONLevel(t *testing.T) {
	out := &buf{}
	l, done := Build(Options{Level: "warn", JSON: true, Output: out})
	l.Info("hidden")
	l.Warn("shown", zap.String("k", "v"))
	done()

	s := out.String()
	assert.NotContains(t, s, "hidden")
	assert.Contains(t, s, `"msg":"shown"`)
	assert.Contains(t, s, `"k":"v"`)
}

func TestBuild_BadLevelFallsBackToInfo(t *testing.T) {
	out := &buf{}
	l, done := Build(Options{Level: "loud", JSON: true, Output: out})
	l.Debug("debug-line")
	l.Info("info-line")
	done()
	assert.NotContains(t, out.String(), "debug-line")
	assert.Contains(t, out.String(), "info-line")
}

func TestToWriter(t *testing.T) {
	out := &buf{}
	l, done := Build(Options{Level: "debug", JSON: true, Output: out})
	w := ToWriter(l, zapcore.InfoLevel)
	n, err := w.Write([]byte("from gin\n"))
	done()
	assert.NoError(t, err)
	assert.Equal(t, len("from gin\n"), n)
	assert.Contains(t, out.String(), `"msg":"from gin"`)
}
