package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/timetable-api/pkg/config"
	"github.com/noah-isme/timetable-api/pkg/middleware/requestid"
)

func TestNewFallsBackToInfoOnBadLevel(t *testing.T) {
	l, err := New(&config.Config{Env: config.EnvProduction, Log: config.LogConfig{Level: "loud", Format: "console"}})
	require.NoError(t, err)

	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestGinMiddlewareLogsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)

	r := gin.New()
	r.Use(requestid.Middleware(), GinMiddleware(zap.New(core)))
	r.GET("/timetable", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/timetable/generate", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	req := httptest.NewRequest(http.MethodGet, "/timetable", nil)
	req.Header.Set(requestid.HeaderKey, "req-1")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/timetable/generate", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}
