package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesAccessLine(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	h := Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxzap.Info(r.Context(), "inside")
		w.WriteHeader(http.StatusBadRequest)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/extract", nil))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "/api/v1/extract", entries[0].ContextMap()["path"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(http.StatusBadRequest), entries[1].ContextMap()["status"])
}

func TestAccessLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, accessLevel("/health", http.StatusOK))
	assert.Equal(t, zapcore.InfoLevel, accessLevel("/api/v1/merge", http.StatusOK))
	assert.Equal(t, zapcore.ErrorLevel, accessLevel("/health", http.StatusServiceUnavailable))
}
