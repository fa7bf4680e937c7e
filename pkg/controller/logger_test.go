package controller_test

import (
	"artisan/pkg/controller"
	"artisan/pkg/logger"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"forwarded for", map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "", "1.2.3.4"},
		{"forwarded wins over real ip", map[string]string{"X-Forwarded-For": "1.2.3.4", "X-Real-IP": "9.8.7.6"}, "", "1.2.3.4"},
		{"real ip", map[string]string{"X-Real-IP": "9.8.7.6"}, "", "9.8.7.6"},
		{"remote addr", nil, "10.0.0.1:12345", "10.0.0.1"},
		{"invalid remote addr", nil, "not-an-addr", "not-an-addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			if tt.remote != "" {
				req.RemoteAddr = tt.remote
			}
			require.Equal(t, tt.want, controller.GetClientIP(req))
		})
	}
}

func serveLogged(t *testing.T, req *http.Request, next http.Handler) (*httptest.ResponseRecorder, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	req = req.WithContext(logger.WithLogger(req.Context(), zap.New(core)))

	rec := httptest.NewRecorder()
	controller.WithLogger(next).ServeHTTP(rec, req)

	return rec, logs
}

func TestWithLogger_RequestID(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment, false)
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := r.Context().Value(controller.RequestIDKey).(string)
		w.Header().Set("X-Echo-Request-Id", s)
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec, _ := serveLogged(t, req, echo)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "abc-123", rec.Header().Get("X-Echo-Request-Id"))
	require.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))

	for _, bad := range []string{"", strings.Repeat("a", 65), "has space", "bad\nline", "ünïcode"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", bad)
		rec, _ := serveLogged(t, req, echo)

		got := rec.Header().Get("X-Request-Id")
		require.NotEqual(t, bad, got, "request id %q should be replaced", bad)
		require.Len(t, got, 36)
		require.Equal(t, got, rec.Header().Get("X-Echo-Request-Id"))
	}
}

func TestWithLogger_AccessLog(t *testing.T) {
	tests := []struct {
		status int
		level  zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusNotFound, zapcore.WarnLevel},
		{http.StatusUnprocessableEntity, zapcore.WarnLevel},
		{http.StatusServiceUnavailable, zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /v1/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("hello"))
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/items/42", nil)
			req.Header.Set("X-Request-Id", "req-1")
			_, logs := serveLogged(t, req, mux)

			entries := logs.FilterMessage("Access log").All()
			require.Len(t, entries, 1)
			entry := entries[0]
			require.Equal(t, tt.level, entry.Level)

			fields := entry.ContextMap()
			require.EqualValues(t, tt.status, fields["status_code"])
			require.EqualValues(t, 5, fields["bytes"])
			require.Equal(t, "GET", fields["method"])
			require.Equal(t, "/v1/items/42", fields["url"])
			require.Equal(t, "req-1", fields["RequestID"])
		})
	}
}
