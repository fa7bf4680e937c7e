package controller_test

import (
	"artisan/pkg/controller"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func serveCORS(t *testing.T, allowed []string, method, origin string) (*http.Response, bool) {
	t.Helper()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(method, "/v1/chats", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	controller.WithCORS(allowed)(next).ServeHTTP(rec, req)

	return rec.Result(), called
}

func TestWithCORS_Preflight(t *testing.T) {
	res, called := serveCORS(t, nil, http.MethodOptions, "https://app.example.com")

	require.False(t, called)
	require.Equal(t, http.StatusNoContent, res.StatusCode)
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	require.Empty(t, res.Header.Get("Access-Control-Allow-Credentials"))
	require.Contains(t, res.Header.Get("Access-Control-Allow-Headers"), "Authorization")
	require.Contains(t, res.Header.Get("Access-Control-Allow-Methods"), "PATCH")
	require.Contains(t, res.Header.Get("Access-Control-Allow-Methods"), "DELETE")
	require.Equal(t, "600", res.Header.Get("Access-Control-Max-Age"))
}

func TestWithCORS_PassesThrough(t *testing.T) {
	res, called := serveCORS(t, []string{"*"}, http.MethodGet, "")

	require.True(t, called)
	require.Equal(t, http.StatusTeapot, res.StatusCode)
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "X-Request-Id", res.Header.Get("Access-Control-Expose-Headers"))
	require.Empty(t, res.Header.Get("Access-Control-Allow-Methods"))
}

func TestWithCORS_AllowList(t *testing.T) {
	allowed := []string{"https://app.example.com/", "https://admin.example.com"}

	res, called := serveCORS(t, allowed, http.MethodGet, "https://app.example.com")
	require.True(t, called)
	require.Equal(t, "https://app.example.com", res.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", res.Header.Get("Access-Control-Allow-Credentials"))
	require.Equal(t, "Origin", res.Header.Get("Vary"))

	res, called = serveCORS(t, allowed, http.MethodGet, "https://evil.example.com")
	require.True(t, called, "the browser enforces the missing header")
	require.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))
	require.Empty(t, res.Header.Get("Access-Control-Allow-Credentials"))

	res, _ = serveCORS(t, allowed, http.MethodOptions, "https://admin.example.com")
	require.Equal(t, http.StatusNoContent, res.StatusCode)
	require.Equal(t, "https://admin.example.com", res.Header.Get("Access-Control-Allow-Origin"))
}
