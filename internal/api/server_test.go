package api_test

import (
	"artisan/internal/api"
	"artisan/internal/api/handler/v1handler"
	mockartisan "artisan/internal/artisan/mock"
	"artisan/internal/ranking"
	"artisan/pkg/logger"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment, false)
	os.Exit(m.Run())
}

type testServer struct {
	*httptest.Server

	key       *rsa.PrivateKey
	discovery *mockartisan.MockDiscovery
}

func newTestServer(t *testing.T, riverUI http.Handler, debug bool) *testServer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	mediaRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(mediaRoot, "profiles"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mediaRoot, "profiles", "a.jpg"), []byte("jpeg"), 0o600))

	discovery := mockartisan.NewMockDiscovery(gomock.NewController(t))
	registry := prometheus.NewRegistry()

	handler, err := api.NewHandler(api.Deps{
		Deps:    v1handler.Deps{Discovery: discovery},
		RiverUI: riverUI,
	}, api.Options{
		SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: string(pubPEM)},
		RequestTimeout:    5 * time.Second,
		Debug:             debug,
		MetricsPath:       "/metrics",
		MediaRoot:         mediaRoot,
		Registerer:        registry,
		Gatherer:          registry,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, key: key, discovery: discovery}
}

func (s *testServer) get(t *testing.T, path, token string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, s.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := s.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(body)
}

func (s *testServer) token(t *testing.T) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(s.key)
	require.NoError(t, err)

	return signed
}

func TestServer_SpecAndDocs(t *testing.T) {
	s := newTestServer(t, nil, false)

	res, body := s.get(t, "/specs/v1.yaml", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/yaml", res.Header.Get("Content-Type"))
	require.Contains(t, body, "openapi:")
	require.Contains(t, body, "/fetch/artisan")

	res, _ = s.get(t, "/v1/docs/", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestServer_RoutesAreMeasured(t *testing.T) {
	s := newTestServer(t, nil, false)
	s.discovery.EXPECT().All(gomock.Any(), gomock.Any()).Return([]ranking.ClientView{}, nil)

	res, body := s.get(t, "/v1/fetch/artisan", s.token(t))
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	require.NotEmpty(t, res.Header.Get("X-Request-Id"))
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))

	res, body = s.get(t, "/metrics", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, "http_server_requests")
	require.Contains(t, body, `http_route="GET /v1/fetch/artisan"`)
}

func TestServer_UnknownV1Route(t *testing.T) {
	s := newTestServer(t, nil, false)

	res, body := s.get(t, "/v1/does-not-exist", "")
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.JSONEq(t, `{"success":false,"message":"Route not found"}`, body)
}

func TestServer_ErrorDetail(t *testing.T) {
	cause := errors.New(`could not fetch providers: password authentication failed for user "app"`)

	tests := []struct {
		name       string
		debug      bool
		wantDetail bool
	}{
		{name: "hidden by default", debug: false},
		{name: "shown in debug", debug: true, wantDetail: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil, tt.debug)
			s.discovery.EXPECT().All(gomock.Any(), gomock.Any()).Return(nil, cause)

			res, raw := s.get(t, "/v1/fetch/artisan", s.token(t))
			require.Equal(t, http.StatusInternalServerError, res.StatusCode)

			var body map[string]any
			require.NoError(t, json.Unmarshal([]byte(raw), &body), raw)
			require.Equal(t, "internal error", body["message"])
			if tt.wantDetail {
				require.Equal(t, cause.Error(), body["error"])
			} else {
				require.NotContains(t, body, "error")
				require.NotContains(t, raw, "password")
			}
		})
	}
}

func TestServer_Media(t *testing.T) {
	s := newTestServer(t, nil, false)

	res, body := s.get(t, "/storage/profiles/a.jpg", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "jpeg", body)
}

func TestServer_RiverUI(t *testing.T) {
	res, _ := newTestServer(t, nil, false).get(t, "/riverui/", "")
	require.Equal(t, http.StatusNotFound, res.StatusCode)

	ui := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	res, _ = newTestServer(t, ui, false).get(t, "/riverui/queues", "")
	require.Equal(t, http.StatusAccepted, res.StatusCode)
}
