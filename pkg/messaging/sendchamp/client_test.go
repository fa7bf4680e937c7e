package sendchamp_test

import (
	"artisan/pkg/messaging/sendchamp"
	"artisan/pkg/serrors"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func respond(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Header: http.Header{}, Body: io.NopCloser(strings.NewReader(body))}
}

func TestClient_SendSMS(t *testing.T) {
	c := sendchamp.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "api.sendchamp.com", r.URL.Host)
		require.Equal(t, "/api/v1/sms/send", r.URL.Path)
		require.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, map[string]string{
			"to":          "2348012345678",
			"message":     "Your code is 1234",
			"sender_name": "Artisan",
			"route":       "dnd",
		}, body)

		return respond(http.StatusOK, `{"status":"success","data":{"id":"msg-1"}}`), nil
	})}, "key", "Artisan", "")

	id, err := c.SendSMS(context.Background(), "08012345678", "Your code is 1234")
	require.NoError(t, err)
	require.Equal(t, "msg-1", id)
}

func TestClient_SendSMS_Failures(t *testing.T) {
	tests := []struct {
		status int
		body   string
		kind   serrors.Kind
	}{
		{http.StatusTooManyRequests, `slow down`, serrors.ErrRateLimited},
		{http.StatusBadRequest, `{"status":"error","message":"invalid number"}`, serrors.ErrBadRequest},
		{http.StatusOK, `{"status":"error","message":"insufficient balance"}`, serrors.ErrUnavailable},
	}
	for _, tt := range tests {
		c := sendchamp.New(&http.Client{Transport: rtFunc(func(*http.Request) (*http.Response, error) {
			return respond(tt.status, tt.body), nil
		})}, "key", "Artisan", "")

		_, err := c.SendSMS(context.Background(), "08012345678", "hi")
		require.ErrorIs(t, err, tt.kind, tt.body)
	}
}
