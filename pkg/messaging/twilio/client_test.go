package twilio_test

import (
	"artisan/pkg/messaging/twilio"
	"artisan/pkg/serrors"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(fn rtFunc) *twilio.Client {
	return twilio.New(&http.Client{Transport: fn}, twilio.Options{
		AccountSID:       "AC123",
		AuthToken:        "token",
		WhatsAppFrom:     "+2348030000000",
		ContentSID:       "HX999",
		VerifyServiceSID: "VA555",
	})
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestClient_SendOTP(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "api.twilio.com", r.URL.Host)
		require.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "AC123", user)
		require.Equal(t, "token", pass)

		require.NoError(t, r.ParseForm())
		require.Equal(t, "whatsapp:+2348012345678", r.PostForm.Get("To"))
		require.Equal(t, "whatsapp:+2348030000000", r.PostForm.Get("From"))
		require.Equal(t, "HX999", r.PostForm.Get("ContentSid"))
		require.JSONEq(t, `{"1":"4821"}`, r.PostForm.Get("ContentVariables"))

		return jsonResponse(http.StatusCreated, `{"sid":"SM1"}`), nil
	})

	sid, err := c.SendOTP(context.Background(), "08012345678", "4821")
	require.NoError(t, err)
	require.Equal(t, "SM1", sid)
}

func TestClient_SendOTP_Errors(t *testing.T) {
	tests := []struct {
		status int
		kind   serrors.Kind
	}{
		{http.StatusTooManyRequests, serrors.ErrRateLimited},
		{http.StatusBadRequest, serrors.ErrBadRequest},
		{http.StatusUnauthorized, serrors.ErrUnauthorized},
		{http.StatusServiceUnavailable, serrors.ErrUnavailable},
	}
	for _, tt := range tests {
		c := newTestClient(func(*http.Request) (*http.Response, error) {
			return jsonResponse(tt.status, `{"code":21211,"message":"bad"}`), nil
		})
		_, err := c.SendOTP(context.Background(), "08012345678", "1234")
		require.ErrorIs(t, err, tt.kind, "status %d", tt.status)
	}
}

func TestClient_SendOTP_InvalidPhone(t *testing.T) {
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		t.Fatal("no request expected")

		return nil, nil
	})
	_, err := c.SendOTP(context.Background(), "---", "1234")
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestClient_StartVerification(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "verify.twilio.com", r.URL.Host)
		require.Equal(t, "/v2/Services/VA555/Verifications", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "+2348012345678", r.PostForm.Get("To"))
		require.Equal(t, "sms", r.PostForm.Get("Channel"))

		return jsonResponse(http.StatusCreated, `{"sid":"VE1","status":"pending"}`), nil
	})

	sid, err := c.StartVerification(context.Background(), "0801-234-5678")
	require.NoError(t, err)
	require.Equal(t, "VE1", sid)
}
