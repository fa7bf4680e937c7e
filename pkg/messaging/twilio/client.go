// Package twilio delivers OTPs over WhatsApp with the Twilio Messages API and
// starts SMS phone verifications with Twilio Verify.
package twilio

import (
	"artisan/pkg/messaging"
	"artisan/pkg/serrors"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	defaultAPIURL    = "https://api.twilio.com"
	defaultVerifyURL = "https://verify.twilio.com"
)

// Options configures a Client.
type Options struct {
	AccountSID string
	AuthToken  string
	// WhatsAppFrom is the sender number in E.164 format, without the
	// "whatsapp:" prefix.
	WhatsAppFrom string
	// ContentSID is the approved WhatsApp template carrying the code as
	// variable "1".
	ContentSID       string
	VerifyServiceSID string

	// APIURL and VerifyURL override the API hosts.
	APIURL    string
	VerifyURL string
}

// Client is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	opts       Options
}

var (
	_ messaging.OTPSender = (*Client)(nil)
	_ messaging.Verifier  = (*Client)(nil)
)

// New constructs a Client using httpClient for all calls.
func New(httpClient *http.Client, opts Options) *Client {
	if opts.APIURL == "" {
		opts.APIURL = defaultAPIURL
	}
	if opts.VerifyURL == "" {
		opts.VerifyURL = defaultVerifyURL
	}
	opts.APIURL = strings.TrimRight(opts.APIURL, "/")
	opts.VerifyURL = strings.TrimRight(opts.VerifyURL, "/")

	return &Client{httpClient: httpClient, opts: opts}
}

// SendOTP sends code through the WhatsApp content template.
func (c *Client) SendOTP(ctx context.Context, phone, code string) (string, error) {
	// https://www.twilio.com/docs/messaging/api/message-resource#create-a-message-resource
	to, err := messaging.E164(phone)
	if err != nil {
		return "", err
	}
	variables, err := json.Marshal(map[string]string{"1": code})
	if err != nil {
		return "", fmt.Errorf("could not marshal content variables: %w", err)
	}

	form := url.Values{}
	form.Set("To", "whatsapp:"+to)
	form.Set("From", "whatsapp:"+c.opts.WhatsAppFrom)
	form.Set("ContentSid", c.opts.ContentSID)
	form.Set("ContentVariables", string(variables))

	var res struct {
		SID string `json:"sid"`
	}
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.opts.APIURL, url.PathEscape(c.opts.AccountSID))
	if err := c.post(ctx, endpoint, form, &res); err != nil {
		return "", fmt.Errorf("could not send whatsapp otp: %w", err)
	}

	return res.SID, nil
}

// StartVerification starts an SMS verification of phone.
func (c *Client) StartVerification(ctx context.Context, phone string) (string, error) {
	// https://www.twilio.com/docs/verify/api/verification#start-new-verification
	to, err := messaging.E164(phone)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("Channel", "sms")

	var res struct {
		SID string `json:"sid"`
	}
	endpoint := fmt.Sprintf("%s/v2/Services/%s/Verifications", c.opts.VerifyURL, url.PathEscape(c.opts.VerifyServiceSID))
	if err := c.post(ctx, endpoint, form, &res); err != nil {
		return "", fmt.Errorf("could not start verification: %w", err)
	}

	return res.SID, nil
}

func (c *Client) post(ctx context.Context, endpoint string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.SetBasicAuth(c.opts.AccountSID, c.opts.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		msg := strings.TrimSpace(string(b))
		if json.Unmarshal(b, &apiErr) == nil && apiErr.Message != "" {
			msg = fmt.Sprintf("%d: %s", apiErr.Code, apiErr.Message)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return serrors.With(serrors.ErrRateLimited, "rate limited: %s", msg)
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return serrors.With(serrors.ErrUnauthorized, "twilio rejected credentials: %s", msg)
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return serrors.With(serrors.ErrBadRequest, "twilio rejected request: %s", msg)
		default:
			return serrors.With(serrors.ErrUnavailable, "twilio failed: %s", msg)
		}
	}

	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}

	return nil
}
