// Package messaging defines the outbound channels used to reach users: OTP
// delivery over WhatsApp, plain SMS, phone verification and e-mail.
//
//go:generate mockgen -package mockmessaging -source=messaging.go -destination=mock/mockmessaging.go *
package messaging

import (
	"artisan/pkg/serrors"
	"context"
	"strings"
	"unicode"
)

// CountryCode is prefixed to national numbers.
const CountryCode = "+234"

// OTPSender delivers one-time passwords to a phone.
type OTPSender interface {
	// SendOTP delivers code to phone and returns the provider message ID.
	SendOTP(ctx context.Context, phone, code string) (string, error)
}

// SMSSender sends free-form text messages.
type SMSSender interface {
	// SendSMS delivers message to phone and returns the provider message ID.
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

// Verifier starts a provider-managed phone verification.
type Verifier interface {
	// StartVerification asks the provider to send its own code to phone and
	// returns the verification ID.
	StartVerification(ctx context.Context, phone string) (string, error)
}

// Mail is a templated e-mail addressed to a single recipient.
type Mail struct {
	To       string
	Subject  string
	Username string
	Message  string
}

// Mailer sends e-mails.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// NationalNumber strips everything but digits from phone and drops a leading
// trunk zero, e.g. "0801 234 5678" becomes "8012345678".
func NationalNumber(phone string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}

		return -1
	}, phone)
	digits = strings.TrimPrefix(digits, "0")
	if digits == "" {
		return "", serrors.With(serrors.ErrBadRequest, "invalid phone number %q", phone)
	}

	return digits, nil
}

// E164 returns phone in international format using CountryCode. Numbers that
// already carry the country code are kept as they are.
func E164(phone string) (string, error) {
	if strings.HasPrefix(strings.TrimSpace(phone), CountryCode) {
		return strings.TrimSpace(phone), nil
	}

	national, err := NationalNumber(phone)
	if err != nil {
		return "", err
	}

	return CountryCode + national, nil
}
