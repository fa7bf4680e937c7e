// Package delivery declares the background jobs that reach users outside the
// app: OTP codes, phone verifications and e-mails. Jobs are enqueued through
// storage.JobStorage so they commit together with the data that caused them.
package delivery

import (
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// Options controls retry and de-duplication of delivery jobs.
type Options struct {
	// MaxAttempts is the number of times River retries a failing delivery.
	MaxAttempts int
	// OTPResendInterval is the window during which a second OTP to the same
	// phone is rejected as a duplicate.
	OTPResendInterval time.Duration
}

// activeStates are the job states in which a unique OTP blocks a new one.
var activeStates = []rivertype.JobState{ //nolint: gochecknoglobals
	rivertype.JobStateAvailable,
	rivertype.JobStateCompleted,
	rivertype.JobStatePending,
	rivertype.JobStateRunning,
	rivertype.JobStateRetryable,
	rivertype.JobStateScheduled,
}

// OTPArgs delivers a one-time password over WhatsApp, falling back to SMS.
type OTPArgs struct {
	UserID string `json:"user_id"`
	// Phone is unique so a phone gets at most one OTP per resend interval.
	Phone string `json:"phone" river:"unique"`
	Code  string `json:"code"`

	maxAttempts    int
	resendInterval time.Duration
}

// NewOTPArgs builds OTP job arguments using opts.
func NewOTPArgs(opts Options, userID, phone, code string) OTPArgs {
	return OTPArgs{
		UserID:         userID,
		Phone:          phone,
		Code:           code,
		maxAttempts:    opts.MaxAttempts,
		resendInterval: opts.OTPResendInterval,
	}
}

// Kind returns the River job kind.
func (OTPArgs) Kind() string { return "DeliverOTPJob" }

// InsertOpts makes the job unique per phone inside the resend window.
func (args OTPArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: args.maxAttempts,
		UniqueOpts: river.UniqueOpts{
			ByArgs:   true,
			ByPeriod: args.resendInterval,
			ByState:  activeStates,
		},
	}
}

// VerificationArgs starts a provider-managed SMS verification of a phone.
type VerificationArgs struct {
	Phone string `json:"phone"`

	maxAttempts int
}

// NewVerificationArgs builds verification job arguments using opts.
func NewVerificationArgs(opts Options, phone string) VerificationArgs {
	return VerificationArgs{Phone: phone, maxAttempts: opts.MaxAttempts}
}

// Kind returns the River job kind.
func (VerificationArgs) Kind() string { return "StartPhoneVerificationJob" }

func (args VerificationArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{MaxAttempts: args.maxAttempts}
}

// MailArgs sends a templated e-mail.
type MailArgs struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Username string `json:"username"`
	Message  string `json:"message"`

	maxAttempts int
}

// NewMailArgs builds mail job arguments using opts.
func NewMailArgs(opts Options, to, subject, username, message string) MailArgs {
	return MailArgs{
		To:          to,
		Subject:     subject,
		Username:    username,
		Message:     message,
		maxAttempts: opts.MaxAttempts,
	}
}

// Kind returns the River job kind.
func (MailArgs) Kind() string { return "SendMailJob" }

func (args MailArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{MaxAttempts: args.maxAttempts}
}
