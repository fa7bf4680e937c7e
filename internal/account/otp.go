package account

import (
	"artisan/internal/delivery"
	"artisan/pkg/domain"
	"artisan/pkg/serrors"
	"artisan/pkg/storage"
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

const (
	otpMin = 1000
	otpMax = 9999
)

// GenerateOTP returns a random 4 digit code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", fmt.Errorf("could not generate OTP: %w", err)
	}

	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}

// issueOTP stores the hash of a fresh OTP on the user and queues its delivery.
// A phone already served inside the resend interval is rate limited, which
// rolls back the surrounding transaction.
func (a account) issueOTP(ctx context.Context, tx storage.AllStorage, user *domain.User) error {
	code, err := GenerateOTP()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), a.options.BcryptCost)
	if err != nil {
		return fmt.Errorf("could not hash OTP: %w", err)
	}
	hashed := string(hash)
	now := a.options.Now()

	if _, err := tx.UpdateUser(ctx, user.ID, storage.UserUpdates{
		OTPHash:      &hashed,
		OTPCreatedAt: &now,
	}); err != nil {
		return fmt.Errorf("could not store OTP: %w", err)
	}

	added, err := tx.AddJob(ctx, delivery.NewOTPArgs(a.options.Delivery, user.ID.String(), user.PhoneNumber, code), nil)
	if err != nil {
		return fmt.Errorf("could not add OTP job: %w", err)
	}
	if !added {
		return serrors.With(serrors.ErrRateLimited, "OTP was sent recently")
	}

	return nil
}

// checkOTP compares otp against the stored hash. Failures are reported with
// the given kind.
func (a account) checkOTP(user *domain.User, otp string, kind serrors.Kind) error {
	if user.OTPHash == "" {
		return serrors.With(kind, "Invalid OTP")
	}
	if a.options.OTPTTL > 0 && a.options.Now().After(user.OTPCreatedAt.Add(a.options.OTPTTL)) {
		return serrors.With(kind, "OTP has expired")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.OTPHash), []byte(otp)) != nil {
		return serrors.With(kind, "Invalid OTP")
	}

	return nil
}
