// Package account implements registration, OTP based sign-in and the
// password flows.
package account

import (
	"artisan/internal/delivery"
	"artisan/internal/notification"
	"artisan/pkg/domain"
	"artisan/pkg/logger"
	"artisan/pkg/serrors"
	"artisan/pkg/storage"
	"artisan/pkg/validation"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const promoCodeLength = 6

// Options configure OTP validity, hashing and the outbound messages.
type Options struct {
	AppName string
	// AdminEmail receives registration and security alerts. Empty disables them.
	AdminEmail string
	// OTPTTL is how long an issued OTP stays valid.
	OTPTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	Delivery   delivery.Options
	// Now defaults to time.Now.
	Now func() time.Time
}

type account struct {
	options Options
	storage storage.Storage
	tokens  TokenIssuer
}

func New(storage storage.Storage, tokens TokenIssuer, options Options) Account {
	if options.BcryptCost == 0 {
		options.BcryptCost = bcrypt.DefaultCost
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	return &account{options: options, storage: storage, tokens: tokens}
}

func (a account) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	req.Fullname = strings.TrimSpace(req.Fullname)
	if err := validation.Struct(req); err != nil {
		return nil, "", err
	}

	hash, err := a.hash(req.Password)
	if err != nil {
		return nil, "", err
	}

	var user *domain.User
	if err := a.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		user, err = tx.StoreUser(ctx, domain.User{
			PhoneNumber:        req.PhoneNumber,
			Email:              req.Email,
			Fullname:           strings.ToLower(req.Fullname),
			PasswordHash:       hash,
			PromoCode:          notification.RandomLetters(promoCodeLength),
			Status:             domain.StatusOffline,
			PushNotifications:  true,
			EmailNotifications: true,
		})
		if errors.Is(err, storage.ErrConflict) {
			return serrors.Wrap(serrors.ErrConflict, err, "The phone number or email has already been taken.")
		}
		if err != nil {
			return fmt.Errorf("could not store user: %w", err)
		}

		firstName := strings.Fields(req.Fullname)[0]
		if _, err := tx.StoreNotification(ctx, notification.Build(user.ID, domain.NotificationTypeWelcome, "Welcome",
			fmt.Sprintf("Hi %s. Welcome to %s. We are glad to have you on board.", firstName, a.options.AppName))); err != nil {
			return fmt.Errorf("could not store welcome notification: %w", err)
		}

		if err := a.issueOTP(ctx, tx, user); err != nil {
			return err
		}

		if err := a.alertAdmin(ctx, tx, "New Registration - "+a.options.AppName, user.Fullname,
			fmt.Sprintf("New customer registered. Name: %s, Phone: %s", user.Fullname, user.PhoneNumber)); err != nil {
			return err
		}

		if _, err := tx.AddJob(ctx, delivery.NewVerificationArgs(a.options.Delivery, user.PhoneNumber), nil); err != nil {
			return fmt.Errorf("could not add verification job: %w", err)
		}

		return nil
	}); err != nil {
		return nil, "", fmt.Errorf("could not register user: %w", err)
	}

	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("could not issue token: %w", err)
	}

	logger.Info(ctx, "user registered", zap.String("userID", user.ID.String()))

	return user, token, nil
}

func (a account) Login(ctx context.Context, phone, password string) (*domain.User, error) {
	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	if err := validation.Var("password", password, "min=6"); err != nil {
		return nil, err
	}

	var user *domain.User
	if err := a.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		user, err = tx.UserByPhone(ctx, phone)
		if err != nil {
			return fmt.Errorf("could not get user: %w", err)
		}
		if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return serrors.With(serrors.ErrUnauthorized, "Incorrect credentials")
		}

		return a.issueOTP(ctx, tx, user)
	}); err != nil {
		return nil, fmt.Errorf("could not login: %w", err)
	}

	return user, nil
}

func (a account) VerifyOTP(ctx context.Context, phone, otp string) (*domain.User, string, error) {
	if err := validation.Var("phone number", phone, "required"); err != nil {
		return nil, "", err
	}
	if err := validateOTP(otp); err != nil {
		return nil, "", err
	}

	user, err := a.storage.UserByPhone(ctx, phone)
	if err != nil {
		return nil, "", fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, "", serrors.With(serrors.ErrNotFound, "Bad request!")
	}
	if err := a.checkOTP(user, otp, serrors.ErrUnauthorized); err != nil {
		return nil, "", err
	}

	verified := true
	cleared := ""
	user, err = a.storage.UpdateUser(ctx, user.ID, storage.UserUpdates{
		PhoneVerified: &verified,
		OTPHash:       &cleared,
	})
	if err != nil {
		return nil, "", fmt.Errorf("could not update user: %w", err)
	}

	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("could not issue token: %w", err)
	}

	return user, token, nil
}

func (a account) ResendOTP(ctx context.Context, phone string) error {
	_, err := a.sendOTP(ctx, phone)

	return err
}

func (a account) RetrievePasswordOTP(ctx context.Context, phone string) (*domain.User, error) {
	return a.sendOTP(ctx, phone)
}

func (a account) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	hash, err := a.hash(req.NewPassword)
	if err != nil {
		return err
	}

	if err := a.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		user, err := tx.UserByPhone(ctx, req.PhoneNumber)
		if err != nil {
			return fmt.Errorf("could not get user: %w", err)
		}
		if user == nil {
			return serrors.With(serrors.ErrUnauthorized, "Bad request")
		}
		if err := a.checkOTP(user, req.OTP, serrors.ErrBadRequest); err != nil {
			return err
		}

		cleared := ""

		return a.changePassword(ctx, tx, user, hash, storage.UserUpdates{OTPHash: &cleared})
	}); err != nil {
		return fmt.Errorf("could not reset password: %w", err)
	}

	return nil
}

func (a account) Me(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := a.storage.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrUnauthorized, "Bad request")
	}

	return user, nil
}

func (a account) UpdatePassword(ctx context.Context, id domain.UserID, req UpdatePasswordRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	hash, err := a.hash(req.NewPassword)
	if err != nil {
		return err
	}

	if err := a.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		user, err := tx.UserByID(ctx, id)
		if err != nil {
			return fmt.Errorf("could not get user: %w", err)
		}
		if user == nil {
			return serrors.With(serrors.ErrUnauthorized, "Bad request")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
			return serrors.With(serrors.ErrBadRequest, "Current password is incorrect")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.NewPassword)) == nil {
			return serrors.With(serrors.ErrBadRequest, "New password must be different from current password")
		}

		return a.changePassword(ctx, tx, user, hash, storage.UserUpdates{})
	}); err != nil {
		return fmt.Errorf("could not update password: %w", err)
	}

	return nil
}

// sendOTP issues a fresh OTP to an existing account.
func (a account) sendOTP(ctx context.Context, phone string) (*domain.User, error) {
	if err := validatePhone(phone); err != nil {
		return nil, err
	}

	var user *domain.User
	if err := a.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		user, err = tx.UserByPhone(ctx, phone)
		if err != nil {
			return fmt.Errorf("could not get user: %w", err)
		}
		if user == nil {
			return serrors.With(serrors.ErrNotFound, "Account not found")
		}

		return a.issueOTP(ctx, tx, user)
	}); err != nil {
		return nil, fmt.Errorf("could not send OTP: %w", err)
	}

	return user, nil
}

// changePassword stores the new password hash together with extra updates,
// records a security notification and alerts the admin.
func (a account) changePassword(
	ctx context.Context,
	tx storage.AllStorage,
	user *domain.User,
	hash string,
	updates storage.UserUpdates) error {
	now := a.options.Now()
	updates.PasswordHash = &hash
	updates.PasswordChangedAt = &now
	if _, err := tx.UpdateUser(ctx, user.ID, updates); err != nil {
		return fmt.Errorf("could not update password: %w", err)
	}

	if _, err := tx.StoreNotification(ctx, notification.Build(user.ID, domain.NotificationTypeSecurity, "Password Changed",
		"Your password has been successfully changed on "+now.Format("Jan 02, 2006 at 03:04 PM"))); err != nil {
		return fmt.Errorf("could not store security notification: %w", err)
	}

	if err := a.alertAdmin(ctx, tx, "Password Change Alert - "+a.options.AppName, user.Fullname,
		fmt.Sprintf("Password changed for user: %s (%s)", user.Fullname, user.PhoneNumber)); err != nil {
		return err
	}

	logger.Info(ctx, "password changed", zap.String("userID", user.ID.String()))

	return nil
}

func (a account) alertAdmin(ctx context.Context, tx storage.AllStorage, subject, username, message string) error {
	if a.options.AdminEmail == "" {
		return nil
	}

	if _, err := tx.AddJob(ctx, delivery.NewMailArgs(a.options.Delivery,
		a.options.AdminEmail, subject, strings.ToUpper(username), message), nil); err != nil {
		return fmt.Errorf("could not add mail job: %w", err)
	}

	return nil
}

func (a account) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.options.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}

	return string(hash), nil
}
