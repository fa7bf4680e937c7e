package account

import (
	"artisan/pkg/domain"
	"context"
)

// RegisterRequest carries the fields of a new account.
type RegisterRequest struct {
	PhoneNumber string `validate:"required,phone"`
	Email       string `validate:"required,email,max=255"`
	Password    string `validate:"required,min=6,max=20"`
	Fullname    string `validate:"notblank,min=6,max=40,fullname"`
}

// ResetPasswordRequest sets a new password using an OTP sent to the phone.
type ResetPasswordRequest struct {
	PhoneNumber     string `validate:"required,phone"`
	OTP             string `validate:"digits=4"`
	NewPassword     string `validate:"required,min=6,max=20"`
	ConfirmPassword string `validate:"eqfield=NewPassword"`
}

// UpdatePasswordRequest changes the password of a signed-in user.
type UpdatePasswordRequest struct {
	CurrentPassword string `validate:"min=6"`
	NewPassword     string `validate:"required,min=6,max=20"`
	ConfirmPassword string `validate:"eqfield=NewPassword"`
}

//go:generate mockgen -package mockaccount -source=interface.go -destination=mock/mockaccount.go *
type Account interface {
	// Register creates the account and returns it with a bearer token.
	Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error)
	// Login checks the password and sends an OTP to finish signing in.
	Login(ctx context.Context, phone, password string) (*domain.User, error)
	// VerifyOTP checks the OTP, marks the phone verified and returns a token.
	VerifyOTP(ctx context.Context, phone, otp string) (*domain.User, string, error)
	ResendOTP(ctx context.Context, phone string) error
	// RetrievePasswordOTP sends an OTP used by ResetPassword.
	RetrievePasswordOTP(ctx context.Context, phone string) (*domain.User, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	Me(ctx context.Context, id domain.UserID) (*domain.User, error)
	UpdatePassword(ctx context.Context, id domain.UserID, req UpdatePasswordRequest) error
}

// TokenIssuer signs bearer tokens for users.
type TokenIssuer interface {
	Issue(userID domain.UserID) (string, error)
}
