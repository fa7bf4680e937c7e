package profile

import (
	"artisan/pkg/domain"
	"artisan/pkg/media"
	"context"
)

// Info is the onboarding profile of a user.
type Info struct {
	State             string `validate:"notblank,max=100"`
	LGA               string `validate:"notblank,max=100"`
	Fullname          string `validate:"notblank,max=100"`
	DOB               string `validate:"notblank"`
	AccountType       string `validate:"oneof=client artisan" label:"account type"`
	YearsOfExperience string `validate:"omitempty,number"`
	// Picture is optional.
	Picture *media.Upload
}

// Update changes the personal details of a user. Nil fields stay untouched.
type Update struct {
	// DOB is formatted DD/MM/YYYY.
	DOB   *string
	State *string
	LGA   *string
}

//go:generate mockgen -package mockprofile -source=interface.go -destination=mock/mockprofile.go *
type Profile interface {
	AddInfo(ctx context.Context, id domain.UserID, info Info) (*domain.User, error)
	SetService(ctx context.Context, id domain.UserID, service string) (*domain.User, error)
	SetBio(ctx context.Context, id domain.UserID, bio string) (*domain.User, error)
	Update(ctx context.Context, id domain.UserID, update Update) (*domain.User, error)
	SetPicture(ctx context.Context, id domain.UserID, picture media.Upload) (*domain.User, error)
	ToggleStatus(ctx context.Context, id domain.UserID) (*domain.User, error)
	SetFCMToken(ctx context.Context, id domain.UserID, token string) (*domain.User, error)
	TogglePushNotifications(ctx context.Context, id domain.UserID) (*domain.User, error)
	ToggleEmailNotifications(ctx context.Context, id domain.UserID) (*domain.User, error)
}
