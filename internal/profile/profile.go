// Package profile manages the editable parts of a user account.
package profile

import (
	"artisan/internal/notification"
	"artisan/pkg/domain"
	"artisan/pkg/logger"
	"artisan/pkg/media"
	"artisan/pkg/serrors"
	"artisan/pkg/storage"
	"artisan/pkg/validation"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	maxLocation = 100
	maxState    = 50
	pictureDir  = "profile_pics"
	dobLayout   = "02/01/2006"
)

// PictureTypes are the accepted profile picture formats.
var PictureTypes = []string{"image/jpeg", "image/png", "image/gif"} //nolint: gochecknoglobals

// Options controls how profile pictures are processed.
type Options struct {
	MaxDimension int
	MaxBytes     int
	JPEGQuality  int
}

type profile struct {
	options Options
	storage storage.Storage
	media   media.Store
}

func New(storage storage.Storage, media media.Store, options Options) Profile {
	return &profile{options: options, storage: storage, media: media}
}

func invalid(format string, args ...any) error {
	return serrors.With(serrors.ErrUnprocessable, format, args...)
}

func (p profile) AddInfo(ctx context.Context, id domain.UserID, info Info) (*domain.User, error) {
	if err := validation.Struct(info); err != nil {
		return nil, err
	}
	accountType := domain.AccountType(info.AccountType)

	updates := storage.UserUpdates{
		State:             &info.State,
		LGA:               &info.LGA,
		Fullname:          &info.Fullname,
		DOB:               &info.DOB,
		AccountType:       &accountType,
		YearsOfExperience: &info.YearsOfExperience,
	}

	if info.Picture != nil {
		path, err := p.savePicture(ctx, id, *info.Picture)
		if err != nil {
			return nil, err
		}
		updates.ProfilePic = &path
	}

	return p.update(ctx, id, updates)
}

func (p profile) SetService(ctx context.Context, id domain.UserID, service string) (*domain.User, error) {
	if err := validation.Var("service", service, "notblank,max=100"); err != nil {
		return nil, err
	}
	service = strings.ToLower(strings.TrimSpace(service))

	return p.update(ctx, id, storage.UserUpdates{Service: &service})
}

func (p profile) SetBio(ctx context.Context, id domain.UserID, bio string) (*domain.User, error) {
	if err := validation.Var("bio", bio, "notblank,max=200"); err != nil {
		return nil, err
	}

	return p.update(ctx, id, storage.UserUpdates{Bio: &bio})
}

// Update applies personal details and leaves a "Profile Updated"
// notification when anything was given.
func (p profile) Update(ctx context.Context, id domain.UserID, update Update) (*domain.User, error) {
	updates := storage.UserUpdates{}

	if update.DOB != nil && *update.DOB != "" {
		dob, err := time.Parse(dobLayout, *update.DOB)
		if err != nil {
			return nil, invalid("Invalid date of birth format. Use DD/MM/YYYY")
		}
		formatted := dob.Format(time.DateOnly)
		updates.DOB = &formatted
	}
	if update.State != nil {
		if len(*update.State) > maxState {
			return nil, invalid("The state field must not be greater than %d characters.", maxState)
		}
		updates.State = update.State
	}
	if update.LGA != nil {
		if len(*update.LGA) > maxLocation {
			return nil, invalid("The lga field must not be greater than %d characters.", maxLocation)
		}
		updates.LGA = update.LGA
	}

	var user *domain.User
	if err := p.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		user, err = tx.UpdateUser(ctx, id, updates)
		if err != nil {
			return fmt.Errorf("could not update user: %w", err)
		}
		if user == nil {
			return serrors.With(serrors.ErrUnauthorized, "Bad request")
		}

		if updates == (storage.UserUpdates{}) {
			return nil
		}

		if _, err := tx.StoreNotification(ctx, notification.Build(id, domain.NotificationTypeProfile,
			"Profile Updated", "Your profile has been successfully updated.")); err != nil {
			return fmt.Errorf("could not store notification: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not update profile: %w", err)
	}

	return user, nil
}

// SetPicture stores a new profile picture and removes the previous one.
func (p profile) SetPicture(ctx context.Context, id domain.UserID, picture media.Upload) (*domain.User, error) {
	current, err := p.get(ctx, id)
	if err != nil {
		return nil, err
	}

	path, err := p.savePicture(ctx, id, picture)
	if err != nil {
		return nil, err
	}

	user, err := p.update(ctx, id, storage.UserUpdates{ProfilePic: &path})
	if err != nil {
		_ = p.media.Delete(ctx, path)

		return nil, err
	}

	if old := current.ProfilePic; old != "" && !strings.HasPrefix(old, "http") {
		if err := p.media.Delete(ctx, old); err != nil {
			logger.Warn(ctx, "could not delete old profile picture", zap.String("path", old), zap.Error(err))
		}
	}

	return user, nil
}

func (p profile) ToggleStatus(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := p.get(ctx, id)
	if err != nil {
		return nil, err
	}

	status := user.Status.Toggle()
	logger.Info(ctx, "online status changed", zap.String("status", string(status)))

	return p.update(ctx, id, storage.UserUpdates{Status: &status})
}

func (p profile) SetFCMToken(ctx context.Context, id domain.UserID, token string) (*domain.User, error) {
	if err := validation.Var("fcm token", token, "notblank"); err != nil {
		return nil, err
	}

	return p.update(ctx, id, storage.UserUpdates{FCMToken: &token})
}

func (p profile) TogglePushNotifications(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := p.get(ctx, id)
	if err != nil {
		return nil, err
	}
	enabled := !user.PushNotifications

	return p.update(ctx, id, storage.UserUpdates{PushNotifications: &enabled})
}

func (p profile) ToggleEmailNotifications(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := p.get(ctx, id)
	if err != nil {
		return nil, err
	}
	enabled := !user.EmailNotifications

	return p.update(ctx, id, storage.UserUpdates{EmailNotifications: &enabled})
}

func (p profile) savePicture(ctx context.Context, id domain.UserID, picture media.Upload) (string, error) {
	path, err := p.media.Save(ctx, pictureDir, picture, media.SaveOptions{
		Prefix:       "profile_" + id.String(),
		MaxDimension: p.options.MaxDimension,
		JPEGQuality:  p.options.JPEGQuality,
		MaxBytes:     p.options.MaxBytes,
		Accept:       PictureTypes,
	})
	if err != nil {
		return "", fmt.Errorf("could not save profile picture: %w", err)
	}

	return path, nil
}

func (p profile) get(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := p.storage.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrUnauthorized, "Bad request")
	}

	return user, nil
}

func (p profile) update(ctx context.Context, id domain.UserID, updates storage.UserUpdates) (*domain.User, error) {
	user, err := p.storage.UpdateUser(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("could not update user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrUnauthorized, "Bad request")
	}

	return user, nil
}
