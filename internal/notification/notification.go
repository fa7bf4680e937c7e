// Package notification lists, sends and acknowledges in-app notifications.
package notification

import (
	"artisan/internal/delivery"
	"artisan/pkg/domain"
	"artisan/pkg/logger"
	"artisan/pkg/serrors"
	"artisan/pkg/storage"
	"artisan/pkg/validation"
	"context"
	"fmt"

	"go.uber.org/zap"
)

const (
	// DefaultPerPage is used when the client does not ask for a page size.
	DefaultPerPage = 20
	// MaxPerPage caps the page size.
	MaxPerPage = 50
	maxTypeLen = 50
)

type Options struct {
	Delivery delivery.Options
}

type notifier struct {
	options Options
	storage storage.Storage
}

func New(storage storage.Storage, options Options) Notifier {
	return &notifier{options: options, storage: storage}
}

// List returns a page of the user's notifications, newest first. Page
// defaults to 1 and PerPage to DefaultPerPage, capped at MaxPerPage.
func (n notifier) List(ctx context.Context, filter storage.NotificationFilter) (storage.NotificationPage, error) {
	switch filter.Status {
	case "", domain.NotificationRead, domain.NotificationUnread:
	default:
		return storage.NotificationPage{}, serrors.With(serrors.ErrUnprocessable, "status must be read or unread")
	}
	if len(filter.Type) > maxTypeLen {
		return storage.NotificationPage{}, serrors.With(serrors.ErrUnprocessable, "type must not exceed %d characters", maxTypeLen)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PerPage == 0 {
		filter.PerPage = DefaultPerPage
	}
	filter.PerPage = min(filter.PerPage, MaxPerPage)

	page, err := n.storage.UserNotifications(ctx, filter)
	if err != nil {
		return storage.NotificationPage{}, fmt.Errorf("could not get notifications: %w", err)
	}

	return page, nil
}

func (n notifier) MarkRead(ctx context.Context, userID domain.UserID, id string) (*domain.Notification, error) {
	parsed, err := domain.ParseNotificationID(id)
	if err != nil {
		return nil, serrors.With(serrors.ErrNotFound, "Notification not found")
	}

	res, err := n.storage.MarkNotificationRead(ctx, userID, parsed)
	if err != nil {
		return nil, fmt.Errorf("could not mark notification as read: %w", err)
	}
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "Notification not found")
	}

	return res, nil
}

// Send stores a notification for the receiver and, when the receiver opted
// into e-mails, queues a copy to their mailbox in the same transaction.
func (n notifier) Send(ctx context.Context, req SendRequest) (*domain.Notification, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	receiverID, err := domain.ParseUserID(req.ReceiverID)
	if err != nil {
		return nil, serrors.With(serrors.ErrNotFound, "Receiver not found")
	}

	var stored *domain.Notification
	if err := n.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		receiver, err := tx.UserByID(ctx, receiverID)
		if err != nil {
			return fmt.Errorf("could not get receiver: %w", err)
		}
		if receiver == nil {
			return serrors.With(serrors.ErrNotFound, "Receiver not found")
		}

		item := Build(receiverID, req.Type, req.Title, req.Message)
		item.Link = req.Link
		item.Img = req.Img
		stored, err = tx.StoreNotification(ctx, item)
		if err != nil {
			return fmt.Errorf("could not store notification: %w", err)
		}

		if !receiver.EmailNotifications || receiver.Email == "" {
			return nil
		}
		if _, err := tx.AddJob(ctx, delivery.NewMailArgs(n.options.Delivery,
			receiver.Email, req.Title, receiver.DisplayName(), req.Message), nil); err != nil {
			return fmt.Errorf("could not add mail job: %w", err)
		}
		logger.Debug(ctx, "notification mail queued", zap.String("receiverID", receiverID.String()))

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not send notification: %w", err)
	}

	return stored, nil
}

func (n notifier) Settings(ctx context.Context, userID domain.UserID) (Settings, error) {
	user, err := n.storage.UserByID(ctx, userID)
	if err != nil {
		return Settings{}, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return Settings{}, serrors.With(serrors.ErrNotFound, "User not found")
	}

	return Settings{Push: user.PushNotifications, Email: user.EmailNotifications}, nil
}
