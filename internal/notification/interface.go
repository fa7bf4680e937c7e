package notification

import (
	"artisan/pkg/domain"
	"artisan/pkg/storage"
	"context"
)

// SendRequest is a notification one user addresses to another.
type SendRequest struct {
	ReceiverID string `validate:"notblank" label:"receiver_id"`
	Title      string `validate:"notblank"`
	Message    string `validate:"notblank"`
	Type       string `validate:"notblank"`
	Link       string
	Img        string
}

// Settings are the delivery preferences of a user.
type Settings struct {
	Push  bool
	Email bool
}

//go:generate mockgen -package mocknotification -source=interface.go -destination=mock/mocknotification.go *
type Notifier interface {
	List(ctx context.Context, filter storage.NotificationFilter) (storage.NotificationPage, error)
	MarkRead(ctx context.Context, userID domain.UserID, id string) (*domain.Notification, error)
	Send(ctx context.Context, req SendRequest) (*domain.Notification, error)
	Settings(ctx context.Context, userID domain.UserID) (Settings, error)
}
