package storage

import (
	"artisan/pkg/domain"
	"context"
)

// NotificationFilter selects a page of a user's notifications.
type NotificationFilter struct {
	UserID domain.UserID
	// Status keeps only read or unread notifications when set.
	Status domain.NotificationStatus
	// Type keeps only notifications of the given type when set.
	Type string
	// Page is 1-based.
	Page    uint
	PerPage uint
}

// NotificationPage is a page of notifications, newest first.
type NotificationPage struct {
	Notifications []domain.Notification
	// Total counts every notification matching the filter.
	Total int64
	// Unread counts every unread notification of the user, regardless of the
	// filter.
	Unread int64
}

// NotificationStorage persists in-app notifications.
type NotificationStorage interface {
	// StoreNotification inserts a notification and returns the stored row.
	StoreNotification(ctx context.Context, notification domain.Notification) (*domain.Notification, error)
	// UserNotifications returns a page of the user's notifications.
	UserNotifications(ctx context.Context, filter NotificationFilter) (NotificationPage, error)
	// MarkNotificationRead marks a notification of the user as read and returns
	// it.
	MarkNotificationRead(ctx context.Context, userID domain.UserID, id domain.NotificationID) (*domain.Notification, error)
}
