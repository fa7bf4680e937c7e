package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationID uniquely identifies a notification.
type NotificationID uuid.UUID

// String returns the canonical textual form of the ID.
func (id NotificationID) String() string { return uuid.UUID(id).String() }

// ParseNotificationID parses the textual form of a NotificationID.
func ParseNotificationID(s string) (NotificationID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NotificationID{}, err //nolint: wrapcheck
	}

	return NotificationID(id), nil
}

// NotificationStatus tracks whether the user has seen a notification.
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

// Well-known notification types.
const (
	NotificationTypeWelcome  = "welcome"
	NotificationTypeSecurity = "security"
	NotificationTypeProfile  = "profile"
)

// Notification is an in-app message addressed to a single user.
type Notification struct {
	ID     NotificationID     `json:"id"`
	UserID UserID             `json:"user_id"`
	Type   string             `json:"type"`
	Title  string             `json:"title"`
	Body   string             `json:"message"`
	Status NotificationStatus `json:"status"`
	Link   string             `json:"link"`
	Img    string             `json:"img"`
	// Ref is a random public reference of the notification.
	Ref string `json:"ref"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsRead reports whether the notification was marked as read.
func (n Notification) IsRead() bool { return n.Status == NotificationRead }
