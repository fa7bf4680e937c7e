package chat

import (
	"artisan/pkg/domain"
	"context"
	"time"
)

// Summary is one inbox entry as shown to its owner.
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Message     string `json:"message"`
	Time        string `json:"time"`
	Avatar      string `json:"avatar"`
	UnreadCount int    `json:"unreadCount"`
	IsOnline    bool   `json:"isOnline"`
	OtherUserID string `json:"other_user_id"`
}

// MessageView is a chat message relative to the reader.
type MessageView struct {
	ID            string    `json:"id"`
	ChatID        string    `json:"chatId"`
	Text          string    `json:"text"`
	Type          string    `json:"messageType"`
	SenderID      string    `json:"senderId"`
	SenderName    string    `json:"senderName"`
	SenderAvatar  string    `json:"senderAvatar"`
	Timestamp     time.Time `json:"timestamp"`
	IsCurrentUser bool      `json:"isCurrentUser"`
	IsRead        bool      `json:"isRead"`
}

// Pagination describes a page of messages.
type Pagination struct {
	CurrentPage uint  `json:"current_page"`
	LastPage    uint  `json:"last_page"`
	Total       int64 `json:"total"`
	HasMore     bool  `json:"has_more"`
}

// Status is the presence of a user.
type Status struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	IsOnline bool       `json:"isOnline"`
	LastSeen *time.Time `json:"lastSeen"`
	Avatar   string     `json:"avatar"`
}

// SendRequest is a message from the caller to ReceiverID.
type SendRequest struct {
	ReceiverID string `validate:"notblank"`
	Message    string `validate:"notblank,max=5000"`
	// Type defaults to text.
	Type string `validate:"omitempty,oneof=text image file audio" label:"message type"`
}

//go:generate mockgen -package mockchat -source=interface.go -destination=mock/mockchat.go *
type Chat interface {
	List(ctx context.Context, me domain.UserID) ([]Summary, error)
	Search(ctx context.Context, me domain.UserID, query string) ([]Summary, error)
	Messages(ctx context.Context, me domain.UserID, chatID string, page, limit uint) ([]MessageView, Pagination, error)
	Send(ctx context.Context, me domain.UserID, req SendRequest) (*MessageView, error)
	UserStatus(ctx context.Context, userID string) (*Status, error)
	SetPresence(ctx context.Context, me domain.UserID, online bool) error
}
