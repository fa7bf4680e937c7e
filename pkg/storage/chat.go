package storage

import (
	"artisan/pkg/domain"
	"context"
)

// ChatStorage persists one-to-one chats and their messages.
type ChatStorage interface {
	// ChatBetween returns the chat of two users in either order.
	ChatBetween(ctx context.Context, a, b domain.UserID) (*domain.Chat, error)
	// StoreChat creates the chat of two users, or returns the existing one.
	StoreChat(ctx context.Context, a, b domain.UserID) (*domain.Chat, error)
	// ChatByID fetches a chat by ID.
	ChatByID(ctx context.Context, id domain.ChatID) (*domain.Chat, error)
	// UserChats lists the inbox of a user, most recent activity first.
	UserChats(ctx context.Context, userID domain.UserID) ([]domain.ChatSummary, error)
	// StoreMessage inserts a message and makes it the last message of its chat.
	StoreMessage(ctx context.Context, message domain.Message) (*domain.Message, error)
	// ChatMessages returns a page of messages newest first and the total
	// message count of the chat. Page is 1-based.
	ChatMessages(ctx context.Context, chatID domain.ChatID, page, limit uint) ([]domain.Message, int64, error)
	// MarkMessagesRead marks every message of the chat not sent by readerID as
	// read and returns how many changed.
	MarkMessagesRead(ctx context.Context, chatID domain.ChatID, readerID domain.UserID) (int64, error)
}
