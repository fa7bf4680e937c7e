package domain

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// ChatID uniquely identifies a conversation between two users.
type ChatID uuid.UUID

// String returns the canonical textual form of the ID.
func (id ChatID) String() string { return uuid.UUID(id).String() }

// ParseChatID parses the textual form of a ChatID.
func ParseChatID(s string) (ChatID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ChatID{}, err //nolint: wrapcheck
	}

	return ChatID(id), nil
}

// MessageID uniquely identifies a chat message.
type MessageID uuid.UUID

// String returns the canonical textual form of the ID.
func (id MessageID) String() string { return uuid.UUID(id).String() }

// MessageType is the kind of content a message carries.
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
	MessageTypeAudio MessageType = "audio"
)

// Chat is a one-to-one conversation. User1 and User2 are stored in a stable
// order (see OrderedPair) so a pair of users maps to exactly one chat.
type Chat struct {
	ID            ChatID
	User1         UserID
	User2         UserID
	LastMessageID *MessageID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Other returns the participant that is not me.
func (c Chat) Other(me UserID) UserID {
	if c.User1 == me {
		return c.User2
	}

	return c.User1
}

// Has reports whether the user takes part in the chat.
func (c Chat) Has(id UserID) bool { return c.User1 == id || c.User2 == id }

// OrderedPair returns a and b sorted by their byte representation.
func OrderedPair(a, b UserID) (UserID, UserID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}

	return a, b
}

// Message is a single entry of a chat.
type Message struct {
	ID        MessageID
	ChatID    ChatID
	SenderID  UserID
	Content   string
	IsRead    bool
	Type      MessageType
	CreatedAt time.Time
}

// ChatSummary is a chat as listed in the inbox of one participant.
type ChatSummary struct {
	Chat Chat
	// Other is the participant that is not the inbox owner.
	Other User
	// LastMessage is nil when the chat has no messages yet.
	LastMessage *Message
	// Unread counts messages from Other not yet read by the inbox owner.
	Unread int
}
