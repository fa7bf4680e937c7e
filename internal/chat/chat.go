// Package chat implements one-to-one messaging between users.
package chat

import (
	"artisan/pkg/broadcast"
	"artisan/pkg/domain"
	"artisan/pkg/logger"
	"artisan/pkg/media"
	"artisan/pkg/serrors"
	"artisan/pkg/storage"
	"artisan/pkg/validation"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
	noMessages   = "No messages yet"
	never        = "Never"
	avatarURL    = "https://i.pravatar.cc/150?u="
)

// Options configures the chat service.
type Options struct {
	// Resolver resolves stored avatar paths.
	Resolver media.Resolver
	// Now defaults to time.Now.
	Now func() time.Time
}

type chat struct {
	options   Options
	storage   storage.Storage
	publisher broadcast.Publisher
}

func New(storage storage.Storage, publisher broadcast.Publisher, options Options) Chat {
	if options.Now == nil {
		options.Now = time.Now
	}
	if publisher == nil {
		publisher = broadcast.Noop{}
	}

	return &chat{options: options, storage: storage, publisher: publisher}
}

func (c chat) List(ctx context.Context, me domain.UserID) ([]Summary, error) {
	chats, err := c.storage.UserChats(ctx, me)
	if err != nil {
		return nil, fmt.Errorf("could not list chats: %w", err)
	}

	now := c.options.Now()
	out := make([]Summary, 0, len(chats))
	for _, s := range chats {
		out = append(out, c.summary(s, now))
	}

	return out, nil
}

// Search filters the inbox by the other user's name or the last message.
// An empty query returns the whole inbox.
func (c chat) Search(ctx context.Context, me domain.UserID, query string) ([]Summary, error) {
	all, err := c.List(ctx, me)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all, nil
	}

	return slices.DeleteFunc(all, func(s Summary) bool {
		return !strings.Contains(strings.ToLower(s.Name), query) &&
			!strings.Contains(strings.ToLower(s.Message), query)
	}), nil
}

// Messages returns a page of the chat oldest first and marks the messages
// sent by the other participant as read.
func (c chat) Messages(ctx context.Context, me domain.UserID, chatID string, page, limit uint) ([]MessageView, Pagination, error) {
	current, err := c.participantChat(ctx, me, chatID)
	if err != nil {
		return nil, Pagination{}, err
	}

	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	messages, total, err := c.storage.ChatMessages(ctx, current.ID, page, limit)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("could not fetch messages: %w", err)
	}

	users, err := c.storage.UsersByIDs(ctx, current.User1, current.User2)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("could not fetch participants: %w", err)
	}

	views := make([]MessageView, 0, len(messages))
	for _, m := range slices.Backward(messages) {
		views = append(views, c.message(m, users[m.SenderID], me))
	}

	read, err := c.storage.MarkMessagesRead(ctx, current.ID, me)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("could not mark messages read: %w", err)
	}
	logger.Debug(ctx, "messages read", zap.String("chatID", chatID), zap.Int64("count", read))

	lastPage := max(1, uint((total+int64(limit)-1)/int64(limit)))

	return views, Pagination{
		CurrentPage: page,
		LastPage:    lastPage,
		Total:       total,
		HasMore:     page < lastPage,
	}, nil
}

// Send stores a message, creating the chat on first contact, and announces it
// to the broadcaster. Broadcast failures are logged only.
func (c chat) Send(ctx context.Context, me domain.UserID, req SendRequest) (*MessageView, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	typ := domain.MessageType(req.Type)
	if typ == "" {
		typ = domain.MessageTypeText
	}

	receiverID, err := domain.ParseUserID(req.ReceiverID)
	if err != nil {
		return nil, serrors.With(serrors.ErrNotFound, "Receiver not found")
	}
	if receiverID == me {
		return nil, serrors.With(serrors.ErrBadRequest, "You cannot send a message to yourself")
	}

	var (
		sender  *domain.User
		message *domain.Message
	)
	if err := c.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		users, err := tx.UsersByIDs(ctx, me, receiverID)
		if err != nil {
			return fmt.Errorf("could not fetch participants: %w", err)
		}
		if _, ok := users[receiverID]; !ok {
			return serrors.With(serrors.ErrNotFound, "Receiver not found")
		}
		if u, ok := users[me]; ok {
			sender = &u
		}

		current, err := tx.StoreChat(ctx, me, receiverID)
		if err != nil {
			return fmt.Errorf("could not store chat: %w", err)
		}

		message, err = tx.StoreMessage(ctx, domain.Message{
			ChatID:   current.ID,
			SenderID: me,
			Content:  req.Message,
			Type:     typ,
		})
		if err != nil {
			return fmt.Errorf("could not store message: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not send message: %w", err)
	}

	if err := c.publisher.Publish(ctx, broadcast.Event{
		ChatID:     message.ChatID.String(),
		MessageID:  message.ID.String(),
		SenderID:   me.String(),
		ReceiverID: receiverID.String(),
		Content:    message.Content,
		Type:       string(message.Type),
		CreatedAt:  message.CreatedAt,
	}); err != nil {
		logger.Warn(ctx, "could not broadcast message", zap.Error(err))
	}

	var from domain.User
	if sender != nil {
		from = *sender
	}
	view := c.message(*message, from, me)

	return &view, nil
}

func (c chat) UserStatus(ctx context.Context, userID string) (*Status, error) {
	id, err := domain.ParseUserID(userID)
	if err != nil {
		return nil, serrors.With(serrors.ErrNotFound, "User not found")
	}

	user, err := c.storage.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrNotFound, "User not found")
	}

	status := &Status{
		ID:       user.ID.String(),
		Name:     user.DisplayName(),
		IsOnline: user.IsOnline,
		Avatar:   c.avatar(*user),
	}
	if !user.LastSeenAt.IsZero() {
		lastSeen := user.LastSeenAt
		status.LastSeen = &lastSeen
	}

	return status, nil
}

func (c chat) SetPresence(ctx context.Context, me domain.UserID, online bool) error {
	now := c.options.Now()

	user, err := c.storage.UpdateUser(ctx, me, storage.UserUpdates{IsOnline: &online, LastSeenAt: &now})
	if err != nil {
		return fmt.Errorf("could not update presence: %w", err)
	}
	if user == nil {
		return serrors.With(serrors.ErrUnauthorized, "Bad request")
	}

	return nil
}

func (c chat) participantChat(ctx context.Context, me domain.UserID, chatID string) (*domain.Chat, error) {
	denied := serrors.With(serrors.ErrNotFound, "Chat not found or access denied")

	id, err := domain.ParseChatID(chatID)
	if err != nil {
		return nil, denied
	}

	current, err := c.storage.ChatByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not fetch chat: %w", err)
	}
	if current == nil || !current.Has(me) {
		return nil, denied
	}

	return current, nil
}

func (c chat) summary(s domain.ChatSummary, now time.Time) Summary {
	out := Summary{
		ID:          s.Chat.ID.String(),
		Name:        s.Other.DisplayName(),
		Message:     noMessages,
		Time:        never,
		Avatar:      c.avatar(s.Other),
		UnreadCount: s.Unread,
		IsOnline:    s.Other.IsOnline,
		OtherUserID: s.Other.ID.String(),
	}
	if s.LastMessage != nil {
		out.Message = s.LastMessage.Content
		out.Time = humanize.RelTime(s.LastMessage.CreatedAt, now, "ago", "from now")
	}

	return out
}

func (c chat) message(m domain.Message, sender domain.User, me domain.UserID) MessageView {
	if sender.ID != m.SenderID {
		sender = domain.User{ID: m.SenderID}
	}

	return MessageView{
		ID:            m.ID.String(),
		ChatID:        m.ChatID.String(),
		Text:          m.Content,
		Type:          string(m.Type),
		SenderID:      m.SenderID.String(),
		SenderName:    sender.DisplayName(),
		SenderAvatar:  c.avatar(sender),
		Timestamp:     m.CreatedAt,
		IsCurrentUser: m.SenderID == me,
		IsRead:        m.IsRead,
	}
}

// avatar prefers the chat avatar, then the profile picture, then a generated
// placeholder.
func (c chat) avatar(u domain.User) string {
	for _, p := range []string{u.AvatarURL, u.ProfilePic} {
		if url := c.options.Resolver.URL(p); url != "" {
			return url
		}
	}

	return avatarURL + u.ID.String()
}
