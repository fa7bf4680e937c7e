// Package broadcast fans chat messages out to real-time consumers such as
// websocket gateways and push notification services.
//
//go:generate mockgen -package mockbroadcast -source=broadcast.go -destination=mock/mockbroadcast.go *
package broadcast

import (
	"context"
	"time"

	"github.com/go-faster/jx"
)

// Event announces a new chat message.
type Event struct {
	ChatID     string
	MessageID  string
	SenderID   string
	ReceiverID string
	Content    string
	Type       string
	CreatedAt  time.Time
}

// Encode writes the event as a JSON object.
func (e Event) Encode(enc *jx.Encoder) {
	enc.Obj(func(enc *jx.Encoder) {
		enc.Field("chat_id", func(enc *jx.Encoder) { enc.Str(e.ChatID) })
		enc.Field("message_id", func(enc *jx.Encoder) { enc.Str(e.MessageID) })
		enc.Field("sender_id", func(enc *jx.Encoder) { enc.Str(e.SenderID) })
		enc.Field("receiver_id", func(enc *jx.Encoder) { enc.Str(e.ReceiverID) })
		enc.Field("message", func(enc *jx.Encoder) { enc.Str(e.Content) })
		enc.Field("message_type", func(enc *jx.Encoder) { enc.Str(e.Type) })
		enc.Field("created_at", func(enc *jx.Encoder) { enc.Str(e.CreatedAt.UTC().Format(time.RFC3339Nano)) })
	})
}

// Publisher delivers events to subscribers. Publishing is best effort; callers
// log failures instead of failing the originating request.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

var _ Publisher = Noop{}
