package domain

import "github.com/google/uuid"

// The ID types encode as their canonical UUID text in JSON and job args.

func (id UserID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id ChatID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *ChatID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id MessageID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *MessageID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id NotificationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *NotificationID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id PortfolioID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *PortfolioID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
