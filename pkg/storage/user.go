package storage

import (
	"artisan/pkg/domain"
	"context"
	"time"
)

// ProviderFilter narrows the set of artisans returned by Providers. Zero
// fields do not filter.
type ProviderFilter struct {
	// ID restricts the result to a single provider.
	ID *domain.UserID
	// Category matches the service category case-insensitively.
	Category string
	// VerifiedOnly keeps providers whose BVN and email are both verified.
	VerifiedOnly bool
	// Term is a free-text search over name, username, service and location
	// fields. Matching is case-insensitive and partial.
	Term string
	// ExcludeID drops the requester from the candidate set.
	ExcludeID *domain.UserID
}

// UserUpdates describes a set of optional fields to change on a user. Only
// non-nil fields are written; updated_at is always refreshed.
type UserUpdates struct {
	Fullname          *string
	AccountType       *domain.AccountType
	Service           *string
	Bio               *string
	State             *string
	LGA               *string
	DOB               *string
	YearsOfExperience *string
	Status            *domain.OnlineStatus
	ProfilePic        *string

	PhoneVerified      *bool
	PushNotifications  *bool
	EmailNotifications *bool
	FCMToken           *string

	IsOnline   *bool
	LastSeenAt *time.Time

	PasswordHash      *string
	PasswordChangedAt *time.Time
	// OTPHash set to an empty string clears the stored OTP and its timestamp.
	OTPHash      *string
	OTPCreatedAt *time.Time
}

// UserStorage persists accounts and answers provider discovery queries.
type UserStorage interface {
	// StoreUser inserts a new user and returns the stored row. A duplicate
	// phone number or email yields ErrConflict.
	StoreUser(ctx context.Context, user domain.User) (*domain.User, error)
	// UserByID fetches a user by ID.
	UserByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	// UserByPhone fetches a user by phone number.
	UserByPhone(ctx context.Context, phone string) (*domain.User, error)
	// UsersByIDs fetches many users at once keyed by ID. Unknown IDs are absent
	// from the result.
	UsersByIDs(ctx context.Context, ids ...domain.UserID) (map[domain.UserID]domain.User, error)
	// UpdateUser applies updates to the user and returns the updated row.
	UpdateUser(ctx context.Context, id domain.UserID, updates UserUpdates) (*domain.User, error)
	// Providers returns artisans matching filter together with their portfolio
	// entries ordered by creation time. The result order is unspecified.
	Providers(ctx context.Context, filter ProviderFilter) ([]domain.Provider, error)
}
