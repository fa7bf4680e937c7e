package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID uniquely identifies a user within the system.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// String returns the canonical textual form of the ID.
func (id UserID) String() string { return uuid.UUID(id).String() }

// ParseUserID parses the textual form of a UserID.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, err //nolint: wrapcheck
	}

	return UserID(id), nil
}

// AccountType distinguishes customers from service providers.
type AccountType string

const (
	// AccountTypeClient is a customer looking for services.
	AccountTypeClient AccountType = "client"
	// AccountTypeArtisan is a service provider listed by discovery endpoints.
	AccountTypeArtisan AccountType = "artisan"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	return t == AccountTypeClient || t == AccountTypeArtisan
}

// OnlineStatus is the availability a provider advertises to clients.
type OnlineStatus string

const (
	// StatusAvailable means the provider accepts new jobs.
	StatusAvailable OnlineStatus = "Available"
	// StatusOffline means the provider is not accepting jobs.
	StatusOffline OnlineStatus = "Offline"
)

// Toggle flips between Available and Offline.
func (s OnlineStatus) Toggle() OnlineStatus {
	if s == StatusAvailable {
		return StatusOffline
	}

	return StatusAvailable
}

// User is an account of the marketplace. Artisans and clients share the same
// record; AccountType tells them apart.
//
// Credential material (password, OTP, PIN, device identifier) is carried in
// fields tagged `json:"-"` so it never leaves the process through JSON.
type User struct {
	ID UserID `json:"id"`

	Username    string      `json:"username"`
	Fullname    string      `json:"fullname"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phone_number"`
	AccountType AccountType `json:"account_type"`

	// Service is the lower-cased category an artisan offers, e.g. "plumber".
	Service           string       `json:"service"`
	Bio               string       `json:"bio"`
	Location          string       `json:"location"`
	State             string       `json:"state"`
	LGA               string       `json:"lga"`
	DOB               string       `json:"dob"`
	YearsOfExperience string       `json:"years_of_experience"`
	Rating            float64      `json:"rating"`
	Status            OnlineStatus `json:"status"`
	Tier              int          `json:"tier"`
	PromoCode         string       `json:"promo_code"`
	ProfilePic        string       `json:"profile_pic"`
	AvatarURL         string       `json:"avatar_url"`

	BVNVerified   bool `json:"bvn_v_status"`
	EmailVerified bool `json:"email_v_status"`
	PhoneVerified bool `json:"phone_v_status"`

	PushNotifications  bool   `json:"push_notification"`
	EmailNotifications bool   `json:"email_notification"`
	FCMToken           string `json:"-"`

	IsOnline   bool      `json:"is_online"`
	LastSeenAt time.Time `json:"last_seen_at"`

	PasswordHash      string    `json:"-"`
	PasswordChangedAt time.Time `json:"-"`
	OTPHash           string    `json:"-"`
	OTPCreatedAt      time.Time `json:"-"`
	DeviceID          string    `json:"-"`
	PINHash           string    `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Locality is the fine-grained location (local government area).
func (u User) Locality() string { return u.LGA }

// Region is the coarse-grained location (state).
func (u User) Region() string { return u.State }

// Verified reports whether every required verification flag is set.
func (u User) Verified() bool { return u.BVNVerified && u.EmailVerified }

// DisplayName returns the best human readable name of the user.
func (u User) DisplayName() string {
	switch {
	case u.Fullname != "":
		return u.Fullname
	case u.Username != "":
		return u.Username
	default:
		return "Unknown"
	}
}

// Provider is an artisan together with its portfolio, as consumed by ranking.
type Provider struct {
	User

	// Portfolio holds the provider's projects ordered by creation time.
	Portfolio []Portfolio
}
