package notification

import (
	"artisan/pkg/domain"
	"math/rand/v2"
)

const (
	letters   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	refLength = 15
)

// RandomLetters returns n distinct upper-case letters in random order. n is
// capped at the size of the alphabet.
func RandomLetters(n int) string {
	n = min(n, len(letters))
	perm := rand.Perm(len(letters))
	out := make([]byte, n)
	for i := range out {
		out[i] = letters[perm[i]]
	}

	return string(out)
}

// NewRef returns a fresh public notification reference.
func NewRef() string { return RandomLetters(refLength) }

// Build builds an unread notification for userID with a fresh reference.
func Build(userID domain.UserID, typ, title, message string) domain.Notification {
	return domain.Notification{
		UserID: userID,
		Type:   typ,
		Title:  title,
		Body:   message,
		Status: domain.NotificationUnread,
		Ref:    NewRef(),
	}
}
