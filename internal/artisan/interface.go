package artisan

import (
	"artisan/internal/ranking"
	"artisan/pkg/domain"
	"context"
)

//go:generate mockgen -package mockartisan -source=interface.go -destination=mock/mockartisan.go *
type Discovery interface {
	// All lists every provider except the requester.
	All(ctx context.Context, requester domain.UserID) ([]ranking.ClientView, error)
	// ByCategory lists providers offering service, matched case-insensitively.
	ByCategory(ctx context.Context, requester domain.UserID, service string) ([]ranking.ClientView, error)
	// Verified lists providers whose verification flags are all set.
	Verified(ctx context.Context, requester domain.UserID) ([]ranking.ClientView, error)
	// Profile returns a single provider.
	Profile(ctx context.Context, requester domain.UserID, profileID string) (*ranking.ClientView, error)
	// Search matches term against names, service and location.
	Search(ctx context.Context, requester domain.UserID, term string) ([]ranking.ClientView, error)
}
