package portfolio

import (
	"artisan/pkg/domain"
	"artisan/pkg/media"
	"context"
)

// CreateRequest describes a new portfolio project.
type CreateRequest struct {
	Title       string `validate:"notblank,max=50"`
	Role        string `validate:"notblank,max=50"`
	Description string `validate:"notblank,max=200"`
	Gallery     []media.Upload
}

// UpdateRequest replaces the details of a project owned by the caller.
type UpdateRequest struct {
	Code        string `validate:"notblank" label:"portfolio id"`
	Title       string `validate:"notblank,max=50"`
	Role        string `validate:"notblank,max=50"`
	Description string `validate:"notblank,max=200"`
	// ExistingImages lists the current images to keep, as stored paths or
	// public URLs. Nil keeps every image not named in ImagesToDelete.
	ExistingImages []string
	ImagesToDelete []string
	Gallery        []media.Upload
}

//go:generate mockgen -package mockportfolio -source=interface.go -destination=mock/mockportfolio.go *
type Portfolio interface {
	Create(ctx context.Context, userID domain.UserID, req CreateRequest) (*domain.Portfolio, error)
	Update(ctx context.Context, userID domain.UserID, req UpdateRequest) (*domain.Portfolio, error)
	Delete(ctx context.Context, userID domain.UserID, code string) error
}
