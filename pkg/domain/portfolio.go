package domain

import (
	"time"

	"github.com/google/uuid"
)

// PortfolioID is the storage identifier of a portfolio project.
type PortfolioID uuid.UUID

// MaxPortfolioImages is the number of images a single project may hold.
const MaxPortfolioImages = 5

// Portfolio is a project an artisan shows to prospective clients.
type Portfolio struct {
	ID PortfolioID `json:"-"`
	// Code is the public identifier clients use to address the project.
	Code   string `json:"portfolio_id"`
	UserID UserID `json:"user_id"`

	Title       string `json:"title"`
	Role        string `json:"role"`
	Description string `json:"project_description"`
	Background  string `json:"portfolio_bg"`
	// Images are storage-relative paths of the resized project images.
	Images []string `json:"project_images"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
