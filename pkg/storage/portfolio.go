package storage

import (
	"artisan/pkg/domain"
	"context"
)

// PortfolioUpdates describes optional changes to a portfolio project. A nil
// Images leaves the stored images untouched.
type PortfolioUpdates struct {
	Title       *string
	Role        *string
	Description *string
	Images      []string
}

// PortfolioStorage persists artisan portfolio projects.
type PortfolioStorage interface {
	// StorePortfolio inserts a project and returns the stored row.
	StorePortfolio(ctx context.Context, portfolio domain.Portfolio) (*domain.Portfolio, error)
	// PortfolioByCode fetches a project by its public code.
	PortfolioByCode(ctx context.Context, code string) (*domain.Portfolio, error)
	// UserPortfolios lists the projects of a user, oldest first.
	UserPortfolios(ctx context.Context, userID domain.UserID) ([]domain.Portfolio, error)
	// UpdatePortfolio applies updates and returns the updated row.
	UpdatePortfolio(ctx context.Context, id domain.PortfolioID, updates PortfolioUpdates) (*domain.Portfolio, error)
	// DeletePortfolio removes a project and returns the deleted row.
	DeletePortfolio(ctx context.Context, id domain.PortfolioID) (*domain.Portfolio, error)
}
