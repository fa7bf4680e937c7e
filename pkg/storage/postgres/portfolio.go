package postgres

import (
	"artisan/pkg/domain"
	"artisan/pkg/storage"
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	portfolioTable = "portfolio_project"
)

func (p *PgSQL) StorePortfolio(ctx context.Context, portfolio domain.Portfolio) (*domain.Portfolio, error) {
	var row PgPortfolio
	row.FromDomain(portfolio)

	var stored PgPortfolio
	if _, err := p.Builder.Insert(portfolioTable).
		Rows(row).
		Returning(&PgPortfolio{}).
		Executor().ScanStructContext(ctx, &stored); err != nil {
		if conflict := asConflict(err); conflict != nil {
			return nil, fmt.Errorf("could not store portfolio: %w", conflict)
		}

		return nil, fmt.Errorf("could not store portfolio into pg: %w", err)
	}

	return stored.ToDomain(), nil
}

func (p *PgSQL) PortfolioByCode(ctx context.Context, code string) (*domain.Portfolio, error) {
	var row PgPortfolio
	found, err := p.Builder.From(portfolioTable).
		Where(goqu.I("portfolio_id").Eq(code)).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch portfolio by code: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) UserPortfolios(ctx context.Context, userID domain.UserID) ([]domain.Portfolio, error) {
	byUser, err := p.portfoliosByUsers(ctx, []domain.UserID{userID})
	if err != nil {
		return nil, err
	}
	if items, ok := byUser[userID]; ok {
		return items, nil
	}

	return []domain.Portfolio{}, nil
}

func (p *PgSQL) portfoliosByUsers(ctx context.Context, ids []domain.UserID) (map[domain.UserID][]domain.Portfolio, error) {
	var rows []PgPortfolio
	if err := p.Builder.From(portfolioTable).
		Where(goqu.I("user_id").In(uuids(ids)...)).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch portfolios from pg: %w", err)
	}

	out := make(map[domain.UserID][]domain.Portfolio, len(ids))
	for i := range rows {
		item := rows[i].ToDomain()
		out[item.UserID] = append(out[item.UserID], *item)
	}

	return out, nil
}

// UpdatePortfolio applies only non-nil fields from updates and refreshes updated_at.
func (p *PgSQL) UpdatePortfolio(ctx context.Context,
	id domain.PortfolioID,
	updates storage.PortfolioUpdates) (*domain.Portfolio, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
	}
	if updates.Title != nil {
		rec["title"] = *updates.Title
	}
	if updates.Role != nil {
		rec["role"] = *updates.Role
	}
	if updates.Description != nil {
		rec["description"] = *updates.Description
	}
	if updates.Images != nil {
		rec["images"] = pq.StringArray(updates.Images)
	}

	var row PgPortfolio
	found, err := p.Builder.Update(portfolioTable).
		Set(rec).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgPortfolio{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update portfolio in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) DeletePortfolio(ctx context.Context, id domain.PortfolioID) (*domain.Portfolio, error) {
	var row PgPortfolio
	found, err := p.Builder.Delete(portfolioTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgPortfolio{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete portfolio in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}
