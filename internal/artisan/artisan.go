// Package artisan answers provider discovery queries. Candidates are fetched
// from storage, ordered by location affinity to the requester and projected
// into client views.
package artisan

import (
	"artisan/internal/ranking"
	"artisan/pkg/domain"
	"artisan/pkg/logger"
	"artisan/pkg/serrors"
	"artisan/pkg/storage"
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "artisan/internal/artisan"

type discovery struct {
	storage   storage.UserStorage
	projector ranking.Projector
	tracer    trace.Tracer
}

func New(storage storage.UserStorage, projector ranking.Projector) Discovery {
	return &discovery{storage: storage, projector: projector, tracer: otel.Tracer(tracerName)}
}

func (d discovery) All(ctx context.Context, requester domain.UserID) ([]ranking.ClientView, error) {
	return d.list(ctx, "artisan.All", requester, storage.ProviderFilter{})
}

func (d discovery) ByCategory(ctx context.Context, requester domain.UserID, service string) ([]ranking.ClientView, error) {
	service = strings.TrimSpace(service)
	if service == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "Service parameter is required")
	}

	return d.list(ctx, "artisan.ByCategory", requester, storage.ProviderFilter{Category: service})
}

func (d discovery) Verified(ctx context.Context, requester domain.UserID) ([]ranking.ClientView, error) {
	return d.list(ctx, "artisan.Verified", requester, storage.ProviderFilter{VerifiedOnly: true})
}

func (d discovery) Search(ctx context.Context, requester domain.UserID, term string) ([]ranking.ClientView, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "Search term is required")
	}

	return d.list(ctx, "artisan.Search", requester, storage.ProviderFilter{Term: term})
}

// Profile never returns the requester's own record.
func (d discovery) Profile(ctx context.Context, requester domain.UserID, profileID string) (*ranking.ClientView, error) {
	ctx, span := d.tracer.Start(ctx, "artisan.Profile")
	defer span.End()

	id, err := domain.ParseUserID(profileID)
	if err != nil || id == requester {
		return nil, serrors.With(serrors.ErrNotFound, "Artisan not found")
	}

	providers, err := d.storage.Providers(ctx, storage.ProviderFilter{ID: &id, ExcludeID: &requester})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return nil, fmt.Errorf("could not fetch artisan: %w", err)
	}
	if len(providers) == 0 {
		return nil, serrors.With(serrors.ErrNotFound, "Artisan not found")
	}

	view := d.projector.Project(providers[0])

	return &view, nil
}

func (d discovery) list(ctx context.Context, name string, requester domain.UserID, filter storage.ProviderFilter) ([]ranking.ClientView, error) {
	ctx, span := d.tracer.Start(ctx, name)
	defer span.End()

	me, err := d.storage.UserByID(ctx, requester)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return nil, fmt.Errorf("could not fetch requester: %w", err)
	}
	if me == nil {
		return nil, serrors.With(serrors.ErrUnauthorized, "Unauthenticated")
	}

	filter.ExcludeID = &requester
	candidates, err := d.storage.Providers(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return nil, fmt.Errorf("could not fetch artisans: %w", err)
	}

	_, rankSpan := d.tracer.Start(ctx, "ranking.Rank", trace.WithAttributes(
		attribute.Int("candidates", len(candidates)),
		attribute.String("locality", me.Locality()),
		attribute.String("region", me.Region()),
	))
	ranked := ranking.Rank(*me, candidates)
	rankSpan.End()

	logger.Debug(ctx, "artisans ranked", zap.Int("count", len(ranked)), zap.String("query", name))

	return d.projector.ProjectAll(ranked), nil
}
