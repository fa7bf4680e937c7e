package postgres

import (
	"artisan/pkg/domain"
	"artisan/pkg/storage"
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	notificationsTable = "notification"
)

func (p *PgSQL) StoreNotification(ctx context.Context,
	notification domain.Notification) (*domain.Notification, error) {
	var row PgNotification
	row.FromDomain(notification)

	var stored PgNotification
	if _, err := p.Builder.Insert(notificationsTable).
		Rows(row).
		Returning(&PgNotification{}).
		Executor().ScanStructContext(ctx, &stored); err != nil {
		return nil, fmt.Errorf("could not store notification into pg: %w", err)
	}

	return stored.ToDomain(), nil
}

// UserNotifications returns a page ordered by created_at DESC, id DESC along
// with the filtered total and the user's overall unread count.
func (p *PgSQL) UserNotifications(ctx context.Context,
	filter storage.NotificationFilter) (storage.NotificationPage, error) {
	w := []goqu.Expression{
		goqu.I("user_id").Eq(uuid.UUID(filter.UserID)),
	}
	if filter.Status != "" {
		w = append(w, goqu.I("status").Eq(string(filter.Status)))
	}
	if filter.Type != "" {
		w = append(w, goqu.I("type").Eq(filter.Type))
	}

	page, perPage := filter.Page, filter.PerPage
	if page == 0 {
		page = 1
	}

	total, err := p.Builder.From(notificationsTable).Where(w...).CountContext(ctx)
	if err != nil {
		return storage.NotificationPage{}, fmt.Errorf("could not count notifications: %w", err)
	}

	unread, err := p.Builder.From(notificationsTable).
		Where(
			goqu.I("user_id").Eq(uuid.UUID(filter.UserID)),
			goqu.I("status").Eq(string(domain.NotificationUnread)),
		).CountContext(ctx)
	if err != nil {
		return storage.NotificationPage{}, fmt.Errorf("could not count unread notifications: %w", err)
	}

	var rows []PgNotification
	if err := p.Builder.From(notificationsTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.NotificationPage{}, fmt.Errorf("could not fetch notifications from pg: %w", err)
	}

	out := make([]domain.Notification, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}

	return storage.NotificationPage{
		Notifications: out,
		Total:         total,
		Unread:        unread,
	}, nil
}

func (p *PgSQL) MarkNotificationRead(ctx context.Context,
	userID domain.UserID,
	id domain.NotificationID) (*domain.Notification, error) {
	var row PgNotification
	found, err := p.Builder.Update(notificationsTable).
		Set(goqu.Record{
			"status":     string(domain.NotificationRead),
			"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("user_id").Eq(uuid.UUID(userID)),
		).
		Returning(&PgNotification{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not mark notification read in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}
