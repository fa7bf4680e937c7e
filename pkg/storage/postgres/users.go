package postgres

import (
	"artisan/pkg/domain"
	"artisan/pkg/storage"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	usersTable = "users"
)

// likeEscaper escapes LIKE wildcards so search terms match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`) //nolint: gochecknoglobals

// asConflict returns a *storage.ConflictError naming the violated constraint
// when err is a unique violation, and nil otherwise.
func asConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}

	return &storage.ConflictError{Constraint: pgErr.ConstraintName}
}

func (p *PgSQL) StoreUser(ctx context.Context, user domain.User) (*domain.User, error) {
	var row PgUser
	row.FromDomain(user)

	var stored PgUser
	if _, err := p.Builder.Insert(usersTable).
		Rows(row).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &stored); err != nil {
		if conflict := asConflict(err); conflict != nil {
			return nil, fmt.Errorf("could not store user: %w", conflict)
		}

		return nil, fmt.Errorf("could not store user into pg: %w", err)
	}

	return stored.ToDomain(), nil
}

func (p *PgSQL) userBy(ctx context.Context, where exp.Expression) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.From(usersTable).
		Where(where).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) UserByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return p.userBy(ctx, goqu.I("id").Eq(uuid.UUID(id)))
}

func (p *PgSQL) UserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return p.userBy(ctx, goqu.I("phone_number").Eq(phone))
}

func (p *PgSQL) UsersByIDs(ctx context.Context, ids ...domain.UserID) (map[domain.UserID]domain.User, error) {
	out := make(map[domain.UserID]domain.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []PgUser
	if err := p.Builder.From(usersTable).
		Where(goqu.I("id").In(uuids(ids)...)).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch users by ids: %w", err)
	}
	for i := range rows {
		u := rows[i].ToDomain()
		out[u.ID] = *u
	}

	return out, nil
}

// UpdateUser applies only non-nil fields from updates and refreshes updated_at.
func (p *PgSQL) UpdateUser(ctx context.Context, id domain.UserID, updates storage.UserUpdates) (*domain.User, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
	}
	setString := func(col string, v *string) {
		if v != nil {
			rec[col] = nullString(*v)
		}
	}
	setBool := func(col string, v *bool) {
		if v != nil {
			rec[col] = *v
		}
	}

	setString("fullname", updates.Fullname)
	if updates.AccountType != nil {
		rec["account_type"] = string(*updates.AccountType)
	}
	setString("service", updates.Service)
	setString("bio", updates.Bio)
	setString("state", updates.State)
	setString("lga", updates.LGA)
	setString("dob", updates.DOB)
	setString("years_of_experience", updates.YearsOfExperience)
	if updates.Status != nil {
		rec["status"] = string(*updates.Status)
	}
	setString("profile_pic", updates.ProfilePic)
	setBool("phone_v_status", updates.PhoneVerified)
	setBool("push_notification", updates.PushNotifications)
	setBool("email_notification", updates.EmailNotifications)
	setString("fcm_token", updates.FCMToken)
	setBool("is_online", updates.IsOnline)
	if updates.LastSeenAt != nil {
		rec["last_seen_at"] = nullTime(*updates.LastSeenAt)
	}
	if updates.PasswordHash != nil {
		rec["password"] = *updates.PasswordHash
	}
	if updates.PasswordChangedAt != nil {
		rec["password_changed_at"] = nullTime(*updates.PasswordChangedAt)
	}
	if updates.OTPHash != nil {
		rec["otp"] = nullString(*updates.OTPHash)
		if *updates.OTPHash == "" {
			rec["otp_created_at"] = goqu.L("NULL")
		}
	}
	if updates.OTPCreatedAt != nil && (updates.OTPHash == nil || *updates.OTPHash != "") {
		rec["otp_created_at"] = nullTime(*updates.OTPCreatedAt)
	}

	var row PgUser
	found, err := p.Builder.Update(usersTable).
		Set(rec).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		if conflict := asConflict(err); conflict != nil {
			return nil, fmt.Errorf("could not update user: %w", conflict)
		}

		return nil, fmt.Errorf("could not update user in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// Providers returns artisans matching the filter. Portfolio entries are loaded
// with a second query and attached in creation order.
func (p *PgSQL) Providers(ctx context.Context, filter storage.ProviderFilter) ([]domain.Provider, error) {
	w := []goqu.Expression{
		goqu.I("account_type").Eq(string(domain.AccountTypeArtisan)),
	}
	if filter.ID != nil {
		w = append(w, goqu.I("id").Eq(uuid.UUID(*filter.ID)))
	}
	if filter.ExcludeID != nil {
		w = append(w, goqu.I("id").Neq(uuid.UUID(*filter.ExcludeID)))
	}
	if filter.Category != "" {
		w = append(w, goqu.Func("LOWER", goqu.I("service")).Eq(strings.ToLower(filter.Category)))
	}
	if filter.VerifiedOnly {
		w = append(w, goqu.I("bvn_v_status").IsTrue(), goqu.I("email_v_status").IsTrue())
	}
	if term := strings.TrimSpace(filter.Term); term != "" {
		like := "%" + likeEscaper.Replace(term) + "%"
		w = append(w, goqu.Or(
			goqu.I("fullname").ILike(like),
			goqu.I("username").ILike(like),
			goqu.I("service").ILike(like),
			goqu.I("location").ILike(like),
			goqu.I("state").ILike(like),
			goqu.I("lga").ILike(like),
		))
	}

	var rows []PgUser
	if err := p.Builder.From(usersTable).
		Where(w...).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch providers from pg: %w", err)
	}

	providers := make([]domain.Provider, 0, len(rows))
	ids := make([]domain.UserID, 0, len(rows))
	for i := range rows {
		u := rows[i].ToDomain()
		providers = append(providers, domain.Provider{User: *u, Portfolio: []domain.Portfolio{}})
		ids = append(ids, u.ID)
	}
	if len(ids) == 0 {
		return providers, nil
	}

	byUser, err := p.portfoliosByUsers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range providers {
		if items, ok := byUser[providers[i].ID]; ok {
			providers[i].Portfolio = items
		}
	}

	return providers, nil
}
