package postgres

import (
	"artisan/pkg/domain"
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	chatsTable    = "chats"
	messagesTable = "messages"
)

func (p *PgSQL) ChatBetween(ctx context.Context, a, b domain.UserID) (*domain.Chat, error) {
	u1, u2 := domain.OrderedPair(a, b)

	var row PgChat
	found, err := p.Builder.From(chatsTable).
		Where(
			goqu.I("user1_id").Eq(uuid.UUID(u1)),
			goqu.I("user2_id").Eq(uuid.UUID(u2)),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch chat between users: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// StoreChat inserts the ordered pair and falls back to the existing chat when
// another request created it first.
func (p *PgSQL) StoreChat(ctx context.Context, a, b domain.UserID) (*domain.Chat, error) {
	u1, u2 := domain.OrderedPair(a, b)

	var row PgChat
	found, err := p.Builder.Insert(chatsTable).
		Rows(PgChat{User1: uuid.UUID(u1), User2: uuid.UUID(u2)}).
		OnConflict(goqu.DoNothing()).
		Returning(&PgChat{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not store chat into pg: %w", err)
	}
	if !found {
		return p.ChatBetween(ctx, u1, u2)
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) ChatByID(ctx context.Context, id domain.ChatID) (*domain.Chat, error) {
	var row PgChat
	found, err := p.Builder.From(chatsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch chat by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

type chatUnread struct {
	ChatID uuid.UUID `db:"chat_id"`
	Count  int       `db:"unread"`
}

// UserChats assembles the inbox from four queries: chats, participants, last
// messages and unread counts.
func (p *PgSQL) UserChats(ctx context.Context, userID domain.UserID) ([]domain.ChatSummary, error) {
	me := uuid.UUID(userID)

	var rows []PgChat
	if err := p.Builder.From(chatsTable).
		Where(goqu.Or(goqu.I("user1_id").Eq(me), goqu.I("user2_id").Eq(me))).
		Order(goqu.COALESCE(goqu.I("updated_at"), goqu.I("created_at")).Desc(), goqu.I("id").Desc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch user chats from pg: %w", err)
	}
	if len(rows) == 0 {
		return []domain.ChatSummary{}, nil
	}

	chats := make([]domain.Chat, 0, len(rows))
	others := make([]domain.UserID, 0, len(rows))
	chatIDs := make([]domain.ChatID, 0, len(rows))
	var lastIDs []domain.MessageID
	for i := range rows {
		c := rows[i].ToDomain()
		chats = append(chats, *c)
		others = append(others, c.Other(userID))
		chatIDs = append(chatIDs, c.ID)
		if c.LastMessageID != nil {
			lastIDs = append(lastIDs, *c.LastMessageID)
		}
	}

	users, err := p.UsersByIDs(ctx, others...)
	if err != nil {
		return nil, err
	}

	last := map[domain.MessageID]domain.Message{}
	if len(lastIDs) > 0 {
		var msgs []PgMessage
		if err := p.Builder.From(messagesTable).
			Where(goqu.I("id").In(uuids(lastIDs)...)).
			Executor().ScanStructsContext(ctx, &msgs); err != nil {
			return nil, fmt.Errorf("could not fetch last messages: %w", err)
		}
		for i := range msgs {
			m := msgs[i].ToDomain()
			last[m.ID] = *m
		}
	}

	var counts []chatUnread
	if err := p.Builder.From(messagesTable).
		Select(goqu.I("chat_id"), goqu.COUNT("*").As("unread")).
		Where(
			goqu.I("chat_id").In(uuids(chatIDs)...),
			goqu.I("sender_id").Neq(me),
			goqu.I("is_read").IsFalse(),
		).
		GroupBy(goqu.I("chat_id")).
		Executor().ScanStructsContext(ctx, &counts); err != nil {
		return nil, fmt.Errorf("could not count unread messages: %w", err)
	}
	unread := make(map[domain.ChatID]int, len(counts))
	for _, c := range counts {
		unread[domain.ChatID(c.ChatID)] = c.Count
	}

	out := make([]domain.ChatSummary, 0, len(chats))
	for _, c := range chats {
		s := domain.ChatSummary{
			Chat:   c,
			Other:  users[c.Other(userID)],
			Unread: unread[c.ID],
		}
		if c.LastMessageID != nil {
			if m, ok := last[*c.LastMessageID]; ok {
				s.LastMessage = &m
			}
		}
		out = append(out, s)
	}

	return out, nil
}

// StoreMessage inserts the message and points the chat's last_message_id at
// it. Callers should run it inside a transaction.
func (p *PgSQL) StoreMessage(ctx context.Context, message domain.Message) (*domain.Message, error) {
	var row PgMessage
	row.FromDomain(message)

	var stored PgMessage
	if _, err := p.Builder.Insert(messagesTable).
		Rows(row).
		Returning(&PgMessage{}).
		Executor().ScanStructContext(ctx, &stored); err != nil {
		return nil, fmt.Errorf("could not store message into pg: %w", err)
	}

	if _, err := p.Builder.Update(chatsTable).
		Set(goqu.Record{
			"last_message_id": stored.ID,
			"updated_at":      goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.I("id").Eq(stored.ChatID)).
		Executor().ExecContext(ctx); err != nil {
		return nil, fmt.Errorf("could not update chat last message: %w", err)
	}

	return stored.ToDomain(), nil
}

func (p *PgSQL) ChatMessages(ctx context.Context,
	chatID domain.ChatID,
	page, limit uint) ([]domain.Message, int64, error) {
	if page == 0 {
		page = 1
	}

	ds := p.Builder.From(messagesTable).Where(goqu.I("chat_id").Eq(uuid.UUID(chatID)))

	total, err := ds.CountContext(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("could not count chat messages: %w", err)
	}

	var rows []PgMessage
	if err := ds.
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Offset((page - 1) * limit).
		Limit(limit).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, 0, fmt.Errorf("could not fetch chat messages from pg: %w", err)
	}

	out := make([]domain.Message, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}

	return out, total, nil
}

func (p *PgSQL) MarkMessagesRead(ctx context.Context, chatID domain.ChatID, readerID domain.UserID) (int64, error) {
	res, err := p.Builder.Update(messagesTable).
		Set(goqu.Record{
			"is_read":    true,
			"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(
			goqu.I("chat_id").Eq(uuid.UUID(chatID)),
			goqu.I("sender_id").Neq(uuid.UUID(readerID)),
			goqu.I("is_read").IsFalse(),
		).
		Executor().ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not mark messages read in pg: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not read affected rows: %w", err)
	}

	return n, nil
}
