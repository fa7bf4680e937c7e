package postgres_test

import (
	"artisan/pkg/domain"
	"artisan/pkg/storage"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPgSQL_Chats(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	alice := storeUser(t, pg, domain.User{Fullname: "alice a"})
	bob := storeUser(t, pg, domain.User{Fullname: "bob b"})
	carol := storeUser(t, pg, domain.User{Fullname: "carol c"})

	none, err := pg.ChatBetween(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Nil(t, none)

	chat, err := pg.StoreChat(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, chat.Has(alice.ID))
	require.True(t, chat.Has(bob.ID))

	again, err := pg.StoreChat(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, chat.ID, again.ID, "a pair maps to one chat")

	found, err := pg.ChatBetween(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, chat.ID, found.ID)

	other, err := pg.StoreChat(ctx, alice.ID, carol.ID)
	require.NoError(t, err)

	for _, m := range []domain.Message{
		{ChatID: chat.ID, SenderID: alice.ID, Content: "hi bob"},
		{ChatID: chat.ID, SenderID: bob.ID, Content: "hello alice"},
		{ChatID: chat.ID, SenderID: bob.ID, Content: "need a plumber?"},
	} {
		require.NoError(t, pg.WithTx(ctx, func(s storage.AllStorage) error {
			_, err := s.StoreMessage(ctx, m)

			return err //nolint: wrapcheck
		}))
	}

	inbox, err := pg.UserChats(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	require.Equal(t, chat.ID, inbox[0].Chat.ID, "most recent activity first")
	require.Equal(t, "bob b", inbox[0].Other.Fullname)
	require.Equal(t, 2, inbox[0].Unread)
	require.NotNil(t, inbox[0].LastMessage)
	require.Equal(t, "need a plumber?", inbox[0].LastMessage.Content)
	require.Equal(t, other.ID, inbox[1].Chat.ID)
	require.Nil(t, inbox[1].LastMessage)
	require.Equal(t, 0, inbox[1].Unread)

	msgs, total, err := pg.ChatMessages(ctx, chat.ID, 1, 2)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, msgs, 2)
	require.Equal(t, domain.MessageTypeText, msgs[0].Type)

	n, err := pg.MarkMessagesRead(ctx, chat.ID, alice.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	inbox, err = pg.UserChats(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, 0, inbox[0].Unread)

	inbox, err = pg.UserChats(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	require.Equal(t, 1, inbox[0].Unread)

	byID, err := pg.ChatByID(ctx, chat.ID)
	require.NoError(t, err)
	require.NotNil(t, byID.LastMessageID)
}
