package notification_test

import (
	"artisan/internal/delivery"
	"artisan/internal/notification"
	"artisan/pkg/domain"
	"artisan/pkg/serrors"
	"artisan/pkg/storage"
	mockstorage "artisan/pkg/storage/mock"
	"context"
	"errors"
	"testing"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestNotifier(t *testing.T) (*gomock.Controller, *mockstorage.MockStorage, notification.Notifier) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	n := notification.New(st, notification.Options{
		Delivery: delivery.Options{MaxAttempts: 3, OTPResendInterval: time.Minute},
	})

	return ctrl, st, n
}

func expectWithTx(ctrl *gomock.Controller, m *mockstorage.MockStorage, fn func(tx *mockstorage.MockAllStorage)) {
	m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cb func(storage.AllStorage) error) error {
			tx := mockstorage.NewMockAllStorage(ctrl)
			if fn != nil {
				fn(tx)
			}

			return cb(tx)
		},
	)
}

func TestNewRef(t *testing.T) {
	for range 100 {
		ref := notification.NewRef()
		require.Len(t, ref, 15)
		seen := map[rune]bool{}
		for _, r := range ref {
			require.True(t, unicode.IsUpper(r), "ref %q", ref)
			require.False(t, seen[r], "letters must not repeat in %q", ref)
			seen[r] = true
		}
	}
	require.Len(t, notification.RandomLetters(100), 26)
}

func TestBuild(t *testing.T) {
	id := domain.UserID(uuid.New())
	n := notification.Build(id, domain.NotificationTypeWelcome, "Welcome", "hi")
	require.Equal(t, id, n.UserID)
	require.Equal(t, domain.NotificationUnread, n.Status)
	require.Len(t, n.Ref, 15)
}

func TestList_Defaults(t *testing.T) {
	_, st, n := newTestNotifier(t)
	userID := domain.UserID(uuid.New())

	st.EXPECT().UserNotifications(gomock.Any(), storage.NotificationFilter{
		UserID: userID, Page: 1, PerPage: notification.DefaultPerPage,
	}).Return(storage.NotificationPage{Total: 3, Unread: 1}, nil)

	page, err := n.List(context.Background(), storage.NotificationFilter{UserID: userID})
	require.NoError(t, err)
	require.EqualValues(t, 3, page.Total)
}

func TestList_CapsPerPage(t *testing.T) {
	_, st, n := newTestNotifier(t)

	st.EXPECT().UserNotifications(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f storage.NotificationFilter) (storage.NotificationPage, error) {
			require.EqualValues(t, notification.MaxPerPage, f.PerPage)
			require.EqualValues(t, 2, f.Page)

			return storage.NotificationPage{}, nil
		})

	_, err := n.List(context.Background(), storage.NotificationFilter{Page: 2, PerPage: 500})
	require.NoError(t, err)
}

func TestList_InvalidStatus(t *testing.T) {
	_, _, n := newTestNotifier(t)

	_, err := n.List(context.Background(), storage.NotificationFilter{Status: "archived"})
	require.ErrorIs(t, err, serrors.ErrUnprocessable)
}

func TestMarkRead(t *testing.T) {
	_, st, n := newTestNotifier(t)
	userID := domain.UserID(uuid.New())
	id := uuid.New()

	st.EXPECT().MarkNotificationRead(gomock.Any(), userID, domain.NotificationID(id)).
		Return(&domain.Notification{ID: domain.NotificationID(id), Status: domain.NotificationRead}, nil)

	res, err := n.MarkRead(context.Background(), userID, id.String())
	require.NoError(t, err)
	require.True(t, res.IsRead())
}

func TestMarkRead_NotFound(t *testing.T) {
	_, st, n := newTestNotifier(t)

	_, err := n.MarkRead(context.Background(), domain.UserID{}, "not-a-uuid")
	require.ErrorIs(t, err, serrors.ErrNotFound)
	require.Equal(t, "Notification not found", serrors.MessageOf(err))

	st.EXPECT().MarkNotificationRead(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	_, err = n.MarkRead(context.Background(), domain.UserID{}, uuid.NewString())
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestSend_QueuesMailWhenEnabled(t *testing.T) {
	ctrl, st, n := newTestNotifier(t)
	receiverID := domain.UserID(uuid.New())

	expectWithTx(ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().UserByID(gomock.Any(), receiverID).Return(&domain.User{
			ID: receiverID, Fullname: "ada obi", Email: "ada@example.com", EmailNotifications: true,
		}, nil)
		tx.EXPECT().StoreNotification(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, item domain.Notification) (*domain.Notification, error) {
				require.Equal(t, receiverID, item.UserID)
				require.Equal(t, "booking", item.Type)
				require.Equal(t, "https://x", item.Link)
				require.Len(t, item.Ref, 15)

				return &item, nil
			})
		tx.EXPECT().AddJob(gomock.Any(), gomock.Any(), gomock.Nil()).DoAndReturn(
			func(_ context.Context, args river.JobArgs, _ *river.InsertOpts) (bool, error) {
				mail, ok := args.(delivery.MailArgs)
				require.True(t, ok)
				require.Equal(t, "ada@example.com", mail.To)
				require.Equal(t, "New booking", mail.Subject)
				require.Equal(t, "ada obi", mail.Username)

				return true, nil
			})
	})

	res, err := n.Send(context.Background(), notification.SendRequest{
		ReceiverID: receiverID.String(),
		Title:      "New booking",
		Message:    "You have a new booking",
		Type:       "booking",
		Link:       "https://x",
	})
	require.NoError(t, err)
	require.Equal(t, "New booking", res.Title)
}

func TestSend_SkipsMailWhenDisabled(t *testing.T) {
	ctrl, st, n := newTestNotifier(t)
	receiverID := domain.UserID(uuid.New())

	expectWithTx(ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().UserByID(gomock.Any(), receiverID).Return(&domain.User{
			ID: receiverID, Email: "ada@example.com", EmailNotifications: false,
		}, nil)
		tx.EXPECT().StoreNotification(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, item domain.Notification) (*domain.Notification, error) { return &item, nil })
	})

	_, err := n.Send(context.Background(), notification.SendRequest{
		ReceiverID: receiverID.String(), Title: "t", Message: "m", Type: "x",
	})
	require.NoError(t, err)
}

func TestSend_UnknownReceiver(t *testing.T) {
	ctrl, st, n := newTestNotifier(t)

	expectWithTx(ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().UserByID(gomock.Any(), gomock.Any()).Return(nil, nil)
	})

	_, err := n.Send(context.Background(), notification.SendRequest{
		ReceiverID: uuid.NewString(), Title: "t", Message: "m", Type: "x",
	})
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestSend_Validation(t *testing.T) {
	_, _, n := newTestNotifier(t)

	_, err := n.Send(context.Background(), notification.SendRequest{ReceiverID: uuid.NewString(), Title: "t", Type: "x"})
	require.ErrorIs(t, err, serrors.ErrUnprocessable)
	require.Equal(t, "The message field is required.", serrors.MessageOf(err))
}

func TestSend_StorageError(t *testing.T) {
	ctrl, st, n := newTestNotifier(t)

	expectWithTx(ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().UserByID(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
	})

	_, err := n.Send(context.Background(), notification.SendRequest{
		ReceiverID: uuid.NewString(), Title: "t", Message: "m", Type: "x",
	})
	require.Error(t, err)
	require.Nil(t, serrors.KindOf(err))
}

func TestSettings(t *testing.T) {
	_, st, n := newTestNotifier(t)
	userID := domain.UserID(uuid.New())

	st.EXPECT().UserByID(gomock.Any(), userID).
		Return(&domain.User{PushNotifications: true, EmailNotifications: false}, nil)

	s, err := n.Settings(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, notification.Settings{Push: true, Email: false}, s)
}
