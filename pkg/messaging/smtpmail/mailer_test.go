package smtpmail_test

import (
	"artisan/pkg/messaging"
	"artisan/pkg/messaging/smtpmail"
	"artisan/pkg/serrors"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type senderFunc func(ctx context.Context, messages ...*mail.Msg) error

func (f senderFunc) DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error {
	return f(ctx, messages...)
}

func newMailer(t *testing.T, fn senderFunc) *smtpmail.Mailer {
	t.Helper()

	m, err := smtpmail.NewWithSender(fn, smtpmail.Options{
		From:    "no-reply@artisan.example",
		AppName: "Artisan",
		SiteURL: "https://artisan.example",
	})
	require.NoError(t, err)

	return m
}

func TestMailer_Render(t *testing.T) {
	m := newMailer(t, nil)

	body, err := m.Render(messaging.Mail{Username: "tunde", Message: "Your password was changed <now>"})
	require.NoError(t, err)
	require.Contains(t, body, "HELLO, tunde")
	require.Contains(t, body, "Your password was changed &lt;now&gt;")
	require.Contains(t, body, `href="https://artisan.example"`)
	require.Contains(t, body, "Artisan. All rights reserved.")
}

func TestMailer_Send(t *testing.T) {
	var sent []*mail.Msg
	m := newMailer(t, func(_ context.Context, messages ...*mail.Msg) error {
		sent = append(sent, messages...)

		return nil
	})

	err := m.Send(context.Background(), messaging.Mail{
		To:       "ada@example.com",
		Subject:  "Welcome",
		Username: "ada",
		Message:  "Hi",
	})
	require.NoError(t, err)
	require.Len(t, sent, 1)

	to := sent[0].GetTo()
	require.Len(t, to, 1)
	require.Equal(t, "ada@example.com", to[0].Address)
	require.Equal(t, []string{"Welcome"}, sent[0].GetGenHeader(mail.HeaderSubject))
}

func TestMailer_Send_Errors(t *testing.T) {
	m := newMailer(t, func(context.Context, ...*mail.Msg) error {
		return errors.New("connection refused")
	})

	err := m.Send(context.Background(), messaging.Mail{To: "not an address"})
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	err = m.Send(context.Background(), messaging.Mail{To: "ada@example.com", Subject: "s"})
	require.ErrorIs(t, err, serrors.ErrUnavailable)
}
