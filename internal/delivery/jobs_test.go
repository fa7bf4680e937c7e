package delivery_test

import (
	"artisan/internal/delivery"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var opts = delivery.Options{MaxAttempts: 7, OTPResendInterval: time.Minute} //nolint: gochecknoglobals

func TestOTPArgs(t *testing.T) {
	args := delivery.NewOTPArgs(opts, "u1", "08012345678", "4821")
	require.Equal(t, "DeliverOTPJob", args.Kind())

	io := args.InsertOpts()
	require.Equal(t, 7, io.MaxAttempts)
	require.True(t, io.UniqueOpts.ByArgs)
	require.Equal(t, time.Minute, io.UniqueOpts.ByPeriod)
	require.NotEmpty(t, io.UniqueOpts.ByState)

	b, err := json.Marshal(args)
	require.NoError(t, err)
	require.JSONEq(t, `{"user_id":"u1","phone":"08012345678","code":"4821"}`, string(b))
}

func TestVerificationAndMailArgs(t *testing.T) {
	v := delivery.NewVerificationArgs(opts, "08012345678")
	require.Equal(t, "StartPhoneVerificationJob", v.Kind())
	require.Equal(t, 7, v.InsertOpts().MaxAttempts)

	m := delivery.NewMailArgs(opts, "a@b.c", "Hi", "ada", "Welcome")
	require.Equal(t, "SendMailJob", m.Kind())
	require.Equal(t, 7, m.InsertOpts().MaxAttempts)

	b, err := json.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"to":"a@b.c","subject":"Hi","username":"ada","message":"Welcome"}`, string(b))
}
