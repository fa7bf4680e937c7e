package worker_test

import (
	"artisan/internal/delivery"
	"artisan/internal/worker"
	"artisan/pkg/logger"
	"artisan/pkg/messaging"
	mockmessaging "artisan/pkg/messaging/mock"
	"artisan/pkg/serrors"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment, false)
	m.Run()
}

var opts = delivery.Options{MaxAttempts: 3, OTPResendInterval: time.Minute} //nolint: gochecknoglobals

func makeJob[T river.JobArgs](id int64, args T) *river.Job[T] {
	return &river.Job[T]{
		JobRow: &rivertype.JobRow{ID: id, Kind: args.Kind()},
		Args:   args,
	}
}

func newThrottle(t *testing.T) (*worker.Throttle, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()

	return worker.NewThrottle(0, reg), reg
}

func delivered(t *testing.T, reg *prometheus.Registry, kind, result string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "artisan_deliveries_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["kind"] == kind && labels["result"] == result {
				return m.GetCounter().GetValue()
			}
		}
	}

	return 0
}

func TestOTPWorker_WhatsAppSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	whatsapp := mockmessaging.NewMockOTPSender(ctrl)
	sms := mockmessaging.NewMockSMSSender(ctrl)
	throttle, reg := newThrottle(t)
	w := worker.NewOTPWorker(whatsapp, sms, "Artisan", throttle)

	whatsapp.EXPECT().SendOTP(gomock.Any(), "08012345678", "123456").Return("SM1", nil)

	job := makeJob(1, delivery.NewOTPArgs(opts, "u1", "08012345678", "123456"))
	require.NoError(t, w.Work(context.Background(), job))
	require.InDelta(t, 1, delivered(t, reg, "DeliverOTPJob", "delivered"), 0)
}

func TestOTPWorker_FallsBackToSMS(t *testing.T) {
	ctrl := gomock.NewController(t)
	whatsapp := mockmessaging.NewMockOTPSender(ctrl)
	sms := mockmessaging.NewMockSMSSender(ctrl)
	throttle, _ := newThrottle(t)
	w := worker.NewOTPWorker(whatsapp, sms, "Artisan", throttle)

	gomock.InOrder(
		whatsapp.EXPECT().SendOTP(gomock.Any(), "08012345678", "654321").
			Return("", serrors.With(serrors.ErrUnavailable, "twilio down")),
		sms.EXPECT().SendSMS(gomock.Any(), "08012345678", "Your Artisan verification code is 654321").
			Return("msg-1", nil),
	)

	require.NoError(t, w.Work(context.Background(), makeJob(2, delivery.NewOTPArgs(opts, "u1", "08012345678", "654321"))))
}

func TestOTPWorker_BothChannelsFailRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	whatsapp := mockmessaging.NewMockOTPSender(ctrl)
	sms := mockmessaging.NewMockSMSSender(ctrl)
	throttle, reg := newThrottle(t)
	w := worker.NewOTPWorker(whatsapp, sms, "Artisan", throttle)

	whatsapp.EXPECT().SendOTP(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("boom"))
	sms.EXPECT().SendSMS(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", serrors.With(serrors.ErrUnavailable, "sendchamp down"))

	err := w.Work(context.Background(), makeJob(3, delivery.NewOTPArgs(opts, "u1", "08012345678", "000000")))
	require.Error(t, err)
	var cancelErr *river.JobCancelError
	require.NotErrorAs(t, err, &cancelErr)
	var snoozeErr *river.JobSnoozeError
	require.NotErrorAs(t, err, &snoozeErr)
	require.InDelta(t, 1, delivered(t, reg, "DeliverOTPJob", "failed"), 0)
}

func TestOTPWorker_SMSRejectedCancels(t *testing.T) {
	ctrl := gomock.NewController(t)
	whatsapp := mockmessaging.NewMockOTPSender(ctrl)
	sms := mockmessaging.NewMockSMSSender(ctrl)
	throttle, _ := newThrottle(t)
	w := worker.NewOTPWorker(whatsapp, sms, "Artisan", throttle)

	whatsapp.EXPECT().SendOTP(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("boom"))
	sms.EXPECT().SendSMS(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", serrors.With(serrors.ErrBadRequest, "invalid number"))

	err := w.Work(context.Background(), makeJob(4, delivery.NewOTPArgs(opts, "u1", "bad", "000000")))
	var cancelErr *river.JobCancelError
	require.ErrorAs(t, err, &cancelErr)
}

func TestVerificationWorker_RateLimitedSnoozes(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifier := mockmessaging.NewMockVerifier(ctrl)
	throttle, reg := newThrottle(t)
	w := worker.NewVerificationWorker(verifier, throttle)

	verifier.EXPECT().StartVerification(gomock.Any(), "+2348012345678").
		Return("", serrors.With(serrors.ErrRateLimited, "slow down"))

	err := w.Work(context.Background(), makeJob(5, delivery.NewVerificationArgs(opts, "+2348012345678")))
	var snoozeErr *river.JobSnoozeError
	require.ErrorAs(t, err, &snoozeErr)
	require.Equal(t, worker.RateLimitSnooze, snoozeErr.Duration)
	require.InDelta(t, 1, delivered(t, reg, "StartPhoneVerificationJob", "snoozed"), 0)
}

func TestVerificationWorker_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifier := mockmessaging.NewMockVerifier(ctrl)
	throttle, _ := newThrottle(t)
	w := worker.NewVerificationWorker(verifier, throttle)

	verifier.EXPECT().StartVerification(gomock.Any(), "+2348012345678").Return("VE1", nil)

	require.NoError(t, w.Work(context.Background(), makeJob(6, delivery.NewVerificationArgs(opts, "+2348012345678"))))
}

func TestMailWorker_SendsMail(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mockmessaging.NewMockMailer(ctrl)
	throttle, reg := newThrottle(t)
	w := worker.NewMailWorker(mailer, throttle)

	mailer.EXPECT().Send(gomock.Any(), messaging.Mail{
		To:       "ada@example.com",
		Subject:  "New booking",
		Username: "ada",
		Message:  "You have a new booking",
	}).Return(nil)

	args := delivery.NewMailArgs(opts, "ada@example.com", "New booking", "ada", "You have a new booking")
	require.NoError(t, w.Work(context.Background(), makeJob(7, args)))
	require.InDelta(t, 1, delivered(t, reg, "SendMailJob", "delivered"), 0)
}

func TestMailWorker_InvalidAddressCancels(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mockmessaging.NewMockMailer(ctrl)
	throttle, _ := newThrottle(t)
	w := worker.NewMailWorker(mailer, throttle)

	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(serrors.With(serrors.ErrBadRequest, "bad address"))

	err := w.Work(context.Background(), makeJob(8, delivery.NewMailArgs(opts, "nope", "s", "u", "m")))
	var cancelErr *river.JobCancelError
	require.ErrorAs(t, err, &cancelErr)
}

func TestThrottle_PacesCalls(t *testing.T) {
	throttle := worker.NewThrottle(20, prometheus.NewRegistry())
	ctx := context.Background()

	// the bucket starts full so the first burst passes immediately
	for range 20 {
		require.NoError(t, throttle.Wait(ctx))
	}

	start := time.Now()
	for range 4 {
		require.NoError(t, throttle.Wait(ctx))
	}
	require.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestThrottle_WaitHonoursContext(t *testing.T) {
	throttle := worker.NewThrottle(0.001, prometheus.NewRegistry())
	require.NoError(t, throttle.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.Error(t, throttle.Wait(ctx))
}

func TestThrottle_CountsPerKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	throttle := worker.NewThrottle(0, reg)
	ctx := context.Background()

	require.NoError(t, throttle.Finish(ctx, "a", nil))
	require.NoError(t, throttle.Finish(ctx, "a", nil))
	require.Error(t, throttle.Finish(ctx, "b", errors.New("x")))

	count, err := testutil.GatherAndCount(reg, "artisan_deliveries_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.InDelta(t, 2, delivered(t, reg, "a", "delivered"), 0)
	require.InDelta(t, 1, delivered(t, reg, "b", "failed"), 0)
}

func TestThrottle_TimesProviderCalls(t *testing.T) {
	reg := prometheus.NewRegistry()
	throttle := worker.NewThrottle(0, reg)

	throttle.Time("whatsapp")()
	throttle.Time("whatsapp")()
	throttle.Time("sms")()

	count, err := testutil.GatherAndCount(reg, "artisan_provider_call_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestWorkers_RegistersAllKinds(t *testing.T) {
	ctrl := gomock.NewController(t)
	workers := worker.Workers(worker.Dependencies{
		WhatsApp: mockmessaging.NewMockOTPSender(ctrl),
		SMS:      mockmessaging.NewMockSMSSender(ctrl),
		Verifier: mockmessaging.NewMockVerifier(ctrl),
		Mailer:   mockmessaging.NewMockMailer(ctrl),
	}, worker.Options{Registerer: prometheus.NewRegistry()})

	// registering the same kind twice errors, proving each is already present
	require.Error(t, river.AddWorkerSafely(workers, worker.NewMailWorker(nil, nil)))
	require.Error(t, river.AddWorkerSafely(workers, worker.NewOTPWorker(nil, nil, "", nil)))
	require.Error(t, river.AddWorkerSafely(workers, worker.NewVerificationWorker(nil, nil)))
}
