package worker

import (
	"artisan/internal/delivery"
	"artisan/pkg/logger"
	"artisan/pkg/messaging"
	"context"
	"errors"
	"fmt"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// OTPWorker delivers one-time passwords. WhatsApp is tried first and SMS is
// used when it fails. The job fails only when both channels fail.
type OTPWorker struct {
	river.WorkerDefaults[delivery.OTPArgs]

	whatsapp messaging.OTPSender
	sms      messaging.SMSSender
	appName  string
	throttle *Throttle
}

// NewOTPWorker returns an OTPWorker. appName is included in the SMS text.
func NewOTPWorker(whatsapp messaging.OTPSender, sms messaging.SMSSender, appName string, throttle *Throttle) *OTPWorker {
	return &OTPWorker{
		whatsapp: whatsapp,
		sms:      sms,
		appName:  appName,
		throttle: throttle,
	}
}

// SMSText is the message sent when an OTP falls back to SMS.
func SMSText(appName, code string) string {
	return fmt.Sprintf("Your %s verification code is %s", appName, code)
}

func (w *OTPWorker) Work(ctx context.Context, job *river.Job[delivery.OTPArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID), zap.String("userID", job.Args.UserID))

	return w.throttle.Finish(ctx, job.Args.Kind(), w.deliver(ctx, job.Args))
}

func (w *OTPWorker) deliver(ctx context.Context, args delivery.OTPArgs) error {
	if err := w.throttle.Wait(ctx); err != nil {
		return err
	}

	done := w.throttle.Time("whatsapp")
	sid, whatsappErr := w.whatsapp.SendOTP(ctx, args.Phone, args.Code)
	done()
	if whatsappErr == nil {
		logger.Info(ctx, "otp sent over whatsapp", zap.String("sid", sid))

		return nil
	}

	logger.Warn(ctx, "whatsapp otp failed, falling back to sms", zap.Error(whatsappErr))

	if err := w.throttle.Wait(ctx); err != nil {
		return err
	}

	done = w.throttle.Time("sms")
	id, smsErr := w.sms.SendSMS(ctx, args.Phone, SMSText(w.appName, args.Code))
	done()
	if smsErr != nil {
		// the SMS error decides what River does with the job
		return errors.Join(smsErr, whatsappErr)
	}

	logger.Info(ctx, "otp sent over sms", zap.String("messageID", id))

	return nil
}
