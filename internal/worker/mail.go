package worker

import (
	"artisan/internal/delivery"
	"artisan/pkg/logger"
	"artisan/pkg/messaging"
	"context"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// MailWorker sends templated e-mails.
type MailWorker struct {
	river.WorkerDefaults[delivery.MailArgs]

	mailer   messaging.Mailer
	throttle *Throttle
}

func NewMailWorker(mailer messaging.Mailer, throttle *Throttle) *MailWorker {
	return &MailWorker{mailer: mailer, throttle: throttle}
}

func (w *MailWorker) Work(ctx context.Context, job *river.Job[delivery.MailArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID), zap.String("subject", job.Args.Subject))

	if err := w.throttle.Wait(ctx); err != nil {
		return w.throttle.Finish(ctx, job.Args.Kind(), err)
	}

	done := w.throttle.Time("mail")
	err := w.mailer.Send(ctx, messaging.Mail{
		To:       job.Args.To,
		Subject:  job.Args.Subject,
		Username: job.Args.Username,
		Message:  job.Args.Message,
	})
	done()

	return w.throttle.Finish(ctx, job.Args.Kind(), err)
}
