package worker

import (
	"artisan/internal/delivery"
	"artisan/pkg/logger"
	"artisan/pkg/messaging"
	"context"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// VerificationWorker asks the verification provider to text its own code to a
// phone.
type VerificationWorker struct {
	river.WorkerDefaults[delivery.VerificationArgs]

	verifier messaging.Verifier
	throttle *Throttle
}

func NewVerificationWorker(verifier messaging.Verifier, throttle *Throttle) *VerificationWorker {
	return &VerificationWorker{verifier: verifier, throttle: throttle}
}

func (w *VerificationWorker) Work(ctx context.Context, job *river.Job[delivery.VerificationArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID))

	if err := w.throttle.Wait(ctx); err != nil {
		return w.throttle.Finish(ctx, job.Args.Kind(), err)
	}

	done := w.throttle.Time("verify")
	sid, err := w.verifier.StartVerification(ctx, job.Args.Phone)
	done()
	if err == nil {
		logger.Debug(ctx, "verification started", zap.String("sid", sid))
	}

	return w.throttle.Finish(ctx, job.Args.Kind(), err)
}
