// Package worker runs the River workers that deliver OTPs, phone
// verifications and e-mails.
package worker

import (
	"artisan/pkg/logger"
	"artisan/pkg/messaging"
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"
)

// Dependencies are the outbound channels used by the workers.
type Dependencies struct {
	WhatsApp messaging.OTPSender
	SMS      messaging.SMSSender
	Verifier messaging.Verifier
	Mailer   messaging.Mailer
}

// Options tunes the worker pool.
type Options struct {
	// MaxWorkers is the number of jobs processed concurrently.
	MaxWorkers int
	// RatePerSecond caps outbound provider calls across all workers.
	RatePerSecond float64
	// AppName is used in SMS texts.
	AppName string
	// Registerer receives the delivery metrics.
	Registerer prometheus.Registerer
}

// Workers registers every delivery worker sharing one Throttle.
func Workers(deps Dependencies, opts Options) *river.Workers {
	throttle := NewThrottle(opts.RatePerSecond, opts.Registerer)

	workers := river.NewWorkers()
	river.AddWorker(workers, NewOTPWorker(deps.WhatsApp, deps.SMS, opts.AppName, throttle))
	river.AddWorker(workers, NewVerificationWorker(deps.Verifier, throttle))
	river.AddWorker(workers, NewMailWorker(deps.Mailer, throttle))

	return workers
}

func Start(ctx context.Context, dbPool *pgxpool.Pool, deps Dependencies, opts Options) (*river.Client[pgx.Tx], error) {
	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: maxWorkers},
		},
		Workers: Workers(deps, opts),
		Logger:  slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}
