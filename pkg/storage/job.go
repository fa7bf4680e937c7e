package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage enqueues background jobs such as OTP and mail deliveries.
// Implementations persist the job into the queue backend so it becomes
// visible together with the surrounding transaction, if any.
type JobStorage interface {
	// AddJob enqueues a new job with the given arguments. It returns false when
	// the job was skipped as a duplicate of a unique job already queued.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
