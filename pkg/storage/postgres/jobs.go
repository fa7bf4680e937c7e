package postgres

import (
	"artisan/pkg/logger"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"go.uber.org/zap"
)

var errNoJobClient = errors.New("postgres storage was not created with New")

// AddJob enqueues a delivery job. Inside a transaction the job only becomes
// visible to workers once the transaction commits.
//
// It returns false without error when River skipped the job as a duplicate
// of a unique job that is still active.
func (p *PgSQL) AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	if p.jobs == nil {
		return false, errNoJobClient
	}

	var (
		res *rivertype.JobInsertResult
		err error
	)
	if tx, ok := p.DB.(*sql.Tx); ok {
		res, err = p.jobs.InsertTx(ctx, tx, args, opts)
	} else {
		res, err = p.jobs.Insert(ctx, args, opts)
	}
	if err != nil {
		return false, fmt.Errorf("could not insert %s job: %w", args.Kind(), err)
	}

	if res.UniqueSkippedAsDuplicate {
		logger.Debug(ctx, "job skipped as duplicate",
			zap.String("kind", args.Kind()), zap.Int64("existingJobID", res.Job.ID))

		return false, nil
	}

	return true, nil
}
