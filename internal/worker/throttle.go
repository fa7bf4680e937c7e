package worker

import (
	"artisan/pkg/logger"
	"artisan/pkg/metrics"
	"artisan/pkg/serrors"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/riverqueue/river"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitSnooze is how long a job waits after a provider reported that we
// are over its rate limit.
const RateLimitSnooze = time.Minute

const (
	resultDelivered = "delivered"
	resultCanceled  = "canceled"
	resultSnoozed   = "snoozed"
	resultFailed    = "failed"
)

// Throttle is shared by every delivery worker. It paces outbound provider calls
// with a token bucket and records the outcome of each job.
type Throttle struct {
	limiter    *rate.Limiter
	deliveries *prometheus.CounterVec
	calls      *prometheus.HistogramVec
}

// NewThrottle allows ratePerSecond provider calls per second. A non-positive
// rate disables pacing. Metrics are registered on reg.
func NewThrottle(ratePerSecond float64, reg prometheus.Registerer) *Throttle {
	limit := rate.Inf
	burst := 1
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
		burst = int(math.Max(1, math.Ceil(ratePerSecond)))
	}

	factory := promauto.With(reg)

	return &Throttle{
		limiter: rate.NewLimiter(limit, burst),
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "deliveries_total",
			Help:      "Number of processed delivery jobs by kind and result.",
		}, []string{"kind", "result"}),
		calls: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Name:      "provider_call_duration_seconds",
			Help:      "Duration of outbound provider calls by channel.",
			Buckets:   metrics.ProviderBuckets,
		}, []string{"channel"}),
	}
}

// Wait blocks until one provider call may start or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("could not wait for rate limiter: %w", err)
	}

	return nil
}

// Time starts timing one provider call on channel. The returned func stops
// the timer.
func (t *Throttle) Time(channel string) func() {
	timer := prometheus.NewTimer(t.calls.WithLabelValues(channel))

	return func() { timer.ObserveDuration() }
}

// Finish records the outcome of a job of the given kind and translates err
// into the action River should take: rate limited jobs are snoozed, rejected
// ones are canceled and everything else is retried.
func (t *Throttle) Finish(ctx context.Context, kind string, err error) error {
	if err == nil {
		t.deliveries.WithLabelValues(kind, resultDelivered).Inc()
		logger.Info(ctx, "delivery succeeded")

		return nil
	}

	logger.Error(ctx, "delivery failed", zap.Error(err))

	switch {
	case errors.Is(err, serrors.ErrRateLimited):
		t.deliveries.WithLabelValues(kind, resultSnoozed).Inc()

		return river.JobSnooze(RateLimitSnooze) //nolint: wrapcheck
	case errors.Is(err, serrors.ErrBadRequest):
		t.deliveries.WithLabelValues(kind, resultCanceled).Inc()

		return river.JobCancel(err) //nolint: wrapcheck
	default:
		t.deliveries.WithLabelValues(kind, resultFailed).Inc()

		return fmt.Errorf("could not deliver %s: %w", kind, err)
	}
}
