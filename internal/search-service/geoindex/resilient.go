package geoindex

import (
	apperrors "Proximity_Search_Microservice/internal/search-service/errors"
	"Proximity_Search_Microservice/pkg/metrics"
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"
)

type resilientIndex struct {
	inner   Index
	sem     *semaphore.Weighted
	timeout time.Duration
	backoff time.Duration
}

func (r *resilientIndex) Name() string {
	return r.inner.Name()
}

func (r *resilientIndex) Ping(ctx context.Context) error {
	return r.inner.Ping(ctx)
}

// Nearest runs at most two attempts. Permanent errors and caller cancellation are not
// retried.
func (r *resilientIndex) Nearest(ctx context.Context, req NearestRequest) (NearestPage, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return NearestPage{}, fmt.Errorf("ResilientIndex.Nearest acquire: %w", apperrors.NewIndexError(r.inner.Name(), false, err))
	}
	defer r.sem.Release(1)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return NearestPage{}, fmt.Errorf("ResilientIndex.Nearest: %w", lastErr)
			case <-time.After(r.backoff):
			}
		}
		page, err := r.attempt(ctx, req)
		if err == nil {
			return page, nil
		}
		lastErr = err
		if apperrors.IsPermanentIndexError(err) || ctx.Err() != nil {
			break
		}
	}
	return NearestPage{}, fmt.Errorf("ResilientIndex.Nearest: %w", lastErr)
}

func (r *resilientIndex) attempt(ctx context.Context, req NearestRequest) (NearestPage, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	page, err := r.inner.Nearest(attemptCtx, req)
	status := "ok"
	if err != nil {
		status = "error"
		if errors.Is(err, context.DeadlineExceeded) {
			status = "timeout"
		}
		if !errors.Is(err, apperrors.ErrIndexUnavailable) {
			err = apperrors.NewIndexError(r.inner.Name(), false, err)
		}
	}
	metrics.RecordIndexQuery(r.inner.Name(), status, time.Since(start).Seconds())
	return page, err
}

// NewResilientIndex bounds concurrency to maxConcurrent queries and each attempt to
// timeout.
func NewResilientIndex(inner Index, maxConcurrent int64, timeout time.Duration, backoff time.Duration) Index {
	return &resilientIndex{
		inner:   inner,
		sem:     semaphore.NewWeighted(maxConcurrent),
		timeout: timeout,
		backoff: backoff,
	}
}
