package cache

import (
	"Proximity_Search_Microservice/internal/search-service/config"
	apperrors "Proximity_Search_Microservice/internal/search-service/errors"
	"Proximity_Search_Microservice/internal/search-service/model"
	"Proximity_Search_Microservice/internal/search-service/repository"
	"Proximity_Search_Microservice/pkg/metrics"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

type Outcome string

const (
	OutcomeL1        Outcome = "l1"
	OutcomeL2        Outcome = "l2"
	OutcomeComputed  Outcome = "computed"
	OutcomeCoalesced Outcome = "coalesced"
)

type ComputeFunc func(ctx context.Context) (model.RankedResult, error)

// ResultCache is advisory: store failures degrade to misses and are never returned to
// callers of Get, Put or GetOrCompute.
type ResultCache interface {
	Get(ctx context.Context, fingerprint string) (model.RankedResult, Outcome, bool)
	Put(ctx context.Context, fingerprint string, query model.NormalizedQuery, result model.RankedResult, ttl time.Duration)
	Invalidate(ctx context.Context, pred Predicate) (int, error)
	// GetOrCompute returns a cached result or runs compute once per fingerprint across
	// concurrent callers. Only successful results are stored.
	GetOrCompute(ctx context.Context, fingerprint string, query model.NormalizedQuery, compute ComputeFunc) (model.RankedResult, Outcome, error)
	HitRate() float64
	Close()
}

type inflightCall struct {
	done   chan struct{}
	result model.RankedResult
	err    error
}

type resultCache struct {
	local  *LocalCache
	store  repository.ResultStore
	cfg    config.CacheConfig
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	inflight map[string]*inflightCall

	// settled counts finished leaders; bumped under mu after the result is stored
	settled atomic.Uint64

	hits    atomic.Int64
	lookups atomic.Int64
}

func (c *resultCache) Get(ctx context.Context, fingerprint string) (model.RankedResult, Outcome, bool) {
	if entry, ok := c.local.Get(fingerprint); ok {
		return entry.Result, OutcomeL1, true
	}

	opCtx, cancel := context.WithTimeout(ctx, c.cfg.OperationTimeout)
	defer cancel()
	entry, found, err := c.store.Get(opCtx, fingerprint)
	if err != nil {
		c.storeFailed("get", err)
		return model.RankedResult{}, "", false
	}
	if !found || entry.Expired(c.now()) {
		return model.RankedResult{}, "", false
	}
	c.local.Set(entry)
	return entry.Result, OutcomeL2, true
}

func (c *resultCache) Put(ctx context.Context, fingerprint string, query model.NormalizedQuery, result model.RankedResult, ttl time.Duration) {
	now := c.now()
	entry := model.CacheEntry{
		Fingerprint: fingerprint,
		Result:      result,
		Sort:        query.Sort,
		Categories:  query.Categories,
		Agencies:    query.Agencies,
		Cell:        Cell(query.Origin),
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
	c.local.Set(entry)

	opCtx, cancel := context.WithTimeout(ctx, c.cfg.OperationTimeout)
	defer cancel()
	if err := c.store.Set(opCtx, entry, ttl); err != nil {
		c.storeFailed("set", err)
	}
}

func (c *resultCache) Invalidate(ctx context.Context, pred Predicate) (int, error) {
	removed := make(map[string]struct{})
	for _, k := range c.local.DeleteFunc(pred) {
		removed[k] = struct{}{}
	}

	keys, err := c.store.Keys(ctx)
	if err != nil {
		c.storeFailed("invalidate", err)
		return len(removed), fmt.Errorf("ResultCache.Invalidate: %w: %w", apperrors.ErrCacheUnavailable, err)
	}
	now := c.now()
	var doomed []string
	for _, key := range keys {
		entry, found, err := c.store.Get(ctx, key)
		if err != nil {
			c.storeFailed("invalidate", err)
			return len(removed), fmt.Errorf("ResultCache.Invalidate: %w: %w", apperrors.ErrCacheUnavailable, err)
		}
		switch {
		case !found || entry.Expired(now):
			// expired in Redis, only the index member is left
			doomed = append(doomed, key)
		case pred(entry):
			doomed = append(doomed, key)
			removed[key] = struct{}{}
		}
	}
	if err = c.store.Delete(ctx, doomed...); err != nil {
		c.storeFailed("invalidate", err)
		return len(removed), fmt.Errorf("ResultCache.Invalidate: %w: %w", apperrors.ErrCacheUnavailable, err)
	}
	return len(removed), nil
}

func (c *resultCache) GetOrCompute(ctx context.Context, fingerprint string, query model.NormalizedQuery, compute ComputeFunc) (model.RankedResult, Outcome, error) {
	c.lookups.Add(1)
	var call *inflightCall
	for retried := false; call == nil; retried = true {
		settled := c.settled.Load()
		if result, outcome, ok := c.Get(ctx, fingerprint); ok {
			c.hits.Add(1)
			metrics.RecordCacheLookup(string(outcome))
			return result, outcome, nil
		}

		c.mu.Lock()
		if inflight, ok := c.inflight[fingerprint]; ok {
			c.mu.Unlock()
			return c.follow(ctx, inflight, fingerprint, query, compute)
		}
		// a leader settled between the lookup and the lock, its result is in L1 or L2 now
		if c.settled.Load() != settled && !retried {
			c.mu.Unlock()
			continue
		}
		call = &inflightCall{done: make(chan struct{})}
		c.inflight[fingerprint] = call
		c.mu.Unlock()
	}

	go c.lead(ctx, call, fingerprint, query, compute)

	select {
	case <-call.done:
		metrics.RecordCacheLookup(string(OutcomeComputed))
		return call.result, OutcomeComputed, call.err
	case <-ctx.Done():
		return model.RankedResult{}, "", fmt.Errorf("ResultCache.GetOrCompute: %w", ctx.Err())
	}
}

// lead computes on a context detached from the caller so an impatient first caller
// does not fail everyone waiting on it.
func (c *resultCache) lead(parent context.Context, call *inflightCall, fingerprint string, query model.NormalizedQuery, compute ComputeFunc) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), c.cfg.ComputeTimeout)
	defer cancel()

	call.result, call.err = compute(ctx)
	if call.err == nil {
		c.Put(ctx, fingerprint, query, call.result, c.cfg.TTL)
	}

	c.mu.Lock()
	delete(c.inflight, fingerprint)
	c.settled.Add(1)
	c.mu.Unlock()
	close(call.done)
}

func (c *resultCache) follow(ctx context.Context, call *inflightCall, fingerprint string, query model.NormalizedQuery, compute ComputeFunc) (model.RankedResult, Outcome, error) {
	timer := time.NewTimer(c.cfg.CoalesceWait)
	defer timer.Stop()

	select {
	case <-call.done:
		if call.err == nil {
			c.hits.Add(1)
		}
		metrics.RecordCacheLookup(string(OutcomeCoalesced))
		return call.result, OutcomeCoalesced, call.err
	case <-ctx.Done():
		return model.RankedResult{}, "", fmt.Errorf("ResultCache.GetOrCompute: %w", ctx.Err())
	case <-timer.C:
	}

	metrics.RecordCoalesceTimeout()
	c.logger.Debug("coalesce wait elapsed, computing independently", zap.String("fingerprint", fingerprint))
	result, err := compute(ctx)
	if err != nil {
		return model.RankedResult{}, "", err
	}
	c.Put(ctx, fingerprint, query, result, c.cfg.TTL)
	metrics.RecordCacheLookup(string(OutcomeComputed))
	return result, OutcomeComputed, nil
}

func (c *resultCache) HitRate() float64 {
	lookups := c.lookups.Load()
	if lookups == 0 {
		return 0
	}
	return float64(c.hits.Load()) / float64(lookups)
}

func (c *resultCache) Close() {
	c.local.Close()
}

func (c *resultCache) storeFailed(operation string, err error) {
	metrics.RecordCacheError(operation)
	c.logger.Warn("result store unavailable, treating as miss",
		zap.String("operation", operation),
		zap.Error(fmt.Errorf("%w: %w", apperrors.ErrCacheUnavailable, err)))
}

func NewResultCache(store repository.ResultStore, cfg config.CacheConfig, logger *zap.Logger) ResultCache {
	return newResultCache(store, cfg, logger, time.Now)
}

func newResultCache(store repository.ResultStore, cfg config.CacheConfig, logger *zap.Logger, now func() time.Time) *resultCache {
	return &resultCache{
		local:    NewLocalCache(cfg.LocalTTL, cfg.LocalMaxEntries, now),
		store:    store,
		cfg:      cfg,
		logger:   logger,
		now:      now,
		inflight: make(map[string]*inflightCall),
	}
}
