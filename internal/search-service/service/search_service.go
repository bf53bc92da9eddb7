package service

import (
	"Proximity_Search_Microservice/internal/search-service/cache"
	"Proximity_Search_Microservice/internal/search-service/config"
	apperrors "Proximity_Search_Microservice/internal/search-service/errors"
	"Proximity_Search_Microservice/internal/search-service/fingerprint"
	"Proximity_Search_Microservice/internal/search-service/geoindex"
	"Proximity_Search_Microservice/internal/search-service/model"
	"Proximity_Search_Microservice/internal/search-service/ranking"
	"Proximity_Search_Microservice/internal/search-service/repository"
	"Proximity_Search_Microservice/pkg/metrics"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

//go:generate mockgen -source=search_service.go -destination=../mocks/service/mock_search_service.go -package=mockservice
type SearchService interface {
	Search(ctx context.Context, query model.SearchQuery) (model.SearchResult, error)
	Invalidate(ctx context.Context, pred cache.Predicate) (int, error)
	FallbackTotal() int64
}

type searchService struct {
	resolver       ranking.Resolver
	fingerprinter  fingerprint.Fingerprinter
	cache          cache.ResultCache
	index          geoindex.Index
	establishments repository.EstablishmentRepository
	cfg            config.SearchConfig
	logger         *zap.Logger
	now            func() time.Time
	fallbacks      atomic.Int64
}

func (s *searchService) Search(ctx context.Context, query model.SearchQuery) (model.SearchResult, error) {
	query, err := s.validate(query)
	if err != nil {
		return model.SearchResult{}, fmt.Errorf("SearchService.Search: %w", err)
	}
	now := s.now()
	decision := s.resolver.Begin(query)

	if decision.State() == ranking.StateDistanceRequested {
		nq := s.fingerprinter.Normalize(query, model.SortDistanceAsc, decision.Origin(), now)
		result, outcome, err := s.cache.GetOrCompute(ctx, s.fingerprinter.Fingerprint(nq), nq, func(ctx context.Context) (model.RankedResult, error) {
			return s.rankByDistance(ctx, nq)
		})
		if err == nil {
			if err = decision.Apply(); err != nil {
				return model.SearchResult{}, fmt.Errorf("SearchService.Search: %w", err)
			}
			return s.finish(result, decision, outcome), nil
		}
		if !errors.Is(err, apperrors.ErrIndexUnavailable) {
			return model.SearchResult{}, fmt.Errorf("SearchService.Search: %w", err)
		}
		s.logger.Warn("spatial index unavailable, falling back to default ordering", zap.Error(err))
		if err = decision.IndexFailed(); err != nil {
			return model.SearchResult{}, fmt.Errorf("SearchService.Search: %w", err)
		}
	}

	nq := s.fingerprinter.Normalize(query, model.SortDefault, nil, now)
	result, outcome, err := s.cache.GetOrCompute(ctx, s.fingerprinter.Fingerprint(nq), nq, func(ctx context.Context) (model.RankedResult, error) {
		return s.rankByName(ctx, nq)
	})
	if err != nil {
		return model.SearchResult{}, fmt.Errorf("SearchService.Search: %w", err)
	}
	return s.finish(result, decision, outcome), nil
}

func (s *searchService) finish(result model.RankedResult, decision *ranking.Decision, outcome cache.Outcome) model.SearchResult {
	if decision.Reason() != model.ReasonNone {
		s.fallbacks.Add(1)
	}
	metrics.RecordSearch(string(decision.SortApplied()), string(decision.Reason()))
	return model.SearchResult{
		Result:         result,
		SortApplied:    decision.SortApplied(),
		FallbackReason: decision.Reason(),
		CacheOutcome:   string(outcome),
	}
}

// validate rejects malformed non-coordinate input. Coordinate problems are left to the
// resolver, which turns them into a fallback instead of an error.
func (s *searchService) validate(query model.SearchQuery) (model.SearchQuery, error) {
	switch query.Sort {
	case "":
		query.Sort = model.SortDefault
	case model.SortDefault, model.SortDistanceAsc:
	default:
		return query, apperrors.NewInvalidQueryError("sort", fmt.Sprintf("must be %s or %s", model.SortDistanceAsc, model.SortDefault))
	}
	if query.Limit == 0 {
		query.Limit = s.cfg.DefaultPageSize
	}
	if query.Limit < 1 || query.Limit > s.cfg.MaxPageSize {
		return query, apperrors.NewInvalidQueryError("limit", fmt.Sprintf("must be between 1 and %d", s.cfg.MaxPageSize))
	}
	if query.Offset < 0 {
		return query, apperrors.NewInvalidQueryError("cursor", "negative offset")
	}
	if s.cfg.MaxResultWindow > 0 && query.Offset+query.Limit > s.cfg.MaxResultWindow {
		return query, apperrors.NewInvalidQueryError("cursor", fmt.Sprintf("pages end at result %d", s.cfg.MaxResultWindow))
	}
	if query.RadiusMeters < 0 || query.RadiusMeters > s.cfg.MaxRadiusMeters {
		return query, apperrors.NewInvalidQueryError("radius_m", fmt.Sprintf("must be between 0 and %d", s.cfg.MaxRadiusMeters))
	}
	return query, nil
}

func (s *searchService) rankByDistance(ctx context.Context, nq model.NormalizedQuery) (model.RankedResult, error) {
	if nq.OpenNow {
		return s.scanOpen(ctx, nq, func(ctx context.Context, limit int, offset int) ([]scanItem, int, int64, error) {
			return s.distanceBatch(ctx, nq, limit, offset)
		})
	}
	page, err := s.index.Nearest(ctx, nearestRequest(nq, nq.Limit, nq.Offset))
	if err != nil {
		return model.RankedResult{}, err
	}
	items := make([]model.RankedItem, 0, len(page.Candidates))
	for _, c := range page.Candidates {
		items = append(items, model.RankedItem{ID: c.ID, DistanceMeters: distance(c.DistanceMeters)})
	}
	return page2result(items, nq.Offset, page.Total), nil
}

func (s *searchService) rankByName(ctx context.Context, nq model.NormalizedQuery) (model.RankedResult, error) {
	if nq.OpenNow {
		return s.scanOpen(ctx, nq, func(ctx context.Context, limit int, offset int) ([]scanItem, int, int64, error) {
			return s.nameBatch(ctx, nq, limit, offset)
		})
	}
	establishments, total, err := s.establishments.ListByName(ctx, nq.Categories, nq.Agencies, nq.Limit, nq.Offset)
	if err != nil {
		return model.RankedResult{}, err
	}
	items := make([]model.RankedItem, 0, len(establishments))
	for _, e := range establishments {
		items = append(items, model.RankedItem{ID: e.ID})
	}
	return page2result(items, nq.Offset, total), nil
}

type scanItem struct {
	item model.RankedItem
	open bool
}

type batchFunc func(ctx context.Context, limit int, offset int) (items []scanItem, fetched int, total int64, err error)

// scanOpen walks the underlying ordering in batches, keeping establishments open at
// nq.OpenAt, until the ordering or the scan budget is exhausted. Total is the number of
// open establishments seen within that budget.
func (s *searchService) scanOpen(ctx context.Context, nq model.NormalizedQuery, fetch batchFunc) (model.RankedResult, error) {
	batch := max(s.cfg.OpenNowScanBatch, 1)
	items := make([]model.RankedItem, 0, nq.Limit)
	var matched int64

	for offset := 0; offset < s.cfg.OpenNowScanLimit; offset += batch {
		size := min(batch, s.cfg.OpenNowScanLimit-offset)
		scanned, fetched, total, err := fetch(ctx, size, offset)
		if err != nil {
			return model.RankedResult{}, err
		}
		for _, it := range scanned {
			if !it.open {
				continue
			}
			if matched >= int64(nq.Offset) && len(items) < nq.Limit {
				items = append(items, it.item)
			}
			matched++
		}
		if fetched < size || int64(offset+fetched) >= total {
			break
		}
	}
	return page2result(items, nq.Offset, matched), nil
}

func (s *searchService) distanceBatch(ctx context.Context, nq model.NormalizedQuery, limit int, offset int) ([]scanItem, int, int64, error) {
	page, err := s.index.Nearest(ctx, nearestRequest(nq, limit, offset))
	if err != nil {
		return nil, 0, 0, err
	}
	ids := make([]int64, 0, len(page.Candidates))
	for _, c := range page.Candidates {
		ids = append(ids, c.ID)
	}
	establishments, err := s.establishments.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, 0, err
	}
	byID := make(map[int64]model.Establishment, len(establishments))
	for _, e := range establishments {
		byID[e.ID] = e
	}
	items := make([]scanItem, 0, len(page.Candidates))
	for _, c := range page.Candidates {
		e, ok := byID[c.ID]
		items = append(items, scanItem{
			item: model.RankedItem{ID: c.ID, DistanceMeters: distance(c.DistanceMeters)},
			open: ok && e.IsOpenAt(nq.OpenAt),
		})
	}
	return items, len(page.Candidates), page.Total, nil
}

func (s *searchService) nameBatch(ctx context.Context, nq model.NormalizedQuery, limit int, offset int) ([]scanItem, int, int64, error) {
	establishments, total, err := s.establishments.ListByName(ctx, nq.Categories, nq.Agencies, limit, offset)
	if err != nil {
		return nil, 0, 0, err
	}
	items := make([]scanItem, 0, len(establishments))
	for _, e := range establishments {
		items = append(items, scanItem{
			item: model.RankedItem{ID: e.ID},
			open: e.IsOpenAt(nq.OpenAt),
		})
	}
	return items, len(establishments), total, nil
}

func (s *searchService) Invalidate(ctx context.Context, pred cache.Predicate) (int, error) {
	removed, err := s.cache.Invalidate(ctx, pred)
	if err != nil {
		return removed, fmt.Errorf("SearchService.Invalidate: %w", err)
	}
	return removed, nil
}

func (s *searchService) FallbackTotal() int64 {
	return s.fallbacks.Load()
}

func nearestRequest(nq model.NormalizedQuery, limit int, offset int) geoindex.NearestRequest {
	return geoindex.NearestRequest{
		Origin:       *nq.Origin,
		RadiusMeters: nq.RadiusMeters,
		Categories:   nq.Categories,
		Agencies:     nq.Agencies,
		Limit:        limit,
		Offset:       offset,
	}
}

func page2result(items []model.RankedItem, offset int, total int64) model.RankedResult {
	result := model.RankedResult{
		Items: items,
		Total: total,
	}
	if next := offset + len(items); len(items) > 0 && int64(next) < total {
		result.NextCursor = model.EncodeCursor(next)
	}
	return result
}

func distance(d float64) *float64 {
	return &d
}

func NewSearchService(
	resolver ranking.Resolver,
	fingerprinter fingerprint.Fingerprinter,
	resultCache cache.ResultCache,
	index geoindex.Index,
	establishments repository.EstablishmentRepository,
	cfg config.SearchConfig,
	logger *zap.Logger,
) SearchService {
	return &searchService{
		resolver:       resolver,
		fingerprinter:  fingerprinter,
		cache:          resultCache,
		index:          index,
		establishments: establishments,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}
