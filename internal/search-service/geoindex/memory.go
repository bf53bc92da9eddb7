package geoindex

import (
	apperrors "Proximity_Search_Microservice/internal/search-service/errors"
	"Proximity_Search_Microservice/internal/search-service/model"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var errSnapshotNotLoaded = errors.New("snapshot not loaded")

// EstablishmentLoader supplies the full establishment set for the in-memory index.
type EstablishmentLoader interface {
	ListAll(ctx context.Context) ([]model.Establishment, error)
}

type memoryEntry struct {
	id       int64
	point    model.GeoPoint
	category string
	agency   string
}

// MemoryIndex keeps an immutable snapshot and swaps it on refresh.
type MemoryIndex interface {
	Index
	Refresh(ctx context.Context) error
	Start()
	Stop()
}

type memoryIndex struct {
	loader   EstablishmentLoader
	interval time.Duration
	logger   *zap.Logger
	snapshot atomic.Pointer[[]memoryEntry]
	stop     chan struct{}
	wg       sync.WaitGroup
}

func (m *memoryIndex) Name() string {
	return BackendMemory
}

func (m *memoryIndex) Refresh(ctx context.Context) error {
	establishments, err := m.loader.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("MemoryIndex.Refresh: %w", err)
	}
	entries := make([]memoryEntry, 0, len(establishments))
	for _, e := range establishments {
		point := e.Location()
		if !point.Valid() {
			continue
		}
		entries = append(entries, memoryEntry{
			id:       e.ID,
			point:    point,
			category: strings.ToLower(e.Category),
			agency:   strings.ToLower(e.Agency),
		})
	}
	m.snapshot.Store(&entries)
	return nil
}

func (m *memoryIndex) Nearest(ctx context.Context, req NearestRequest) (NearestPage, error) {
	entries := m.snapshot.Load()
	if entries == nil {
		return NearestPage{}, fmt.Errorf("MemoryIndex.Nearest: %w", apperrors.NewIndexError(BackendMemory, false, errSnapshotNotLoaded))
	}
	if err := ctx.Err(); err != nil {
		return NearestPage{}, fmt.Errorf("MemoryIndex.Nearest: %w", apperrors.NewIndexError(BackendMemory, false, err))
	}

	matches := make([]model.Candidate, 0)
	for _, e := range *entries {
		if len(req.Categories) > 0 && !slices.Contains(req.Categories, e.category) {
			continue
		}
		if len(req.Agencies) > 0 && !slices.Contains(req.Agencies, e.agency) {
			continue
		}
		d := Haversine(req.Origin, e.point)
		if req.RadiusMeters > 0 && d > float64(req.RadiusMeters) {
			continue
		}
		matches = append(matches, model.Candidate{ID: e.id, DistanceMeters: d})
	}
	SortCandidates(matches)

	page := NearestPage{Total: int64(len(matches))}
	start := min(req.Offset, len(matches))
	end := min(start+req.Limit, len(matches))
	page.Candidates = slices.Clone(matches[start:end])
	return page, nil
}

func (m *memoryIndex) Ping(_ context.Context) error {
	if m.snapshot.Load() == nil {
		return fmt.Errorf("MemoryIndex.Ping: %w", apperrors.NewIndexError(BackendMemory, false, errSnapshotNotLoaded))
	}
	return nil
}

// Start refreshes the snapshot on a ticker until Stop is called.
func (m *memoryIndex) Start() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-m.stop:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), m.interval)
				if err := m.Refresh(ctx); err != nil {
					m.logger.Warn("memory index refresh failed, keeping previous snapshot", zap.Error(err))
				}
				cancel()
			}
		}
	}()
}

func (m *memoryIndex) Stop() {
	close(m.stop)
	m.wg.Wait()
}

func NewMemoryIndex(loader EstablishmentLoader, refreshInterval time.Duration, logger *zap.Logger) MemoryIndex {
	return &memoryIndex{
		loader:   loader,
		interval: refreshInterval,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}
