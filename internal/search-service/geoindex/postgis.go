package geoindex

import (
	apperrors "Proximity_Search_Microservice/internal/search-service/errors"
	"Proximity_Search_Microservice/internal/search-service/model"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pointExpr = "ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography"

type postgisRow struct {
	ID         int64
	DistanceM  float64
	TotalCount int64
}

type postgisIndex struct {
	db    *gorm.DB
	table string
}

func (p *postgisIndex) Name() string {
	return BackendPostGIS
}

func (p *postgisIndex) filtered(ctx context.Context, req NearestRequest) *gorm.DB {
	query := p.db.WithContext(ctx).Table(p.table)
	if req.RadiusMeters > 0 {
		query = query.Where("ST_DWithin(location, "+pointExpr+", ?)", req.Origin.Lng, req.Origin.Lat, req.RadiusMeters)
	}
	if len(req.Categories) > 0 {
		query = query.Where("LOWER(category) IN ?", req.Categories)
	}
	if len(req.Agencies) > 0 {
		query = query.Where("LOWER(agency) IN ?", req.Agencies)
	}
	return query
}

func (p *postgisIndex) Nearest(ctx context.Context, req NearestRequest) (NearestPage, error) {
	var rows []postgisRow
	result := p.filtered(ctx, req).
		Select("id, ST_Distance(location, "+pointExpr+") AS distance_m, COUNT(*) OVER() AS total_count", req.Origin.Lng, req.Origin.Lat).
		Order("distance_m ASC, id ASC").
		Limit(req.Limit).
		Offset(req.Offset).
		Scan(&rows)
	if result.Error != nil {
		return NearestPage{}, fmt.Errorf("PostgisIndex.Nearest: %w", classify(result.Error))
	}

	page := NearestPage{Candidates: make([]model.Candidate, 0, len(rows))}
	for _, row := range rows {
		page.Candidates = append(page.Candidates, model.Candidate{ID: row.ID, DistanceMeters: row.DistanceM})
	}
	if len(rows) > 0 {
		page.Total = rows[0].TotalCount
	} else if req.Offset > 0 {
		// the window count is lost when the page is past the end
		if err := p.filtered(ctx, req).Count(&page.Total).Error; err != nil {
			return NearestPage{}, fmt.Errorf("PostgisIndex.Nearest count: %w", classify(err))
		}
	}
	SortCandidates(page.Candidates)
	return page, nil
}

func (p *postgisIndex) Ping(ctx context.Context) error {
	var version string
	if err := p.db.WithContext(ctx).Raw("SELECT PostGIS_Version()").Scan(&version).Error; err != nil {
		return fmt.Errorf("PostgisIndex.Ping: %w", classify(err))
	}
	return nil
}

// classify marks schema-level failures (extension, type or table missing) as permanent.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UndefinedFunction, pgerrcode.UndefinedObject, pgerrcode.UndefinedTable:
			return apperrors.NewIndexError(BackendPostGIS, true, err)
		}
	}
	return apperrors.NewIndexError(BackendPostGIS, false, err)
}

// NewPostgisIndex expects table to carry a geography(Point, 4326) column named location.
func NewPostgisIndex(db *gorm.DB, table string) Index {
	return &postgisIndex{
		db:    db,
		table: table,
	}
}
