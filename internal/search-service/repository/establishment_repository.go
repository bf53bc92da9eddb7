package repository

import (
	"Proximity_Search_Microservice/internal/search-service/model"
	"context"
	"fmt"

	"gorm.io/gorm"
)

//go:generate mockgen -source=establishment_repository.go -destination=../mocks/repository/mock_establishment_repository.go -package=mockrepository
type EstablishmentRepository interface {
	// ListByName returns one page in the default ordering (name, then id) and the total
	// number of matches.
	ListByName(ctx context.Context, categories []string, agencies []string, limit int, offset int) ([]model.Establishment, int64, error)
	GetByIDs(ctx context.Context, ids []int64) ([]model.Establishment, error)
	ListAll(ctx context.Context) ([]model.Establishment, error)
}

type establishmentRepository struct {
	db *gorm.DB
}

func (r *establishmentRepository) filtered(ctx context.Context, categories []string, agencies []string) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Establishment{})
	if len(categories) > 0 {
		query = query.Where("LOWER(category) IN ?", categories)
	}
	if len(agencies) > 0 {
		query = query.Where("LOWER(agency) IN ?", agencies)
	}
	return query
}

func (r *establishmentRepository) ListByName(ctx context.Context, categories []string, agencies []string, limit int, offset int) ([]model.Establishment, int64, error) {
	var total int64
	if err := r.filtered(ctx, categories, agencies).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("EstablishmentRepository.ListByName count: %w", err)
	}
	var establishments []model.Establishment
	if total == 0 || offset >= int(total) {
		return establishments, total, nil
	}
	result := r.filtered(ctx, categories, agencies).
		Order("name ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&establishments)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("EstablishmentRepository.ListByName: %w", result.Error)
	}
	return establishments, total, nil
}

func (r *establishmentRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Establishment, error) {
	var establishments []model.Establishment
	if len(ids) == 0 {
		return establishments, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&establishments)
	if result.Error != nil {
		return nil, fmt.Errorf("EstablishmentRepository.GetByIDs: %w", result.Error)
	}
	return establishments, nil
}

func (r *establishmentRepository) ListAll(ctx context.Context) ([]model.Establishment, error) {
	var establishments []model.Establishment
	result := r.db.WithContext(ctx).
		Select("id", "latitude", "longitude", "category", "agency").
		Find(&establishments)
	if result.Error != nil {
		return nil, fmt.Errorf("EstablishmentRepository.ListAll: %w", result.Error)
	}
	return establishments, nil
}

func NewEstablishmentRepository(db *gorm.DB) EstablishmentRepository {
	return &establishmentRepository{
		db: db,
	}
}
