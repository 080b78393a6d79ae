package repositories

import (
	"context"

	"gorm.io/gorm"

	"safetyconnect_backend/internal/models"
)

type RequestRepository interface {
	Create(ctx context.Context, request *models.TrainingRequest) error
	FindByID(ctx context.Context, id string) (*models.TrainingRequest, error)
	// ListAll returns a full snapshot, newest first. Filtering and
	// sorting happen in memory through the algorithms package so the
	// listing semantics stay identical for every caller.
	ListAll(ctx context.Context) ([]models.TrainingRequest, error)
	Save(ctx context.Context, request *models.TrainingRequest) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountUrgent(ctx context.Context) (int64, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *models.TrainingRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id string) (*models.TrainingRequest, error) {
	var request models.TrainingRequest
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) ListAll(ctx context.Context) ([]models.TrainingRequest, error) {
	var requests []models.TrainingRequest
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) Save(ctx context.Context, request *models.TrainingRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *requestRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.TrainingRequest{}, "id = ?", id).Error
}

func (r *requestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TrainingRequest{}).Count(&count).Error
	return count, err
}

func (r *requestRepository) CountUrgent(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TrainingRequest{}).Where("urgent = ?", true).Count(&count).Error
	return count, err
}
