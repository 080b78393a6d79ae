package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"safetyconnect_backend/internal/models"
)

type PartnerRepository interface {
	Create(ctx context.Context, partner *models.PartnerProfile) error
	FindByID(ctx context.Context, id string) (*models.PartnerProfile, error)
	FindByUserID(ctx context.Context, userID string) (*models.PartnerProfile, error)
	List(ctx context.Context, status models.PartnerStatus) ([]models.PartnerProfile, error)
	ListAll(ctx context.Context) ([]models.PartnerProfile, error)
	Save(ctx context.Context, partner *models.PartnerProfile) error
	Delete(ctx context.Context, userID string) error
	CountByStatus(ctx context.Context, status models.PartnerStatus) (int64, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.PartnerProfile, error)
}

type partnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) PartnerRepository {
	return &partnerRepository{db: db}
}

func (r *partnerRepository) Create(ctx context.Context, partner *models.PartnerProfile) error {
	return r.db.WithContext(ctx).Create(partner).Error
}

func (r *partnerRepository) FindByID(ctx context.Context, id string) (*models.PartnerProfile, error) {
	var partner models.PartnerProfile
	if err := r.db.WithContext(ctx).First(&partner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *partnerRepository) FindByUserID(ctx context.Context, userID string) (*models.PartnerProfile, error) {
	var partner models.PartnerProfile
	if err := r.db.WithContext(ctx).First(&partner, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *partnerRepository) List(ctx context.Context, status models.PartnerStatus) ([]models.PartnerProfile, error) {
	var partners []models.PartnerProfile
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&partners).Error; err != nil {
		return nil, err
	}
	return partners, nil
}

func (r *partnerRepository) ListAll(ctx context.Context) ([]models.PartnerProfile, error) {
	return r.List(ctx, "")
}

func (r *partnerRepository) Save(ctx context.Context, partner *models.PartnerProfile) error {
	return r.db.WithContext(ctx).Save(partner).Error
}

func (r *partnerRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Delete(&models.PartnerProfile{}, "user_id = ?", userID).Error
}

func (r *partnerRepository) CountByStatus(ctx context.Context, status models.PartnerStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PartnerProfile{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *partnerRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.PartnerProfile, error) {
	var partners []models.PartnerProfile
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", models.PartnerStatusPending, cutoff).
		Order("created_at ASC").
		Find(&partners).Error
	if err != nil {
		return nil, err
	}
	return partners, nil
}
