package repositories

import (
	"context"

	"gorm.io/gorm"

	"safetyconnect_backend/internal/models"
)

type QuoteRepository interface {
	Create(ctx context.Context, quote *models.Quote) error
	FindByRequestAndPartner(ctx context.Context, requestID, partnerID string) (*models.Quote, error)
	ListByRequest(ctx context.Context, requestID string) ([]models.Quote, error)
	ListByPartner(ctx context.Context, partnerID string) ([]models.Quote, error)
}

type quoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *quoteRepository) FindByRequestAndPartner(ctx context.Context, requestID, partnerID string) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).
		Where("request_id = ? AND partner_id = ?", requestID, partnerID).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *quoteRepository) ListByRequest(ctx context.Context, requestID string) ([]models.Quote, error) {
	var quotes []models.Quote
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at DESC").
		Find(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *quoteRepository) ListByPartner(ctx context.Context, partnerID string) ([]models.Quote, error) {
	var quotes []models.Quote
	err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at DESC").
		Find(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}
