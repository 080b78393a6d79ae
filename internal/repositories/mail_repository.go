package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"safetyconnect_backend/internal/models"
)

type MailJobRepository interface {
	Enqueue(ctx context.Context, job *models.MailJob) error
	// NextBatch picks deliverable jobs: queued ones plus failed ones that
	// still have attempts left, oldest first.
	NextBatch(ctx context.Context, limit, maxAttempts int) ([]models.MailJob, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, attempt int, errMsg string) error
	CountByStatus(ctx context.Context, status models.MailJobStatus) (int64, error)
}

type mailJobRepository struct {
	db *gorm.DB
}

func NewMailJobRepository(db *gorm.DB) MailJobRepository {
	return &mailJobRepository{db: db}
}

func (r *mailJobRepository) Enqueue(ctx context.Context, job *models.MailJob) error {
	job.Status = models.MailJobStatusQueued
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *mailJobRepository) NextBatch(ctx context.Context, limit, maxAttempts int) ([]models.MailJob, error) {
	var jobs []models.MailJob
	err := r.db.WithContext(ctx).
		Where("status = ? OR (status = ? AND attempts < ?)",
			models.MailJobStatusQueued, models.MailJobStatusFailed, maxAttempts).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *mailJobRepository) MarkSent(ctx context.Context, id string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.MailJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":   models.MailJobStatusSent,
			"sent_at":  &now,
			"last_err": "",
		}).Error
}

func (r *mailJobRepository) MarkFailed(ctx context.Context, id string, attempt int, errMsg string) error {
	return r.db.WithContext(ctx).Model(&models.MailJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":   models.MailJobStatusFailed,
			"attempts": attempt,
			"last_err": errMsg,
		}).Error
}

func (r *mailJobRepository) CountByStatus(ctx context.Context, status models.MailJobStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MailJob{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
