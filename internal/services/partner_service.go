package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"safetyconnect_backend/internal/logger"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/services/dto"
	"safetyconnect_backend/pkg/apperrors"
)

type PartnerService interface {
	List(ctx context.Context, db *gorm.DB, status models.PartnerStatus) ([]*dto.PartnerResponse, error)
	Get(ctx context.Context, db *gorm.DB, userID string) (*dto.PartnerResponse, error)
	// UpdateStatus applies the admin decision. The transition away from
	// pending is one-way; a second decision is rejected.
	UpdateStatus(ctx context.Context, db *gorm.DB, userID string, decision models.PartnerStatus) (*dto.PartnerResponse, error)
	// SetSubscription toggles the partner's own email notifications.
	SetSubscription(ctx context.Context, db *gorm.DB, userID string, subscribes bool) (*dto.PartnerResponse, error)
	Delete(ctx context.Context, db *gorm.DB, userID string) error
}

type partnerService struct {
	repos  RepoFactory
	notify *notifier
}

func NewPartnerService(repos RepoFactory, notify *notifier) PartnerService {
	return &partnerService{repos: repos, notify: notify}
}

func (s *partnerService) List(ctx context.Context, db *gorm.DB, status models.PartnerStatus) ([]*dto.PartnerResponse, error) {
	partners, err := s.repos(db).Partners.List(ctx, status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.PartnerResponse, 0, len(partners))
	for i := range partners {
		out = append(out, dto.NewPartnerResponse(&partners[i]))
	}
	return out, nil
}

func (s *partnerService) Get(ctx context.Context, db *gorm.DB, userID string) (*dto.PartnerResponse, error) {
	partner, err := s.findPartner(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewPartnerResponse(partner), nil
}

func (s *partnerService) UpdateStatus(ctx context.Context, db *gorm.DB, userID string, decision models.PartnerStatus) (*dto.PartnerResponse, error) {
	if decision != models.PartnerStatusApproved && decision != models.PartnerStatusRejected {
		return nil, apperrors.ErrInvalidStatus("partner", "Decision must be approved or rejected")
	}

	r := s.repos(db)
	partner, err := s.findPartner(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	if partner.Status != models.PartnerStatusPending {
		return nil, apperrors.ErrPartnerStatusFinal
	}

	partner.Status = decision
	if err := r.Partners.Save(ctx, partner); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "partner status updated", "partner_id", userID, "status", decision)

	if decision == models.PartnerStatusApproved {
		s.notify.NotifyPartnerApproved(ctx, r.MailJobs, partner)
	}

	return dto.NewPartnerResponse(partner), nil
}

func (s *partnerService) SetSubscription(ctx context.Context, db *gorm.DB, userID string, subscribes bool) (*dto.PartnerResponse, error) {
	partner, err := s.findPartner(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	partner.SubscribesEmails = subscribes
	if err := s.repos(db).Partners.Save(ctx, partner); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "partner subscription updated", "partner_id", userID, "subscribes", subscribes)
	return dto.NewPartnerResponse(partner), nil
}

func (s *partnerService) Delete(ctx context.Context, db *gorm.DB, userID string) error {
	if _, err := s.findPartner(ctx, db, userID); err != nil {
		return err
	}

	// Profile and account go together.
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepos := s.repos(tx)
		if err := txRepos.Partners.Delete(ctx, userID); err != nil {
			return err
		}
		return txRepos.Users.Delete(ctx, userID)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "partner deleted", "partner_id", userID)
	return nil
}

func (s *partnerService) findPartner(ctx context.Context, db *gorm.DB, userID string) (*models.PartnerProfile, error) {
	partner, err := s.repos(db).Partners.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return partner, nil
}
