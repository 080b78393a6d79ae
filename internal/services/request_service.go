package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"safetyconnect_backend/internal/algorithms"
	"safetyconnect_backend/internal/catalog"
	"safetyconnect_backend/internal/logger"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/services/dto"
	"safetyconnect_backend/pkg/apperrors"
)

type RequestService interface {
	// Create persists the request, then runs the best-effort partner
	// notification fan-out.
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateRequestRequest) (*dto.RequestResponse, error)
	// List filters and sorts a full snapshot in memory. Client contact is
	// redacted unless the viewer unlocked the request or is an admin.
	List(ctx context.Context, db *gorm.DB, query *dto.ListRequestsQuery, viewerID string, isAdmin bool) ([]*dto.RequestResponse, error)
	Get(ctx context.Context, db *gorm.DB, id, viewerID string, isAdmin bool) (*dto.RequestResponse, error)
	// Unlock records that an approved partner viewed the client contact.
	Unlock(ctx context.Context, db *gorm.DB, id, partnerUserID string) (*dto.RequestResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

type requestService struct {
	repos  RepoFactory
	notify *notifier
}

func NewRequestService(repos RepoFactory, notify *notifier) RequestService {
	return &requestService{repos: repos, notify: notify}
}

func (s *requestService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateRequestRequest) (*dto.RequestResponse, error) {
	details := make([]models.TrainingDetail, 0, len(req.TrainingDetails))
	for _, d := range req.TrainingDetails {
		detailType := d.Type
		// The "Khác" option carries the client's own wording, which
		// replaces the enumerated type before persistence and matching.
		if detailType == catalog.CustomTrainingType && strings.TrimSpace(d.CustomType) != "" {
			detailType = strings.TrimSpace(d.CustomType)
		}
		details = append(details, models.TrainingDetail{
			Type:         detailType,
			Group:        d.Group,
			Participants: d.Participants,
		})
	}

	request := &models.TrainingRequest{
		ClientName:       req.ClientName,
		ClientEmail:      req.ClientEmail,
		ClientPhone:      req.ClientPhone,
		TrainingDuration: req.TrainingDuration,
		PreferredTime:    req.PreferredTime,
		Description:      req.Description,
		Location:         req.Location,
		Urgent:           req.Urgent,
		SubscribesEmails: req.SubscribesEmails,
	}
	if err := request.SetDetails(details); err != nil {
		return nil, apperrors.InternalError(err)
	}

	r := s.repos(db)
	if err := r.Requests.Create(ctx, request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "training request created",
		"request_id", request.ID,
		"urgent", request.Urgent,
		"participants", request.TotalParticipants())

	s.fanOut(ctx, db, request)

	return dto.NewRequestResponse(request, true), nil
}

// fanOut matches partners and enqueues one notification mail. The request
// is already durable; any failure here is logged and dropped.
func (s *requestService) fanOut(ctx context.Context, db *gorm.DB, request *models.TrainingRequest) {
	r := s.repos(db)

	partners, err := r.Partners.ListAll(ctx)
	if err != nil {
		logger.CtxWithError(ctx, "fan-out: failed to load partners", err, "request_id", request.ID)
		return
	}

	matched := algorithms.MatchPartners(request.TrainingTypes(), partners)
	emails := algorithms.MatchedEmails(matched)
	if len(emails) == 0 {
		logger.CtxInfo(ctx, "fan-out: no matching partners", "request_id", request.ID)
		return
	}

	s.notify.NotifyPartners(ctx, r.MailJobs, request, emails)
}

func (s *requestService) List(ctx context.Context, db *gorm.DB, query *dto.ListRequestsQuery, viewerID string, isAdmin bool) ([]*dto.RequestResponse, error) {
	snapshot, err := s.repos(db).Requests.ListAll(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	state := algorithms.FilterState{
		TrainingTypes:   query.Types,
		Provinces:       query.Provinces,
		ParticipantsMin: query.ParticipantsMin,
		ParticipantsMax: query.ParticipantsMax,
		Urgent:          query.Urgent,
		DateFrom:        query.DateFrom,
		DateTo:          query.DateTo,
		Query:           query.Query,
	}
	filtered := algorithms.FilterRequests(snapshot, state)
	sorted := algorithms.SortRequests(filtered, algorithms.SortKey(query.Sort))

	out := make([]*dto.RequestResponse, 0, len(sorted))
	for i := range sorted {
		out = append(out, dto.NewRequestResponse(&sorted[i], canSeeContact(&sorted[i], viewerID, isAdmin)))
	}
	return out, nil
}

func (s *requestService) Get(ctx context.Context, db *gorm.DB, id, viewerID string, isAdmin bool) (*dto.RequestResponse, error) {
	request, err := s.findRequest(ctx, db, id)
	if err != nil {
		return nil, err
	}
	return dto.NewRequestResponse(request, canSeeContact(request, viewerID, isAdmin)), nil
}

func (s *requestService) Unlock(ctx context.Context, db *gorm.DB, id, partnerUserID string) (*dto.RequestResponse, error) {
	r := s.repos(db)

	partner, err := r.Partners.FindByUserID(ctx, partnerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if partner.Status != models.PartnerStatusApproved {
		return nil, apperrors.ErrPartnerNotApproved
	}

	request, err := s.findRequest(ctx, db, id)
	if err != nil {
		return nil, err
	}

	if request.AddViewedBy(partner.UserID) {
		if err := r.Requests.Save(ctx, request); err != nil {
			return nil, apperrors.InternalError(err)
		}
		logger.CtxInfo(ctx, "request unlocked", "request_id", id, "partner_id", partner.UserID)
	}

	return dto.NewRequestResponse(request, true), nil
}

func (s *requestService) Delete(ctx context.Context, db *gorm.DB, id string) error {
	if _, err := s.findRequest(ctx, db, id); err != nil {
		return err
	}
	if err := s.repos(db).Requests.Delete(ctx, id); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "training request deleted", "request_id", id)
	return nil
}

func (s *requestService) findRequest(ctx context.Context, db *gorm.DB, id string) (*models.TrainingRequest, error) {
	request, err := s.repos(db).Requests.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return request, nil
}

func canSeeContact(request *models.TrainingRequest, viewerID string, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	return viewerID != "" && request.ViewedByPartner(viewerID)
}
