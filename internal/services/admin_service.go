package services

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/services/dto"
	"safetyconnect_backend/pkg/apperrors"
)

// stalePartnerAge is how long a partner may sit pending before the
// dashboard flags it.
const stalePartnerAge = 72 * time.Hour

type AdminService interface {
	Dashboard(ctx context.Context, db *gorm.DB) (*dto.DashboardResponse, error)
}

type adminService struct {
	repos RepoFactory
}

func NewAdminService(repos RepoFactory) AdminService {
	return &adminService{repos: repos}
}

func (s *adminService) Dashboard(ctx context.Context, db *gorm.DB) (*dto.DashboardResponse, error) {
	r := s.repos(db)

	totalRequests, err := r.Requests.Count(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	urgentRequests, err := r.Requests.CountUrgent(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	pending, err := r.Partners.CountByStatus(ctx, models.PartnerStatusPending)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	approved, err := r.Partners.CountByStatus(ctx, models.PartnerStatusApproved)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	rejected, err := r.Partners.CountByStatus(ctx, models.PartnerStatusRejected)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	snapshot, err := r.Requests.ListAll(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	stale, err := r.Partners.ListPendingOlderThan(ctx, time.Now().Add(-stalePartnerAge))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.DashboardResponse{
		TotalRequests:    totalRequests,
		UrgentRequests:   urgentRequests,
		TotalPartners:    pending + approved + rejected,
		PendingPartners:  pending,
		ApprovedPartners: approved,
		HotTypes:         hotTrainingTypes(snapshot, 3),
		Attention:        attentionItems(snapshot, stale),
	}, nil
}

// hotTrainingTypes ranks the most demanded training types with their share
// of all detail lines. Ties order alphabetically so the output is stable.
func hotTrainingTypes(requests []models.TrainingRequest, limit int) []dto.HotTrainingType {
	counts := make(map[string]int)
	total := 0
	for i := range requests {
		for _, t := range requests[i].TrainingTypes() {
			counts[t]++
			total++
		}
	}
	if total == 0 {
		return []dto.HotTrainingType{}
	}

	ranked := make([]dto.HotTrainingType, 0, len(counts))
	for t, c := range counts {
		ranked = append(ranked, dto.HotTrainingType{
			Type:  t,
			Count: c,
			Share: float64(c) / float64(total),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Type < ranked[j].Type
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// attentionItems flags pending partners older than the cutoff and requests
// nobody unlocked yet.
func attentionItems(requests []models.TrainingRequest, stalePartners []models.PartnerProfile) []dto.AttentionItem {
	now := time.Now()
	items := make([]dto.AttentionItem, 0, len(stalePartners))

	for i := range stalePartners {
		p := &stalePartners[i]
		items = append(items, dto.AttentionItem{
			Kind:    "stale_partner",
			ID:      p.UserID,
			Label:   p.DisplayName(),
			AgeDays: int(now.Sub(p.CreatedAt).Hours() / 24),
		})
	}

	for i := range requests {
		r := &requests[i]
		if len(r.GetViewedBy()) > 0 {
			continue
		}
		items = append(items, dto.AttentionItem{
			Kind:    "unseen_request",
			ID:      r.ID,
			Label:   r.Location,
			AgeDays: int(now.Sub(r.CreatedAt).Hours() / 24),
		})
	}

	return items
}
