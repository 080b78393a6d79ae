package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetyconnect_backend/internal/catalog"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/services/dto"
	"safetyconnect_backend/pkg/apperrors"
)

func electricalRequest() *dto.CreateRequestRequest {
	return &dto.CreateRequestRequest{
		ClientName:  "Công ty TNHH ABC",
		ClientEmail: "abc@example.com",
		ClientPhone: "0901234567",
		TrainingDetails: []dto.TrainingDetailInput{
			{Type: "An toàn điện", Group: catalog.TrainingGroups[2], Participants: 25},
		},
		PreferredTime:    "T11/2025",
		Location:         "KCN Tân Bình, TP. Hồ Chí Minh",
		SubscribesEmails: true,
	}
}

func TestCreateRequestNotifiesMatchedPartners(t *testing.T) {
	repos := newFakeRepos()
	repos.partners.partners = []models.PartnerProfile{
		approvedPartner("p1", "p1@example.com", "An toàn điện"),
		approvedPartner("p2", "p2@example.com", "Sơ cấp cứu"),
	}

	svc := NewRequestService(repos.factory(), testNotifier(t))

	resp, err := svc.Create(context.Background(), nil, electricalRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)

	require.Len(t, repos.mail.jobs, 1)
	assert.Equal(t, []string{"p1@example.com"}, repos.mail.jobs[0].GetRecipients())
	assert.Contains(t, repos.mail.jobs[0].HTML, "An toàn điện")
}

func TestCreateRequestSurvivesEnqueueFailure(t *testing.T) {
	repos := newFakeRepos()
	repos.partners.partners = []models.PartnerProfile{
		approvedPartner("p1", "p1@example.com", "An toàn điện"),
	}
	repos.mail.failEnqueue = true

	svc := NewRequestService(repos.factory(), testNotifier(t))

	resp, err := svc.Create(context.Background(), nil, electricalRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Len(t, repos.requests.requests, 1)
	assert.Empty(t, repos.mail.jobs)
}

func TestCreateRequestSubstitutesCustomType(t *testing.T) {
	repos := newFakeRepos()
	repos.partners.partners = []models.PartnerProfile{
		approvedPartner("p1", "general@example.com", catalog.GeneralCapability),
	}

	svc := NewRequestService(repos.factory(), testNotifier(t))

	req := electricalRequest()
	req.TrainingDetails = []dto.TrainingDetailInput{
		{
			Type:         catalog.CustomTrainingType,
			CustomType:   "An toàn bức xạ",
			Group:        catalog.TrainingGroups[3],
			Participants: 12,
		},
	}

	resp, err := svc.Create(context.Background(), nil, req)
	require.NoError(t, err)
	require.Len(t, resp.TrainingDetails, 1)
	assert.Equal(t, "An toàn bức xạ", resp.TrainingDetails[0].Type)

	// The general capability partner receives the custom request.
	require.Len(t, repos.mail.jobs, 1)
	assert.Equal(t, []string{"general@example.com"}, repos.mail.jobs[0].GetRecipients())
}

func TestUnlockRequiresApprovedPartner(t *testing.T) {
	repos := newFakeRepos()
	pending := approvedPartner("p1", "p1@example.com", "An toàn điện")
	pending.Status = models.PartnerStatusPending
	repos.partners.partners = []models.PartnerProfile{pending}

	svc := NewRequestService(repos.factory(), testNotifier(t))

	resp, err := svc.Create(context.Background(), nil, electricalRequest())
	require.NoError(t, err)

	_, err = svc.Unlock(context.Background(), nil, resp.ID, "p1")
	assert.ErrorIs(t, err, apperrors.ErrPartnerNotApproved)
}

func TestUnlockIsIdempotent(t *testing.T) {
	repos := newFakeRepos()
	repos.partners.partners = []models.PartnerProfile{
		approvedPartner("p1", "p1@example.com", "An toàn điện"),
	}

	svc := NewRequestService(repos.factory(), testNotifier(t))

	created, err := svc.Create(context.Background(), nil, electricalRequest())
	require.NoError(t, err)

	first, err := svc.Unlock(context.Background(), nil, created.ID, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, first.ViewedBy)
	assert.Equal(t, "Công ty TNHH ABC", first.ClientName)

	second, err := svc.Unlock(context.Background(), nil, created.ID, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, second.ViewedBy)

	// Only the first unlock writes.
	assert.Len(t, repos.requests.saved, 1)
}

func TestListRedactsContactForStrangers(t *testing.T) {
	repos := newFakeRepos()
	repos.partners.partners = []models.PartnerProfile{
		approvedPartner("p1", "p1@example.com", "An toàn điện"),
	}

	svc := NewRequestService(repos.factory(), testNotifier(t))

	created, err := svc.Create(context.Background(), nil, electricalRequest())
	require.NoError(t, err)
	_, err = svc.Unlock(context.Background(), nil, created.ID, "p1")
	require.NoError(t, err)

	asStranger, err := svc.List(context.Background(), nil, &dto.ListRequestsQuery{}, "p2", false)
	require.NoError(t, err)
	require.Len(t, asStranger, 1)
	assert.Empty(t, asStranger[0].ClientEmail)

	asUnlocker, err := svc.List(context.Background(), nil, &dto.ListRequestsQuery{}, "p1", false)
	require.NoError(t, err)
	assert.Equal(t, "abc@example.com", asUnlocker[0].ClientEmail)

	asAdmin, err := svc.List(context.Background(), nil, &dto.ListRequestsQuery{}, "", true)
	require.NoError(t, err)
	assert.Equal(t, "abc@example.com", asAdmin[0].ClientEmail)
}
