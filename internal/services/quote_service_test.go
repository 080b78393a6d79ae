package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/services/dto"
	"safetyconnect_backend/pkg/apperrors"
)

func submitFixture(t *testing.T) (*fakeRepos, QuoteService, string) {
	t.Helper()
	repos := newFakeRepos()
	repos.partners.partners = []models.PartnerProfile{
		approvedPartner("p1", "p1@example.com", "An toàn điện"),
	}

	requestSvc := NewRequestService(repos.factory(), testNotifier(t))
	created, err := requestSvc.Create(context.Background(), nil, electricalRequest())
	require.NoError(t, err)

	// Drop the fan-out job so quote tests see only their own mail.
	repos.mail.jobs = nil

	return repos, NewQuoteService(repos.factory(), testNotifier(t)), created.ID
}

func TestSubmitQuoteCreatesRoomMessageAndMail(t *testing.T) {
	repos, svc, requestID := submitFixture(t)

	quote, err := svc.Submit(context.Background(), nil, requestID, "p1", &dto.SubmitQuoteRequest{
		Price:    15500000,
		Timeline: "2 tuần",
	})
	require.NoError(t, err)

	assert.Equal(t, "VND", quote.Currency)
	assert.Equal(t, models.QuoteStatusPending, quote.Status)

	require.Len(t, repos.chats.rooms, 1)
	assert.Equal(t, requestID, repos.chats.rooms[0].RequestID)

	require.Len(t, repos.chats.messages, 1)
	assert.Contains(t, repos.chats.messages[0].Message, "15.500.000 ₫")
	assert.Equal(t, models.UserRolePartner, repos.chats.messages[0].SenderRole)
	assert.Equal(t, 1, repos.chats.touched)

	require.Len(t, repos.mail.jobs, 1)
	assert.Equal(t, []string{"abc@example.com"}, repos.mail.jobs[0].GetRecipients())
}

func TestSubmitQuoteRejectsDuplicate(t *testing.T) {
	_, svc, requestID := submitFixture(t)

	_, err := svc.Submit(context.Background(), nil, requestID, "p1", &dto.SubmitQuoteRequest{Price: 100})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), nil, requestID, "p1", &dto.SubmitQuoteRequest{Price: 200})
	assert.ErrorIs(t, err, apperrors.ErrQuoteAlreadySubmitted)
}

func TestSubmitQuoteRequiresApproval(t *testing.T) {
	repos, svc, requestID := submitFixture(t)

	pending := approvedPartner("p2", "p2@example.com", "Sơ cấp cứu")
	pending.Status = models.PartnerStatusPending
	repos.partners.partners = append(repos.partners.partners, pending)

	_, err := svc.Submit(context.Background(), nil, requestID, "p2", &dto.SubmitQuoteRequest{Price: 100})
	assert.ErrorIs(t, err, apperrors.ErrPartnerNotApproved)
}

func TestSubmitQuoteSurvivesRoomFailure(t *testing.T) {
	repos, svc, requestID := submitFixture(t)
	repos.chats.failCreate = true

	quote, err := svc.Submit(context.Background(), nil, requestID, "p1", &dto.SubmitQuoteRequest{Price: 100})
	require.NoError(t, err)
	assert.NotEmpty(t, quote.ID)

	// The quote is durable, the room is missing, and the client mail is
	// still enqueued: each side effect is independent.
	assert.Len(t, repos.quotes.quotes, 1)
	assert.Empty(t, repos.chats.rooms)
	assert.Len(t, repos.mail.jobs, 1)
}

func TestSubmitQuoteSurvivesMailFailure(t *testing.T) {
	repos, svc, requestID := submitFixture(t)
	repos.mail.failEnqueue = true

	quote, err := svc.Submit(context.Background(), nil, requestID, "p1", &dto.SubmitQuoteRequest{Price: 100})
	require.NoError(t, err)
	assert.NotEmpty(t, quote.ID)

	assert.Len(t, repos.quotes.quotes, 1)
	assert.Len(t, repos.chats.messages, 1)
	assert.Empty(t, repos.mail.jobs)
}

func TestSubmitQuoteSkipsMailWhenClientUnsubscribed(t *testing.T) {
	repos := newFakeRepos()
	repos.partners.partners = []models.PartnerProfile{
		approvedPartner("p1", "p1@example.com", "An toàn điện"),
	}

	requestSvc := NewRequestService(repos.factory(), testNotifier(t))
	req := electricalRequest()
	req.SubscribesEmails = false
	created, err := requestSvc.Create(context.Background(), nil, req)
	require.NoError(t, err)
	repos.mail.jobs = nil

	svc := NewQuoteService(repos.factory(), testNotifier(t))
	_, err = svc.Submit(context.Background(), nil, created.ID, "p1", &dto.SubmitQuoteRequest{Price: 100})
	require.NoError(t, err)

	assert.Empty(t, repos.mail.jobs)
}
