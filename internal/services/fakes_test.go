package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"safetyconnect_backend/internal/email"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/repositories"
)

// Test fixtures: in-memory repository fakes wired through a RepoFactory
// that ignores the db handle.

type fakeRequestRepo struct {
	requests []models.TrainingRequest
	saved    []string
	nextID   int
}

func (f *fakeRequestRepo) Create(ctx context.Context, r *models.TrainingRequest) error {
	f.nextID++
	r.ID = requestID(f.nextID)
	r.CreatedAt = time.Now()
	f.requests = append(f.requests, *r)
	return nil
}

func requestID(n int) string {
	return "req-" + string(rune('0'+n))
}

func (f *fakeRequestRepo) FindByID(ctx context.Context, id string) (*models.TrainingRequest, error) {
	for i := range f.requests {
		if f.requests[i].ID == id {
			r := f.requests[i]
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRequestRepo) ListAll(ctx context.Context) ([]models.TrainingRequest, error) {
	out := make([]models.TrainingRequest, len(f.requests))
	copy(out, f.requests)
	return out, nil
}

func (f *fakeRequestRepo) Save(ctx context.Context, r *models.TrainingRequest) error {
	f.saved = append(f.saved, r.ID)
	for i := range f.requests {
		if f.requests[i].ID == r.ID {
			f.requests[i] = *r
		}
	}
	return nil
}

func (f *fakeRequestRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeRequestRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.requests)), nil
}
func (f *fakeRequestRepo) CountUrgent(ctx context.Context) (int64, error) {
	var n int64
	for i := range f.requests {
		if f.requests[i].Urgent {
			n++
		}
	}
	return n, nil
}

type fakePartnerRepo struct {
	partners []models.PartnerProfile
}

func (f *fakePartnerRepo) Create(ctx context.Context, p *models.PartnerProfile) error {
	f.partners = append(f.partners, *p)
	return nil
}

func (f *fakePartnerRepo) FindByID(ctx context.Context, id string) (*models.PartnerProfile, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePartnerRepo) FindByUserID(ctx context.Context, userID string) (*models.PartnerProfile, error) {
	for i := range f.partners {
		if f.partners[i].UserID == userID {
			p := f.partners[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePartnerRepo) List(ctx context.Context, status models.PartnerStatus) ([]models.PartnerProfile, error) {
	if status == "" {
		return f.partners, nil
	}
	var out []models.PartnerProfile
	for i := range f.partners {
		if f.partners[i].Status == status {
			out = append(out, f.partners[i])
		}
	}
	return out, nil
}

func (f *fakePartnerRepo) ListAll(ctx context.Context) ([]models.PartnerProfile, error) {
	return f.partners, nil
}

func (f *fakePartnerRepo) Save(ctx context.Context, p *models.PartnerProfile) error {
	for i := range f.partners {
		if f.partners[i].UserID == p.UserID {
			f.partners[i] = *p
		}
	}
	return nil
}

func (f *fakePartnerRepo) Delete(ctx context.Context, userID string) error { return nil }

func (f *fakePartnerRepo) CountByStatus(ctx context.Context, status models.PartnerStatus) (int64, error) {
	var n int64
	for i := range f.partners {
		if f.partners[i].Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakePartnerRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.PartnerProfile, error) {
	var out []models.PartnerProfile
	for i := range f.partners {
		p := f.partners[i]
		if p.Status == models.PartnerStatusPending && p.CreatedAt.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeQuoteRepo struct {
	quotes []models.Quote
}

func (f *fakeQuoteRepo) Create(ctx context.Context, q *models.Quote) error {
	q.ID = "quote-1"
	f.quotes = append(f.quotes, *q)
	return nil
}

func (f *fakeQuoteRepo) FindByRequestAndPartner(ctx context.Context, requestID, partnerID string) (*models.Quote, error) {
	for i := range f.quotes {
		if f.quotes[i].RequestID == requestID && f.quotes[i].PartnerID == partnerID {
			q := f.quotes[i]
			return &q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuoteRepo) ListByRequest(ctx context.Context, requestID string) ([]models.Quote, error) {
	return f.quotes, nil
}

func (f *fakeQuoteRepo) ListByPartner(ctx context.Context, partnerID string) ([]models.Quote, error) {
	return f.quotes, nil
}

type fakeChatRepo struct {
	rooms      []models.ChatRoom
	messages   []models.ChatMessage
	failCreate bool
	touched    int
	resets     []bool
}

func (f *fakeChatRepo) FindRoom(ctx context.Context, requestID, partnerID string) (*models.ChatRoom, error) {
	for i := range f.rooms {
		if f.rooms[i].RequestID == requestID && f.rooms[i].PartnerID == partnerID {
			r := f.rooms[i]
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeChatRepo) FindRoomByID(ctx context.Context, roomID string) (*models.ChatRoom, error) {
	for i := range f.rooms {
		if f.rooms[i].ID == roomID {
			r := f.rooms[i]
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeChatRepo) CreateRoom(ctx context.Context, room *models.ChatRoom) error {
	if f.failCreate {
		return errors.New("room create refused")
	}
	room.ID = "room-1"
	f.rooms = append(f.rooms, *room)
	return nil
}

func (f *fakeChatRepo) ListRoomsByPartner(ctx context.Context, partnerID string) ([]models.ChatRoom, error) {
	return f.rooms, nil
}

func (f *fakeChatRepo) ListAllRooms(ctx context.Context) ([]models.ChatRoom, error) {
	return f.rooms, nil
}

func (f *fakeChatRepo) CreateMessage(ctx context.Context, msg *models.ChatMessage) error {
	msg.ID = "msg-1"
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeChatRepo) ListMessages(ctx context.Context, roomID string) ([]models.ChatMessage, error) {
	return f.messages, nil
}

func (f *fakeChatRepo) TouchRoom(ctx context.Context, roomID, lastMessage string, at time.Time, senderIsPartner bool) error {
	f.touched++
	return nil
}

func (f *fakeChatRepo) ResetUnread(ctx context.Context, roomID string, partnerSide bool) error {
	f.resets = append(f.resets, partnerSide)
	return nil
}

func (f *fakeChatRepo) SumUnreadPartner(ctx context.Context, partnerID string) (int64, error) {
	return 0, nil
}

func (f *fakeChatRepo) SumUnreadClient(ctx context.Context) (int64, error) { return 0, nil }

type fakeMailRepo struct {
	jobs        []models.MailJob
	failEnqueue bool
}

func (f *fakeMailRepo) Enqueue(ctx context.Context, job *models.MailJob) error {
	if f.failEnqueue {
		return errors.New("mail queue unavailable")
	}
	job.Status = models.MailJobStatusQueued
	f.jobs = append(f.jobs, *job)
	return nil
}

func (f *fakeMailRepo) NextBatch(ctx context.Context, limit, maxAttempts int) ([]models.MailJob, error) {
	return nil, nil
}
func (f *fakeMailRepo) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeMailRepo) MarkFailed(ctx context.Context, id string, attempt int, errMsg string) error {
	return nil
}
func (f *fakeMailRepo) CountByStatus(ctx context.Context, status models.MailJobStatus) (int64, error) {
	return 0, nil
}

// fakeRepos bundles the fakes behind a RepoFactory.
type fakeRepos struct {
	requests *fakeRequestRepo
	partners *fakePartnerRepo
	quotes   *fakeQuoteRepo
	chats    *fakeChatRepo
	mail     *fakeMailRepo
}

func newFakeRepos() *fakeRepos {
	return &fakeRepos{
		requests: &fakeRequestRepo{},
		partners: &fakePartnerRepo{},
		quotes:   &fakeQuoteRepo{},
		chats:    &fakeChatRepo{},
		mail:     &fakeMailRepo{},
	}
}

func (f *fakeRepos) factory() RepoFactory {
	return func(db *gorm.DB) *repositories.Repositories {
		return &repositories.Repositories{
			Requests: f.requests,
			Partners: f.partners,
			Quotes:   f.quotes,
			Chats:    f.chats,
			MailJobs: f.mail,
		}
	}
}

func testNotifier(t *testing.T) *notifier {
	t.Helper()
	tm, err := email.NewTemplateManager(email.Config{
		SMTPHost:  "localhost",
		SMTPPort:  587,
		FromEmail: "noreply@safetyconnect.vn",
	})
	require.NoError(t, err)
	return newNotifier(tm)
}

func approvedPartner(userID, emailAddr string, capabilities ...string) models.PartnerProfile {
	p := models.PartnerProfile{
		UserID:           userID,
		Email:            emailAddr,
		CompanyName:      "Trung tâm ATLD " + userID,
		TaxID:            "031234" + userID,
		Status:           models.PartnerStatusApproved,
		Membership:       models.MembershipFree,
		SubscribesEmails: true,
	}
	p.SetCapabilities(capabilities)
	return p
}
