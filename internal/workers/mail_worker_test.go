package workers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetyconnect_backend/internal/email"
	"safetyconnect_backend/internal/models"
)

type fakeMailJobRepo struct {
	batch  []models.MailJob
	sent   []string
	failed map[string]string
}

func (f *fakeMailJobRepo) Enqueue(ctx context.Context, job *models.MailJob) error { return nil }

func (f *fakeMailJobRepo) NextBatch(ctx context.Context, limit, maxAttempts int) ([]models.MailJob, error) {
	return f.batch, nil
}

func (f *fakeMailJobRepo) MarkSent(ctx context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeMailJobRepo) MarkFailed(ctx context.Context, id string, attempt int, errMsg string) error {
	if f.failed == nil {
		f.failed = make(map[string]string)
	}
	f.failed[id] = errMsg
	return nil
}

func (f *fakeMailJobRepo) CountByStatus(ctx context.Context, status models.MailJobStatus) (int64, error) {
	return 0, nil
}

type fakeSender struct {
	sent    []*email.Message
	failFor map[string]error
}

func (f *fakeSender) Send(ctx context.Context, msg *email.Message) error {
	if err, ok := f.failFor[msg.Subject]; ok {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newJob(id, subject string, recipients ...string) models.MailJob {
	job := models.MailJob{Subject: subject, HTML: "<p>hi</p>"}
	job.ID = id
	job.SetRecipients(recipients)
	return job
}

func TestMailWorkerDrainSendsQueuedJobs(t *testing.T) {
	repo := &fakeMailJobRepo{
		batch: []models.MailJob{
			newJob("j1", "first", "a@example.com", "b@example.com"),
			newJob("j2", "second", "c@example.com"),
		},
	}
	sender := &fakeSender{}

	w := NewMailWorker(repo, sender, MailWorkerConfig{})
	w.drain(context.Background())

	require.Len(t, sender.sent, 2)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sender.sent[0].To)
	assert.Equal(t, []string{"j1", "j2"}, repo.sent)
	assert.Empty(t, repo.failed)
}

func TestMailWorkerDrainIsolatesFailures(t *testing.T) {
	repo := &fakeMailJobRepo{
		batch: []models.MailJob{
			newJob("j1", "bad", "a@example.com"),
			newJob("j2", "good", "b@example.com"),
		},
	}
	sender := &fakeSender{
		failFor: map[string]error{"bad": errors.New("smtp refused")},
	}

	w := NewMailWorker(repo, sender, MailWorkerConfig{})
	w.drain(context.Background())

	assert.Equal(t, []string{"j2"}, repo.sent)
	assert.Equal(t, "smtp refused", repo.failed["j1"])
}

func TestMailWorkerDrainFailsJobWithoutRecipients(t *testing.T) {
	job := models.MailJob{Subject: "empty", HTML: "<p>hi</p>"}
	job.ID = "j1"
	repo := &fakeMailJobRepo{batch: []models.MailJob{job}}
	sender := &fakeSender{}

	w := NewMailWorker(repo, sender, MailWorkerConfig{})
	w.drain(context.Background())

	assert.Empty(t, sender.sent)
	assert.Contains(t, repo.failed, "j1")
}

func TestNewMailWorkerAppliesDefaults(t *testing.T) {
	w := NewMailWorker(&fakeMailJobRepo{}, &fakeSender{}, MailWorkerConfig{})

	assert.Equal(t, 20, w.cfg.BatchSize)
	assert.Equal(t, 3, w.cfg.MaxAttempts)
	assert.Positive(t, w.cfg.Interval)
}
