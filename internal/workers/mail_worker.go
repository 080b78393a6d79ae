// Package workers runs the background jobs of the platform. The mail
// worker drains the mail_jobs queue so HTTP handlers never block on SMTP.
package workers

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"safetyconnect_backend/internal/email"
	"safetyconnect_backend/internal/logger"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/repositories"
)

// MailWorkerConfig controls the drain loop.
type MailWorkerConfig struct {
	Interval    time.Duration
	BatchSize   int
	MaxAttempts int
}

// MailWorker periodically picks up queued mail jobs and pushes them
// through the configured sender. Failed jobs are retried on later runs
// until they exhaust MaxAttempts.
type MailWorker struct {
	jobs      repositories.MailJobRepository
	sender    email.Sender
	cfg       MailWorkerConfig
	scheduler *gocron.Scheduler
}

func NewMailWorker(jobs repositories.MailJobRepository, sender email.Sender, cfg MailWorkerConfig) *MailWorker {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	return &MailWorker{
		jobs:   jobs,
		sender: sender,
		cfg:    cfg,
	}
}

// Start schedules the drain loop. It returns immediately; jobs run on
// the scheduler's goroutines until Stop is called.
func (w *MailWorker) Start(ctx context.Context) error {
	w.scheduler = gocron.NewScheduler(time.UTC)

	_, err := w.scheduler.Every(w.cfg.Interval).Do(func() {
		w.drain(ctx)
	})
	if err != nil {
		return err
	}

	w.scheduler.StartAsync()
	logger.WorkerLog("mail", "started",
		"interval", w.cfg.Interval.String(),
		"batch_size", w.cfg.BatchSize)
	return nil
}

// Stop halts the scheduler. In-flight sends finish.
func (w *MailWorker) Stop() {
	if w.scheduler != nil {
		w.scheduler.Stop()
	}
	logger.WorkerLog("mail", "stopped")
}

// drain processes one batch. Each job succeeds or fails on its own; a
// bad recipient never blocks the rest of the queue.
func (w *MailWorker) drain(ctx context.Context) {
	batch, err := w.jobs.NextBatch(ctx, w.cfg.BatchSize, w.cfg.MaxAttempts)
	if err != nil {
		logger.Error("failed to fetch mail batch", "error", err)
		return
	}
	if len(batch) == 0 {
		return
	}

	logger.WorkerLog("mail", "draining batch", "jobs", len(batch))

	for i := range batch {
		job := &batch[i]

		recipients := job.GetRecipients()
		if len(recipients) == 0 {
			w.fail(ctx, job, "no valid recipients")
			continue
		}

		sendErr := w.sender.Send(ctx, &email.Message{
			To:      recipients,
			Subject: job.Subject,
			HTML:    job.HTML,
		})
		if sendErr != nil {
			w.fail(ctx, job, sendErr.Error())
			continue
		}

		if err := w.jobs.MarkSent(ctx, job.ID); err != nil {
			logger.Error("failed to mark mail job sent", "job_id", job.ID, "error", err)
			continue
		}
		logger.WorkerLog("mail", "job sent", "job_id", job.ID, "recipients", len(recipients))
	}
}

func (w *MailWorker) fail(ctx context.Context, job *models.MailJob, reason string) {
	if err := w.jobs.MarkFailed(ctx, job.ID, job.Attempts+1, reason); err != nil {
		logger.Error("failed to mark mail job failed", "job_id", job.ID, "error", err)
		return
	}
	logger.WorkerLog("mail", "job failed", "job_id", job.ID, "reason", reason)
}
