package services

import (
	"context"

	"safetyconnect_backend/internal/config"
	"safetyconnect_backend/internal/email"
	"safetyconnect_backend/internal/logger"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/repositories"
)

// notifier renders mail templates and enqueues mail jobs. Every method is
// best-effort: a failure is logged and swallowed so the caller's durable
// write is never coupled to the notification side channel.
type notifier struct {
	templates *email.TemplateManager
}

func newNotifier(templates *email.TemplateManager) *notifier {
	return &notifier{templates: templates}
}

func (n *notifier) loginURL() string {
	return config.GetConfig().Server.BaseURL + "/login"
}

// NotifyPartners enqueues ONE mail job addressed to all matched partner
// emails for a freshly created request.
func (n *notifier) NotifyPartners(ctx context.Context, jobs repositories.MailJobRepository, request *models.TrainingRequest, emails []string) {
	if len(emails) == 0 {
		return
	}

	details := request.GetDetails()
	lines := make([]email.TrainingLine, 0, len(details))
	for _, d := range details {
		lines = append(lines, email.TrainingLine{
			Type:         d.Type,
			Group:        d.Group,
			Participants: d.Participants,
		})
	}

	html, err := n.templates.Render(email.TemplatePartnerNotification, email.PartnerNotificationData{
		Urgent:        request.Urgent,
		Details:       lines,
		Location:      request.Location,
		PreferredTime: request.PreferredTime,
		Duration:      request.TrainingDuration,
		Description:   request.Description,
		ClientName:    request.ClientName,
		LoginURL:      n.loginURL(),
	})
	if err != nil {
		logger.CtxWithError(ctx, "failed to render partner notification", err, "request_id", request.ID)
		return
	}

	subject := "Yêu cầu đào tạo mới trên SafetyConnect"
	if request.Urgent {
		subject = "[KHẨN] " + subject
	}

	job := &models.MailJob{Subject: subject, HTML: html}
	job.SetRecipients(emails)

	if err := jobs.Enqueue(ctx, job); err != nil {
		logger.CtxWithError(ctx, "failed to enqueue partner notification", err,
			"request_id", request.ID, "recipients", len(emails))
		return
	}
	logger.CtxInfo(ctx, "partner notification enqueued",
		"request_id", request.ID, "recipients", len(emails))
}

// NotifyClientQuote enqueues the new-quote mail to the request's client.
func (n *notifier) NotifyClientQuote(ctx context.Context, jobs repositories.MailJobRepository, request *models.TrainingRequest, quote *models.Quote) {
	if !request.SubscribesEmails || request.ClientEmail == "" {
		return
	}

	html, err := n.templates.Render(email.TemplateQuoteNotification, email.QuoteNotificationData{
		ClientName:  request.ClientName,
		PartnerName: quote.PartnerName,
		Price:       quote.Price,
		Timeline:    quote.Timeline,
		Notes:       quote.Notes,
		LoginURL:    n.loginURL(),
	})
	if err != nil {
		logger.CtxWithError(ctx, "failed to render quote notification", err, "quote_id", quote.ID)
		return
	}

	job := &models.MailJob{
		Subject: "Bạn nhận được báo giá mới từ " + quote.PartnerName,
		HTML:    html,
	}
	job.SetRecipients([]string{request.ClientEmail})

	if err := jobs.Enqueue(ctx, job); err != nil {
		logger.CtxWithError(ctx, "failed to enqueue quote notification", err, "quote_id", quote.ID)
		return
	}
	logger.CtxInfo(ctx, "quote notification enqueued", "quote_id", quote.ID)
}

// NotifyPartnerWelcome acknowledges a fresh partner registration.
func (n *notifier) NotifyPartnerWelcome(ctx context.Context, jobs repositories.MailJobRepository, partner *models.PartnerProfile) {
	html, err := n.templates.Render(email.TemplateWelcome, email.WelcomeData{
		PartnerName: partner.DisplayName(),
	})
	if err != nil {
		logger.CtxWithError(ctx, "failed to render welcome mail", err, "partner_id", partner.UserID)
		return
	}

	job := &models.MailJob{
		Subject: "Chào mừng đến với SafetyConnect",
		HTML:    html,
	}
	job.SetRecipients([]string{partner.Email})

	if err := jobs.Enqueue(ctx, job); err != nil {
		logger.CtxWithError(ctx, "failed to enqueue welcome mail", err, "partner_id", partner.UserID)
	}
}

// NotifyPartnerApproved tells a partner the admin approved their account.
func (n *notifier) NotifyPartnerApproved(ctx context.Context, jobs repositories.MailJobRepository, partner *models.PartnerProfile) {
	html, err := n.templates.Render(email.TemplatePartnerApproved, email.PartnerApprovedData{
		PartnerName: partner.DisplayName(),
		LoginURL:    n.loginURL(),
	})
	if err != nil {
		logger.CtxWithError(ctx, "failed to render approval mail", err, "partner_id", partner.UserID)
		return
	}

	job := &models.MailJob{
		Subject: "Tài khoản đối tác của bạn đã được duyệt",
		HTML:    html,
	}
	job.SetRecipients([]string{partner.Email})

	if err := jobs.Enqueue(ctx, job); err != nil {
		logger.CtxWithError(ctx, "failed to enqueue approval mail", err, "partner_id", partner.UserID)
	}
}
