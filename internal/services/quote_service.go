package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"safetyconnect_backend/internal/email"
	"safetyconnect_backend/internal/logger"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/services/dto"
	"safetyconnect_backend/pkg/apperrors"
)

type QuoteService interface {
	// Submit persists the quote, then best-effort: opens the chat room,
	// posts the announcement message and mails the client. Each side
	// effect fails independently of the durable quote.
	Submit(ctx context.Context, db *gorm.DB, requestID, partnerUserID string, req *dto.SubmitQuoteRequest) (*models.Quote, error)
	ListByRequest(ctx context.Context, db *gorm.DB, requestID string) ([]models.Quote, error)
	ListByPartner(ctx context.Context, db *gorm.DB, partnerUserID string) ([]models.Quote, error)
}

type quoteService struct {
	repos  RepoFactory
	notify *notifier
}

func NewQuoteService(repos RepoFactory, notify *notifier) QuoteService {
	return &quoteService{repos: repos, notify: notify}
}

func (s *quoteService) Submit(ctx context.Context, db *gorm.DB, requestID, partnerUserID string, req *dto.SubmitQuoteRequest) (*models.Quote, error) {
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

	request, err := r.Requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := r.Quotes.FindByRequestAndPartner(ctx, requestID, partner.UserID); err == nil {
		return nil, apperrors.ErrQuoteAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.InternalError(err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "VND"
	}

	quote := &models.Quote{
		RequestID:    requestID,
		PartnerID:    partner.UserID,
		PartnerEmail: partner.Email,
		PartnerName:  partner.DisplayName(),
		Price:        req.Price,
		Currency:     currency,
		Timeline:     req.Timeline,
		Notes:        req.Notes,
		Status:       models.QuoteStatusPending,
	}
	if err := r.Quotes.Create(ctx, quote); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "quote submitted",
		"quote_id", quote.ID, "request_id", requestID, "partner_id", partner.UserID)

	s.announceQuote(ctx, db, request, partner, quote)
	s.notify.NotifyClientQuote(ctx, r.MailJobs, request, quote)

	return quote, nil
}

// announceQuote gets or creates the (request, partner) room and posts the
// quote announcement. Failures are logged and never surfaced.
func (s *quoteService) announceQuote(ctx context.Context, db *gorm.DB, request *models.TrainingRequest, partner *models.PartnerProfile, quote *models.Quote) {
	r := s.repos(db)

	room, err := r.Chats.FindRoom(ctx, request.ID, partner.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.CtxWithError(ctx, "quote announce: failed to look up room", err, "quote_id", quote.ID)
			return
		}
		room = &models.ChatRoom{
			RequestID:   request.ID,
			PartnerID:   partner.UserID,
			ClientID:    models.AdminChatID,
			ClientName:  request.ClientName,
			ClientEmail: request.ClientEmail,
			PartnerName: partner.DisplayName(),
		}
		if err := r.Chats.CreateRoom(ctx, room); err != nil {
			logger.CtxWithError(ctx, "quote announce: failed to create room", err, "quote_id", quote.ID)
			return
		}
	}

	text := "Đã gửi báo giá: " + email.FormatVND(quote.Price)
	if quote.Timeline != "" {
		text += " (thời gian thực hiện: " + quote.Timeline + ")"
	}

	msg := &models.ChatMessage{
		RoomID:     room.ID,
		SenderID:   partner.UserID,
		SenderName: partner.DisplayName(),
		SenderRole: models.UserRolePartner,
		Message:    text,
	}
	if err := r.Chats.CreateMessage(ctx, msg); err != nil {
		logger.CtxWithError(ctx, "quote announce: failed to post message", err, "quote_id", quote.ID)
		return
	}
	if err := r.Chats.TouchRoom(ctx, room.ID, text, time.Now(), true); err != nil {
		logger.CtxWithError(ctx, "quote announce: failed to touch room", err, "quote_id", quote.ID)
	}
}

func (s *quoteService) ListByRequest(ctx context.Context, db *gorm.DB, requestID string) ([]models.Quote, error) {
	quotes, err := s.repos(db).Quotes.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return quotes, nil
}

func (s *quoteService) ListByPartner(ctx context.Context, db *gorm.DB, partnerUserID string) ([]models.Quote, error) {
	quotes, err := s.repos(db).Quotes.ListByPartner(ctx, partnerUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return quotes, nil
}
