package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"safetyconnect_backend/internal/auth"
	"safetyconnect_backend/internal/logger"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/services/dto"
	"safetyconnect_backend/pkg/apperrors"
)

type AuthService interface {
	// Register creates a partner account with a pending profile.
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, db *gorm.DB, userID string) (*dto.UserInfo, error)
}

type authService struct {
	repos  RepoFactory
	notify *notifier
}

func NewAuthService(repos RepoFactory, notify *notifier) AuthService {
	return &authService{repos: repos, notify: notify}
}

func (s *authService) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}
	if len(req.Capabilities) == 0 {
		return nil, apperrors.ErrEmptyCapabilities
	}

	r := s.repos(db)

	if _, err := r.Users.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRolePartner,
		Status:       models.UserStatusActive,
	}
	partner := &models.PartnerProfile{
		Email:            req.Email,
		CompanyName:      req.CompanyName,
		TaxID:            req.TaxID,
		Address:          req.Address,
		Phone:            req.Phone,
		NotableClients:   req.NotableClients,
		Status:           models.PartnerStatusPending,
		Membership:       models.MembershipFree,
		SubscribesEmails: true,
	}
	partner.SetCapabilities(req.Capabilities)

	// Account and profile land together or not at all.
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepos := s.repos(tx)
		if err := txRepos.Users.Create(ctx, user); err != nil {
			return err
		}
		partner.UserID = user.ID
		return txRepos.Partners.Create(ctx, partner)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "partner registered", "user_id", user.ID, "email", user.Email)

	s.notify.NotifyPartnerWelcome(ctx, r.MailJobs, partner)

	token, err := auth.GenerateToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token: token,
		User:  userInfo(user, partner),
	}, nil
}

func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	r := s.repos(db)

	user, err := r.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.CtxWarn(ctx, "login failed", "email", req.Email)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	partner := s.loadPartner(ctx, db, user)

	logger.CtxInfo(ctx, "login succeeded", "user_id", user.ID, "role", user.Role)

	return &dto.AuthResponse{
		Token: token,
		User:  userInfo(user, partner),
	}, nil
}

func (s *authService) Me(ctx context.Context, db *gorm.DB, userID string) (*dto.UserInfo, error) {
	user, err := s.repos(db).Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	info := userInfo(user, s.loadPartner(ctx, db, user))
	return &info, nil
}

func (s *authService) loadPartner(ctx context.Context, db *gorm.DB, user *models.User) *models.PartnerProfile {
	if user.Role != models.UserRolePartner {
		return nil
	}
	partner, err := s.repos(db).Partners.FindByUserID(ctx, user.ID)
	if err != nil {
		logger.CtxWarn(ctx, "partner profile missing", "user_id", user.ID)
		return nil
	}
	return partner
}

func userInfo(user *models.User, partner *models.PartnerProfile) dto.UserInfo {
	info := dto.UserInfo{
		ID:     user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Status: user.Status,
	}
	if partner != nil {
		info.Partner = dto.NewPartnerResponse(partner)
	}
	return info
}
