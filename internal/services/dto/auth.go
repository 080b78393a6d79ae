package dto

import "safetyconnect_backend/internal/models"

// RegisterRequest is the partner self-service registration payload.
// Capabilities must be non-empty and drawn from the closed vocabulary.
type RegisterRequest struct {
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=6"`
	CompanyName    string   `json:"companyName" validate:"required"`
	TaxID          string   `json:"taxId" validate:"required"`
	Address        string   `json:"address"`
	Phone          string   `json:"phone" validate:"required"`
	NotableClients string   `json:"notableClients"`
	Capabilities   []string `json:"capabilities" validate:"required,min=1,dive,capability"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the JWT and the authenticated account.
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type UserInfo struct {
	ID      string             `json:"id"`
	Email   string             `json:"email"`
	Role    models.UserRole    `json:"role"`
	Status  models.UserStatus  `json:"status"`
	Partner *PartnerResponse   `json:"partner,omitempty"`
}
