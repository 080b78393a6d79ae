package dto

import (
	"time"

	"safetyconnect_backend/internal/models"
)

// UpdatePartnerStatusRequest is the admin approve/reject decision.
// Only approved or rejected are accepted; the transition away from
// pending is one-way.
type UpdatePartnerStatusRequest struct {
	Status string `json:"status" validate:"required,partner_decision"`
}

// UpdateSubscriptionRequest toggles a partner's email notifications.
type UpdateSubscriptionRequest struct {
	SubscribesToEmails *bool `json:"subscribesToEmails" validate:"required"`
}

type PartnerResponse struct {
	UID                string                   `json:"uid"`
	Email              string                   `json:"email"`
	CompanyName        string                   `json:"companyName"`
	TaxID              string                   `json:"taxId"`
	Address            string                   `json:"address,omitempty"`
	Phone              string                   `json:"phone,omitempty"`
	NotableClients     string                   `json:"notableClients,omitempty"`
	Capabilities       []string                 `json:"capabilities"`
	SubscribesToEmails bool                     `json:"subscribesToEmails"`
	Status             models.PartnerStatus     `json:"status"`
	Membership         models.Membership        `json:"membership"`
	CreatedAt          time.Time                `json:"createdAt"`
}

func NewPartnerResponse(p *models.PartnerProfile) *PartnerResponse {
	return &PartnerResponse{
		UID:                p.UserID,
		Email:              p.Email,
		CompanyName:        p.CompanyName,
		TaxID:              p.TaxID,
		Address:            p.Address,
		Phone:              p.Phone,
		NotableClients:     p.NotableClients,
		Capabilities:       p.GetCapabilities(),
		SubscribesToEmails: p.SubscribesEmails,
		Status:             p.Status,
		Membership:         p.Membership,
		CreatedAt:          p.CreatedAt,
	}
}
