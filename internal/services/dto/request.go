package dto

import (
	"time"

	"safetyconnect_backend/internal/models"
)

// TrainingDetailInput is one requested training line. When Type is the
// "Khác" catalog entry, CustomType carries the client's own wording and
// replaces Type before persistence and matching.
type TrainingDetailInput struct {
	Type         string `json:"type" validate:"required,training_type"`
	CustomType   string `json:"customType"`
	Group        string `json:"group" validate:"required,training_group"`
	Participants int    `json:"participants" validate:"required,gt=0"`
}

// CreateRequestRequest is the public client form. No account is needed.
type CreateRequestRequest struct {
	ClientName       string                `json:"clientName" validate:"required"`
	ClientEmail      string                `json:"clientEmail" validate:"required,email"`
	ClientPhone      string                `json:"clientPhone" validate:"required"`
	TrainingDetails  []TrainingDetailInput `json:"trainingDetails" validate:"required,min=1,dive"`
	TrainingDuration string                `json:"trainingDuration"`
	PreferredTime    string                `json:"preferredTime"`
	Description      string                `json:"description"`
	Location         string                `json:"location" validate:"required"`
	Urgent           bool                  `json:"urgent"`
	SubscribesEmails bool                  `json:"clientSubscribesToEmails"`
}

// ListRequestsQuery carries the filter state and sort key. Empty fields
// are no-op criteria.
type ListRequestsQuery struct {
	Types           []string `form:"type"`
	Provinces       []string `form:"province"`
	ParticipantsMin int      `form:"participantsMin"`
	ParticipantsMax int      `form:"participantsMax"`
	Urgent          bool     `form:"urgent"`
	DateFrom        string   `form:"dateFrom"`
	DateTo          string   `form:"dateTo"`
	Query           string   `form:"q"`
	Sort            string   `form:"sort"`
}

type RequestResponse struct {
	ID               string                  `json:"id"`
	ClientName       string                  `json:"clientName"`
	ClientEmail      string                  `json:"clientEmail"`
	ClientPhone      string                  `json:"clientPhone"`
	TrainingDetails  []models.TrainingDetail `json:"trainingDetails"`
	TrainingDuration string                  `json:"trainingDuration,omitempty"`
	PreferredTime    string                  `json:"preferredTime,omitempty"`
	Description      string                  `json:"description,omitempty"`
	Location         string                  `json:"location"`
	Urgent           bool                    `json:"urgent"`
	SubscribesEmails bool                    `json:"clientSubscribesToEmails"`
	ViewedBy         []string                `json:"viewedBy"`
	CreatedAt        time.Time               `json:"createdAt"`
}

// NewRequestResponse maps a request row. Client contact is redacted
// unless the caller unlocked the request (or is the admin).
func NewRequestResponse(r *models.TrainingRequest, includeContact bool) *RequestResponse {
	resp := &RequestResponse{
		ID:               r.ID,
		TrainingDetails:  r.GetDetails(),
		TrainingDuration: r.TrainingDuration,
		PreferredTime:    r.PreferredTime,
		Description:      r.Description,
		Location:         r.Location,
		Urgent:           r.Urgent,
		SubscribesEmails: r.SubscribesEmails,
		ViewedBy:         r.GetViewedBy(),
		CreatedAt:        r.CreatedAt,
	}
	if resp.ViewedBy == nil {
		resp.ViewedBy = []string{}
	}
	if includeContact {
		resp.ClientName = r.ClientName
		resp.ClientEmail = r.ClientEmail
		resp.ClientPhone = r.ClientPhone
	}
	return resp
}
