package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// TrainingDetail is one line of a training request: a training type, the
// legal trainee group and a participant count. Custom "Khác" types already
// carry the client's free text in Type at this point.
type TrainingDetail struct {
	Type         string `json:"type"`
	Group        string `json:"group"`
	Participants int    `json:"participants"`
}

// TrainingRequest is a client's record of intent. It is created without an
// account and stays durable regardless of what happens to the notification
// fan-out that follows it.
type TrainingRequest struct {
	BaseModel
	ClientName       string         `gorm:"not null" json:"clientName"`
	ClientEmail      string         `gorm:"not null;index" json:"clientEmail"`
	ClientPhone      string         `gorm:"not null" json:"clientPhone"`
	TrainingDetails  datatypes.JSON `gorm:"type:jsonb;not null" json:"trainingDetails"`
	TrainingDuration string         `json:"trainingDuration"`
	PreferredTime    string         `json:"preferredTime"`
	Description      string         `gorm:"type:text" json:"description"`
	Location         string         `gorm:"index" json:"location"`
	Urgent           bool           `gorm:"default:false;index" json:"urgent"`
	SubscribesEmails bool           `gorm:"default:true" json:"subscribesToEmails"`

	// ViewedBy holds the ids of partners who unlocked the client contact.
	ViewedBy datatypes.JSON `gorm:"type:jsonb" json:"viewedBy"`

	Quotes []Quote `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"quotes,omitempty"`
}

func (r *TrainingRequest) GetDetails() []TrainingDetail {
	if len(r.TrainingDetails) == 0 {
		return nil
	}
	var details []TrainingDetail
	if err := json.Unmarshal(r.TrainingDetails, &details); err != nil {
		return nil
	}
	return details
}

func (r *TrainingRequest) SetDetails(details []TrainingDetail) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return err
	}
	r.TrainingDetails = raw
	return nil
}

// TotalParticipants sums participant counts over all detail lines.
func (r *TrainingRequest) TotalParticipants() int {
	total := 0
	for _, d := range r.GetDetails() {
		total += d.Participants
	}
	return total
}

// TrainingTypes returns the distinct training types of the request.
func (r *TrainingRequest) TrainingTypes() []string {
	seen := make(map[string]bool)
	var types []string
	for _, d := range r.GetDetails() {
		if d.Type == "" || seen[d.Type] {
			continue
		}
		seen[d.Type] = true
		types = append(types, d.Type)
	}
	return types
}

func (r *TrainingRequest) GetViewedBy() []string {
	return decodeStringList(r.ViewedBy)
}

// AddViewedBy appends a partner id to the unlock list. Returns false when
// the partner already unlocked this request.
func (r *TrainingRequest) AddViewedBy(partnerID string) bool {
	viewed := r.GetViewedBy()
	for _, id := range viewed {
		if id == partnerID {
			return false
		}
	}
	r.ViewedBy = encodeStringList(append(viewed, partnerID))
	return true
}

// ViewedByPartner reports whether partnerID already unlocked the request.
func (r *TrainingRequest) ViewedByPartner(partnerID string) bool {
	for _, id := range r.GetViewedBy() {
		if id == partnerID {
			return true
		}
	}
	return false
}
