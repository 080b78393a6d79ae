package models

import (
	"time"

	"gorm.io/datatypes"
)

// MailJob is one row of the outbound email queue. Services only ever
// enqueue; the mail worker owns delivery, retries and status transitions.
type MailJob struct {
	BaseModel
	To       datatypes.JSON `gorm:"type:jsonb;not null" json:"to"`
	Subject  string         `gorm:"not null" json:"subject"`
	HTML     string         `gorm:"type:text;not null" json:"html"`
	Status   MailJobStatus  `gorm:"type:varchar(20);default:'queued';index" json:"status"`
	Attempts int            `gorm:"default:0" json:"attempts"`
	LastErr  string         `gorm:"type:text" json:"lastError,omitempty"`
	SentAt   *time.Time     `json:"sentAt,omitempty"`
}

func (j *MailJob) GetRecipients() []string {
	return decodeStringList(j.To)
}

func (j *MailJob) SetRecipients(to []string) {
	j.To = encodeStringList(to)
}
