package models

import "gorm.io/datatypes"

// PartnerProfile is a training provider. Partners self-register with a
// non-empty capability list and stay pending until an admin approves them.
type PartnerProfile struct {
	BaseModel
	UserID         string         `gorm:"type:uuid;uniqueIndex;not null" json:"uid"`
	Email          string         `gorm:"not null;index" json:"email"`
	CompanyName    string         `gorm:"not null" json:"companyName"`
	TaxID          string         `json:"taxId"`
	Address        string         `json:"address"`
	Phone          string         `json:"phone"`
	NotableClients string         `gorm:"type:text" json:"notableClients"`
	Capabilities   datatypes.JSON `gorm:"type:jsonb;not null" json:"capabilities"`
	Status         PartnerStatus  `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Membership     Membership     `gorm:"type:varchar(20);default:'free'" json:"membership"`

	// SubscribesEmails gates notification fan-out, not approval.
	SubscribesEmails bool `gorm:"default:true" json:"subscribesToEmails"`
}

func (p *PartnerProfile) GetCapabilities() []string {
	return decodeStringList(p.Capabilities)
}

func (p *PartnerProfile) SetCapabilities(capabilities []string) {
	p.Capabilities = encodeStringList(capabilities)
}

// DisplayName is the name shown to clients and used on quotes, chat
// messages and emails: the company name, the contact email as fallback.
func (p *PartnerProfile) DisplayName() string {
	if p.CompanyName != "" {
		return p.CompanyName
	}
	return p.Email
}
