package models

// Quote is a partner's offer on a training request. At most one quote per
// (request, partner) pair. Price is in VND. The row is written before any
// notification side effect runs and is never rolled back by one failing.
type Quote struct {
	BaseModel
	RequestID    string      `gorm:"type:uuid;not null;index:idx_quotes_request_partner,unique" json:"requestId"`
	PartnerID    string      `gorm:"type:uuid;not null;index:idx_quotes_request_partner,unique" json:"partnerId"`
	PartnerEmail string      `gorm:"not null" json:"partnerEmail"`
	PartnerName  string      `gorm:"not null" json:"partnerName"`
	Price        int64       `gorm:"not null" json:"price"`
	Currency     string      `gorm:"type:varchar(10);default:'VND'" json:"currency"`
	Timeline     string      `json:"timeline"`
	Notes        string      `gorm:"type:text" json:"notes"`
	Status       QuoteStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
}
