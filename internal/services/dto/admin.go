package dto

// HotTrainingType is one entry of the dashboard's top demanded types.
type HotTrainingType struct {
	Type  string  `json:"type"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// AttentionItem flags something an admin should act on.
type AttentionItem struct {
	Kind    string `json:"kind"` // stale_partner | unseen_request
	ID      string `json:"id"`
	Label   string `json:"label"`
	AgeDays int    `json:"ageDays"`
}

// DashboardResponse is the admin overview.
type DashboardResponse struct {
	TotalRequests    int64             `json:"totalRequests"`
	UrgentRequests   int64             `json:"urgentRequests"`
	TotalPartners    int64             `json:"totalPartners"`
	PendingPartners  int64             `json:"pendingPartners"`
	ApprovedPartners int64             `json:"approvedPartners"`
	HotTypes         []HotTrainingType `json:"hotTypes"`
	Attention        []AttentionItem   `json:"attention"`
}
