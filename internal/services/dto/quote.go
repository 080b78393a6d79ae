package dto

// SubmitQuoteRequest is a partner's offer on a request. Price is VND.
type SubmitQuoteRequest struct {
	Price    int64  `json:"price" validate:"required,gt=0"`
	Currency string `json:"currency"`
	Timeline string `json:"timeline"`
	Notes    string `json:"notes"`
}
