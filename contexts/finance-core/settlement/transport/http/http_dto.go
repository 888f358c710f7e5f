package httptransport

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

type SettleRequest struct {
	HackathonID string `json:"hackathon_id"`
	ProjectID   string `json:"project_id"`
}

type ConfirmPaymentRequest struct {
	TransactionHash string `json:"transaction_hash"`
}

type SplitPaymentDTO struct {
	ID               string `json:"id"`
	ProjectID        string `json:"project_id"`
	HackathonID      string `json:"hackathon_id"`
	TotalAmount      string `json:"total_amount"`
	ContributorShare string `json:"contributor_share"`
	MaintainerShare  string `json:"maintainer_share"`
	ContributorTxID  string `json:"contributor_tx_id,omitempty"`
	MaintainerTxID   string `json:"maintainer_tx_id,omitempty"`
	TransactionHash  string `json:"transaction_hash,omitempty"`
	Status           string `json:"status"`
	FailureReason    string `json:"failure_reason,omitempty"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

type SettleResponse struct {
	Payment SplitPaymentDTO `json:"payment"`
}

type SplitPaymentResponse struct {
	Payment SplitPaymentDTO `json:"payment"`
}

type SplitPaymentListResponse struct {
	Items []SplitPaymentDTO `json:"items"`
}
