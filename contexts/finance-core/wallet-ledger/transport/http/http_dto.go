package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateAccountRequest struct {
	AccountID string `json:"account_id"`
}

type AccountDTO struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type AccountResponse struct {
	Status string     `json:"status"`
	Data   AccountDTO `json:"data"`
}

type MutateBalanceRequest struct {
	Amount    string `json:"amount"`
	Reference string `json:"reference,omitempty"`
}

type MutationDTO struct {
	TransactionID string `json:"transaction_id"`
	AccountID     string `json:"account_id"`
	Kind          string `json:"kind"`
	Amount        string `json:"amount"`
	Balance       string `json:"balance"`
	CreatedAt     string `json:"created_at"`
}

type MutationResponse struct {
	Status string      `json:"status"`
	Data   MutationDTO `json:"data"`
}

type TransactionDTO struct {
	TransactionID string `json:"transaction_id"`
	AccountID     string `json:"account_id"`
	Kind          string `json:"kind"`
	Amount        string `json:"amount"`
	Reference     string `json:"reference,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type TransactionListResponse struct {
	Status string           `json:"status"`
	Data   []TransactionDTO `json:"data"`
}
