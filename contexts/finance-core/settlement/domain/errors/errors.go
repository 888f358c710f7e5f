package errors

import "errors"

var (
	ErrInvalidSettlementInput = errors.New("settlement requires hackathon and project ids")
	ErrNotApproved            = errors.New("project result is not approved for funding")
	ErrAlreadySettled         = errors.New("project has already been settled")
	ErrSettlementNotFound     = errors.New("settlement not found")
	ErrInvalidTransactionHash = errors.New("transaction hash must not be empty")
	ErrNotCompleted           = errors.New("settlement is not completed")
)
