package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type SettlementStatus string

const (
	SettlementStatusPending   SettlementStatus = "pending"
	SettlementStatusCompleted SettlementStatus = "completed"
	SettlementStatusFailed    SettlementStatus = "failed"
)

// SplitPayment records one settlement attempt for a project. Status advances
// pending -> completed or pending -> failed; completed is terminal for the
// project, failed attempts leave the ledger untouched and may be retried with
// a fresh row.
type SplitPayment struct {
	ID               string
	ProjectID        string
	HackathonID      string
	TotalAmount      decimal.Decimal
	ContributorShare decimal.Decimal
	MaintainerShare  decimal.Decimal
	ContributorTxID  string
	MaintainerTxID   string
	TransactionHash  string
	Status           SettlementStatus
	FailureReason    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
