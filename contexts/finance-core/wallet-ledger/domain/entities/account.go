package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionKindCredit TransactionKind = "credit"
	TransactionKindDebit  TransactionKind = "debit"
)

// Account is a single ledger balance. Accounts are never deleted; a drained
// account stays addressable at balance zero.
type Account struct {
	ID        string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transaction is one immutable ledger entry. Amount is always positive; the
// kind carries the sign.
type Transaction struct {
	ID        string
	AccountID string
	Amount    decimal.Decimal
	Kind      TransactionKind
	Reference string
	CreatedAt time.Time
}

// SignedAmount is the transaction's effect on the account balance.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == TransactionKindDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
