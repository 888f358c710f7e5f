package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/domain/entities"
)

// LedgerRepository owns durable account + transaction state. AppendTransaction
// must apply the balance change and persist the transaction atomically under
// per-account serialization: two concurrent debits against one account must
// never both pass the sufficiency check against a stale balance.
type LedgerRepository interface {
	CreateAccount(ctx context.Context, account entities.Account) error
	GetAccount(ctx context.Context, accountID string) (entities.Account, error)
	AppendTransaction(ctx context.Context, tx entities.Transaction) (entities.Account, error)
	ListTransactions(ctx context.Context, accountID string, limit int, offset int) ([]entities.Transaction, error)
}

// MutationResult is what credit/debit hand back to callers: the ledger entry
// id and the balance after the mutation.
type MutationResult struct {
	TransactionID string
	AccountID     string
	Kind          entities.TransactionKind
	Amount        decimal.Decimal
	Balance       decimal.Decimal
	CreatedAt     time.Time
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
