package walletbridge

import (
	"context"

	"github.com/shopspring/decimal"

	walletapp "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/application"
)

// Ledger adapts the wallet ledger service to the dispatcher's Ledger port.
// Wallet sentinel errors pass through untouched.
type Ledger struct {
	Wallet walletapp.Service
}

func NewLedger(wallet walletapp.Service) Ledger {
	return Ledger{Wallet: wallet}
}

func (l Ledger) Debit(ctx context.Context, accountID string, amount decimal.Decimal, reference string) (string, error) {
	result, err := l.Wallet.Debit(ctx, accountID, amount, reference)
	if err != nil {
		return "", err
	}
	return result.TransactionID, nil
}

func (l Ledger) Credit(ctx context.Context, accountID string, amount decimal.Decimal, reference string) (string, error) {
	result, err := l.Wallet.Credit(ctx, accountID, amount, reference)
	if err != nil {
		return "", err
	}
	return result.TransactionID, nil
}
