package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/domain/entities"
	domainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/domain/errors"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/ports"
)

// Service is the wallet ledger use case layer. It validates inputs, stamps
// ids/timestamps, and delegates the atomic balance+log write to the
// repository, which owns per-account serialization.
type Service struct {
	Repo   ports.LedgerRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) CreateAccount(ctx context.Context, accountID string) (entities.Account, error) {
	logger := ResolveLogger(s.Logger)
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return entities.Account{}, domainerrors.ErrInvalidAccountID
	}

	now := s.Clock.Now().UTC()
	account := entities.Account{
		ID:        accountID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.CreateAccount(ctx, account); err != nil {
		return entities.Account{}, err
	}

	logger.Info("wallet account created",
		"event", "wallet_account_created",
		"module", "finance-core/wallet-ledger",
		"layer", "application",
		"account_id", accountID,
	)
	return account, nil
}

func (s Service) Credit(
	ctx context.Context,
	accountID string,
	amount decimal.Decimal,
	reference string,
) (ports.MutationResult, error) {
	return s.apply(ctx, accountID, amount, entities.TransactionKindCredit, reference)
}

func (s Service) Debit(
	ctx context.Context,
	accountID string,
	amount decimal.Decimal,
	reference string,
) (ports.MutationResult, error) {
	return s.apply(ctx, accountID, amount, entities.TransactionKindDebit, reference)
}

func (s Service) GetBalance(ctx context.Context, accountID string) (entities.Account, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return entities.Account{}, domainerrors.ErrInvalidAccountID
	}
	return s.Repo.GetAccount(ctx, accountID)
}

func (s Service) ListTransactions(
	ctx context.Context,
	accountID string,
	limit int,
	offset int,
) ([]entities.Transaction, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, domainerrors.ErrInvalidAccountID
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if _, err := s.Repo.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return s.Repo.ListTransactions(ctx, accountID, limit, offset)
}

func (s Service) apply(
	ctx context.Context,
	accountID string,
	amount decimal.Decimal,
	kind entities.TransactionKind,
	reference string,
) (ports.MutationResult, error) {
	logger := ResolveLogger(s.Logger)
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return ports.MutationResult{}, domainerrors.ErrInvalidAccountID
	}
	if !amount.IsPositive() {
		return ports.MutationResult{}, domainerrors.ErrInvalidAmount
	}

	transactionID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.MutationResult{}, err
	}

	tx := entities.Transaction{
		ID:        transactionID,
		AccountID: accountID,
		Amount:    amount,
		Kind:      kind,
		Reference: strings.TrimSpace(reference),
		CreatedAt: s.Clock.Now().UTC(),
	}
	account, err := s.Repo.AppendTransaction(ctx, tx)
	if err != nil {
		logger.Warn("wallet mutation rejected",
			"event", "wallet_mutation_rejected",
			"module", "finance-core/wallet-ledger",
			"layer", "application",
			"account_id", accountID,
			"kind", string(kind),
			"amount", amount.String(),
			"error", err.Error(),
		)
		return ports.MutationResult{}, err
	}

	logger.Info("wallet mutation applied",
		"event", "wallet_mutation_applied",
		"module", "finance-core/wallet-ledger",
		"layer", "application",
		"account_id", accountID,
		"transaction_id", tx.ID,
		"kind", string(kind),
		"amount", amount.String(),
		"balance", account.Balance.String(),
	)
	return ports.MutationResult{
		TransactionID: tx.ID,
		AccountID:     accountID,
		Kind:          kind,
		Amount:        amount,
		Balance:       account.Balance,
		CreatedAt:     tx.CreatedAt,
	}, nil
}
