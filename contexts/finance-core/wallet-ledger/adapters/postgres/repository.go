package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/domain/entities"
	domainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/domain/errors"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateAccount(ctx context.Context, account entities.Account) error {
	row := accountModelFromEntity(account)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAccountExists
		}
		return r.logError("wallet_repo_create_account_failed", err,
			"account_id", strings.TrimSpace(account.ID),
		)
	}
	return nil
}

func (r *Repository) GetAccount(ctx context.Context, accountID string) (entities.Account, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(accountID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Account{}, domainerrors.ErrAccountNotFound
		}
		return entities.Account{}, r.logError("wallet_repo_get_account_failed", err,
			"account_id", strings.TrimSpace(accountID),
		)
	}
	return row.toEntity()
}

// AppendTransaction runs the read-check-write sequence inside one database
// transaction holding a row lock on the account, so concurrent debits cannot
// both pass the sufficiency check against a stale balance.
func (r *Repository) AppendTransaction(ctx context.Context, tx entities.Transaction) (entities.Account, error) {
	var updated entities.Account
	err := r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		var row accountModel
		err := dbtx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", strings.TrimSpace(tx.AccountID)).
			First(&row).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrAccountNotFound
			}
			return err
		}

		balance, err := decimal.NewFromString(row.Balance)
		if err != nil {
			return err
		}
		if tx.Kind == entities.TransactionKindDebit && balance.LessThan(tx.Amount) {
			return domainerrors.ErrInsufficientFunds
		}
		balance = balance.Add(tx.SignedAmount())

		if err := dbtx.Model(&accountModel{}).
			Where("id = ?", row.ID).
			Updates(map[string]any{
				"balance":    balance.String(),
				"updated_at": tx.CreatedAt.UTC(),
			}).Error; err != nil {
			return err
		}
		if err := dbtx.Create(transactionModelFromEntity(tx)).Error; err != nil {
			return err
		}

		updated = entities.Account{
			ID:        row.ID,
			Balance:   balance,
			CreatedAt: row.CreatedAt,
			UpdatedAt: tx.CreatedAt.UTC(),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAccountNotFound) ||
			errors.Is(err, domainerrors.ErrInsufficientFunds) {
			return entities.Account{}, err
		}
		return entities.Account{}, r.logError("wallet_repo_append_transaction_failed", err,
			"account_id", strings.TrimSpace(tx.AccountID),
			"transaction_id", strings.TrimSpace(tx.ID),
		)
	}
	return updated, nil
}

func (r *Repository) ListTransactions(
	ctx context.Context,
	accountID string,
	limit int,
	offset int,
) ([]entities.Transaction, error) {
	var rows []transactionModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", strings.TrimSpace(accountID)).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, r.logError("wallet_repo_list_transactions_failed", err,
			"account_id", strings.TrimSpace(accountID),
		)
	}
	items := make([]entities.Transaction, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "finance-core/wallet-ledger",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("wallet repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

type accountModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Balance   string    `gorm:"column:balance;type:numeric(30,8)"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (accountModel) TableName() string { return "wallet_accounts" }

func (m accountModel) toEntity() (entities.Account, error) {
	balance, err := decimal.NewFromString(m.Balance)
	if err != nil {
		return entities.Account{}, err
	}
	return entities.Account{
		ID:        m.ID,
		Balance:   balance,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func accountModelFromEntity(account entities.Account) accountModel {
	return accountModel{
		ID:        strings.TrimSpace(account.ID),
		Balance:   account.Balance.String(),
		CreatedAt: account.CreatedAt.UTC(),
		UpdatedAt: account.UpdatedAt.UTC(),
	}
}

type transactionModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	AccountID string    `gorm:"column:account_id"`
	Amount    string    `gorm:"column:amount;type:numeric(30,8)"`
	Kind      string    `gorm:"column:kind"`
	Reference string    `gorm:"column:reference"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (transactionModel) TableName() string { return "wallet_transactions" }

func (m transactionModel) toEntity() (entities.Transaction, error) {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return entities.Transaction{}, err
	}
	return entities.Transaction{
		ID:        m.ID,
		AccountID: m.AccountID,
		Amount:    amount,
		Kind:      entities.TransactionKind(m.Kind),
		Reference: m.Reference,
		CreatedAt: m.CreatedAt,
	}, nil
}

func transactionModelFromEntity(tx entities.Transaction) *transactionModel {
	return &transactionModel{
		ID:        strings.TrimSpace(tx.ID),
		AccountID: strings.TrimSpace(tx.AccountID),
		Amount:    tx.Amount.String(),
		Kind:      string(tx.Kind),
		Reference: strings.TrimSpace(tx.Reference),
		CreatedAt: tx.CreatedAt.UTC(),
	}
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
