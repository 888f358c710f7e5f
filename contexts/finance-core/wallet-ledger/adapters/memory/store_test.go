package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/domain/entities"
	domainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/domain/errors"
)

func seedAccount(t *testing.T, store *Store, id string, balance string) {
	t.Helper()
	opening, err := decimal.NewFromString(balance)
	if err != nil {
		t.Fatalf("bad balance literal: %v", err)
	}
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	if err := store.CreateAccount(context.Background(), entities.Account{
		ID:        id,
		Balance:   opening,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("seed account: %v", err)
	}
}

func TestAppendTransactionAppliesSignedEffect(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "acct-1", "100")

	account, err := store.AppendTransaction(context.Background(), entities.Transaction{
		ID:        "tx-1",
		AccountID: "acct-1",
		Amount:    decimal.RequireFromString("40"),
		Kind:      entities.TransactionKindDebit,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if account.Balance.String() != "60" {
		t.Fatalf("expected 60, got %s", account.Balance)
	}
}

func TestAppendTransactionRefusesOverdraw(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "acct-1", "10")

	_, err := store.AppendTransaction(context.Background(), entities.Transaction{
		ID:        "tx-1",
		AccountID: "acct-1",
		Amount:    decimal.RequireFromString("10.00000001"),
		Kind:      entities.TransactionKindDebit,
		CreatedAt: time.Now().UTC(),
	})
	if !errors.Is(err, domainerrors.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestListTransactionsPaginatesInArrivalOrder(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "acct-1", "0")

	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := store.AppendTransaction(context.Background(), entities.Transaction{
			ID:        string(rune('a' + i)),
			AccountID: "acct-1",
			Amount:    decimal.RequireFromString("1"),
			Kind:      entities.TransactionKindCredit,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	page, err := store.ListTransactions(context.Background(), "acct-1", 2, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page))
	}
	if page[0].ID != "c" || page[1].ID != "d" {
		t.Fatalf("unexpected page order: %s, %s", page[0].ID, page[1].ID)
	}
}

func TestUnknownAccountSurfacesNotFound(t *testing.T) {
	store := NewStore()

	if _, err := store.GetAccount(context.Background(), "ghost"); !errors.Is(err, domainerrors.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if _, err := store.ListTransactions(context.Background(), "ghost", 10, 0); !errors.Is(err, domainerrors.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
