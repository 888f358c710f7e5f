package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/adapters/memory"
	domainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/domain/errors"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// sequenceIDGen is shared across goroutines in the concurrency tests, so the
// counter needs its own lock.
type sequenceIDGen struct {
	mu   sync.Mutex
	next int
}

func (g *sequenceIDGen) NewID(_ context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("tx-%04d", g.next), nil
}

func newTestService() Service {
	return Service{
		Repo:  memory.NewStore(),
		Clock: fixedClock{now: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)},
		IDGen: &sequenceIDGen{},
	}
}

func mustDecimal(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	value, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", raw, err)
	}
	return value
}

func TestCreateAccountRejectsDuplicate(t *testing.T) {
	service := newTestService()

	account, err := service.CreateAccount(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if !account.Balance.IsZero() {
		t.Fatalf("expected zero opening balance, got %s", account.Balance)
	}

	_, err = service.CreateAccount(context.Background(), "acct-1")
	if !errors.Is(err, domainerrors.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestCreditIncreasesBalanceAndLogsTransaction(t *testing.T) {
	service := newTestService()
	if _, err := service.CreateAccount(context.Background(), "acct-1"); err != nil {
		t.Fatalf("create account: %v", err)
	}

	result, err := service.Credit(context.Background(), "acct-1", mustDecimal(t, "125.50"), "topup")
	if err != nil {
		t.Fatalf("expected credit to succeed, got %v", err)
	}
	if result.Balance.String() != "125.5" {
		t.Fatalf("expected balance 125.5, got %s", result.Balance)
	}

	history, err := service.ListTransactions(context.Background(), "acct-1", 10, 0)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(history))
	}
	if history[0].Reference != "topup" {
		t.Fatalf("expected reference to survive, got %q", history[0].Reference)
	}
}

func TestCreditRejectsNonPositiveAmount(t *testing.T) {
	service := newTestService()
	if _, err := service.CreateAccount(context.Background(), "acct-1"); err != nil {
		t.Fatalf("create account: %v", err)
	}

	for _, raw := range []string{"0", "-10"} {
		_, err := service.Credit(context.Background(), "acct-1", mustDecimal(t, raw), "")
		if !errors.Is(err, domainerrors.ErrInvalidAmount) {
			t.Fatalf("amount %s: expected ErrInvalidAmount, got %v", raw, err)
		}
	}
}

func TestDebitRejectsOverdraw(t *testing.T) {
	service := newTestService()
	if _, err := service.CreateAccount(context.Background(), "acct-1"); err != nil {
		t.Fatalf("create account: %v", err)
	}
	if _, err := service.Credit(context.Background(), "acct-1", mustDecimal(t, "100"), ""); err != nil {
		t.Fatalf("credit: %v", err)
	}

	_, err := service.Debit(context.Background(), "acct-1", mustDecimal(t, "100.01"), "")
	if !errors.Is(err, domainerrors.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	account, err := service.GetBalance(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if account.Balance.String() != "100" {
		t.Fatalf("failed debit must not move the balance, got %s", account.Balance)
	}
}

func TestMutationsAgainstUnknownAccountFail(t *testing.T) {
	service := newTestService()

	if _, err := service.Credit(context.Background(), "ghost", mustDecimal(t, "5"), ""); !errors.Is(err, domainerrors.ErrAccountNotFound) {
		t.Fatalf("credit: expected ErrAccountNotFound, got %v", err)
	}
	if _, err := service.Debit(context.Background(), "ghost", mustDecimal(t, "5"), ""); !errors.Is(err, domainerrors.ErrAccountNotFound) {
		t.Fatalf("debit: expected ErrAccountNotFound, got %v", err)
	}
	if _, err := service.GetBalance(context.Background(), "ghost"); !errors.Is(err, domainerrors.ErrAccountNotFound) {
		t.Fatalf("get balance: expected ErrAccountNotFound, got %v", err)
	}
}

func TestBalanceEqualsSignedSumOfSuccessfulTransactions(t *testing.T) {
	service := newTestService()
	if _, err := service.CreateAccount(context.Background(), "acct-1"); err != nil {
		t.Fatalf("create account: %v", err)
	}

	steps := []struct {
		kind   string
		amount string
	}{
		{"credit", "200"},
		{"debit", "75.25"},
		{"credit", "10.10"},
		{"debit", "500"}, // fails: overdraw
		{"debit", "34.85"},
	}

	expected := decimal.Zero
	for _, step := range steps {
		amount := mustDecimal(t, step.amount)
		if step.kind == "credit" {
			if _, err := service.Credit(context.Background(), "acct-1", amount, ""); err == nil {
				expected = expected.Add(amount)
			}
			continue
		}
		if _, err := service.Debit(context.Background(), "acct-1", amount, ""); err == nil {
			expected = expected.Sub(amount)
		}
	}

	account, err := service.GetBalance(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if !account.Balance.Equal(expected) {
		t.Fatalf("expected balance %s, got %s", expected, account.Balance)
	}

	history, err := service.ListTransactions(context.Background(), "acct-1", 100, 0)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	sum := decimal.Zero
	for _, tx := range history {
		sum = sum.Add(tx.SignedAmount())
	}
	if !sum.Equal(account.Balance) {
		t.Fatalf("transaction log sums to %s but balance is %s", sum, account.Balance)
	}
}

func TestConcurrentDebitsNeverJointlyOverdraw(t *testing.T) {
	service := newTestService()
	if _, err := service.CreateAccount(context.Background(), "acct-1"); err != nil {
		t.Fatalf("create account: %v", err)
	}
	if _, err := service.Credit(context.Background(), "acct-1", mustDecimal(t, "50"), ""); err != nil {
		t.Fatalf("credit: %v", err)
	}

	// 20 debits of 10 against a balance of 50: exactly 5 may succeed.
	const workers = 20
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			_, err := service.Debit(context.Background(), "acct-1", mustDecimal(t, "10"), "drain")
			results <- err
		}()
	}

	succeeded := 0
	for i := 0; i < workers; i++ {
		err := <-results
		if err == nil {
			succeeded++
			continue
		}
		if !errors.Is(err, domainerrors.ErrInsufficientFunds) {
			t.Fatalf("unexpected debit error: %v", err)
		}
	}
	if succeeded != 5 {
		t.Fatalf("expected exactly 5 debits to fit within the balance, got %d", succeeded)
	}

	account, err := service.GetBalance(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if !account.Balance.IsZero() {
		t.Fatalf("expected drained balance, got %s", account.Balance)
	}
}
