package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/adapters/memory"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/adapters/walletbridge"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/domain/entities"
	domainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/domain/errors"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/ports"
	walletmemory "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/adapters/memory"
	walletapp "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/application"
	walletdomainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/domain/errors"
)

const (
	poolAccount        = "hack-1-pool"
	contributorAccount = "proj-1-contributors"
	maintainerAccount  = "proj-1-maintainers"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type sequenceIDGen struct {
	next int
}

func (g *sequenceIDGen) NewID(_ context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("settle-%04d", g.next), nil
}

type fakeResultSource struct {
	status string
}

func (f *fakeResultSource) GetProjectResult(_ context.Context, projectID string) (ports.ResultView, error) {
	return ports.ResultView{
		HackathonID:      "hack-1",
		ProjectID:        projectID,
		VotingStatus:     f.status,
		TotalFunding:     decimal.NewFromInt(1000),
		ContributorShare: decimal.NewFromInt(700),
		MaintainerShare:  decimal.NewFromInt(300),
	}, nil
}

func (f *fakeResultSource) PayoutAccounts(_ context.Context, _ string) (string, string, error) {
	return contributorAccount, maintainerAccount, nil
}

// failingLedger fails credits to one account while delegating everything else.
type failingLedger struct {
	inner             ports.Ledger
	failCreditAccount string
}

func (f *failingLedger) Debit(ctx context.Context, accountID string, amount decimal.Decimal, reference string) (string, error) {
	return f.inner.Debit(ctx, accountID, amount, reference)
}

func (f *failingLedger) Credit(ctx context.Context, accountID string, amount decimal.Decimal, reference string) (string, error) {
	if accountID == f.failCreditAccount {
		return "", errors.New("payout rail unavailable")
	}
	return f.inner.Credit(ctx, accountID, amount, reference)
}

type testEnv struct {
	service Service
	store   *memory.Store
	wallet  walletapp.Service
	results *fakeResultSource
	ledger  *failingLedger
	clock   *fixedClock
}

func newTestEnv(t *testing.T, poolBalance int64) *testEnv {
	t.Helper()
	ctx := context.Background()

	walletStore := walletmemory.NewStore()
	wallet := walletapp.Service{
		Repo:  walletStore,
		Clock: walletmemory.SystemClock{},
		IDGen: walletmemory.UUIDGenerator{},
	}
	for _, accountID := range []string{poolAccount, contributorAccount, maintainerAccount} {
		if _, err := wallet.CreateAccount(ctx, accountID); err != nil {
			t.Fatalf("create account %s: %v", accountID, err)
		}
	}
	if poolBalance > 0 {
		if _, err := wallet.Credit(ctx, poolAccount, decimal.NewFromInt(poolBalance), "seed"); err != nil {
			t.Fatalf("seed pool: %v", err)
		}
	}

	results := &fakeResultSource{status: "approved"}
	ledger := &failingLedger{inner: walletbridge.NewLedger(wallet)}
	store := memory.NewStore()
	clock := &fixedClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	service := Service{
		Payments:    store,
		Results:     results,
		Accounts:    results,
		Ledger:      ledger,
		Outbox:      store,
		Clock:       clock,
		IDGen:       &sequenceIDGen{},
		Locks:       NewProjectLocks(),
		PoolAccount: poolAccount,
	}
	return &testEnv{
		service: service,
		store:   store,
		wallet:  wallet,
		results: results,
		ledger:  ledger,
		clock:   clock,
	}
}

func (env *testEnv) balance(t *testing.T, accountID string) decimal.Decimal {
	t.Helper()
	account, err := env.wallet.GetBalance(context.Background(), accountID)
	if err != nil {
		t.Fatalf("balance %s: %v", accountID, err)
	}
	return account.Balance
}

func (env *testEnv) outboxEventTypes(t *testing.T) []string {
	t.Helper()
	pending, err := env.store.ListPendingOutbox(context.Background(), 50)
	if err != nil {
		t.Fatalf("ListPendingOutbox: %v", err)
	}
	types := make([]string, 0, len(pending))
	for _, row := range pending {
		types = append(types, row.EventType)
	}
	return types
}

func TestSettlePaysOutSeventyThirtySplit(t *testing.T) {
	env := newTestEnv(t, 1000)
	ctx := context.Background()

	result, err := env.service.Settle(ctx, "hack-1", "proj-1")
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if result.Payment.Status != entities.SettlementStatusCompleted {
		t.Fatalf("status = %q, want completed", result.Payment.Status)
	}
	if result.ContributorTxID == "" || result.MaintainerTxID == "" {
		t.Fatalf("payout transaction ids must be recorded")
	}

	if got := env.balance(t, poolAccount); !got.IsZero() {
		t.Fatalf("pool balance = %s, want 0", got)
	}
	if got := env.balance(t, contributorAccount); !got.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("contributor balance = %s, want 700", got)
	}
	if got := env.balance(t, maintainerAccount); !got.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("maintainer balance = %s, want 300", got)
	}

	types := env.outboxEventTypes(t)
	if len(types) != 1 || types[0] != "settlement.completed" {
		t.Fatalf("outbox = %v, want one settlement.completed", types)
	}
}

func TestSettleNotApprovedLeavesLedgerUntouched(t *testing.T) {
	env := newTestEnv(t, 1000)
	env.results.status = "pending"
	ctx := context.Background()

	if _, err := env.service.Settle(ctx, "hack-1", "proj-1"); !errors.Is(err, domainerrors.ErrNotApproved) {
		t.Fatalf("err = %v, want ErrNotApproved", err)
	}
	if got := env.balance(t, poolAccount); !got.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("pool balance = %s, want untouched 1000", got)
	}
	if _, err := env.store.GetSplitPaymentByProject(ctx, "proj-1"); !errors.Is(err, domainerrors.ErrSettlementNotFound) {
		t.Fatalf("rejected settle must not record an attempt, err = %v", err)
	}
}

func TestSettleTwiceReturnsAlreadySettled(t *testing.T) {
	env := newTestEnv(t, 1000)
	ctx := context.Background()

	if _, err := env.service.Settle(ctx, "hack-1", "proj-1"); err != nil {
		t.Fatalf("first Settle: %v", err)
	}
	if _, err := env.service.Settle(ctx, "hack-1", "proj-1"); !errors.Is(err, domainerrors.ErrAlreadySettled) {
		t.Fatalf("err = %v, want ErrAlreadySettled", err)
	}
	if got := env.balance(t, contributorAccount); !got.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("second settle must not double pay, contributor balance = %s", got)
	}
}

func TestSettleInsufficientPoolPropagatesLedgerError(t *testing.T) {
	env := newTestEnv(t, 100)
	ctx := context.Background()

	if _, err := env.service.Settle(ctx, "hack-1", "proj-1"); !errors.Is(err, walletdomainerrors.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want wallet ErrInsufficientFunds", err)
	}

	payment, err := env.store.GetSplitPaymentByProject(ctx, "proj-1")
	if err != nil {
		t.Fatalf("GetSplitPaymentByProject: %v", err)
	}
	if payment.Status != entities.SettlementStatusFailed {
		t.Fatalf("status = %q, want failed", payment.Status)
	}
	if payment.FailureReason == "" {
		t.Fatalf("failed attempt must record a reason")
	}
	if got := env.balance(t, poolAccount); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("pool balance = %s, want untouched 100", got)
	}
}

func TestFailedMaintainerCreditRestoresPoolAndAllowsRetry(t *testing.T) {
	env := newTestEnv(t, 1000)
	env.ledger.failCreditAccount = maintainerAccount
	ctx := context.Background()

	if _, err := env.service.Settle(ctx, "hack-1", "proj-1"); err == nil {
		t.Fatalf("Settle must surface the payout failure")
	}

	if got := env.balance(t, poolAccount); !got.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("pool balance = %s, want fully restored 1000", got)
	}
	if got := env.balance(t, contributorAccount); !got.IsZero() {
		t.Fatalf("contributor balance = %s, want reversed to 0", got)
	}
	payment, err := env.store.GetSplitPaymentByProject(ctx, "proj-1")
	if err != nil {
		t.Fatalf("GetSplitPaymentByProject: %v", err)
	}
	if payment.Status != entities.SettlementStatusFailed {
		t.Fatalf("status = %q, want failed", payment.Status)
	}
	types := env.outboxEventTypes(t)
	if len(types) != 1 || types[0] != "settlement.failed" {
		t.Fatalf("outbox = %v, want one settlement.failed", types)
	}

	env.ledger.failCreditAccount = ""
	env.clock.now = env.clock.now.Add(time.Minute)
	result, err := env.service.Settle(ctx, "hack-1", "proj-1")
	if err != nil {
		t.Fatalf("retry Settle: %v", err)
	}
	if result.Payment.Status != entities.SettlementStatusCompleted {
		t.Fatalf("retry status = %q, want completed", result.Payment.Status)
	}
	if got := env.balance(t, poolAccount); !got.IsZero() {
		t.Fatalf("pool balance after retry = %s, want 0", got)
	}
	if got := env.balance(t, contributorAccount); !got.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("contributor balance after retry = %s, want 700", got)
	}
	if got := env.balance(t, maintainerAccount); !got.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("maintainer balance after retry = %s, want 300", got)
	}
}

func TestConfirmPaymentAttachesTransactionHash(t *testing.T) {
	env := newTestEnv(t, 1000)
	ctx := context.Background()

	if _, err := env.service.Settle(ctx, "hack-1", "proj-1"); err != nil {
		t.Fatalf("Settle: %v", err)
	}

	payment, err := env.service.ConfirmPayment(ctx, "proj-1", "0xabc123")
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if payment.TransactionHash != "0xabc123" {
		t.Fatalf("hash = %q, want 0xabc123", payment.TransactionHash)
	}
	if payment.Status != entities.SettlementStatusCompleted {
		t.Fatalf("confirm must not change status, got %q", payment.Status)
	}
}

func TestConfirmPaymentValidation(t *testing.T) {
	env := newTestEnv(t, 1000)
	ctx := context.Background()

	if _, err := env.service.ConfirmPayment(ctx, "proj-1", "  "); !errors.Is(err, domainerrors.ErrInvalidTransactionHash) {
		t.Fatalf("err = %v, want ErrInvalidTransactionHash", err)
	}
	if _, err := env.service.ConfirmPayment(ctx, "proj-1", "0xabc"); !errors.Is(err, domainerrors.ErrSettlementNotFound) {
		t.Fatalf("err = %v, want ErrSettlementNotFound before any settle", err)
	}

	env.results.status = "approved"
	env.ledger.failCreditAccount = maintainerAccount
	if _, err := env.service.Settle(ctx, "hack-1", "proj-1"); err == nil {
		t.Fatalf("Settle must fail for this case")
	}
	if _, err := env.service.ConfirmPayment(ctx, "proj-1", "0xabc"); !errors.Is(err, domainerrors.ErrNotCompleted) {
		t.Fatalf("err = %v, want ErrNotCompleted on failed attempt", err)
	}
}
