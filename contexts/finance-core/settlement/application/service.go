package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/domain/entities"
	domainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/domain/errors"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/ports"
)

const statusApproved = "approved"

// ProjectLocks serializes settlement attempts per project so two concurrent
// Settle calls cannot both pass the already-settled check.
type ProjectLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewProjectLocks() *ProjectLocks {
	return &ProjectLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *ProjectLocks) Acquire(projectID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[projectID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[projectID] = lock
	}
	return lock
}

// SettleResult carries the completed attempt and the ledger transaction ids
// of both payout legs.
type SettleResult struct {
	Payment         entities.SplitPayment
	ContributorTxID string
	MaintainerTxID  string
}

// Service dispatches approved funding from the pool account to project payout
// accounts.
type Service struct {
	Payments    ports.SplitPaymentRepository
	Results     ports.ResultSource
	Accounts    ports.ProjectAccounts
	Ledger      ports.Ledger
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Locks       *ProjectLocks
	PoolAccount string
	Logger      *slog.Logger
}

// Settle pays out one approved project. The pool debit and both payout
// credits either all land or the pool is made whole again: on a failure after
// the debit every share not delivered is credited back, and any share already
// delivered is reversed. Ledger errors, including insufficient pool funds,
// surface unchanged. A failed attempt leaves a failed SplitPayment row and
// may be retried.
func (s Service) Settle(ctx context.Context, hackathonID string, projectID string) (SettleResult, error) {
	logger := ResolveLogger(s.Logger)

	hackathonID = strings.TrimSpace(hackathonID)
	projectID = strings.TrimSpace(projectID)
	if hackathonID == "" || projectID == "" {
		return SettleResult{}, domainerrors.ErrInvalidSettlementInput
	}

	lock := s.Locks.Acquire(projectID)
	lock.Lock()
	defer lock.Unlock()

	latest, err := s.Payments.GetSplitPaymentByProject(ctx, projectID)
	if err != nil && !errors.Is(err, domainerrors.ErrSettlementNotFound) {
		return SettleResult{}, err
	}
	if err == nil && latest.Status == entities.SettlementStatusCompleted {
		return SettleResult{}, domainerrors.ErrAlreadySettled
	}

	// Status is re-read inside the critical section so a recompute that
	// flipped the project after the caller's last look is honored.
	result, err := s.Results.GetProjectResult(ctx, projectID)
	if err != nil {
		return SettleResult{}, err
	}
	if result.VotingStatus != statusApproved {
		return SettleResult{}, domainerrors.ErrNotApproved
	}

	contributorAccount, maintainerAccount, err := s.Accounts.PayoutAccounts(ctx, projectID)
	if err != nil {
		return SettleResult{}, err
	}

	paymentID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return SettleResult{}, err
	}
	now := s.Clock.Now().UTC()
	payment := entities.SplitPayment{
		ID:               paymentID,
		ProjectID:        projectID,
		HackathonID:      result.HackathonID,
		TotalAmount:      result.TotalFunding,
		ContributorShare: result.ContributorShare,
		MaintainerShare:  result.MaintainerShare,
		Status:           entities.SettlementStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Payments.SaveSplitPayment(ctx, payment); err != nil {
		return SettleResult{}, err
	}

	if _, err := s.Ledger.Debit(ctx, s.PoolAccount, payment.TotalAmount, payment.ID); err != nil {
		s.markFailed(ctx, &payment, "pool debit: "+err.Error())
		return SettleResult{}, err
	}

	contributorTxID, err := s.Ledger.Credit(ctx, contributorAccount, payment.ContributorShare, payment.ID)
	if err != nil {
		s.compensate(ctx, payment, decimal.Zero, "", payment.TotalAmount)
		s.markFailed(ctx, &payment, "contributor credit: "+err.Error())
		return SettleResult{}, err
	}
	payment.ContributorTxID = contributorTxID

	maintainerTxID, err := s.Ledger.Credit(ctx, maintainerAccount, payment.MaintainerShare, payment.ID)
	if err != nil {
		s.compensate(ctx, payment, payment.ContributorShare, contributorAccount, payment.MaintainerShare)
		s.markFailed(ctx, &payment, "maintainer credit: "+err.Error())
		return SettleResult{}, err
	}
	payment.MaintainerTxID = maintainerTxID

	payment.Status = entities.SettlementStatusCompleted
	payment.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Payments.SaveSplitPayment(ctx, payment); err != nil {
		return SettleResult{}, err
	}
	s.appendSettlementEvent(ctx, payment, "settlement.completed")

	logger.Info("settlement completed",
		"event", "settlement_completed",
		"module", "finance-core/settlement",
		"layer", "application",
		"hackathon_id", payment.HackathonID,
		"project_id", payment.ProjectID,
		"payment_id", payment.ID,
		"total_amount", payment.TotalAmount.String(),
		"contributor_share", payment.ContributorShare.String(),
		"maintainer_share", payment.MaintainerShare.String(),
	)
	return SettleResult{
		Payment:         payment,
		ContributorTxID: payment.ContributorTxID,
		MaintainerTxID:  payment.MaintainerTxID,
	}, nil
}

// compensate returns the pool to its pre-settlement balance. The undelivered
// remainder is always credited back; a share already delivered is reversed
// first, and if the reversal cannot be applied the shortfall is logged for
// manual follow-up.
func (s Service) compensate(
	ctx context.Context,
	payment entities.SplitPayment,
	delivered decimal.Decimal,
	deliveredAccount string,
	undelivered decimal.Decimal,
) {
	logger := ResolveLogger(s.Logger)
	recovered := undelivered

	if delivered.IsPositive() {
		if _, err := s.Ledger.Debit(ctx, deliveredAccount, delivered, payment.ID+":reversal"); err != nil {
			logger.Error("settlement reversal failed",
				"event", "settlement_reversal_failed",
				"module", "finance-core/settlement",
				"layer", "application",
				"payment_id", payment.ID,
				"account_id", deliveredAccount,
				"amount", delivered.String(),
				"error", err.Error(),
			)
		} else {
			recovered = recovered.Add(delivered)
		}
	}

	if !recovered.IsPositive() {
		return
	}
	if _, err := s.Ledger.Credit(ctx, s.PoolAccount, recovered, payment.ID+":compensation"); err != nil {
		logger.Error("settlement pool compensation failed",
			"event", "settlement_compensation_failed",
			"module", "finance-core/settlement",
			"layer", "application",
			"payment_id", payment.ID,
			"amount", recovered.String(),
			"error", err.Error(),
		)
	}
}

func (s Service) markFailed(ctx context.Context, payment *entities.SplitPayment, reason string) {
	logger := ResolveLogger(s.Logger)

	payment.Status = entities.SettlementStatusFailed
	payment.FailureReason = reason
	payment.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Payments.SaveSplitPayment(ctx, *payment); err != nil {
		logger.Error("failed settlement could not be recorded",
			"event", "settlement_mark_failed_error",
			"module", "finance-core/settlement",
			"layer", "application",
			"payment_id", payment.ID,
			"error", err.Error(),
		)
	}
	s.appendSettlementEvent(ctx, *payment, "settlement.failed")

	logger.Warn("settlement failed",
		"event", "settlement_failed",
		"module", "finance-core/settlement",
		"layer", "application",
		"hackathon_id", payment.HackathonID,
		"project_id", payment.ProjectID,
		"payment_id", payment.ID,
		"reason", reason,
	)
}

func (s Service) appendSettlementEvent(ctx context.Context, payment entities.SplitPayment, eventType string) {
	if s.Outbox == nil {
		return
	}
	logger := ResolveLogger(s.Logger)

	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		logger.Error("settlement event id generation failed",
			"event", "settlement_event_id_failed",
			"module", "finance-core/settlement",
			"layer", "application",
			"payment_id", payment.ID,
			"error", err.Error(),
		)
		return
	}
	payload, err := json.Marshal(map[string]any{
		"payment_id":        payment.ID,
		"hackathon_id":      payment.HackathonID,
		"project_id":        payment.ProjectID,
		"total_amount":      payment.TotalAmount.String(),
		"contributor_share": payment.ContributorShare.String(),
		"maintainer_share":  payment.MaintainerShare.String(),
		"status":            string(payment.Status),
		"failure_reason":    payment.FailureReason,
	})
	if err != nil {
		return
	}
	if err := s.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		SourceService: "openwave",
		OccurredAtUTC: payment.UpdatedAt.UTC(),
		EntityType:    "split_payment",
		EntityID:      payment.ID,
		PartitionKey:  payment.HackathonID,
		SchemaVersion: 1,
		Payload:       payload,
	}); err != nil {
		logger.Error("settlement outbox append failed",
			"event", "settlement_outbox_append_failed",
			"module", "finance-core/settlement",
			"layer", "application",
			"payment_id", payment.ID,
			"error", err.Error(),
		)
	}
}

// ConfirmPayment attaches the external proof-of-payment hash to a completed
// settlement.
func (s Service) ConfirmPayment(ctx context.Context, projectID string, transactionHash string) (entities.SplitPayment, error) {
	projectID = strings.TrimSpace(projectID)
	transactionHash = strings.TrimSpace(transactionHash)
	if transactionHash == "" {
		return entities.SplitPayment{}, domainerrors.ErrInvalidTransactionHash
	}

	lock := s.Locks.Acquire(projectID)
	lock.Lock()
	defer lock.Unlock()

	payment, err := s.Payments.GetSplitPaymentByProject(ctx, projectID)
	if err != nil {
		return entities.SplitPayment{}, err
	}
	if payment.Status != entities.SettlementStatusCompleted {
		return entities.SplitPayment{}, domainerrors.ErrNotCompleted
	}

	payment.TransactionHash = transactionHash
	payment.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Payments.SaveSplitPayment(ctx, payment); err != nil {
		return entities.SplitPayment{}, err
	}

	ResolveLogger(s.Logger).Info("settlement payment confirmed",
		"event", "settlement_payment_confirmed",
		"module", "finance-core/settlement",
		"layer", "application",
		"project_id", projectID,
		"payment_id", payment.ID,
	)
	return payment, nil
}

func (s Service) GetSplitPayment(ctx context.Context, projectID string) (entities.SplitPayment, error) {
	return s.Payments.GetSplitPaymentByProject(ctx, strings.TrimSpace(projectID))
}

func (s Service) ListSplitPayments(ctx context.Context, hackathonID string) ([]entities.SplitPayment, error) {
	return s.Payments.ListSplitPaymentsByHackathon(ctx, strings.TrimSpace(hackathonID))
}
