package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/domain/entities"
	"github.com/HarjjotSinghh/openwave-sub002/internal/shared/events"
)

// SplitPaymentRepository stores settlement attempts. GetSplitPaymentByProject
// returns the latest attempt for the project.
type SplitPaymentRepository interface {
	SaveSplitPayment(ctx context.Context, payment entities.SplitPayment) error
	GetSplitPayment(ctx context.Context, paymentID string) (entities.SplitPayment, error)
	GetSplitPaymentByProject(ctx context.Context, projectID string) (entities.SplitPayment, error)
	ListSplitPaymentsByHackathon(ctx context.Context, hackathonID string) ([]entities.SplitPayment, error)
}

// ResultView is the dispatcher's read-model of one project's aggregated
// outcome.
type ResultView struct {
	HackathonID      string
	ProjectID        string
	VotingStatus     string
	TotalFunding     decimal.Decimal
	ContributorShare decimal.Decimal
	MaintainerShare  decimal.Decimal
}

// ResultSource exposes the aggregator's outcome to the dispatcher.
type ResultSource interface {
	GetProjectResult(ctx context.Context, projectID string) (ResultView, error)
}

// ProjectAccounts resolves the payout accounts for a project.
type ProjectAccounts interface {
	PayoutAccounts(ctx context.Context, projectID string) (contributorAccount string, maintainerAccount string, err error)
}

// Ledger is the wallet operations the dispatcher needs. Ledger errors,
// including insufficient funds, surface to callers unchanged.
type Ledger interface {
	Debit(ctx context.Context, accountID string, amount decimal.Decimal, reference string) (transactionID string, err error)
	Credit(ctx context.Context, accountID string, amount decimal.Decimal, reference string) (transactionID string, err error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = events.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
