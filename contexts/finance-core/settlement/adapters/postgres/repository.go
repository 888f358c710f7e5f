package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/domain/entities"
	domainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/domain/errors"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/ports"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
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

func (r *Repository) SaveSplitPayment(ctx context.Context, payment entities.SplitPayment) error {
	row := paymentModelFromEntity(payment)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"contributor_tx_id": row.ContributorTxID,
			"maintainer_tx_id":  row.MaintainerTxID,
			"transaction_hash":  row.TransactionHash,
			"status":            row.Status,
			"failure_reason":    row.FailureReason,
			"updated_at":        row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("settlement_repo_save_payment_failed", create.Error,
			"payment_id", row.ID,
			"project_id", row.ProjectID,
		)
	}
	return nil
}

func (r *Repository) GetSplitPayment(ctx context.Context, paymentID string) (entities.SplitPayment, error) {
	var row paymentModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(paymentID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.SplitPayment{}, domainerrors.ErrSettlementNotFound
		}
		return entities.SplitPayment{}, r.logError("settlement_repo_get_payment_failed", err,
			"payment_id", strings.TrimSpace(paymentID),
		)
	}
	return row.toEntity()
}

func (r *Repository) GetSplitPaymentByProject(ctx context.Context, projectID string) (entities.SplitPayment, error) {
	var row paymentModel
	err := r.db.WithContext(ctx).
		Where("project_id = ?", strings.TrimSpace(projectID)).
		Order("created_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.SplitPayment{}, domainerrors.ErrSettlementNotFound
		}
		return entities.SplitPayment{}, r.logError("settlement_repo_get_payment_by_project_failed", err,
			"project_id", strings.TrimSpace(projectID),
		)
	}
	return row.toEntity()
}

func (r *Repository) ListSplitPaymentsByHackathon(ctx context.Context, hackathonID string) ([]entities.SplitPayment, error) {
	var rows []paymentModel
	if err := r.db.WithContext(ctx).
		Where("hackathon_id = ?", strings.TrimSpace(hackathonID)).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("settlement_repo_list_payments_failed", err,
			"hackathon_id", strings.TrimSpace(hackathonID),
		)
	}
	items := make([]entities.SplitPayment, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, r.logError("settlement_repo_decode_payment_failed", err,
				"payment_id", row.ID,
			)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return r.logError("settlement_repo_append_outbox_marshal_failed", err,
			"event_id", strings.TrimSpace(envelope.EventID),
			"event_type", strings.TrimSpace(envelope.EventType),
		)
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAtUTC.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("settlement_repo_append_outbox_insert_failed", create.Error,
			"outbox_id", row.OutboxID,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("settlement_repo_list_pending_outbox_failed", err, "limit", limit)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("settlement_repo_mark_outbox_published_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "finance-core/settlement",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("settlement repository operation failed", fields...)
	return err
}

type paymentModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	ProjectID        string    `gorm:"column:project_id"`
	HackathonID      string    `gorm:"column:hackathon_id"`
	TotalAmount      string    `gorm:"column:total_amount;type:numeric(30,8)"`
	ContributorShare string    `gorm:"column:contributor_share;type:numeric(30,8)"`
	MaintainerShare  string    `gorm:"column:maintainer_share;type:numeric(30,8)"`
	ContributorTxID  string    `gorm:"column:contributor_tx_id"`
	MaintainerTxID   string    `gorm:"column:maintainer_tx_id"`
	TransactionHash  string    `gorm:"column:transaction_hash"`
	Status           string    `gorm:"column:status"`
	FailureReason    string    `gorm:"column:failure_reason"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (paymentModel) TableName() string {
	return "split_payments"
}

func paymentModelFromEntity(payment entities.SplitPayment) paymentModel {
	return paymentModel{
		ID:               strings.TrimSpace(payment.ID),
		ProjectID:        strings.TrimSpace(payment.ProjectID),
		HackathonID:      strings.TrimSpace(payment.HackathonID),
		TotalAmount:      payment.TotalAmount.String(),
		ContributorShare: payment.ContributorShare.String(),
		MaintainerShare:  payment.MaintainerShare.String(),
		ContributorTxID:  strings.TrimSpace(payment.ContributorTxID),
		MaintainerTxID:   strings.TrimSpace(payment.MaintainerTxID),
		TransactionHash:  strings.TrimSpace(payment.TransactionHash),
		Status:           string(payment.Status),
		FailureReason:    payment.FailureReason,
		CreatedAt:        payment.CreatedAt.UTC(),
		UpdatedAt:        payment.UpdatedAt.UTC(),
	}
}

func (m paymentModel) toEntity() (entities.SplitPayment, error) {
	totalAmount, err := decimal.NewFromString(m.TotalAmount)
	if err != nil {
		return entities.SplitPayment{}, err
	}
	contributorShare, err := decimal.NewFromString(m.ContributorShare)
	if err != nil {
		return entities.SplitPayment{}, err
	}
	maintainerShare, err := decimal.NewFromString(m.MaintainerShare)
	if err != nil {
		return entities.SplitPayment{}, err
	}
	return entities.SplitPayment{
		ID:               m.ID,
		ProjectID:        m.ProjectID,
		HackathonID:      m.HackathonID,
		TotalAmount:      totalAmount,
		ContributorShare: contributorShare,
		MaintainerShare:  maintainerShare,
		ContributorTxID:  m.ContributorTxID,
		MaintainerTxID:   m.MaintainerTxID,
		TransactionHash:  m.TransactionHash,
		Status:           entities.SettlementStatus(m.Status),
		FailureReason:    m.FailureReason,
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}, nil
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload;type:jsonb"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "settlement_outbox"
}
