package postgresadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/domain/entities"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/ports"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// ErrOutboxPayloadConflict reports an outbox append whose event id was seen
// before with a different payload.
var ErrOutboxPayloadConflict = errors.New("voting outbox payload conflict")

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

// UpsertVote serializes the read-modify-write per (project, voter) row with a
// row lock, so concurrent revotes resolve by commit order and keep the
// original created_at.
func (r *Repository) UpsertVote(ctx context.Context, vote entities.Vote) (entities.Vote, bool, error) {
	row := voteModelFromEntity(vote)
	updated := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing voteModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("project_id = ?", row.ProjectID).
			Where("voter_id = ?", row.VoterID).
			First(&existing).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(&row).Error
			}
			return err
		}

		updated = true
		row.CreatedAt = existing.CreatedAt
		return tx.Model(&voteModel{}).
			Where("project_id = ?", row.ProjectID).
			Where("voter_id = ?", row.VoterID).
			Updates(map[string]any{
				"hackathon_id": row.HackathonID,
				"role":         row.Role,
				"kind":         row.Kind,
				"updated_at":   row.UpdatedAt,
			}).Error
	})
	if err != nil {
		return entities.Vote{}, false, r.logError("voting_repo_upsert_vote_failed", err,
			"project_id", row.ProjectID,
			"voter_id", row.VoterID,
		)
	}
	return row.toEntity(), updated, nil
}

func (r *Repository) ListVotesByProject(ctx context.Context, projectID string) ([]entities.Vote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", strings.TrimSpace(projectID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_votes_by_project_failed", err,
			"project_id", strings.TrimSpace(projectID),
		)
	}
	return toVoteEntities(rows), nil
}

func (r *Repository) ListVotesByHackathon(ctx context.Context, hackathonID string) ([]entities.Vote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("hackathon_id = ?", strings.TrimSpace(hackathonID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_votes_by_hackathon_failed", err,
			"hackathon_id", strings.TrimSpace(hackathonID),
		)
	}
	return toVoteEntities(rows), nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return r.logError("voting_repo_append_outbox_marshal_failed", err,
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
		return r.logError("voting_repo_append_outbox_insert_failed", create.Error,
			"outbox_id", row.OutboxID,
		)
	}
	if create.RowsAffected > 0 {
		return nil
	}

	var existing outboxModel
	if err := r.db.WithContext(ctx).
		Select("payload").
		Where("outbox_id = ?", row.OutboxID).
		First(&existing).Error; err != nil {
		return r.logError("voting_repo_append_outbox_load_existing_failed", err,
			"outbox_id", row.OutboxID,
		)
	}
	if !bytes.Equal(existing.Payload, row.Payload) {
		return ErrOutboxPayloadConflict
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
		return nil, r.logError("voting_repo_list_pending_outbox_failed", err, "limit", limit)
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
		return r.logError("voting_repo_mark_outbox_published_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "hackathon-governance/voting-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("voting repository operation failed", fields...)
	return err
}

type voteModel struct {
	ProjectID   string    `gorm:"column:project_id;primaryKey"`
	VoterID     string    `gorm:"column:voter_id;primaryKey"`
	HackathonID string    `gorm:"column:hackathon_id"`
	Role        string    `gorm:"column:role"`
	Kind        string    `gorm:"column:kind"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (voteModel) TableName() string {
	return "hackathon_votes"
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	row := voteModel{
		ProjectID:   strings.TrimSpace(vote.ProjectID),
		VoterID:     strings.TrimSpace(vote.VoterID),
		HackathonID: strings.TrimSpace(vote.HackathonID),
		Role:        string(vote.Role),
		Kind:        string(vote.Kind),
		CreatedAt:   vote.CreatedAt.UTC(),
		UpdatedAt:   vote.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		HackathonID: m.HackathonID,
		ProjectID:   m.ProjectID,
		VoterID:     m.VoterID,
		Role:        entities.VoterRole(m.Role),
		Kind:        entities.VoteKind(m.Kind),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func toVoteEntities(rows []voteModel) []entities.Vote {
	items := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
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
	return "voting_outbox"
}
