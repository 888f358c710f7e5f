package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/domain/entities"
	domainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/domain/errors"
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

func (r *Repository) SaveProject(ctx context.Context, projection entities.ProjectProjection) error {
	row := projectModel{
		ProjectID:          strings.TrimSpace(projection.ProjectID),
		HackathonID:        strings.TrimSpace(projection.HackathonID),
		ContributorAccount: strings.TrimSpace(projection.ContributorAccount),
		MaintainerAccount:  strings.TrimSpace(projection.MaintainerAccount),
		CreatedAt:          projection.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "project_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"hackathon_id":        row.HackathonID,
			"contributor_account": row.ContributorAccount,
			"maintainer_account":  row.MaintainerAccount,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("results_repo_save_project_failed", create.Error,
			"project_id", row.ProjectID,
		)
	}
	return nil
}

func (r *Repository) GetProject(ctx context.Context, projectID string) (entities.ProjectProjection, error) {
	var row projectModel
	err := r.db.WithContext(ctx).
		Where("project_id = ?", strings.TrimSpace(projectID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ProjectProjection{}, domainerrors.ErrProjectNotFound
		}
		return entities.ProjectProjection{}, r.logError("results_repo_get_project_failed", err,
			"project_id", strings.TrimSpace(projectID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListProjectsByHackathon(ctx context.Context, hackathonID string) ([]entities.ProjectProjection, error) {
	var rows []projectModel
	if err := r.db.WithContext(ctx).
		Where("hackathon_id = ?", strings.TrimSpace(hackathonID)).
		Order("created_at ASC, project_id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("results_repo_list_projects_failed", err,
			"hackathon_id", strings.TrimSpace(hackathonID),
		)
	}
	items := make([]entities.ProjectProjection, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// UpsertResult keeps created_at from the existing row so recomputes only move
// updated_at.
func (r *Repository) UpsertResult(ctx context.Context, result entities.Result) (entities.Result, error) {
	row := resultModelFromEntity(result)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "hackathon_id"}, {Name: "project_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"final_rank":          row.FinalRank,
			"total_votes":         row.TotalVotes,
			"yes_votes":           row.YesVotes,
			"no_votes":            row.NoVotes,
			"approval_percentage": row.ApprovalPercentage,
			"voting_status":       row.VotingStatus,
			"total_funding":       row.TotalFunding,
			"contributor_share":   row.ContributorShare,
			"maintainer_share":    row.MaintainerShare,
			"award_category":      row.AwardCategory,
			"metrics":             row.Metrics,
			"updated_at":          row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return entities.Result{}, r.logError("results_repo_upsert_result_failed", create.Error,
			"hackathon_id", row.HackathonID,
			"project_id", row.ProjectID,
		)
	}
	return r.GetResult(ctx, row.HackathonID, row.ProjectID)
}

func (r *Repository) GetResult(ctx context.Context, hackathonID string, projectID string) (entities.Result, error) {
	var row resultModel
	err := r.db.WithContext(ctx).
		Where("hackathon_id = ?", strings.TrimSpace(hackathonID)).
		Where("project_id = ?", strings.TrimSpace(projectID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Result{}, domainerrors.ErrResultNotFound
		}
		return entities.Result{}, r.logError("results_repo_get_result_failed", err,
			"hackathon_id", strings.TrimSpace(hackathonID),
			"project_id", strings.TrimSpace(projectID),
		)
	}
	return row.toEntity()
}

func (r *Repository) GetResultByProject(ctx context.Context, projectID string) (entities.Result, error) {
	var row resultModel
	err := r.db.WithContext(ctx).
		Where("project_id = ?", strings.TrimSpace(projectID)).
		Order("updated_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Result{}, domainerrors.ErrResultNotFound
		}
		return entities.Result{}, r.logError("results_repo_get_result_by_project_failed", err,
			"project_id", strings.TrimSpace(projectID),
		)
	}
	return row.toEntity()
}

func (r *Repository) ListResultsByHackathon(ctx context.Context, hackathonID string) ([]entities.Result, error) {
	var rows []resultModel
	if err := r.db.WithContext(ctx).
		Where("hackathon_id = ?", strings.TrimSpace(hackathonID)).
		Order("final_rank ASC, project_id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("results_repo_list_results_failed", err,
			"hackathon_id", strings.TrimSpace(hackathonID),
		)
	}
	items := make([]entities.Result, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, r.logError("results_repo_decode_result_failed", err,
				"hackathon_id", row.HackathonID,
				"project_id", row.ProjectID,
			)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "hackathon-governance/results-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("results repository operation failed", fields...)
	return err
}

type projectModel struct {
	ProjectID          string    `gorm:"column:project_id;primaryKey"`
	HackathonID        string    `gorm:"column:hackathon_id"`
	ContributorAccount string    `gorm:"column:contributor_account"`
	MaintainerAccount  string    `gorm:"column:maintainer_account"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

func (projectModel) TableName() string {
	return "hackathon_projects"
}

func (m projectModel) toEntity() entities.ProjectProjection {
	return entities.ProjectProjection{
		ProjectID:          m.ProjectID,
		HackathonID:        m.HackathonID,
		ContributorAccount: m.ContributorAccount,
		MaintainerAccount:  m.MaintainerAccount,
		CreatedAt:          m.CreatedAt.UTC(),
	}
}

type resultModel struct {
	HackathonID        string    `gorm:"column:hackathon_id;primaryKey"`
	ProjectID          string    `gorm:"column:project_id;primaryKey"`
	FinalRank          int       `gorm:"column:final_rank"`
	TotalVotes         int       `gorm:"column:total_votes"`
	YesVotes           int       `gorm:"column:yes_votes"`
	NoVotes            int       `gorm:"column:no_votes"`
	ApprovalPercentage string    `gorm:"column:approval_percentage;type:numeric(30,8)"`
	VotingStatus       string    `gorm:"column:voting_status"`
	TotalFunding       string    `gorm:"column:total_funding;type:numeric(30,8)"`
	ContributorShare   string    `gorm:"column:contributor_share;type:numeric(30,8)"`
	MaintainerShare    string    `gorm:"column:maintainer_share;type:numeric(30,8)"`
	AwardCategory      string    `gorm:"column:award_category"`
	Metrics            []byte    `gorm:"column:metrics;type:jsonb"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (resultModel) TableName() string {
	return "hackathon_results"
}

func resultModelFromEntity(result entities.Result) resultModel {
	metrics := result.Metrics
	if len(metrics) == 0 {
		metrics = json.RawMessage("{}")
	}
	return resultModel{
		HackathonID:        strings.TrimSpace(result.HackathonID),
		ProjectID:          strings.TrimSpace(result.ProjectID),
		FinalRank:          result.FinalRank,
		TotalVotes:         result.TotalVotes,
		YesVotes:           result.YesVotes,
		NoVotes:            result.NoVotes,
		ApprovalPercentage: result.ApprovalPercentage.String(),
		VotingStatus:       string(result.VotingStatus),
		TotalFunding:       result.TotalFunding.String(),
		ContributorShare:   result.ContributorShare.String(),
		MaintainerShare:    result.MaintainerShare.String(),
		AwardCategory:      string(result.AwardCategory),
		Metrics:            metrics,
		CreatedAt:          result.CreatedAt.UTC(),
		UpdatedAt:          result.UpdatedAt.UTC(),
	}
}

func (m resultModel) toEntity() (entities.Result, error) {
	pct, err := decimal.NewFromString(m.ApprovalPercentage)
	if err != nil {
		return entities.Result{}, err
	}
	totalFunding, err := decimal.NewFromString(m.TotalFunding)
	if err != nil {
		return entities.Result{}, err
	}
	contributorShare, err := decimal.NewFromString(m.ContributorShare)
	if err != nil {
		return entities.Result{}, err
	}
	maintainerShare, err := decimal.NewFromString(m.MaintainerShare)
	if err != nil {
		return entities.Result{}, err
	}
	return entities.Result{
		HackathonID:        m.HackathonID,
		ProjectID:          m.ProjectID,
		FinalRank:          m.FinalRank,
		TotalVotes:         m.TotalVotes,
		YesVotes:           m.YesVotes,
		NoVotes:            m.NoVotes,
		ApprovalPercentage: pct,
		VotingStatus:       entities.VotingStatus(m.VotingStatus),
		TotalFunding:       totalFunding,
		ContributorShare:   contributorShare,
		MaintainerShare:    maintainerShare,
		AwardCategory:      entities.AwardCategory(m.AwardCategory),
		Metrics:            json.RawMessage(m.Metrics),
		CreatedAt:          m.CreatedAt.UTC(),
		UpdatedAt:          m.UpdatedAt.UTC(),
	}, nil
}
