package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fraud-investigation-system/internal/domain/alert"
	"fraud-investigation-system/internal/domain/feedback"
)

// FeedbackRecordModel is the database model for investigator decisions.
// Seq preserves insertion order; rows are never updated except for the
// knowledge_pattern column on the latest row per account, and never deleted.
type FeedbackRecordModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq              int64     `gorm:"autoIncrement;uniqueIndex;not null"`
	AccountID        string    `gorm:"type:varchar(64);index;not null"`
	Decision         string    `gorm:"type:varchar(20);not null"`
	Reason           string    `gorm:"type:text"`
	Timestamp        string    `gorm:"type:varchar(64);not null"`
	RiskLevel        *string   `gorm:"type:varchar(10)"`
	FraudProbability *float64  `gorm:"type:decimal(6,5)"`
	AnomalyScore     *float64  `gorm:"type:decimal(6,5)"`
	InvestigatorID   string    `gorm:"type:varchar(64)"`
	ModelVersion     string    `gorm:"type:varchar(50)"`
	FeatureVector    *string   `gorm:"type:jsonb"`
	KnowledgePattern *string   `gorm:"type:jsonb"`
}

// TableName returns the table name for feedback records
func (FeedbackRecordModel) TableName() string {
	return "investigator_feedback"
}

// FeedbackRepository implements feedback.Store on PostgreSQL. It honors the
// same contract as the JSON-file store: append-only scan in insertion order,
// pattern attachment limited to the latest row per account.
type FeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a feedback repository
func NewFeedbackRepository(client *Client) *FeedbackRepository {
	return &FeedbackRepository{db: client.DB()}
}

// Append inserts one decision row
func (r *FeedbackRepository) Append(ctx context.Context, rec feedback.Record) error {
	model, err := recordToModel(rec)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// All returns every record ordered by insertion sequence
func (r *FeedbackRepository) All(ctx context.Context) ([]feedback.Record, error) {
	var models []FeedbackRecordModel
	if err := r.db.WithContext(ctx).Order("seq asc").Find(&models).Error; err != nil {
		return nil, err
	}
	records := make([]feedback.Record, 0, len(models))
	for i := range models {
		records = append(records, modelToRecord(&models[i]))
	}
	return records, nil
}

// AttachPattern updates the knowledge pattern on the account's most recent row
func (r *FeedbackRepository) AttachPattern(ctx context.Context, accountID string, pattern feedback.KnowledgePattern) error {
	var model FeedbackRecordModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("seq desc").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return feedback.ErrNoDecisionForAccount
		}
		return err
	}

	encoded, err := json.Marshal(pattern)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&FeedbackRecordModel{}).
		Where("id = ?", model.ID).
		Update("knowledge_pattern", string(encoded)).Error
}

func recordToModel(rec feedback.Record) (*FeedbackRecordModel, error) {
	model := &FeedbackRecordModel{
		ID:               uuid.New(),
		AccountID:        rec.AccountID,
		Decision:         string(rec.Decision),
		Reason:           rec.Reason,
		Timestamp:        rec.Timestamp,
		FraudProbability: rec.FraudProbability,
		AnomalyScore:     rec.AnomalyScore,
		InvestigatorID:   rec.InvestigatorID,
		ModelVersion:     rec.ModelVersion,
	}
	if rec.RiskLevel != nil {
		level := string(*rec.RiskLevel)
		model.RiskLevel = &level
	}
	if len(rec.FeatureVector) > 0 {
		encoded, err := json.Marshal(rec.FeatureVector)
		if err != nil {
			return nil, err
		}
		s := string(encoded)
		model.FeatureVector = &s
	}
	if rec.KnowledgePattern != nil {
		encoded, err := json.Marshal(rec.KnowledgePattern)
		if err != nil {
			return nil, err
		}
		s := string(encoded)
		model.KnowledgePattern = &s
	}
	return model, nil
}

func modelToRecord(model *FeedbackRecordModel) feedback.Record {
	rec := feedback.Record{
		AccountID:        model.AccountID,
		Decision:         feedback.Decision(model.Decision),
		Reason:           model.Reason,
		Timestamp:        model.Timestamp,
		FraudProbability: model.FraudProbability,
		AnomalyScore:     model.AnomalyScore,
		InvestigatorID:   model.InvestigatorID,
		ModelVersion:     model.ModelVersion,
	}
	if model.RiskLevel != nil {
		level := alert.RiskLevel(*model.RiskLevel)
		rec.RiskLevel = &level
	}
	if model.FeatureVector != nil {
		// Malformed stored vectors degrade to no vector rather than failing
		var vector []float64
		if err := json.Unmarshal([]byte(*model.FeatureVector), &vector); err == nil {
			rec.FeatureVector = vector
		}
	}
	if model.KnowledgePattern != nil {
		var pattern feedback.KnowledgePattern
		if err := json.Unmarshal([]byte(*model.KnowledgePattern), &pattern); err == nil {
			rec.KnowledgePattern = &pattern
		}
	}
	return rec
}
