package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/spec-kit/complaint-service/internal/domain"
)

type gormComplaintHistoryRepository struct {
	db *gorm.DB
}

// NewGormComplaintHistoryRepository returns a gorm-backed implementation.
func NewGormComplaintHistoryRepository(db *gorm.DB) ComplaintHistoryRepository {
	return &gormComplaintHistoryRepository{db: db}
}

func (r *gormComplaintHistoryRepository) Create(ctx context.Context, history *domain.ComplaintHistory) error {
	record := complaintHistoryRecord{
		ID:          newID(),
		ComplaintID: history.ComplaintID,
		ChangedBy:   history.ChangedBy,
		ChangeType:  string(history.ChangeType),
		OldValue:    history.OldValue,
		NewValue:    history.NewValue,
		CreatedAt:   time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Omit("Complaint").Create(&record).Error; err != nil {
		return translateGormError(err)
	}
	history.ID = record.ID
	history.CreatedAt = record.CreatedAt
	return nil
}

func (r *gormComplaintHistoryRepository) ListByComplaint(ctx context.Context, complaintID string) ([]domain.ComplaintHistory, error) {
	var records []complaintHistoryRecord
	if err := r.db.WithContext(ctx).
		Where("complaint_id = ?", complaintID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	result := make([]domain.ComplaintHistory, 0, len(records))
	for _, record := range records {
		result = append(result, record.toDomain())
	}
	return result, nil
}
