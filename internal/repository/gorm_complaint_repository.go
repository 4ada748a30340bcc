package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/spec-kit/complaint-service/internal/domain"
)

type gormComplaintRepository struct {
	db *gorm.DB
}

// NewGormComplaintRepository returns a gorm-backed implementation.
func NewGormComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &gormComplaintRepository{db: db}
}

func (r *gormComplaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	record := complaintToRecord(complaint)
	if record.ID == "" {
		record.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return translateGormError(err)
	}
	complaint.ID = record.ID
	return nil
}

func (r *gormComplaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	record := complaintToRecord(complaint)
	res := r.db.WithContext(ctx).Model(&complaintRecord{}).
		Where("id = ?", complaint.ID).
		Updates(map[string]any{
			"title":        record.Title,
			"description":  record.Description,
			"category":     record.Category,
			"priority":     record.Priority,
			"status":       record.Status,
			"last_updated": record.LastUpdated,
		})
	if res.Error != nil {
		return translateGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormComplaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	var record complaintRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, translateGormError(err)
	}
	complaint := record.toDomain()
	return &complaint, nil
}

func (r *gormComplaintRepository) List(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	query := r.db.WithContext(ctx).Model(&complaintRecord{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", string(*filter.Priority))
	}

	var records []complaintRecord
	if err := query.Order("date_submitted ASC").Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	result := make([]domain.Complaint, 0, len(records))
	for _, record := range records {
		result = append(result, record.toDomain())
	}
	return result, nil
}

func (r *gormComplaintRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&complaintRecord{})
	if res.Error != nil {
		return translateGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
