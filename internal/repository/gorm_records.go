package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spec-kit/complaint-service/internal/domain"
)

type userRecord struct {
	ID           string `gorm:"primaryKey;size:36"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	IsAdmin      bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

type complaintRecord struct {
	ID            string    `gorm:"primaryKey;size:36"`
	Title         string    `gorm:"not null"`
	Description   string    `gorm:"not null"`
	Category      string    `gorm:"not null"`
	Priority      string    `gorm:"not null;index:idx_complaints_status_priority,priority:2"`
	Status        string    `gorm:"not null;default:Pending;index:idx_complaints_status_priority,priority:1"`
	DateSubmitted time.Time `gorm:"not null;index"`
	LastUpdated   time.Time `gorm:"not null"`
}

func (complaintRecord) TableName() string { return "complaints" }

type complaintHistoryRecord struct {
	ID          string          `gorm:"primaryKey;size:36"`
	ComplaintID string          `gorm:"size:36;not null;index"`
	Complaint   complaintRecord `gorm:"foreignKey:ComplaintID;constraint:OnDelete:CASCADE"`
	ChangedBy   string          `gorm:"not null"`
	ChangeType  string          `gorm:"not null"`
	OldValue    string          `gorm:"not null"`
	NewValue    string          `gorm:"not null"`
	CreatedAt   time.Time
}

func (complaintHistoryRecord) TableName() string { return "complaint_history" }

// MigrateGorm creates or updates the schema on a gorm-managed store.
func MigrateGorm(db *gorm.DB) error {
	return db.AutoMigrate(&userRecord{}, &complaintRecord{}, &complaintHistoryRecord{})
}

func newID() string {
	return uuid.NewString()
}

func userToRecord(u *domain.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		IsAdmin:      r.IsAdmin,
		CreatedAt:    r.CreatedAt,
	}
}

func complaintToRecord(c *domain.Complaint) complaintRecord {
	return complaintRecord{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Category:      string(c.Category),
		Priority:      string(c.Priority),
		Status:        string(c.Status),
		DateSubmitted: c.DateSubmitted,
		LastUpdated:   c.LastUpdated,
	}
}

func (r complaintRecord) toDomain() domain.Complaint {
	return domain.Complaint{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Category:      domain.ComplaintCategory(r.Category),
		Priority:      domain.ComplaintPriority(r.Priority),
		Status:        domain.ComplaintStatus(r.Status),
		DateSubmitted: r.DateSubmitted,
		LastUpdated:   r.LastUpdated,
	}
}

func (r complaintHistoryRecord) toDomain() domain.ComplaintHistory {
	return domain.ComplaintHistory{
		ID:          r.ID,
		ComplaintID: r.ComplaintID,
		ChangedBy:   r.ChangedBy,
		ChangeType:  domain.ComplaintChangeType(r.ChangeType),
		OldValue:    r.OldValue,
		NewValue:    r.NewValue,
		CreatedAt:   r.CreatedAt,
	}
}
