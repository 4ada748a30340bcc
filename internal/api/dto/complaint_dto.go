package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// CreateComplaintRequest payload for POST /complaints.
type CreateComplaintRequest struct {
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Category    string `json:"category" validate:"required,complaint_category"`
	Priority    string `json:"priority" validate:"required,complaint_priority"`
}

// UpdateComplaintRequest payload for PUT /complaints/:id. Absent fields are left unchanged.
type UpdateComplaintRequest struct {
	Title       *string `json:"title" validate:"omitnil,notblank"`
	Description *string `json:"description" validate:"omitnil,notblank"`
	Category    *string `json:"category" validate:"omitnil,complaint_category"`
	Priority    *string `json:"priority" validate:"omitnil,complaint_priority"`
	Status      *string `json:"status" validate:"omitnil,complaint_status"`
}

// Patch converts the request into a domain patch.
func (r UpdateComplaintRequest) Patch() domain.ComplaintPatch {
	patch := domain.ComplaintPatch{Title: r.Title, Description: r.Description}
	if r.Category != nil {
		v := domain.ComplaintCategory(*r.Category)
		patch.Category = &v
	}
	if r.Priority != nil {
		v := domain.ComplaintPriority(*r.Priority)
		patch.Priority = &v
	}
	if r.Status != nil {
		v := domain.ComplaintStatus(*r.Status)
		patch.Status = &v
	}
	return patch
}

// ComplaintResponse is the public shape of a complaint.
type ComplaintResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Priority      string    `json:"priority"`
	Status        string    `json:"status"`
	DateSubmitted time.Time `json:"dateSubmitted"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// NewComplaintResponse maps a domain complaint.
func NewComplaintResponse(c *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
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

// HistoryResponse is one audit entry.
type HistoryResponse struct {
	ID          string    `json:"id"`
	ComplaintID string    `json:"complaintId"`
	ChangedBy   string    `json:"changedBy"`
	ChangeType  string    `json:"changeType"`
	OldValue    string    `json:"oldValue"`
	NewValue    string    `json:"newValue"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewHistoryResponse(h domain.ComplaintHistory) HistoryResponse {
	return HistoryResponse{
		ID:          h.ID,
		ComplaintID: h.ComplaintID,
		ChangedBy:   h.ChangedBy,
		ChangeType:  string(h.ChangeType),
		OldValue:    h.OldValue,
		NewValue:    h.NewValue,
		CreatedAt:   h.CreatedAt,
	}
}
