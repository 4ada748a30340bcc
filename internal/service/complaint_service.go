package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

const (
	complaintResource = "Complaint"
	msgRequiredFields = "Please provide all required fields."
	msgInvalidUpdate  = "Invalid complaint update"
	msgAdminRequired  = "Not authorized as an admin"
)

// ComplaintService coordinates the complaint lifecycle.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	history    repository.ComplaintHistoryRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// ComplaintDependencies bundles collaborators for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	HistoryRepo   repository.ComplaintHistoryRepository
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	Clock         func() time.Time
}

// ComplaintCreateInput describes complaint submission payload.
type ComplaintCreateInput struct {
	Title       string
	Description string
	Category    domain.ComplaintCategory
	Priority    domain.ComplaintPriority
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		history:    deps.HistoryRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        clock,
	}
}

// Create stores a new Pending complaint and announces it.
func (s *ComplaintService) Create(ctx context.Context, input ComplaintCreateInput) (*domain.Complaint, error) {
	problems := map[string]any{}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		problems["title"] = "is required"
	}
	if strings.TrimSpace(input.Description) == "" {
		problems["description"] = "is required"
	}
	if !input.Category.Valid() {
		problems["category"] = "must be one of Product, Service, Support"
	}
	if !input.Priority.Valid() {
		problems["priority"] = "must be one of Low, Medium, High"
	}
	if len(problems) > 0 {
		return nil, apperrors.NewValidationError(msgRequiredFields, problems)
	}

	now := s.timestamp()
	complaint := &domain.Complaint{
		Title:         title,
		Description:   input.Description,
		Category:      input.Category,
		Priority:      input.Priority,
		Status:        domain.StatusPending,
		DateSubmitted: now,
		LastUpdated:   now,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		Payload:     events.ComplaintCreatedPayload{Complaint: *complaint},
	})
	return complaint, nil
}

// List returns complaints matching every present predicate of filter.
func (s *ComplaintService) List(ctx context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	complaints, err := s.complaints.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return complaints, nil
}

// GetByID fetches one complaint.
func (s *ComplaintService) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	if !isComplaintID(id) {
		return nil, apperrors.NewNotFound(complaintResource, nil)
	}
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return complaint, nil
}

// Update applies patch on behalf of actor. Only admins may update; any status may follow any other.
func (s *ComplaintService) Update(ctx context.Context, id string, actor domain.Identity, patch domain.ComplaintPatch) (*domain.Complaint, error) {
	if !actor.IsAdmin {
		return nil, apperrors.NewForbidden(msgAdminRequired)
	}

	complaint, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if problems := patch.Validate(); problems != nil {
		return nil, apperrors.NewValidationError(msgInvalidUpdate, problems)
	}

	previous := *complaint
	patch.ApplyTo(complaint)
	complaint.LastUpdated = s.timestamp()

	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, mapStoreError(err)
	}

	s.recordChanges(ctx, actor.UserID, previous, *complaint)

	if patch.Status != nil && previous.Status != complaint.Status {
		s.publishEvent(ctx, events.Event{
			Type:        events.EventComplaintStatusChanged,
			ComplaintID: complaint.ID,
			ActorID:     actor.UserID,
			Payload: events.ComplaintStatusChangedPayload{
				Complaint:      *complaint,
				PreviousStatus: previous.Status,
			},
		})
	}
	return complaint, nil
}

// Delete removes a complaint. Only admins may delete.
func (s *ComplaintService) Delete(ctx context.Context, id string, actor domain.Identity) error {
	if !actor.IsAdmin {
		return apperrors.NewForbidden(msgAdminRequired)
	}
	if !isComplaintID(id) {
		return apperrors.NewNotFound(complaintResource, nil)
	}
	if err := s.complaints.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}

// History lists the recorded changes of a complaint for an admin.
func (s *ComplaintService) History(ctx context.Context, id string, actor domain.Identity) ([]domain.ComplaintHistory, error) {
	if !actor.IsAdmin {
		return nil, apperrors.NewForbidden(msgAdminRequired)
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if s.history == nil {
		return []domain.ComplaintHistory{}, nil
	}
	entries, err := s.history.ListByComplaint(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return entries, nil
}

func (s *ComplaintService) recordChanges(ctx context.Context, actorID string, before, after domain.Complaint) {
	if s.history == nil {
		return
	}
	changes := []struct {
		kind     domain.ComplaintChangeType
		from, to string
	}{
		{domain.ChangeTypeStatus, string(before.Status), string(after.Status)},
		{domain.ChangeTypePriority, string(before.Priority), string(after.Priority)},
		{domain.ChangeTypeCategory, string(before.Category), string(after.Category)},
	}
	for _, change := range changes {
		if change.from == change.to {
			continue
		}
		entry := &domain.ComplaintHistory{
			ComplaintID: after.ID,
			ChangedBy:   actorID,
			ChangeType:  change.kind,
			OldValue:    change.from,
			NewValue:    change.to,
		}
		if err := s.history.Create(ctx, entry); err != nil {
			s.logger.Error("record complaint history",
				zap.String("complaint_id", after.ID),
				zap.String("change_type", string(change.kind)),
				zap.Error(err))
		}
	}
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.timestamp()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Error("publish event",
			zap.String("event_type", string(event.Type)),
			zap.String("complaint_id", event.ComplaintID),
			zap.Error(err))
	}
}

// timestamp is truncated to what the stores keep, so returned records match stored ones.
func (s *ComplaintService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func isComplaintID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func mapStoreError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(complaintResource, nil)
	}
	return apperrors.NewInternalError(err)
}
