package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/mail"
	"github.com/spec-kit/complaint-service/internal/observability"
)

//go:embed templates/*.html
var templateFS embed.FS

var mailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	kindCreated       = "complaint_created"
	kindStatusChanged = "complaint_status_changed"

	outcomeSent    = "sent"
	outcomeFailed  = "failed"
	outcomeSkipped = "skipped"

	mailDateLayout = "Mon, 02 Jan 2006 15:04 MST"
)

// NotificationService emails the operator mailbox about complaint activity.
// Failures are logged and counted, never returned to the caller.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     mail.Sender
	logger     *zap.Logger
	metrics    *observability.Metrics
	adminEmail string
	adminURL   string
}

// NotificationDependencies bundles collaborators for the notification service.
type NotificationDependencies struct {
	Dispatcher events.Dispatcher
	Sender     mail.Sender
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Mail       config.MailConfig
	HTTP       config.HTTPConfig
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: deps.Dispatcher,
		sender:     deps.Sender,
		logger:     logger,
		metrics:    deps.Metrics,
		adminEmail: strings.TrimSpace(deps.Mail.AdminEmail),
		adminURL:   deps.HTTP.FrontendURL + "/admin",
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventComplaintCreated, n.handleComplaintCreated)
	n.dispatcher.Subscribe(events.EventComplaintStatusChanged, n.handleComplaintStatusChanged)
}

// NotifyCreated tells the operator about a new complaint.
func (n *NotificationService) NotifyCreated(ctx context.Context, complaint domain.Complaint) {
	data := struct {
		Title, Description, Category, Priority, Submitted, AdminURL string
	}{
		Title:       complaint.Title,
		Description: complaint.Description,
		Category:    string(complaint.Category),
		Priority:    string(complaint.Priority),
		Submitted:   complaint.DateSubmitted.Format(mailDateLayout),
		AdminURL:    n.adminURL,
	}
	n.send(ctx, kindCreated, complaint.ID, "New Complaint Submitted: "+complaint.Title, "complaint_created.html", data)
}

// NotifyStatusChanged tells the operator a complaint moved from previous to its current status.
func (n *NotificationService) NotifyStatusChanged(ctx context.Context, complaint domain.Complaint, previous domain.ComplaintStatus) {
	data := struct {
		Title, PreviousStatus, NewStatus, Updated, AdminURL string
	}{
		Title:          complaint.Title,
		PreviousStatus: string(previous),
		NewStatus:      string(complaint.Status),
		Updated:        complaint.LastUpdated.Format(mailDateLayout),
		AdminURL:       n.adminURL,
	}
	n.send(ctx, kindStatusChanged, complaint.ID, "Complaint Status Updated: "+complaint.Title, "complaint_status_changed.html", data)
}

func (n *NotificationService) handleComplaintCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ComplaintCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.NotifyCreated(ctx, payload.Complaint)
	return nil
}

func (n *NotificationService) handleComplaintStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ComplaintStatusChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.NotifyStatusChanged(ctx, payload.Complaint, payload.PreviousStatus)
	return nil
}

func (n *NotificationService) send(ctx context.Context, kind, complaintID, subject, tmpl string, data any) {
	if n.adminEmail == "" || n.sender == nil {
		n.logger.Warn("no operator mailbox configured; notification skipped",
			zap.String("kind", kind), zap.String("complaint_id", complaintID))
		n.metrics.RecordNotification(kind, outcomeSkipped)
		return
	}

	var body bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&body, tmpl, data); err != nil {
		n.fail(kind, complaintID, err)
		return
	}

	msg := mail.Message{To: []string{n.adminEmail}, Subject: subject, HTML: body.String()}
	if err := n.sender.Send(ctx, msg); err != nil {
		n.fail(kind, complaintID, err)
		return
	}

	n.logger.Info("notification sent", zap.String("kind", kind), zap.String("complaint_id", complaintID))
	n.metrics.RecordNotification(kind, outcomeSent)
}

func (n *NotificationService) fail(kind, complaintID string, err error) {
	n.logger.Error("notification failed",
		zap.String("kind", kind),
		zap.String("complaint_id", complaintID),
		zap.Error(err))
	n.metrics.RecordNotification(kind, outcomeFailed)
}
