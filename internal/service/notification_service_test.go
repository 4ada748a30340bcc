package service_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/service"
)

func newNotificationService(sender *fakeSender, dispatcher events.Dispatcher, adminEmail string, logger *zap.Logger) (*service.NotificationService, *observability.Metrics) {
	metrics := observability.NewMetrics()
	svc := service.NewNotificationService(service.NotificationDependencies{
		Dispatcher: dispatcher,
		Sender:     sender,
		Logger:     logger,
		Metrics:    metrics,
		Mail:       config.MailConfig{AdminEmail: adminEmail},
		HTTP:       config.HTTPConfig{FrontendURL: "https://complaints.example.com"},
	})
	return svc, metrics
}

func TestNotificationService_NotifyCreated(t *testing.T) {
	sender := &fakeSender{}
	svc, _ := newNotificationService(sender, nil, "ops@example.com", zap.NewNop())

	svc.NotifyCreated(context.Background(), *storedComplaint())

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"ops@example.com"}, msgs[0].To)
	assert.Equal(t, "New Complaint Submitted: Broken printer", msgs[0].Subject)
	assert.Contains(t, msgs[0].HTML, "Jams on every page")
	assert.Contains(t, msgs[0].HTML, "High")
	assert.Contains(t, msgs[0].HTML, `href="https://complaints.example.com/admin"`)
}

func TestNotificationService_NotifyStatusChanged(t *testing.T) {
	sender := &fakeSender{}
	svc, metrics := newNotificationService(sender, nil, "ops@example.com", zap.NewNop())

	complaint := *storedComplaint()
	complaint.Status = domain.StatusInProgress
	svc.NotifyStatusChanged(context.Background(), complaint, domain.StatusPending)

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Complaint Status Updated: Broken printer", msgs[0].Subject)
	assert.Contains(t, msgs[0].HTML, "Pending")
	assert.Contains(t, msgs[0].HTML, "In Progress")

	assert.Contains(t, scrape(t, metrics), `complaint_service_notifications_emails_total{kind="complaint_status_changed",outcome="sent"} 1`)
}

func scrape(t *testing.T, metrics *observability.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestNotificationService_EscapesUserContent(t *testing.T) {
	sender := &fakeSender{}
	svc, _ := newNotificationService(sender, nil, "ops@example.com", zap.NewNop())

	complaint := *storedComplaint()
	complaint.Description = "<script>alert(1)</script>"
	svc.NotifyCreated(context.Background(), complaint)

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.NotContains(t, msgs[0].HTML, "<script>")
}

func TestNotificationService_FailureIsSwallowed(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	sender := &fakeSender{err: errors.New("relay down")}
	svc, _ := newNotificationService(sender, nil, "ops@example.com", zap.New(core))

	assert.NotPanics(t, func() {
		svc.NotifyCreated(context.Background(), *storedComplaint())
	})
	assert.Equal(t, 1, logs.FilterMessage("notification failed").Len())
}

func TestNotificationService_SkipsWithoutMailbox(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sender := &fakeSender{}
	svc, metrics := newNotificationService(sender, nil, "  ", zap.New(core))

	svc.NotifyCreated(context.Background(), *storedComplaint())

	assert.Empty(t, sender.messages())
	assert.Equal(t, 1, logs.Len())
	assert.Contains(t, scrape(t, metrics), `outcome="skipped"} 1`)
}

func TestNotificationService_HandlesDispatchedEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop(), true)
	sender := &fakeSender{}
	svc, _ := newNotificationService(sender, dispatcher, "ops@example.com", zap.NewNop())
	svc.RegisterHandlers()

	ctx := context.Background()
	complaint := *storedComplaint()
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		Payload:     events.ComplaintCreatedPayload{Complaint: complaint},
	}))
	complaint.Status = domain.StatusResolved
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: complaint.ID,
		Payload:     events.ComplaintStatusChangedPayload{Complaint: complaint, PreviousStatus: domain.StatusPending},
	}))
	dispatcher.Wait()

	subjects := []string{}
	for _, msg := range sender.messages() {
		subjects = append(subjects, msg.Subject)
	}
	assert.ElementsMatch(t, []string{
		"New Complaint Submitted: Broken printer",
		"Complaint Status Updated: Broken printer",
	}, subjects)
}
