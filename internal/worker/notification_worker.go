package worker

import (
	"github.com/spec-kit/complaint-service/internal/service"
)

// StartNotificationWorker subscribes notification handlers to complaint events.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
