package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/service"
)

// StartNotificationWorker subscribes the notification service to the lifecycle events
// raised by the directory, leave and timesheet services.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	if logger != nil {
		logger.Info("notification handlers registered")
	}
}
