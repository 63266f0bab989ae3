package worker

import (
	"github.com/ZvonimirSimic/weather-service/internal/service"
)

// StartActivityWorker registers activity event handlers.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
