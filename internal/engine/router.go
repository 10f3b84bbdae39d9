package engine

import (
	"fmt"

	"fibre-order-tracker/internal/models"
	"fibre-order-tracker/internal/telemetry"
)

// routeNotifications derives the cross-role notice for a committed transition.
// Two families exist: Operations assigning an engineer notifies the field
// role, and field-reported progress, completion or blockage notifies
// Operations. Every other transition is internal and produces nothing.
// Called with the engine mutex held.
func (e *Engine) routeNotifications(job models.Job, actor models.User) {
	if actor.Role == models.RoleOperations && job.Status == models.StatusEngineerAssigned {
		e.emit(models.Notification{
			Title:      "New Job Assigned",
			Message:    fmt.Sprintf("A new %s order (%s) has been assigned to you by ORIT.", job.ServiceType, job.ID),
			JobID:      job.ID,
			TargetRole: models.RoleFieldAgent,
		})
		return
	}

	if actor.Role != models.RoleFieldAgent {
		return
	}

	var title, message string
	switch job.Status {
	case models.StatusJobInProgress:
		title = "Job Commenced"
		message = fmt.Sprintf("Agent %s has arrived at site and started %s.", actor.Username, job.ID)
	case models.StatusJobCompleted:
		title = "Job Completed in Field"
		message = fmt.Sprintf("Agent %s has finished installation for %s. Awaiting system activation.", actor.Username, job.ID)
	case models.StatusReworkRequired, models.StatusJobFailed:
		title = "Site Installation Blocked"
		message = fmt.Sprintf("Field Alert: Agent %s reported a blockage for %s. Status: %s.", actor.Username, job.ID, job.Status)
	default:
		return
	}

	e.emit(models.Notification{
		Title:      title,
		Message:    message,
		JobID:      job.ID,
		TargetRole: models.RoleOperations,
	})
}

// emit stamps and stores one notification.
func (e *Engine) emit(n models.Notification) {
	n.ID = e.newID()
	n.Timestamp = e.now()
	e.notifications.Append(n)
	telemetry.NotificationsEmitted.Inc()
}
