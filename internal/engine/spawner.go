package engine

import (
	"fmt"

	"fibre-order-tracker/internal/models"
	"fibre-order-tracker/internal/telemetry"
)

// defaultReworkReason is recorded when the field report carries no blockage
// category.
const defaultReworkReason = "Rework Required"

// spawnRework creates the follow-up ticket for a job that just entered
// REWORK_REQUIRED. The HasReworkTicket guard keeps it to at most one child per
// parent; a repeat rework transition still audits but spawns nothing. Spawn
// problems are reported on their own and never unwind the parent's committed
// transition. Called with the engine mutex held, after the parent commit.
func (e *Engine) spawnRework(parent models.Job, actor models.User) {
	if parent.HasReworkTicket {
		return
	}

	counter := len(e.jobs.Filter(func(j models.Job) bool { return j.ParentOrderID == parent.ID })) + 1
	childID := fmt.Sprintf("RWK-%s-%02d", parent.ID, counter)
	if _, exists := e.jobs.Get(childID); exists {
		// Counter collision; leave the store untouched rather than clobber.
		telemetry.ReworkSpawnFailures.Inc()
		e.log.Error().Str("parent_id", parent.ID).Str("child_id", childID).Msg("rework spawn aborted: child id already exists")
		return
	}

	reason := parent.BlockageType
	if reason == "" {
		reason = defaultReworkReason
	}

	now := e.now()
	child := parent
	child.ID = childID
	child.Status = models.StatusReworkInitiated
	child.ParentOrderID = parent.ID
	child.ReworkReason = reason
	child.CreatedFrom = actor.Role
	child.LastUpdated = now
	// Field evidence and assignment restart blank on the new ticket.
	child.AssignedAgentID = ""
	child.ONTSerialNumber = ""
	child.FibreRoute = ""
	child.Photos = nil
	child.HasReworkTicket = false
	child.ReworkTicketID = ""
	e.jobs.Upsert(child)

	parent.HasReworkTicket = true
	parent.ReworkTicketID = childID
	e.jobs.Upsert(parent)

	// Synthetic creation entry: the only audit row whose edge is not in the
	// lifecycle table.
	e.audit.Append(models.AuditEntry{
		ID:             e.newID(),
		JobID:          childID,
		Action:         "Rework Order Generated",
		Actor:          models.SystemActor,
		Timestamp:      now,
		PreviousStatus: models.StatusReworkRequired,
		NewStatus:      models.StatusReworkInitiated,
		Reason:         fmt.Sprintf("Rework ticket created automatically. Linked to parent order: %s. Reason: %s", parent.ID, reason),
	})

	e.emit(models.Notification{
		Title:      "New Rework Ticket Generated",
		Message:    fmt.Sprintf("Rework order %s created for %s. Reason: %s", childID, parent.ID, reason),
		JobID:      childID,
		TargetRole: models.RoleOperations,
	})
	e.emit(models.Notification{
		Title:      "Rework Ticket Created",
		Message:    fmt.Sprintf("Rework ticket %s created and pending reassignment", childID),
		JobID:      childID,
		TargetRole: models.RoleFieldAgent,
	})

	telemetry.ReworkSpawned.Inc()
	e.log.Info().Str("parent_id", parent.ID).Str("child_id", childID).Str("reason", reason).Msg("rework ticket generated")
}
