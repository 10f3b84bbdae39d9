// Package engine drives the order workflow. The Engine is the only component
// allowed to mutate a job's status: each Transition call validates against the
// lifecycle table, applies the change, appends exactly one audit entry, routes
// any cross-role notifications and, on a first rework report, spawns the
// follow-up ticket. The whole step runs under one mutex so concurrent callers
// still observe the "one audit entry, at most one spawned child" guarantee.
package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fibre-order-tracker/internal/lifecycle"
	"fibre-order-tracker/internal/models"
	"fibre-order-tracker/internal/store"
	"fibre-order-tracker/internal/telemetry"
)

var (
	// ErrJobNotFound is returned when the referenced job id does not exist.
	ErrJobNotFound = errors.New("job not found")
	// ErrIllegalTransition is returned when the requested status is not a
	// declared successor of the job's current status.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrIncompleteDecision is returned when a transition with an ambiguous
	// outcome arrives without the decision input it needs.
	ErrIncompleteDecision = errors.New("incomplete decision")
	// ErrUnknownStatus is returned when a job is registered with a status
	// absent from the lifecycle table.
	ErrUnknownStatus = errors.New("unknown status")
)

// Engine owns the job registry, audit log and notification list and applies
// every state change to them.
type Engine struct {
	mu            sync.Mutex
	jobs          *store.JobStore
	audit         *store.AuditLog
	notifications *store.NotificationList
	subs          *subscribers
	log           zerolog.Logger

	now   func() time.Time
	newID func() string
}

// New constructs an engine with empty collections.
func New(log zerolog.Logger) *Engine {
	return &Engine{
		jobs:          store.NewJobStore(),
		audit:         store.NewAuditLog(),
		notifications: store.NewNotificationList(),
		subs:          newSubscribers(),
		log:           log,
		now:           time.Now,
		newID:         func() string { return uuid.New().String() },
	}
}

// AddJob registers a new order at intake. The status must appear in the
// lifecycle table; no audit entry is written for intake.
func (e *Engine) AddJob(job models.Job) error {
	if job.ID == "" {
		return fmt.Errorf("add job: missing id")
	}
	if !lifecycle.Known(job.Status) {
		return fmt.Errorf("add job %s: %w: %s", job.ID, ErrUnknownStatus, job.Status)
	}
	e.mu.Lock()
	if job.LastUpdated.IsZero() {
		job.LastUpdated = e.now()
	}
	e.jobs.Upsert(job)
	telemetry.JobsGauge.Set(float64(e.jobs.Len()))
	e.mu.Unlock()

	e.subs.publish()
	return nil
}

// Transition moves a job to newStatus on behalf of actor. metadata, when
// present, is merged onto the job in the same step; decision is echoed into
// the audit entry. Transitions against one engine are applied in call order.
func (e *Engine) Transition(jobID string, newStatus models.Status, actor models.User, metadata *models.JobUpdate, decision *models.Decision) error {
	e.mu.Lock()

	job, ok := e.jobs.Get(jobID)
	if !ok {
		e.mu.Unlock()
		telemetry.TransitionsRejected.Inc()
		return fmt.Errorf("transition %s: %w", jobID, ErrJobNotFound)
	}
	if !lifecycle.IsLegalTransition(job.Status, newStatus) {
		e.mu.Unlock()
		telemetry.TransitionsRejected.Inc()
		return fmt.Errorf("transition %s: %w: %s -> %s", jobID, ErrIllegalTransition, job.Status, newStatus)
	}
	if err := checkDecision(newStatus, metadata, decision); err != nil {
		e.mu.Unlock()
		telemetry.TransitionsRejected.Inc()
		return fmt.Errorf("transition %s: %w", jobID, err)
	}

	previous := job.Status
	job.Status = newStatus
	metadata.ApplyTo(&job)
	job.LastUpdated = e.now()
	e.jobs.Upsert(job)

	e.recordTransition(job, previous, actor, decision)
	e.routeNotifications(job, actor)

	if newStatus == models.StatusReworkRequired {
		e.spawnRework(job, actor)
	}

	telemetry.TransitionsApplied.Inc()
	telemetry.JobsGauge.Set(float64(e.jobs.Len()))
	e.mu.Unlock()

	e.log.Info().
		Str("job_id", jobID).
		Str("from", string(previous)).
		Str("to", string(newStatus)).
		Str("actor", actor.AuditName()).
		Msg("transition applied")

	e.subs.publish()
	return nil
}

// checkDecision rejects ambiguous-outcome transitions that arrive without the
// input needed to tell rework from failure: a decision reason or a blockage
// category.
func checkDecision(newStatus models.Status, metadata *models.JobUpdate, decision *models.Decision) error {
	if newStatus != models.StatusReworkRequired && newStatus != models.StatusJobFailed {
		return nil
	}
	if decision != nil && decision.Reason != "" {
		return nil
	}
	if metadata != nil && metadata.BlockageType != nil && *metadata.BlockageType != "" {
		return nil
	}
	return fmt.Errorf("%w: %s needs a decision reason or blockage category", ErrIncompleteDecision, newStatus)
}

// recordTransition appends the single audit entry for a committed transition.
func (e *Engine) recordTransition(job models.Job, previous models.Status, actor models.User, decision *models.Decision) {
	now := e.now()
	actorName := actor.AuditName()

	reason := fmt.Sprintf("Status changed to %s", job.Status.Display())
	if decision != nil && decision.Reason != "" {
		reason = decision.Reason
	}

	entry := models.AuditEntry{
		ID:             e.newID(),
		JobID:          job.ID,
		Action:         fmt.Sprintf("Status change to %s", job.Status.Display()),
		Actor:          actorName,
		Timestamp:      now,
		PreviousStatus: previous,
		NewStatus:      job.Status,
		Reason:         reason,
	}
	if decision != nil {
		outcome := decision.Outcome
		if outcome == "" {
			outcome = string(job.Status)
		}
		entry.Decision = &models.DecisionRecord{
			Type:      models.DecisionTypeStatusTransition,
			Outcome:   outcome,
			Reason:    decision.Reason,
			Actor:     actorName,
			Timestamp: now,
		}
	}
	e.audit.Append(entry)
}

// Reads take the engine mutex so observers only ever see fully committed
// transition steps, never a job updated ahead of its audit entry.

// Job fetches a job by id.
func (e *Engine) Job(id string) (models.Job, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.jobs.Get(id)
}

// Jobs returns every job in intake order.
func (e *Engine) Jobs() []models.Job {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.jobs.List()
}

// JobsWhere returns the jobs matching pred, in intake order.
func (e *Engine) JobsWhere(pred func(models.Job) bool) []models.Job {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.jobs.Filter(pred)
}

// AuditLog returns the full transition history, newest first.
func (e *Engine) AuditLog() []models.AuditEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.audit.Entries()
}

// AuditForJob returns one job's transition history, newest first.
func (e *Engine) AuditForJob(jobID string) []models.AuditEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.audit.ForJob(jobID)
}

// Notifications returns every notification, newest first.
func (e *Engine) Notifications() []models.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.notifications.All()
}

// NotificationsForRole returns the notifications visible to role, newest
// first.
func (e *Engine) NotificationsForRole(role models.Role) []models.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.notifications.ForRole(role)
}

// MarkNotificationRead flips the read flag on one notification and fires
// subscribers.
func (e *Engine) MarkNotificationRead(id string) error {
	e.mu.Lock()
	err := e.notifications.MarkRead(id)
	e.mu.Unlock()
	if err != nil {
		return fmt.Errorf("mark notification %s read: %w", id, err)
	}
	e.subs.publish()
	return nil
}

// Subscribe registers fn to run after every committed transition, spawn or
// notification-read. The returned func unsubscribes.
func (e *Engine) Subscribe(fn func()) func() {
	return e.subs.add(fn)
}
