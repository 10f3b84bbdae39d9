// Package store holds the in-memory collections behind the workflow engine:
// the job registry, the append-only audit log and the notification list. The
// store does no validation; the engine is its only writer.
package store

import (
	"errors"
	"sync"

	"fibre-order-tracker/internal/models"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("resource not found")

// JobStore keeps at most one job per id and remembers insertion order so
// listings are stable.
type JobStore struct {
	mu    sync.RWMutex
	jobs  map[string]models.Job
	order []string
}

func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]models.Job)}
}

// Get fetches a job by id.
func (s *JobStore) Get(id string) (models.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	return job, ok
}

// Upsert replaces the job under its id, appending new ids to the listing
// order.
func (s *JobStore) Upsert(job models.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[job.ID]; !exists {
		s.order = append(s.order, job.ID)
	}
	s.jobs[job.ID] = job
}

// List returns all jobs in insertion order.
func (s *JobStore) List() []models.Job {
	return s.Filter(func(models.Job) bool { return true })
}

// Filter returns the jobs matching pred, in insertion order.
func (s *JobStore) Filter(pred func(models.Job) bool) []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Job, 0, len(s.order))
	for _, id := range s.order {
		if job := s.jobs[id]; pred(job) {
			out = append(out, job)
		}
	}
	return out
}

// Len returns the number of stored jobs.
func (s *JobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// AuditLog is the append-only transition history. Reads are ordered newest
// first, matching how the detail views render it.
type AuditLog struct {
	mu      sync.RWMutex
	entries []models.AuditEntry
}

func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Append adds one entry. Existing entries are never modified or removed.
func (l *AuditLog) Append(entry models.AuditEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// Entries returns every entry, newest first.
func (l *AuditLog) Entries() []models.AuditEntry {
	return l.ForJob("")
}

// ForJob returns the entries for one job, newest first. An empty jobID
// returns everything.
func (l *AuditLog) ForJob(jobID string) []models.AuditEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.AuditEntry, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		if jobID == "" || l.entries[i].JobID == jobID {
			out = append(out, l.entries[i])
		}
	}
	return out
}

// Len returns the number of recorded entries.
func (l *AuditLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// NotificationList holds role-targeted notices. Reads are newest first.
// Notices are never deleted; MarkRead is the only permitted mutation.
type NotificationList struct {
	mu    sync.RWMutex
	items []models.Notification
}

func NewNotificationList() *NotificationList {
	return &NotificationList{}
}

// Append adds one notification.
func (n *NotificationList) Append(notif models.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, notif)
}

// All returns every notification, newest first.
func (n *NotificationList) All() []models.Notification {
	return n.ForRole("")
}

// ForRole returns the notifications visible to role, newest first: those
// targeted at it plus untargeted ones. An empty role returns everything.
func (n *NotificationList) ForRole(role models.Role) []models.Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]models.Notification, 0, len(n.items))
	for i := len(n.items) - 1; i >= 0; i-- {
		item := n.items[i]
		if role == "" || item.TargetRole == "" || item.TargetRole == role {
			out = append(out, item)
		}
	}
	return out
}

// MarkRead flips the read flag on one notification.
func (n *NotificationList) MarkRead(id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.items {
		if n.items[i].ID == id {
			n.items[i].IsRead = true
			return nil
		}
	}
	return ErrNotFound
}
