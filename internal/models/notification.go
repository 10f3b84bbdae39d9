package models

import "time"

// Notification is a role-targeted notice derived from a transition. Immutable
// once created except for IsRead. An empty TargetRole means every role sees it.
type Notification struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	JobID      string    `json:"job_id"`
	Timestamp  time.Time `json:"timestamp"`
	IsRead     bool      `json:"is_read"`
	TargetRole Role      `json:"target_role,omitempty"`
}
