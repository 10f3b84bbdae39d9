package models

import "time"

// Decision is the caller's declared reason for a transition. Outcome lets the
// UI distinguish choices that land on the same status (a failed site check can
// mean "not serviceable" or "civil work required").
type Decision struct {
	Reason  string `json:"reason"`
	Outcome string `json:"outcome,omitempty"`
}

// Decision outcomes used by the operations and field UIs.
const (
	OutcomeServiceable         = "serviceable"
	OutcomeNotServiceable      = "not_serviceable"
	OutcomeCivilWorkRequired   = "civil_work_required"
	OutcomeFullyAvailable      = "fully_available"
	OutcomePartiallyAvailable  = "partially_available"
	OutcomeNotAvailable        = "not_available"
	OutcomeProcurementResolved = "procurement_resolved"
	OutcomeJobStarted          = "job_started"
	OutcomeCompleted           = "completed_successfully"
	OutcomeIssueEncountered    = "issue_encountered"
	OutcomeReworkRequired      = "rework_required"
	OutcomeJobFailed           = "job_failed"
)

// DecisionRecord is the structured echo of a Decision stored on an audit entry.
type DecisionRecord struct {
	Type      string    `json:"type"`
	Outcome   string    `json:"outcome"`
	Reason    string    `json:"reason"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}

// DecisionTypeStatusTransition is the only decision type the engine records.
const DecisionTypeStatusTransition = "status_transition"

// AuditEntry is one immutable row in the transition history of a job.
type AuditEntry struct {
	ID             string          `json:"id"`
	JobID          string          `json:"job_id"`
	Action         string          `json:"action"`
	Actor          string          `json:"actor"`
	Timestamp      time.Time       `json:"timestamp"`
	PreviousStatus Status          `json:"previous_status"`
	NewStatus      Status          `json:"new_status"`
	Reason         string          `json:"reason"`
	Decision       *DecisionRecord `json:"decision,omitempty"`
}
