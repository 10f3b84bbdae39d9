// Package lifecycle is the single source of truth for legal status
// transitions and role ownership. It is pure data: lookups never fail, an
// unknown status just yields an empty successor set and the OwnerUnowned
// sentinel.
package lifecycle

import "fibre-order-tracker/internal/models"

// Owner is the party responsible for acting on a status.
type Owner string

const (
	OwnerORIT       Owner = "ORIT"
	OwnerOperations Owner = "Operations"
	OwnerFieldAgent Owner = "Field Agent"
	OwnerUnowned    Owner = "Unowned"
)

// Entry describes one status: its display label, owning role and the statuses
// it may legally move to. RequiredDecision is a human hint for the UI about
// what input the outgoing transition needs.
type Entry struct {
	Status               models.Status   `json:"status"`
	Label                string          `json:"label"`
	Owner                Owner           `json:"owner"`
	Description          string          `json:"description"`
	NextPossibleStatuses []models.Status `json:"next_possible_statuses"`
	RequiredDecision     string          `json:"required_decision,omitempty"`
}

var table = []Entry{
	{
		Status:               models.StatusOrderReceived,
		Label:                "Order Received",
		Owner:                OwnerORIT,
		Description:          "Order received from Business Unit",
		NextPossibleStatuses: []models.Status{models.StatusInventoryCheckPending},
		RequiredDecision:     "Initiate inventory audit",
	},
	{
		Status:               models.StatusInventoryCheckPending,
		Label:                "Inventory Check Pending",
		Owner:                OwnerOperations,
		Description:          "Initial inventory audit in progress",
		NextPossibleStatuses: []models.Status{models.StatusSiteCheckPending, models.StatusWaitingForProcurement},
		RequiredDecision:     "Inventory check outcome",
	},
	{
		Status:               models.StatusSiteCheckPending,
		Label:                "Site Check Pending",
		Owner:                OwnerOperations,
		Description:          "Awaiting site feasibility assessment",
		NextPossibleStatuses: []models.Status{models.StatusNodeCapacityPending, models.StatusSiteCheckFailed},
		RequiredDecision:     "Site check outcome",
	},
	{
		Status:               models.StatusSiteCheckFailed,
		Label:                "Site Check Failed",
		Owner:                OwnerOperations,
		Description:          "Site not serviceable or requires civil work",
		NextPossibleStatuses: []models.Status{models.StatusBackendNotified},
		RequiredDecision:     "Notify Business Unit",
	},
	{
		Status:               models.StatusNodeCapacityPending,
		Label:                "Node Capacity Pending",
		Owner:                OwnerORIT,
		Description:          "Verifying exchange node capacity",
		NextPossibleStatuses: []models.Status{models.StatusInventoryAllocationPending},
		RequiredDecision:     "Node capacity confirmation",
	},
	{
		Status:               models.StatusInventoryAllocationPending,
		Label:                "Inventory Allocation Pending",
		Owner:                OwnerORIT,
		Description:          "Allocating local stock for installation",
		NextPossibleStatuses: []models.Status{models.StatusEngineerAssigned, models.StatusInventoryMissing},
		RequiredDecision:     "Allocation outcome",
	},
	{
		Status:               models.StatusInventoryMissing,
		Label:                "Inventory Missing",
		Owner:                OwnerORIT,
		Description:          "Required inventory not available",
		NextPossibleStatuses: []models.Status{models.StatusWaitingForProcurement},
		RequiredDecision:     "Initiate procurement",
	},
	{
		Status:               models.StatusWaitingForProcurement,
		Label:                "Waiting for Procurement",
		Owner:                OwnerORIT,
		Description:          "Awaiting inventory procurement",
		NextPossibleStatuses: []models.Status{models.StatusSiteCheckPending, models.StatusInventoryAllocationPending},
		RequiredDecision:     "Inventory received confirmation",
	},
	{
		Status:               models.StatusEngineerAssigned,
		Label:                "Engineer Assigned",
		Owner:                OwnerOperations,
		Description:          "Field agent assigned to job",
		NextPossibleStatuses: []models.Status{models.StatusJobInProgress},
		RequiredDecision:     "Agent starts job",
	},
	{
		Status:               models.StatusJobInProgress,
		Label:                "Job In Progress",
		Owner:                OwnerFieldAgent,
		Description:          "Agent actively working on installation",
		NextPossibleStatuses: []models.Status{models.StatusJobCompleted, models.StatusJobFailed, models.StatusReworkRequired},
		RequiredDecision:     "Job completion outcome",
	},
	{
		Status:               models.StatusJobCompleted,
		Label:                "Job Completed",
		Owner:                OwnerFieldAgent,
		Description:          "Installation completed successfully",
		NextPossibleStatuses: nil,
	},
	{
		Status:               models.StatusJobFailed,
		Label:                "Job Failed",
		Owner:                OwnerFieldAgent,
		Description:          "Installation failed due to site issue",
		NextPossibleStatuses: []models.Status{models.StatusBackendNotified},
		RequiredDecision:     "Operations review",
	},
	{
		Status:               models.StatusReworkRequired,
		Label:                "Rework Required",
		Owner:                OwnerFieldAgent,
		Description:          "Issue encountered, requires rework",
		NextPossibleStatuses: []models.Status{models.StatusEngineerAssigned},
		RequiredDecision:     "Operations review and reassignment",
	},
	{
		Status:               models.StatusReworkInitiated,
		Label:                "Rework Initiated",
		Owner:                OwnerORIT,
		Description:          "Rework ticket re-entering workflow",
		NextPossibleStatuses: []models.Status{models.StatusInventoryCheckPending},
		RequiredDecision:     "Initiate inventory audit",
	},
	{
		Status:               models.StatusBackendNotified,
		Label:                "Backend Notified",
		Owner:                OwnerORIT,
		Description:          "Business Unit notified of issue",
		NextPossibleStatuses: nil,
	},
}

var byStatus = func() map[models.Status]Entry {
	m := make(map[models.Status]Entry, len(table))
	for _, e := range table {
		m[e.Status] = e
	}
	return m
}()

// Entries returns the full table in workflow order.
func Entries() []Entry {
	out := make([]Entry, len(table))
	copy(out, table)
	return out
}

// Known reports whether status appears in the table.
func Known(status models.Status) bool {
	_, ok := byStatus[status]
	return ok
}

// SuccessorsOf returns the legal next statuses, empty for terminal or unknown
// statuses.
func SuccessorsOf(status models.Status) []models.Status {
	e, ok := byStatus[status]
	if !ok {
		return nil
	}
	return append([]models.Status(nil), e.NextPossibleStatuses...)
}

// OwnerOf returns the owning role, OwnerUnowned for unknown statuses.
func OwnerOf(status models.Status) Owner {
	e, ok := byStatus[status]
	if !ok {
		return OwnerUnowned
	}
	return e.Owner
}

// LabelOf returns the display label, falling back to the spaced identifier.
func LabelOf(status models.Status) string {
	e, ok := byStatus[status]
	if !ok {
		return status.Display()
	}
	return e.Label
}

// DescriptionOf returns the status description, empty for unknown statuses.
func DescriptionOf(status models.Status) string {
	return byStatus[status].Description
}

// RequiredDecision returns the decision hint for status, empty when none.
func RequiredDecision(status models.Status) string {
	return byStatus[status].RequiredDecision
}

// IsLegalTransition reports whether from may move to to.
func IsLegalTransition(from, to models.Status) bool {
	for _, next := range byStatus[from].NextPossibleStatuses {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether status has no successors. Unknown statuses are
// not terminal, they are simply absent.
func IsTerminal(status models.Status) bool {
	e, ok := byStatus[status]
	return ok && len(e.NextPossibleStatuses) == 0
}
