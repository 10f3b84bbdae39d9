package models

import (
	"strings"
	"time"
)

// Status enumerates the order lifecycle states. The legal transitions between
// them live in the lifecycle package; everything else treats Status as opaque.
type Status string

const (
	StatusOrderReceived              Status = "ORDER_RECEIVED"
	StatusInventoryCheckPending      Status = "INVENTORY_CHECK_PENDING"
	StatusSiteCheckPending           Status = "SITE_CHECK_PENDING"
	StatusSiteCheckFailed            Status = "SITE_CHECK_FAILED"
	StatusNodeCapacityPending        Status = "NODE_CAPACITY_PENDING"
	StatusInventoryAllocationPending Status = "INVENTORY_ALLOCATION_PENDING"
	StatusInventoryMissing           Status = "INVENTORY_MISSING"
	StatusWaitingForProcurement      Status = "WAITING_FOR_PROCUREMENT"
	StatusEngineerAssigned           Status = "ENGINEER_ASSIGNED"
	StatusJobInProgress              Status = "JOB_IN_PROGRESS"
	StatusJobCompleted               Status = "JOB_COMPLETED"
	StatusJobFailed                  Status = "JOB_FAILED"
	StatusReworkRequired             Status = "REWORK_REQUIRED"
	StatusReworkInitiated            Status = "REWORK_INITIATED"
	StatusBackendNotified            Status = "BACKEND_NOTIFIED"
)

// Display renders the status identifier with spaces for audit text, e.g.
// "INVENTORY CHECK PENDING". Presentation labels for UI badges come from the
// lifecycle table instead.
func (s Status) Display() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// ServiceType is the ordered fibre technology.
type ServiceType string

const (
	ServiceFTTP     ServiceType = "FTTP"
	ServiceFTTC     ServiceType = "FTTC"
	ServiceEthernet ServiceType = "Ethernet"
)

// SLATier is the service-level commitment attached to an order.
type SLATier string

const (
	SLAStandard SLATier = "Standard"
	SLAPremium  SLATier = "Premium"
)

// FibreRoute records how the drop cable reaches the premises.
type FibreRoute string

const (
	RouteUnderground FibreRoute = "Underground"
	RouteOverhead    FibreRoute = "Overhead"
)

// Job is a fibre installation order moving through the workflow.
type Job struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customer_name"`
	Address       string      `json:"address"`
	Postcode      string      `json:"postcode"`
	ServiceType   ServiceType `json:"service_type"`
	SLA           SLATier     `json:"sla"`
	Status        Status      `json:"status"`
	ScheduledDate string      `json:"scheduled_date"`
	Region        string      `json:"region"`

	AssignedAgentID string    `json:"assigned_agent_id,omitempty"`
	LastUpdated     time.Time `json:"last_updated"`

	// Field-capture evidence, populated once the install reaches the agent.
	Notes             string     `json:"notes,omitempty"`
	ONTSerialNumber   string     `json:"ont_serial_number,omitempty"`
	FibreRoute        FibreRoute `json:"fibre_route,omitempty"`
	Photos            []string   `json:"photos,omitempty"`
	DrillRequired     *bool      `json:"drill_required,omitempty"`
	CustomerAvailable *bool      `json:"customer_available,omitempty"`
	BlockageType      string     `json:"blockage_type,omitempty"`

	// Rework linkage. ParentOrderID is set on a spawned child;
	// HasReworkTicket/ReworkTicketID are set on the parent. The two sides are
	// never set on the same job.
	ParentOrderID   string `json:"parent_order_id,omitempty"`
	ReworkReason    string `json:"rework_reason,omitempty"`
	CreatedFrom     Role   `json:"created_from,omitempty"`
	HasReworkTicket bool   `json:"has_rework_ticket,omitempty"`
	ReworkTicketID  string `json:"rework_ticket_id,omitempty"`
}

// JobUpdate is a partial patch merged onto a job during a transition. Nil
// fields are left untouched.
type JobUpdate struct {
	AssignedAgentID   *string     `json:"assigned_agent_id,omitempty"`
	ScheduledDate     *string     `json:"scheduled_date,omitempty"`
	Notes             *string     `json:"notes,omitempty"`
	ONTSerialNumber   *string     `json:"ont_serial_number,omitempty"`
	FibreRoute        *FibreRoute `json:"fibre_route,omitempty"`
	Photos            []string    `json:"photos,omitempty"`
	DrillRequired     *bool       `json:"drill_required,omitempty"`
	CustomerAvailable *bool       `json:"customer_available,omitempty"`
	BlockageType      *string     `json:"blockage_type,omitempty"`
}

// ApplyTo merges the set fields onto job.
func (u *JobUpdate) ApplyTo(job *Job) {
	if u == nil {
		return
	}
	if u.AssignedAgentID != nil {
		job.AssignedAgentID = *u.AssignedAgentID
	}
	if u.ScheduledDate != nil {
		job.ScheduledDate = *u.ScheduledDate
	}
	if u.Notes != nil {
		job.Notes = *u.Notes
	}
	if u.ONTSerialNumber != nil {
		job.ONTSerialNumber = *u.ONTSerialNumber
	}
	if u.FibreRoute != nil {
		job.FibreRoute = *u.FibreRoute
	}
	if u.Photos != nil {
		job.Photos = append([]string(nil), u.Photos...)
	}
	if u.DrillRequired != nil {
		job.DrillRequired = u.DrillRequired
	}
	if u.CustomerAvailable != nil {
		job.CustomerAvailable = u.CustomerAvailable
	}
	if u.BlockageType != nil {
		job.BlockageType = *u.BlockageType
	}
}
