package engine_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fibre-order-tracker/internal/engine"
	"fibre-order-tracker/internal/lifecycle"
	"fibre-order-tracker/internal/models"
)

var (
	opsUser   = models.User{ID: "U-OPS-1", Username: "sjenkins", Role: models.RoleOperations, Region: "London"}
	agentUser = models.User{ID: "U-FA-1", Username: "mjohnson", Role: models.RoleFieldAgent, Region: "London"}
)

func newEngine(t *testing.T, jobs ...models.Job) *engine.Engine {
	t.Helper()
	e := engine.New(zerolog.Nop())
	for _, j := range jobs {
		require.NoError(t, e.AddJob(j))
	}
	return e
}

func orderAt(status models.Status) models.Job {
	return models.Job{
		ID:           "ORD-7001",
		CustomerName: "Alice Hughes",
		Address:      "14 Croft Lane",
		Postcode:     "SW1A 1AA",
		ServiceType:  models.ServiceFTTP,
		SLA:          models.SLAPremium,
		Status:       status,
		Region:       "London",
	}
}

func strPtr(s string) *string { return &s }

func TestOperationsTransitionDefaultReason(t *testing.T) {
	// Scenario A: no decision supplied, templated reason, zero notifications.
	e := newEngine(t, orderAt(models.StatusOrderReceived))

	require.NoError(t, e.Transition("ORD-7001", models.StatusInventoryCheckPending, opsUser, nil, nil))

	job, ok := e.Job("ORD-7001")
	require.True(t, ok)
	assert.Equal(t, models.StatusInventoryCheckPending, job.Status)
	assert.False(t, job.LastUpdated.IsZero())

	log := e.AuditForJob("ORD-7001")
	require.Len(t, log, 1)
	assert.Equal(t, "Status changed to INVENTORY CHECK PENDING", log[0].Reason)
	assert.Equal(t, "Status change to INVENTORY CHECK PENDING", log[0].Action)
	assert.Equal(t, models.SystemActor, log[0].Actor)
	assert.Equal(t, models.StatusOrderReceived, log[0].PreviousStatus)
	assert.Nil(t, log[0].Decision)

	assert.Empty(t, e.Notifications())
}

func TestFieldCompletionMergesMetadataAndNotifiesOps(t *testing.T) {
	// Scenario B.
	e := newEngine(t, orderAt(models.StatusJobInProgress))

	meta := &models.JobUpdate{ONTSerialNumber: strPtr("BT-1")}
	require.NoError(t, e.Transition("ORD-7001", models.StatusJobCompleted, agentUser, meta, &models.Decision{
		Reason:  "Installation completed successfully by mjohnson. ONT BT-1 registered.",
		Outcome: models.OutcomeCompleted,
	}))

	job, _ := e.Job("ORD-7001")
	assert.Equal(t, "BT-1", job.ONTSerialNumber)

	notifs := e.NotificationsForRole(models.RoleOperations)
	require.Len(t, notifs, 1)
	assert.Equal(t, "Job Completed in Field", notifs[0].Title)
	assert.Equal(t, "Agent mjohnson has finished installation for ORD-7001. Awaiting system activation.", notifs[0].Message)
	assert.Empty(t, e.NotificationsForRole(models.RoleFieldAgent))

	log := e.AuditForJob("ORD-7001")
	require.Len(t, log, 1)
	require.NotNil(t, log[0].Decision)
	assert.Equal(t, models.OutcomeCompleted, log[0].Decision.Outcome)
	assert.Equal(t, "mjohnson (Field Agent)", log[0].Decision.Actor)
	assert.Equal(t, "mjohnson (Field Agent)", log[0].Actor)
}

func TestReworkSpawnsChildTicket(t *testing.T) {
	// Scenario C.
	e := newEngine(t, orderAt(models.StatusJobInProgress))

	meta := &models.JobUpdate{BlockageType: strPtr("No Access")}
	require.NoError(t, e.Transition("ORD-7001", models.StatusReworkRequired, agentUser, meta, nil))

	child, ok := e.Job("RWK-ORD-7001-01")
	require.True(t, ok)
	assert.Equal(t, models.StatusReworkInitiated, child.Status)
	assert.Equal(t, "ORD-7001", child.ParentOrderID)
	assert.Equal(t, "No Access", child.ReworkReason)
	assert.Equal(t, models.RoleFieldAgent, child.CreatedFrom)
	assert.Equal(t, "Alice Hughes", child.CustomerName)
	assert.Empty(t, child.AssignedAgentID)
	assert.Empty(t, child.ONTSerialNumber)
	assert.Empty(t, child.Photos)
	assert.False(t, child.HasReworkTicket)

	parent, _ := e.Job("ORD-7001")
	assert.True(t, parent.HasReworkTicket)
	assert.Equal(t, "RWK-ORD-7001-01", parent.ReworkTicketID)
	assert.Empty(t, parent.ParentOrderID)

	// One blockage notice to Operations plus the two spawn notices.
	ops := e.NotificationsForRole(models.RoleOperations)
	require.Len(t, ops, 2)
	assert.Equal(t, "New Rework Ticket Generated", ops[0].Title)
	assert.Equal(t, "Site Installation Blocked", ops[1].Title)

	fa := e.NotificationsForRole(models.RoleFieldAgent)
	require.Len(t, fa, 1)
	assert.Equal(t, "Rework Ticket Created", fa[0].Title)

	childLog := e.AuditForJob("RWK-ORD-7001-01")
	require.Len(t, childLog, 1)
	assert.Equal(t, "Rework Order Generated", childLog[0].Action)
	assert.Equal(t, models.SystemActor, childLog[0].Actor)
	assert.Contains(t, childLog[0].Reason, "Linked to parent order: ORD-7001")
	assert.Contains(t, childLog[0].Reason, "No Access")
}

func TestReworkSpawnIsIdempotent(t *testing.T) {
	e := newEngine(t, orderAt(models.StatusJobInProgress))
	meta := &models.JobUpdate{BlockageType: strPtr("Blocked Duct")}
	require.NoError(t, e.Transition("ORD-7001", models.StatusReworkRequired, agentUser, meta, nil))

	// Drive the parent back around and report rework again.
	require.NoError(t, e.Transition("ORD-7001", models.StatusEngineerAssigned, opsUser, nil, nil))
	require.NoError(t, e.Transition("ORD-7001", models.StatusJobInProgress, agentUser, nil, nil))
	auditBefore := len(e.AuditLog())
	require.NoError(t, e.Transition("ORD-7001", models.StatusReworkRequired, agentUser, meta, nil))

	children := e.JobsWhere(func(j models.Job) bool { return j.ParentOrderID == "ORD-7001" })
	assert.Len(t, children, 1)
	// The repeat report still appends exactly one audit entry.
	assert.Equal(t, auditBefore+1, len(e.AuditLog()))
}

func TestTransitionUnknownJob(t *testing.T) {
	// Scenario D.
	e := newEngine(t, orderAt(models.StatusOrderReceived))

	err := e.Transition("ORD-MISSING", models.StatusInventoryCheckPending, opsUser, nil, nil)
	assert.ErrorIs(t, err, engine.ErrJobNotFound)
	assert.Len(t, e.Jobs(), 1)
	assert.Empty(t, e.AuditLog())
}

func TestTransitionFromTerminalStatus(t *testing.T) {
	// Scenario E.
	e := newEngine(t, orderAt(models.StatusJobCompleted))

	for _, entry := range lifecycle.Entries() {
		err := e.Transition("ORD-7001", entry.Status, opsUser, nil, nil)
		assert.ErrorIs(t, err, engine.ErrIllegalTransition)
	}
	job, _ := e.Job("ORD-7001")
	assert.Equal(t, models.StatusJobCompleted, job.Status)
	assert.Empty(t, e.AuditLog())
	assert.Empty(t, e.Notifications())
}

func TestIncompleteDecisionRejected(t *testing.T) {
	e := newEngine(t, orderAt(models.StatusJobInProgress))

	err := e.Transition("ORD-7001", models.StatusJobFailed, agentUser, nil, nil)
	assert.ErrorIs(t, err, engine.ErrIncompleteDecision)

	job, _ := e.Job("ORD-7001")
	assert.Equal(t, models.StatusJobInProgress, job.Status)
	assert.Empty(t, e.AuditLog())

	// A decision reason satisfies the requirement.
	require.NoError(t, e.Transition("ORD-7001", models.StatusJobFailed, agentUser, nil, &models.Decision{
		Reason:  "Agent mjohnson reported job failure: Duct collapsed",
		Outcome: models.OutcomeJobFailed,
	}))
}

func TestNotificationTargetingMatrix(t *testing.T) {
	// Only the two declared families emit; internal ops steps stay silent.
	e := newEngine(t, orderAt(models.StatusOrderReceived))

	silent := []models.Status{
		models.StatusInventoryCheckPending,
		models.StatusSiteCheckPending,
		models.StatusNodeCapacityPending,
		models.StatusInventoryAllocationPending,
	}
	for _, next := range silent {
		require.NoError(t, e.Transition("ORD-7001", next, opsUser, nil, nil))
	}
	assert.Empty(t, e.Notifications())

	require.NoError(t, e.Transition("ORD-7001", models.StatusEngineerAssigned, opsUser, nil, nil))
	fa := e.NotificationsForRole(models.RoleFieldAgent)
	require.Len(t, fa, 1)
	assert.Equal(t, "New Job Assigned", fa[0].Title)
	assert.Equal(t, "A new FTTP order (ORD-7001) has been assigned to you by ORIT.", fa[0].Message)
	assert.Empty(t, e.NotificationsForRole(models.RoleOperations))

	require.NoError(t, e.Transition("ORD-7001", models.StatusJobInProgress, agentUser, nil, nil))
	ops := e.NotificationsForRole(models.RoleOperations)
	require.Len(t, ops, 1)
	assert.Equal(t, "Job Commenced", ops[0].Title)
}

func TestAuditHistoryFollowsLifecycleEdges(t *testing.T) {
	e := newEngine(t, orderAt(models.StatusOrderReceived))
	path := []models.Status{
		models.StatusInventoryCheckPending,
		models.StatusSiteCheckPending,
		models.StatusNodeCapacityPending,
		models.StatusInventoryAllocationPending,
		models.StatusEngineerAssigned,
	}
	for _, next := range path {
		require.NoError(t, e.Transition("ORD-7001", next, opsUser, nil, nil))
	}

	log := e.AuditForJob("ORD-7001")
	require.Len(t, log, len(path))
	// Newest first: walk backwards to replay oldest to newest.
	for i := len(log) - 1; i >= 0; i-- {
		entry := log[i]
		assert.True(t, lifecycle.IsLegalTransition(entry.PreviousStatus, entry.NewStatus),
			"audit edge %s -> %s not in lifecycle table", entry.PreviousStatus, entry.NewStatus)
	}
	assert.Equal(t, models.StatusEngineerAssigned, log[0].NewStatus)
	assert.Equal(t, models.StatusOrderReceived, log[len(log)-1].PreviousStatus)
}

func TestSubscribersFireOnEveryCommit(t *testing.T) {
	e := newEngine(t)

	var fired int
	unsubscribe := e.Subscribe(func() { fired++ })

	require.NoError(t, e.AddJob(orderAt(models.StatusJobInProgress)))
	assert.Equal(t, 1, fired)

	meta := &models.JobUpdate{BlockageType: strPtr("No Access")}
	require.NoError(t, e.Transition("ORD-7001", models.StatusReworkRequired, agentUser, meta, nil))
	assert.Equal(t, 2, fired)

	notifs := e.Notifications()
	require.NotEmpty(t, notifs)
	require.NoError(t, e.MarkNotificationRead(notifs[0].ID))
	assert.Equal(t, 3, fired)

	unsubscribe()
	require.NoError(t, e.Transition("ORD-7001", models.StatusEngineerAssigned, opsUser, nil, nil))
	assert.Equal(t, 3, fired)

	// Failed transitions do not fire.
	assert.Error(t, e.Transition("ORD-7001", models.StatusBackendNotified, opsUser, nil, nil))
	assert.Equal(t, 3, fired)
}

func TestAddJobRejectsUnknownStatus(t *testing.T) {
	e := newEngine(t)
	err := e.AddJob(models.Job{ID: "ORD-9", Status: models.Status("LIMBO")})
	assert.ErrorIs(t, err, engine.ErrUnknownStatus)

	err = e.AddJob(models.Job{Status: models.StatusOrderReceived})
	assert.Error(t, err)
}

func TestMarkNotificationReadUnknownID(t *testing.T) {
	e := newEngine(t)
	assert.Error(t, e.MarkNotificationRead("missing"))
}
