// Package seed loads a small demo dataset so a fresh server has orders to
// explore. Enabled via SEED_DEMO_DATA; production intake arrives through the
// upstream order feed instead.
package seed

import (
	"fmt"

	"fibre-order-tracker/internal/engine"
	"fibre-order-tracker/internal/models"
)

// Jobs returns the demo orders. Statuses cover the main workflow stages so
// both UIs have something actionable.
func Jobs() []models.Job {
	return []models.Job{
		{
			ID:            "ORD-7001",
			CustomerName:  "Alice Hughes",
			Address:       "14 Croft Lane",
			Postcode:      "SW1A 2JR",
			ServiceType:   models.ServiceFTTP,
			SLA:           models.SLAPremium,
			Status:        models.StatusOrderReceived,
			ScheduledDate: "2026-09-04",
			Region:        "London",
		},
		{
			ID:            "ORD-7002",
			CustomerName:  "Raj Patel",
			Address:       "3 Deansgate Mews",
			Postcode:      "M3 4LQ",
			ServiceType:   models.ServiceFTTC,
			SLA:           models.SLAStandard,
			Status:        models.StatusSiteCheckPending,
			ScheduledDate: "2026-09-05",
			Region:        "Manchester",
		},
		{
			ID:              "ORD-7003",
			CustomerName:    "Megan Price",
			Address:         "88 Jewellery Quarter",
			Postcode:        "B18 6NF",
			ServiceType:     models.ServiceFTTP,
			SLA:             models.SLAStandard,
			Status:          models.StatusEngineerAssigned,
			ScheduledDate:   "2026-09-03",
			Region:          "Birmingham",
			AssignedAgentID: "FA-204",
		},
		{
			ID:              "ORD-7004",
			CustomerName:    "Tom Davies",
			Address:         "21 Kirkstall Road",
			Postcode:        "LS3 1HS",
			ServiceType:     models.ServiceEthernet,
			SLA:             models.SLAPremium,
			Status:          models.StatusJobInProgress,
			ScheduledDate:   "2026-09-02",
			Region:          "Leeds",
			AssignedAgentID: "FA-117",
		},
		{
			ID:            "ORD-7005",
			CustomerName:  "Fiona Clarke",
			Address:       "9 Clifton Parade",
			Postcode:      "BS8 3BY",
			ServiceType:   models.ServiceFTTP,
			SLA:           models.SLAStandard,
			Status:        models.StatusWaitingForProcurement,
			ScheduledDate: "2026-09-08",
			Region:        "Bristol",
		},
		{
			ID:              "ORD-7006",
			CustomerName:    "George Hall",
			Address:         "45 Princes Street",
			Postcode:        "EH2 2BY",
			ServiceType:     models.ServiceFTTC,
			SLA:             models.SLAStandard,
			Status:          models.StatusJobCompleted,
			ScheduledDate:   "2026-08-28",
			Region:          "Edinburgh",
			AssignedAgentID: "FA-092",
			ONTSerialNumber: "ONT-55-83921",
			FibreRoute:      models.RouteOverhead,
		},
	}
}

// Apply registers the demo orders with the engine.
func Apply(eng *engine.Engine) error {
	for _, job := range Jobs() {
		if err := eng.AddJob(job); err != nil {
			return fmt.Errorf("seed %s: %w", job.ID, err)
		}
	}
	return nil
}
