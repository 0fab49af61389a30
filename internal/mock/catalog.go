package mock

import "github.com/seantiz/mxm/internal/model"

// Catalog holds the pools generators draw from. An empty pool is a
// configuration error and surfaces as seedrand.ErrEmptyCollection.
type Catalog struct {
	Names            []string
	PlanTitles       []string
	MaintenanceNotes []string
	Customers        []string
	SubjobNames      []string
	JobNotes         []string
	Resources        []string

	WorkOrderStatuses []model.WorkOrderStatus
	Priorities        []model.Priority
	Categories        []model.Category
	Recurrences       []model.Recurrence
	Locations         []model.Location
	Projects          []model.Project
}

// DefaultCatalog returns the pools used by the dashboard.
func DefaultCatalog() Catalog {
	return Catalog{
		Names: []string{
			"Alex Chen", "Brooke Patel", "Chris Rivera", "Dana Smith",
			"Evan Lee", "Fatima Khan", "Gabe Flores", "Harper Young",
		},
		PlanTitles: []string{
			"WEEKLY INSPECTION", "6 MONTH - PM", "MONTHLY SAFETY CHECK",
			"BELT & PULLEY CHECK", "SENSOR CLEANING", "LUBRICATION ROUTINE",
		},
		MaintenanceNotes: []string{
			"Inspected and verified alignment.",
			"Cleaned optical sensor; readings normalized.",
			"Parts on order, delayed shipping.",
			"Operator reported intermittent noise, unable to reproduce.",
			"Re-calibrated load cell and documented results.",
			"Replaced worn pulley and lubricated bearings.",
			"Investigated over-temp alarm; fan shroud was blocked.",
			"Updated SOP for belt inspection checklist.",
		},
		Customers: []string{
			"SubCom LLC", "Atlantic Fiber", "Pacific Cables",
			"BlueWave", "In-House", "Global Line",
		},
		SubjobNames: []string{
			"Extrusion", "Armoring", "Jacketing", "Testing", "Spooling", "Packaging",
		},
		JobNotes: []string{
			"Order reviewed with customer.",
			"Blocking issue escalated to maintenance.",
			"Awaiting QA sign-off.",
			"Material delay noted, adjusted timeline.",
			"Change order received; subjob scope updated.",
		},
		Resources: []string{"605", "606", "607", "608", "609", "610", "611"},

		WorkOrderStatuses: []model.WorkOrderStatus{
			model.WorkOrderOpen, model.WorkOrderInProgress, model.WorkOrderOnHold,
		},
		Priorities: []model.Priority{
			model.PriorityHigh, model.PriorityMedium, model.PriorityLow, model.PriorityNone,
		},
		Categories: []model.Category{
			model.CategoryBreakIn, model.CategoryPlanRepair, model.CategoryPM,
		},
		Recurrences: []model.Recurrence{
			model.RecurrenceNone, model.RecurrenceWeekly, model.RecurrenceBiweekly,
			model.RecurrenceMonthly, model.RecurrenceYearly,
		},
		Locations: []model.Location{model.LocationEast, model.LocationWest, model.LocationNone},
		Projects:  []model.Project{model.ProjectSubcom, model.ProjectInHouse},
	}
}
