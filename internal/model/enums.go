package model

import "fmt"

// MachineStatus is the operating state of a machine.
type MachineStatus string

const (
	MachineRunning MachineStatus = "Running"
	MachineDown    MachineStatus = "Down"
)

// Valid reports whether s is a known machine status.
func (s MachineStatus) Valid() bool {
	switch s {
	case MachineRunning, MachineDown:
		return true
	}
	return false
}

// Project is the owning program of a machine and its work orders.
type Project string

const (
	ProjectSubcom  Project = "Subcom"
	ProjectInHouse Project = "In-House"
)

// Projects lists every project in display order.
var Projects = []Project{ProjectSubcom, ProjectInHouse}

func (p Project) Valid() bool {
	switch p {
	case ProjectSubcom, ProjectInHouse:
		return true
	}
	return false
}

// ParseProject accepts a project name as it appears in query strings.
func ParseProject(s string) (Project, error) {
	p := Project(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown project %q", s)
	}
	return p, nil
}

// WorkOrderStatus is the lifecycle state of a work order.
type WorkOrderStatus string

const (
	WorkOrderOpen       WorkOrderStatus = "Open"
	WorkOrderInProgress WorkOrderStatus = "In Progress"
	WorkOrderOnHold     WorkOrderStatus = "On Hold"
)

func (s WorkOrderStatus) Valid() bool {
	switch s {
	case WorkOrderOpen, WorkOrderInProgress, WorkOrderOnHold:
		return true
	}
	return false
}

// Priority ranks work orders.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
	PriorityNone   Priority = "None"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow, PriorityNone:
		return true
	}
	return false
}

// Rank orders priorities from most to least urgent, starting at 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	case PriorityNone:
		return 3
	}
	return 4
}

// Category classifies the kind of maintenance a work order covers.
type Category string

const (
	CategoryBreakIn    Category = "Break-In"
	CategoryPlanRepair Category = "Plan Repair"
	CategoryPM         Category = "PM"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryBreakIn, CategoryPlanRepair, CategoryPM:
		return true
	}
	return false
}

// Recurrence is how often a work order repeats. The empty value means it
// does not repeat.
type Recurrence string

const (
	RecurrenceNone     Recurrence = ""
	RecurrenceWeekly   Recurrence = "Weekly"
	RecurrenceBiweekly Recurrence = "Every 2 wks"
	RecurrenceMonthly  Recurrence = "Monthly"
	RecurrenceYearly   Recurrence = "Yearly"
)

func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// SubjobStatus tracks whether work on a subjob has begun.
type SubjobStatus string

const (
	SubjobStarted    SubjobStatus = "Started"
	SubjobNotStarted SubjobStatus = "Not Started"
)

func (s SubjobStatus) Valid() bool {
	switch s {
	case SubjobStarted, SubjobNotStarted:
		return true
	}
	return false
}

// Location is the plant side a job or subjob runs on.
type Location string

const (
	LocationEast Location = "E"
	LocationWest Location = "W"
	LocationNone Location = "-"
)

func (l Location) Valid() bool {
	switch l {
	case LocationEast, LocationWest, LocationNone:
		return true
	}
	return false
}

// Metric selects one of the two reliability measures of a machine.
type Metric string

const (
	MetricMTBF Metric = "mtbf"
	MetricMTTR Metric = "mttr"
)

func (m Metric) Valid() bool {
	switch m {
	case MetricMTBF, MetricMTTR:
		return true
	}
	return false
}

// HigherIsBetter reports whether larger values of m indicate a healthier
// machine.
func (m Metric) HigherIsBetter() bool {
	switch m {
	case MetricMTBF:
		return true
	case MetricMTTR:
		return false
	}
	return false
}
