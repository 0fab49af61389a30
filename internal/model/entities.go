package model

import (
	"time"

	"github.com/seantiz/mxm/internal/trend"
)

// Machine is a production asset with its current reliability figures and a
// four-week history of each.
type Machine struct {
	ID              string        `json:"machine_id"`
	Status          MachineStatus `json:"status"`
	Project         Project       `json:"project"`
	TimeDownMinutes int           `json:"time_down_minutes"`
	MTBFHours       float64       `json:"mtbf_hours"`
	MTTRHours       float64       `json:"mttr_hours"`
	MTBFTrend       trend.Series  `json:"mtbf_trend"`
	MTTRTrend       trend.Series  `json:"mttr_trend"`
}

// Value returns the current value of metric m.
func (m Machine) Value(metric Metric) float64 {
	switch metric {
	case MetricMTBF:
		return m.MTBFHours
	case MetricMTTR:
		return m.MTTRHours
	}
	return 0
}

// Trend returns the historical series of metric m.
func (m Machine) Trend(metric Metric) trend.Series {
	switch metric {
	case MetricMTBF:
		return m.MTBFTrend
	case MetricMTTR:
		return m.MTTRTrend
	}
	return trend.Series{}
}

// WorkOrder is a maintenance task raised against one machine.
type WorkOrder struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Status     WorkOrderStatus `json:"status"`
	Priority   Priority        `json:"priority"`
	Category   Category        `json:"category"`
	Assignees  []string        `json:"assignees"`
	DueAt      time.Time       `json:"due_at"`
	Recurrence Recurrence      `json:"recurrence"`
	// Comment is left empty; discussion lives in the comment thread.
	Comment   string  `json:"comment"`
	Project   Project `json:"project"`
	MachineID string  `json:"machine_id"`
}

// Comment is one entry in a thread owned by a work order, job or subjob.
type Comment struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Message string    `json:"message"`
	TS      time.Time `json:"ts"`
}

// Subjob is one step of a Job.
type Subjob struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Status       SubjobStatus `json:"status"`
	DurationDays int          `json:"duration_days"`
	RecoveryDays int          `json:"recovery_days"`
	DueAt        time.Time    `json:"due_at"`
	OpNo         float64      `json:"op_no"`
	Resource     string       `json:"resource"`
	Location     Location     `json:"location"`
}

// Start is the due time less the subjob duration.
func (s Subjob) Start() time.Time {
	return s.DueAt.Add(-time.Duration(s.DurationDays) * 24 * time.Hour)
}

// Job is a customer order made of subjobs. The timeline and recovery total
// are aggregates over Subjobs.
type Job struct {
	ID                string    `json:"id"`
	Customer          string    `json:"customer"`
	TimelineStart     time.Time `json:"timeline_start"`
	TimelineEnd       time.Time `json:"timeline_end"`
	TotalRecoveryDays int       `json:"total_recovery_days"`
	Subjobs           []Subjob  `json:"subjobs"`
	OpNo              float64   `json:"op_no"`
	Resource          string    `json:"resource"`
	Location          Location  `json:"location"`
}

// Subjob returns the subjob with the given id.
func (j Job) Subjob(id string) (Subjob, bool) {
	for _, s := range j.Subjobs {
		if s.ID == id {
			return s, true
		}
	}
	return Subjob{}, false
}
