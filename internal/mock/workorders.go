package mock

import (
	"fmt"
	"time"

	"github.com/seantiz/mxm/internal/model"
	"github.com/seantiz/mxm/internal/seedrand"
)

// WorkOrderSeed is the seed key for a machine's work order list.
func WorkOrderSeed(machineID string, project model.Project) string {
	return fmt.Sprintf("%s-%s-wo", project, machineID)
}

// WorkOrders generates between 5 and 8 work orders for a machine.
func (g *Generator) WorkOrders(machineID string, project model.Project) ([]model.WorkOrder, error) {
	if machineID == "" {
		return nil, fmt.Errorf("machine id is empty")
	}
	if !project.Valid() {
		return nil, fmt.Errorf("machine %s: unknown project %q", machineID, project)
	}

	c := g.Catalog
	rng := seedrand.New(WorkOrderSeed(machineID, project))
	n := rng.Between(5, 8)

	out := make([]model.WorkOrder, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("WO-%s-%02d", machineID, i)
		wo, err := g.workOrder(rng, c, id, machineID, project)
		if err != nil {
			return nil, fmt.Errorf("work order %s: %w", id, err)
		}
		out = append(out, wo)
	}
	return out, nil
}

// workOrder consumes draws in a fixed order so identical seeds give
// identical lists.
func (g *Generator) workOrder(rng *seedrand.Source, c Catalog, id, machineID string, project model.Project) (model.WorkOrder, error) {
	status, err := seedrand.PickOne(rng, c.WorkOrderStatuses)
	if err != nil {
		return model.WorkOrder{}, fmt.Errorf("status: %w", err)
	}
	priority, err := seedrand.PickOne(rng, c.Priorities)
	if err != nil {
		return model.WorkOrder{}, fmt.Errorf("priority: %w", err)
	}
	category, err := seedrand.PickOne(rng, c.Categories)
	if err != nil {
		return model.WorkOrder{}, fmt.Errorf("category: %w", err)
	}
	maxAssignees := 2
	if rng.Chance(0.75) {
		maxAssignees = 3
	}
	assignees, err := seedrand.PickMany(rng, c.Names, 1, maxAssignees)
	if err != nil {
		return model.WorkOrder{}, fmt.Errorf("assignees: %w", err)
	}
	due := seedrand.DateOffset(rng, g.Now, -5, 21)
	recurrence, err := seedrand.PickOne(rng, c.Recurrences)
	if err != nil {
		return model.WorkOrder{}, fmt.Errorf("recurrence: %w", err)
	}
	title, err := seedrand.PickOne(rng, c.PlanTitles)
	if err != nil {
		return model.WorkOrder{}, fmt.Errorf("plan title: %w", err)
	}

	return model.WorkOrder{
		ID:         id,
		Name:       fmt.Sprintf("%s - %s", machineID, title),
		Status:     status,
		Priority:   priority,
		Category:   category,
		Assignees:  assignees,
		DueAt:      due,
		Recurrence: recurrence,
		Project:    project,
		MachineID:  machineID,
	}, nil
}

// DueWithin reports whether wo falls due in [now, now+d).
func DueWithin(wo model.WorkOrder, now time.Time, d time.Duration) bool {
	return !wo.DueAt.Before(now) && wo.DueAt.Before(now.Add(d))
}
