package mock

import (
	"fmt"
	"time"

	"github.com/seantiz/mxm/internal/model"
	"github.com/seantiz/mxm/internal/seedrand"
)

// Jobs generates count jobs from a single PRNG seeded with seed. Each job
// has between 3 and 6 subjobs.
func (g *Generator) Jobs(seed string, count int) ([]model.Job, error) {
	if count < 0 {
		return nil, ErrInvalidCount
	}
	rng := seedrand.New(seed)
	out := make([]model.Job, 0, count)
	for i := 1; i <= count; i++ {
		job, err := g.job(rng, seed, i)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, nil
}

func (g *Generator) job(rng *seedrand.Source, seed string, n int) (model.Job, error) {
	id := fmt.Sprintf("JOB-%03d", n)
	subjobs, err := g.subjobs(rng, seed, id)
	if err != nil {
		return model.Job{}, fmt.Errorf("job %s: %w", id, err)
	}
	customer, err := seedrand.PickOne(rng, g.Catalog.Customers)
	if err != nil {
		return model.Job{}, fmt.Errorf("job %s customer: %w", id, err)
	}
	opNo, resource, loc, err := g.placement(rng)
	if err != nil {
		return model.Job{}, fmt.Errorf("job %s: %w", id, err)
	}

	start, end := Timeline(subjobs, g.Now)
	return model.Job{
		ID:                id,
		Customer:          customer,
		TimelineStart:     start,
		TimelineEnd:       end,
		TotalRecoveryDays: TotalRecovery(subjobs),
		Subjobs:           subjobs,
		OpNo:              opNo,
		Resource:          resource,
		Location:          loc,
	}, nil
}

func (g *Generator) subjobs(rng *seedrand.Source, seed, jobID string) ([]model.Subjob, error) {
	n := rng.Between(3, 6)
	baseStart := g.Now.Add(-7 * day)

	out := make([]model.Subjob, 0, n)
	for i := 0; i < n; i++ {
		name, err := seedrand.PickOne(rng, g.Catalog.SubjobNames)
		if err != nil {
			return nil, fmt.Errorf("subjob name: %w", err)
		}
		duration := 2 + rng.Intn(6)
		recovery := rng.Intn(4)
		offset := rng.Intn(10) - 3
		dueOffset := offset + duration + rng.Intn(3)
		status := model.SubjobNotStarted
		if rng.Chance(0.4) {
			status = model.SubjobStarted
		}
		opNo, resource, loc, err := g.placement(rng)
		if err != nil {
			return nil, fmt.Errorf("subjob %d: %w", i+1, err)
		}

		due := baseStart.Add(time.Duration(dueOffset) * day)
		id, err := subjobID(seed, jobID, i+1, due)
		if err != nil {
			return nil, fmt.Errorf("subjob %d id: %w", i+1, err)
		}
		out = append(out, model.Subjob{
			ID:           id,
			Name:         fmt.Sprintf("%s %d", name, i+1),
			Status:       status,
			DurationDays: duration,
			RecoveryDays: recovery,
			DueAt:        due,
			OpNo:         opNo,
			Resource:     resource,
			Location:     loc,
		})
	}
	return out, nil
}

// placement draws the op number, resource and location shared by jobs and
// subjobs.
func (g *Generator) placement(rng *seedrand.Source) (float64, string, model.Location, error) {
	opNo := float64(10+rng.Intn(90)) + float64(rng.Intn(10))/10
	resource, err := seedrand.PickOne(rng, g.Catalog.Resources)
	if err != nil {
		return 0, "", "", fmt.Errorf("resource: %w", err)
	}
	loc, err := seedrand.PickOne(rng, g.Catalog.Locations)
	if err != nil {
		return 0, "", "", fmt.Errorf("location: %w", err)
	}
	return opNo, resource, loc, nil
}

// subjobID derives a stable ULID from the due time and a PRNG keyed by the
// subjob's position, so ids survive regeneration.
func subjobID(seed, jobID string, n int, due time.Time) (string, error) {
	entropy := seedrand.New(fmt.Sprintf("%s-%s-sub-%d", seed, jobID, n))
	id, err := model.DeterministicID(due, entropy)
	if err != nil {
		return "", err
	}
	return "sub-" + id, nil
}

// Timeline returns the earliest subjob start and the latest subjob due
// time. Both collapse to now when there are no subjobs.
func Timeline(subjobs []model.Subjob, now time.Time) (time.Time, time.Time) {
	if len(subjobs) == 0 {
		return now, now
	}
	start, end := subjobs[0].Start(), subjobs[0].DueAt
	for _, s := range subjobs[1:] {
		if st := s.Start(); st.Before(start) {
			start = st
		}
		if s.DueAt.After(end) {
			end = s.DueAt
		}
	}
	return start, end
}

// TotalRecovery sums recovery days over subjobs.
func TotalRecovery(subjobs []model.Subjob) int {
	total := 0
	for _, s := range subjobs {
		total += s.RecoveryDays
	}
	return total
}
