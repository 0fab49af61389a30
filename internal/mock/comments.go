package mock

import (
	"fmt"
	"time"

	"github.com/seantiz/mxm/internal/model"
	"github.com/seantiz/mxm/internal/seedrand"
)

// CommentSeed is the seed key for a work order's thread.
func CommentSeed(workOrderID string) string {
	return workOrderID + "-comments"
}

// JobThreadKey is the seed key for a job's thread.
func JobThreadKey(jobID string) string {
	return "job-" + jobID
}

// SubjobThreadKey is the seed key for a subjob's thread.
func SubjobThreadKey(jobID, subjobID string) string {
	return fmt.Sprintf("sub-%s-%s", jobID, subjobID)
}

// Comments generates up to 15 comments for a work order. The thread starts
// at a random point within the last ten days and each entry is one to six
// hours (plus up to half an hour) after the previous one.
func (g *Generator) Comments(workOrderID string) ([]model.Comment, error) {
	rng := seedrand.New(CommentSeed(workOrderID))
	n := rng.Intn(16)
	t := g.Now.Add(-time.Duration(rng.Intn(10*24*60*60*1000)) * time.Millisecond)

	out := make([]model.Comment, 0, n)
	for i := 0; i < n; i++ {
		hours := 1 + rng.Intn(6)
		secs := rng.Intn(1800)
		t = t.Add(time.Duration(hours)*time.Hour + time.Duration(secs)*time.Second)

		author, err := seedrand.PickOne(rng, g.Catalog.Names)
		if err != nil {
			return nil, fmt.Errorf("comment author: %w", err)
		}
		msg, err := seedrand.PickOne(rng, g.Catalog.MaintenanceNotes)
		if err != nil {
			return nil, fmt.Errorf("comment message: %w", err)
		}
		out = append(out, model.Comment{
			ID:      fmt.Sprintf("%s-c%02d", workOrderID, i+1),
			Author:  author,
			Message: msg,
			TS:      t,
		})
	}
	return out, nil
}

// JobComments generates up to 6 comments for a job or subjob thread key.
// The thread begins ten days ago and advances a day plus up to seven hours
// per entry.
func (g *Generator) JobComments(key string) ([]model.Comment, error) {
	rng := seedrand.New(key)
	n := rng.Intn(7)
	t := g.Now.Add(-10 * day)

	out := make([]model.Comment, 0, n)
	for i := 0; i < n; i++ {
		t = t.Add(day + time.Duration(rng.Intn(8))*time.Hour)
		user := 1 + rng.Intn(50)
		msg, err := seedrand.PickOne(rng, g.Catalog.JobNotes)
		if err != nil {
			return nil, fmt.Errorf("job comment message: %w", err)
		}
		out = append(out, model.Comment{
			ID:      fmt.Sprintf("%s-c%d", key, i+1),
			Author:  fmt.Sprintf("User %d", user),
			Message: msg,
			TS:      t,
		})
	}
	return out, nil
}
