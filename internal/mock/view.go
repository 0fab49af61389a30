package mock

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/seantiz/mxm/internal/model"
)

// SplitJobs partitions jobs into active and past due. A job is past due
// once its timeline has ended or any subjob is overdue.
func SplitJobs(jobs []model.Job, now time.Time) (active, pastDue []model.Job) {
	for _, j := range jobs {
		if isPastDue(j, now) {
			pastDue = append(pastDue, j)
		} else {
			active = append(active, j)
		}
	}
	return active, pastDue
}

func isPastDue(j model.Job, now time.Time) bool {
	if j.TimelineEnd.Before(now) {
		return true
	}
	return slices.ContainsFunc(j.Subjobs, func(s model.Subjob) bool {
		return s.DueAt.Before(now)
	})
}

// PastDueTTR is the total recovery days across jobs.
func PastDueTTR(jobs []model.Job) int {
	total := 0
	for _, j := range jobs {
		total += j.TotalRecoveryDays
	}
	return total
}

// PercentStarted is the share of started subjobs, rounded to a whole percent.
func PercentStarted(subjobs []model.Subjob) int {
	started := 0
	for _, s := range subjobs {
		if s.Status == model.SubjobStarted {
			started++
		}
	}
	return int(math.Round(float64(started) / float64(max(1, len(subjobs))) * 100))
}

// TimelineProgress is how far now lies between start and end, as a
// percentage clamped to [0, 100].
func TimelineProgress(start, end, now time.Time) float64 {
	span := max(end.Sub(start), time.Millisecond)
	pct := float64(now.Sub(start)) / float64(span) * 100
	return math.Min(100, math.Max(0, pct))
}

// FormatDuration renders whole minutes as "0m", "45m", "2h" or "2h 5m".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// Filter keeps machines whose project is in projects (all projects when
// projects is empty) and whose id, status, project or formatted downtime
// contains query, ignoring case.
func Filter(machines []model.Machine, query string, projects []model.Project) []model.Machine {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Machine, 0, len(machines))
	for _, m := range machines {
		if len(projects) > 0 && !slices.Contains(projects, m.Project) {
			continue
		}
		if q != "" && !strings.Contains(haystack(m), q) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func haystack(m model.Machine) string {
	return strings.ToLower(fmt.Sprintf("%s %s %s %s",
		m.ID, m.Status, m.Project, FormatDuration(m.TimeDownMinutes)))
}
