package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/seantiz/mxm/internal/fleet"
	"github.com/seantiz/mxm/internal/mock"
	"github.com/seantiz/mxm/internal/model"
	"github.com/seantiz/mxm/internal/stats"
	"github.com/seantiz/mxm/internal/store"
)

var (
	ErrUnknownFleet     = fleet.ErrUnknownFleet
	ErrUnknownMachine   = errors.New("unknown machine")
	ErrUnknownWorkOrder = errors.New("unknown work order")
	ErrUnknownJob       = errors.New("unknown job")
	ErrUnknownSubjob    = errors.New("unknown subjob")
	ErrUnknownList      = errors.New("unknown job list")
)

// Defaults for Options left at their zero value.
const (
	DefaultJobsSeed       = "monday-jobs-seed"
	DefaultJobCount       = 60
	DefaultMTBFTarget     = 200
	DefaultMTTRTarget     = 2
	DefaultThresholdHours = 150
)

// List names one half of the split job list.
type List string

const (
	ListActive  List = "active"
	ListPastDue List = "past_due"
)

func (l List) Valid() bool {
	switch l {
	case ListActive, ListPastDue:
		return true
	}
	return false
}

// Options configures a Session.
type Options struct {
	// Now is the session clock. Zero means the current UTC time.
	Now            time.Time
	Fleets         *fleet.Registry
	Catalog        *mock.Catalog
	JobsSeed       string
	JobCount       int
	Targets        stats.Targets
	ThresholdHours float64
}

func (o *Options) applyDefaults() {
	if o.Now.IsZero() {
		o.Now = time.Now().UTC()
	}
	if o.Fleets == nil {
		o.Fleets = fleet.Default()
	}
	if o.JobsSeed == "" {
		o.JobsSeed = DefaultJobsSeed
	}
	if o.JobCount == 0 {
		o.JobCount = DefaultJobCount
	}
	if o.Targets.MTBF == 0 {
		o.Targets.MTBF = DefaultMTBFTarget
	}
	if o.Targets.MTTR == 0 {
		o.Targets.MTTR = DefaultMTTRTarget
	}
	if o.ThresholdHours == 0 {
		o.ThresholdHours = DefaultThresholdHours
	}
}

// Session is an immutable generated dataset plus a lazily filled thread
// cache. It is safe for concurrent use.
type Session struct {
	opts   Options
	gen    *mock.Generator
	store  store.Store
	logger *slog.Logger

	fleets     []fleet.Info
	machines   map[string][]model.Machine
	workOrders map[string]map[string][]model.WorkOrder
	woIndex    map[string]model.WorkOrder

	jobs     []model.Job
	jobIndex map[string]model.Job
	active   []model.Job
	pastDue  []model.Job

	fills singleflight.Group
	wg    sync.WaitGroup
}

// New generates the session dataset. Comment threads are not generated
// until requested or prefetched.
func New(opts Options, s store.Store, logger *slog.Logger) (*Session, error) {
	opts.applyDefaults()
	gen := mock.New(opts.Now)
	if opts.Catalog != nil {
		gen.Catalog = *opts.Catalog
	}

	sess := &Session{
		opts:       opts,
		gen:        gen,
		store:      s,
		logger:     logger,
		fleets:     opts.Fleets.List(),
		machines:   make(map[string][]model.Machine),
		workOrders: make(map[string]map[string][]model.WorkOrder),
		woIndex:    make(map[string]model.WorkOrder),
		jobIndex:   make(map[string]model.Job),
	}

	for _, info := range sess.fleets {
		if err := sess.loadFleet(info.Name); err != nil {
			return nil, err
		}
	}

	jobs, err := gen.Jobs(opts.JobsSeed, opts.JobCount)
	if err != nil {
		return nil, fmt.Errorf("generate jobs: %w", err)
	}
	generatedEntities.WithLabelValues("job").Add(float64(len(jobs)))
	sess.jobs = jobs
	for _, j := range jobs {
		sess.jobIndex[j.ID] = j
	}
	sess.active, sess.pastDue = mock.SplitJobs(jobs, opts.Now)

	logger.Info("session: dataset ready",
		"fleets", len(sess.fleets),
		"work_orders", len(sess.woIndex),
		"jobs", len(jobs),
		"active", len(sess.active),
		"past_due", len(sess.pastDue),
	)
	return sess, nil
}

func (s *Session) loadFleet(name string) error {
	fixtures, err := s.opts.Fleets.Resolve(name)
	if err != nil {
		return err
	}
	machines, err := s.gen.Machines("", fixtures)
	if err != nil {
		return fmt.Errorf("fleet %s: %w", name, err)
	}
	generatedEntities.WithLabelValues("machine").Add(float64(len(machines)))
	s.machines[name] = machines

	byMachine := make(map[string][]model.WorkOrder, len(machines))
	for _, m := range machines {
		wos, err := s.gen.WorkOrders(m.ID, m.Project)
		if err != nil {
			return fmt.Errorf("fleet %s: %w", name, err)
		}
		generatedEntities.WithLabelValues("work_order").Add(float64(len(wos)))
		byMachine[m.ID] = wos
		for _, wo := range wos {
			s.woIndex[wo.ID] = wo
		}
	}
	s.workOrders[name] = byMachine
	return nil
}

// Now is the clock every entity in the session was generated against.
func (s *Session) Now() time.Time { return s.opts.Now }

// Targets are the scatter chart reliability goals.
func (s *Session) Targets() stats.Targets { return s.opts.Targets }

// ThresholdHours is the MTBF underperformance line.
func (s *Session) ThresholdHours() float64 { return s.opts.ThresholdHours }

// Fleets lists the fleets in the session, sorted by name.
func (s *Session) Fleets() []fleet.Info {
	return slices.Clone(s.fleets)
}

// Machines returns the machines of a fleet in fixture order.
func (s *Session) Machines(fleetName string) ([]model.Machine, error) {
	m, ok := s.machines[fleetName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFleet, fleetName)
	}
	return slices.Clone(m), nil
}

// WorkOrders returns the work orders of one machine in a fleet.
func (s *Session) WorkOrders(fleetName, machineID string) ([]model.WorkOrder, error) {
	byMachine, ok := s.workOrders[fleetName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFleet, fleetName)
	}
	wos, ok := byMachine[machineID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMachine, machineID)
	}
	return slices.Clone(wos), nil
}

// WorkOrder looks up a work order by id across all fleets.
func (s *Session) WorkOrder(id string) (model.WorkOrder, error) {
	wo, ok := s.woIndex[id]
	if !ok {
		return model.WorkOrder{}, fmt.Errorf("%w: %q", ErrUnknownWorkOrder, id)
	}
	return wo, nil
}

// Jobs returns the full job list in generation order.
func (s *Session) Jobs() []model.Job {
	return slices.Clone(s.jobs)
}

// JobList returns the active or past-due half of the job list.
func (s *Session) JobList(l List) ([]model.Job, error) {
	switch l {
	case ListActive:
		return slices.Clone(s.active), nil
	case ListPastDue:
		return slices.Clone(s.pastDue), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownList, l)
}

// JobLists returns both halves of the job list.
func (s *Session) JobLists() (active, pastDue []model.Job) {
	return slices.Clone(s.active), slices.Clone(s.pastDue)
}

// Job looks up a job by id.
func (s *Session) Job(id string) (model.Job, error) {
	j, ok := s.jobIndex[id]
	if !ok {
		return model.Job{}, fmt.Errorf("%w: %q", ErrUnknownJob, id)
	}
	return j, nil
}

// WorkOrderComments returns the thread of a work order.
func (s *Session) WorkOrderComments(ctx context.Context, workOrderID string) ([]model.Comment, error) {
	if _, err := s.WorkOrder(workOrderID); err != nil {
		return nil, err
	}
	return s.thread(ctx, mock.CommentSeed(workOrderID), func() ([]model.Comment, error) {
		return s.gen.Comments(workOrderID)
	})
}

// JobComments returns the thread of a job.
func (s *Session) JobComments(ctx context.Context, jobID string) ([]model.Comment, error) {
	if _, err := s.Job(jobID); err != nil {
		return nil, err
	}
	key := mock.JobThreadKey(jobID)
	return s.thread(ctx, key, func() ([]model.Comment, error) {
		return s.gen.JobComments(key)
	})
}

// SubjobComments returns the thread of one subjob of a job.
func (s *Session) SubjobComments(ctx context.Context, jobID, subjobID string) ([]model.Comment, error) {
	j, err := s.Job(jobID)
	if err != nil {
		return nil, err
	}
	if _, ok := j.Subjob(subjobID); !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrUnknownSubjob, subjobID, jobID)
	}
	key := mock.SubjobThreadKey(jobID, subjobID)
	return s.thread(ctx, key, func() ([]model.Comment, error) {
		return s.gen.JobComments(key)
	})
}

// thread serves key from the store, generating and storing it on a miss.
// Concurrent misses on the same key share one generation.
func (s *Session) thread(ctx context.Context, key string, generate func() ([]model.Comment, error)) ([]model.Comment, error) {
	t, err := s.store.GetThread(ctx, key)
	if err == nil {
		threadCache.WithLabelValues("hit").Inc()
		return sortThread(t), nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		threadCache.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("read thread %s: %w", key, err)
	}

	threadCache.WithLabelValues("miss").Inc()
	// The fill is shared by every caller waiting on key, so it must not
	// die with the leader's request.
	fillCtx := context.WithoutCancel(ctx)
	v, err, _ := s.fills.Do(key, func() (any, error) {
		s.logger.Debug("session: generating thread", "key", key)
		t, err := generate()
		if err != nil {
			return nil, fmt.Errorf("generate thread %s: %w", key, err)
		}
		generatedEntities.WithLabelValues("comment").Add(float64(len(t)))
		if err := s.store.PutThread(fillCtx, key, t); err != nil {
			return nil, fmt.Errorf("store thread %s: %w", key, err)
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return sortThread(slices.Clone(v.([]model.Comment))), nil
}

// sortThread orders comments by timestamp, keeping generation order for
// equal timestamps.
func sortThread(t []model.Comment) []model.Comment {
	if t == nil {
		t = []model.Comment{}
	}
	sort.SliceStable(t, func(i, j int) bool {
		return t[i].TS.Before(t[j].TS)
	})
	return t
}

// Prefetch fills the cache with every work order thread in the
// background. Use Wait to block until it finishes.
func (s *Session) Prefetch(ctx context.Context) {
	ids := make([]string, 0, len(s.woIndex))
	for id := range s.woIndex {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		s.wg.Go(func() {
			if _, err := s.WorkOrderComments(ctx, id); err != nil {
				s.logger.Error("session: prefetch failed", "work_order_id", id, "error", err)
			}
		})
	}
	s.logger.Info("session: prefetching threads", "count", len(ids))
}

// Wait blocks until all prefetch goroutines complete.
func (s *Session) Wait() {
	s.wg.Wait()
}

// CacheStats reports the thread cache size.
func (s *Session) CacheStats(ctx context.Context) (store.CacheStats, error) {
	return s.store.Stats(ctx)
}
