package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/seantiz/mxm/internal/api"
	"github.com/seantiz/mxm/internal/config"
	"github.com/seantiz/mxm/internal/fleet"
	"github.com/seantiz/mxm/internal/mock"
	"github.com/seantiz/mxm/internal/model"
	"github.com/seantiz/mxm/internal/session"
	"github.com/seantiz/mxm/internal/stats"
	"github.com/seantiz/mxm/internal/store"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "HTTP listen address (overrides MXM_LISTEN_ADDR)"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runServe(ctx, c, c.String("addr"))
		},
	}
}

func runServe(ctx context.Context, c *cli.Command, addr string) error {
	cfg := config.Load()
	if addr != "" {
		cfg.ListenAddr = addr
	}
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	now, err := sessionNow(c)
	if err != nil {
		return err
	}

	logger.Info("mxm: starting",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"jobs_seed", cfg.JobsSeed,
	)

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open thread cache: %w", err)
	}
	defer db.Close()

	sess, err := session.New(session.Options{
		Now:            now,
		JobsSeed:       cfg.JobsSeed,
		JobCount:       cfg.JobCount,
		Targets:        stats.Targets{MTBF: cfg.MTBFTarget, MTTR: cfg.MTTRTarget},
		ThresholdHours: cfg.ThresholdHours,
	}, db, logger)
	if err != nil {
		return fmt.Errorf("build session: %w", err)
	}
	sess.Prefetch(ctx)
	defer sess.Wait()

	return api.NewServer(cfg.ListenAddr, sess, logger).Run()
}

func machinesCommand() *cli.Command {
	return &cli.Command{
		Name:  "machines",
		Usage: "Print a machine fleet as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "fleet", Value: fleet.Factory, Usage: "fixture fleet name"},
			&cli.StringFlag{Name: "seed", Usage: "trend seed prefix"},
			&cli.IntFlag{Name: "size", Usage: "generate a synthetic fleet of this many machines instead"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			gen, err := generator(c)
			if err != nil {
				return err
			}
			fixtures, err := fleet.Default().Resolve(c.String("fleet"))
			if n := c.Int("size"); n > 0 {
				fixtures, err = gen.Fleet(c.String("seed"), n)
			}
			if err != nil {
				return err
			}
			machines, err := gen.Machines(c.String("seed"), fixtures)
			if err != nil {
				return err
			}
			return printJSON(machines)
		},
	}
}

func workOrdersCommand() *cli.Command {
	return &cli.Command{
		Name:  "workorders",
		Usage: "Print the work orders of one machine as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "machine", Required: true},
			&cli.StringFlag{Name: "project", Value: string(model.ProjectInHouse), Usage: "Subcom or In-House"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			gen, err := generator(c)
			if err != nil {
				return err
			}
			project, err := model.ParseProject(c.String("project"))
			if err != nil {
				return err
			}
			wos, err := gen.WorkOrders(c.String("machine"), project)
			if err != nil {
				return err
			}
			return printJSON(wos)
		},
	}
}

func commentsCommand() *cli.Command {
	return &cli.Command{
		Name:  "comments",
		Usage: "Print a comment thread as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "owner", Required: true, Usage: "work order id, or job id with --job"},
			&cli.BoolFlag{Name: "job", Usage: "owner is a job"},
			&cli.StringFlag{Name: "subjob", Usage: "subjob id within the --job owner"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			gen, err := generator(c)
			if err != nil {
				return err
			}
			owner := c.String("owner")

			var thread []model.Comment
			switch {
			case c.String("subjob") != "":
				if !c.Bool("job") {
					return fmt.Errorf("--subjob requires --job")
				}
				thread, err = gen.JobComments(mock.SubjobThreadKey(owner, c.String("subjob")))
			case c.Bool("job"):
				thread, err = gen.JobComments(mock.JobThreadKey(owner))
			default:
				thread, err = gen.Comments(owner)
			}
			if err != nil {
				return err
			}
			return printJSON(thread)
		},
	}
}

func jobsCommand() *cli.Command {
	return &cli.Command{
		Name:  "jobs",
		Usage: "Print the generated job list split into active and past due",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "seed", Value: session.DefaultJobsSeed},
			&cli.IntFlag{Name: "count", Value: session.DefaultJobCount},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			gen, err := generator(c)
			if err != nil {
				return err
			}
			jobs, err := gen.Jobs(c.String("seed"), c.Int("count"))
			if err != nil {
				return err
			}
			active, pastDue := mock.SplitJobs(jobs, gen.Now)
			return printJSON(struct {
				Active     []model.Job `json:"active"`
				PastDue    []model.Job `json:"past_due"`
				PastDueTTR int         `json:"past_due_ttr"`
			}{active, pastDue, mock.PastDueTTR(pastDue)})
		},
	}
}

// sessionNow reads the global --now flag.
func sessionNow(c *cli.Command) (time.Time, error) {
	s := c.String("now")
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--now: %w", err)
	}
	return t, nil
}

func generator(c *cli.Command) (*mock.Generator, error) {
	now, err := sessionNow(c)
	if err != nil {
		return nil, err
	}
	return mock.New(now), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
