package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	root := &cli.Command{
		Name:  "mxm",
		Usage: "Seeded maintenance and job scheduling dashboard backend",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "now", Usage: "session clock as RFC 3339 (default: current time)"},
		},
		Commands: []*cli.Command{
			serveCommand(),
			machinesCommand(),
			workOrdersCommand(),
			commentsCommand(),
			jobsCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServe(ctx, cmd, "")
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
