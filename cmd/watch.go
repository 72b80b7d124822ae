package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkmuru/copilot-trans/internal/formatter"
	"github.com/pkmuru/copilot-trans/internal/poller"
	"github.com/pkmuru/copilot-trans/internal/shared"
	"github.com/urfave/cli/v3"
)

// Watch runs the transcript poll loop until interrupted.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolve(cmd)
	if err != nil {
		return err
	}

	if interval := cmd.Int("interval"); interval > 0 {
		config.Poll.IntervalMS = int(interval)
	}
	if cmd.Bool("verbose") {
		config.Poll.Verbose = true
	}
	shared.SetVerbose(r.logger, config.Poll.Verbose)

	runID := shared.GenerateRunID()
	logger := shared.WithLogger(r.logger, "run", runID)
	interval := time.Duration(config.Poll.IntervalMS) * time.Millisecond

	p := poller.New(poller.Opts{
		API:         r.graphClient(config, logger),
		Credentials: r.credentialProvider(config, logger),
		MeetingID:   config.Graph.MeetingID,
		Interval:    interval,
		Verbose:     config.Poll.Verbose,
		Logger:      logger,
		Output:      r.output,
	})

	formatter.WriteBanner(r.output, runID, config.Graph.MeetingID, interval)
	logger.Info("watching transcript feed", "meeting", config.Graph.MeetingID, "interval", interval)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cmd.Bool("once") {
		return p.RunOnce(ctx)
	}

	err = p.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("shutting down")
		return nil
	}
	return err
}
