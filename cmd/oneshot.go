package main

import (
	"context"
	"fmt"

	"github.com/pkmuru/copilot-trans/internal/formatter"
	"github.com/pkmuru/copilot-trans/internal/graph"
	"github.com/pkmuru/copilot-trans/internal/shared"
	"github.com/urfave/cli/v3"
)

// List fetches the transcript list once and prints it.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolve(cmd)
	if err != nil {
		return err
	}

	credential, err := r.acquire(ctx, config)
	if err != nil {
		return err
	}

	client := r.graphClient(config, r.logger)
	resp, err := client.ListTranscripts(ctx, config.Graph.MeetingID, credential.Token)
	if err != nil {
		return err
	}

	body, err := graph.Decode(resp)
	if err != nil {
		return err
	}

	switch body.Kind {
	case graph.KindEmpty:
		return r.writePlain("no transcripts available\n")
	case graph.KindRaw:
		return r.writePlain("%s\n", body.Raw)
	}

	if cmd.Bool("json") {
		return r.writeJSON(body.Parsed, true)
	}

	items := body.Items()
	if len(items) == 0 {
		return r.writePlain("no transcripts available\n")
	}
	for _, item := range items {
		formatter.WriteFragment(r.output, formatter.HeadingNew, graph.Summarize(item))
	}
	return nil
}

// Fetch fetches one transcript fragment's detail and prints it.
func (r *Runner) Fetch(ctx context.Context, cmd *cli.Command) error {
	transcriptID := cmd.StringArg("transcript-id")
	if transcriptID == "" {
		return fmt.Errorf("%w: transcript-id", shared.ErrMissingArgument)
	}

	config, err := r.resolve(cmd)
	if err != nil {
		return err
	}

	credential, err := r.acquire(ctx, config)
	if err != nil {
		return err
	}

	client := r.graphClient(config, r.logger)
	resp, err := client.GetTranscript(ctx, config.Graph.MeetingID, transcriptID, credential.Token)
	if err != nil {
		return err
	}

	body, err := graph.Decode(resp)
	if err != nil {
		return err
	}

	switch body.Kind {
	case graph.KindEmpty:
		return r.writePlain("no detail available for %s\n", transcriptID)
	case graph.KindRaw:
		return r.writePlain("%s\n", body.Raw)
	}

	if cmd.Bool("json") {
		return r.writeJSON(body.Parsed, true)
	}

	payload, ok := body.Object()
	if !ok {
		return r.writeJSON(body.Parsed, true)
	}
	formatter.WriteFragment(r.output, formatter.HeadingDetail, graph.Summarize(payload))
	return nil
}
