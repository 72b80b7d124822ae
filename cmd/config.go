package main

import (
	"context"

	"github.com/pkmuru/copilot-trans/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the embedded example config to the --config path.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlain("✓ Wrote %s\n", path)
	r.writePlain("Fill in the credentials section or export TENANT_ID, CLIENT_ID, CLIENT_SECRET, and MEETING_ID.\n")
	return nil
}

// ConfigShow prints the resolved configuration. The client secret is
// redacted; everything else is shown as the watcher would use it.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	config, err := shared.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	redacted := *config
	if redacted.Credentials.ClientSecret != "" {
		redacted.Credentials.ClientSecret = "********"
	}

	return r.writeJSON(map[string]any{
		"credentials": map[string]string{
			"tenant_id":     redacted.Credentials.TenantID,
			"client_id":     redacted.Credentials.ClientID,
			"client_secret": redacted.Credentials.ClientSecret,
			"token_url":     redacted.Credentials.TokenURL,
		},
		"graph": map[string]string{
			"meeting_id": redacted.Graph.MeetingID,
			"base_url":   redacted.Graph.BaseURL,
		},
		"poll": map[string]any{
			"interval_ms": redacted.Poll.IntervalMS,
			"verbose":     redacted.Poll.Verbose,
		},
	}, true)
}
