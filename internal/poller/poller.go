// Package poller implements the transcript watch loop.
//
// The loop is strictly sequential: list the meeting's transcript fragments,
// fetch detail for each unseen one, print, sleep, repeat. The credential and
// the seen-set are owned by a single Poller instance and mutated only from
// within its control flow. No per-iteration error ever terminates the loop;
// only context cancellation and a failed startup acquisition do.
package poller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkmuru/copilot-trans/internal/formatter"
	"github.com/pkmuru/copilot-trans/internal/graph"
	"github.com/pkmuru/copilot-trans/internal/models"
	"github.com/pkmuru/copilot-trans/internal/shared"
)

// API is the slice of the Graph client the poller needs.
type API interface {
	ListTranscripts(ctx context.Context, meetingID, token string) (*graph.Response, error)
	GetTranscript(ctx context.Context, meetingID, transcriptID, token string) (*graph.Response, error)
}

// CredentialSource acquires bearer credentials on demand.
type CredentialSource interface {
	Acquire(ctx context.Context) (graph.Credential, error)
}

// Opts contains configuration for creating a Poller.
type Opts struct {
	API         API
	Credentials CredentialSource
	MeetingID   string
	Interval    time.Duration
	Verbose     bool
	Logger      *log.Logger
	Output      io.Writer
}

// Poller owns the watch loop state: the current credential and the seen-set.
type Poller struct {
	api         API
	credentials CredentialSource
	meetingID   string
	interval    time.Duration
	verbose     bool
	logger      *log.Logger
	output      io.Writer

	tracker    *Tracker
	credential graph.Credential

	// sleep is overridable so tests can run iterations without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Poller with the provided options.
func New(opts Opts) *Poller {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}

	return &Poller{
		api:         opts.API,
		credentials: opts.Credentials,
		meetingID:   opts.MeetingID,
		interval:    opts.Interval,
		verbose:     opts.Verbose,
		logger:      opts.Logger,
		output:      opts.Output,
		tracker:     NewTracker(),
		sleep:       sleepContext,
	}
}

// Run executes the watch loop until ctx is cancelled. The initial credential
// acquisition is the only fatal step; after it succeeds, iteration errors are
// logged and the loop continues.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.refresh(ctx); err != nil {
		return fmt.Errorf("startup credential acquisition: %w", err)
	}

	for {
		if err := p.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.handleIterationError(ctx, err)
		}

		if err := p.sleep(ctx, p.interval); err != nil {
			return err
		}
	}
}

// RunOnce performs a single poll iteration: refresh a stale credential, list
// fragments, process each unseen one. Detail errors are isolated per
// fragment; everything else propagates to the caller.
func (p *Poller) RunOnce(ctx context.Context) error {
	if p.credential.Stale() {
		p.logger.Info("credential stale, re-acquiring")
		if err := p.refresh(ctx); err != nil {
			return err
		}
	}

	resp, err := p.api.ListTranscripts(ctx, p.meetingID, p.credential.Token)
	if err != nil {
		return fmt.Errorf("list transcripts: %w", err)
	}

	body, err := graph.Decode(resp)
	if err != nil {
		return fmt.Errorf("list transcripts: %w", err)
	}

	switch body.Kind {
	case graph.KindEmpty:
		p.logger.Debug("list returned no body")
		return nil
	case graph.KindRaw:
		p.logger.Debug("list returned non-JSON body", "body", body.Raw)
		return nil
	}

	for _, item := range body.Items() {
		summary := graph.Summarize(item)
		if !summary.HasID() {
			p.logger.Debug("fragment without resolvable id, skipping")
			continue
		}

		id := *summary.ID
		if !p.tracker.MarkIfNew(id) {
			continue
		}

		formatter.WriteFragment(p.output, formatter.HeadingNew, summary)
		p.dumpPayload("list item", item)

		if err := p.fetchDetail(ctx, id); err != nil {
			p.logger.Warn("detail fetch failed", "transcript", id, "error", err)
		}
	}

	return nil
}

// fetchDetail fetches and prints the per-fragment detail record. An empty or
// non-JSON detail body is not an error; there is simply nothing to print.
func (p *Poller) fetchDetail(ctx context.Context, transcriptID string) error {
	resp, err := p.api.GetTranscript(ctx, p.meetingID, transcriptID, p.credential.Token)
	if err != nil {
		return err
	}

	body, err := graph.Decode(resp)
	if err != nil {
		return err
	}

	payload, ok := body.Object()
	if !ok {
		p.logger.Debug("detail returned no JSON object", "transcript", transcriptID)
		return nil
	}

	formatter.WriteFragment(p.output, formatter.HeadingDetail, graph.Summarize(payload))
	p.dumpPayload("detail", payload)
	return nil
}

// handleIterationError applies the loop-level policy: an authentication
// failure triggers one refresh-and-continue, anything else is logged.
func (p *Poller) handleIterationError(ctx context.Context, err error) {
	if errors.Is(err, shared.ErrAuthFailed) {
		p.logger.Warn("credential rejected, refreshing", "error", err)
		if rerr := p.refresh(ctx); rerr != nil {
			p.logger.Error("credential refresh failed", "error", rerr)
		}
		return
	}
	p.logger.Error("poll iteration failed", "error", err)
}

func (p *Poller) refresh(ctx context.Context) error {
	credential, err := p.credentials.Acquire(ctx)
	if err != nil {
		return err
	}
	p.credential = credential
	return nil
}

func (p *Poller) dumpPayload(label string, payload models.Payload) {
	if !p.verbose {
		return
	}
	formatter.WriteRawJSON(p.output, label, map[string]any(payload))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
