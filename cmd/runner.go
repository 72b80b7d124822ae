package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkmuru/copilot-trans/internal/graph"
	"github.com/pkmuru/copilot-trans/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	logger     *log.Logger
	output     io.Writer
	httpClient *http.Client
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Logger     *log.Logger
	Output     io.Writer
	HTTPClient *http.Client
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		logger:     opts.Logger,
		output:     opts.Output,
		httpClient: opts.HTTPClient,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		watchCommand, listCommand, fetchCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// resolve loads the configuration named by --config, overlays the
// environment, and validates the required values. Validation failure is the
// ConfigError path: it surfaces before any network activity.
func (r *Runner) resolve(cmd *cli.Command) (*shared.Config, error) {
	config, err := shared.LoadConfig(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (r *Runner) graphClient(config *shared.Config, logger *log.Logger) *graph.Client {
	return graph.NewClient(config.Graph.BaseURL, r.httpClient, logger)
}

func (r *Runner) credentialProvider(config *shared.Config, logger *log.Logger) *graph.CredentialProvider {
	return graph.NewCredentialProvider(
		config.Credentials.ClientID,
		config.Credentials.ClientSecret,
		config.Credentials.TokenURL,
		logger,
	)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// acquire performs a one-shot credential exchange for the single-call commands.
func (r *Runner) acquire(ctx context.Context, config *shared.Config) (graph.Credential, error) {
	provider := r.credentialProvider(config, r.logger)
	return provider.Acquire(ctx)
}
