package graph

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkmuru/copilot-trans/internal/shared"
	"golang.org/x/time/rate"
)

const (
	// maxAttempts bounds the total number of tries for one logical request,
	// including the first.
	maxAttempts = 5

	// maxBackoff caps exponential backoff between throttled attempts.
	maxBackoff = 32 * time.Second

	// requestsPerSecond is the client-side politeness cap on outgoing calls.
	requestsPerSecond = 5
)

// Response is a raw API response. Body is best-effort: read failures during
// error handling are swallowed and leave it empty.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// StatusError is returned for any non-success status that was not retried to
// success, carrying whatever the server sent back.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("graph request failed: %s", e.Status)
	}
	return fmt.Sprintf("graph request failed: %s: %s", e.Status, e.Body)
}

// Unwrap maps authentication failures onto [shared.ErrAuthFailed] so the
// poll loop can detect them with errors.Is and refresh the credential.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return shared.ErrAuthFailed
	}
	return shared.ErrAPIRequest
}

// Client issues authenticated GET requests to the Graph API with retry on
// throttling.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger

	// sleep is overridable so tests can observe backoff without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a Graph client rooted at baseURL. A nil httpClient falls
// back to [http.DefaultClient].
func NewClient(baseURL string, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:     logger,
		sleep:      sleepContext,
	}
}

// ListTranscripts fetches the transcript list for one online meeting.
func (c *Client) ListTranscripts(ctx context.Context, meetingID, token string) (*Response, error) {
	path := fmt.Sprintf("/me/onlineMeetings/%s/transcripts", url.PathEscape(meetingID))
	return c.Get(ctx, path, token)
}

// GetTranscript fetches the detail record for one transcript fragment.
func (c *Client) GetTranscript(ctx context.Context, meetingID, transcriptID, token string) (*Response, error) {
	path := fmt.Sprintf("/me/onlineMeetings/%s/transcripts/%s", url.PathEscape(meetingID), url.PathEscape(transcriptID))
	return c.Get(ctx, path, token)
}

// Get performs an authenticated GET against path, retrying throttled
// responses (429, 503) up to maxAttempts total tries. The wait between tries
// honors the server's Retry-After header when present, otherwise exponential
// backoff capped at maxBackoff. Any other non-success status, or throttling
// past the attempt budget, returns a [*StatusError].
func (c *Client) Get(ctx context.Context, path, token string) (*Response, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.do(ctx, path, token)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		if !isThrottled(resp.StatusCode) {
			return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(resp.Body)}
		}

		if attempt == maxAttempts {
			return nil, fmt.Errorf("%w after %d attempts: %w",
				shared.ErrRetriesExhausted, maxAttempts,
				&StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(resp.Body)})
		}

		delay := retryDelay(resp, attempt)
		c.logger.Warn("throttled, retrying",
			"status", resp.StatusCode,
			"attempt", attempt,
			"delay", delay,
		)

		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	// Unreachable: every path through the loop returns.
	return nil, shared.ErrRetriesExhausted
}

// do performs a single request and drains the body best-effort.
func (c *Client) do(ctx context.Context, path, token string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	// A body that cannot be read is treated as absent, not as a failure.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		body = nil
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func isThrottled(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode == http.StatusServiceUnavailable
}

// retryDelay computes the wait before the next try. attempt is 1-based, so
// the backoff ladder runs 1s, 2s, 4s, 8s, capped at maxBackoff.
func retryDelay(resp *Response, attempt int) time.Duration {
	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if seconds, err := strconv.Atoi(ra); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}

	delay := time.Second << uint(attempt-1)
	if delay > maxBackoff {
		delay = maxBackoff
	}
	return delay
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
