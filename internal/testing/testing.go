// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// ScriptedRoundTripper replays a fixed sequence of responses, one per
// request, then repeats the last one. Useful for retry sequences.
type ScriptedRoundTripper struct {
	Responses []*http.Response
	Calls     int
}

func (s *ScriptedRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	i := s.Calls
	if i >= len(s.Responses) {
		i = len(s.Responses) - 1
	}
	s.Calls++
	resp := s.Responses[i]
	// Bodies are single-use; rebuild so a replayed response stays readable.
	if b, ok := resp.Body.(*replayBody); ok {
		resp.Body = &replayBody{text: b.text, Reader: strings.NewReader(b.text)}
	}
	return resp, nil
}

// NewResponse builds an *http.Response with the given status, headers, and
// body text for use with the round trippers above.
func NewResponse(statusCode int, header http.Header, body string) *http.Response {
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Header:     header,
		Body:       &replayBody{text: body, Reader: strings.NewReader(body)},
	}
}

type replayBody struct {
	text string
	*strings.Reader
}

func (r *replayBody) Close() error { return nil }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)
