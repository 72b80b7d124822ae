package graph

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/pkmuru/copilot-trans/internal/models"
	"github.com/pkmuru/copilot-trans/internal/shared"
)

// snippetLimit bounds how much of an offending body a decode error carries.
const snippetLimit = 800

// BodyKind classifies a decoded response body.
type BodyKind int

const (
	// KindEmpty marks a 202/204 response or a blank body.
	KindEmpty BodyKind = iota
	// KindRaw marks a body whose declared content type is not JSON.
	KindRaw
	// KindParsed marks a body that parsed as JSON.
	KindParsed
)

// Body is the tagged result of classifying a response body. Exactly one of
// Raw/Parsed is meaningful, per Kind.
type Body struct {
	Kind   BodyKind
	Raw    string
	Parsed any
}

// Decode classifies a response body before anything destructures it: the
// transcripts feed emits absent and non-JSON bodies as a matter of course,
// so those are results, not errors. A body whose content type claims JSON
// but does not parse is the one genuine failure.
func Decode(resp *Response) (Body, error) {
	if resp.StatusCode == http.StatusAccepted || resp.StatusCode == http.StatusNoContent {
		return Body{Kind: KindEmpty}, nil
	}

	text := string(resp.Body)
	if strings.TrimSpace(text) == "" {
		return Body{Kind: KindEmpty}, nil
	}

	if !isJSONContentType(resp.Header.Get("Content-Type")) {
		return Body{Kind: KindRaw, Raw: text}, nil
	}

	var parsed any
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return Body{}, fmt.Errorf("%w: %v: %s", shared.ErrDecodeFailed, err, snippet(text))
	}

	return Body{Kind: KindParsed, Parsed: parsed}, nil
}

// Items resolves the fragment array from a parsed body: the "value" field of
// an enveloped object, or the body itself when it is a bare array. Anything
// else yields nil. Non-object elements are dropped since they cannot carry
// an identifier.
func (b Body) Items() []models.Payload {
	if b.Kind != KindParsed {
		return nil
	}

	var raw []any
	switch v := b.Parsed.(type) {
	case map[string]any:
		raw, _ = v["value"].([]any)
	case []any:
		raw = v
	}

	var items []models.Payload
	for _, el := range raw {
		if m, ok := el.(map[string]any); ok {
			items = append(items, models.Payload(m))
		}
	}
	return items
}

// Object returns the parsed body as a payload map, or false when the body is
// not a parsed JSON object.
func (b Body) Object() (models.Payload, bool) {
	if b.Kind != KindParsed {
		return nil, false
	}
	m, ok := b.Parsed.(map[string]any)
	return models.Payload(m), ok
}

func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func snippet(text string) string {
	if len(text) > snippetLimit {
		return text[:snippetLimit]
	}
	return text
}
