package graph

import (
	"fmt"

	"github.com/pkmuru/copilot-trans/internal/models"
)

// The transcripts feed has no canonical schema: the same logical field shows
// up under different keys depending on which upstream variant served the
// response. Each accessor below walks an ordered fallback chain and reports
// absence explicitly instead of conflating it with an empty value. The same
// chains apply to list items and detail payloads.

// ResolveID resolves the fragment identifier: id, transcriptId, metadata.id.
func ResolveID(p models.Payload) (string, bool) {
	if v, ok := stringAt(p, "id"); ok {
		return v, true
	}
	if v, ok := stringAt(p, "transcriptId"); ok {
		return v, true
	}
	return nestedString(p, "metadata", "id")
}

// ResolveCreated resolves the creation timestamp: createdDateTime,
// startDateTime, timestamp, metadata.createdDateTime.
func ResolveCreated(p models.Payload) (string, bool) {
	for _, key := range []string{"createdDateTime", "startDateTime", "timestamp"} {
		if v, ok := stringAt(p, key); ok {
			return v, true
		}
	}
	return nestedString(p, "metadata", "createdDateTime")
}

// ResolveLanguage resolves the language: language, locale, metadata.language.
func ResolveLanguage(p models.Payload) (string, bool) {
	if v, ok := stringAt(p, "language"); ok {
		return v, true
	}
	if v, ok := stringAt(p, "locale"); ok {
		return v, true
	}
	return nestedString(p, "metadata", "language")
}

// ResolveSpeaker resolves the speaker: speakerId, speaker.id, participantId.
func ResolveSpeaker(p models.Payload) (string, bool) {
	if v, ok := stringAt(p, "speakerId"); ok {
		return v, true
	}
	if v, ok := nestedString(p, "speaker", "id"); ok {
		return v, true
	}
	return stringAt(p, "participantId")
}

// ResolveText resolves the transcript text: text, content, combinedText,
// then the first alternatives entry's text field.
func ResolveText(p models.Payload) (string, bool) {
	for _, key := range []string{"text", "content", "combinedText"} {
		if v, ok := stringAt(p, key); ok {
			return v, true
		}
	}

	alternatives, ok := p["alternatives"].([]any)
	if !ok || len(alternatives) == 0 {
		return "", false
	}
	first, ok := alternatives[0].(map[string]any)
	if !ok {
		return "", false
	}
	return stringAt(first, "text")
}

// Summarize resolves every display field of a payload into a [models.Summary].
func Summarize(p models.Payload) models.Summary {
	var s models.Summary
	if v, ok := ResolveID(p); ok {
		s.ID = &v
	}
	if v, ok := ResolveCreated(p); ok {
		s.Created = &v
	}
	if v, ok := ResolveLanguage(p); ok {
		s.Lang = &v
	}
	if v, ok := ResolveSpeaker(p); ok {
		s.Speaker = &v
	}
	if v, ok := ResolveText(p); ok {
		s.Text = &v
	}
	return s
}

// stringAt returns the value under key rendered as a string. Scalars other
// than strings are formatted; objects, arrays, nulls, and empty strings do
// not resolve.
func stringAt(p map[string]any, key string) (string, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return "", false
	}

	switch t := v.(type) {
	case string:
		if t == "" {
			return "", false
		}
		return t, true
	case float64, bool:
		return fmt.Sprint(t), true
	}
	return "", false
}

func nestedString(p map[string]any, key, sub string) (string, bool) {
	nested, ok := p[key].(map[string]any)
	if !ok {
		return "", false
	}
	return stringAt(nested, sub)
}
