// package models defines the data model for the transcript watcher
package models

// Payload is a loosely structured record returned by the transcripts feed.
// The upstream schema is unstable, so no canonical struct exists; logical
// fields are resolved through ordered fallback chains over the raw keys.
type Payload map[string]any

// Summary holds the display fields resolved from a [Payload]. A nil pointer
// means the field had no resolvable candidate key, as opposed to being
// present but empty.
type Summary struct {
	ID      *string
	Created *string
	Lang    *string
	Speaker *string
	Text    *string
}

// HasID reports whether an identifier was resolved. Fragments without one
// cannot be deduplicated and are skipped.
func (s Summary) HasID() bool {
	return s.ID != nil
}
