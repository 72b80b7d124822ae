package poller

// Tracker deduplicates fragment identifiers for the lifetime of the process.
// It grows without bound, which is acceptable for the short runs this tool is
// built for, and it is only ever touched from the poll loop's single
// goroutine, so there is no locking.
type Tracker struct {
	seen map[string]struct{}
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]struct{})}
}

// MarkIfNew checks membership and inserts in one step, returning true only
// the first time an identifier is presented.
func (t *Tracker) MarkIfNew(id string) bool {
	if _, ok := t.seen[id]; ok {
		return false
	}
	t.seen[id] = struct{}{}
	return true
}

// Len returns the number of identifiers seen so far.
func (t *Tracker) Len() int {
	return len(t.seen)
}
