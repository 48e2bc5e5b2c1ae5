package dashboard

import "strings"

// QueryState holds the committed city and the in-progress edit.
// It performs no I/O; the Dashboard decides what a commit triggers.
type QueryState struct {
	committed string
	draft     string
}

// NewQueryState returns a QueryState committed to initialCity.
func NewQueryState(initialCity string) *QueryState {
	return &QueryState{committed: initialCity}
}

// Committed returns the city the display region is bound to.
func (q *QueryState) Committed() string { return q.committed }

// Draft returns the raw text of the current edit.
func (q *QueryState) Draft() string { return q.draft }

// UpdateDraft replaces the draft verbatim.
func (q *QueryState) UpdateDraft(text string) {
	q.draft = text
}

// Submit promotes the trimmed draft to the committed city.
// A blank draft is ignored. submitted reports whether the draft was accepted
// (and cleared); changed reports whether the committed city is now different.
func (q *QueryState) Submit() (submitted, changed bool) {
	city := strings.TrimSpace(q.draft)
	if city == "" {
		return false, false
	}
	changed = city != q.committed
	q.committed = city
	q.draft = ""
	return true, changed
}
