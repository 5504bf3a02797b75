package verification

// trace is the arena of per-source entries for one multi-source search.
// Entries are indexed by source rank and move through an explicit state
// machine: Waiting -> Checking -> {Found | NotFound | Error}, with a single
// terminal pass marking the unvisited tail Skipped once a match is confirmed.
// Nothing outside the orchestrator holds a reference while the search runs.
type trace struct {
	entries []SourceSearchResult
}

func newTrace(sources []SourceDescriptor) *trace {
	entries := make([]SourceSearchResult, len(sources))
	for i, src := range sources {
		entries[i] = SourceSearchResult{
			SourceName:  src.Name,
			DisplayName: src.DisplayName,
			Priority:    src.Priority,
			Status:      SearchWaiting,
		}
	}
	return &trace{entries: entries}
}

// canTransition encodes the legal state machine edges.
func canTransition(from, to SearchStatus) bool {
	switch from {
	case SearchWaiting:
		return to == SearchChecking || to == SearchSkipped
	case SearchChecking:
		return to == SearchFound || to == SearchNotFound || to == SearchError || to == SearchSkipped
	default:
		return false
	}
}

func (t *trace) transition(i int, to SearchStatus) bool {
	if i < 0 || i >= len(t.entries) {
		return false
	}
	if !canTransition(t.entries[i].Status, to) {
		return false
	}
	t.entries[i].Status = to
	return true
}

// begin marks entry i as currently being probed.
func (t *trace) begin(i int) bool {
	return t.transition(i, SearchChecking)
}

// found records a successful probe with its matched record.
func (t *trace) found(i int, elapsedMs int64, record *SourceRecord) {
	if !t.transition(i, SearchFound) {
		return
	}
	t.entries[i].ResponseTimeMs = elapsedMs
	t.entries[i].IsFound = true
	t.entries[i].Record = record
}

// notFound records a probe that returned no record.
func (t *trace) notFound(i int, elapsedMs int64) {
	if !t.transition(i, SearchNotFound) {
		return
	}
	t.entries[i].ResponseTimeMs = elapsedMs
}

// fail records a probe that errored. The elapsed time still counts toward the
// call total; the search continues with the next source.
func (t *trace) fail(i int, elapsedMs int64, message string) {
	if !t.transition(i, SearchError) {
		return
	}
	t.entries[i].ResponseTimeMs = elapsedMs
	t.entries[i].ErrorMessage = message
}

// skipFrom marks every not-yet-terminal entry at or after index i Skipped.
// Called once, after a match short-circuits the walk.
func (t *trace) skipFrom(i int) {
	if i < 0 {
		i = 0
	}
	for j := i; j < len(t.entries); j++ {
		t.transition(j, SearchSkipped)
	}
}

// results hands the entries to the caller. The trace is discarded afterwards.
func (t *trace) results() []SourceSearchResult {
	return t.entries
}
