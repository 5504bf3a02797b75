package verification

import "time"

// IDType enumerates the identity document kinds known to the mock sources.
type IDType string

const (
	IDTypeNationalIdentity IDType = "NationalIdentity"
	IDTypePassport         IDType = "Passport"
	IDTypeDrivingLicense   IDType = "DrivingLicense"
)

// AttemptStatus is the terminal outcome persisted for one verification call.
type AttemptStatus string

const (
	AttemptFound    AttemptStatus = "Found"
	AttemptNotFound AttemptStatus = "NotFound"
	AttemptMultiple AttemptStatus = "Multiple"
	AttemptError    AttemptStatus = "Error"
)

// SearchStatus is the per-source state within one multi-source trace.
type SearchStatus string

const (
	SearchWaiting  SearchStatus = "Waiting"
	SearchChecking SearchStatus = "Checking"
	SearchFound    SearchStatus = "Found"
	SearchNotFound SearchStatus = "NotFound"
	SearchError    SearchStatus = "Error"
	SearchSkipped  SearchStatus = "Skipped"
)

// SourceRecord is one identity record as known by one external source.
// Records are created at data-load time and immutable thereafter; the
// verification service only ever reads them.
type SourceRecord struct {
	ID           string
	IDType       IDType
	IDNumber     string
	FullName     string
	DateOfBirth  string
	Gender       string
	MobileNumber string
	Province     string
	District     string
	PostalCode   string
	SourceName   string
	IsVerified   bool
	CreatedAt    time.Time
}

// SourceDescriptor is a configured search target. Lower priority values are
// probed first; priorities are distinct by construction.
type SourceDescriptor struct {
	Name        string
	DisplayName string
	Priority    int
}

// VerificationAttempt is the append-only audit row summarising one search
// call's terminal outcome. Exactly one is written per call.
type VerificationAttempt struct {
	ID             string
	UserID         string
	IDNumber       string
	SearchedAt     time.Time
	Status         AttemptStatus
	ResultCount    int
	ResponseTimeMs int64
	SourceSystem   string
}

// SourceSearchResult is one trace entry. Skipped entries carry no elapsed
// time; exactly one entry is Found when a match occurred and every entry
// after it is Skipped.
type SourceSearchResult struct {
	SourceName     string
	DisplayName    string
	Priority       int
	Status         SearchStatus
	ResponseTimeMs int64
	IsFound        bool
	Record         *SourceRecord
	ErrorMessage   string
}

// MultiSourceResult is the aggregate returned by the prioritized search.
type MultiSourceResult struct {
	Success             bool
	IDNumber            string
	SourceResults       []SourceSearchResult
	FinalResult         *SourceRecord
	TotalResponseTimeMs int64
	OverallStatus       AttemptStatus
}

// VerificationSummary is the result of the legacy single-path search, which
// queries all sources at once with contains semantics.
type VerificationSummary struct {
	Success        bool
	Status         AttemptStatus
	ResultCount    int
	ResponseTimeMs int64
	Source         string
	Matches        []SourceRecord
}

// TestID surfaces a seeded identity not yet claimed by a registered client,
// for demo and testing flows.
type TestID struct {
	IDNumber      string
	FullName      string
	Source        string
	DisplaySource string
}
