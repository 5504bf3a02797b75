package handler

import (
	"github.com/ClementJar/IDV-sub000/internal/verification"
)

// RecordResponse is the client-search-result projection of a source record.
type RecordResponse struct {
	IDNumber     string `json:"idNumber"`
	IDType       string `json:"idType"`
	FullName     string `json:"fullName"`
	DateOfBirth  string `json:"dateOfBirth"`
	Gender       string `json:"gender"`
	MobileNumber string `json:"mobileNumber"`
	Province     string `json:"province"`
	District     string `json:"district"`
	PostalCode   string `json:"postalCode"`
	Source       string `json:"source"`
	IsVerified   bool   `json:"isVerified"`
}

// SourceResultResponse is one per-source trace entry.
type SourceResultResponse struct {
	SourceName   string          `json:"sourceName"`
	DisplayName  string          `json:"displayName"`
	Status       string          `json:"status"`
	ResponseTime int64           `json:"responseTime"`
	IsFound      bool            `json:"isFound"`
	Result       *RecordResponse `json:"result,omitempty"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	Priority     int             `json:"priority"`
}

// MultiSourceResponse is the body of the multi-source search endpoint.
type MultiSourceResponse struct {
	Success           bool                   `json:"success"`
	IDNumber          string                 `json:"idNumber"`
	SourceResults     []SourceResultResponse `json:"sourceResults"`
	FinalResult       *RecordResponse        `json:"finalResult"`
	TotalResponseTime int64                  `json:"totalResponseTime"`
	OverallStatus     string                 `json:"overallStatus"`
}

// SummaryResponse is the body of the legacy single-path endpoint.
type SummaryResponse struct {
	Success      bool             `json:"success"`
	Status       string           `json:"status"`
	ResultCount  int              `json:"resultCount"`
	ResponseTime int64            `json:"responseTime"`
	Source       string           `json:"source"`
	Results      []RecordResponse `json:"results"`
}

// TestIDResponse is one available demo identity.
type TestIDResponse struct {
	IDNumber      string `json:"idNumber"`
	FullName      string `json:"fullName"`
	Source        string `json:"source"`
	DisplaySource string `json:"displaySource"`
}

func fromRecord(r *verification.SourceRecord) *RecordResponse {
	if r == nil {
		return nil
	}
	return &RecordResponse{
		IDNumber:     r.IDNumber,
		IDType:       string(r.IDType),
		FullName:     r.FullName,
		DateOfBirth:  r.DateOfBirth,
		Gender:       r.Gender,
		MobileNumber: r.MobileNumber,
		Province:     r.Province,
		District:     r.District,
		PostalCode:   r.PostalCode,
		Source:       r.SourceName,
		IsVerified:   r.IsVerified,
	}
}

// FromMultiSourceResult maps the service aggregate to its response body.
func FromMultiSourceResult(result *verification.MultiSourceResult) MultiSourceResponse {
	sourceResults := make([]SourceResultResponse, 0, len(result.SourceResults))
	for _, sr := range result.SourceResults {
		sourceResults = append(sourceResults, SourceResultResponse{
			SourceName:   sr.SourceName,
			DisplayName:  sr.DisplayName,
			Status:       string(sr.Status),
			ResponseTime: sr.ResponseTimeMs,
			IsFound:      sr.IsFound,
			Result:       fromRecord(sr.Record),
			ErrorMessage: sr.ErrorMessage,
			Priority:     sr.Priority,
		})
	}
	return MultiSourceResponse{
		Success:           result.Success,
		IDNumber:          result.IDNumber,
		SourceResults:     sourceResults,
		FinalResult:       fromRecord(result.FinalResult),
		TotalResponseTime: result.TotalResponseTimeMs,
		OverallStatus:     string(result.OverallStatus),
	}
}

// FromSummary maps the legacy search summary to its response body.
func FromSummary(summary *verification.VerificationSummary) SummaryResponse {
	results := make([]RecordResponse, 0, len(summary.Matches))
	for i := range summary.Matches {
		results = append(results, *fromRecord(&summary.Matches[i]))
	}
	return SummaryResponse{
		Success:      summary.Success,
		Status:       string(summary.Status),
		ResultCount:  summary.ResultCount,
		ResponseTime: summary.ResponseTimeMs,
		Source:       summary.Source,
		Results:      results,
	}
}

// FromTestIDs maps the available-test-ids listing to its response body.
func FromTestIDs(ids []verification.TestID) []TestIDResponse {
	out := make([]TestIDResponse, 0, len(ids))
	for _, id := range ids {
		out = append(out, TestIDResponse{
			IDNumber:      id.IDNumber,
			FullName:      id.FullName,
			Source:        id.Source,
			DisplaySource: id.DisplaySource,
		})
	}
	return out
}
