package reports

import "time"

// Dashboard is the aggregated registration and verification snapshot served
// to the operator console.
type Dashboard struct {
	TotalClients          int64            `json:"totalClients"`
	TotalSearches         int64            `json:"totalSearches"`
	SearchesByStatus      map[string]int64 `json:"searchesByStatus"`
	AverageResponseTimeMs float64          `json:"averageResponseTimeMs"`
	ClientsBySource       map[string]int64 `json:"clientsBySource"`
	GeneratedAt           time.Time        `json:"generatedAt"`
}
