package coursesearch

import "time"

// Backend selects the vector store used by the index.
type Backend string

// Backend constants.
const (
	BackendFlat    Backend = "flat"
	BackendChromem Backend = "chromem"
)

// SearchResult is one ranked course section.
type SearchResult struct {
	CourseCode  string
	Title       string
	Year        int
	Subject     string
	Days        []string // full weekday names
	Time        string   // "HH:MM-HH:MM" or "TBD"
	Instructors []string
	Description string
	Score       float64 // final score after boosts
	Similarity  float64 // raw cosine similarity
	Text        string  // rendering returned by the HTTP API
}

// ReloadReport summarizes one catalog reload.
type ReloadReport struct {
	Courses   int
	Documents int
	Skipped   []string
	Duration  time.Duration
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}
