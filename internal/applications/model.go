package applications

import "time"

// Application is a candidate's submission against a specific job.
type Application struct {
	ID             string
	JobID          string
	ApplicantEmail string
	Status         string
	Extra          map[string]any
	CreatedAt      time.Time
}

// Enriched carries an application plus display fields copied from the
// referenced job at read time. Never persisted.
type Enriched struct {
	Application
	Title       string
	Company     string
	CompanyLogo string
	Location    string
}

// UpdateResult reports how many records an update touched.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}
