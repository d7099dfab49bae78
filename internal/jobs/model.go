package jobs

import "time"

// Job represents a posted position owned by a hiring identity.
type Job struct {
	ID               string
	HREmail          string
	Title            string
	Company          string
	CompanyLogo      string
	Location         string
	SalaryMin        int64
	SalaryMax        int64
	ApplicationCount int64
	Extra            map[string]any
	CreatedAt        time.Time
}

// ListFilter narrows and orders job listings.
type ListFilter struct {
	HREmail          string
	LocationSearch   string
	MinSalary        *int64
	MaxSalary        *int64
	SortBySalaryDesc bool
}
