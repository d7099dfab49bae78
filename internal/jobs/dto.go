package jobs

import (
	"fmt"
	"strings"
)

// Known payload keys; everything else is preserved in the extra bag so
// clients keep the pass-through behavior of a document store.
const (
	fieldHREmail          = "hr_email"
	fieldTitle            = "title"
	fieldCompany          = "company"
	fieldCompanyLogo      = "company_logo"
	fieldLocation         = "location"
	fieldSalaryRange      = "salaryRange"
	fieldApplicationCount = "applicationCount"
)

// ParsePayload validates a submitted job document and splits known fields
// from the extra bag.
func ParsePayload(raw map[string]any) (Job, error) {
	var job Job
	extra := make(map[string]any)

	for key, val := range raw {
		switch key {
		case fieldHREmail:
			job.HREmail = stringField(val)
		case fieldTitle:
			job.Title = stringField(val)
		case fieldCompany:
			job.Company = stringField(val)
		case fieldCompanyLogo:
			job.CompanyLogo = stringField(val)
		case fieldLocation:
			job.Location = stringField(val)
		case fieldSalaryRange:
			min, max, err := parseSalaryRange(val)
			if err != nil {
				return Job{}, err
			}
			job.SalaryMin = min
			job.SalaryMax = max
		case fieldApplicationCount, "id", "_id":
			// Server-owned fields; ignore client-supplied values.
		default:
			extra[key] = val
		}
	}

	if job.HREmail == "" {
		return Job{}, fmt.Errorf("%w: hr_email is required", ErrInvalidInput)
	}
	if job.Title == "" {
		return Job{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if job.Company == "" {
		return Job{}, fmt.Errorf("%w: company is required", ErrInvalidInput)
	}
	if job.SalaryMin > job.SalaryMax && job.SalaryMax != 0 {
		return Job{}, fmt.Errorf("%w: salaryRange min exceeds max", ErrInvalidInput)
	}

	if len(extra) > 0 {
		job.Extra = extra
	}
	return job, nil
}

// ToResponse flattens a job back into document form.
func ToResponse(job Job) map[string]any {
	out := make(map[string]any, len(job.Extra)+9)
	for key, val := range job.Extra {
		out[key] = val
	}
	out["id"] = job.ID
	out[fieldHREmail] = job.HREmail
	out[fieldTitle] = job.Title
	out[fieldCompany] = job.Company
	if job.CompanyLogo != "" {
		out[fieldCompanyLogo] = job.CompanyLogo
	}
	if job.Location != "" {
		out[fieldLocation] = job.Location
	}
	if job.SalaryMin != 0 || job.SalaryMax != 0 {
		out[fieldSalaryRange] = map[string]any{"min": job.SalaryMin, "max": job.SalaryMax}
	}
	out[fieldApplicationCount] = job.ApplicationCount
	out["created_at"] = job.CreatedAt
	return out
}

func stringField(val any) string {
	s, _ := val.(string)
	return strings.TrimSpace(s)
}

func parseSalaryRange(val any) (int64, int64, error) {
	rangeMap, ok := val.(map[string]any)
	if !ok {
		return 0, 0, fmt.Errorf("%w: salaryRange must be an object with min and max", ErrInvalidInput)
	}
	min, err := numberField(rangeMap["min"])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: salaryRange.min must be a number", ErrInvalidInput)
	}
	max, err := numberField(rangeMap["max"])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: salaryRange.max must be a number", ErrInvalidInput)
	}
	return min, max, nil
}

func numberField(val any) (int64, error) {
	switch v := val.(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("not a number: %v", val)
	}
}
