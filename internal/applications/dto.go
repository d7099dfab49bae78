package applications

import (
	"fmt"
	"strings"
)

const (
	fieldJobID          = "job_id"
	fieldApplicantEmail = "applicant_email"
	fieldStatus         = "status"

	// StatusPending is the initial status for new applications.
	StatusPending = "pending"
)

// ParsePayload validates a submitted application document and splits known
// fields from the extra bag.
func ParsePayload(raw map[string]any) (Application, error) {
	var app Application
	extra := make(map[string]any)

	for key, val := range raw {
		switch key {
		case fieldJobID:
			app.JobID = stringField(val)
		case fieldApplicantEmail:
			app.ApplicantEmail = stringField(val)
		case fieldStatus:
			app.Status = stringField(val)
		case "id", "_id":
			// Server-owned; ignore client-supplied values.
		default:
			extra[key] = val
		}
	}

	if app.JobID == "" {
		return Application{}, fmt.Errorf("%w: job_id is required", ErrInvalidInput)
	}
	if app.ApplicantEmail == "" {
		return Application{}, fmt.Errorf("%w: applicant_email is required", ErrInvalidInput)
	}
	if app.Status == "" {
		app.Status = StatusPending
	}

	if len(extra) > 0 {
		app.Extra = extra
	}
	return app, nil
}

// ToResponse flattens an application back into document form.
func ToResponse(app Application) map[string]any {
	out := make(map[string]any, len(app.Extra)+5)
	for key, val := range app.Extra {
		out[key] = val
	}
	out["id"] = app.ID
	out[fieldJobID] = app.JobID
	out[fieldApplicantEmail] = app.ApplicantEmail
	out[fieldStatus] = app.Status
	out["created_at"] = app.CreatedAt
	return out
}

// ToEnrichedResponse flattens an enriched application; display fields copied
// from the job appear only when the job was found.
func ToEnrichedResponse(enriched Enriched) map[string]any {
	out := ToResponse(enriched.Application)
	if enriched.Title != "" {
		out["title"] = enriched.Title
	}
	if enriched.Company != "" {
		out["company"] = enriched.Company
	}
	if enriched.CompanyLogo != "" {
		out["company_logo"] = enriched.CompanyLogo
	}
	if enriched.Location != "" {
		out["location"] = enriched.Location
	}
	return out
}

func stringField(val any) string {
	s, _ := val.(string)
	return strings.TrimSpace(s)
}
