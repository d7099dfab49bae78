package applications_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobportal-backend/internal/bootstrap"
	"jobportal-backend/internal/shared/auth"
	"jobportal-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		CORSAllowOrigin: []string{"http://localhost:5173"},
	})
	if err != nil {
		t.Fatalf("bootstrap.Build: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func doJSON(t *testing.T, app *bootstrap.App, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func decodeMap(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, resp.Body.String())
	}
	return out
}

func decodeList(t *testing.T, resp *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, resp.Body.String())
	}
	return out
}

func createJob(t *testing.T, app *bootstrap.App, payload map[string]any) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/jobs", payload, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating job, got %d (body: %s)", resp.Code, resp.Body.String())
	}
	id, _ := decodeMap(t, resp)["id"].(string)
	if id == "" {
		t.Fatalf("missing job id in response")
	}
	return id
}

func sessionCookie(t *testing.T, app *bootstrap.App, email string) *http.Cookie {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/jwt", map[string]any{"email": email}, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 issuing token, got %d (body: %s)", resp.Code, resp.Body.String())
	}
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == auth.SessionCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func TestSubmitBumpsApplicationCount(t *testing.T) {
	app := newTestApp(t)
	jobID := createJob(t, app, map[string]any{
		"hr_email": "hr@acme.example", "title": "Backend", "company": "Acme",
	})

	for _, email := range []string{"a@example.com", "b@example.com"} {
		resp := doJSON(t, app, http.MethodPost, "/job-applications", map[string]any{
			"job_id":          jobID,
			"applicant_email": email,
		}, nil)
		if resp.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d (body: %s)", resp.Code, resp.Body.String())
		}
		created := decodeMap(t, resp)
		if created["status"] != "pending" {
			t.Fatalf("expected default status pending, got %v", created["status"])
		}
	}

	resp := doJSON(t, app, http.MethodGet, "/jobs/"+jobID, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if job := decodeMap(t, resp); job["applicationCount"] != float64(2) {
		t.Fatalf("expected applicationCount 2, got %v", job["applicationCount"])
	}
}

func TestSubmitRejectsMissingJob(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/job-applications", map[string]any{
		"job_id":          "no-such-job",
		"applicant_email": "a@example.com",
	}, nil)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d (body: %s)", resp.Code, resp.Body.String())
	}
	body := decodeMap(t, resp)
	errObj, _ := body["error"].(map[string]any)
	if errObj == nil || errObj["code"] != "validation_error" {
		t.Fatalf("expected validation_error code, got %v", body)
	}
}

func TestSubmitValidation(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/job-applications", map[string]any{
		"job_id": "job-1",
	}, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (body: %s)", resp.Code, resp.Body.String())
	}
}

func TestListForApplicantRequiresSession(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/job-application", nil, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestListForApplicantEnrichesFromJob(t *testing.T) {
	app := newTestApp(t)
	jobID := createJob(t, app, map[string]any{
		"hr_email": "hr@acme.example", "title": "Backend", "company": "Acme",
		"location": "Austin, TX",
	})

	resp := doJSON(t, app, http.MethodPost, "/job-applications", map[string]any{
		"job_id":          jobID,
		"applicant_email": "a@example.com",
		"cover_letter":    "hello",
	}, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	cookie := sessionCookie(t, app, "a@example.com")

	resp = doJSON(t, app, http.MethodGet, "/job-application", nil, cookie)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", resp.Code, resp.Body.String())
	}
	apps := decodeList(t, resp)
	if len(apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(apps))
	}
	got := apps[0]
	if got["title"] != "Backend" || got["company"] != "Acme" || got["location"] != "Austin, TX" {
		t.Fatalf("expected job enrichment, got %v", got)
	}
	if got["cover_letter"] != "hello" {
		t.Fatalf("expected extra field preserved, got %v", got)
	}

	// Explicit email matching the claim is allowed.
	resp = doJSON(t, app, http.MethodGet, "/job-application?email=a@example.com", nil, cookie)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for matching email, got %d", resp.Code)
	}
}

func TestListForApplicantRejectsMismatchedEmail(t *testing.T) {
	app := newTestApp(t)
	cookie := sessionCookie(t, app, "a@example.com")

	resp := doJSON(t, app, http.MethodGet, "/job-application?email=b@example.com", nil, cookie)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (body: %s)", resp.Code, resp.Body.String())
	}
	body := decodeMap(t, resp)
	errObj, _ := body["error"].(map[string]any)
	if errObj == nil || errObj["code"] != "forbidden" {
		t.Fatalf("expected forbidden code, got %v", body)
	}
}

func TestListForJob(t *testing.T) {
	app := newTestApp(t)
	jobID := createJob(t, app, map[string]any{
		"hr_email": "hr@acme.example", "title": "Backend", "company": "Acme",
	})
	otherID := createJob(t, app, map[string]any{
		"hr_email": "hr@acme.example", "title": "Frontend", "company": "Acme",
	})

	for _, target := range []string{jobID, jobID, otherID} {
		resp := doJSON(t, app, http.MethodPost, "/job-applications", map[string]any{
			"job_id":          target,
			"applicant_email": "a@example.com",
		}, nil)
		if resp.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.Code)
		}
	}

	resp := doJSON(t, app, http.MethodGet, "/job-applications/jobs/"+jobID, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	apps := decodeList(t, resp)
	if len(apps) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(apps))
	}
	for _, got := range apps {
		if got["job_id"] != jobID {
			t.Fatalf("unexpected application in result: %v", got)
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	app := newTestApp(t)
	jobID := createJob(t, app, map[string]any{
		"hr_email": "hr@acme.example", "title": "Backend", "company": "Acme",
	})

	resp := doJSON(t, app, http.MethodPost, "/job-applications", map[string]any{
		"job_id":          jobID,
		"applicant_email": "a@example.com",
	}, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	appID, _ := decodeMap(t, resp)["id"].(string)

	resp = doJSON(t, app, http.MethodPatch, "/job-applications/"+appID, map[string]any{
		"status": "accepted",
	}, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", resp.Code, resp.Body.String())
	}
	result := decodeMap(t, resp)
	if result["matchedCount"] != float64(1) || result["modifiedCount"] != float64(1) {
		t.Fatalf("unexpected update result: %v", result)
	}

	// Repeating the same status matches without modifying.
	resp = doJSON(t, app, http.MethodPatch, "/job-applications/"+appID, map[string]any{
		"status": "accepted",
	}, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", resp.Code, resp.Body.String())
	}
	result = decodeMap(t, resp)
	if result["matchedCount"] != float64(1) || result["modifiedCount"] != float64(0) {
		t.Fatalf("expected matched=1 modified=0, got %v", result)
	}

	apps := decodeList(t, doJSON(t, app, http.MethodGet, "/job-applications/jobs/"+jobID, nil, nil))
	if len(apps) != 1 || apps[0]["status"] != "accepted" {
		t.Fatalf("expected accepted status, got %v", apps)
	}
}

func TestUpdateStatusUnknownID(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPatch, "/job-applications/no-such-id", map[string]any{
		"status": "accepted",
	}, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (body: %s)", resp.Code, resp.Body.String())
	}
}

func TestUpdateStatusRequiresStatus(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPatch, "/job-applications/some-id", map[string]any{}, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (body: %s)", resp.Code, resp.Body.String())
	}
}
