package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/storage"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/store"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

const testPassword = "secret123"

type recordingPublisher struct {
	mu     sync.Mutex
	events []types.Event
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, event types.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) eventTypes() []types.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]types.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (d *memoryDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = true
}

func (d *memoryDenylist) IsRevoked(ctx context.Context, tokenID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.revoked[tokenID]
}

type fakeUploader struct{}

func (fakeUploader) Upload(ctx context.Context, file storage.File) (storage.Object, error) {
	return storage.Object{Key: "careerconnect/" + file.Name, URL: "https://cdn.test/" + file.Name}, nil
}

func (fakeUploader) Remove(ctx context.Context, key string) error {
	return nil
}

type apiHarness struct {
	t       *testing.T
	handler http.Handler
	events  *recordingPublisher
}

func newHarness(t *testing.T, opts ...func(*Dependencies)) *apiHarness {
	t.Helper()
	mem := store.NewMemory()
	events := &recordingPublisher{}
	deps := Dependencies{
		Repos: Repositories{
			Users:        mem.Users(),
			Companies:    mem.Companies(),
			Jobs:         mem.Jobs(),
			Applications: mem.Applications(),
		},
		Events:         events,
		Denylist:       &memoryDenylist{revoked: map[string]bool{}},
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		AllowedOrigins: []string{"http://localhost:5173"},
		JobListTimeout: time.Second,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	return &apiHarness{t: t, handler: NewRouter(deps), events: events}
}

func (h *apiHarness) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func (h *apiHarness) request(method, path, token string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, apiPrefix+path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return h.serve(req, token)
}

func (h *apiHarness) form(method, path, token string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, apiPrefix+path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.serve(req, token)
}

func (h *apiHarness) multipart(method, path, token string, fields map[string]string, fileName string, data []byte) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(h.t, mw.WriteField(k, v))
	}
	if fileName != "" {
		part, err := mw.CreateFormFile("file", fileName)
		require.NoError(h.t, err)
		_, err = part.Write(data)
		require.NoError(h.t, err)
	}
	require.NoError(h.t, mw.Close())

	req := httptest.NewRequest(method, apiPrefix+path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return h.serve(req, token)
}

// signup registers and logs in a user, returning the session token.
func (h *apiHarness) signup(email string, role types.Role) string {
	h.t.Helper()
	rec := h.form(http.MethodPost, "/users/register", "", url.Values{
		"fullname":    {"Test " + string(role)},
		"email":       {email},
		"phoneNumber": {"9999999999"},
		"password":    {testPassword},
		"role":        {string(role)},
	})
	require.Equal(h.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = h.request(http.MethodPost, "/users/login", "", map[string]string{
		"email": email, "password": testPassword, "role": string(role),
	})
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[struct {
		Token string `json:"token"`
	}](h.t, rec).Token
}

func (h *apiHarness) registerCompany(token, name string) types.Company {
	h.t.Helper()
	rec := h.request(http.MethodPost, "/companies/register", token, map[string]string{"companyName": name})
	require.Equal(h.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[companyBody](h.t, rec).Company
}

func (h *apiHarness) postJob(token string, body map[string]any) types.Job {
	h.t.Helper()
	rec := h.request(http.MethodPost, "/jobs/post", token, body)
	require.Equal(h.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[jobBody](h.t, rec).Job
}

func newJob(companyID types.ID, title, description string) map[string]any {
	return map[string]any{
		"title":        title,
		"description":  description,
		"requirements": "Go, SQL ,  Docker",
		"salary":       12,
		"salaryType":   "lpa",
		"location":     "Pune",
		"jobType":      "Full-time",
		"experience":   "2",
		"position":     3,
		"companyId":    companyID,
	}
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type userBody struct {
	envelope
	User types.User `json:"user"`
}

type companyBody struct {
	envelope
	Company   types.Company   `json:"company"`
	Companies []types.Company `json:"companies"`
}

type jobBody struct {
	envelope
	Job  types.Job   `json:"job"`
	Jobs []types.Job `json:"jobs"`
}

type applicationBody struct {
	envelope
	Application types.Application `json:"application"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
