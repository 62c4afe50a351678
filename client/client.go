// Package client is a Go SDK for the CareerConnect REST API. A Client keeps
// the session cookie issued at login in its cookie jar, so every later call
// is authenticated the same way the browser app is.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

const (
	apiPrefix      = "/api/v1"
	defaultTimeout = 15 * time.Second
)

var (
	// ErrServerUnreachable is returned when no HTTP response was received.
	ErrServerUnreachable = errors.New("server unreachable")
	// ErrMissingCredentials is returned by Login before any request is sent.
	ErrMissingCredentials = errors.New("email, password and role are required")
)

// APIError is a failure response returned by the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client. Its Jar is kept when set.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: u.String(),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.http.Jar = jar
	}
	return c, nil
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type userEnvelope struct {
	envelope
	User types.User `json:"user"`
}

type companyEnvelope struct {
	envelope
	Company   types.Company   `json:"company"`
	Companies []types.Company `json:"companies"`
}

type jobEnvelope struct {
	envelope
	Job       types.Job   `json:"job"`
	Jobs      []types.Job `json:"jobs"`
	SavedJobs []types.Job `json:"savedJobs"`
}

type applicationEnvelope struct {
	envelope
	Application types.Application `json:"application"`
}

type applicationListEnvelope struct {
	envelope
	Applications []types.Application `json:"application"`
}

type toggleEnvelope struct {
	envelope
	Saved     bool       `json:"saved"`
	SavedJobs []types.ID `json:"savedJobs"`
}

// Registration is the sign-up form. Photo is optional.
type Registration struct {
	Fullname    string
	Email       string
	PhoneNumber string
	Password    string
	Role        types.Role
	Photo       *File
}

// ProfileUpdate carries the fields to change. Empty fields are left as they are.
type ProfileUpdate struct {
	Fullname    string
	Email       string
	PhoneNumber string
	Bio         string
	Skills      []string
	Resume      *File
}

type CompanyUpdate struct {
	Name        string
	Description string
	Website     string
	Location    string
	Logo        *File
}

// JobPosting is the body of a new job.
type JobPosting struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"`
	Salary       float64  `json:"salary"`
	SalaryType   string   `json:"salaryType"`
	Location     string   `json:"location"`
	JobType      string   `json:"jobType"`
	Experience   string   `json:"experience"`
	Position     int      `json:"position"`
	CompanyID    types.ID `json:"companyId"`
}

type JobUpdate struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements,omitempty"`
	Salary       float64  `json:"salary"`
	SalaryType   string   `json:"salaryType,omitempty"`
	Location     string   `json:"location"`
	JobType      string   `json:"jobType,omitempty"`
	Experience   string   `json:"experience,omitempty"`
	Position     int      `json:"position,omitempty"`
	CompanyID    types.ID `json:"companyId,omitempty"`
}

// File is an upload attached to a multipart form.
type File struct {
	Name string
	Data []byte
}

func (c *Client) Register(ctx context.Context, reg Registration) (types.User, error) {
	fields := map[string]string{
		"fullname":    reg.Fullname,
		"email":       reg.Email,
		"phoneNumber": reg.PhoneNumber,
		"password":    reg.Password,
		"role":        string(reg.Role),
	}
	var out userEnvelope
	if err := c.doMultipart(ctx, http.MethodPost, "/users/register", fields, reg.Photo, &out); err != nil {
		return types.User{}, err
	}
	return out.User, nil
}

// Login validates the credentials locally, then starts a session.
func (c *Client) Login(ctx context.Context, email, password string, role types.Role) (types.User, error) {
	if strings.TrimSpace(email) == "" || password == "" || role == "" {
		return types.User{}, ErrMissingCredentials
	}
	body := map[string]string{"email": email, "password": password, "role": string(role)}
	var out userEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/users/login", body, &out); err != nil {
		return types.User{}, err
	}
	return out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/users/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (types.User, error) {
	var out userEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, &out); err != nil {
		return types.User{}, err
	}
	return out.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (types.User, error) {
	fields := map[string]string{
		"fullname":    update.Fullname,
		"email":       update.Email,
		"phoneNumber": update.PhoneNumber,
		"bio":         update.Bio,
		"skills":      strings.Join(update.Skills, ","),
	}
	var out userEnvelope
	if err := c.doMultipart(ctx, http.MethodPost, "/users/profile/update", fields, update.Resume, &out); err != nil {
		return types.User{}, err
	}
	return out.User, nil
}

func (c *Client) SavedJobs(ctx context.Context) ([]types.Job, error) {
	var out jobEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/users/saved-jobs", nil, &out); err != nil {
		return nil, err
	}
	return out.SavedJobs, nil
}

// ToggleSavedJob flips jobID in the caller's saved jobs and reports whether
// it is now saved.
func (c *Client) ToggleSavedJob(ctx context.Context, jobID types.ID) (bool, []types.ID, error) {
	var out toggleEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/users/toggle-saved-job/"+escape(jobID), nil, &out); err != nil {
		return false, nil, err
	}
	return out.Saved, out.SavedJobs, nil
}

func (c *Client) RegisterCompany(ctx context.Context, name string) (types.Company, error) {
	var out companyEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/companies/register", map[string]string{"companyName": name}, &out); err != nil {
		return types.Company{}, err
	}
	return out.Company, nil
}

// Companies lists the companies owned by the caller.
func (c *Client) Companies(ctx context.Context) ([]types.Company, error) {
	var out companyEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/companies/get", nil, &out); err != nil {
		return nil, err
	}
	return out.Companies, nil
}

func (c *Client) PublicCompanies(ctx context.Context) ([]types.Company, error) {
	var out companyEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/companies/getall", nil, &out); err != nil {
		return nil, err
	}
	return out.Companies, nil
}

func (c *Client) Company(ctx context.Context, id types.ID) (types.Company, error) {
	var out companyEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/companies/get/"+escape(id), nil, &out); err != nil {
		return types.Company{}, err
	}
	return out.Company, nil
}

func (c *Client) UpdateCompany(ctx context.Context, id types.ID, update CompanyUpdate) (types.Company, error) {
	fields := map[string]string{
		"name":        update.Name,
		"description": update.Description,
		"website":     update.Website,
		"location":    update.Location,
	}
	var out companyEnvelope
	if err := c.doMultipart(ctx, http.MethodPut, "/companies/update/"+escape(id), fields, update.Logo, &out); err != nil {
		return types.Company{}, err
	}
	return out.Company, nil
}

func (c *Client) DeleteCompany(ctx context.Context, id types.ID) error {
	return c.doJSON(ctx, http.MethodDelete, "/companies/delete/"+escape(id), nil, nil)
}

func (c *Client) PostJob(ctx context.Context, posting JobPosting) (types.Job, error) {
	var out jobEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/jobs/post", posting, &out); err != nil {
		return types.Job{}, err
	}
	return out.Job, nil
}

// Jobs lists public jobs, optionally filtered by keyword.
func (c *Client) Jobs(ctx context.Context, keyword string) ([]types.Job, error) {
	path := "/jobs/get"
	if keyword != "" {
		path += "?" + url.Values{"keyword": {keyword}}.Encode()
	}
	var out jobEnvelope
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

func (c *Client) Job(ctx context.Context, id types.ID) (types.Job, error) {
	var out jobEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/jobs/get/"+escape(id), nil, &out); err != nil {
		return types.Job{}, err
	}
	return out.Job, nil
}

// AdminJob fetches a job owned by the caller, with its company.
func (c *Client) AdminJob(ctx context.Context, id types.ID) (types.Job, error) {
	var out jobEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/jobs/admin/get/"+escape(id), nil, &out); err != nil {
		return types.Job{}, err
	}
	return out.Job, nil
}

func (c *Client) AdminJobs(ctx context.Context) ([]types.Job, error) {
	var out jobEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/jobs/getadminjobs", nil, &out); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

func (c *Client) UpdateJob(ctx context.Context, id types.ID, update JobUpdate) (types.Job, error) {
	var out jobEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/jobs/update/"+escape(id), update, &out); err != nil {
		return types.Job{}, err
	}
	return out.Job, nil
}

func (c *Client) DeleteJob(ctx context.Context, id types.ID) error {
	return c.doJSON(ctx, http.MethodDelete, "/jobs/delete/"+escape(id), nil, nil)
}

func (c *Client) Apply(ctx context.Context, jobID types.ID) (types.Application, error) {
	var out applicationEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/applications/apply/"+escape(jobID), nil, &out); err != nil {
		return types.Application{}, err
	}
	return out.Application, nil
}

// AppliedJobs lists the caller's applications with their jobs.
func (c *Client) AppliedJobs(ctx context.Context) ([]types.Application, error) {
	var out applicationListEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/applications/get", nil, &out); err != nil {
		return nil, err
	}
	return out.Applications, nil
}

// Applicants returns the job with its applications and applicants.
func (c *Client) Applicants(ctx context.Context, jobID types.ID) (types.Job, error) {
	var out jobEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/applications/"+escape(jobID)+"/applicants", nil, &out); err != nil {
		return types.Job{}, err
	}
	return out.Job, nil
}

func (c *Client) UpdateApplicationStatus(ctx context.Context, id types.ID, status types.ApplicationStatus) (types.Application, error) {
	var out applicationEnvelope
	body := map[string]string{"status": string(status)}
	if err := c.doJSON(ctx, http.MethodPost, "/applications/status/"+escape(id)+"/update", body, &out); err != nil {
		return types.Application{}, err
	}
	return out.Application, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, file *File, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := mw.WriteField(key, value); err != nil {
			return err
		}
	}
	if file != nil {
		part, err := mw.CreateFormFile("file", file.Name)
		if err != nil {
			return err
		}
		if _, err := part.Write(file.Data); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrServerUnreachable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerUnreachable, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var env envelope
		_ = json.Unmarshal(data, &env)
		if env.Message == "" {
			env.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func escape(id types.ID) string {
	return url.PathEscape(id.String())
}
