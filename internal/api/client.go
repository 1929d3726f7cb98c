package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mgrinnell/lectern/internal/domain"
)

// Client is a typed wrapper over the content service HTTP API. Every
// call is fire-once: no retries, no backoff, no per-request timeout.
// Failures surface synchronously to the caller.
type Client struct {
	baseURL  string
	http     *http.Client
	observer Observer
}

// NewClient creates a Client for the service at cfg.BaseURL.
func NewClient(cfg Config, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// ── wire types ───────────────────────────────────────────────────────────────

// StatusUpdateRequest is the body of PUT /api/v1/packages/{id}/status.
type StatusUpdateRequest struct {
	Status     domain.PackageStatus `json:"status"`
	ReviewerID string               `json:"reviewer_id"`
	Notes      string               `json:"notes"`
}

// StatusUpdateResponse is the service's answer to a status update. The
// embedded package is authoritative; callers overwrite local state from
// it rather than assuming the requested status took effect.
type StatusUpdateResponse struct {
	Message   string                 `json:"message"`
	PackageID string                 `json:"package_id"`
	OldStatus domain.PackageStatus   `json:"old_status"`
	NewStatus domain.PackageStatus   `json:"new_status"`
	UpdatedAt time.Time              `json:"updated_at"`
	Package   *domain.ContentPackage `json:"package,omitempty"`
}

// ListFilter narrows GET /api/v1/content results.
type ListFilter struct {
	Subject string
	Unit    string
	Status  domain.PackageStatus
	Limit   int
}

// Health is the service health report.
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// StorageStats summarizes service-side blob storage usage.
type StorageStats struct {
	TotalPackages int   `json:"total_packages"`
	AudioFiles    int   `json:"audio_files"`
	TotalBytes    int64 `json:"total_bytes"`
}

type listPackagesResponse struct {
	Packages []domain.ContentPackage `json:"packages"`
	Total    int                     `json:"total"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

type revisionHistoryResponse struct {
	PackageID string                 `json:"package_id"`
	Revisions []domain.RevisionEntry `json:"revisions"`
}

type reviewQueueResponse struct {
	Packages []domain.ContentPackage `json:"packages"`
	Count    int                     `json:"count"`
}

type subjectsResponse struct {
	Subjects []string `json:"subjects"`
}

type gradesResponse struct {
	Grades []string `json:"grades"`
}

type browseResponse struct {
	Curricula []domain.Curriculum `json:"curricula"`
}

// errorBody is the structured error payload FastAPI-style services
// return on failures.
type errorBody struct {
	Detail string `json:"detail"`
}

// ── generation ───────────────────────────────────────────────────────────────

// GenerateContent requests a basic content package generation.
func (c *Client) GenerateContent(ctx context.Context, req domain.GenerationRequest) (*domain.ContentPackage, error) {
	var pkg domain.ContentPackage
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/v1/generate-content",
		body:     req,
		out:      &pkg,
		fallback: "Failed to generate content",
	})
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// GenerateContentEnhanced requests curriculum-aware or manual-mode
// generation.
func (c *Client) GenerateContentEnhanced(ctx context.Context, req domain.EnhancedGenerationRequest) (*domain.ContentPackage, error) {
	var pkg domain.ContentPackage
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/v1/generate-content-enhanced",
		body:     req,
		out:      &pkg,
		fallback: "Failed to generate content",
	})
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// ── packages ─────────────────────────────────────────────────────────────────

// GetPackage fetches one package. A 404 yields ErrNotFound so callers
// can render an empty state.
func (c *Client) GetPackage(ctx context.Context, id, subject, unit string) (*domain.ContentPackage, error) {
	var pkg domain.ContentPackage
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/v1/content/" + url.PathEscape(id),
		query:    scopeQuery(subject, unit),
		out:      &pkg,
		fallback: "Failed to fetch content package",
		notFound: "Content package not found",
	})
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// ListPackages lists packages matching the filter.
func (c *Client) ListPackages(ctx context.Context, filter ListFilter) ([]domain.ContentPackage, error) {
	q := scopeQuery(filter.Subject, filter.Unit)
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}

	var resp listPackagesResponse
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/v1/content",
		query:    q,
		out:      &resp,
		fallback: "Failed to list content packages",
	})
	if err != nil {
		return nil, err
	}
	return resp.Packages, nil
}

// DeletePackage deletes a package, reporting the service's boolean
// success flag.
func (c *Client) DeletePackage(ctx context.Context, id, subject, unit string) (bool, error) {
	var resp deleteResponse
	err := c.do(ctx, call{
		method:   http.MethodDelete,
		path:     "/api/v1/content/" + url.PathEscape(id),
		query:    scopeQuery(subject, unit),
		out:      &resp,
		fallback: "Failed to delete content package",
		notFound: "Content package not found",
	})
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

// ── revisions ────────────────────────────────────────────────────────────────

// SubmitRevisions submits per-component feedback in one call and
// returns the updated package, which is authoritative for status.
func (c *Client) SubmitRevisions(ctx context.Context, req domain.RevisionRequest) (*domain.ContentPackage, error) {
	var pkg domain.ContentPackage
	err := c.do(ctx, call{
		method:   http.MethodPut,
		path:     "/api/v1/content/" + url.PathEscape(req.PackageID) + "/revise",
		body:     req,
		out:      &pkg,
		fallback: "Failed to submit revision request",
		notFound: "Content package not found",
	})
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// GetRevisionHistory fetches a package's revision log. A 404 means the
// package has never been revised, which is a normal state: it yields an
// empty slice, never an error and never nil.
func (c *Client) GetRevisionHistory(ctx context.Context, id, subject, unit string) ([]domain.RevisionEntry, error) {
	var resp revisionHistoryResponse
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/v1/content/" + url.PathEscape(id) + "/revisions",
		query:    scopeQuery(subject, unit),
		out:      &resp,
		fallback: "Failed to fetch revision history",
	})
	if errors.Is(err, ErrNotFound) {
		return []domain.RevisionEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	if resp.Revisions == nil {
		return []domain.RevisionEntry{}, nil
	}
	return resp.Revisions, nil
}

// ── review ───────────────────────────────────────────────────────────────────

// GetReviewQueue lists packages awaiting a reviewer decision.
func (c *Client) GetReviewQueue(ctx context.Context, subject, unit string, limit int) ([]domain.ContentPackage, error) {
	q := scopeQuery(subject, unit)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp reviewQueueResponse
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/v1/packages/review-queue",
		query:    q,
		out:      &resp,
		fallback: "Failed to fetch review queue",
	})
	if err != nil {
		return nil, err
	}
	return resp.Packages, nil
}

// UpdateStatus sets a package's lifecycle status. The service accepts
// any status from any status; legality is a service concern, not a
// client invariant.
func (c *Client) UpdateStatus(ctx context.Context, id, subject, unit string, req StatusUpdateRequest) (*StatusUpdateResponse, error) {
	var resp StatusUpdateResponse
	err := c.do(ctx, call{
		method:   http.MethodPut,
		path:     "/api/v1/packages/" + url.PathEscape(id) + "/status",
		query:    scopeQuery(subject, unit),
		body:     req,
		out:      &resp,
		fallback: "Failed to update package status",
		notFound: "Package not found",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetReviewInfo fetches the review-side view of a package.
func (c *Client) GetReviewInfo(ctx context.Context, id, subject, unit string) (*domain.ReviewInfo, error) {
	var info domain.ReviewInfo
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/v1/packages/" + url.PathEscape(id) + "/review-info",
		query:    scopeQuery(subject, unit),
		out:      &info,
		fallback: "Failed to fetch review info",
		notFound: "Package not found",
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// ── curriculum ───────────────────────────────────────────────────────────────

// CurriculumStatus reports what curriculum data the service has loaded.
func (c *Client) CurriculumStatus(ctx context.Context) (*domain.CurriculumStatus, error) {
	var status domain.CurriculumStatus
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/v1/curriculum/status",
		out:      &status,
		fallback: "Failed to fetch curriculum status",
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Subjects lists subjects with loaded curriculum data.
func (c *Client) Subjects(ctx context.Context) ([]string, error) {
	var resp subjectsResponse
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/v1/curriculum/subjects",
		out:      &resp,
		fallback: "Failed to fetch subjects",
	})
	if err != nil {
		return nil, err
	}
	return resp.Subjects, nil
}

// Grades lists grades for a subject.
func (c *Client) Grades(ctx context.Context, subject string) ([]string, error) {
	q := url.Values{}
	if subject != "" {
		q.Set("subject", subject)
	}
	var resp gradesResponse
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/v1/curriculum/grades",
		query:    q,
		out:      &resp,
		fallback: "Failed to fetch grades",
	})
	if err != nil {
		return nil, err
	}
	return resp.Grades, nil
}

// BrowseCurriculum returns curriculum trees, optionally filtered by
// subject and grade.
func (c *Client) BrowseCurriculum(ctx context.Context, subject, grade string) ([]domain.Curriculum, error) {
	q := url.Values{}
	if subject != "" {
		q.Set("subject", subject)
	}
	if grade != "" {
		q.Set("grade", grade)
	}
	var resp browseResponse
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/v1/curriculum/browse",
		query:    q,
		out:      &resp,
		fallback: "Failed to browse curriculum",
	})
	if err != nil {
		return nil, err
	}
	return resp.Curricula, nil
}

// SubskillContext fetches generation pre-fill context for one subskill.
func (c *Client) SubskillContext(ctx context.Context, subskillID string) (*domain.SubskillContext, error) {
	var sc domain.SubskillContext
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/v1/curriculum/context/" + url.PathEscape(subskillID),
		out:      &sc,
		fallback: "Failed to fetch subskill context",
		notFound: "Subskill not found",
	})
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

// ── assets and operations ────────────────────────────────────────────────────

// AudioURL returns the asset URL for a package's audio file.
func (c *Client) AudioURL(packageID, filename string) string {
	return c.baseURL + "/api/v1/audio/" + url.PathEscape(packageID) + "/" + url.PathEscape(filename)
}

// FetchAudio streams an audio asset to w, following any storage
// redirect the service issues. Returns the number of bytes written.
func (c *Client) FetchAudio(ctx context.Context, packageID, filename string, w io.Writer) (int64, error) {
	start := time.Now()
	path := "/api/v1/audio/" + url.PathEscape(packageID) + "/" + url.PathEscape(filename)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(http.MethodGet, path, 0, start, false, "TRANSPORT")
		return 0, fmt.Errorf("fetching audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.observe(http.MethodGet, path, resp.StatusCode, start, false, "NOT_FOUND")
		return 0, &NotFoundError{Message: "Audio file not found"}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(http.MethodGet, path, resp.StatusCode, start, false, "HTTP")
		body, _ := io.ReadAll(resp.Body)
		return 0, &RequestError{
			StatusCode: resp.StatusCode,
			Detail:     decodeDetail(body),
			Fallback:   "Failed to fetch audio file",
		}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		c.observe(http.MethodGet, path, resp.StatusCode, start, false, "TRANSPORT")
		return n, fmt.Errorf("reading audio stream: %w", err)
	}
	c.observe(http.MethodGet, path, resp.StatusCode, start, true, "")
	return n, nil
}

// GetHealth checks service health.
func (c *Client) GetHealth(ctx context.Context) (*Health, error) {
	var h Health
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/v1/health",
		out:      &h,
		fallback: "Failed to fetch service health",
	})
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// GetStorageStats reports service-side storage usage.
func (c *Client) GetStorageStats(ctx context.Context) (*StorageStats, error) {
	var s StorageStats
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/v1/storage/stats",
		out:      &s,
		fallback: "Failed to fetch storage stats",
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ── request plumbing ─────────────────────────────────────────────────────────

// call describes one HTTP request against the service.
type call struct {
	method   string
	path     string
	query    url.Values
	body     any
	out      any
	fallback string // generic error message when the server supplies no detail
	notFound string // 404 message; empty means "Resource not found"
}

func (c *Client) do(ctx context.Context, cl call) error {
	start := time.Now()

	var reader io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(cl.method, cl.path, 0, start, false, "TRANSPORT")
		return fmt.Errorf("calling content service: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(cl.method, cl.path, resp.StatusCode, start, false, "TRANSPORT")
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		c.observe(cl.method, cl.path, resp.StatusCode, start, false, "NOT_FOUND")
		msg := cl.notFound
		if msg == "" {
			msg = "Resource not found"
		}
		return &NotFoundError{Message: msg}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(cl.method, cl.path, resp.StatusCode, start, false, "HTTP")
		return &RequestError{
			StatusCode: resp.StatusCode,
			Detail:     decodeDetail(data),
			Fallback:   cl.fallback,
		}
	}

	if cl.out != nil {
		if err := json.Unmarshal(data, cl.out); err != nil {
			c.observe(cl.method, cl.path, resp.StatusCode, start, false, "DECODE")
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	c.observe(cl.method, cl.path, resp.StatusCode, start, true, "")
	return nil
}

func (c *Client) observe(method, path string, status int, start time.Time, success bool, code string) {
	c.observer.OnCallComplete(CallEvent{
		Method:     method,
		Path:       path,
		StatusCode: status,
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    success,
		ErrorCode:  code,
	})
}

// decodeDetail extracts the structured `detail` field from an error
// body, returning "" when the body is not structured.
func decodeDetail(data []byte) string {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err != nil {
		return ""
	}
	return eb.Detail
}

// scopeQuery builds the subject/unit query parameters that scope
// package lookups to their storage partition.
func scopeQuery(subject, unit string) url.Values {
	q := url.Values{}
	if subject != "" {
		q.Set("subject", subject)
	}
	if unit != "" {
		q.Set("unit", unit)
	}
	return q
}
