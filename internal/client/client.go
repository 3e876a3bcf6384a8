package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ngocminh-dev/tcms-api/internal/dto"
	"github.com/ngocminh-dev/tcms-api/internal/models"
	appErrors "github.com/ngocminh-dev/tcms-api/pkg/errors"
)

// Client is a typed client for the training-center API. Every call is a
// single request: no retries, no caching. Failures of any kind are
// normalized to *appErrors.Error so callers handle exactly one shape.
type Client struct {
	baseURL string
	http    *http.Client
	token   func() string
}

// Option customises the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport. Used by tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a client for the given API root. tokenFn is consulted per
// request so a login during the process lifetime is picked up immediately.
func New(baseURL string, tokenFn func() string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		token:   tokenFn,
	}
	if c.token == nil {
		c.token = func() string { return "" }
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Data       json.RawMessage    `json:"data"`
	Error      *appErrors.Error   `json:"error"`
	Pagination *models.Pagination `json:"pagination"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) (*models.Pagination, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request")
		}
		reader = bytes.NewReader(buf)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusBadGateway, "backend unreachable")
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusBadGateway, "read response")
	}

	var env envelope
	if len(payload) > 0 && json.Valid(payload) {
		_ = json.Unmarshal(payload, &env)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if env.Error != nil {
			if env.Error.Status == 0 {
				env.Error.Status = res.StatusCode
			}
			return nil, env.Error
		}
		return nil, appErrors.New(appErrors.ErrInternal.Code, res.StatusCode, fmt.Sprintf("backend returned %s", res.Status))
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusBadGateway, "decode response")
		}
	}
	return env.Pagination, nil
}

// raw performs a request whose body is not the JSON envelope, such as the
// CSV export and the certificate document.
func (c *Client) raw(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusBadGateway, "backend unreachable")
	}
	defer res.Body.Close()
	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusBadGateway, "read response")
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		var env envelope
		if json.Valid(payload) {
			_ = json.Unmarshal(payload, &env)
		}
		if env.Error != nil {
			if env.Error.Status == 0 {
				env.Error.Status = res.StatusCode
			}
			return nil, env.Error
		}
		return nil, appErrors.New(appErrors.ErrInternal.Code, res.StatusCode, fmt.Sprintf("backend returned %s", res.Status))
	}
	return payload, nil
}

// Login authenticates and returns the issued token plus identity.
func (c *Client) Login(ctx context.Context, username, password string) (*models.JwtResponse, error) {
	var out models.JwtResponse
	_, err := c.do(ctx, http.MethodPost, "/auth/login", nil, models.LoginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListStudents returns one roster page.
func (c *Client) ListStudents(ctx context.Context, filter models.StudentFilter) ([]dto.StudentDTO, *models.Pagination, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Province != "" {
		query.Set("province", filter.Province)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		query.Set("limit", strconv.Itoa(filter.PageSize))
	}
	var out []dto.StudentDTO
	pagination, err := c.do(ctx, http.MethodGet, "/students", query, nil, &out)
	if err != nil {
		return nil, nil, err
	}
	return out, pagination, nil
}

// GetStudent returns one student.
func (c *Client) GetStudent(ctx context.Context, id int64) (*dto.StudentDTO, error) {
	var out dto.StudentDTO
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/students/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateStudent registers a student.
func (c *Client) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*dto.StudentDTO, error) {
	var out dto.StudentDTO
	if _, err := c.do(ctx, http.MethodPost, "/students", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStudent modifies a student.
func (c *Client) UpdateStudent(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*dto.StudentDTO, error) {
	var out dto.StudentDTO
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/students/%d", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteStudent removes a student.
func (c *Client) DeleteStudent(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/students/%d", id), nil, nil, nil)
	return err
}

// ExportStudentsCSV downloads the roster export.
func (c *Client) ExportStudentsCSV(ctx context.Context) ([]byte, error) {
	return c.raw(ctx, "/students/export")
}

// ListCourses returns one course page.
func (c *Client) ListCourses(ctx context.Context, filter models.CourseFilter) ([]dto.CourseDTO, *models.Pagination, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Year > 0 {
		query.Set("year", strconv.Itoa(filter.Year))
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		query.Set("limit", strconv.Itoa(filter.PageSize))
	}
	var out []dto.CourseDTO
	pagination, err := c.do(ctx, http.MethodGet, "/courses", query, nil, &out)
	if err != nil {
		return nil, nil, err
	}
	return out, pagination, nil
}

// GetCourse returns one course.
func (c *Client) GetCourse(ctx context.Context, id int64) (*dto.CourseDTO, error) {
	var out dto.CourseDTO
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/courses/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCourse opens a course.
func (c *Client) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*dto.CourseDTO, error) {
	var out dto.CourseDTO
	if _, err := c.do(ctx, http.MethodPost, "/courses", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCourse modifies a course.
func (c *Client) UpdateCourse(ctx context.Context, id int64, req dto.UpdateCourseRequest) (*dto.CourseDTO, error) {
	var out dto.CourseDTO
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/courses/%d", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCourse removes a course.
func (c *Client) DeleteCourse(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/courses/%d", id), nil, nil, nil)
	return err
}

// ListEnrollments returns enrollments filtered by student, course or status.
func (c *Client) ListEnrollments(ctx context.Context, filter models.EnrollmentFilter) ([]dto.EnrollmentDTO, *models.Pagination, error) {
	query := url.Values{}
	if filter.StudentID > 0 {
		query.Set("studentId", strconv.FormatInt(filter.StudentID, 10))
	}
	if filter.CourseID > 0 {
		query.Set("courseId", strconv.FormatInt(filter.CourseID, 10))
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		query.Set("limit", strconv.Itoa(filter.PageSize))
	}
	var out []dto.EnrollmentDTO
	pagination, err := c.do(ctx, http.MethodGet, "/enrollments", query, nil, &out)
	if err != nil {
		return nil, nil, err
	}
	return out, pagination, nil
}

// Enroll registers a student on a course.
func (c *Client) Enroll(ctx context.Context, studentID, courseID int64) (*dto.EnrollmentDTO, error) {
	var out dto.EnrollmentDTO
	req := dto.EnrollRequest{StudentID: studentID, CourseID: courseID}
	if _, err := c.do(ctx, http.MethodPost, "/enrollments", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History returns a student's training history.
func (c *Client) History(ctx context.Context, studentID int64) ([]dto.EnrollmentHistoryDTO, error) {
	var out []dto.EnrollmentHistoryDTO
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/students/%d/enrollments", studentID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// IssueCertificate applies a certificate decision.
func (c *Client) IssueCertificate(ctx context.Context, enrollmentID int64, status models.CertificateStatus) (*dto.EnrollmentDTO, error) {
	var out dto.EnrollmentDTO
	req := dto.IssueCertificateRequest{Status: status}
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/enrollments/%d/certificate", enrollmentID), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadCertificate fetches the rendered certificate document.
func (c *Client) DownloadCertificate(ctx context.Context, enrollmentID int64) ([]byte, error) {
	return c.raw(ctx, fmt.Sprintf("/enrollments/%d/certificate.pdf", enrollmentID))
}

// Dashboard returns the landing page counters.
func (c *Client) Dashboard(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	var out dto.DashboardSummaryDTO
	if _, err := c.do(ctx, http.MethodGet, "/statistics/dashboard", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CourseStats returns the per-year course aggregation.
func (c *Client) CourseStats(ctx context.Context) ([]dto.CourseStatsDTO, error) {
	var out []dto.CourseStatsDTO
	if _, err := c.do(ctx, http.MethodGet, "/statistics/courses", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StudentsByProvince returns the per-province distribution.
func (c *Client) StudentsByProvince(ctx context.Context) (dto.ProvinceStats, error) {
	var out dto.ProvinceStats
	if _, err := c.do(ctx, http.MethodGet, "/statistics/students-by-province", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
