package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocminh-dev/tcms-api/internal/dto"
	"github.com/ngocminh-dev/tcms-api/internal/models"
	appErrors "github.com/ngocminh-dev/tcms-api/pkg/errors"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(srv.URL, func() string { return "jwt-token" }, WithHTTPClient(srv.Client()))
	return srv, c
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": []dto.StudentDTO{}})
	})

	_, _, err := c.ListStudents(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer jwt-token", gotAuth)
}

func TestClientOmitsEmptyToken(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": models.JwtResponse{Token: "t"}})
	}))
	defer srv.Close()
	c := New(srv.URL, func() string { return "" }, WithHTTPClient(srv.Client()))

	_, err := c.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.False(t, sawAuth)
}

func TestClientLoginDecodesIdentity(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": models.JwtResponse{Token: "issued", Username: "alice", Role: models.RoleAdmin},
		})
	})

	res, err := c.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "issued", res.Token)
	assert.Equal(t, models.RoleAdmin, res.Role)
}

func TestClientNormalizesEnvelopeError(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": appErrors.ErrInvalidCredentials,
		})
	})

	_, err := c.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
	assert.Equal(t, "invalid username or password", appErr.Message)
}

func TestClientNormalizesNonJSONFailure(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream dead</html>"))
	})

	_, err := c.Dashboard(context.Background())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
}

func TestClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()
	c := New(url, nil)

	_, err := c.Dashboard(context.Background())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
}

func TestClientListStudentsQueryAndPagination(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "mai", r.URL.Query().Get("search"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data":       []dto.StudentDTO{{ID: 1, MSV: "SV000001", FullName: "Nguyen Thi Mai"}},
			"pagination": models.Pagination{Page: 2, PageSize: 20, TotalCount: 41},
		})
	})

	students, pagination, err := c.ListStudents(context.Background(), models.StudentFilter{Search: "mai", Page: 2, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "SV000001", students[0].MSV)
	require.NotNil(t, pagination)
	assert.Equal(t, 41, pagination.TotalCount)
}

func TestClientCourseDatesRoundTrip(t *testing.T) {
	start, err := dto.ParseDateTime("2024-03-01T08:00:00")
	require.NoError(t, err)
	end, err := dto.ParseDateTime("2024-03-15T17:00:00")
	require.NoError(t, err)

	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateCourseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2024-03-01T08:00:00", req.StartDate.String())
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": dto.CourseDTO{ID: 1, CourseCode: req.CourseCode, StartDate: req.StartDate, EndDate: req.EndDate},
		})
	})

	course, err := c.CreateCourse(context.Background(), dto.CreateCourseRequest{
		CourseCode: "LT-2024-01",
		StartDate:  start,
		EndDate:    end,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15T17:00:00", course.EndDate.String())
}

func TestClientIssueCertificate(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/enrollments/5/certificate", r.URL.Path)
		var req dto.IssueCertificateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": dto.EnrollmentDTO{ID: 5, Status: req.Status},
		})
	})

	enrollment, err := c.IssueCertificate(context.Background(), 5, models.CertificatePass)
	require.NoError(t, err)
	assert.Equal(t, models.CertificatePass, enrollment.Status)
}

func TestClientDownloadCertificate(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/enrollments/5/certificate.pdf", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 stub"))
	})

	pdf, err := c.DownloadCertificate(context.Background(), 5)
	require.NoError(t, err)
	assert.Contains(t, string(pdf), "%PDF")
}

func TestClientHistoryPath(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/students/9/enrollments", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []dto.EnrollmentHistoryDTO{
				{EnrollmentID: 12, CourseCode: "LT-2024-01", Status: models.CertificatePass},
			},
		})
	})

	history, err := c.History(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "LT-2024-01", history[0].CourseCode)
}

func TestClientStudentsByProvincePath(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/statistics/students-by-province", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": dto.ProvinceStats{"Hà Nội": 40, "Không rõ": 7},
		})
	})

	provinces, err := c.StudentsByProvince(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, provinces["Không rõ"])
}
