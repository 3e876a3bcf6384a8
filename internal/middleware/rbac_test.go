package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ngocminh-dev/tcms-api/internal/models"
	appErrors "github.com/ngocminh-dev/tcms-api/pkg/errors"
)

type staticValidator struct {
	claims *models.JWTClaims
}

func (v *staticValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "good-token" || v.claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	return v.claims, nil
}

func newGuardedRouter(role models.Role, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	validator := &staticValidator{claims: &models.JWTClaims{UserID: 1, Username: "alice", Role: role}}
	r.GET("/protected", JWT(validator), guard, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func perform(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTMissingHeader(t *testing.T) {
	r := newGuardedRouter(models.RoleAdmin, RequireAdmin())
	w := perform(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMalformedHeader(t *testing.T) {
	r := newGuardedRouter(models.RoleAdmin, RequireAdmin())
	w := perform(r, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTInvalidToken(t *testing.T) {
	r := newGuardedRouter(models.RoleAdmin, RequireAdmin())
	w := perform(r, "Bearer bad-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		role models.Role
		want int
	}{
		{models.RoleAdmin, http.StatusNoContent},
		{models.RoleStaff, http.StatusForbidden},
		{models.RoleUser, http.StatusForbidden},
	}
	for _, tc := range cases {
		r := newGuardedRouter(tc.role, RequireAdmin())
		w := perform(r, "Bearer good-token")
		assert.Equal(t, tc.want, w.Code, "role %s", tc.role)
	}
}

func TestRequireAdminOrStaff(t *testing.T) {
	cases := []struct {
		role models.Role
		want int
	}{
		{models.RoleAdmin, http.StatusNoContent},
		{models.RoleStaff, http.StatusNoContent},
		{models.RoleUser, http.StatusForbidden},
	}
	for _, tc := range cases {
		r := newGuardedRouter(tc.role, RequireAdminOrStaff())
		w := perform(r, "Bearer good-token")
		assert.Equal(t, tc.want, w.Code, "role %s", tc.role)
	}
}
