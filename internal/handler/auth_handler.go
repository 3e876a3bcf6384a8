package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ngocminh-dev/tcms-api/internal/models"
	appErrors "github.com/ngocminh-dev/tcms-api/pkg/errors"
	"github.com/ngocminh-dev/tcms-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.JwtResponse, error)
}

// AuthHandler wires authentication endpoints.
type AuthHandler struct {
	service authService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary Authenticate user
// @Description Authenticate by username and password, returning a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// Me godoc
// @Summary Current identity
// @Description Returns the authenticated identity together with its localized role label
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"id":              claims.UserID,
		"username":        claims.Username,
		"role":            claims.Role,
		"roleDisplayName": claims.Role.DisplayName(),
	}, nil)
}
