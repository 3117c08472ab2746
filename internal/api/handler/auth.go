package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tempohq/tempo/internal/api/middleware"
	"github.com/tempohq/tempo/internal/api/response"
	"github.com/tempohq/tempo/internal/domain"
	"github.com/tempohq/tempo/internal/service"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.UserLogin
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.authService.Login(r.Context(), input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			response.Unauthorized(w, "unknown user")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, map[string]any{
		"user":          result.User,
		"active_org_id": result.Session.ActiveOrgID,
		"tokens":        result.Tokens,
	})
}

// Logout ends the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := h.authService.Logout(r.Context(), session.ID); err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.NoContent(w)
}

// Refresh handles token refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	tokens, err := h.authService.Refresh(r.Context(), input.RefreshToken)
	if err != nil {
		response.Unauthorized(w, "invalid refresh token")
		return
	}

	response.OK(w, tokens)
}

// Me returns the current authenticated user and active organization
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	response.OK(w, map[string]any{
		"user":          user,
		"active_org_id": session.ActiveOrgID,
	})
}
